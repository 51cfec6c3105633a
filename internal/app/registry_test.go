package app

import (
	"testing"

	"golden-brain/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsurePlayerIsIdempotent(t *testing.T) {
	r := NewRegistry()

	first, created, err := r.EnsurePlayer("Ada Lovelace")
	require.NoError(t, err)
	assert.True(t, created)

	second, created, err := r.EnsurePlayer("Ada Lovelace")
	require.NoError(t, err)
	assert.False(t, created)

	assert.Equal(t, first, second)
	for _, c := range domain.Categories() {
		require.Contains(t, second.Records, c)
		assert.Equal(t, domain.Record{}, *second.Records[c])
	}
	assert.Equal(t, 1, r.Len())
}

func TestEnsurePlayerRejectsSingleToken(t *testing.T) {
	r := NewRegistry()
	for _, name := range []string{"Ada", "", "   ", " Ada "} {
		_, _, err := r.EnsurePlayer(name)
		require.ErrorIs(t, err, domain.ErrInvalidName, "name %q", name)

		var nameErr *domain.InvalidNameError
		require.ErrorAs(t, err, &nameErr)
	}
	assert.Equal(t, 0, r.Len())
}

func TestEnsurePlayerIsCaseSensitive(t *testing.T) {
	r := NewRegistry()
	_, _, err := r.EnsurePlayer("Ada Lovelace")
	require.NoError(t, err)
	_, created, err := r.EnsurePlayer("ada lovelace")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, 2, r.Len())
}

func TestEnsurePlayerReturnsCopy(t *testing.T) {
	r := NewRegistry()
	player, _, err := r.EnsurePlayer("Ada Lovelace")
	require.NoError(t, err)
	player.Records[domain.Cars].Best = 99

	again, err := r.Player("Ada Lovelace")
	require.NoError(t, err)
	assert.Equal(t, 0, again.Best(domain.Cars))
}

func TestAllPlayersYieldsEveryone(t *testing.T) {
	r := NewRegistry()
	names := []string{"Ada Lovelace", "Alan Turing", "Grace Hopper"}
	for _, n := range names {
		_, _, err := r.EnsurePlayer(n)
		require.NoError(t, err)
	}

	var seen []string
	for name, player := range r.AllPlayers() {
		assert.Equal(t, name, player.Name)
		seen = append(seen, name)
	}
	assert.ElementsMatch(t, names, seen)

	count := 0
	for range r.AllPlayers() {
		count++
		break
	}
	assert.Equal(t, 1, count)
}
