package app_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"golden-brain/internal/app"
	"golden-brain/internal/bank"
	"golden-brain/internal/domain"
	"golden-brain/internal/infra/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlayThroughUpdatesBest(t *testing.T) {
	ctx := context.Background()
	game := newTestGame(t)

	_, _, err := game.Login("Ada Lovelace")
	require.NoError(t, err)

	session := playAll(t, game, "Ada Lovelace", domain.Cars, 1)
	summary, err := game.Complete(ctx, session)
	require.NoError(t, err)

	// answer 1 of the default Cars bank is worth 8 points in total
	assert.Equal(t, 8, summary.Score)
	assert.Equal(t, 8, summary.Best)
	assert.True(t, summary.Improved)
	assert.Equal(t, 20, summary.MaxScore)
	require.Len(t, summary.AnswerKey, 10)
	assert.Equal(t, 1, summary.AnswerKey[0].QuestionID)
	for _, entry := range summary.AnswerKey {
		assert.Equal(t, domain.ScorePerfect, entry.Answer.Score, "question %d", entry.QuestionID)
	}
	assert.True(t, summary.NewTop)
	assert.Equal(t, "Ada Lovelace", summary.TopPlayer)
	assert.Equal(t, 0, session.Running())

	retry := playAll(t, game, "Ada Lovelace", domain.Cars, 4)
	summary, err = game.Complete(ctx, retry)
	require.NoError(t, err)
	assert.False(t, summary.Improved)
	assert.Equal(t, 8, summary.Best)
}

func TestAbortLeavesRegistryUntouched(t *testing.T) {
	ctx := context.Background()
	game := newTestGame(t)
	_, _, _ = game.Login("Ada Lovelace")

	first := playAll(t, game, "Ada Lovelace", domain.Animals, 1)
	_, err := game.Complete(ctx, first)
	require.NoError(t, err)

	session, err := game.StartSession(ctx, "Ada Lovelace", domain.Animals)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		_, err := game.Commit(session, 2)
		require.NoError(t, err)
	}
	game.Abort(session)

	_, err = game.Complete(ctx, session)
	require.Error(t, err)

	player, err := game.Registry().Player("Ada Lovelace")
	require.NoError(t, err)
	assert.Equal(t, 12, player.Best(domain.Animals))
	assert.Empty(t, game.ActiveSessions())
}

func TestStartSessionAbortsAbandonedSession(t *testing.T) {
	ctx := context.Background()
	game := newTestGame(t)
	_, _, _ = game.Login("Ada Lovelace")

	abandoned, err := game.StartSession(ctx, "Ada Lovelace", domain.Cars)
	require.NoError(t, err)
	_, err = game.Commit(abandoned, 1)
	require.NoError(t, err)

	next, err := game.StartSession(ctx, "Ada Lovelace", domain.Animals)
	require.NoError(t, err)

	assert.Equal(t, app.StateAborted, abandoned.State())
	assert.Equal(t, app.StateInProgress, next.State())

	active := game.ActiveSessions()
	require.Len(t, active, 1)
	assert.Equal(t, next.ID(), active[0].SessionID)
	assert.Equal(t, domain.Animals, active[0].Category)

	game.Abort(abandoned)
	require.Len(t, game.ActiveSessions(), 1)
}

func TestStartSessionRequiresLogin(t *testing.T) {
	game := newTestGame(t)
	_, err := game.StartSession(context.Background(), "Ghost Player", domain.Cars)
	assert.ErrorIs(t, err, domain.ErrPlayerNotFound)
}

func TestSubscribeReceivesStandings(t *testing.T) {
	ctx := context.Background()
	game := newTestGame(t)
	_, _, _ = game.Login("Ada Lovelace")

	ch, cancel := game.Subscribe()
	defer cancel()

	initial := <-ch
	require.Len(t, initial.Leaderboards, 3)
	assert.Empty(t, initial.Leaderboards[0].Entries)

	_, err := game.Complete(ctx, playAll(t, game, "Ada Lovelace", domain.ComputerScience, 1))
	require.NoError(t, err)

	update := <-ch
	cs := update.Leaderboards[0]
	assert.Equal(t, domain.ComputerScience, cs.Category)
	require.Len(t, cs.Entries, 1)
	assert.Equal(t, 10, cs.Entries[0].BestScore)
}

func TestSubscribeDuringCompleteSeesFinalStandings(t *testing.T) {
	ctx := context.Background()

	for i := 0; i < 50; i++ {
		game := newTestGame(t)
		_, _, _ = game.Login("Ada Lovelace")
		session := playAll(t, game, "Ada Lovelace", domain.ComputerScience, 1)

		var (
			wg     sync.WaitGroup
			ch     <-chan domain.Standings
			cancel func()
		)
		wg.Add(1)
		go func() {
			defer wg.Done()
			ch, cancel = game.Subscribe()
		}()
		_, err := game.Complete(ctx, session)
		require.NoError(t, err)
		wg.Wait()

		var last domain.Standings
		received := 0
	drain:
		for {
			select {
			case s := <-ch:
				last = s
				received++
			default:
				break drain
			}
		}
		cancel()

		require.Positive(t, received, "iteration %d", i)
		cs := last.Leaderboards[0]
		require.Len(t, cs.Entries, 1, "iteration %d", i)
		assert.Equal(t, 10, cs.Entries[0].BestScore, "iteration %d", i)
	}
}

func newTestGame(t *testing.T) *app.Game {
	t.Helper()
	sets, err := bank.Default()
	require.NoError(t, err)
	questions := memory.NewQuestionRepository(memory.NewStaticLoader(sets), 5*time.Minute)
	return app.NewGame(app.NewRegistry(), questions, memory.NewSessionStore(), app.WithSeed(42))
}

func playAll(t *testing.T, game *app.Game, player string, category domain.Category, position int) *app.Session {
	t.Helper()
	session, err := game.StartSession(context.Background(), player, category)
	require.NoError(t, err)
	for session.State() == app.StateInProgress {
		_, err := session.Current()
		require.NoError(t, err)
		_, err = game.Commit(session, position)
		require.NoError(t, err)
	}
	return session
}
