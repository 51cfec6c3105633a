package app

import (
	"sort"

	"golden-brain/internal/domain"
)

// Marker renders the podium marker of a rank.
func Marker(rank int) string {
	switch rank {
	case 1:
		return "*"
	case 2:
		return "**"
	case 3:
		return "***"
	}
	return ""
}

type scoredPlayer struct {
	name string
	best int
}

// RankByCategory ranks players with a best score in category. Equal scores
// share a rank and the next lower score resumes at 1 + the number of
// entries above it. A limit above the number of ranked players is clamped
// and flagged; limit <= 0 returns every ranked player.
func RankByCategory(registry *Registry, category domain.Category, limit int) domain.Leaderboard {
	pool := 0
	var ranked []scoredPlayer
	for name, player := range registry.AllPlayers() {
		pool++
		if best := player.Best(category); best > 0 {
			ranked = append(ranked, scoredPlayer{name: name, best: best})
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].best > ranked[j].best
	})

	lb := domain.Leaderboard{
		Category:  category,
		Requested: limit,
		Available: len(ranked),
		Pool:      pool,
	}
	n := len(ranked)
	if limit > 0 {
		if limit > n {
			lb.Clamped = true
		} else {
			n = limit
		}
	}

	lb.Entries = make([]domain.LeaderboardEntry, 0, n)
	rank := 0
	for i := 0; i < n; i++ {
		if i == 0 || ranked[i].best != ranked[i-1].best {
			rank = i + 1
		}
		lb.Entries = append(lb.Entries, domain.LeaderboardEntry{
			PlayerName: ranked[i].name,
			Rank:       rank,
			BestScore:  ranked[i].best,
			Marker:     Marker(rank),
		})
	}
	return lb
}

// TopPlayer returns the current holder of the best score in category.
func TopPlayer(registry *Registry, category domain.Category) (string, int, bool) {
	lb := RankByCategory(registry, category, 1)
	if len(lb.Entries) == 0 {
		return "", 0, false
	}
	return lb.Entries[0].PlayerName, lb.Entries[0].BestScore, true
}

// FullScoreboard lists every player with their categories ordered by best
// score, highest first.
func FullScoreboard(registry *Registry) []domain.ScoreboardRow {
	var rows []domain.ScoreboardRow
	for name, player := range registry.AllPlayers() {
		scores := make([]domain.CategoryScore, 0, len(domain.Categories()))
		for _, c := range domain.Categories() {
			best := player.Best(c)
			scores = append(scores, domain.CategoryScore{
				Category:  c,
				BestScore: best,
				Played:    best > 0,
			})
		}
		sort.SliceStable(scores, func(i, j int) bool {
			return scores[i].BestScore > scores[j].BestScore
		})
		rows = append(rows, domain.ScoreboardRow{PlayerName: name, Scores: scores})
	}
	return rows
}
