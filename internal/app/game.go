package app

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"time"

	"golden-brain/internal/domain"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

// QuestionRepository loads question sets (from cache/backing store).
type QuestionRepository interface {
	GetQuestionSet(ctx context.Context, category domain.Category) (domain.QuestionSet, error)
}

// SessionRepository tracks in-progress sessions (in-memory, Redis, etc).
type SessionRepository interface {
	Track(session *Session)
	Get(player string) (*Session, bool)
	Release(player string)
	Active() []domain.ActiveSession
}

const defaultStandingsLimit = 3

// Game owns the registry and drives sessions. All mutations come from one
// caller; standings reads may come from other goroutines.
type Game struct {
	registry  *Registry
	questions QuestionRepository
	sessions  SessionRepository
	feed      *Feed
	log       *zap.Logger
	rnd       *rand.Rand
	entropy   io.Reader
	now       func() time.Time
	limit     int
}

type Option func(*Game)

func WithLogger(log *zap.Logger) Option {
	return func(g *Game) { g.log = log }
}

// WithSeed makes question order deterministic. Zero keeps the time seed.
func WithSeed(seed int64) Option {
	return func(g *Game) {
		if seed != 0 {
			g.rnd = rand.New(rand.NewSource(seed))
		}
	}
}

// WithClock is used by tests for deterministic timestamps.
func WithClock(now func() time.Time) Option {
	return func(g *Game) { g.now = now }
}

// WithStandingsLimit sets how many players per category are pushed to spectators.
func WithStandingsLimit(limit int) Option {
	return func(g *Game) {
		if limit > 0 {
			g.limit = limit
		}
	}
}

func NewGame(registry *Registry, questions QuestionRepository, sessions SessionRepository, opts ...Option) *Game {
	g := &Game{
		registry:  registry,
		questions: questions,
		sessions:  sessions,
		feed:      NewFeed(),
		log:       zap.NewNop(),
		rnd:       rand.New(rand.NewSource(time.Now().UnixNano())),
		now:       time.Now,
		limit:     defaultStandingsLimit,
	}
	for _, opt := range opts {
		opt(g)
	}
	g.entropy = ulid.Monotonic(g.rnd, 0)
	return g
}

func (g *Game) Registry() *Registry { return g.registry }

// Login registers or looks up a player by full name.
func (g *Game) Login(name string) (domain.Player, bool, error) {
	player, created, err := g.registry.EnsurePlayer(name)
	if err != nil {
		return domain.Player{}, false, err
	}
	if created {
		g.log.Info("player created", zap.String("player", player.Name))
	} else {
		g.log.Info("player logged in", zap.String("player", player.Name))
	}
	return player, created, nil
}

// StartSession loads the category and draws a fresh permutation of its
// questions. A retry is simply another StartSession. A session the player
// left in progress is aborted first.
func (g *Game) StartSession(ctx context.Context, player string, category domain.Category) (*Session, error) {
	if _, err := g.registry.Player(player); err != nil {
		return nil, err
	}
	set, err := g.questions.GetQuestionSet(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", category, err)
	}
	if err := set.Validate(); err != nil {
		return nil, err
	}

	if prev, ok := g.sessions.Get(player); ok && prev.State() == StateInProgress {
		g.Abort(prev)
	}

	now := g.now()
	id := ulid.MustNew(ulid.Timestamp(now), g.entropy).String()
	session := newSession(id, player, set, g.rnd, now)
	g.sessions.Track(session)
	g.log.Info("session started",
		zap.String("session", id),
		zap.String("player", player),
		zap.Stringer("category", category),
		zap.Int("questions", session.Total()),
	)
	return session, nil
}

// Commit applies an answer the player has already confirmed and advances
// to the next question.
func (g *Game) Commit(session *Session, position int) (int, error) {
	total, err := session.commit(position)
	if err != nil {
		return total, err
	}
	g.log.Debug("answer committed",
		zap.String("session", session.ID()),
		zap.Int("position", position),
		zap.Int("total", total),
	)
	return total, nil
}

// Abort discards an in-progress session. The registry is left untouched.
// A newer session tracked for the same player is kept.
func (g *Game) Abort(session *Session) {
	session.abort()
	if tracked, ok := g.sessions.Get(session.Player()); ok && tracked == session {
		g.sessions.Release(session.Player())
	}
	g.log.Info("session aborted",
		zap.String("session", session.ID()),
		zap.String("player", session.Player()),
		zap.Int("answered", session.Answered()),
	)
}

// Complete finalizes a session whose questions were all committed, builds
// the answer key and resets the running score.
func (g *Game) Complete(_ context.Context, session *Session) (domain.SessionSummary, error) {
	category := session.Category()
	topName, topScore, hasTop := TopPlayer(g.registry, category)

	final, improved, err := FinalizeSession(g.registry, session.Player(), category, session)
	if err != nil {
		return domain.SessionSummary{}, err
	}
	player, err := g.registry.Player(session.Player())
	if err != nil {
		return domain.SessionSummary{}, err
	}

	set := session.QuestionSet()
	summary := domain.SessionSummary{
		SessionID: session.ID(),
		Player:    player.Name,
		Category:  category,
		Score:     final,
		MaxScore:  set.MaxScore(),
		Best:      player.Best(category),
		Improved:  improved,
		AnswerKey: AnswerKey(set),
	}
	if hasTop {
		summary.TopPlayer = topName
		summary.TopScore = topScore
	}
	summary.NewTop = final > topScore
	if summary.NewTop {
		summary.TopPlayer = player.Name
		summary.TopScore = final
	}

	session.running = 0
	g.sessions.Release(session.Player())
	g.log.Info("session completed",
		zap.String("session", session.ID()),
		zap.String("player", player.Name),
		zap.Stringer("category", category),
		zap.Int("score", final),
		zap.Bool("improved", improved),
	)
	g.feed.Publish(g.Standings())
	return summary, nil
}

// AnswerKey lists the highest-scored answer of every question by id.
func AnswerKey(set domain.QuestionSet) []domain.AnswerKeyEntry {
	key := make([]domain.AnswerKeyEntry, 0, len(set.Questions))
	for _, q := range set.Questions {
		key = append(key, domain.AnswerKeyEntry{
			QuestionID: q.ID,
			Question:   q.Text,
			Answer:     q.Best(),
		})
	}
	return key
}

// Leaderboard ranks a category and logs when the limit had to be clamped.
func (g *Game) Leaderboard(category domain.Category, limit int) domain.Leaderboard {
	lb := RankByCategory(g.registry, category, limit)
	if lb.Clamped {
		g.log.Debug("leaderboard limit clamped",
			zap.Stringer("category", category),
			zap.Int("requested", limit),
			zap.Int("available", lb.Available),
		)
	}
	return lb
}

func (g *Game) Scoreboard() []domain.ScoreboardRow {
	return FullScoreboard(g.registry)
}

// Standings is the per-category snapshot pushed to spectators.
func (g *Game) Standings() domain.Standings {
	boards := make([]domain.Leaderboard, 0, len(domain.Categories()))
	for _, c := range domain.Categories() {
		boards = append(boards, RankByCategory(g.registry, c, g.limit))
	}
	return domain.Standings{Leaderboards: boards, UpdatedAt: g.now()}
}

// Subscribe returns a channel of standings, primed with the current ones.
// The caller must invoke the returned cancel function.
func (g *Game) Subscribe() (<-chan domain.Standings, func()) {
	return g.feed.Subscribe(g.Standings)
}

func (g *Game) ActiveSessions() []domain.ActiveSession {
	return g.sessions.Active()
}
