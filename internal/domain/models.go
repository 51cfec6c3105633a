package domain

import (
	"fmt"
	"time"
)

// Category is a topical grouping of questions.
type Category int

const (
	ComputerScience Category = iota
	Cars
	Animals
)

var categoryNames = [...]string{
	ComputerScience: "ComputerScience",
	Cars:            "Cars",
	Animals:         "Animals",
}

// Categories returns every category in menu order.
func Categories() []Category {
	return []Category{ComputerScience, Cars, Animals}
}

func (c Category) Valid() bool {
	return c >= ComputerScience && int(c) < len(categoryNames)
}

func (c Category) String() string {
	if !c.Valid() {
		return fmt.Sprintf("Category(%d)", int(c))
	}
	return categoryNames[c]
}

// ParseCategory accepts the category name, case-sensitive.
func ParseCategory(name string) (Category, error) {
	for _, c := range Categories() {
		if categoryNames[c] == name {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrCategoryNotFound, name)
}

func (c Category) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrCategoryNotFound, int(c))
	}
	return []byte(c.String()), nil
}

func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

const (
	ScoreIncorrect = 0
	ScoreHalf      = 1
	ScorePerfect   = 2

	// AnswersPerQuestion is fixed for every question in the bank.
	AnswersPerQuestion = 4
)

// Answer is one of the four options of a question. Number is 1-based.
type Answer struct {
	Number int    `json:"number" yaml:"number"`
	Text   string `json:"text" yaml:"text"`
	Score  int    `json:"score" yaml:"score"`
}

// Question models an MCQ question with exactly one perfect answer.
type Question struct {
	ID      int      `json:"id" yaml:"id"`
	Text    string   `json:"text" yaml:"text"`
	Answers []Answer `json:"answers" yaml:"answers"`
}

// MaxScore is the points awarded by the perfect answer.
func (q Question) MaxScore() int {
	return ScorePerfect
}

// Best returns the highest-scored answer, the entry shown in the answer key.
func (q Question) Best() Answer {
	var best Answer
	for i, a := range q.Answers {
		if i == 0 || a.Score > best.Score {
			best = a
		}
	}
	return best
}

// QuestionSet is the full list of questions of one category.
type QuestionSet struct {
	Category  Category   `json:"category"`
	Questions []Question `json:"questions"`
}

// Question looks a question up by its 1-based id.
func (s QuestionSet) Question(id int) (Question, bool) {
	for _, q := range s.Questions {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}

// MaxScore is the total a perfect session earns.
func (s QuestionSet) MaxScore() int {
	return len(s.Questions) * ScorePerfect
}

// Record holds the two score slots a player owns per category.
type Record struct {
	Current int `json:"current"`
	Best    int `json:"best"`
}

// Player is identified by the full name typed at login.
type Player struct {
	Name    string               `json:"name"`
	Records map[Category]*Record `json:"records"`
}

// Clone returns a deep copy so callers cannot mutate registry state.
func (p Player) Clone() Player {
	out := Player{Name: p.Name, Records: make(map[Category]*Record, len(p.Records))}
	for c, r := range p.Records {
		rec := *r
		out.Records[c] = &rec
	}
	return out
}

// Best returns the best-ever score in a category, zero when never played.
func (p Player) Best(c Category) int {
	if r, ok := p.Records[c]; ok {
		return r.Best
	}
	return 0
}

// LeaderboardEntry is one ranked row of a category leaderboard.
type LeaderboardEntry struct {
	PlayerName string `json:"playerName"`
	Rank       int    `json:"rank"`
	BestScore  int    `json:"bestScore"`
	Marker     string `json:"marker"`
}

// Leaderboard captures the ranked players of a category.
type Leaderboard struct {
	Category Category           `json:"category"`
	Entries  []LeaderboardEntry `json:"entries"`
	// Requested is the limit asked for, Available the number of players with a score.
	Requested int  `json:"requested"`
	Available int  `json:"available"`
	Pool      int  `json:"pool"`
	Clamped   bool `json:"clamped"`
}

// CategoryScore is one cell of the full scoreboard.
type CategoryScore struct {
	Category  Category `json:"category"`
	BestScore int      `json:"bestScore"`
	Played    bool     `json:"played"`
}

// ScoreboardRow lists a player's best scores, highest first.
type ScoreboardRow struct {
	PlayerName string          `json:"playerName"`
	Scores     []CategoryScore `json:"scores"`
}

// AnswerKeyEntry pairs a question with its highest-scored answer.
type AnswerKeyEntry struct {
	QuestionID int    `json:"questionId"`
	Question   string `json:"question"`
	Answer     Answer `json:"answer"`
}

// SessionSummary is produced when a session completes.
type SessionSummary struct {
	SessionID string           `json:"sessionId"`
	Player    string           `json:"player"`
	Category  Category         `json:"category"`
	Score     int              `json:"score"`
	MaxScore  int              `json:"maxScore"`
	Best      int              `json:"best"`
	Improved  bool             `json:"improved"`
	TopPlayer string           `json:"topPlayer,omitempty"`
	TopScore  int              `json:"topScore"`
	NewTop    bool             `json:"newTop"`
	AnswerKey []AnswerKeyEntry `json:"answerKey"`
}

// ActiveSession is the spectator view of an in-progress session.
type ActiveSession struct {
	SessionID string    `json:"sessionId"`
	Player    string    `json:"player"`
	Category  Category  `json:"category"`
	StartedAt time.Time `json:"startedAt"`
}

// Standings is the snapshot pushed to spectators.
type Standings struct {
	Leaderboards []Leaderboard `json:"leaderboards"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}
