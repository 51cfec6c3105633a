package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"golden-brain/internal/domain"
	"github.com/uptrace/bun"
)

// QuestionSetRow is one category of the bank as stored in question_sets.
type QuestionSetRow struct {
	bun.BaseModel `bun:"table:question_sets"`

	Category  string          `bun:"category,pk"`
	Data      json.RawMessage `bun:"data,type:jsonb,notnull"`
	UpdatedAt time.Time       `bun:"updated_at,notnull"`
}

// Seeder upserts question sets so that the loader can serve them.
type Seeder struct {
	db  *bun.DB
	now func() time.Time
}

func NewSeeder(db *bun.DB) *Seeder {
	return &Seeder{db: db, now: time.Now}
}

// Seed writes every set in one statement and returns how many were written.
func (s *Seeder) Seed(ctx context.Context, sets []domain.QuestionSet) (int, error) {
	if len(sets) == 0 {
		return 0, nil
	}
	now := s.now()
	rows := make([]QuestionSetRow, 0, len(sets))
	for _, set := range sets {
		if err := set.Validate(); err != nil {
			return 0, err
		}
		data, err := json.Marshal(set)
		if err != nil {
			return 0, fmt.Errorf("marshal %s: %w", set.Category, err)
		}
		rows = append(rows, QuestionSetRow{
			Category:  set.Category.String(),
			Data:      data,
			UpdatedAt: now,
		})
	}

	_, err := s.db.NewInsert().
		Model(&rows).
		On("CONFLICT (category) DO UPDATE").
		Set("data = EXCLUDED.data").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("seed question sets: %w", err)
	}
	return len(rows), nil
}
