// Package bank reads question banks from YAML. The default bank ships
// embedded in the binary; alternates are loaded from a file path.
package bank

import (
	_ "embed"
	"fmt"
	"os"
	"sort"

	"golden-brain/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed default_bank.yaml
var defaultBank []byte

type bankFile struct {
	Categories []categoryFile `yaml:"categories"`
}

type categoryFile struct {
	Category  string            `yaml:"category"`
	Questions []domain.Question `yaml:"questions"`
}

// Default returns the built-in bank: ten questions for each category.
func Default() (map[domain.Category]domain.QuestionSet, error) {
	return Parse(defaultBank)
}

// LoadFile reads and validates a bank file.
func LoadFile(path string) (map[domain.Category]domain.QuestionSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read bank: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML bank. Every set is validated and its questions are
// sorted by id; a category listed twice is rejected.
func Parse(data []byte) (map[domain.Category]domain.QuestionSet, error) {
	var file bankFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode bank: %w", err)
	}

	sets := make(map[domain.Category]domain.QuestionSet, len(file.Categories))
	for _, entry := range file.Categories {
		category, err := domain.ParseCategory(entry.Category)
		if err != nil {
			return nil, err
		}
		if _, dup := sets[category]; dup {
			return nil, fmt.Errorf("%w: %s listed twice", domain.ErrInvalidQuestionSet, category)
		}
		set := domain.QuestionSet{Category: category, Questions: entry.Questions}
		sort.Slice(set.Questions, func(i, j int) bool {
			return set.Questions[i].ID < set.Questions[j].ID
		})
		if err := set.Validate(); err != nil {
			return nil, err
		}
		sets[category] = set
	}
	if len(sets) == 0 {
		return nil, fmt.Errorf("%w: bank has no categories", domain.ErrInvalidQuestionSet)
	}
	return sets, nil
}

// Load returns the bank at path, or the default bank when path is empty.
func Load(path string) (map[domain.Category]domain.QuestionSet, error) {
	if path == "" {
		return Default()
	}
	return LoadFile(path)
}

// Ordered returns the sets in menu order, skipping categories the bank lacks.
func Ordered(sets map[domain.Category]domain.QuestionSet) []domain.QuestionSet {
	out := make([]domain.QuestionSet, 0, len(sets))
	for _, c := range domain.Categories() {
		if set, ok := sets[c]; ok {
			out = append(out, set)
		}
	}
	return out
}
