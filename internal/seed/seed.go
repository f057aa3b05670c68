// Package seed loads categories and questions from a YAML fixture into the
// repositories.
package seed

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/zizouhuweidi/trivia/internal/domain"
	"gopkg.in/yaml.v3"
)

// Fixture is the content of a seed file
type Fixture struct {
	Categories []Category `yaml:"categories" validate:"dive"`
	Questions  []Question `yaml:"questions" validate:"dive"`
}

// Category is a fixture category. IDs are kept as written so questions can
// reference them.
type Category struct {
	ID   int    `yaml:"id" validate:"gt=0"`
	Type string `yaml:"type" validate:"required"`
}

// Question is a fixture question. Every field is mandatory.
type Question struct {
	Question   string `yaml:"question" validate:"required"`
	Answer     string `yaml:"answer" validate:"required"`
	Category   *int   `yaml:"category" validate:"required"`
	Difficulty *int   `yaml:"difficulty" validate:"required"`
}

// Result reports what Apply wrote
type Result struct {
	Categories int
	Questions  int
}

var validate = validator.New()

// Load reads and validates the fixture at path
func Load(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}
	return Parse(data)
}

// Parse decodes a single YAML document and validates it. Unknown keys are
// rejected.
func Parse(data []byte) (*Fixture, error) {
	var fixture Fixture
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&fixture); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parse yaml: empty fixture")
		}
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		if err == nil {
			return nil, fmt.Errorf("parse yaml: multiple documents are not supported")
		}
		return nil, fmt.Errorf("parse yaml: %w", err)
	}

	if err := validate.Struct(&fixture); err != nil {
		return nil, fmt.Errorf("invalid fixture: %w", err)
	}

	seen := make(map[int]struct{}, len(fixture.Categories))
	for _, c := range fixture.Categories {
		if _, dup := seen[c.ID]; dup {
			return nil, fmt.Errorf("invalid fixture: duplicate category id %d", c.ID)
		}
		seen[c.ID] = struct{}{}
	}
	return &fixture, nil
}

// Apply upserts the fixture categories, then inserts its questions in one
// batch. Questions always get fresh IDs, so applying twice duplicates them.
func Apply(ctx context.Context, categories domain.CategoryRepository, questions domain.QuestionRepository, fixture *Fixture) (Result, error) {
	cats := make([]*domain.Category, 0, len(fixture.Categories))
	for _, c := range fixture.Categories {
		cats = append(cats, &domain.Category{ID: c.ID, Type: c.Type})
	}
	if len(cats) > 0 {
		if err := categories.UpsertCategories(ctx, cats); err != nil {
			return Result{}, fmt.Errorf("failed to seed categories: %w", err)
		}
	}

	qs := make([]*domain.Question, 0, len(fixture.Questions))
	for _, q := range fixture.Questions {
		qs = append(qs, &domain.Question{
			Question:   q.Question,
			Answer:     q.Answer,
			Category:   *q.Category,
			Difficulty: *q.Difficulty,
		})
	}
	if len(qs) > 0 {
		if err := questions.BulkCreateQuestions(ctx, qs); err != nil {
			return Result{Categories: len(cats)}, fmt.Errorf("failed to seed questions: %w", err)
		}
	}

	return Result{Categories: len(cats), Questions: len(qs)}, nil
}
