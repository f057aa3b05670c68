package domain

import (
	"context"
	"errors"
)

// Common errors
var (
	ErrQuestionNotFound = errors.New("question not found")
)

// QuestionRepository defines the interface for question-related operations
type QuestionRepository interface {
	// List retrieves the questions matching filter, ordered by ID
	List(ctx context.Context, filter QuestionFilter) ([]*Question, error)

	// GetByID retrieves a question by its ID
	GetByID(ctx context.Context, id int) (*Question, error)

	// CreateQuestion creates a new question and assigns its ID
	CreateQuestion(ctx context.Context, question *Question) error

	// DeleteQuestion deletes a question
	DeleteQuestion(ctx context.Context, id int) error

	// BulkCreateQuestions creates multiple questions in a single transaction
	BulkCreateQuestions(ctx context.Context, questions []*Question) error
}

// Question represents a trivia question
type Question struct {
	ID         int    `json:"id"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Category   int    `json:"category"`
	Difficulty int    `json:"difficulty"`
}

// QuestionFilter narrows a question listing. The zero value matches everything.
type QuestionFilter struct {
	// Category restricts results to one category when set
	Category *int

	// Search keeps questions whose text contains it, case-insensitively
	Search string

	// ExcludeIDs drops questions with these IDs
	ExcludeIDs []int

	// Limit caps the number of results; zero means no cap
	Limit int
}

// InCategory returns a filter restricted to category
func InCategory(category int) QuestionFilter {
	return QuestionFilter{Category: &category}
}
