package domain

import (
	"context"
	"errors"
)

var ErrCategoryNotFound = errors.New("category not found")

// Category is a question category, identified by ID and labelled by Type
type Category struct {
	ID   int    `json:"id" yaml:"id"`
	Type string `json:"type" yaml:"type"`
}

// CategoryRepository defines the interface for category-related operations
type CategoryRepository interface {
	// GetCategories retrieves all categories ordered by ID
	GetCategories(ctx context.Context) ([]*Category, error)

	// GetByID retrieves a category by its ID
	GetByID(ctx context.Context, id int) (*Category, error)

	// UpsertCategories inserts categories, replacing the label of existing IDs
	UpsertCategories(ctx context.Context, categories []*Category) error
}
