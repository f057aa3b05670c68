package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/zizouhuweidi/trivia/internal/domain"
)

// CategoryStore implements domain.CategoryRepository
type CategoryStore struct {
	mu         sync.RWMutex
	categories map[int]domain.Category
}

// NewCategoryStore creates a store holding categories
func NewCategoryStore(categories ...domain.Category) *CategoryStore {
	s := &CategoryStore{categories: make(map[int]domain.Category, len(categories))}
	for _, c := range categories {
		s.categories[c.ID] = c
	}
	return s
}

// GetCategories retrieves all categories ordered by ID
func (s *CategoryStore) GetCategories(_ context.Context) ([]*domain.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	categories := make([]*domain.Category, 0, len(s.categories))
	for _, c := range s.categories {
		c := c
		categories = append(categories, &c)
	}
	sort.Slice(categories, func(i, j int) bool {
		return categories[i].ID < categories[j].ID
	})
	return categories, nil
}

// GetByID retrieves a category by its ID
func (s *CategoryStore) GetByID(_ context.Context, id int) (*domain.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.categories[id]
	if !ok {
		return nil, domain.ErrCategoryNotFound
	}
	return &c, nil
}

// UpsertCategories inserts categories, replacing the label of existing IDs
func (s *CategoryStore) UpsertCategories(_ context.Context, categories []*domain.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range categories {
		s.categories[c.ID] = *c
	}
	return nil
}
