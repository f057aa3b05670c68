// Package memory provides in-process implementations of the question and
// category repositories. They back tests and local runs without Postgres.
package memory

import (
	"context"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/zizouhuweidi/trivia/internal/domain"
)

// QuestionStore implements domain.QuestionRepository
type QuestionStore struct {
	mu        sync.RWMutex
	questions map[int]domain.Question
	nextID    int
}

// NewQuestionStore creates an empty question store
func NewQuestionStore() *QuestionStore {
	return &QuestionStore{
		questions: make(map[int]domain.Question),
		nextID:    1,
	}
}

// List retrieves the questions matching filter, ordered by ID
func (s *QuestionStore) List(_ context.Context, filter domain.QuestionFilter) ([]*domain.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	search := strings.ToLower(filter.Search)
	questions := make([]*domain.Question, 0)
	for _, id := range s.sortedIDs() {
		q := s.questions[id]
		if filter.Category != nil && q.Category != *filter.Category {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(q.Question), search) {
			continue
		}
		if slices.Contains(filter.ExcludeIDs, q.ID) {
			continue
		}
		questions = append(questions, &q)
		if filter.Limit > 0 && len(questions) == filter.Limit {
			break
		}
	}
	return questions, nil
}

func (s *QuestionStore) sortedIDs() []int {
	ids := make([]int, 0, len(s.questions))
	for id := range s.questions {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// GetByID retrieves a question by its ID
func (s *QuestionStore) GetByID(_ context.Context, id int) (*domain.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q, ok := s.questions[id]
	if !ok {
		return nil, domain.ErrQuestionNotFound
	}
	return &q, nil
}

// CreateQuestion creates a new question
func (s *QuestionStore) CreateQuestion(_ context.Context, question *domain.Question) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.insertLocked(question)
	return nil
}

func (s *QuestionStore) insertLocked(question *domain.Question) {
	question.ID = s.nextID
	s.nextID++
	s.questions[question.ID] = *question
}

// DeleteQuestion deletes a question
func (s *QuestionStore) DeleteQuestion(_ context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.questions[id]; !ok {
		return domain.ErrQuestionNotFound
	}
	delete(s.questions, id)
	return nil
}

// BulkCreateQuestions creates multiple questions at once
func (s *QuestionStore) BulkCreateQuestions(_ context.Context, questions []*domain.Question) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, q := range questions {
		s.insertLocked(q)
	}
	return nil
}
