package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/zizouhuweidi/trivia/internal/domain"
	"github.com/zizouhuweidi/trivia/internal/logger"
	"github.com/zizouhuweidi/trivia/internal/validation"
)

const (
	// DefaultPageSize is used when the service is built with a non-positive page size
	DefaultPageSize = 10

	// AllCategories selects quiz questions from every category
	AllCategories = 0
)

// QuestionPage is one page of a question listing
type QuestionPage struct {
	Questions       []*domain.Question
	TotalQuestions  int
	Categories      map[int]string // only set for the unfiltered listing
	CurrentCategory *int
}

// NewQuestion holds the fields of a question to create. Pointers tell a
// missing number apart from zero.
type NewQuestion struct {
	Question   string `validate:"required"`
	Answer     string `validate:"required"`
	Category   *int   `validate:"required"`
	Difficulty *int   `validate:"required"`
}

// AnswerResult is the outcome of checking a guess
type AnswerResult struct {
	Correct bool
	Answer  string
}

// TriviaService serves questions, categories and quiz play
type TriviaService struct {
	questions  domain.QuestionRepository
	categories domain.CategoryRepository
	events     domain.EventPublisher
	validate   *validator.Validate
	pageSize   int
}

// NewTriviaService creates a new trivia service
func NewTriviaService(questions domain.QuestionRepository, categories domain.CategoryRepository, events domain.EventPublisher, pageSize int) *TriviaService {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &TriviaService{
		questions:  questions,
		categories: categories,
		events:     events,
		validate:   validator.New(),
		pageSize:   pageSize,
	}
}

// ListCategories returns every category label keyed by ID
func (s *TriviaService) ListCategories(ctx context.Context) (map[int]string, error) {
	categories, err := s.categories.GetCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	labels := make(map[int]string, len(categories))
	for _, c := range categories {
		labels[c.ID] = c.Type
	}
	return labels, nil
}

// ListQuestions returns a page of all questions. TotalQuestions is always
// the size of the whole table, whatever the page.
func (s *TriviaService) ListQuestions(ctx context.Context, page int) (*QuestionPage, error) {
	if page < 1 {
		return nil, ErrInvalidPage
	}

	questions, err := s.questions.List(ctx, domain.QuestionFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}

	categories, err := s.ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	return &QuestionPage{
		Questions:      paginate(questions, page, s.pageSize),
		TotalQuestions: len(questions),
		Categories:     categories,
	}, nil
}

// SearchQuestions returns a page of the questions containing term,
// ignoring case. TotalQuestions counts the matches.
func (s *TriviaService) SearchQuestions(ctx context.Context, term string, page int) (*QuestionPage, error) {
	if page < 1 {
		return nil, ErrInvalidPage
	}

	questions, err := s.questions.List(ctx, domain.QuestionFilter{Search: term})
	if err != nil {
		return nil, fmt.Errorf("failed to search questions: %w", err)
	}

	return &QuestionPage{
		Questions:      paginate(questions, page, s.pageSize),
		TotalQuestions: len(questions),
	}, nil
}

// QuestionsByCategory returns a page of the questions in a category
func (s *TriviaService) QuestionsByCategory(ctx context.Context, categoryID, page int) (*QuestionPage, error) {
	if page < 1 {
		return nil, ErrInvalidPage
	}

	if _, err := s.categories.GetByID(ctx, categoryID); err != nil {
		return nil, err
	}

	questions, err := s.questions.List(ctx, domain.InCategory(categoryID))
	if err != nil {
		return nil, fmt.Errorf("failed to list category questions: %w", err)
	}

	return &QuestionPage{
		Questions:       paginate(questions, page, s.pageSize),
		TotalQuestions:  len(questions),
		CurrentCategory: &categoryID,
	}, nil
}

// DeleteQuestion removes a question and returns its ID
func (s *TriviaService) DeleteQuestion(ctx context.Context, id int) (int, error) {
	log := logger.WithContext(ctx).WithField("question_id", id)

	if err := s.questions.DeleteQuestion(ctx, id); err != nil {
		if !errors.Is(err, domain.ErrQuestionNotFound) {
			log.WithError(err).Error("Failed to delete question")
		}
		return 0, err
	}

	log.Info("Question deleted")
	s.publish(ctx, domain.QuestionEvent{
		Type:       domain.EventQuestionDeleted,
		QuestionID: id,
	})
	return id, nil
}

// CreateQuestion stores a new question and returns its ID. The category is
// not checked for existence.
func (s *TriviaService) CreateQuestion(ctx context.Context, req NewQuestion) (int, error) {
	if err := s.validate.Struct(req); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrMissingField, err)
	}

	question := &domain.Question{
		Question:   req.Question,
		Answer:     req.Answer,
		Category:   *req.Category,
		Difficulty: *req.Difficulty,
	}

	log := logger.WithContext(ctx)
	if err := s.questions.CreateQuestion(ctx, question); err != nil {
		log.WithError(err).Error("Failed to create question")
		return 0, err
	}

	log.WithField("question_id", question.ID).Info("Question created")
	s.publish(ctx, domain.QuestionEvent{
		Type:       domain.EventQuestionCreated,
		QuestionID: question.ID,
		Question:   question,
	})
	return question.ID, nil
}

// NextQuizQuestion picks the first question, in ID order, that is not in
// previous. categoryID restricts the pick unless it is AllCategories. A nil
// question with a nil error means the quiz is over.
func (s *TriviaService) NextQuizQuestion(ctx context.Context, previous []int, categoryID int) (*domain.Question, error) {
	filter := domain.QuestionFilter{ExcludeIDs: previous, Limit: 1}
	if categoryID != AllCategories {
		filter.Category = &categoryID
	}

	questions, err := s.questions.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to pick quiz question: %w", err)
	}
	if len(questions) == 0 {
		return nil, nil
	}
	return questions[0], nil
}

// CheckAnswer compares guess with the answer of a question
func (s *TriviaService) CheckAnswer(ctx context.Context, questionID int, guess string) (*AnswerResult, error) {
	question, err := s.questions.GetByID(ctx, questionID)
	if err != nil {
		return nil, err
	}

	return &AnswerResult{
		Correct: validation.Match(guess, question.Answer),
		Answer:  question.Answer,
	}, nil
}

// publish hands event to the publisher; a failed delivery never fails the caller
func (s *TriviaService) publish(ctx context.Context, event domain.QuestionEvent) {
	if s.events == nil {
		return
	}
	event.OccurredAt = time.Now().UTC()
	if err := s.events.Publish(ctx, event); err != nil {
		logger.WithContext(ctx).WithError(err).
			WithField("event", event.Type).
			Warn("Failed to publish question event")
	}
}

// paginate returns the 1-indexed page of items; pages past the end are empty
func paginate[T any](items []T, page, size int) []T {
	// Compare page counts first; (page-1)*size overflows for huge pages
	pages := (len(items) + size - 1) / size
	if page < 1 || page-1 >= pages {
		return []T{}
	}
	start := (page - 1) * size
	end := min(start+size, len(items))
	return items[start:end]
}
