package handler

import (
	"context"
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/zizouhuweidi/trivia/internal/domain"
	"github.com/zizouhuweidi/trivia/internal/service"
)

// TriviaService is the query service the handlers call into
type TriviaService interface {
	ListCategories(ctx context.Context) (map[int]string, error)
	ListQuestions(ctx context.Context, page int) (*service.QuestionPage, error)
	SearchQuestions(ctx context.Context, term string, page int) (*service.QuestionPage, error)
	QuestionsByCategory(ctx context.Context, categoryID, page int) (*service.QuestionPage, error)
	DeleteQuestion(ctx context.Context, id int) (int, error)
	CreateQuestion(ctx context.Context, req service.NewQuestion) (int, error)
	NextQuizQuestion(ctx context.Context, previous []int, categoryID int) (*domain.Question, error)
	CheckAnswer(ctx context.Context, questionID int, guess string) (*service.AnswerResult, error)
}

// TriviaHandler handles question, category and quiz HTTP requests
type TriviaHandler struct {
	service TriviaService
}

// NewTriviaHandler creates a new trivia handler
func NewTriviaHandler(service TriviaService) *TriviaHandler {
	return &TriviaHandler{service: service}
}

// Register registers the trivia routes
func (h *TriviaHandler) Register(e *echo.Echo) {
	e.GET("/categories", h.GetCategories)
	e.GET("/categories/:id/questions", h.GetCategoryQuestions)

	e.GET("/questions", h.GetQuestions)
	e.POST("/questions", h.CreateQuestion)
	e.POST("/questions/search", h.SearchQuestions)
	e.DELETE("/questions/:id", h.DeleteQuestion)

	e.POST("/quizzes", h.NextQuizQuestion)
	e.POST("/quizzes/answers", h.CheckAnswer)
}

type categoriesResponse struct {
	Success    bool           `json:"success"`
	Categories map[int]string `json:"categories"`
}

type listQuestionsResponse struct {
	Success         bool               `json:"success"`
	Questions       []*domain.Question `json:"questions"`
	TotalQuestions  int                `json:"total_questions"`
	Categories      map[int]string     `json:"categories"`
	CurrentCategory *int               `json:"current_category"`
}

type questionsResponse struct {
	Success         bool               `json:"success"`
	Questions       []*domain.Question `json:"questions"`
	TotalQuestions  int                `json:"total_questions"`
	CurrentCategory *int               `json:"current_category"`
}

type questionIDResponse struct {
	Success    bool `json:"success"`
	QuestionID int  `json:"question_id"`
}

type quizResponse struct {
	Success  bool             `json:"success"`
	Question *domain.Question `json:"question"`
}

type answerResponse struct {
	Success bool   `json:"success"`
	Correct bool   `json:"correct"`
	Answer  string `json:"answer"`
}

// CreateQuestionRequest represents the request to create a new question
type CreateQuestionRequest struct {
	Question   string   `json:"question"`
	Answer     string   `json:"answer"`
	Difficulty *FlexInt `json:"difficulty"`
	Category   *FlexInt `json:"category"`
}

// SearchRequest represents the request body of a question search
type SearchRequest struct {
	SearchTerm string `json:"searchTerm"`
}

// QuizRequest represents the request for the next quiz question
type QuizRequest struct {
	PreviousQuestions []FlexInt `json:"previous_questions"`
	QuizCategory      struct {
		ID QuizCategoryID `json:"id"`
	} `json:"quiz_category"`
}

// CheckAnswerRequest represents a guess at a question's answer
type CheckAnswerRequest struct {
	QuestionID *FlexInt `json:"question_id" validate:"required"`
	Answer     string   `json:"answer"`
}

// GetCategories returns every category keyed by ID
func (h *TriviaHandler) GetCategories(c echo.Context) error {
	categories, err := h.service.ListCategories(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, categoriesResponse{
		Success:    true,
		Categories: categories,
	})
}

// GetQuestions returns a page of all questions
func (h *TriviaHandler) GetQuestions(c echo.Context) error {
	page, err := h.service.ListQuestions(c.Request().Context(), pageParam(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, listQuestionsResponse{
		Success:         true,
		Questions:       page.Questions,
		TotalQuestions:  page.TotalQuestions,
		Categories:      page.Categories,
		CurrentCategory: page.CurrentCategory,
	})
}

// SearchQuestions returns a page of questions containing the search term
func (h *TriviaHandler) SearchQuestions(c echo.Context) error {
	var req SearchRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest).SetInternal(err)
	}

	page, err := h.service.SearchQuestions(c.Request().Context(), req.SearchTerm, pageParam(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toQuestionsResponse(page))
}

// GetCategoryQuestions returns a page of the questions in a category
func (h *TriviaHandler) GetCategoryQuestions(c echo.Context) error {
	categoryID, err := idParam(c)
	if err != nil {
		return err
	}

	page, err := h.service.QuestionsByCategory(c.Request().Context(), categoryID, pageParam(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toQuestionsResponse(page))
}

// DeleteQuestion deletes a question by ID
func (h *TriviaHandler) DeleteQuestion(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}

	deleted, err := h.service.DeleteQuestion(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, questionIDResponse{
		Success:    true,
		QuestionID: deleted,
	})
}

// CreateQuestion handles the creation of a new question
func (h *TriviaHandler) CreateQuestion(c echo.Context) error {
	var req CreateQuestionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest).SetInternal(err)
	}

	id, err := h.service.CreateQuestion(c.Request().Context(), service.NewQuestion{
		Question:   req.Question,
		Answer:     req.Answer,
		Category:   req.Category.IntPtr(),
		Difficulty: req.Difficulty.IntPtr(),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, questionIDResponse{
		Success:    true,
		QuestionID: id,
	})
}

// NextQuizQuestion returns a question the player has not seen yet, or null
// once the quiz is exhausted
func (h *TriviaHandler) NextQuizQuestion(c echo.Context) error {
	var req QuizRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest).SetInternal(err)
	}

	previous := make([]int, 0, len(req.PreviousQuestions))
	for _, id := range req.PreviousQuestions {
		previous = append(previous, int(id))
	}

	question, err := h.service.NextQuizQuestion(c.Request().Context(), previous, int(req.QuizCategory.ID))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, quizResponse{
		Success:  true,
		Question: question,
	})
}

// CheckAnswer tells whether a guess matches a question's answer
func (h *TriviaHandler) CheckAnswer(c echo.Context) error {
	var req CheckAnswerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest).SetInternal(err)
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest).SetInternal(err)
	}

	result, err := h.service.CheckAnswer(c.Request().Context(), int(*req.QuestionID), req.Answer)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, answerResponse{
		Success: true,
		Correct: result.Correct,
		Answer:  result.Answer,
	})
}

func toQuestionsResponse(page *service.QuestionPage) questionsResponse {
	return questionsResponse{
		Success:         true,
		Questions:       page.Questions,
		TotalQuestions:  page.TotalQuestions,
		CurrentCategory: page.CurrentCategory,
	}
}

// pageParam reads the page query parameter; a missing or non-numeric value
// means page 1. Numbers beyond int range clamp, so they stay past the end
// (or below 1).
func pageParam(c echo.Context) int {
	raw := strings.TrimSpace(c.QueryParam("page"))
	page, err := strconv.Atoi(raw)
	switch {
	case err == nil:
		return page
	case errors.Is(err, strconv.ErrRange) && strings.HasPrefix(raw, "-"):
		return math.MinInt
	case errors.Is(err, strconv.ErrRange):
		return math.MaxInt
	default:
		return 1
	}
}

// idParam reads the :id path parameter. A non-numeric ID cannot name a
// stored row, so it is reported as not found.
func idParam(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusNotFound).SetInternal(err)
	}
	return id, nil
}
