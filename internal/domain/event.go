package domain

import (
	"context"
	"time"
)

// EventType identifies a question lifecycle event
type EventType string

const (
	EventQuestionCreated EventType = "question_created"
	EventQuestionDeleted EventType = "question_deleted"
)

// QuestionEvent is emitted whenever the question set changes
type QuestionEvent struct {
	Type       EventType `json:"type"`
	QuestionID int       `json:"question_id"`
	Question   *Question `json:"question,omitempty"` // nil for deletions
	OccurredAt time.Time `json:"occurred_at"`
}

// EventPublisher delivers question events to interested listeners
type EventPublisher interface {
	Publish(ctx context.Context, event QuestionEvent) error
}
