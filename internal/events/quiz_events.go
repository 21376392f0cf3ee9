package events

import (
	"strconv"
	"time"

	"github.com/google/uuid"
)

// EventType represents the kinds of domain events the service emits
type EventType string

const (
	EventQuizGenerated    EventType = "quiz.generated"
	EventQuizDeleted      EventType = "quiz.deleted"
	EventAttemptSubmitted EventType = "attempt.submitted"
)

const (
	eventSource  = "quiz-generation-service"
	eventVersion = "1.0"
)

// Event is the envelope published for every domain event
type Event struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	Data      interface{}            `json:"data"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`

	// Key orders events on the broker: every event of one quiz shares a key.
	Key string `json:"-"`
}

type QuizGeneratedEvent struct {
	QuizID     uint   `json:"quiz_id"`
	Title      string `json:"title"`
	CreatorID  string `json:"creator_id"`
	Difficulty string `json:"difficulty"`
	MCQCount   int    `json:"mcq_count"`
	TFCount    int    `json:"tf_count"`
	WHCount    int    `json:"wh_count"`
	Degraded   int    `json:"degraded"` // records dropped or types that failed to parse
}

type QuizDeletedEvent struct {
	QuizID          uint   `json:"quiz_id"`
	DeletedBy       string `json:"deleted_by"`
	AttemptsDeleted int64  `json:"attempts_deleted"`
}

type AttemptSubmittedEvent struct {
	AttemptID      uint      `json:"attempt_id"`
	QuizID         uint      `json:"quiz_id"`
	StudentID      string    `json:"student_id"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"total_questions"`
	Percentage     int       `json:"percentage"`
	CompletedAt    time.Time `json:"completed_at"`
}

// Event factory functions

func NewQuizGeneratedEvent(data QuizGeneratedEvent) *Event {
	return newEvent(EventQuizGenerated, data.QuizID, data)
}

func NewQuizDeletedEvent(quizID uint, deletedBy string, attemptsDeleted int64) *Event {
	return newEvent(EventQuizDeleted, quizID, QuizDeletedEvent{
		QuizID:          quizID,
		DeletedBy:       deletedBy,
		AttemptsDeleted: attemptsDeleted,
	})
}

func NewAttemptSubmittedEvent(data AttemptSubmittedEvent) *Event {
	return newEvent(EventAttemptSubmitted, data.QuizID, data)
}

func newEvent(eventType EventType, quizID uint, data interface{}) *Event {
	return &Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Source:    eventSource,
		Version:   eventVersion,
		Data:      data,
		Key:       quizKey(quizID),
	}
}

func quizKey(id uint) string {
	return "quiz-" + strconv.FormatUint(uint64(id), 10)
}
