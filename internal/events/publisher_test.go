package events

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockEventPublisher(t *testing.T) {
	publisher := NewMockEventPublisher(slog.New(slog.NewTextHandler(io.Discard, nil)))
	ctx := context.Background()

	require.NoError(t, publisher.Publish(ctx, NewQuizDeletedEvent(4, "prof-1", 3)))
	require.NoError(t, publisher.Publish(ctx, NewAttemptSubmittedEvent(AttemptSubmittedEvent{
		AttemptID: 9, QuizID: 4, StudentID: "stu-1", Score: 2, TotalQuestions: 3, Percentage: 67,
	})))

	published := publisher.GetPublishedEvents()
	require.Len(t, published, 2)
	assert.Equal(t, EventQuizDeleted, published[0].Type)
	assert.Equal(t, EventAttemptSubmitted, published[1].Type)

	data, ok := published[0].Data.(QuizDeletedEvent)
	require.True(t, ok)
	assert.Equal(t, uint(4), data.QuizID)
	assert.Equal(t, int64(3), data.AttemptsDeleted)

	publisher.ClearEvents()
	assert.Empty(t, publisher.GetPublishedEvents())
}

func TestEventEnvelope(t *testing.T) {
	first := NewQuizGeneratedEvent(QuizGeneratedEvent{QuizID: 1, MCQCount: 5})
	second := NewQuizGeneratedEvent(QuizGeneratedEvent{QuizID: 2})

	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, eventSource, first.Source)
	assert.Equal(t, eventVersion, first.Version)
	assert.False(t, first.Timestamp.IsZero())
	assert.Equal(t, "quiz-1", first.Key)
	assert.Equal(t, NewQuizDeletedEvent(1, "prof-1", 0).Key, first.Key)
}

func TestToMessage(t *testing.T) {
	event := NewQuizGeneratedEvent(QuizGeneratedEvent{QuizID: 12, Title: "Cells", TFCount: 4})

	msg, err := toMessage(context.Background(), event)
	require.NoError(t, err)

	assert.Equal(t, event.ID, msg.UUID)
	assert.Equal(t, "quiz.generated", msg.Metadata.Get("event_type"))
	assert.Equal(t, eventSource, msg.Metadata.Get("source"))
	assert.Equal(t, "quiz-12", msg.Metadata.Get(partitionKeyMetadata))

	key, err := partitionKey("quiz-events", msg)
	require.NoError(t, err)
	assert.Equal(t, "quiz-12", key)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(msg.Payload, &decoded))
	assert.Equal(t, "quiz.generated", decoded["type"])
	assert.Equal(t, float64(12), decoded["data"].(map[string]interface{})["quiz_id"])
}
