package cache

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/SAP-F-2025/quiz-generation-service/internal/models"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (CacheService, *miniredis.Miniredis) {
	t.Helper()
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisCache(client, slog.New(slog.NewTextHandler(io.Discard, nil))), server
}

func TestRedisCache_SetGetDelete(t *testing.T) {
	c, server := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", map[string]int{"a": 1}, time.Minute))

	var got map[string]int
	require.NoError(t, c.Get(ctx, "k", &got))
	assert.Equal(t, 1, got["a"])

	server.FastForward(2 * time.Minute)
	assert.ErrorIs(t, c.Get(ctx, "k", &got), ErrCacheMiss)

	require.NoError(t, c.Set(ctx, "k", "v", 0))
	require.NoError(t, c.Delete(ctx, "k"))
	assert.False(t, server.Exists("k"))
}

func TestRedisCache_DeletePattern(t *testing.T) {
	c, server := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "quiz:1", 1, 0))
	require.NoError(t, c.Set(ctx, "quiz:2", 2, 0))
	require.NoError(t, c.Set(ctx, "user:1", 3, 0))

	require.NoError(t, c.DeletePattern(ctx, "quiz:*"))
	assert.False(t, server.Exists("quiz:1"))
	assert.False(t, server.Exists("quiz:2"))
	assert.True(t, server.Exists("user:1"))
}

func TestQuizCache(t *testing.T) {
	c, _ := newTestCache(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	quizzes := NewQuizCache(c, time.Minute, logger)
	ctx := context.Background()

	assert.Nil(t, quizzes.Get(ctx, 5))

	quizzes.Put(ctx, &models.Quiz{
		ID:          5,
		Title:       "Cells",
		TFQuestions: []models.TFQuestion{{Question: "Cells divide.", Answer: true}},
	})

	got := quizzes.Get(ctx, 5)
	require.NotNil(t, got)
	assert.Equal(t, "Cells", got.Title)
	require.Len(t, got.TFQuestions, 1)
	assert.NotNil(t, got.MCQQuestions)

	quizzes.Invalidate(ctx, 5)
	assert.Nil(t, quizzes.Get(ctx, 5))
}

func TestNopCache(t *testing.T) {
	quizzes := NewQuizCache(NewNopCache(), time.Minute, slog.New(slog.NewTextHandler(io.Discard, nil)))
	ctx := context.Background()

	quizzes.Put(ctx, &models.Quiz{ID: 1})
	assert.Nil(t, quizzes.Get(ctx, 1))
	assert.NoError(t, quizzes.Flush(ctx))
}
