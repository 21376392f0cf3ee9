package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SAP-F-2025/quiz-generation-service/internal/models"
)

const quizKeyPrefix = "quiz:"

// QuizCache keeps full quizzes by id. Quizzes never change after creation,
// so entries are only removed on delete or expiry. Cache failures are logged
// and never returned to callers.
type QuizCache struct {
	cache  CacheService
	ttl    time.Duration
	logger *slog.Logger
}

func NewQuizCache(cache CacheService, ttl time.Duration, logger *slog.Logger) *QuizCache {
	return &QuizCache{cache: cache, ttl: ttl, logger: logger}
}

func quizKey(id uint) string {
	return fmt.Sprintf("%s%d", quizKeyPrefix, id)
}

// Get returns the cached quiz, or nil on a miss.
func (c *QuizCache) Get(ctx context.Context, id uint) *models.Quiz {
	var quiz models.Quiz
	if err := c.cache.Get(ctx, quizKey(id), &quiz); err != nil {
		if !errors.Is(err, ErrCacheMiss) {
			c.logger.WarnContext(ctx, "Quiz cache read failed", "quiz_id", id, "error", err)
		}
		return nil
	}
	quiz.EnsureArrays()
	return &quiz
}

func (c *QuizCache) Put(ctx context.Context, quiz *models.Quiz) {
	if err := c.cache.Set(ctx, quizKey(quiz.ID), quiz, c.ttl); err != nil {
		c.logger.WarnContext(ctx, "Quiz cache write failed", "quiz_id", quiz.ID, "error", err)
	}
}

func (c *QuizCache) Invalidate(ctx context.Context, id uint) {
	if err := c.cache.Delete(ctx, quizKey(id)); err != nil {
		c.logger.WarnContext(ctx, "Quiz cache invalidation failed", "quiz_id", id, "error", err)
	}
}

// Flush drops every cached quiz.
func (c *QuizCache) Flush(ctx context.Context) error {
	return c.cache.DeletePattern(ctx, quizKeyPrefix+"*")
}
