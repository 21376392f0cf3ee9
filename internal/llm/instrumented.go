package llm

import (
	"context"
	"time"

	"github.com/SAP-F-2025/quiz-generation-service/internal/utils"
	"github.com/SAP-F-2025/quiz-generation-service/pkg/monitoring"
)

// Instrumented bounds each call with a timeout and records size, latency
// and outcome of every call.
type Instrumented struct {
	next     Completer
	provider string
	timeout  time.Duration
	logger   utils.Logger
}

func NewInstrumented(next Completer, provider string, timeout time.Duration, logger utils.Logger) *Instrumented {
	return &Instrumented{
		next:     next,
		provider: provider,
		timeout:  timeout,
		logger:   logger.With("component", "llm", "provider", provider),
	}
}

func (c *Instrumented) Complete(ctx context.Context, prompt string) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	start := time.Now()
	c.logger.DebugContext(ctx, "LLM request", "prompt_chars", len(prompt))

	reply, err := c.next.Complete(ctx, prompt)
	elapsed := time.Since(start)
	monitoring.LLMDuration.WithLabelValues(c.provider).Observe(elapsed.Seconds())

	if err != nil {
		monitoring.LLMRequests.WithLabelValues(c.provider, "error").Inc()
		c.logger.ErrorContext(ctx, "LLM request failed", "error", err, "duration", elapsed.String())
		return "", err
	}

	monitoring.LLMRequests.WithLabelValues(c.provider, "ok").Inc()
	c.logger.InfoContext(ctx, "LLM response",
		"prompt_chars", len(prompt),
		"reply_chars", len(reply),
		"duration", elapsed.String())
	return reply, nil
}
