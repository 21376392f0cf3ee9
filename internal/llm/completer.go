package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/SAP-F-2025/quiz-generation-service/internal/config"
	"github.com/SAP-F-2025/quiz-generation-service/internal/utils"
)

// Completer sends one prompt and returns the model's whole reply. Errors are
// transport or provider failures only; an empty reply is returned as "".
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// New builds the configured provider wrapped with timeout, logging and metrics.
func New(ctx context.Context, cfg config.LLMConfig, logger utils.Logger) (Completer, func() error, error) {
	if cfg.APIKey == "" {
		return nil, nil, errors.New("LLM_API_KEY is not set")
	}

	var (
		base    Completer
		closeFn = func() error { return nil }
	)

	switch strings.ToLower(cfg.Provider) {
	case "openai", "":
		base = NewOpenAICompleter(cfg)
	case "gemini":
		gemini, err := NewGeminiCompleter(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		base = gemini
		closeFn = gemini.Close
	default:
		return nil, nil, fmt.Errorf("unknown LLM provider %q", cfg.Provider)
	}

	logger.Info("LLM provider configured", "provider", cfg.Provider, "model", cfg.Model)
	return NewInstrumented(base, cfg.Provider, cfg.Timeout, logger), closeFn, nil
}
