package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/SAP-F-2025/quiz-generation-service/internal/config"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiCompleter talks to Google's Gemini API.
type GeminiCompleter struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewGeminiCompleter(ctx context.Context, cfg config.LLMConfig) (*GeminiCompleter, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	name := cfg.Model
	if name == "" || strings.HasPrefix(name, "gpt") {
		name = "gemini-1.5-flash"
	}

	model := client.GenerativeModel(name)
	model.SetTemperature(cfg.Temperature)
	if cfg.MaxTokens > 0 {
		model.SetMaxOutputTokens(int32(cfg.MaxTokens))
	}
	model.SystemInstruction = genai.NewUserContent(genai.Text(systemPrompt))

	return &GeminiCompleter{client: client, model: model}, nil
}

func (c *GeminiCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}

	return replyText(resp), nil
}

// replyText joins the text parts of the first candidate that has content.
func replyText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}

	var sb strings.Builder
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				sb.WriteString(string(text))
			}
		}
		break
	}
	return sb.String()
}

func (c *GeminiCompleter) Close() error {
	return c.client.Close()
}
