package llm

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

type Config struct {
	Provider         string
	BaseURL          string
	OpenRouterAPIKey string
	GeminiAPIKey     string
	Referer          string
	Title            string
	Timeout          time.Duration
}

func NewProvider(ctx context.Context, cfg Config, log *zap.Logger) (Provider, error) {
	switch cfg.Provider {
	case "openrouter", "openai", "":
		return NewOpenAIClient(OpenAIConfig{
			APIKey:  cfg.OpenRouterAPIKey,
			BaseURL: cfg.BaseURL,
			Referer: cfg.Referer,
			Title:   cfg.Title,
			Timeout: cfg.Timeout,
		}, log), nil
	case "gemini":
		client, err := NewGeminiClient(ctx, cfg.GeminiAPIKey, log)
		if err != nil {
			return nil, err
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}
