package llm

import (
	"context"
	"fmt"

	"cv_rag/internal/config"

	"go.uber.org/zap"
)

// Completer - один вызов модели: промпт на вход, текст на выход
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// APIError - провайдер ответил не 200
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("LLM returned status %d: %s", e.StatusCode, e.Body)
}

// New выбирает клиента по LLM_PROVIDER
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (Completer, error) {
	switch cfg.LLMProvider {
	case config.ProviderOpenAI:
		return NewOpenAIClient(OpenAIOptions{
			BaseURL:     cfg.OpenAIURL,
			APIKey:      cfg.OpenAIKey,
			Model:       cfg.LLMModel,
			Temperature: cfg.Temperature,
			MaxTokens:   cfg.MaxTokens,
			MaxLogLen:   cfg.MaxLogLength,
		}, logger), nil
	case config.ProviderGemini:
		return NewGeminiClient(ctx, cfg.GeminiKey, cfg.GeminiModel, cfg.Temperature, cfg.MaxLogLength, logger)
	default:
		return nil, fmt.Errorf("unknown llm provider: %q", cfg.LLMProvider)
	}
}
