package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cv_rag/internal/logger"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

const defaultGeminiModel = "gemini-2.5-flash"

type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiClient генерирует ответы через google.golang.org/genai
type GeminiClient struct {
	models      contentGenerator
	model       string
	temperature float32
	maxLogLen   int
	logger      *zap.Logger
}

func NewGeminiClient(ctx context.Context, apiKey, model string, temperature float64, maxLogLen int, log *zap.Logger) (*GeminiClient, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return newGeminiClient(client.Models, model, temperature, maxLogLen, log), nil
}

func newGeminiClient(models contentGenerator, model string, temperature float64, maxLogLen int, log *zap.Logger) *GeminiClient {
	if model = strings.TrimSpace(model); model == "" {
		model = defaultGeminiModel
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &GeminiClient{
		models:      models,
		model:       model,
		temperature: float32(temperature),
		maxLogLen:   maxLogLen,
		logger:      log,
	}
}

// Complete склеивает текстовые части всех кандидатов
func (g *GeminiClient) Complete(ctx context.Context, prompt string) (string, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", errors.New("prompt must not be empty")
	}

	temperature := g.temperature
	cfg := &genai.GenerateContentConfig{Temperature: &temperature}

	g.logger.Debug("gemini request",
		zap.String("model", g.model),
		zap.String("prompt_preview", logger.TruncateForLog(prompt, g.maxLogLen)),
	)

	start := time.Now()
	resp, err := g.models.GenerateContent(ctx, g.model, genai.Text(prompt), cfg)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
		}
	}

	output := strings.TrimSpace(builder.String())
	if output == "" {
		return "", errors.New("gemini api returned empty response")
	}

	g.logger.Debug("gemini response",
		zap.Duration("took", time.Since(start)),
		zap.String("response_preview", logger.TruncateForLog(output, g.maxLogLen)),
	)

	return output, nil
}
