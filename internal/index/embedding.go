package index

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"cv_rag/internal/config"

	"github.com/philippgille/chromem-go"
	"google.golang.org/genai"
)

// Embedder превращает текст в вектор; совместим с chromem.EmbeddingFunc
type Embedder = chromem.EmbeddingFunc

// NewEmbedder выбирает провайдера эмбеддингов по EMBED_PROVIDER
func NewEmbedder(ctx context.Context, cfg *config.Config) (Embedder, error) {
	switch cfg.EmbedProvider {
	case config.ProviderOpenAI:
		// эмбеддинги OpenAI уже нормированы; base URL общий с чатом, чтобы работали совместимые шлюзы
		normalized := true
		baseURL := strings.TrimRight(cfg.OpenAIURL, "/")
		return chromem.NewEmbeddingFuncOpenAICompat(baseURL, cfg.OpenAIKey, cfg.EmbeddingModel, &normalized), nil
	case config.ProviderOllama:
		baseURL := strings.TrimRight(cfg.OllamaURL, "/") + "/api"
		return chromem.NewEmbeddingFuncOllama(cfg.EmbeddingModel, baseURL), nil
	case config.ProviderGemini:
		return newGeminiEmbedder(ctx, cfg.GeminiKey, cfg.EmbeddingModel)
	default:
		return nil, fmt.Errorf("unknown embedding provider: %q", cfg.EmbedProvider)
	}
}

func newGeminiEmbedder(ctx context.Context, apiKey, model string) (Embedder, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	embed := func(ctx context.Context, text string) ([]float32, error) {
		resp, err := client.Models.EmbedContent(ctx, model, genai.Text(text), nil)
		if err != nil {
			return nil, fmt.Errorf("gemini embed: %w", err)
		}
		if resp == nil || len(resp.Embeddings) == 0 || resp.Embeddings[0] == nil || len(resp.Embeddings[0].Values) == 0 {
			return nil, errors.New("gemini embed: empty embedding")
		}
		return resp.Embeddings[0].Values, nil
	}

	return Normalized(embed), nil
}

// Normalized приводит векторы к единичной длине: chromem сравнивает их скалярным произведением
func Normalized(embed Embedder) Embedder {
	return func(ctx context.Context, text string) ([]float32, error) {
		v, err := embed(ctx, text)
		if err != nil {
			return nil, err
		}

		var sum float64
		for _, x := range v {
			sum += float64(x) * float64(x)
		}
		if sum == 0 {
			return v, nil
		}

		norm := float32(math.Sqrt(sum))
		out := make([]float32, len(v))
		for i, x := range v {
			out[i] = x / norm
		}
		return out, nil
	}
}
