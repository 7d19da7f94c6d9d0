package index

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

type ollamaTags struct {
	Models []struct {
		Name  string `json:"name"`
		Model string `json:"model"`
	} `json:"models"`
}

// EnsureOllamaModel проверяет, что Ollama доступна, и скачивает модель эмбеддингов, если её нет
func EnsureOllamaModel(ctx context.Context, client *http.Client, baseURL, model string, logger *zap.Logger) error {
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	baseURL = strings.TrimRight(baseURL, "/")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/api/tags", nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("ollama is not reachable at %s: %w", baseURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ollama is not running at %s: status %d", baseURL, resp.StatusCode)
	}

	var tags ollamaTags
	if err := json.NewDecoder(resp.Body).Decode(&tags); err != nil {
		return fmt.Errorf("failed to decode ollama tags: %w", err)
	}

	for _, m := range tags.Models {
		if hasModel(m.Name, model) || hasModel(m.Model, model) {
			logger.Info("ollama model is available", zap.String("model", model))
			return nil
		}
	}

	logger.Info("ollama model not found, pulling", zap.String("model", model))

	body, err := json.Marshal(map[string]any{"name": model, "stream": false})
	if err != nil {
		return fmt.Errorf("failed to marshal pull request: %w", err)
	}
	pullReq, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/api/pull", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create pull request: %w", err)
	}
	pullReq.Header.Set("Content-Type", "application/json")

	pullResp, err := client.Do(pullReq)
	if err != nil {
		return fmt.Errorf("failed to pull model %s: %w", model, err)
	}
	defer pullResp.Body.Close()

	if pullResp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(pullResp.Body, 1024))
		return fmt.Errorf("failed to pull model %s: status %d: %s", model, pullResp.StatusCode, strings.TrimSpace(string(msg)))
	}

	logger.Info("ollama model pulled", zap.String("model", model))
	return nil
}

// hasModel: "nomic-embed-text" совпадает с "nomic-embed-text:latest"
func hasModel(name, model string) bool {
	if name == "" {
		return false
	}
	return name == model || strings.TrimSuffix(name, ":latest") == model
}
