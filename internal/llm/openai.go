package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"cv_rag/internal/logger"

	"go.uber.org/zap"
)

const defaultOpenAIModel = "gpt-4o-mini"

type OpenAIOptions struct {
	BaseURL     string
	APIKey      string
	Model       string
	Temperature float64
	MaxTokens   int
	MaxLogLen   int
	HTTPClient  *http.Client
}

// OpenAIClient ходит в OpenAI-совместимый /chat/completions
type OpenAIClient struct {
	opts   OpenAIOptions
	http   *http.Client
	logger *zap.Logger
}

func NewOpenAIClient(opts OpenAIOptions, log *zap.Logger) *OpenAIClient {
	if opts.Model == "" {
		opts.Model = defaultOpenAIModel
	}
	opts.BaseURL = strings.TrimRight(opts.BaseURL, "/")

	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 2 * time.Minute}
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &OpenAIClient{opts: opts, http: client, logger: log}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete отправляет промпт одним user-сообщением. Повторов нет.
func (c *OpenAIClient) Complete(ctx context.Context, prompt string) (string, error) {
	reqBody := chatRequest{
		Model:       c.opts.Model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		MaxTokens:   c.opts.MaxTokens,
		Temperature: c.opts.Temperature,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := c.opts.BaseURL + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.opts.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.opts.APIKey)
	}

	c.logger.Debug("llm request",
		zap.String("model", c.opts.Model),
		zap.String("prompt_preview", logger.TruncateForLog(prompt, c.opts.MaxLogLen)),
	)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var response chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if len(response.Choices) == 0 {
		return "", errors.New("no response from LLM")
	}

	content := response.Choices[0].Message.Content
	c.logger.Debug("llm response",
		zap.Duration("took", time.Since(start)),
		zap.String("response_preview", logger.TruncateForLog(content, c.opts.MaxLogLen)),
	)

	return content, nil
}
