package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/caarlos0/env/v10"
	"github.com/go-playground/validator/v10"
)

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
	ProviderOllama = "ollama"
)

type Config struct {
	LLMProvider    string  `env:"LLM_PROVIDER" envDefault:"openai" validate:"oneof=openai gemini"`
	OpenAIKey      string  `env:"OPENAI_API_KEY"`
	OpenAIURL      string  `env:"OPENAI_BASE_URL" envDefault:"https://api.openai.com/v1" validate:"required,url"`
	LLMModel       string  `env:"LLM_MODEL" envDefault:"gpt-4o-mini" validate:"required"`
	Temperature    float64 `env:"LLM_TEMPERATURE" envDefault:"0" validate:"gte=0,lte=2"`
	MaxTokens      int     `env:"LLM_MAX_TOKENS" envDefault:"1024" validate:"gt=0"`
	GeminiKey      string  `env:"GEMINI_API_KEY"`
	GeminiModel    string  `env:"GEMINI_MODEL" envDefault:"gemini-2.5-flash"`
	EmbedProvider  string  `env:"EMBED_PROVIDER" envDefault:"openai" validate:"oneof=openai ollama gemini"`
	EmbeddingModel string  `env:"EMBEDDING_MODEL" envDefault:"text-embedding-3-small" validate:"required"`
	OllamaURL      string  `env:"OLLAMA_URL" envDefault:"http://localhost:11434"`

	// Параметры гибридного поиска
	EmbedConcurrency int     `env:"EMBED_CONCURRENCY" envDefault:"1" validate:"gt=0"`
	VectorK          int     `env:"VECTOR_K" envDefault:"8" validate:"gt=0"`
	LexicalK         int     `env:"LEXICAL_K" envDefault:"7" validate:"gt=0"`
	DenseWeight      float64 `env:"DENSE_WEIGHT" envDefault:"0.7" validate:"gte=0"`
	LexicalWeight    float64 `env:"LEXICAL_WEIGHT" envDefault:"0.3" validate:"gte=0"`
	RRFConstant      float64 `env:"RRF_C" envDefault:"60" validate:"gte=0"`

	SectionStrategy string `env:"SECTION_STRATEGY" envDefault:"heuristic" validate:"oneof=heuristic markdown"`
	MaxLogLength    int    `env:"MAX_LOG_LENGTH" envDefault:"200"`
}

// ErrMissingCredentials возвращается, когда для выбранного провайдера нет ключа
var ErrMissingCredentials = errors.New("missing credentials")

// Init читает env и проверяет значения. Ключи провайдеров не проверяются,
// это делает CheckCredentials перед обращением к провайдерам.
func Init(cfg *Config) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return cfg.Validate()
}

// Validate проверяет значения конфига
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if c.DenseWeight+c.LexicalWeight == 0 {
		return errors.New("invalid config: DENSE_WEIGHT and LEXICAL_WEIGHT are both zero")
	}

	return nil
}

// CheckCredentials проверяет наличие ключей для выбранных провайдеров
func (c *Config) CheckCredentials() error {
	var missing []string
	if (c.LLMProvider == ProviderOpenAI || c.EmbedProvider == ProviderOpenAI) && strings.TrimSpace(c.OpenAIKey) == "" {
		missing = append(missing, "OPENAI_API_KEY")
	}
	if (c.LLMProvider == ProviderGemini || c.EmbedProvider == ProviderGemini) && strings.TrimSpace(c.GeminiKey) == "" {
		missing = append(missing, "GEMINI_API_KEY")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingCredentials, strings.Join(missing, ", "))
	}

	return nil
}
