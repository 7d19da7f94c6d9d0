package app

import (
	"context"
	"errors"
	"fmt"

	"cv_rag/internal/chunker"
	"cv_rag/internal/config"
	"cv_rag/internal/document"
	"cv_rag/internal/index"
	"cv_rag/internal/llm"
	"cv_rag/internal/scoring"

	"go.uber.org/zap"
)

var (
	ErrNoSession           = errors.New("no CVs loaded")
	ErrNoFiles             = errors.New("no CV files given")
	ErrEmptyQuestion       = errors.New("question is empty")
	ErrEmptyJobDescription = errors.New("job description is empty")
)

// Deps - внешние зависимости пайплайна; в тестах подменяются фейками
type Deps struct {
	Extractor document.Extractor
	Splitter  chunker.Splitter
	Embedder  index.Embedder
	Completer llm.Completer
}

type App struct {
	cfg    *config.Config
	logger *zap.Logger

	extractor document.Extractor
	splitter  chunker.Splitter
	embedder  index.Embedder
	completer llm.Completer

	requirements *scoring.Extractor
	scorer       *scoring.Scorer
}

func New(cfg *config.Config, logger *zap.Logger, deps Deps) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &App{
		cfg:          cfg,
		logger:       logger,
		extractor:    deps.Extractor,
		splitter:     deps.Splitter,
		embedder:     deps.Embedder,
		completer:    deps.Completer,
		requirements: scoring.NewExtractor(deps.Completer, logger.Named("requirements"), cfg.MaxLogLength),
		scorer:       scoring.NewScorer(deps.Completer, logger.Named("scorer"), cfg.MaxLogLength),
	}
}

// Build собирает App с настоящими провайдерами из конфига
func Build(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	if err := cfg.CheckCredentials(); err != nil {
		return nil, err
	}

	splitter, err := chunker.NewFactory(logger.Named("splitter")).Get(cfg.SectionStrategy)
	if err != nil {
		return nil, err
	}

	if cfg.EmbedProvider == config.ProviderOllama {
		if err := index.EnsureOllamaModel(ctx, nil, cfg.OllamaURL, cfg.EmbeddingModel, logger); err != nil {
			return nil, fmt.Errorf("ollama model check failed: %w", err)
		}
	}

	embedder, err := index.NewEmbedder(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("init embedder: %w", err)
	}

	completer, err := llm.New(ctx, cfg, logger.Named("llm"))
	if err != nil {
		return nil, fmt.Errorf("init llm: %w", err)
	}

	logger.Info("app configured",
		zap.String("llm_provider", cfg.LLMProvider),
		zap.String("embed_provider", cfg.EmbedProvider),
		zap.String("embedding_model", cfg.EmbeddingModel),
		zap.String("section_strategy", splitter.Name()),
	)

	return New(cfg, logger, Deps{
		Extractor: document.NewPDFExtractor(logger.Named("pdf")),
		Splitter:  splitter,
		Embedder:  embedder,
		Completer: completer,
	}), nil
}

func (a *App) indexOptions() index.Options {
	return index.Options{
		VectorK:       a.cfg.VectorK,
		LexicalK:      a.cfg.LexicalK,
		DenseWeight:   a.cfg.DenseWeight,
		LexicalWeight: a.cfg.LexicalWeight,
		RRFConstant:   a.cfg.RRFConstant,
		Concurrency:   a.cfg.EmbedConcurrency,
	}
}
