package chunker

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Factory создаёт splitter на основе названия стратегии
type Factory struct {
	logger *zap.Logger
}

// NewFactory создаёт новую фабрику splitter'ов
func NewFactory(logger *zap.Logger) *Factory {
	return &Factory{logger: logger}
}

// Get возвращает splitter по названию стратегии
func (f *Factory) Get(method string) (Splitter, error) {
	switch strings.ToLower(strings.TrimSpace(method)) {
	case "", "heuristic":
		return NewHeuristicSplitter(f.logger), nil
	case "markdown", "md":
		return NewMarkdownSplitter(NewHeuristicSplitter(f.logger), f.logger), nil
	default:
		return nil, fmt.Errorf("unknown section strategy: %s", method)
	}
}
