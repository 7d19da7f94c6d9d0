package index

import (
	"context"
	"fmt"
	"sort"

	"cv_rag/internal/chunker"

	"go.uber.org/zap"
)

// Options - параметры гибридного поиска
type Options struct {
	VectorK       int
	LexicalK      int
	DenseWeight   float64
	LexicalWeight float64
	RRFConstant   float64
	Concurrency   int
}

// DefaultOptions: dense top-8, BM25 top-7, веса 0.7/0.3, C=60
func DefaultOptions() Options {
	return Options{
		VectorK:       8,
		LexicalK:      7,
		DenseWeight:   0.7,
		LexicalWeight: 0.3,
		RRFConstant:   60,
		Concurrency:   1,
	}
}

// Result - чанк с итоговым score после слияния выдач
type Result struct {
	Chunk chunker.Chunk
	Score float64
}

// Hybrid объединяет векторный и лексический поиск по одному набору чанков
type Hybrid struct {
	dense   *Dense
	lexical LexicalIndex
	chunks  map[string]chunker.Chunk
	opts    Options
	logger  *zap.Logger
}

// Build индексирует чанки в обоих ретриверах. Повторяющиеся ID учитываются один раз.
func Build(ctx context.Context, chunks []chunker.Chunk, embed Embedder, opts Options, logger *zap.Logger) (*Hybrid, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	byID := make(map[string]chunker.Chunk, len(chunks))
	unique := make([]chunker.Chunk, 0, len(chunks))
	for _, c := range chunks {
		if _, ok := byID[c.ID]; ok {
			logger.Debug("duplicate chunk skipped", zap.String("id", c.ID), zap.String("file", c.FileName))
			continue
		}
		byID[c.ID] = c
		unique = append(unique, c)
	}

	dense, err := NewDense(ctx, unique, embed, opts.Concurrency)
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(unique))
	texts := make([]string, len(unique))
	for i, c := range unique {
		ids[i] = c.ID
		texts[i] = c.Content
	}

	lexical, err := NewBM25(ids, texts)
	if err != nil {
		return nil, err
	}

	logger.Info("hybrid index built",
		zap.Int("chunks", len(unique)),
		zap.Int("dense", dense.Len()),
		zap.Int("lexical", lexical.Len()),
	)

	return &Hybrid{
		dense:   dense,
		lexical: lexical,
		chunks:  byID,
		opts:    opts,
		logger:  logger,
	}, nil
}

// Len возвращает число чанков в индексе
func (h *Hybrid) Len() int {
	return len(h.chunks)
}

// Retrieve ищет query в обоих ретриверах и сливает выдачи взвешенным RRF
func (h *Hybrid) Retrieve(ctx context.Context, query string) ([]Result, error) {
	if len(h.chunks) == 0 {
		return nil, nil
	}

	denseHits, err := h.dense.Search(ctx, query, h.opts.VectorK)
	if err != nil {
		return nil, fmt.Errorf("dense search: %w", err)
	}
	lexicalHits := h.lexical.Search(query, h.opts.LexicalK)

	fused := Fuse(
		[][]Hit{denseHits, lexicalHits},
		[]float64{h.opts.DenseWeight, h.opts.LexicalWeight},
		h.opts.RRFConstant,
	)

	results := make([]Result, 0, len(fused))
	for _, f := range fused {
		c, ok := h.chunks[f.ID]
		if !ok {
			continue
		}
		results = append(results, Result{Chunk: c, Score: f.Score})
	}

	h.logger.Debug("retrieved",
		zap.Int("dense", len(denseHits)),
		zap.Int("lexical", len(lexicalHits)),
		zap.Int("fused", len(results)),
	)

	return results, nil
}

// Fuse - взвешенный reciprocal rank fusion: score = sum(w_i / (rank_i + c)), ранги с 1.
// Повтор ID внутри одной выдачи учитывается по первой позиции.
// При равном score порядок - по первому появлению, начиная с первой выдачи.
func Fuse(lists [][]Hit, weights []float64, c float64) []Hit {
	scores := make(map[string]float64)
	var order []string

	for i, list := range lists {
		var w float64
		if i < len(weights) {
			w = weights[i]
		}

		seen := make(map[string]bool, len(list))
		for rank, hit := range list {
			if seen[hit.ID] {
				continue
			}
			seen[hit.ID] = true

			if _, ok := scores[hit.ID]; !ok {
				order = append(order, hit.ID)
			}
			scores[hit.ID] += w / (float64(rank+1) + c)
		}
	}

	fused := make([]Hit, len(order))
	for i, id := range order {
		fused[i] = Hit{ID: id, Score: scores[id]}
	}
	sort.SliceStable(fused, func(i, j int) bool {
		return fused[i].Score > fused[j].Score
	})
	return fused
}
