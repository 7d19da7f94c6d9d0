package index

import (
	"context"
	"fmt"
	"strings"

	"cv_rag/internal/chunker"

	"github.com/philippgille/chromem-go"
)

const collectionName = "cv_chunks"

// Dense - векторный ретривер поверх in-memory коллекции chromem
type Dense struct {
	coll *chromem.Collection
}

// NewDense эмбеддит все чанки и кладёт их в новую коллекцию
func NewDense(ctx context.Context, chunks []chunker.Chunk, embed chromem.EmbeddingFunc, concurrency int) (*Dense, error) {
	db := chromem.NewDB()
	coll, err := db.CreateCollection(collectionName, map[string]string{}, embed)
	if err != nil {
		return nil, fmt.Errorf("failed to create collection: %w", err)
	}

	if len(chunks) == 0 {
		return &Dense{coll: coll}, nil
	}

	if concurrency <= 0 {
		concurrency = 1
	}

	docs := make([]chromem.Document, 0, len(chunks))
	for _, c := range chunks {
		docs = append(docs, chromem.Document{
			ID:      c.ID,
			Content: c.Content,
			Metadata: map[string]string{
				"section":        c.Section,
				"file_name":      c.FileName,
				"applicant_name": c.ApplicantName,
				"source":         c.Source,
			},
		})
	}

	if err := coll.AddDocuments(ctx, docs, concurrency); err != nil {
		return nil, fmt.Errorf("failed to embed chunks: %w", err)
	}

	return &Dense{coll: coll}, nil
}

// Search ищет k ближайших чанков; k ограничивается размером коллекции
func (d *Dense) Search(ctx context.Context, query string, k int) ([]Hit, error) {
	if n := d.coll.Count(); k > n {
		k = n
	}
	if k <= 0 || strings.TrimSpace(query) == "" {
		return nil, nil
	}

	results, err := d.coll.Query(ctx, query, k, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}

	hits := make([]Hit, 0, len(results))
	for _, r := range results {
		hits = append(hits, Hit{ID: r.ID, Score: float64(r.Similarity)})
	}
	return hits, nil
}

// Len возвращает число проиндексированных чанков
func (d *Dense) Len() int {
	return d.coll.Count()
}
