package index

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/crawlab-team/bm25"
)

// Hit - одна позиция в выдаче отдельного ретривера
type Hit struct {
	ID    string
	Score float64
}

// LexicalIndex ранжирует чанки по пересечению термов
type LexicalIndex interface {
	Search(query string, k int) []Hit
}

const (
	bm25K1 = 1.5
	bm25B  = 0.75
)

// BM25 - Okapi BM25 поверх текстов чанков.
// Чанки без термов в корпус не попадают, их никогда не найти по словам.
type BM25 struct {
	ids    []string
	okapi  *bm25.BM25Okapi
	corpus int
}

// NewBM25 строит индекс; ids и texts идут парами
func NewBM25(ids, texts []string) (*BM25, error) {
	if len(ids) != len(texts) {
		return nil, fmt.Errorf("bm25: %d ids for %d texts", len(ids), len(texts))
	}

	b := &BM25{}
	var corpus []string
	for i, text := range texts {
		if len(Tokenize(text)) == 0 {
			continue
		}
		b.ids = append(b.ids, ids[i])
		corpus = append(corpus, text)
	}
	if len(corpus) == 0 {
		return b, nil
	}

	okapi, err := bm25.NewBM25Okapi(corpus, Tokenize, bm25K1, bm25B, nil)
	if err != nil {
		return nil, fmt.Errorf("bm25: %w", err)
	}
	b.okapi = okapi
	b.corpus = len(corpus)

	return b, nil
}

// Len - число чанков с термами
func (b *BM25) Len() int {
	return b.corpus
}

// Search возвращает до k документов с положительным score по убыванию
func (b *BM25) Search(query string, k int) []Hit {
	if k <= 0 || b.okapi == nil {
		return nil
	}

	terms := Tokenize(query)
	if len(terms) == 0 {
		return nil
	}

	scores, err := b.okapi.GetScores(terms)
	if err != nil {
		return nil
	}

	var hits []Hit
	for i, score := range scores {
		if score > 0 {
			hits = append(hits, Hit{ID: b.ids[i], Score: score})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Score > hits[j].Score
	})
	if len(hits) > k {
		hits = hits[:k]
	}
	return hits
}

// Tokenize режет текст на термы: буквы и цифры, нижний регистр
func Tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}
