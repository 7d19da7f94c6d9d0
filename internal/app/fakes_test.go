package app

import (
	"context"
	"errors"
	"hash/fnv"
	"math"
	"strings"
	"sync"
	"sync/atomic"

	"cv_rag/internal/chunker"
	"cv_rag/internal/config"
	"cv_rag/internal/document"
	"cv_rag/internal/index"

	"go.uber.org/zap"
)

// plainExtractor отдаёт байты файла как текст; файлы с "broken" в имени не читаются
type plainExtractor struct{}

func (plainExtractor) Extract(_ context.Context, f document.File) (string, error) {
	if strings.Contains(f.Name, "broken") {
		return "", errors.New("malformed pdf")
	}
	return string(f.Data), nil
}

type countingEmbedder struct {
	calls atomic.Int64
}

func (c *countingEmbedder) embed(_ context.Context, text string) ([]float32, error) {
	c.calls.Add(1)

	const dim = 64
	v := make([]float32, dim)
	v[0] = 1
	for _, term := range index.Tokenize(text) {
		h := fnv.New32a()
		_, _ = h.Write([]byte(term))
		v[1+int(h.Sum32()%(dim-1))]++
	}

	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	norm := float32(math.Sqrt(sum))
	for i := range v {
		v[i] /= norm
	}
	return v, nil
}

// scriptedCompleter отвечает функцией от промпта и запоминает все промпты
type scriptedCompleter struct {
	mu      sync.Mutex
	reply   func(prompt string) (string, error)
	prompts []string
}

func (s *scriptedCompleter) Complete(_ context.Context, prompt string) (string, error) {
	s.mu.Lock()
	s.prompts = append(s.prompts, prompt)
	s.mu.Unlock()
	return s.reply(prompt)
}

func (s *scriptedCompleter) lastPrompt() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.prompts) == 0 {
		return ""
	}
	return s.prompts[len(s.prompts)-1]
}

func testConfig() *config.Config {
	return &config.Config{
		LLMProvider:      config.ProviderOpenAI,
		EmbedProvider:    config.ProviderOpenAI,
		EmbedConcurrency: 1,
		VectorK:          8,
		LexicalK:         7,
		DenseWeight:      0.7,
		LexicalWeight:    0.3,
		RRFConstant:      60,
		SectionStrategy:  "heuristic",
		MaxLogLength:     200,
	}
}

func newTestApp(completer *scriptedCompleter) (*App, *countingEmbedder) {
	embedder := &countingEmbedder{}
	a := New(testConfig(), zap.NewNop(), Deps{
		Extractor: plainExtractor{},
		Splitter:  chunker.NewHeuristicSplitter(zap.NewNop()),
		Embedder:  embedder.embed,
		Completer: completer,
	})
	return a, embedder
}

func cvFiles() []document.File {
	return []document.File{
		{Name: "alice.pdf", Data: []byte("Alice\nSKILLS\nPython\nPROJECTS\nChatbot")},
		{Name: "bob.pdf", Data: []byte("Bob\nSKILLS\nJava")},
	}
}
