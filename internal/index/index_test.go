package index

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"math"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"cv_rag/internal/chunker"
	"cv_rag/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fakeDim = 64

// fakeEmbedder - детерминированный мешок слов с хешированием; нулевая координата всегда 1,
// чтобы вектор не был нулевым
func fakeEmbedder(_ context.Context, text string) ([]float32, error) {
	v := make([]float32, fakeDim)
	v[0] = 1
	for _, term := range Tokenize(text) {
		h := fnv.New32a()
		_, _ = h.Write([]byte(term))
		v[1+int(h.Sum32()%(fakeDim-1))]++
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

func testChunks() []chunker.Chunk {
	raw := []struct {
		file, applicant, section, body string
	}{
		{"alice.pdf", "Alice Nguyen", "SKILLS", "Python, Go, Docker, Kubernetes"},
		{"alice.pdf", "Alice Nguyen", "PROJECTS", "Built a RAG chatbot for customer support"},
		{"bob.pdf", "Bob Tran", "SKILLS", "Java, Spring Boot, MySQL"},
		{"bob.pdf", "Bob Tran", "PROJECTS", "Payment gateway for an online shop"},
		{"carol.pdf", "Carol Le", "Experience", "Data engineer at Acme, Airflow and Spark"},
	}

	chunks := make([]chunker.Chunk, 0, len(raw))
	for i, r := range raw {
		content := r.applicant + "\n" + r.body
		chunks = append(chunks, chunker.Chunk{
			ID:            chunker.ChunkID(r.file, i, content),
			Content:       content,
			ApplicantName: r.applicant,
			Section:       r.section,
			FileName:      r.file,
			Source:        chunker.SourcePDF,
		})
	}
	return chunks
}

func TestTokenize(t *testing.T) {
	assert.Equal(t,
		[]string{"kỹ", "năng", "python", "go", "lang", "2024"},
		Tokenize("Kỹ năng: Python, Go-lang! (2024)"),
	)
	assert.Empty(t, Tokenize("  ,;- "))
}

func TestBM25Search(t *testing.T) {
	b, err := NewBM25(
		[]string{"d1", "d2", "d3", "d4", "d5", "d6"},
		[]string{"python go docker", "java spring", "python ml", "rust tokio", "react typescript", "sql postgres"},
	)
	require.NoError(t, err)
	assert.Equal(t, 6, b.Len())

	hits := b.Search("python", 10)
	require.Len(t, hits, 2)
	assert.Equal(t, "d3", hits[0].ID)
	assert.Equal(t, "d1", hits[1].ID)
	assert.Greater(t, hits[0].Score, hits[1].Score)

	hits = b.Search("Java", 10)
	require.Len(t, hits, 1)
	assert.Equal(t, "d2", hits[0].ID)

	assert.Empty(t, b.Search("rust tokio", 0))
	assert.Empty(t, b.Search("kotlin", 10))
	assert.Empty(t, b.Search("  ,; ", 10))
	assert.Len(t, b.Search("python", 1), 1)
}

// терм, встречающийся почти везде, не различает документы и не дает score
func TestBM25CommonTermCarriesNoWeight(t *testing.T) {
	b, err := NewBM25(
		[]string{"a", "b", "c", "d"},
		[]string{"go backend", "go frontend", "python ml", "sql db"},
	)
	require.NoError(t, err)
	assert.Empty(t, b.Search("go", 5))

	hits := b.Search("go frontend", 5)
	require.Len(t, hits, 1)
	assert.Equal(t, "b", hits[0].ID)
}

func TestBM25SkipsChunksWithoutTerms(t *testing.T) {
	b, err := NewBM25(
		[]string{"blank", "d1", "d2", "d3"},
		[]string{" -- ", "python go", "java spring", "sql postgres"},
	)
	require.NoError(t, err)
	assert.Equal(t, 3, b.Len())

	hits := b.Search("java", 5)
	require.Len(t, hits, 1)
	assert.Equal(t, "d2", hits[0].ID)
}

func TestBM25Empty(t *testing.T) {
	b, err := NewBM25(nil, nil)
	require.NoError(t, err)
	assert.Zero(t, b.Len())
	assert.Empty(t, b.Search("python", 5))

	_, err = NewBM25([]string{"a"}, nil)
	require.Error(t, err)
}

func TestFuseWeightedRRF(t *testing.T) {
	dense := []Hit{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	lexical := []Hit{{ID: "c"}, {ID: "d"}}

	fused := Fuse([][]Hit{dense, lexical}, []float64{0.7, 0.3}, 60)
	require.Len(t, fused, 4)

	ids := make([]string, len(fused))
	for i, f := range fused {
		ids[i] = f.ID
	}
	assert.Equal(t, []string{"c", "a", "b", "d"}, ids)
	assert.InDelta(t, 0.7/63+0.3/61, fused[0].Score, 1e-12)
	assert.InDelta(t, 0.7/61, fused[1].Score, 1e-12)
	assert.InDelta(t, 0.3/62, fused[3].Score, 1e-12)
}

func TestFuseTiesKeepFirstAppearance(t *testing.T) {
	fused := Fuse([][]Hit{{{ID: "x"}}, {{ID: "y"}}}, []float64{1, 1}, 60)
	require.Len(t, fused, 2)
	assert.Equal(t, "x", fused[0].ID)
	assert.Equal(t, "y", fused[1].ID)
}

func TestFuseDeduplicatesWithinList(t *testing.T) {
	fused := Fuse([][]Hit{{{ID: "a"}, {ID: "a"}, {ID: "b"}}}, []float64{1}, 60)
	require.Len(t, fused, 2)
	assert.InDelta(t, 1.0/61, fused[0].Score, 1e-12)
	assert.InDelta(t, 1.0/63, fused[1].Score, 1e-12)
}

func TestHybridRetrieveFindsIdenticalChunk(t *testing.T) {
	ctx := context.Background()
	chunks := testChunks()

	h, err := Build(ctx, chunks, fakeEmbedder, DefaultOptions(), nil)
	require.NoError(t, err)
	assert.Equal(t, len(chunks), h.Len())

	for _, c := range chunks {
		t.Run(c.ID, func(t *testing.T) {
			results, err := h.Retrieve(ctx, c.Content)
			require.NoError(t, err)
			require.NotEmpty(t, results)
			assert.Equal(t, c.ID, results[0].Chunk.ID)

			seen := map[string]bool{}
			for _, r := range results {
				assert.False(t, seen[r.Chunk.ID], "duplicate %s", r.Chunk.ID)
				seen[r.Chunk.ID] = true
			}
			for i := 1; i < len(results); i++ {
				assert.GreaterOrEqual(t, results[i-1].Score, results[i].Score)
			}
		})
	}
}

func TestHybridRetrieveKeywordQuery(t *testing.T) {
	ctx := context.Background()

	h, err := Build(ctx, testChunks(), fakeEmbedder, DefaultOptions(), nil)
	require.NoError(t, err)

	results, err := h.Retrieve(ctx, "Spring Boot")
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Equal(t, "Bob Tran", results[0].Chunk.ApplicantName)
	assert.Equal(t, "SKILLS", results[0].Chunk.Section)
}

func TestHybridEmpty(t *testing.T) {
	h, err := Build(context.Background(), nil, fakeEmbedder, DefaultOptions(), nil)
	require.NoError(t, err)
	assert.Zero(t, h.Len())

	results, err := h.Retrieve(context.Background(), "python")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestHybridSkipsDuplicateIDs(t *testing.T) {
	chunks := testChunks()
	chunks = append(chunks, chunks[0])

	h, err := Build(context.Background(), chunks, fakeEmbedder, DefaultOptions(), nil)
	require.NoError(t, err)
	assert.Equal(t, len(chunks)-1, h.Len())
}

func TestBuildPropagatesEmbeddingError(t *testing.T) {
	failing := func(context.Context, string) ([]float32, error) {
		return nil, errors.New("quota exceeded")
	}

	_, err := Build(context.Background(), testChunks(), failing, DefaultOptions(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestDenseSearchClampsK(t *testing.T) {
	chunks := testChunks()[:2]

	d, err := NewDense(context.Background(), chunks, fakeEmbedder, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, d.Len())

	hits, err := d.Search(context.Background(), "python", 8)
	require.NoError(t, err)
	assert.Len(t, hits, 2)

	hits, err = d.Search(context.Background(), "   ", 8)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestNormalized(t *testing.T) {
	embed := Normalized(func(_ context.Context, text string) ([]float32, error) {
		if text == "zero" {
			return []float32{0, 0}, nil
		}
		return []float32{3, 4}, nil
	})

	v, err := embed(context.Background(), "x")
	require.NoError(t, err)
	assert.InDelta(t, 0.6, v[0], 1e-6)
	assert.InDelta(t, 0.8, v[1], 1e-6)

	v, err = embed(context.Background(), "zero")
	require.NoError(t, err)
	assert.Equal(t, []float32{0, 0}, v)
}

func TestNewEmbedder(t *testing.T) {
	for _, provider := range []string{config.ProviderOpenAI, config.ProviderOllama} {
		t.Run(provider, func(t *testing.T) {
			cfg := &config.Config{
				EmbedProvider:  provider,
				EmbeddingModel: "test-model",
				OpenAIKey:      "sk-test",
				OllamaURL:      "http://localhost:11434/",
			}
			embed, err := NewEmbedder(context.Background(), cfg)
			require.NoError(t, err)
			assert.NotNil(t, embed)
		})
	}

	_, err := NewEmbedder(context.Background(), &config.Config{EmbedProvider: "cohere"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), fmt.Sprintf("%q", "cohere"))
}

func TestNewEmbedderOpenAIUsesBaseURL(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/embeddings", r.URL.Path)
		assert.Equal(t, "Bearer sk-gateway", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[{"embedding":[0.6,0.8]}]}`))
	}))
	defer srv.Close()

	embed, err := NewEmbedder(context.Background(), &config.Config{
		EmbedProvider:  config.ProviderOpenAI,
		EmbeddingModel: "text-embedding-3-small",
		OpenAIKey:      "sk-gateway",
		OpenAIURL:      srv.URL + "/v1/",
	})
	require.NoError(t, err)

	v, err := embed(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.6, 0.8}, v)
	assert.EqualValues(t, 1, hits.Load())
}
