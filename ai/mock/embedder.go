// Package mock provides an in-process ai.Embedder for tests: embeddings
// are deterministic functions of the input text, so similarity
// assertions are stable across runs.
package mock

import (
	"context"
	"hash/fnv"
)

// Dim is the dimensionality of mock embedding vectors.
const Dim = 64

// Embedder is a test double for ai.Embedder. Behavior can be overridden
// per call via the function fields.
type Embedder struct {
	// EmbedTextFunc overrides EmbedText when set.
	EmbedTextFunc func(ctx context.Context, text string) ([]float32, error)

	// EmbedTextsFunc overrides EmbedTexts when set.
	EmbedTextsFunc func(ctx context.Context, texts []string) ([][]float32, error)

	calls int
}

// NewEmbedder creates a mock embedder with deterministic defaults.
func NewEmbedder() *Embedder {
	return &Embedder{}
}

// EmbedText returns a deterministic vector derived from the text.
func (m *Embedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	m.calls++
	if m.EmbedTextFunc != nil {
		return m.EmbedTextFunc(ctx, text)
	}
	return deterministicVector(text), nil
}

// EmbedTexts returns deterministic vectors for each text.
func (m *Embedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	m.calls++
	if m.EmbedTextsFunc != nil {
		return m.EmbedTextsFunc(ctx, texts)
	}
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vectors[i] = deterministicVector(text)
	}
	return vectors, nil
}

// Calls returns how many times any embed method was invoked.
func (m *Embedder) Calls() int { return m.calls }

func deterministicVector(text string) []float32 {
	h := fnv.New64a()
	h.Write([]byte(text))
	seed := h.Sum64()

	vector := make([]float32, Dim)
	for i := range vector {
		seed = seed*6364136223846793005 + 1442695040888963407
		vector[i] = float32(seed%1000) / 999.0
	}
	return vector
}
