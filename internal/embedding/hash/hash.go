package hash

import (
	"context"
	"hash/fnv"
	"math"
	"strings"
)

// Dimension matches the output size of common sentence-encoder models
// so stores built against either embedder have compatible shapes.
const Dimension = 384

// Embedder is a deterministic hash-bucket embedding used when no
// remote embedding model is reachable. Each word is hashed into one of
// Dimension buckets and accumulated with a weight that decays by
// position; the result is L2-normalised.
//
// This is a best-effort, low-quality substitute for a trained sentence
// encoder. Retrieval quality with it is markedly worse; it exists so
// the pipeline keeps working offline.
type Embedder struct{}

// NewEmbedder creates the fallback hash embedder.
func NewEmbedder() *Embedder { return &Embedder{} }

// Name returns the identifier of this embedder implementation.
func (e *Embedder) Name() string { return "hash" }

// Dimension returns the fixed output vector length.
func (e *Embedder) Dimension() int { return Dimension }

// Embed maps text to a position-weighted bag-of-buckets vector. It is
// pure and never fails; empty input yields the zero vector.
func (e *Embedder) Embed(_ context.Context, text string) ([]float32, error) {
	vec := make([]float32, Dimension)
	words := strings.Fields(strings.ToLower(text))
	if len(words) == 0 {
		return vec, nil
	}
	for i, word := range words {
		h := fnv.New32a()
		h.Write([]byte(word))
		bucket := h.Sum32() % Dimension
		pos := float64(i) / float64(len(words))
		vec[bucket] += float32(1 - pos)
	}

	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	if norm > 0 {
		inv := float32(1 / math.Sqrt(norm))
		for i := range vec {
			vec[i] *= inv
		}
	}
	return vec, nil
}
