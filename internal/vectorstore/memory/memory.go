package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"sitechat/internal/domain"
)

// Store is an in-memory vector store using brute-force cosine
// similarity over named collections. Nothing survives a restart; it
// backs tests and the no-persistence mode.
type Store struct {
	mu          sync.RWMutex
	collections map[string]*bucket
}

type bucket struct {
	chunks  []domain.Chunk
	vectors [][]float32
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{collections: make(map[string]*bucket)}
}

// Upsert appends embedded chunks to the named collection, creating it
// if missing.
func (s *Store) Upsert(_ context.Context, collection string, chunks []domain.Chunk, vectors [][]float32) error {
	if len(chunks) != len(vectors) {
		return errors.New("chunks and vectors length mismatch")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.collections[collection]
	if !ok {
		b = &bucket{}
		s.collections[collection] = b
	}
	b.chunks = append(b.chunks, chunks...)
	b.vectors = append(b.vectors, vectors...)
	return nil
}

// Search returns the topK most similar chunks in the collection,
// ordered by descending cosine similarity. Ties keep insertion order.
// A missing or empty collection yields an empty result, not an error.
func (s *Store) Search(_ context.Context, collection string, vector []float32, topK int) ([]domain.SearchResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if topK <= 0 {
		topK = 5
	}
	b, ok := s.collections[collection]
	if !ok || len(b.chunks) == 0 {
		return nil, nil
	}

	// Vectors are assumed L2-normalised, so the dot product is the
	// cosine similarity.
	scores := make([]float32, len(b.vectors))
	for i := range b.vectors {
		scores[i] = dot(b.vectors[i], vector)
	}
	idxs := make([]int, len(scores))
	for i := range idxs {
		idxs[i] = i
	}
	sort.SliceStable(idxs, func(i, j int) bool { return scores[idxs[i]] > scores[idxs[j]] })

	if topK > len(idxs) {
		topK = len(idxs)
	}
	results := make([]domain.SearchResult, 0, topK)
	for _, j := range idxs[:topK] {
		results = append(results, domain.SearchResult{Chunk: b.chunks[j], Score: scores[j]})
	}
	return results, nil
}

// DeleteCollection drops one collection; unknown names are a no-op.
func (s *Store) DeleteCollection(_ context.Context, collection string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.collections, collection)
	return nil
}

// Clear drops every collection.
func (s *Store) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.collections = make(map[string]*bucket)
	return nil
}

func dot(a, b []float32) float32 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var sum float32
	for i := 0; i < n; i++ {
		sum += a[i] * b[i]
	}
	return sum
}
