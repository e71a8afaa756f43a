package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sitechat/internal/domain"
)

func seed(t *testing.T, s *Store, collection string) {
	t.Helper()
	chunks := []domain.Chunk{
		{Text: "about cats", Index: 0, TotalChunks: 3},
		{Text: "about dogs", Index: 1, TotalChunks: 3},
		{Text: "about fish", Index: 2, TotalChunks: 3},
	}
	vectors := [][]float32{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	}
	require.NoError(t, s.Upsert(context.Background(), collection, chunks, vectors))
}

func TestSearch_OrdersBySimilarity(t *testing.T) {
	s := NewStore()
	seed(t, s, "pets")

	results, err := s.Search(context.Background(), "pets", []float32{0.1, 0.9, 0}, 2)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "about dogs", results[0].Chunk.Text)
	assert.Equal(t, "about cats", results[1].Chunk.Text)
	assert.Greater(t, results[0].Score, results[1].Score)
}

func TestSearch_ClampsTopK(t *testing.T) {
	s := NewStore()
	seed(t, s, "pets")

	results, err := s.Search(context.Background(), "pets", []float32{1, 0, 0}, 50)
	require.NoError(t, err)
	assert.Len(t, results, 3)
}

func TestSearch_TiesKeepInsertionOrder(t *testing.T) {
	s := NewStore()
	chunks := []domain.Chunk{
		{Text: "first", Index: 0},
		{Text: "second", Index: 1},
	}
	vectors := [][]float32{{1, 0}, {1, 0}}
	require.NoError(t, s.Upsert(context.Background(), "tied", chunks, vectors))

	results, err := s.Search(context.Background(), "tied", []float32{1, 0}, 2)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "first", results[0].Chunk.Text)
	assert.Equal(t, "second", results[1].Chunk.Text)
}

func TestSearch_UnknownCollection(t *testing.T) {
	s := NewStore()
	results, err := s.Search(context.Background(), "nope", []float32{1}, 5)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestUpsert_LengthMismatch(t *testing.T) {
	s := NewStore()
	err := s.Upsert(context.Background(), "c", []domain.Chunk{{Text: "x"}}, nil)
	assert.Error(t, err)
}

func TestDeleteCollection(t *testing.T) {
	s := NewStore()
	seed(t, s, "pets")
	seed(t, s, "other")

	require.NoError(t, s.DeleteCollection(context.Background(), "pets"))

	results, err := s.Search(context.Background(), "pets", []float32{1, 0, 0}, 5)
	require.NoError(t, err)
	assert.Empty(t, results)

	results, err = s.Search(context.Background(), "other", []float32{1, 0, 0}, 5)
	require.NoError(t, err)
	assert.NotEmpty(t, results)
}

func TestClear(t *testing.T) {
	s := NewStore()
	seed(t, s, "pets")
	seed(t, s, "other")

	require.NoError(t, s.Clear(context.Background()))

	for _, c := range []string{"pets", "other"} {
		results, err := s.Search(context.Background(), c, []float32{1, 0, 0}, 5)
		require.NoError(t, err)
		assert.Empty(t, results)
	}
}
