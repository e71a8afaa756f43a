package chromem

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	chromemgo "github.com/philippgille/chromem-go"

	"sitechat/internal/domain"
)

// metadata keys stored alongside every chunk.
const (
	metaSourceURL   = "source_url"
	metaPageTitle   = "page_title"
	metaChunkIndex  = "chunk_index"
	metaTotalChunks = "total_chunks"
)

// Store persists embedded chunks with chromem-go, an embedded vector
// database that keeps one gob-encoded collection per indexed site
// under a local directory. The store survives process restarts.
type Store struct {
	mu    sync.Mutex
	path  string
	embed chromemgo.EmbeddingFunc
	db    *chromemgo.DB
}

// DefaultPath is where collections live when no path is configured.
func DefaultPath() string {
	return filepath.Join(os.TempDir(), "sitechat-index")
}

// NewStore opens (or creates) the persistent database at path. The
// embedding function is only consulted for documents without
// precomputed vectors, which this store never produces; it is wired in
// composition so collections carry a consistent embedder.
func NewStore(path string, embed chromemgo.EmbeddingFunc) (*Store, error) {
	if path == "" {
		path = DefaultPath()
	}
	db, err := chromemgo.NewPersistentDB(path, false)
	if err != nil {
		return nil, fmt.Errorf("opening vector store at %s: %w", path, err)
	}
	return &Store{path: path, embed: embed, db: db}, nil
}

// Upsert embeds nothing itself: vectors arrive precomputed and are
// inserted together with chunk text and metadata.
func (s *Store) Upsert(ctx context.Context, collection string, chunks []domain.Chunk, vectors [][]float32) error {
	if len(chunks) != len(vectors) {
		return fmt.Errorf("chunks and vectors length mismatch")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	col, err := s.db.GetOrCreateCollection(collection, nil, s.embed)
	if err != nil {
		return fmt.Errorf("creating collection %s: %w", collection, err)
	}
	docs := make([]chromemgo.Document, len(chunks))
	for i, ch := range chunks {
		docs[i] = chromemgo.Document{
			ID:        fmt.Sprintf("%s-%04d", collection, ch.Index),
			Content:   ch.Text,
			Embedding: vectors[i],
			Metadata: map[string]string{
				metaSourceURL:   ch.SourceURL,
				metaPageTitle:   ch.PageTitle,
				metaChunkIndex:  strconv.Itoa(ch.Index),
				metaTotalChunks: strconv.Itoa(ch.TotalChunks),
			},
		}
	}
	if err := col.AddDocuments(ctx, docs, 1); err != nil {
		return fmt.Errorf("inserting %d chunks: %w", len(docs), err)
	}
	return nil
}

// Search returns up to topK nearest chunks by cosine similarity. A
// missing or empty collection yields an empty result, not an error.
func (s *Store) Search(ctx context.Context, collection string, vector []float32, topK int) ([]domain.SearchResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if topK <= 0 {
		topK = 5
	}
	col := s.db.GetCollection(collection, s.embed)
	if col == nil {
		return nil, nil
	}
	// chromem rejects queries asking for more results than documents.
	if n := col.Count(); n < topK {
		topK = n
	}
	if topK == 0 {
		return nil, nil
	}
	hits, err := col.QueryEmbedding(ctx, vector, topK, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("querying collection %s: %w", collection, err)
	}
	results := make([]domain.SearchResult, 0, len(hits))
	for _, h := range hits {
		results = append(results, domain.SearchResult{Chunk: chunkFromHit(h), Score: h.Similarity})
	}
	return results, nil
}

// DeleteCollection drops one collection; unknown names are a no-op.
func (s *Store) DeleteCollection(_ context.Context, collection string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.DeleteCollection(collection)
}

// Clear removes the persistence directory entirely and reopens an
// empty database, resetting every indexed site.
func (s *Store) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.RemoveAll(s.path); err != nil {
		return fmt.Errorf("removing %s: %w", s.path, err)
	}
	db, err := chromemgo.NewPersistentDB(s.path, false)
	if err != nil {
		return fmt.Errorf("recreating vector store at %s: %w", s.path, err)
	}
	s.db = db
	return nil
}

func chunkFromHit(h chromemgo.Result) domain.Chunk {
	ch := domain.Chunk{Text: h.Content}
	ch.SourceURL = h.Metadata[metaSourceURL]
	ch.PageTitle = h.Metadata[metaPageTitle]
	if v, err := strconv.Atoi(h.Metadata[metaChunkIndex]); err == nil {
		ch.Index = v
	}
	if v, err := strconv.Atoi(h.Metadata[metaTotalChunks]); err == nil {
		ch.TotalChunks = v
	}
	return ch
}
