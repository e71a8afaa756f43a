package domain

import "context"

// PageContent is the cleaned result of crawling a single page.
// It is produced once per crawl and discarded after chunking.
type PageContent struct {
	Title string
	Text  string
	URL   string
}

// Chunk is a bounded slice of a page's text, the unit of embedding
// and retrieval. Chunks from the same page share SourceURL and
// PageTitle; Index is 0-based and contiguous.
type Chunk struct {
	Text        string
	SourceURL   string
	PageTitle   string
	Index       int
	TotalChunks int
}

// SearchResult is a retrieved chunk with its similarity score.
type SearchResult struct {
	Chunk Chunk
	Score float32
}

// Turn is a single message in a conversation.
type Turn struct {
	Role    string // "user" or "assistant"
	Content string
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Extractor fetches a URL and returns its title and cleaned body text.
type Extractor interface {
	Extract(ctx context.Context, url string) (PageContent, error)
}

// Chunker splits page content into overlapping chunks suitable for
// retrieval indexing.
type Chunker interface {
	Chunk(page PageContent) ([]Chunk, error)
}

// Embedder converts free text into a fixed-length numeric vector.
type Embedder interface {
	Name() string
	Dimension() int
	Embed(ctx context.Context, text string) ([]float32, error)
}

// VectorStore persists embedded chunks in named collections and
// supports similarity search within one collection.
type VectorStore interface {
	Upsert(ctx context.Context, collection string, chunks []Chunk, vectors [][]float32) error
	Search(ctx context.Context, collection string, vector []float32, topK int) ([]SearchResult, error)
	DeleteCollection(ctx context.Context, collection string) error
	Clear(ctx context.Context) error
}

// Summarizer produces a brief summary of the provided text.
type Summarizer interface {
	Summarize(text string, maxSentences int) (string, error)
}
