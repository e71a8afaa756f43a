// Package service orchestrates the pipeline: crawl, chunk, embed,
// index, retrieve and answer. Indexing-path errors abort and surface
// verbatim; question-path failures collapse to the refusal string.
package service

import (
	"context"
	"fmt"

	"sitechat/internal/answer"
	"sitechat/internal/domain"
	"sitechat/internal/vectorstore"
)

// DefaultTopK is how many chunks are retrieved per question.
const DefaultTopK = 5

const summarySentences = 3

// Service wires the pipeline components together. All dependencies
// are explicit; the service holds no session state of its own.
type Service struct {
	extractor  domain.Extractor
	chunker    domain.Chunker
	embedder   domain.Embedder
	store      domain.VectorStore
	composer   *answer.Composer
	summarizer domain.Summarizer
	topK       int
}

// IndexResult describes a successful site indexing.
type IndexResult struct {
	Collection string
	URL        string
	Title      string
	Chunks     int
	Summary    string
}

// New assembles a service. The summarizer is optional.
func New(extractor domain.Extractor, chunker domain.Chunker, embedder domain.Embedder, store domain.VectorStore, composer *answer.Composer, summarizer domain.Summarizer, topK int) *Service {
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &Service{
		extractor:  extractor,
		chunker:    chunker,
		embedder:   embedder,
		store:      store,
		composer:   composer,
		summarizer: summarizer,
		topK:       topK,
	}
}

// IndexWebsite crawls one URL and replaces the collection for its
// domain with the embedded chunks. Any error aborts the action with
// nothing partial committed.
func (s *Service) IndexWebsite(ctx context.Context, url string) (IndexResult, error) {
	page, err := s.extractor.Extract(ctx, url)
	if err != nil {
		return IndexResult{}, err
	}

	chunks, err := s.chunker.Chunk(page)
	if err != nil {
		return IndexResult{}, err
	}
	if len(chunks) == 0 {
		return IndexResult{}, domain.ErrEmptyChunks
	}

	collection, err := s.BuildIndex(ctx, chunks)
	if err != nil {
		return IndexResult{}, err
	}

	res := IndexResult{
		Collection: collection,
		URL:        page.URL,
		Title:      page.Title,
		Chunks:     len(chunks),
	}
	if s.summarizer != nil {
		if summary, err := s.summarizer.Summarize(page.Text, summarySentences); err == nil {
			res.Summary = summary
		}
	}
	return res, nil
}

// BuildIndex embeds the chunks and writes them to the collection
// derived from the first chunk's source URL. Re-indexing a domain
// replaces its previous collection. Embedding happens before the old
// collection is dropped, so an embedding failure leaves it intact.
func (s *Service) BuildIndex(ctx context.Context, chunks []domain.Chunk) (string, error) {
	if len(chunks) == 0 {
		return "", domain.ErrNoChunks
	}
	collection := vectorstore.CollectionName(chunks[0].SourceURL)

	vectors := make([][]float32, len(chunks))
	for i, ch := range chunks {
		vec, err := s.embedder.Embed(ctx, ch.Text)
		if err != nil {
			return "", fmt.Errorf("embedding chunk %d/%d: %w", ch.Index+1, ch.TotalChunks, err)
		}
		vectors[i] = vec
	}

	if err := s.store.DeleteCollection(ctx, collection); err != nil {
		return "", fmt.Errorf("replacing collection %s: %w", collection, err)
	}
	if err := s.store.Upsert(ctx, collection, chunks, vectors); err != nil {
		return "", fmt.Errorf("indexing into collection %s: %w", collection, err)
	}
	return collection, nil
}

// Ask answers a question from the active collection. It never fails:
// retrieval or generation problems are indistinguishable from "not in
// the source material" and yield the refusal string.
func (s *Service) Ask(ctx context.Context, collection, question string, history []domain.Turn) string {
	if collection == "" {
		return domain.Refusal
	}
	vec, err := s.embedder.Embed(ctx, question)
	if err != nil {
		return domain.Refusal
	}
	results, err := s.store.Search(ctx, collection, vec, s.topK)
	if err != nil {
		return domain.Refusal
	}
	return s.composer.Compose(ctx, question, results, history)
}

// Clear wipes every persisted collection.
func (s *Service) Clear(ctx context.Context) error {
	return s.store.Clear(ctx)
}
