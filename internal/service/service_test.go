package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sitechat/internal/answer"
	"sitechat/internal/chunker"
	"sitechat/internal/crawler"
	"sitechat/internal/domain"
	"sitechat/internal/embedding/hash"
	"sitechat/internal/summarizer"
	"sitechat/internal/vectorstore"
	"sitechat/internal/vectorstore/memory"
)

const greekPage = `<html><head><title>Greek Letters</title></head><body><main>
<p>Alpha is the first Greek letter. Beta is the second Greek letter. Gamma is the third Greek letter.</p>
</main></body></html>`

func newTestService(t *testing.T, store *memory.Store) *Service {
	t.Helper()
	split, err := chunker.NewRecursiveSplitter(500, 100)
	require.NoError(t, err)
	return New(
		crawler.NewSelectorExtractor(crawler.Config{}),
		split,
		hash.NewEmbedder(),
		store,
		answer.NewComposer(nil),
		summarizer.NewFrequencySummarizer(),
		DefaultTopK,
	)
}

func servePage(t *testing.T, page string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(page))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestIndexWebsite(t *testing.T) {
	srv := servePage(t, greekPage)
	svc := newTestService(t, memory.NewStore())

	res, err := svc.IndexWebsite(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.Equal(t, vectorstore.CollectionName(srv.URL), res.Collection)
	assert.Equal(t, srv.URL, res.URL)
	assert.Equal(t, "Greek Letters", res.Title)
	assert.Greater(t, res.Chunks, 0)
	assert.NotEmpty(t, res.Summary)
}

func TestIndexWebsite_InvalidURL(t *testing.T) {
	svc := newTestService(t, memory.NewStore())
	_, err := svc.IndexWebsite(context.Background(), "not-a-url")
	assert.ErrorIs(t, err, domain.ErrInvalidURL)
}

func TestIndexWebsite_EmptyPage(t *testing.T) {
	srv := servePage(t, `<html><body></body></html>`)
	svc := newTestService(t, memory.NewStore())
	_, err := svc.IndexWebsite(context.Background(), srv.URL)
	assert.ErrorIs(t, err, domain.ErrEmptyContent)
}

func TestBuildIndex_NoChunks(t *testing.T) {
	svc := newTestService(t, memory.NewStore())
	_, err := svc.BuildIndex(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrNoChunks)
}

func TestAsk_AnswersFromIndexedSite(t *testing.T) {
	srv := servePage(t, greekPage)
	svc := newTestService(t, memory.NewStore())

	res, err := svc.IndexWebsite(context.Background(), srv.URL)
	require.NoError(t, err)

	got := svc.Ask(context.Background(), res.Collection, "what is alpha", nil)
	assert.Equal(t, "Alpha is the first Greek letter.", got)
}

func TestAsk_UnansweredRefuses(t *testing.T) {
	srv := servePage(t, greekPage)
	svc := newTestService(t, memory.NewStore())

	res, err := svc.IndexWebsite(context.Background(), srv.URL)
	require.NoError(t, err)

	got := svc.Ask(context.Background(), res.Collection, "what is the weather in Tokyo today", nil)
	assert.Equal(t, domain.Refusal, got)
}

func TestAsk_NoCollection(t *testing.T) {
	svc := newTestService(t, memory.NewStore())
	assert.Equal(t, domain.Refusal, svc.Ask(context.Background(), "", "anything", nil))
	assert.Equal(t, domain.Refusal, svc.Ask(context.Background(), "never-indexed", "anything", nil))
}

func TestIndexWebsite_ReindexReplaces(t *testing.T) {
	srv := servePage(t, greekPage)
	store := memory.NewStore()
	svc := newTestService(t, store)

	first, err := svc.IndexWebsite(context.Background(), srv.URL)
	require.NoError(t, err)
	second, err := svc.IndexWebsite(context.Background(), srv.URL)
	require.NoError(t, err)
	require.Equal(t, first.Collection, second.Collection)

	vec, err := hash.NewEmbedder().Embed(context.Background(), "alpha")
	require.NoError(t, err)
	results, err := store.Search(context.Background(), second.Collection, vec, 100)
	require.NoError(t, err)
	assert.Len(t, results, second.Chunks, "re-indexing must not duplicate chunks")
}

func TestClear(t *testing.T) {
	srv := servePage(t, greekPage)
	svc := newTestService(t, memory.NewStore())

	res, err := svc.IndexWebsite(context.Background(), srv.URL)
	require.NoError(t, err)

	require.NoError(t, svc.Clear(context.Background()))
	assert.Equal(t, domain.Refusal, svc.Ask(context.Background(), res.Collection, "what is alpha", nil))
}
