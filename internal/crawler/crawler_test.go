package crawler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sitechat/internal/domain"
)

func TestValidateURL(t *testing.T) {
	valid := []string{
		"https://example.com",
		"http://example.com/some/page?q=1",
		"https://sub.example.org:8080",
	}
	for _, u := range valid {
		assert.True(t, ValidateURL(u), u)
	}

	invalid := []string{
		"",
		"example.com",
		"https://",
		"/relative/path",
		"mailto:",
		"not a url at all",
	}
	for _, u := range invalid {
		assert.False(t, ValidateURL(u), u)
	}
}

func TestExtract_PrefersMainContent(t *testing.T) {
	page := `<html><head><title>Test Page</title></head><body>
<nav>Menu Home About Contact Pricing</nav>
<div class="cookie-banner">We use cookies to improve your experience on this website today</div>
<main>
<p>Alpha is the first letter of the Greek alphabet and is used widely in science.</p>
<!-- an editorial comment that should never leak into output -->
<p>Beta follows alpha in the traditional ordering of Greek letters.</p>
</main>
<footer>Copyright 2024 Example Corporation All rights reserved worldwide</footer>
</body></html>`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(page))
	}))
	defer srv.Close()

	e := NewSelectorExtractor(Config{})
	got, err := e.Extract(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.Equal(t, "Test Page", got.Title)
	assert.Equal(t, srv.URL, got.URL)
	assert.Contains(t, got.Text, "Alpha is the first letter")
	assert.Contains(t, got.Text, "Beta follows alpha")
	assert.NotContains(t, got.Text, "Menu")
	assert.NotContains(t, got.Text, "cookies")
	assert.NotContains(t, got.Text, "Copyright")
	assert.NotContains(t, got.Text, "editorial comment")
}

func TestExtract_FallsBackToBody(t *testing.T) {
	page := `<html><head></head><body>
<div class="random-wrapper">This paragraph lives outside any recognised content container but is long enough to keep.</div>
</body></html>`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(page))
	}))
	defer srv.Close()

	e := NewSelectorExtractor(Config{})
	got, err := e.Extract(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, DefaultTitle, got.Title)
	assert.Contains(t, got.Text, "outside any recognised content container")
}

func TestExtract_SendsBrowserUserAgent(t *testing.T) {
	var gotAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.Header.Get("User-Agent")
		w.Write([]byte(`<html><body><main>Some long enough main content for the extractor to keep.</main></body></html>`))
	}))
	defer srv.Close()

	e := NewSelectorExtractor(Config{})
	_, err := e.Extract(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, DefaultUserAgent, gotAgent)
}

func TestExtract_EmptyPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><p>Hi</p></body></html>`))
	}))
	defer srv.Close()

	e := NewSelectorExtractor(Config{})
	_, err := e.Extract(context.Background(), srv.URL)
	assert.ErrorIs(t, err, domain.ErrEmptyContent)
}

func TestExtract_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	e := NewSelectorExtractor(Config{})
	_, err := e.Extract(context.Background(), srv.URL)
	assert.ErrorIs(t, err, domain.ErrFetchFailed)
}

func TestExtract_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	e := NewSelectorExtractor(Config{})
	_, err := e.Extract(context.Background(), srv.URL)
	assert.ErrorIs(t, err, domain.ErrFetchFailed)
}

func TestExtract_InvalidURL(t *testing.T) {
	e := NewSelectorExtractor(Config{})
	_, err := e.Extract(context.Background(), "not-a-url")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidURL))
}

func TestCleanText(t *testing.T) {
	in := "Hello,   world! (parens) [brackets]   and\t\ttabs everywhere"
	got := CleanText(in)
	assert.Equal(t, "Hello, world! parens brackets and tabs everywhere", got)
}

func TestCleanText_DropsShortResidue(t *testing.T) {
	assert.Equal(t, "", CleanText("Home About Menu"))
	assert.Equal(t, "", CleanText("   "))
}
