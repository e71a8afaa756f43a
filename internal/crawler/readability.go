package crawler

import (
	"bytes"
	"context"
	"net/http"
	"net/url"
	"strings"

	readability "github.com/go-shiori/go-readability"

	"sitechat/internal/domain"
)

// ReadabilityExtractor fetches a page and extracts the article body
// with go-readability instead of the fixed selector lists. Useful for
// article-shaped pages where the heuristics pick up too much chrome.
type ReadabilityExtractor struct {
	client    *http.Client
	userAgent string
}

// NewReadabilityExtractor creates a readability-based content extractor.
func NewReadabilityExtractor(cfg Config) *ReadabilityExtractor {
	cfg.applyDefaults()
	return &ReadabilityExtractor{
		client:    &http.Client{Timeout: cfg.Timeout},
		userAgent: cfg.UserAgent,
	}
}

// Extract fetches the URL and returns the readability article text,
// cleaned the same way as the selector extractor.
func (e *ReadabilityExtractor) Extract(ctx context.Context, pageURL string) (domain.PageContent, error) {
	if !ValidateURL(pageURL) {
		return domain.PageContent{}, domain.ErrInvalidURL
	}
	body, err := fetch(ctx, e.client, e.userAgent, pageURL)
	if err != nil {
		return domain.PageContent{}, err
	}

	article, err := readability.FromReader(bytes.NewReader(body), mustParseURL(pageURL))
	if err != nil {
		return domain.PageContent{}, domain.ErrEmptyContent
	}

	title := strings.TrimSpace(article.Title)
	if title == "" {
		title = DefaultTitle
	}
	text := CleanText(article.TextContent)
	if text == "" {
		return domain.PageContent{}, domain.ErrEmptyContent
	}
	return domain.PageContent{Title: title, Text: text, URL: pageURL}, nil
}

func mustParseURL(raw string) *url.URL {
	u, err := url.Parse(raw)
	if err != nil {
		return &url.URL{}
	}
	return u
}
