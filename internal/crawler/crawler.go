package crawler

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"sitechat/internal/domain"
)

const (
	// DefaultUserAgent mimics a desktop browser; many sites refuse
	// requests with an obvious bot agent.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

	// DefaultTimeout bounds a single page fetch.
	DefaultTimeout = 10 * time.Second

	// DefaultTitle is used when a page carries no <title>.
	DefaultTitle = "Untitled Page"
)

// unwantedSelectors is the deny-list of structural and boilerplate
// subtrees removed before content extraction.
var unwantedSelectors = []string{
	"header", "footer", "nav", "aside",
	".header", ".footer", ".navigation", ".nav",
	".sidebar", ".advertisement", ".ads", ".ad",
	".menu", ".navbar", ".footer-links",
	"script", "style", "noscript",
	".social-share", ".share-buttons",
	".cookie-banner", ".popup", ".modal",
}

// mainSelectors is the allow-list of likely main-content containers,
// in priority order. The first match wins.
var mainSelectors = []string{
	"main", "article", ".main-content", ".content",
	".post-content", ".entry-content", "#main",
	"#content", ".article-body", ".post-body",
}

// Config configures page fetching shared by all extractors.
type Config struct {
	UserAgent string
	Timeout   time.Duration
}

func (c *Config) applyDefaults() {
	if c.UserAgent == "" {
		c.UserAgent = DefaultUserAgent
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
}

// ValidateURL reports whether the string parses as a URL with both a
// scheme and a host. No I/O is performed.
func ValidateURL(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	return u.Scheme != "" && u.Host != ""
}

// SelectorExtractor fetches a page and extracts its main content using
// fixed deny/allow selector lists.
type SelectorExtractor struct {
	client    *http.Client
	userAgent string
}

// NewSelectorExtractor creates a selector-based content extractor.
func NewSelectorExtractor(cfg Config) *SelectorExtractor {
	cfg.applyDefaults()
	return &SelectorExtractor{
		client:    &http.Client{Timeout: cfg.Timeout},
		userAgent: cfg.UserAgent,
	}
}

// Extract fetches the URL and returns its title and cleaned body text.
func (e *SelectorExtractor) Extract(ctx context.Context, pageURL string) (domain.PageContent, error) {
	if !ValidateURL(pageURL) {
		return domain.PageContent{}, domain.ErrInvalidURL
	}
	body, err := fetch(ctx, e.client, e.userAgent, pageURL)
	if err != nil {
		return domain.PageContent{}, err
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return domain.PageContent{}, fmt.Errorf("parsing HTML: %w", err)
	}

	for _, sel := range unwantedSelectors {
		doc.Find(sel).Remove()
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		title = DefaultTitle
	}

	var text string
	for _, sel := range mainSelectors {
		if s := doc.Find(sel).First(); s.Length() > 0 {
			text = textContent(s)
			if text != "" {
				break
			}
		}
	}
	if text == "" {
		if b := doc.Find("body").First(); b.Length() > 0 {
			text = textContent(b)
		}
	}

	text = CleanText(text)
	if text == "" {
		return domain.PageContent{}, domain.ErrEmptyContent
	}
	return domain.PageContent{Title: title, Text: text, URL: pageURL}, nil
}

// fetch performs a single GET with the configured user agent. Any
// transport error or non-2xx status wraps domain.ErrFetchFailed.
func fetch(ctx context.Context, client *http.Client, userAgent, pageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrFetchFailed, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrFetchFailed, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: unexpected status %s", domain.ErrFetchFailed, resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrFetchFailed, err)
	}
	return body, nil
}

// textContent walks text nodes under the selection, separating them
// with single spaces. Comment nodes and their subtrees are skipped.
func textContent(sel *goquery.Selection) string {
	var b strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.CommentNode:
			return
		case html.TextNode:
			if t := strings.TrimSpace(n.Data); t != "" {
				b.WriteString(t)
				b.WriteByte(' ')
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range sel.Nodes {
		walk(n)
	}
	return strings.TrimSpace(b.String())
}
