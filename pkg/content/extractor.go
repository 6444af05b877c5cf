// Package content pulls readable article text from story pages
package content

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/markusmobius/go-trafilatura"
)

// maxPageSize caps the page body handed to the extractor
const maxPageSize = 8 * 1024 * 1024

// ErrNoContent returned when the page has no extractable text
var ErrNoContent = errors.New("no text content extracted")

// Article is the readable part of a story page
type Article struct {
	URL   string
	Title string
	Text  string
}

// HTTPExtractor extracts article content from URLs using trafilatura
type HTTPExtractor struct {
	userAgent string
	client    *http.Client
	hosts     []string // empty means any host
}

// NewHTTPExtractor creates a new content extractor, empty userAgent means DefaultUserAgent
func NewHTTPExtractor(timeout time.Duration, userAgent string) *HTTPExtractor {
	return &HTTPExtractor{
		userAgent: userAgent,
		client:    &http.Client{Timeout: timeout},
	}
}

// RestrictHosts limits pages, redirect targets included, to the given hosts
func (e *HTTPExtractor) RestrictHosts(hosts ...string) *HTTPExtractor {
	e.hosts = hosts
	e.client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		if len(via) >= maxRedirects {
			return fmt.Errorf("stopped after %d redirects", maxRedirects)
		}
		return checkHost(req.URL, e.hosts)
	}
	return e
}

// Extract retrieves and extracts text content from the given URL
func (e *HTTPExtractor) Extract(ctx context.Context, urlStr string) (string, error) {
	article, err := e.Read(ctx, urlStr)
	if err != nil {
		return "", err
	}
	return article.Text, nil
}

// Read retrieves the page and returns its title and main text
func (e *HTTPExtractor) Read(ctx context.Context, urlStr string) (Article, error) {
	parsedURL, err := url.Parse(urlStr)
	if err != nil {
		return Article{}, fmt.Errorf("parse URL: %w", err)
	}
	if (parsedURL.Scheme != "http" && parsedURL.Scheme != "https") || parsedURL.Host == "" {
		return Article{}, fmt.Errorf("invalid URL: %q", urlStr)
	}
	if len(e.hosts) > 0 {
		if err := checkHost(parsedURL, e.hosts); err != nil {
			return Article{}, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, http.NoBody)
	if err != nil {
		return Article{}, fmt.Errorf("create request: %w", err)
	}
	addPageHeaders(req, e.userAgent)

	resp, err := e.client.Do(req)
	if err != nil {
		return Article{}, fmt.Errorf("fetch URL %s: %w", urlStr, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Article{}, fmt.Errorf("unexpected status code %d for URL %s", resp.StatusCode, urlStr)
	}

	opts := trafilatura.Options{
		EnableFallback:  true,
		ExcludeComments: true,
		Deduplicate:     true,
		OriginalURL:     parsedURL,
	}

	result, err := trafilatura.Extract(io.LimitReader(resp.Body, maxPageSize), opts)
	if err != nil {
		return Article{}, fmt.Errorf("extract content from %s: %w", urlStr, err)
	}
	if result == nil {
		return Article{}, fmt.Errorf("%w from %s", ErrNoContent, urlStr)
	}

	text := strings.TrimSpace(result.ContentText)
	if text == "" {
		return Article{}, fmt.Errorf("%w from %s", ErrNoContent, urlStr)
	}

	return Article{URL: urlStr, Title: strings.TrimSpace(result.Metadata.Title), Text: text}, nil
}
