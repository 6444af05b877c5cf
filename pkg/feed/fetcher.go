package feed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// fixed network policy for API requests
const (
	ConnectTimeout = 15 * time.Second
	ReadTimeout    = 10 * time.Second
)

var (
	// ErrInvalidURL returned for malformed or non-absolute request URLs, no request is made
	ErrInvalidURL = errors.New("invalid url")
	// ErrNetwork returned for dial, DNS, timeout and read failures
	ErrNetwork = errors.New("network error")
)

// StatusError returned when the API responds with anything but 200
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code: %d", e.Code)
}

// HTTPFetcher performs single GET requests against the content API
type HTTPFetcher struct {
	client    *http.Client
	userAgent string
}

// NewHTTPFetcher creates a fetcher with fixed connect and read timeouts
func NewHTTPFetcher(userAgent string) *HTTPFetcher {
	return newHTTPFetcher(userAgent, ConnectTimeout, ReadTimeout)
}

func newHTTPFetcher(userAgent string, connectTimeout, readTimeout time.Duration) *HTTPFetcher {
	dialer := &readDeadlineDialer{
		dialer:      &net.Dialer{Timeout: connectTimeout},
		readTimeout: readTimeout,
	}
	return &HTTPFetcher{
		client: &http.Client{
			Transport: &http.Transport{
				Proxy:                 http.ProxyFromEnvironment,
				DialContext:           dialer.DialContext,
				TLSHandshakeTimeout:   connectTimeout,
				ResponseHeaderTimeout: readTimeout,
				DisableKeepAlives:     true, // connection is closed after every fetch
			},
		},
		userAgent: userAgent,
	}
}

// Fetch makes one GET request and returns the response body as text.
// Errors are ErrInvalidURL, ErrNetwork or *StatusError. The response body is always closed.
func (f *HTTPFetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	if err := validateURL(rawURL); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("%w: create request: %w", ErrInvalidURL, err)
	}
	addAPIHeaders(req, f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &StatusError{Code: resp.StatusCode}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: read body: %w", ErrNetwork, err)
	}
	return strings.ToValidUTF8(string(data), "�"), nil
}

// validateURL accepts absolute http(s) URLs with a host
func validateURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}
	if !u.IsAbs() || u.Host == "" {
		return fmt.Errorf("%w: %q is not absolute", ErrInvalidURL, rawURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: unsupported scheme %q", ErrInvalidURL, u.Scheme)
	}
	return nil
}

// readDeadlineDialer dials connections which fail any single read that stalls longer than readTimeout
type readDeadlineDialer struct {
	dialer      *net.Dialer
	readTimeout time.Duration
}

// DialContext dials with the connect timeout and wraps the connection
func (d *readDeadlineDialer) DialContext(ctx context.Context, network, addr string) (net.Conn, error) {
	conn, err := d.dialer.DialContext(ctx, network, addr)
	if err != nil {
		return nil, err
	}
	return &readDeadlineConn{Conn: conn, readTimeout: d.readTimeout}, nil
}

type readDeadlineConn struct {
	net.Conn
	readTimeout time.Duration
}

func (c *readDeadlineConn) Read(p []byte) (int, error) {
	if err := c.Conn.SetReadDeadline(time.Now().Add(c.readTimeout)); err != nil {
		return 0, err
	}
	return c.Conn.Read(p)
}
