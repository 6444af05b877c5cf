// Package pipeline composes query building, fetching and parsing into a single news fetch
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/umputun/newsdesk/pkg/domain"
	"github.com/umputun/newsdesk/pkg/feed"
)

//go:generate moq -out mocks/fetcher.go -pkg mocks -skip-ensure -fmt goimports . Fetcher
//go:generate moq -out mocks/connectivity.go -pkg mocks -skip-ensure -fmt goimports . ConnectivityChecker

// ErrNoConnectivity returned when the network is known to be unreachable, nothing is fetched
var ErrNoConnectivity = errors.New("no internet connection")

// Fetcher retrieves a raw response body for the URL
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// ConnectivityChecker reports whether the network is reachable
type ConnectivityChecker interface {
	Connected(ctx context.Context) bool
}

// Reason classifies why a connected fetch produced no stories
type Reason string

// fetch failure reasons
const (
	ReasonNone          Reason = ""
	ReasonInvalidURL    Reason = "invalid_url"
	ReasonNetwork       Reason = "network_error"
	ReasonHTTPStatus    Reason = "http_status"
	ReasonMalformedJSON Reason = "malformed_json"
)

// Config holds the fixed API endpoint and credential
type Config struct {
	BaseURL string
	APIKey  string
}

// Pipeline runs query building, fetching and parsing for the given settings
type Pipeline struct {
	fetcher Fetcher
	checker ConnectivityChecker
	baseURL string
	apiKey  string
}

// Result is a detailed outcome of a connected run
type Result struct {
	Stories []domain.NewsStory
	Query   string
	Reason  Reason
	Err     error // fetch or decode failure, Stories is empty when set
}

// New makes a pipeline. A nil checker means the network is always considered reachable.
func New(fetcher Fetcher, checker ConnectivityChecker, cfg Config) *Pipeline {
	if cfg.BaseURL == "" {
		cfg.BaseURL = feed.DefaultBaseURL
	}
	return &Pipeline{fetcher: fetcher, checker: checker, baseURL: cfg.BaseURL, apiKey: cfg.APIKey}
}

// Run fetches stories for settings. It returns ErrNoConnectivity if isConnected is false, without
// building a query or touching the network. Any fetch failure gives an empty slice and nil error,
// callers show it the same way as zero results.
func (p *Pipeline) Run(ctx context.Context, settings domain.Settings, isConnected bool) ([]domain.NewsStory, error) {
	res, err := p.RunDetailed(ctx, settings, isConnected)
	if err != nil {
		return nil, err
	}
	return res.Stories, nil
}

// RunDetailed is Run with the failure reason kept, so a failed fetch can be told from zero results
func (p *Pipeline) RunDetailed(ctx context.Context, settings domain.Settings, isConnected bool) (Result, error) {
	if !isConnected {
		return Result{}, ErrNoConnectivity
	}

	settings = settings.WithDefaults()
	query := feed.BuildQuery(p.baseURL, settings.SearchTerm, settings.OrderBy, p.apiKey)
	res := Result{Stories: []domain.NewsStory{}, Query: query}
	log.Printf("[DEBUG] fetching stories, q=%q, order-by=%s", settings.SearchTerm, settings.OrderBy)

	body, err := p.fetcher.Fetch(ctx, query)
	if err != nil {
		log.Printf("[WARN] fetch failed: %v", err)
		res.Err, res.Reason = fmt.Errorf("fetch stories: %w", err), reasonOf(err)
		return res, nil
	}

	stories, err := feed.DecodeStories(body)
	if err != nil {
		log.Printf("[WARN] can't decode stories: %v", err)
		res.Err, res.Reason = err, ReasonMalformedJSON
		return res, nil
	}
	res.Stories = stories
	log.Printf("[DEBUG] fetched %d stories", len(stories))
	return res, nil
}

// Fetch asks the connectivity checker first and then runs the pipeline
func (p *Pipeline) Fetch(ctx context.Context, settings domain.Settings) ([]domain.NewsStory, error) {
	return p.Run(ctx, settings, p.connected(ctx))
}

// FetchDetailed asks the connectivity checker first and then runs the detailed pipeline
func (p *Pipeline) FetchDetailed(ctx context.Context, settings domain.Settings) (Result, error) {
	return p.RunDetailed(ctx, settings, p.connected(ctx))
}

func (p *Pipeline) connected(ctx context.Context) bool {
	if p.checker == nil {
		return true
	}
	return p.checker.Connected(ctx)
}

// reasonOf maps fetcher errors to a reason
func reasonOf(err error) Reason {
	var statusErr *feed.StatusError
	switch {
	case errors.As(err, &statusErr):
		return ReasonHTTPStatus
	case errors.Is(err, feed.ErrInvalidURL):
		return ReasonInvalidURL
	default:
		return ReasonNetwork
	}
}
