package server

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/umputun/newsdesk/pkg/content"
	"github.com/umputun/newsdesk/pkg/domain"
	"github.com/umputun/newsdesk/pkg/pipeline"
)

// ErrReaderDisabled returned by reader routes when article extraction is off
var ErrReaderDisabled = errors.New("article reader is disabled")

// storiesResponse is the JSON body of the stories endpoint
type storiesResponse struct {
	Stories []domain.NewsStory `json:"stories"`
	Count   int                `json:"count"`
	Query   string             `json:"query"`
	OrderBy string             `json:"order_by"`
}

// articleResponse is the JSON body of the read endpoint
type articleResponse struct {
	URL   string `json:"url"`
	Title string `json:"title"`
	Text  string `json:"text"`
}

// statusHandler returns server status
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	status := map[string]any{
		"status":  "ok",
		"version": s.version,
		"time":    time.Now().UTC(),
		"reader":  s.reader != nil,
	}
	RenderJSON(w, r, http.StatusOK, status)
}

// storiesHandler returns stories for q and order-by query params as JSON
func (s *Server) storiesHandler(w http.ResponseWriter, r *http.Request) {
	settings, err := s.requestSettings(r)
	if err != nil {
		RenderError(w, r, err, http.StatusBadRequest)
		return
	}

	stories, err := s.stories.Fetch(r.Context(), settings)
	if err != nil {
		if errors.Is(err, pipeline.ErrNoConnectivity) {
			RenderError(w, r, err, http.StatusServiceUnavailable)
			return
		}
		log.Printf("[ERROR] failed to fetch stories: %v", err)
		RenderError(w, r, err, http.StatusInternalServerError)
		return
	}
	if stories == nil {
		stories = []domain.NewsStory{}
	}

	RenderJSON(w, r, http.StatusOK, storiesResponse{
		Stories: stories,
		Count:   len(stories),
		Query:   settings.SearchTerm,
		OrderBy: settings.OrderBy.String(),
	})
}

// readHandler returns the article text of url query param as JSON
func (s *Server) readHandler(w http.ResponseWriter, r *http.Request) {
	if s.reader == nil {
		RenderError(w, r, ErrReaderDisabled, http.StatusNotFound)
		return
	}

	storyURL, err := s.storyURL(r)
	if err != nil {
		RenderError(w, r, err, http.StatusBadRequest)
		return
	}

	article, err := s.reader.Read(r.Context(), storyURL)
	if err != nil {
		log.Printf("[WARN] failed to read %s: %v", storyURL, err)
		RenderError(w, r, err, http.StatusBadGateway)
		return
	}

	RenderJSON(w, r, http.StatusOK, articleResponse{URL: article.URL, Title: article.Title, Text: article.Text})
}

// storyURL returns the url query param, only urls on the allowed story hosts pass
func (s *Server) storyURL(r *http.Request) (string, error) {
	storyURL := strings.TrimSpace(r.URL.Query().Get("url"))
	if storyURL == "" {
		return "", errors.New("url parameter is required")
	}
	if err := content.CheckHost(storyURL, s.config.GetFullConfig().Reader.AllowedHosts); err != nil {
		return "", fmt.Errorf("can't read %s: %w", storyURL, err)
	}
	return storyURL, nil
}

// requestSettings builds search settings from query params on top of the configured defaults.
// An absent q keeps the configured term, an empty q means all stories.
func (s *Server) requestSettings(r *http.Request) (domain.Settings, error) {
	settings := s.config.GetFullConfig().Settings()
	query := r.URL.Query()

	if query.Has("q") {
		settings.SearchTerm = query.Get("q")
	}
	if query.Has("order-by") {
		order, err := domain.ParseOrderBy(query.Get("order-by"))
		if err != nil {
			return domain.Settings{}, fmt.Errorf("invalid order-by: %w", err)
		}
		settings.OrderBy = order
	}
	return settings, nil
}
