package server

import (
	"bytes"
	"errors"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/umputun/newsdesk/pkg/domain"
	"github.com/umputun/newsdesk/pkg/pipeline"
)

const (
	// page messages
	msgEmpty   = "No news stories found."
	msgOffline = "No internet connection."

	// template names
	templateStories = "stories-page"
	templateRead    = "read-page"
)

// storiesPage is the data of the story list page
type storiesPage struct {
	Query   string
	OrderBy string
	Orders  []string
	Stories []storyRow
	Message string
	Offline bool
	RSSURL  string
	Reader  bool
}

// storyRow is a story prepared for display
type storyRow struct {
	URL     string
	Title   string
	Section string
	Author  string
	Date    string
	ReadURL string
}

// articlePage is the data of the reader page
type articlePage struct {
	URL        string
	Title      string
	Paragraphs []string
}

// storiesPageHandler renders the story list as HTML
func (s *Server) storiesPageHandler(w http.ResponseWriter, r *http.Request) {
	settings, err := s.requestSettings(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	page := storiesPage{
		Query:   settings.SearchTerm,
		OrderBy: settings.OrderBy.String(),
		Orders:  []string{domain.OrderNewest.String(), domain.OrderOldest.String(), domain.OrderRelevance.String()},
		RSSURL:  rssLink(settings),
		Reader:  s.reader != nil,
	}

	code := http.StatusOK
	stories, err := s.stories.Fetch(r.Context(), settings)
	switch {
	case errors.Is(err, pipeline.ErrNoConnectivity):
		page.Offline, page.Message = true, msgOffline
		code = http.StatusServiceUnavailable
	case err != nil:
		log.Printf("[ERROR] failed to fetch stories: %v", err)
		page.Message = msgEmpty
	case len(stories) == 0:
		page.Message = msgEmpty
	default:
		page.Stories = make([]storyRow, 0, len(stories))
		for _, st := range stories {
			page.Stories = append(page.Stories, storyRow{
				URL:     st.URL,
				Title:   st.Title,
				Section: st.Section,
				Author:  st.Author,
				Date:    st.DisplayDate(),
				ReadURL: "/read?" + url.Values{"url": {st.URL}}.Encode(),
			})
		}
	}

	s.renderPage(w, code, templateStories, page)
}

// readPageHandler renders the article text of url query param as HTML
func (s *Server) readPageHandler(w http.ResponseWriter, r *http.Request) {
	if s.reader == nil {
		http.Error(w, ErrReaderDisabled.Error(), http.StatusNotFound)
		return
	}

	storyURL, err := s.storyURL(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	article, err := s.reader.Read(r.Context(), storyURL)
	if err != nil {
		log.Printf("[WARN] failed to read %s: %v", storyURL, err)
		http.Error(w, "Failed to read article", http.StatusBadGateway)
		return
	}

	page := articlePage{URL: article.URL, Title: article.Title, Paragraphs: paragraphs(article.Text)}
	if page.Title == "" {
		page.Title = article.URL
	}
	s.renderPage(w, http.StatusOK, templateRead, page)
}

// renderPage executes the template into a buffer first so a failure can still return 500
func (s *Server) renderPage(w http.ResponseWriter, code int, name string, data any) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		log.Printf("[ERROR] failed to render %s: %v", name, err)
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	if _, err := buf.WriteTo(w); err != nil {
		log.Printf("[WARN] failed to write response: %v", err)
	}
}

// rssLink makes the relative RSS url for the search
func rssLink(settings domain.Settings) string {
	params := url.Values{}
	if settings.SearchTerm != "" {
		params.Set("q", settings.SearchTerm)
	}
	params.Set("order-by", settings.OrderBy.String())
	return "/rss?" + params.Encode()
}

// paragraphs splits extracted text on blank or single line breaks
func paragraphs(text string) []string {
	var res []string
	for _, p := range strings.Split(text, "\n") {
		if p = strings.TrimSpace(p); p != "" {
			res = append(res, p)
		}
	}
	return res
}
