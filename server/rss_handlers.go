package server

import (
	"errors"
	"log"
	"net/http"

	"github.com/umputun/newsdesk/pkg/feed"
	"github.com/umputun/newsdesk/pkg/pipeline"
)

// rssHandler serves RSS feed of stories for q and order-by query params
func (s *Server) rssHandler(w http.ResponseWriter, r *http.Request) {
	settings, err := s.requestSettings(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	stories, err := s.stories.Fetch(r.Context(), settings)
	if err != nil {
		if errors.Is(err, pipeline.ErrNoConnectivity) {
			http.Error(w, "No internet connection", http.StatusServiceUnavailable)
			return
		}
		log.Printf("[ERROR] failed to get stories for RSS: %v", err)
		http.Error(w, "Failed to generate RSS feed", http.StatusInternalServerError)
		return
	}

	generator := feed.NewGenerator(s.config.GetFullConfig().Server.BaseURL)
	rss, err := generator.GenerateRSS(stories, settings)
	if err != nil {
		log.Printf("[ERROR] failed to generate RSS feed: %v", err)
		http.Error(w, "Failed to generate RSS feed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	if _, err := w.Write([]byte(rss)); err != nil {
		log.Printf("[ERROR] failed to write RSS response: %v", err)
	}
}
