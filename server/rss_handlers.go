package server

import (
	"net/http"
	"strconv"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/dealscope/pkg/feed"
)

// rssHandler serves the feed of recently published deals, ?limit=N overrides the configured size
func (s *Server) rssHandler(w http.ResponseWriter, r *http.Request) {
	baseURL, limit := s.config.GetRSSConfig()
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n < limit {
			limit = n
		}
	}

	records, err := s.seen.Recent(r.Context(), limit)
	if err != nil {
		lgr.Printf("[ERROR] failed to get deals for RSS: %v", err)
		http.Error(w, "Failed to generate RSS feed", http.StatusInternalServerError)
		return
	}

	rss, err := feed.NewGenerator(baseURL).GenerateRSS(records)
	if err != nil {
		lgr.Printf("[ERROR] failed to generate RSS feed: %v", err)
		http.Error(w, "Failed to generate RSS feed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	if _, err := w.Write([]byte(rss)); err != nil {
		lgr.Printf("[ERROR] failed to write RSS response: %v", err)
	}
}
