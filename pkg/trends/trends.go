// Package trends provides trending search terms used for scoring and keyword search.
package trends

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/mmcdole/gofeed"

	"github.com/umputun/dealscope/pkg/domain"
)

// Provider returns the current trending terms
type Provider interface {
	CurrentTerms(ctx context.Context) ([]domain.TrendingTerm, error)
}

// Static is a provider with a fixed term list
type Static []domain.TrendingTerm

// NewStatic makes a fixed provider from plain terms, rank follows the given order
func NewStatic(terms []string, category string) Static {
	res := make(Static, 0, len(terms))
	seen := make(map[string]bool, len(terms))
	for _, t := range terms {
		term := strings.TrimSpace(t)
		if term == "" || seen[strings.ToLower(term)] {
			continue
		}
		seen[strings.ToLower(term)] = true
		res = append(res, domain.TrendingTerm{Term: term, Rank: len(res) + 1, Category: category})
	}
	return res
}

// CurrentTerms returns the fixed terms
func (s Static) CurrentTerms(context.Context) ([]domain.TrendingTerm, error) {
	return s, nil
}

// FeedFetcher reads terms from an RSS feed where each item title is a term,
// e.g. the Google Trends daily RSS feed
type FeedFetcher struct {
	URL      string
	Category string
	Client   *http.Client
}

// CurrentTerms fetches and parses the feed, rank follows item order
func (f *FeedFetcher) CurrentTerms(ctx context.Context) ([]domain.TrendingTerm, error) {
	client := f.Client
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.URL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; Dealscope/1.0)")
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch trends %s: %w", f.URL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code %d for %s", resp.StatusCode, f.URL)
	}

	feed, err := gofeed.NewParser().Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse trends feed: %w", err)
	}

	res := make([]domain.TrendingTerm, 0, len(feed.Items))
	seen := make(map[string]bool, len(feed.Items))
	for _, item := range feed.Items {
		term := strings.TrimSpace(item.Title)
		if term == "" || seen[strings.ToLower(term)] {
			continue
		}
		seen[strings.ToLower(term)] = true
		res = append(res, domain.TrendingTerm{Term: term, Rank: len(res) + 1, Category: f.Category})
	}
	return res, nil
}

// cacheFile is the on-disk cache layout
type cacheFile struct {
	LastUpdated time.Time             `json:"last_updated"`
	Trends      []domain.TrendingTerm `json:"trends"`
}

// Cached wraps a provider with a TTL and an optional JSON cache file surviving restarts.
// A failed refresh falls back to the last known terms.
type Cached struct {
	provider Provider
	ttl      time.Duration
	path     string
	now      func() time.Time

	mu      sync.Mutex
	terms   []domain.TrendingTerm
	updated time.Time
	loaded  bool
}

// NewCached makes a cached provider, empty path keeps the cache in memory only
func NewCached(provider Provider, ttl time.Duration, path string) *Cached {
	if ttl <= 0 {
		ttl = 6 * time.Hour
	}
	return &Cached{provider: provider, ttl: ttl, path: path, now: time.Now}
}

// CurrentTerms returns cached terms while fresh, refreshes them otherwise
func (c *Cached) CurrentTerms(ctx context.Context) ([]domain.TrendingTerm, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.loaded {
		c.loaded = true
		c.loadFile()
	}
	if !c.updated.IsZero() && c.now().Before(c.updated.Add(c.ttl)) {
		return c.terms, nil
	}

	terms, err := c.provider.CurrentTerms(ctx)
	if err != nil {
		if len(c.terms) > 0 {
			lgr.Printf("[WARN] trends refresh failed, using %d cached terms: %v", len(c.terms), err)
			return c.terms, nil
		}
		return nil, fmt.Errorf("refresh trends: %w", err)
	}

	c.terms, c.updated = terms, c.now()
	lgr.Printf("[INFO] loaded %d trending terms", len(terms))
	if err := c.saveFile(); err != nil {
		lgr.Printf("[WARN] can't save trends cache %s: %v", c.path, err)
	}
	return c.terms, nil
}

func (c *Cached) loadFile() {
	if c.path == "" {
		return
	}
	data, err := os.ReadFile(c.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			lgr.Printf("[WARN] can't read trends cache %s: %v", c.path, err)
		}
		return
	}
	var cf cacheFile
	if err := json.Unmarshal(data, &cf); err != nil {
		lgr.Printf("[WARN] can't decode trends cache %s: %v", c.path, err)
		return
	}
	c.terms, c.updated = cf.Trends, cf.LastUpdated
	lgr.Printf("[DEBUG] trends cache %s loaded, %d terms from %s", c.path, len(cf.Trends), cf.LastUpdated.Format(time.RFC3339))
}

func (c *Cached) saveFile() error {
	if c.path == "" {
		return nil
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(cacheFile{LastUpdated: c.updated, Trends: c.terms}); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	tmp := c.path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return os.Rename(tmp, c.path)
}
