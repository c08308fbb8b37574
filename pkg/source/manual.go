package source

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/dealscope/pkg/domain"
)

// Extractor makes a listing from a product page url
type Extractor interface {
	Extract(ctx context.Context, pageURL string) (domain.Listing, error)
}

// Manual holds operator-submitted urls until the next cycle drains them
type Manual struct {
	extractor Extractor
	mu        sync.Mutex
	queue     []string
}

// NewManual makes a manual source, nil extractor uses a default PageSource
func NewManual(extractor Extractor) *Manual {
	if extractor == nil {
		extractor = NewPageSource(nil)
	}
	return &Manual{extractor: extractor}
}

// Name returns source name
func (m *Manual) Name() string { return "manual" }

// Add queues a product url, returns false if it is already queued
func (m *Manual) Add(rawURL string) (bool, error) {
	rawURL = strings.TrimSpace(rawURL)
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return false, fmt.Errorf("invalid url %q", rawURL)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, q := range m.queue {
		if q == rawURL {
			return false, nil
		}
	}
	m.queue = append(m.queue, rawURL)
	return true, nil
}

// Pending returns the number of queued urls
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.queue)
}

// Fetch drains the queue and extracts every url, query is ignored.
// Urls left over after max are kept for the next call.
func (m *Manual) Fetch(ctx context.Context, _ string, max int) ([]domain.Listing, error) {
	m.mu.Lock()
	batch := m.queue
	if max > 0 && len(batch) > max {
		batch = m.queue[:max]
		m.queue = append([]string(nil), m.queue[max:]...)
	} else {
		m.queue = nil
	}
	m.mu.Unlock()

	res := make([]domain.Listing, 0, len(batch))
	var errs []error
	for _, u := range batch {
		l, err := m.extractor.Extract(ctx, u)
		if err != nil {
			lgr.Printf("[WARN] can't extract manual url %s: %v", u, err)
			errs = append(errs, fmt.Errorf("extract %s: %w", u, err))
			continue
		}
		res = append(res, l)
	}
	return res, errors.Join(errs...)
}
