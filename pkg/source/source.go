// Package source provides listing sources and the per-source run used by the cycle.
package source

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/dealscope/pkg/config"
	"github.com/umputun/dealscope/pkg/domain"
)

// Source yields raw candidate listings for a query or a feed URL
type Source interface {
	Name() string
	Fetch(ctx context.Context, query string, max int) ([]domain.Listing, error)
}

// Entry is a source with its schedule and filters
type Entry struct {
	Source      Source
	Every       int      // run on cycles divisible by Every
	Searches    bool     // source takes a query, runs once per selected term
	QueryMode   string   // config.QueryModeAll or config.QueryModeRotate
	Queries     []string // static queries used when no hot terms are set
	MaxResults  int
	Delay       time.Duration // pause between queries of this source
	Timeout     time.Duration // per fetch call
	MinDiscount float64       // listings with smaller best discount are dropped
}

// Result is the outcome of one source run, Err is a SourceFailure when set
type Result struct {
	Source   string
	Listings []domain.Listing
	Rejected int
	Err      error
}

// Due reports if the entry runs on this cycle number
func (e Entry) Due(cycle int64) bool {
	if e.Every <= 1 {
		return true
	}
	return cycle%int64(e.Every) == 0
}

// Terms returns the queries this entry runs on the cycle. Non-search sources get a single empty query.
func (e Entry) Terms(cycle int64, hotTerms []string) []string {
	if !e.Searches {
		return []string{""}
	}
	terms := hotTerms
	if len(terms) == 0 {
		terms = e.Queries
	}
	if len(terms) == 0 {
		return nil
	}
	if e.QueryMode == config.QueryModeRotate {
		idx := int(cycle % int64(len(terms)))
		if idx < 0 {
			idx += len(terms)
		}
		return []string{terms[idx]}
	}
	return terms
}

// Run fetches all queries of the entry, normalizes listings and applies the discount filter.
// A failed query does not stop the others; errors are collected into a SourceFailure.
func (e Entry) Run(ctx context.Context, cycle int64, hotTerms []string, now time.Time) Result {
	res := Result{Source: e.Source.Name()}
	var errs []error

	for i, term := range e.Terms(cycle, hotTerms) {
		if i > 0 && e.Delay > 0 {
			select {
			case <-ctx.Done():
				errs = append(errs, ctx.Err())
				res.Err = &domain.SourceFailure{Source: res.Source, Err: errors.Join(errs...)}
				return res
			case <-time.After(e.Delay):
			}
		}

		listings, err := e.fetch(ctx, term)
		if err != nil {
			if term != "" {
				err = fmt.Errorf("query %q: %w", term, err)
			}
			errs = append(errs, err)
		}

		for _, l := range listings {
			if l.Source == "" {
				l.Source = res.Source
			}
			if l.FetchedAt.IsZero() {
				l.FetchedAt = now
			}
			if err := Normalize(&l); err != nil {
				lgr.Printf("[DEBUG] rejected listing from %s: %v", res.Source, err)
				res.Rejected++
				continue
			}
			if e.MinDiscount > 0 && l.BestDiscountPct() < e.MinDiscount {
				continue
			}
			res.Listings = append(res.Listings, l)
		}
	}

	if len(errs) > 0 {
		res.Err = &domain.SourceFailure{Source: res.Source, Err: errors.Join(errs...)}
	}
	return res
}

func (e Entry) fetch(ctx context.Context, term string) ([]domain.Listing, error) {
	if e.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.Timeout)
		defer cancel()
	}
	return e.Source.Fetch(ctx, term, e.MaxResults)
}

// Normalize derives identity and store when missing and checks the listing is usable
func Normalize(l *domain.Listing) error {
	l.Title = strings.TrimSpace(l.Title)
	if l.Title == "" {
		return errors.New("empty title")
	}
	if l.Price <= 0 {
		return fmt.Errorf("invalid price %.2f for %q", l.Price, l.Title)
	}
	if l.OriginalPrice != nil && *l.OriginalPrice < l.Price {
		l.OriginalPrice = nil // an original price below current is noise
	}
	if l.SourceDiscountPct != nil && *l.SourceDiscountPct < 0 {
		l.SourceDiscountPct = nil
	}
	if l.Identity == "" {
		id, err := Identity(l.URL)
		if err != nil {
			return fmt.Errorf("no identity for %q: %w", l.Title, err)
		}
		l.Identity = id
	}
	if l.Store == "" {
		l.Store = StoreName(l.URL)
	}
	return nil
}

// NewEntry makes a source entry from config
func NewEntry(cfg config.SourceConfig) (Entry, error) {
	entry := Entry{
		Every:       cfg.Every,
		QueryMode:   cfg.QueryMode,
		Queries:     cfg.Queries,
		MaxResults:  cfg.MaxResults,
		Delay:       cfg.Delay,
		Timeout:     cfg.Timeout,
		MinDiscount: cfg.MinDiscount,
	}
	origin := domain.Origin(cfg.Origin)
	client := newHTTPClient(cfg.Timeout, cfg.Headers)

	switch cfg.Type {
	case config.SourceTypeFeed, "":
		entry.Source = NewFeedSource(FeedParams{Name: cfg.Name, URL: cfg.URL, Origin: origin, Store: cfg.Store, Client: client})
	case config.SourceTypeSearch:
		entry.Searches = true
		entry.Source = NewSearchSource(FeedParams{Name: cfg.Name, URL: cfg.URL, Origin: origin, Store: cfg.Store, Client: client})
	case config.SourceTypeJSON:
		entry.Searches = strings.Contains(cfg.URL, queryPlaceholder)
		entry.Source = NewJSONSource(JSONParams{Name: cfg.Name, URL: cfg.URL, Origin: origin, Store: cfg.Store,
			Fields: cfg.Fields, Client: client})
	default:
		return Entry{}, fmt.Errorf("unknown source type %q", cfg.Type)
	}
	return entry, nil
}
