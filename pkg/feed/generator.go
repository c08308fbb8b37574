// Package feed renders the recently published deals as an RSS 2.0 feed.
package feed

import (
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"github.com/umputun/dealscope/pkg/domain"
	"github.com/umputun/dealscope/pkg/notify"
)

// Generator creates RSS feeds from seen records
type Generator struct {
	baseURL string
	now     func() time.Time
}

// NewGenerator creates a new feed generator
func NewGenerator(baseURL string) *Generator {
	return &Generator{
		baseURL: strings.TrimRight(baseURL, "/"),
		now:     time.Now,
	}
}

// GenerateRSS creates an RSS 2.0 feed of published deals, records are expected newest first.
// An item guid changes with the price, so a republished price drop shows up as a new entry.
func (g *Generator) GenerateRSS(records []domain.SeenRecord) (string, error) {
	items := make([]*RSSItem, 0, len(records))
	for _, rec := range records {
		items = append(items, g.convertToRSSItem(rec))
	}

	feed := &RSS{
		Version: "2.0",
		Atom:    "http://www.w3.org/2005/Atom",
		Channel: &RSSChannel{
			Title:         "Dealscope - published deals",
			Link:          g.baseURL + "/",
			Description:   "Deals recently published to the channel",
			Language:      "pt-br",
			AtomLink:      &AtomLink{Href: g.baseURL + "/rss", Rel: "self", Type: "application/rss+xml"},
			LastBuildDate: g.now().Format(time.RFC1123Z),
			Items:         items,
		},
	}

	output, err := xml.MarshalIndent(feed, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal RSS: %w", err)
	}
	return xml.Header + string(output), nil
}

func (g *Generator) convertToRSSItem(rec domain.SeenRecord) *RSSItem {
	price := "R$ " + notify.FormatBRL(rec.LastPrice)
	desc := price
	if rec.Store != "" {
		desc = fmt.Sprintf("%s em %s", price, rec.Store)
	}

	item := &RSSItem{
		Title:       fmt.Sprintf("%s por %s", rec.Title, price),
		Link:        rec.URL,
		GUID:        GUID{Value: fmt.Sprintf("%s@%.2f", rec.Identity, rec.LastPrice), IsPermaLink: false},
		Description: desc,
		PubDate:     rec.LastSeenAt.Format(time.RFC1123Z),
	}
	if rec.Store != "" {
		item.Categories = []string{rec.Store}
	}
	return item
}
