package source

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/mmcdole/gofeed"
	ext "github.com/mmcdole/gofeed/extensions"

	"github.com/umputun/dealscope/pkg/domain"
)

const queryPlaceholder = "{query}"

var (
	reBRL       = regexp.MustCompile(`R\$\s*(\d{1,3}(?:\.\d{3})*(?:,\d{1,2})?|\d+(?:,\d{1,2})?)`)
	rePercentOf = regexp.MustCompile(`(\d{1,2})\s?%\s?(?i:off|de desconto)`)
	reNumber    = regexp.MustCompile(`\d[\d.,]*`)
)

// FeedParams defines feed source parameters
type FeedParams struct {
	Name   string
	URL    string // feed url or template with {query}
	Origin domain.Origin
	Store  string
	Client *httpClient
}

// FeedSource reads listings from RSS/Atom feeds, including Google Merchant "g:" feeds.
// Without merchant fields, prices are parsed from title and description ("De R$ 199,90 por R$ 99,90").
type FeedSource struct {
	FeedParams
	parser *gofeed.Parser
}

// NewFeedSource creates a new feed source
func NewFeedSource(params FeedParams) *FeedSource {
	if params.Client == nil {
		params.Client = newHTTPClient(0, nil)
	}
	if params.Origin == "" {
		params.Origin = domain.OriginFeed
	}
	if params.Name == "" {
		params.Name = params.URL
	}
	return &FeedSource{FeedParams: params, parser: gofeed.NewParser()}
}

// NewSearchSource creates a feed source queried per term, the url holds {query}
func NewSearchSource(params FeedParams) *FeedSource {
	if params.Origin == "" {
		params.Origin = domain.OriginTrendSearch
	}
	return NewFeedSource(params)
}

// Name returns source name
func (f *FeedSource) Name() string { return f.FeedParams.Name }

// Fetch retrieves the feed, substituting query into the url template when present
func (f *FeedSource) Fetch(ctx context.Context, query string, max int) ([]domain.Listing, error) {
	feedURL := strings.ReplaceAll(f.URL, queryPlaceholder, url.QueryEscape(query))
	body, err := f.Client.get(ctx, feedURL, acceptFeed)
	if err != nil {
		return nil, fmt.Errorf("fetch feed: %w", err)
	}

	feed, err := f.parser.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	res := make([]domain.Listing, 0, len(feed.Items))
	for _, item := range feed.Items {
		if max > 0 && len(res) >= max {
			break
		}
		res = append(res, f.toListing(item))
	}
	return res, nil
}

func (f *FeedSource) toListing(item *gofeed.Item) domain.Listing {
	l := domain.Listing{
		Title:  strings.TrimSpace(firstNonEmpty(merchant(item, "title"), item.Title)),
		URL:    firstNonEmpty(merchant(item, "link"), item.Link),
		Origin: f.Origin,
		Store:  f.Store,
		Source: f.FeedParams.Name,
	}

	// image from merchant field, feed image or image enclosure
	l.ImageURL = merchant(item, "image_link")
	if l.ImageURL == "" && item.Image != nil {
		l.ImageURL = item.Image.URL
	}
	if l.ImageURL == "" {
		for _, enc := range item.Enclosures {
			if strings.HasPrefix(enc.Type, "image/") {
				l.ImageURL = enc.URL
				break
			}
		}
	}

	// merchant prices
	price, hasPrice := ParsePrice(merchant(item, "price"))
	if sale, ok := ParsePrice(merchant(item, "sale_price")); ok {
		if hasPrice && price > sale {
			l.OriginalPrice = domain.Float64(price)
		}
		price, hasPrice = sale, true
	}

	// fallback to prices in text, "de X por Y" gives original and current
	text := item.Title + " " + item.Description
	if !hasPrice {
		prices := textPrices(text)
		switch {
		case len(prices) >= 2 && prices[0] > prices[1]:
			l.OriginalPrice = domain.Float64(prices[0])
			price, hasPrice = prices[1], true
		case len(prices) >= 1:
			price, hasPrice = prices[0], true
		}
	}
	if hasPrice {
		l.Price = price
	}

	if m := rePercentOf.FindStringSubmatch(text); m != nil {
		if pct, err := strconv.ParseFloat(m[1], 64); err == nil {
			l.SourceDiscountPct = domain.Float64(pct)
		}
	}

	// no marketplace id in the url, use merchant id scoped by source
	if id := merchant(item, "id"); id != "" {
		if derived, err := Identity(l.URL); err != nil || derived == NormalizeURLString(l.URL) {
			l.Identity = f.FeedParams.Name + ":" + id
		}
	}
	return l
}

// merchant returns a Google Merchant extension value ("g" prefix)
func merchant(item *gofeed.Item, name string) string {
	if item.Extensions == nil {
		return ""
	}
	for _, prefix := range []string{"g", "G"} {
		if exts, ok := item.Extensions[prefix]; ok {
			if vals := exts[name]; len(vals) > 0 {
				return strings.TrimSpace(extValue(vals[0]))
			}
		}
	}
	return ""
}

func extValue(e ext.Extension) string {
	if e.Value != "" {
		return e.Value
	}
	for _, children := range e.Children {
		for _, c := range children {
			if v := extValue(c); v != "" {
				return v
			}
		}
	}
	return ""
}

// ParsePrice parses "199.90 BRL", "R$ 1.299,90", "1,299.90" or "1299,9" into a float.
// With both separators present the last one is the decimal mark. A lone separator
// followed by exactly three digits, or repeated, is a thousands separator.
func ParsePrice(s string) (float64, bool) {
	num := reNumber.FindString(s)
	if num == "" {
		return 0, false
	}
	num = strings.TrimRight(num, ".,")

	lastComma, lastDot := strings.LastIndex(num, ","), strings.LastIndex(num, ".")
	switch {
	case lastComma >= 0 && lastDot >= 0:
		thousands, decimal := ".", ","
		if lastDot > lastComma {
			thousands, decimal = ",", "."
		}
		num = strings.ReplaceAll(num, thousands, "")
		num = strings.Replace(num, decimal, ".", 1)
	case lastComma >= 0:
		num = singleSeparator(num, ",")
	case lastDot >= 0:
		num = singleSeparator(num, ".")
	}

	v, err := strconv.ParseFloat(num, 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}

// singleSeparator resolves a number using only sep, returning it with a dot decimal mark
func singleSeparator(num, sep string) string {
	idx := strings.LastIndex(num, sep)
	if strings.Count(num, sep) > 1 || len(num)-idx-1 == 3 {
		return strings.ReplaceAll(num, sep, "")
	}
	return strings.Replace(num, sep, ".", 1)
}

// textPrices returns all R$ amounts in their order of appearance
func textPrices(s string) []float64 {
	var res []float64
	for _, m := range reBRL.FindAllStringSubmatch(s, -1) {
		if v, ok := ParsePrice(m[1]); ok {
			res = append(res, v)
		}
	}
	return res
}

// NormalizeURLString is NormalizeURL for a raw url, empty string if it can't be parsed
func NormalizeURLString(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || u.Host == "" {
		return ""
	}
	return NormalizeURL(u)
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
