package source

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/markusmobius/go-trafilatura"

	"github.com/umputun/dealscope/pkg/domain"
)

// price meta selectors, in order of preference
var priceSelectors = []string{
	`meta[property="product:price:amount"]`,
	`meta[property="og:price:amount"]`,
	`meta[itemprop="price"]`,
	`[itemprop="price"]`,
}

var originalPriceSelectors = []string{
	`meta[property="product:original_price:amount"]`,
	`meta[property="og:original_price:amount"]`,
	`s.andes-money-amount--previous .andes-money-amount__fraction`,
	`.a-text-price .a-offscreen`,
}

// PageSource extracts a single listing from a product page. Price comes from
// product and open graph meta, title and image fall back to trafilatura metadata.
type PageSource struct {
	client *httpClient
}

// NewPageSource makes a page source, nil client uses defaults
func NewPageSource(client *httpClient) *PageSource {
	if client == nil {
		client = newHTTPClient(0, nil)
	}
	return &PageSource{client: client}
}

// Extract fetches pageURL and makes a manual-origin listing from it
func (p *PageSource) Extract(ctx context.Context, pageURL string) (domain.Listing, error) {
	u, err := url.Parse(pageURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return domain.Listing{}, fmt.Errorf("invalid url %q", pageURL)
	}

	body, err := p.client.get(ctx, pageURL, acceptHTML)
	if err != nil {
		return domain.Listing{}, fmt.Errorf("fetch page: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return domain.Listing{}, fmt.Errorf("parse page: %w", err)
	}

	l := domain.Listing{
		URL:      pageURL,
		Title:    metaContent(doc, `meta[property="og:title"]`),
		ImageURL: metaContent(doc, `meta[property="og:image"]`),
		Origin:   domain.OriginManual,
		Store:    metaContent(doc, `meta[property="og:site_name"]`),
		Source:   "manual",
	}
	if canonical := metaContent(doc, `meta[property="og:url"]`); canonical != "" {
		l.URL = canonical
	}

	for _, sel := range priceSelectors {
		if v, ok := ParsePrice(metaContent(doc, sel)); ok {
			l.Price = v
			break
		}
	}
	for _, sel := range originalPriceSelectors {
		if v, ok := ParsePrice(metaContent(doc, sel)); ok && v > l.Price {
			l.OriginalPrice = domain.Float64(v)
			break
		}
	}

	if l.Title == "" || l.ImageURL == "" {
		if res, err := trafilatura.Extract(bytes.NewReader(body), trafilatura.Options{
			EnableFallback: true,
			OriginalURL:    u,
		}); err == nil && res != nil {
			l.Title = firstNonEmpty(l.Title, res.Metadata.Title)
			l.ImageURL = firstNonEmpty(l.ImageURL, res.Metadata.Image)
		}
	}
	if l.Title == "" {
		l.Title = strings.TrimSpace(doc.Find("title").First().Text())
	}
	return l, nil
}

// metaContent returns the content attribute of a meta tag or the text of any other element
func metaContent(doc *goquery.Document, selector string) string {
	sel := doc.Find(selector).First()
	if sel.Length() == 0 {
		return ""
	}
	if v, ok := sel.Attr("content"); ok {
		return strings.TrimSpace(v)
	}
	return strings.TrimSpace(sel.Text())
}
