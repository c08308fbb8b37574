package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/umputun/dealscope/pkg/domain"
)

// default field paths, match the mercado livre search api response
var defaultFields = map[string]string{
	"items":          "results",
	"id":             "id",
	"title":          "title",
	"price":          "price",
	"original_price": "original_price",
	"url":            "permalink",
	"image":          "thumbnail",
	"discount":       "",
	"store":          "",
}

// JSONParams defines json source parameters
type JSONParams struct {
	Name   string
	URL    string // endpoint or template with {query}
	Origin domain.Origin
	Store  string
	Fields map[string]string // overrides for defaultFields, dotted paths
	Client *httpClient
}

// JSONSource reads listings from a JSON search or category endpoint
type JSONSource struct {
	JSONParams
	fields map[string]string
}

// NewJSONSource creates a new json source, unset fields use the defaults
func NewJSONSource(params JSONParams) *JSONSource {
	if params.Client == nil {
		params.Client = newHTTPClient(0, nil)
	}
	if params.Origin == "" {
		params.Origin = domain.OriginVolumeCategory
	}
	if params.Name == "" {
		params.Name = params.URL
	}
	fields := make(map[string]string, len(defaultFields))
	for k, v := range defaultFields {
		fields[k] = v
	}
	for k, v := range params.Fields {
		fields[k] = v
	}
	return &JSONSource{JSONParams: params, fields: fields}
}

// Name returns source name
func (s *JSONSource) Name() string { return s.JSONParams.Name }

// Fetch calls the endpoint and maps items with the configured field paths
func (s *JSONSource) Fetch(ctx context.Context, query string, max int) ([]domain.Listing, error) {
	endpoint := strings.ReplaceAll(s.URL, queryPlaceholder, url.QueryEscape(query))
	body, err := s.Client.get(ctx, endpoint, acceptJSON)
	if err != nil {
		return nil, fmt.Errorf("fetch json: %w", err)
	}

	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}

	// either a top-level array or an object holding the items array
	items, ok := doc.([]any)
	if !ok {
		raw := lookup(doc, s.fields["items"])
		if items, ok = raw.([]any); !ok {
			return nil, fmt.Errorf("no items array at %q", s.fields["items"])
		}
	}

	res := make([]domain.Listing, 0, len(items))
	for _, item := range items {
		if max > 0 && len(res) >= max {
			break
		}
		res = append(res, s.toListing(item))
	}
	return res, nil
}

func (s *JSONSource) toListing(item any) domain.Listing {
	l := domain.Listing{
		Title:    asString(lookup(item, s.fields["title"])),
		URL:      asString(lookup(item, s.fields["url"])),
		ImageURL: asString(lookup(item, s.fields["image"])),
		Origin:   s.Origin,
		Store:    firstNonEmpty(asString(lookup(item, s.fields["store"])), s.Store),
		Source:   s.JSONParams.Name,
	}
	if v, ok := asFloat(lookup(item, s.fields["price"])); ok {
		l.Price = v
	}
	if v, ok := asFloat(lookup(item, s.fields["original_price"])); ok && v > 0 {
		l.OriginalPrice = domain.Float64(v)
	}
	if v, ok := asFloat(lookup(item, s.fields["discount"])); ok {
		l.SourceDiscountPct = domain.Float64(v)
	}

	// a marketplace id from the url wins, otherwise the item id scoped by source
	if id := asString(lookup(item, s.fields["id"])); id != "" {
		if derived, err := Identity(l.URL); err != nil || derived == NormalizeURLString(l.URL) {
			l.Identity = s.JSONParams.Name + ":" + id
		}
	}
	return l
}

// lookup walks a dotted path through nested objects, numeric segments index arrays
func lookup(v any, path string) any {
	if path == "" {
		return nil
	}
	cur := v
	for _, seg := range strings.Split(path, ".") {
		switch node := cur.(type) {
		case map[string]any:
			cur = node[seg]
		case []any:
			idx, err := strconv.Atoi(seg)
			if err != nil || idx < 0 || idx >= len(node) {
				return nil
			}
			cur = node[idx]
		default:
			return nil
		}
	}
	return cur
}

func asString(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return ""
	}
}

func asFloat(v any) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case string:
		return ParsePrice(val)
	default:
		return 0, false
	}
}
