// Package affiliate converts canonical listing urls into tracked affiliate links.
package affiliate

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/umputun/dealscope/pkg/config"
	"github.com/umputun/dealscope/pkg/domain"
	"github.com/umputun/dealscope/pkg/source"
)

// Minter makes affiliate links. MintBatch keeps the input order and puts "" for failed urls.
type Minter interface {
	Mint(ctx context.Context, rawURL string) (string, error)
	MintBatch(ctx context.Context, urls []string) []string
}

// New makes a minter for the configured mode
func New(cfg config.AffiliateConfig) (Minter, error) {
	switch cfg.Mode {
	case config.AffiliateModeNone, "":
		return Noop{}, nil
	case config.AffiliateModeTag:
		return NewTagMinter(cfg.Tags), nil
	case config.AffiliateModeHTTP:
		return NewHTTPMinter(HTTPParams{Endpoint: cfg.Endpoint, APIKey: cfg.APIKey, Timeout: cfg.Timeout}), nil
	default:
		return nil, fmt.Errorf("unknown affiliate mode %q", cfg.Mode)
	}
}

// Noop returns urls unchanged
type Noop struct{}

// Mint returns the url as is
func (Noop) Mint(_ context.Context, rawURL string) (string, error) { return rawURL, nil }

// MintBatch returns the urls as is
func (Noop) MintBatch(_ context.Context, urls []string) []string {
	return append([]string(nil), urls...)
}

// store query parameters, shopee wraps the tag as 0.0.<tag>
var tagParams = map[string]struct {
	param  string
	format string
}{
	"amazon":       {param: "tag", format: "%s"},
	"mercadolivre": {param: "matt_tool", format: "%s"},
	"mercadolibre": {param: "matt_tool", format: "%s"},
	"shopee":       {param: "smtt", format: "0.0.%s"},
}

// TagMinter adds the store affiliate tag as a query parameter.
// Urls of stores without a configured tag are returned unchanged.
type TagMinter struct {
	tags map[string]string
}

// NewTagMinter makes a tag minter, tags are keyed by store key (amazon, mercadolivre, shopee)
func NewTagMinter(tags map[string]string) *TagMinter {
	res := make(map[string]string, len(tags))
	for k, v := range tags {
		res[strings.ToLower(strings.TrimSpace(k))] = strings.TrimSpace(v)
	}
	if v, ok := res["mercadolivre"]; ok {
		if _, set := res["mercadolibre"]; !set {
			res["mercadolibre"] = v
		}
	}
	return &TagMinter{tags: res}
}

// Mint replaces any existing tag parameter with the configured one
func (m *TagMinter) Mint(_ context.Context, rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return "", &domain.MintFailure{URL: rawURL, Err: errors.New("invalid url")}
	}
	key := source.StoreKey(rawURL)
	tp, known := tagParams[key]
	tag := m.tags[key]
	if !known || tag == "" {
		return rawURL, nil
	}
	q := u.Query()
	q.Set(tp.param, fmt.Sprintf(tp.format, tag))
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// MintBatch mints every url, "" for failures
func (m *TagMinter) MintBatch(ctx context.Context, urls []string) []string {
	return mintEach(ctx, m, urls)
}

func mintEach(ctx context.Context, m Minter, urls []string) []string {
	res := make([]string, len(urls))
	for i, u := range urls {
		minted, err := m.Mint(ctx, u)
		if err != nil {
			continue
		}
		res[i] = minted
	}
	return res
}
