package source

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/net/publicsuffix"
)

var (
	reMercadoLivre = regexp.MustCompile(`(?i)\bMLB-?(\d+)`)
	reAmazonASIN   = regexp.MustCompile(`/(?:dp|gp/product|gp/aw/d)/([A-Z0-9]{10})(?:[/?]|$)`)
	reShopee       = regexp.MustCompile(`[-.]i\.(\d+)\.(\d+)`)
	reShopeeProd   = regexp.MustCompile(`/product/(\d+)/(\d+)`)
)

// known marketplaces by registrable domain label
var stores = map[string]string{
	"mercadolivre": "Mercado Livre",
	"mercadolibre": "Mercado Livre",
	"amazon":       "Amazon",
	"shopee":       "Shopee",
}

// Identity extracts a stable product id from a listing URL. Marketplace ids are preferred,
// the normalized URL is used when none is found.
func Identity(rawURL string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", fmt.Errorf("parse url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", errors.New("url has no host")
	}

	switch StoreKey(rawURL) {
	case "mercadolivre", "mercadolibre":
		if m := reMercadoLivre.FindStringSubmatch(u.Path); m != nil {
			return "MLB" + m[1], nil
		}
		if m := reMercadoLivre.FindStringSubmatch(u.RawQuery); m != nil {
			return "MLB" + m[1], nil
		}
	case "amazon":
		if m := reAmazonASIN.FindStringSubmatch(u.Path); m != nil {
			return "AMZ-" + m[1], nil
		}
	case "shopee":
		if m := reShopee.FindStringSubmatch(u.Path); m != nil {
			return "SHP-" + m[1] + "." + m[2], nil
		}
		if m := reShopeeProd.FindStringSubmatch(u.Path); m != nil {
			return "SHP-" + m[1] + "." + m[2], nil
		}
	}
	return NormalizeURL(u), nil
}

// NormalizeURL lower-cases the host, drops www, query and fragment and the trailing slash
func NormalizeURL(u *url.URL) string {
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	path := strings.TrimRight(u.EscapedPath(), "/")
	return host + path
}

// StoreKey returns the lower-case registrable domain label, e.g. "amazon" for www.amazon.com.br
func StoreKey(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || u.Hostname() == "" {
		return ""
	}
	host := strings.ToLower(u.Hostname())
	etld1, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		etld1 = host
	}
	label, _, _ := strings.Cut(etld1, ".")
	return label
}

// StoreName returns the marketplace label for a URL, the registrable domain for unknown stores
func StoreName(rawURL string) string {
	key := StoreKey(rawURL)
	if name, ok := stores[key]; ok {
		return name
	}
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || u.Hostname() == "" {
		return ""
	}
	if etld1, err := publicsuffix.EffectiveTLDPlusOne(strings.ToLower(u.Hostname())); err == nil {
		return etld1
	}
	return u.Hostname()
}
