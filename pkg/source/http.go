package source

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"time"
)

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0 Safari/537.36"

// maxBody limits any single response read
const maxBody = 10 << 20

// acceptLanguages contains common browser Accept-Language values for brazilian shoppers
var acceptLanguages = []string{
	"pt-BR,pt;q=0.9",
	"pt-BR,pt;q=0.9,en-US;q=0.8,en;q=0.7",
	"pt-BR,pt;q=0.8,en;q=0.6",
	"pt,pt-BR;q=0.9,en;q=0.8",
}

// accept headers per content kind
const (
	acceptFeed = "application/rss+xml,application/atom+xml,application/xml;q=0.9,text/xml;q=0.8,*/*;q=0.5"
	acceptJSON = "application/json,text/plain;q=0.9,*/*;q=0.5"
	acceptHTML = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"
)

// httpClient performs GET requests with browser-like headers
type httpClient struct {
	client  *http.Client
	headers map[string]string
}

func newHTTPClient(timeout time.Duration, headers map[string]string) *httpClient {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &httpClient{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		headers: headers,
	}
}

// get fetches url and returns the body, non-200 responses are errors
func (c *httpClient) get(ctx context.Context, url, accept string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	addBrowserHeaders(req, accept)
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code %d for %s", resp.StatusCode, url)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}

// addBrowserHeaders adds browser-like headers, marketplaces block obvious bots
func addBrowserHeaders(req *http.Request, accept string) {
	req.Header.Set("User-Agent", defaultUserAgent)
	req.Header.Set("Accept", accept)
	req.Header.Set("Cache-Control", "no-cache")

	// randomized language
	req.Header.Set("Accept-Language", acceptLanguages[rand.Intn(len(acceptLanguages))]) //nolint:gosec // non-cryptographic randomness is fine for header variation

	req.Header.Set("Connection", "keep-alive")

	// dnt - 30% chance
	if rand.Float32() < 0.3 { //nolint:gosec // non-cryptographic randomness is fine
		req.Header.Set("DNT", "1")
	}
}
