package affiliate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/repeater/v2"

	"github.com/umputun/dealscope/pkg/domain"
)

// HTTPParams defines shortener endpoint parameters
type HTTPParams struct {
	Endpoint string
	APIKey   string
	Timeout  time.Duration
	Retries  int
}

// HTTPMinter mints links through a JSON shortener endpoint.
// Request is {"url": "..."}, response is {"short_url": "..."} or {"url": "..."}.
type HTTPMinter struct {
	HTTPParams
	client *http.Client
}

type mintRequest struct {
	URL string `json:"url"`
}

type mintResponse struct {
	ShortURL string `json:"short_url"`
	URL      string `json:"url"`
	Error    string `json:"error"`
}

// permanentError stops repeater retries, client errors won't succeed on retry
type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }

func (e *permanentError) Unwrap() error { return e.err }

func (e *permanentError) Is(target error) bool {
	_, ok := target.(*permanentError)
	return ok
}

// NewHTTPMinter makes an http minter
func NewHTTPMinter(params HTTPParams) *HTTPMinter {
	if params.Timeout <= 0 {
		params.Timeout = 15 * time.Second
	}
	if params.Retries <= 0 {
		params.Retries = 3
	}
	return &HTTPMinter{HTTPParams: params, client: &http.Client{Timeout: params.Timeout}}
}

// Mint posts the url to the endpoint, retrying transient failures
func (m *HTTPMinter) Mint(ctx context.Context, rawURL string) (string, error) {
	var minted string
	retrier := repeater.NewBackoff(m.Retries, 200*time.Millisecond, repeater.WithMaxDelay(3*time.Second))
	err := retrier.Do(ctx, func() error {
		res, err := m.call(ctx, rawURL)
		if err != nil {
			return err
		}
		minted = res
		return nil
	}, &permanentError{})
	if err != nil {
		var pe *permanentError
		if errors.As(err, &pe) {
			err = pe.err
		}
		return "", &domain.MintFailure{URL: rawURL, Err: err}
	}
	return minted, nil
}

// MintBatch mints urls one by one, "" for failures
func (m *HTTPMinter) MintBatch(ctx context.Context, urls []string) []string {
	res := make([]string, len(urls))
	for i, u := range urls {
		minted, err := m.Mint(ctx, u)
		if err != nil {
			lgr.Printf("[WARN] %v", err)
			continue
		}
		res[i] = minted
	}
	return res
}

func (m *HTTPMinter) call(ctx context.Context, rawURL string) (string, error) {
	body, err := json.Marshal(mintRequest{URL: rawURL})
	if err != nil {
		return "", &permanentError{err: fmt.Errorf("marshal request: %w", err)}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.Endpoint, bytes.NewReader(body))
	if err != nil {
		return "", &permanentError{err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	if m.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+m.APIKey)
	}

	resp, err := m.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	switch {
	case resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests:
		return "", fmt.Errorf("shortener status %d", resp.StatusCode)
	case resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated:
		return "", &permanentError{err: fmt.Errorf("shortener status %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))}
	}

	var mr mintResponse
	if err := json.Unmarshal(data, &mr); err != nil {
		return "", &permanentError{err: fmt.Errorf("decode response: %w", err)}
	}
	if mr.Error != "" {
		return "", &permanentError{err: errors.New(mr.Error)}
	}
	link := mr.ShortURL
	if link == "" {
		link = mr.URL
	}
	if link == "" {
		return "", &permanentError{err: errors.New("empty link in response")}
	}
	return link, nil
}
