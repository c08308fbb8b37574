package notify

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/dealscope/pkg/domain"
)

// botAPI is a fake bot api recording calls by method
type botAPI struct {
	mu      sync.Mutex
	calls   map[string][]map[string]any
	handler func(method string, body map[string]any) (int, string)
}

func newBotAPI(t *testing.T) (*botAPI, *httptest.Server) {
	api := &botAPI{calls: map[string][]map[string]any{}}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.True(t, strings.HasPrefix(r.URL.Path, "/bottoken/"), r.URL.Path)
		method := strings.TrimPrefix(r.URL.Path, "/bottoken/")
		body := map[string]any{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		api.mu.Lock()
		api.calls[method] = append(api.calls[method], body)
		h := api.handler
		api.mu.Unlock()

		code, resp := http.StatusOK, `{"ok":true,"result":true}`
		if h != nil {
			code, resp = h(method, body)
		}
		w.WriteHeader(code)
		_, _ = w.Write([]byte(resp))
	}))
	return api, server
}

func (b *botAPI) get(method string) []map[string]any {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]map[string]any(nil), b.calls[method]...)
}

type fixedHeadline string

func (f fixedHeadline) Headline(context.Context, domain.ScoredListing) string { return string(f) }

func testDeal() domain.ScoredListing {
	return domain.ScoredListing{Listing: domain.Listing{Identity: "MLB1", Title: "Kindle", Price: 399,
		OriginalPrice: domain.Float64(499), URL: "https://produto.mercadolivre.com.br/MLB-1",
		ImageURL: "https://img.example.com/k.jpg", Store: "Mercado Livre"}, Score: 70}
}

func TestTelegram_PublishChannelPhoto(t *testing.T) {
	api, server := newBotAPI(t)
	defer server.Close()

	tg := NewTelegram(TelegramParams{APIURL: server.URL, Token: "token", ChannelID: "@ofertas", AdminID: 42,
		Headliner: fixedHeadline("⚡ Kindle barato")})
	err := tg.Publish(context.Background(), domain.Notice{Deal: testDeal()}, domain.TargetChannel)
	require.NoError(t, err)

	photos := api.get("sendPhoto")
	require.Len(t, photos, 1)
	assert.Equal(t, "@ofertas", photos[0]["chat_id"])
	assert.Equal(t, "https://img.example.com/k.jpg", photos[0]["photo"])
	assert.Equal(t, "HTML", photos[0]["parse_mode"])
	assert.Contains(t, photos[0]["caption"], "⚡ KINDLE BARATO")
	assert.NotContains(t, photos[0], "reply_markup", "no buttons in channel")
	assert.Empty(t, api.get("sendMessage"))
}

func TestTelegram_PublishReviewerFallsBackToText(t *testing.T) {
	api, server := newBotAPI(t)
	defer server.Close()
	api.handler = func(method string, _ map[string]any) (int, string) {
		if method == "sendPhoto" {
			return http.StatusBadRequest, `{"ok":false,"error_code":400,"description":"wrong file identifier"}`
		}
		return http.StatusOK, `{"ok":true,"result":{}}`
	}

	tg := NewTelegram(TelegramParams{APIURL: server.URL, Token: "token", ChannelID: "@ofertas", AdminID: 42})
	n := domain.Notice{Deal: testDeal(), Ref: "ref-1", Decision: domain.Decision{Outcome: domain.OutcomeQueued, Reason: domain.ReasonManualMode}}
	require.NoError(t, tg.Publish(context.Background(), n, domain.TargetReviewer))

	assert.Len(t, api.get("sendPhoto"), 1, "permanent error not retried")
	msgs := api.get("sendMessage")
	require.Len(t, msgs, 1)
	assert.Equal(t, "42", msgs[0]["chat_id"])
	assert.Contains(t, msgs[0]["text"], reviewHeader)

	markup, ok := msgs[0]["reply_markup"].(map[string]any)
	require.True(t, ok)
	rows := markup["inline_keyboard"].([]any)
	buttons := rows[0].([]any)
	require.Len(t, buttons, 2)
	assert.Equal(t, "approve:ref-1", buttons[0].(map[string]any)["callback_data"])
	assert.Equal(t, "reject:ref-1", buttons[1].(map[string]any)["callback_data"])
}

func TestTelegram_PublishFailure(t *testing.T) {
	api, server := newBotAPI(t)
	defer server.Close()
	api.handler = func(string, map[string]any) (int, string) {
		return http.StatusForbidden, `{"ok":false,"error_code":403,"description":"bot was kicked"}`
	}

	tg := NewTelegram(TelegramParams{APIURL: server.URL, Token: "token", ChannelID: "@ofertas"})
	deal := testDeal()
	deal.ImageURL = ""
	err := tg.Publish(context.Background(), domain.Notice{Deal: deal}, domain.TargetChannel)
	var pf *domain.PublishFailure
	require.ErrorAs(t, err, &pf)
	assert.Equal(t, domain.TargetChannel, pf.Target)
	assert.Contains(t, err.Error(), "bot was kicked")

	err = tg.Publish(context.Background(), domain.Notice{Deal: deal}, domain.TargetReviewer)
	require.ErrorAs(t, err, &pf)
	assert.Contains(t, err.Error(), "admin id not configured")

	err = NewTelegram(TelegramParams{APIURL: server.URL, Token: "token"}).Publish(context.Background(),
		domain.Notice{Deal: deal}, domain.TargetChannel)
	require.Error(t, err)
}

func TestTelegram_PublishStatus(t *testing.T) {
	api, server := newBotAPI(t)
	defer server.Close()

	tg := NewTelegram(TelegramParams{APIURL: server.URL, Token: "token", ChannelID: "@ofertas", AdminID: 42})
	require.NoError(t, tg.PublishStatus(context.Background(), domain.Stats{Cycles: 2}))
	msgs := api.get("sendMessage")
	require.Len(t, msgs, 1)
	assert.Equal(t, "42", msgs[0]["chat_id"], "report goes to admin")
	assert.Contains(t, msgs[0]["text"], "Relatório de Atividade")

	noAdmin := NewTelegram(TelegramParams{APIURL: server.URL, Token: "token", ChannelID: "@ofertas"})
	require.NoError(t, noAdmin.PublishStatus(context.Background(), domain.Stats{}))
	msgs = api.get("sendMessage")
	require.Len(t, msgs, 2)
	assert.Equal(t, "@ofertas", msgs[1]["chat_id"])
}

func TestTelegram_RetryTransient(t *testing.T) {
	api, server := newBotAPI(t)
	defer server.Close()
	var n int
	api.handler = func(string, map[string]any) (int, string) {
		n++
		if n == 1 {
			return http.StatusTooManyRequests, `{"ok":false,"error_code":429,"description":"Too Many Requests"}`
		}
		return http.StatusOK, `{"ok":true,"result":{}}`
	}

	tg := NewTelegram(TelegramParams{APIURL: server.URL, Token: "token", ChannelID: "@c"})
	start := time.Now()
	require.NoError(t, tg.Reply(context.Background(), 1, "oi"))
	assert.Len(t, api.get("sendMessage"), 2)
	assert.GreaterOrEqual(t, time.Since(start), 500*time.Millisecond)
}

func TestAPIError(t *testing.T) {
	assert.True(t, errors.Is(&apiError{Code: 400}, &apiError{}))
	assert.False(t, errors.Is(&apiError{Code: 429}, &apiError{}))
	assert.False(t, errors.Is(&apiError{Code: 502}, &apiError{}))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "ab…", truncate("abcdef", 3))
}
