// Package notify sends deals and reports to telegram and accepts admin commands from it.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/repeater/v2"

	"github.com/umputun/dealscope/pkg/domain"
)

// telegram limits
const (
	maxCaption = 1024
	maxMessage = 4096
)

// TelegramParams defines bot parameters
type TelegramParams struct {
	APIURL    string // base url, default https://api.telegram.org
	Token     string
	ChannelID string // published deals
	AdminID   int64  // reviewer chat, also receives status reports when set
	Timeout   time.Duration
	Headliner Headliner
}

// Telegram sends messages with the bot api
type Telegram struct {
	TelegramParams
	client *http.Client
}

// apiResponse is the common bot api envelope
type apiResponse struct {
	OK          bool            `json:"ok"`
	Result      json.RawMessage `json:"result"`
	Description string          `json:"description"`
	ErrorCode   int             `json:"error_code"`
}

type inlineButton struct {
	Text         string `json:"text"`
	CallbackData string `json:"callback_data"`
}

type inlineKeyboard struct {
	InlineKeyboard [][]inlineButton `json:"inline_keyboard"`
}

type sendMessageRequest struct {
	ChatID      string          `json:"chat_id"`
	Text        string          `json:"text"`
	ParseMode   string          `json:"parse_mode"`
	ReplyMarkup *inlineKeyboard `json:"reply_markup,omitempty"`
}

type sendPhotoRequest struct {
	ChatID      string          `json:"chat_id"`
	Photo       string          `json:"photo"`
	Caption     string          `json:"caption"`
	ParseMode   string          `json:"parse_mode"`
	ReplyMarkup *inlineKeyboard `json:"reply_markup,omitempty"`
}

// apiError is a bot api failure, permanent for client errors other than 429
type apiError struct {
	Code        int
	Description string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("telegram api error %d: %s", e.Code, e.Description)
}

// Is matches any permanent apiError, used as repeater stop marker
func (e *apiError) Is(target error) bool {
	t, ok := target.(*apiError)
	if !ok {
		return false
	}
	return t.Code == 0 && e.permanent()
}

func (e *apiError) permanent() bool {
	return e.Code >= 400 && e.Code < 500 && e.Code != http.StatusTooManyRequests
}

// NewTelegram makes a telegram sender
func NewTelegram(params TelegramParams) *Telegram {
	if params.APIURL == "" {
		params.APIURL = "https://api.telegram.org"
	}
	params.APIURL = strings.TrimRight(params.APIURL, "/")
	if params.Timeout <= 0 {
		params.Timeout = 30 * time.Second
	}
	if params.Headliner == nil {
		params.Headliner = Plain{}
	}
	return &Telegram{TelegramParams: params, client: &http.Client{Timeout: params.Timeout}}
}

// Publish sends a deal to the channel or to the reviewer. Reviewer messages carry
// approve and reject buttons for the review ref. A photo send failure falls back to text.
func (t *Telegram) Publish(ctx context.Context, n domain.Notice, target domain.Target) error {
	chatID, err := t.chatFor(target)
	if err != nil {
		return &domain.PublishFailure{Target: target, Err: err}
	}

	text := RenderDeal(n, t.Headliner.Headline(ctx, n.Deal), target)
	var markup *inlineKeyboard
	if target == domain.TargetReviewer && n.Ref != "" {
		markup = &inlineKeyboard{InlineKeyboard: [][]inlineButton{{
			{Text: "✅ Aprovar", CallbackData: "approve:" + n.Ref},
			{Text: "❌ Rejeitar", CallbackData: "reject:" + n.Ref},
		}}}
	}

	if strings.HasPrefix(n.Deal.ImageURL, "http") && len([]rune(text)) <= maxCaption {
		err := t.send(ctx, "sendPhoto", sendPhotoRequest{ChatID: chatID, Photo: n.Deal.ImageURL,
			Caption: text, ParseMode: "HTML", ReplyMarkup: markup}, nil)
		if err == nil {
			return nil
		}
		lgr.Printf("[WARN] can't send photo %s, trying text only: %v", n.Deal.ImageURL, err)
	}

	if err := t.send(ctx, "sendMessage", sendMessageRequest{ChatID: chatID, Text: truncate(text, maxMessage),
		ParseMode: "HTML", ReplyMarkup: markup}, nil); err != nil {
		return &domain.PublishFailure{Target: target, Err: err}
	}
	return nil
}

// PublishStatus sends the activity report to the admin, or to the channel when no admin is set
func (t *Telegram) PublishStatus(ctx context.Context, stats domain.Stats) error {
	target := domain.TargetReviewer
	if t.AdminID == 0 {
		target = domain.TargetChannel
	}
	chatID, err := t.chatFor(target)
	if err != nil {
		return &domain.PublishFailure{Target: target, Err: err}
	}
	if err := t.send(ctx, "sendMessage", sendMessageRequest{ChatID: chatID, Text: RenderStatus(stats), ParseMode: "HTML"}, nil); err != nil {
		return &domain.PublishFailure{Target: target, Err: err}
	}
	return nil
}

// Reply sends a plain html message to a chat
func (t *Telegram) Reply(ctx context.Context, chatID int64, text string) error {
	return t.send(ctx, "sendMessage", sendMessageRequest{ChatID: strconv.FormatInt(chatID, 10),
		Text: truncate(text, maxMessage), ParseMode: "HTML"}, nil)
}

// AnswerCallback acknowledges a button press with a short toast
func (t *Telegram) AnswerCallback(ctx context.Context, callbackID, text string) error {
	return t.call(ctx, "answerCallbackQuery", map[string]string{"callback_query_id": callbackID, "text": text}, nil)
}

// DeleteMessage removes a message, used to clear resolved reviews
func (t *Telegram) DeleteMessage(ctx context.Context, chatID, messageID int64) error {
	return t.call(ctx, "deleteMessage", map[string]int64{"chat_id": chatID, "message_id": messageID}, nil)
}

func (t *Telegram) chatFor(target domain.Target) (string, error) {
	switch target {
	case domain.TargetReviewer:
		if t.AdminID == 0 {
			return "", errors.New("admin id not configured")
		}
		return strconv.FormatInt(t.AdminID, 10), nil
	default:
		if t.ChannelID == "" {
			return "", errors.New("channel id not configured")
		}
		return t.ChannelID, nil
	}
}

// send calls the api with retries on network errors, 429 and 5xx
func (t *Telegram) send(ctx context.Context, method string, payload, result any) error {
	retrier := repeater.NewBackoff(3, time.Second, repeater.WithMaxDelay(10*time.Second))
	return retrier.Do(ctx, func() error {
		return t.call(ctx, method, payload, result)
	}, &apiError{})
}

// call makes a single bot api request
func (t *Telegram) call(ctx context.Context, method string, payload, result any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", method, err)
	}
	endpoint := fmt.Sprintf("%s/bot%s/%s", t.APIURL, t.Token, method)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		// the url holds the token, don't leak it in errors
		var uerr *url.Error
		if errors.As(err, &uerr) {
			err = uerr.Err
		}
		return fmt.Errorf("%s request failed: %w", method, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return fmt.Errorf("read %s response: %w", method, err)
	}
	var ar apiResponse
	if err := json.Unmarshal(data, &ar); err != nil {
		return fmt.Errorf("decode %s response, status %d: %w", method, resp.StatusCode, err)
	}
	if !ar.OK {
		code := ar.ErrorCode
		if code == 0 {
			code = resp.StatusCode
		}
		return &apiError{Code: code, Description: ar.Description}
	}
	if result != nil && len(ar.Result) > 0 {
		if err := json.Unmarshal(ar.Result, result); err != nil {
			return fmt.Errorf("decode %s result: %w", method, err)
		}
	}
	return nil
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}
