package notify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/sashabaranov/go-openai"

	"github.com/umputun/dealscope/pkg/config"
	"github.com/umputun/dealscope/pkg/domain"
)

// Headliner makes a short headline for a deal, it never fails
type Headliner interface {
	Headline(ctx context.Context, deal domain.ScoredListing) string
}

// FallbackHeadline is used when no headline can be generated
func FallbackHeadline(title string) string {
	runes := []rune(strings.TrimSpace(title))
	if len(runes) > 40 {
		return "🔥 " + string(runes[:40]) + "..."
	}
	return "🔥 " + string(runes)
}

// Plain headliner returns FallbackHeadline
type Plain struct{}

// Headline returns the fallback headline
func (Plain) Headline(_ context.Context, deal domain.ScoredListing) string {
	return FallbackHeadline(deal.Title)
}

// default system prompt for headlines
const defaultSystemPrompt = `Você é um expert em copywriting para ofertas no Telegram.

Sua missão: escreva uma headline CURTA e PROFISSIONAL (máx 50 caracteres).

Diretrizes:
- Foco no benefício ou no desconto real.
- Evite termos apelativos como "PREÇO DE ERRO" ou "CORRE".
- Use apenas 1 emoji, no início.
- Sem CAPS LOCK excessivo.
- Responda apenas com a headline, sem aspas.

Exemplos bons:
- "⚡ Creatina Growth Original em Oferta"
- "📉 Menor preço dos últimos 30 dias"
- "🔥 iPhone 13 com preço de Black Friday"

Exemplos ruins:
- "PREÇO DE ERRO CORRE AGORA"
- "URGENTE!!! LIQUIDAÇÃO TOTAL"`

// Copywriter generates headlines with an OpenAI-compatible LLM
type Copywriter struct {
	client    *openai.Client
	config    config.LLMConfig
	systemMsg string
}

// NewCopywriter creates a new copywriter
func NewCopywriter(cfg config.LLMConfig) *Copywriter {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.Endpoint != "" {
		clientConfig.BaseURL = cfg.Endpoint
	}

	systemMsg := cfg.SystemPrompt
	if systemMsg == "" {
		systemMsg = defaultSystemPrompt
	}

	return &Copywriter{
		client:    openai.NewClientWithConfig(clientConfig),
		config:    cfg,
		systemMsg: systemMsg,
	}
}

// Headline asks the llm for a headline, falls back to the title on any failure
func (c *Copywriter) Headline(ctx context.Context, deal domain.ScoredListing) string {
	if c.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.Timeout)
		defer cancel()
	}

	headline, err := c.generate(ctx, deal)
	if err != nil {
		lgr.Printf("[WARN] copywriter failed for %q: %v", deal.Title, err)
		return FallbackHeadline(deal.Title)
	}
	return headline
}

func (c *Copywriter) generate(ctx context.Context, deal domain.ScoredListing) (string, error) {
	prompt := fmt.Sprintf("Produto: %s\nPreço: R$ %s", deal.Title, FormatBRL(deal.Price))
	if d := deal.BestDiscountPct(); d > 0 {
		prompt += fmt.Sprintf("\nDesconto: %.0f%%", d)
	}

	start := time.Now()
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.config.Model,
		Temperature: float32(c.config.Temperature),
		MaxTokens:   c.config.MaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: c.systemMsg},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("llm request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from llm")
	}

	text := cleanHeadline(resp.Choices[0].Message.Content)
	if text == "" {
		return "", fmt.Errorf("empty headline")
	}
	lgr.Printf("[DEBUG] headline for %q in %v: %s", deal.Title, time.Since(start).Round(time.Millisecond), text)
	return text, nil
}

// cleanHeadline removes markdown bold and wrapping quotes, keeps the first line
func cleanHeadline(s string) string {
	s = strings.ReplaceAll(s, "**", "")
	s = strings.TrimSpace(s)
	if first, _, found := strings.Cut(s, "\n"); found {
		s = strings.TrimSpace(first)
	}
	s = strings.Trim(s, `"'“”`)
	return strings.TrimSpace(s)
}
