package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/umputun/dealscope/pkg/domain"
)

func TestFormatBRL(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{1299.9, "1.299,90"},
		{0.5, "0,50"},
		{100, "100,00"},
		{1234567.891, "1.234.567,89"},
		{19.999, "20,00"},
		{-15.5, "-15,50"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatBRL(tt.in))
	}
}

func TestRenderDeal(t *testing.T) {
	deal := domain.ScoredListing{
		Listing: domain.Listing{
			Title: "Fone <b>JBL</b> & Cia", Price: 199.9, OriginalPrice: domain.Float64(399.8),
			URL: "https://produto.mercadolivre.com.br/MLB-1?a=1&b=2", Store: "Mercado Livre",
		},
		Score:        72.5,
		AffiliateURL: "https://s.io/abc",
	}

	t.Run("channel", func(t *testing.T) {
		text := RenderDeal(domain.Notice{Deal: deal}, "⚡ Fone em oferta", domain.TargetChannel)
		assert.NotContains(t, text, "Aguardando Aprovação")
		assert.Contains(t, text, "🔥 <b>⚡ FONE EM OFERTA</b>")
		assert.Contains(t, text, "Fone JBL &amp; Cia", "markup stripped and escaped")
		assert.Contains(t, text, "De <s>R$ 399,80</s> por\n💰 <b>R$ 199,90</b>  <i>(50% OFF)</i>")
		assert.Contains(t, text, "📦 <b>Mercado Livre</b>")
		assert.Contains(t, text, `🔗 <a href="https://s.io/abc">VER OFERTA</a>`)
		assert.NotContains(t, text, "Score")
	})

	t.Run("reviewer with price drop", func(t *testing.T) {
		d := deal
		d.AffiliateURL = ""
		d.OriginalPrice = nil
		d.Store = ""
		n := domain.Notice{Deal: d, Ref: "r1", OldPrice: 249.9,
			Decision: domain.Decision{Outcome: domain.OutcomeQueued, Reason: domain.ReasonPriceDrop}}
		text := RenderDeal(n, "x", domain.TargetReviewer)
		assert.Contains(t, text, reviewHeader)
		assert.Contains(t, text, "💰 <b>R$ 199,90</b>\n")
		assert.NotContains(t, text, "OFF")
		assert.Contains(t, text, "📦 <b>Oferta Online</b>")
		assert.Contains(t, text, "📉 Preço anterior: R$ 249,90")
		assert.Contains(t, text, "⭐ Score: 72.50 | preço mudou")
		assert.Contains(t, text, "Link Original: https://produto.mercadolivre.com.br/MLB-1?a=1&amp;b=2")
	})
}

func TestRenderStatus(t *testing.T) {
	text := RenderStatus(domain.Stats{Cycles: 3, Sent: 5, Queued: 2, Blacklisted: 1, TotalSeen: 40, Autonomous: true})
	assert.Contains(t, text, "📊 <b>Relatório de Atividade</b>")
	assert.Contains(t, text, "🔄 <b>Ciclos:</b> 3")
	assert.Contains(t, text, "✅ <b>Enviados:</b> 5")
	assert.Contains(t, text, "🚫 <b>Blacklist:</b> 1")
	assert.Contains(t, text, "📉 <b>Banco de Dados:</b> 40")
	assert.Contains(t, text, "autônomo")
	assert.NotContains(t, text, "Falhas")

	text = RenderStatus(domain.Stats{SourceFailures: 2})
	assert.Contains(t, text, "manual")
	assert.Contains(t, text, "fontes 2")
}
