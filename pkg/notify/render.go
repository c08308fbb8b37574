package notify

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/umputun/dealscope/pkg/domain"
)

const reviewHeader = "🕵️ <b>NOVA OFERTA (Aguardando Aprovação)</b>"

var strict = bluemonday.StrictPolicy()

// FormatBRL formats a value as brazilian currency without the symbol, e.g. 1.299,90
func FormatBRL(v float64) string {
	cents := int64(math.Round(math.Abs(v) * 100))
	intPart := strconv.FormatInt(cents/100, 10)

	var b strings.Builder
	if v < 0 && cents > 0 {
		b.WriteByte('-')
	}
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	fmt.Fprintf(&b, ",%02d", cents%100)
	return b.String()
}

// clean strips any markup from text coming from listings, the result is safe for telegram html
func clean(s string) string {
	return strings.TrimSpace(strict.Sanitize(s))
}

// RenderDeal makes the html caption for a deal. Reviewer messages get the approval header,
// the decision reason and the canonical link.
func RenderDeal(n domain.Notice, headline string, target domain.Target) string {
	var b strings.Builder
	deal := n.Deal

	if target == domain.TargetReviewer {
		b.WriteString(reviewHeader + "\n\n")
	}
	fmt.Fprintf(&b, "🔥 <b>%s</b>\n\n", strings.ToUpper(clean(headline)))
	b.WriteString(clean(deal.Title) + "\n\n")

	price := FormatBRL(deal.Price)
	if deal.OriginalPrice != nil && *deal.OriginalPrice > deal.Price {
		discount := int(deal.RealDiscountPct())
		fmt.Fprintf(&b, "De <s>R$ %s</s> por\n", FormatBRL(*deal.OriginalPrice))
		fmt.Fprintf(&b, "💰 <b>R$ %s</b>  <i>(%d%% OFF)</i>\n\n", price, discount)
	} else {
		fmt.Fprintf(&b, "💰 <b>R$ %s</b>\n\n", price)
	}

	store := clean(deal.Store)
	if store == "" {
		store = "Oferta Online"
	}
	fmt.Fprintf(&b, "📦 <b>%s</b>\n", store)
	fmt.Fprintf(&b, "🔗 <a href=\"%s\">VER OFERTA</a>", strict.Sanitize(deal.LinkURL()))

	if target == domain.TargetReviewer {
		b.WriteString("\n\n")
		if n.Decision.Reason == domain.ReasonPriceDrop && n.OldPrice > 0 {
			fmt.Fprintf(&b, "📉 Preço anterior: R$ %s\n", FormatBRL(n.OldPrice))
		}
		fmt.Fprintf(&b, "⭐ Score: %.2f | %s\n", deal.Score, reasonLabel(n.Decision.Reason))
		if deal.AffiliateURL == "" || deal.AffiliateURL == deal.URL {
			fmt.Fprintf(&b, "Link Original: %s", strict.Sanitize(deal.URL))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// RenderStatus makes the activity report
func RenderStatus(s domain.Stats) string {
	mode := "manual"
	if s.Autonomous {
		mode = "autônomo"
	}
	var b strings.Builder
	b.WriteString("📊 <b>Relatório de Atividade</b>\n\n")
	fmt.Fprintf(&b, "🔄 <b>Ciclos:</b> %d\n", s.Cycles)
	fmt.Fprintf(&b, "✅ <b>Enviados:</b> %d\n", s.Sent)
	fmt.Fprintf(&b, "🕵️ <b>Aguardando:</b> %d\n", s.Queued)
	fmt.Fprintf(&b, "🚫 <b>Blacklist:</b> %d\n", s.Blacklisted)
	fmt.Fprintf(&b, "📉 <b>Banco de Dados:</b> %d\n", s.TotalSeen)
	fmt.Fprintf(&b, "🤖 <b>Modo:</b> %s", mode)
	if failures := s.SourceFailures + s.StorageFailures + s.MintFailures + s.PublishFailures; failures > 0 {
		fmt.Fprintf(&b, "\n⚠️ <b>Falhas:</b> fontes %d, banco %d, links %d, envio %d",
			s.SourceFailures, s.StorageFailures, s.MintFailures, s.PublishFailures)
	}
	return b.String()
}

func reasonLabel(r domain.Reason) string {
	switch r {
	case domain.ReasonPriceDrop:
		return "preço mudou"
	case domain.ReasonManualMode:
		return "modo manual"
	case domain.ReasonBelowAutonomous:
		return "abaixo do limite autônomo"
	case domain.ReasonMintFailed:
		return "falha no link de afiliado"
	case domain.ReasonManualURL:
		return "link manual"
	default:
		return string(r)
	}
}
