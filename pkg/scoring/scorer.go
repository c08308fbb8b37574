// Package scoring ranks listings and keeps per-category representation bounded.
package scoring

import (
	"math"
	"strings"

	"github.com/umputun/dealscope/pkg/config"
	"github.com/umputun/dealscope/pkg/domain"
)

// Scorer computes a desirability score for listings. Zero value is not usable, use NewScorer.
type Scorer struct {
	base           float64
	volumeBonus    float64
	trendBonus     float64
	discountWeight float64
	discountCap    float64
}

// Option configures a Scorer
type Option func(s *Scorer)

// WithWeights replaces the default weights with values set in config, nil fields keep defaults
func WithWeights(cfg config.ScoringConfig) Option {
	return func(s *Scorer) {
		set := func(dst *float64, v *float64) {
			if v != nil {
				*dst = *v
			}
		}
		set(&s.base, cfg.Base)
		set(&s.volumeBonus, cfg.VolumeBonus)
		set(&s.trendBonus, cfg.TrendBonus)
		set(&s.discountWeight, cfg.DiscountWeight)
		set(&s.discountCap, cfg.DiscountCap)
	}
}

// NewScorer makes a Scorer with default weights: base 20, volume 30, trend 45, discount 0.5 capped at 30
func NewScorer(opts ...Option) *Scorer {
	s := &Scorer{base: 20, volumeBonus: 30, trendBonus: 45, discountWeight: 0.5, discountCap: 30}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Score returns the listing score and whether a trending term matched.
// The result is deterministic and rounded to 2 decimals.
func (s *Scorer) Score(l domain.Listing, terms []domain.TrendingTerm) (score float64, trending bool) {
	score = s.base

	if l.Origin == domain.OriginVolumeCategory {
		score += s.volumeBonus
	}

	if matchTerm(l.Title, terms) != "" {
		score += s.trendBonus
		trending = true
	}

	score += math.Min(math.Max(l.BestDiscountPct(), 0)*s.discountWeight, s.discountCap)
	score += priceTier(l.Price)

	return math.Round(score*100) / 100, trending
}

// Annotate scores every listing, preserving input order
func (s *Scorer) Annotate(listings []domain.Listing, terms []domain.TrendingTerm) []domain.ScoredListing {
	res := make([]domain.ScoredListing, 0, len(listings))
	for _, l := range listings {
		score, trending := s.Score(l, terms)
		res = append(res, domain.ScoredListing{Listing: l, Score: score, IsTrending: trending})
	}
	return res
}

// priceTier gives the single most specific tier bonus
func priceTier(price float64) float64 {
	switch {
	case price < 50:
		return 15
	case price < 100:
		return 10
	case price < 250:
		return 5
	default:
		return 0
	}
}

// matchTerm returns the first term contained in title, case-insensitive
func matchTerm(title string, terms []domain.TrendingTerm) string {
	lt := strings.ToLower(title)
	for _, t := range terms {
		term := strings.ToLower(strings.TrimSpace(t.Term))
		if term == "" {
			continue
		}
		if strings.Contains(lt, term) {
			return t.Term
		}
	}
	return ""
}
