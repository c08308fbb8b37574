package domain

import "time"

// Origin tags which source strategy produced a listing
type Origin string

const (
	OriginVolumeCategory Origin = "volume-category"
	OriginTrendSearch    Origin = "trend-search"
	OriginFeed           Origin = "feed"
	OriginManual         Origin = "manual"
)

// Listing represents one candidate product entry as returned by a source
type Listing struct {
	Identity          string
	Title             string
	Price             float64
	OriginalPrice     *float64
	SourceDiscountPct *float64
	ImageURL          string
	URL               string
	Origin            Origin
	Store             string
	Source            string
	FetchedAt         time.Time
}

// RealDiscountPct returns the discount implied by original and current price, 0 if none
func (l Listing) RealDiscountPct() float64 {
	if l.OriginalPrice == nil || *l.OriginalPrice <= l.Price || *l.OriginalPrice <= 0 {
		return 0
	}
	return 100 * (*l.OriginalPrice - l.Price) / *l.OriginalPrice
}

// BestDiscountPct returns the larger of the declared and the real discount
func (l Listing) BestDiscountPct() float64 {
	best := l.RealDiscountPct()
	if l.SourceDiscountPct != nil && *l.SourceDiscountPct > best {
		best = *l.SourceDiscountPct
	}
	return best
}

// ScoredListing is a listing annotated by the scorer
type ScoredListing struct {
	Listing
	Score        float64
	IsTrending   bool
	Category     string
	AffiliateURL string
}

// LinkURL returns the affiliate link if minted, canonical URL otherwise
func (s ScoredListing) LinkURL() string {
	if s.AffiliateURL != "" {
		return s.AffiliateURL
	}
	return s.URL
}

// TrendingTerm is an externally supplied demand keyword
type TrendingTerm struct {
	Term     string `json:"term"`
	Rank     int    `json:"rank"`
	Category string `json:"category"`
}

// SeenRecord is the last announced state of an identity
type SeenRecord struct {
	Identity    string
	LastPrice   float64
	Title       string
	URL         string
	Store       string
	FirstSeenAt time.Time
	LastSeenAt  time.Time
}

// RepublishKind classifies a candidate against the seen-item store
type RepublishKind string

const (
	RepublishNew          RepublishKind = "new"
	RepublishUnchanged    RepublishKind = "unchanged"
	RepublishPriceDropped RepublishKind = "price_dropped"
)

// RepublishState is the store verdict for a candidate price; OldPrice is set for price_dropped
type RepublishState struct {
	Kind     RepublishKind
	OldPrice float64
}

// ModeState holds the autonomous flag and its last change time
type ModeState struct {
	Autonomous bool
	UpdatedAt  time.Time
}

// Float64 returns a pointer to v, used for optional prices and discounts
func Float64(v float64) *float64 {
	return &v
}
