package scoring

import (
	"sort"
	"strings"

	"github.com/umputun/dealscope/pkg/config"
	"github.com/umputun/dealscope/pkg/domain"
)

// OtherCategory is the bucket for listings matching no category keyword
const OtherCategory = "other"

// Category is a label with its match keywords and per-cycle quota
type Category struct {
	Name     string
	Keywords []string
	Max      int
}

// Limiter enforces per-category quotas on a ranked set
type Limiter struct {
	categories []Category
	defaultMax int
	quotas     map[string]int
}

// NewLimiter makes a limiter from the ordered category table and the "other" quota
func NewLimiter(categories []Category, defaultMax int) *Limiter {
	res := &Limiter{defaultMax: defaultMax, quotas: make(map[string]int, len(categories)+1)}
	for _, c := range categories {
		kws := make([]string, 0, len(c.Keywords))
		for _, kw := range c.Keywords {
			if kw = strings.ToLower(strings.TrimSpace(kw)); kw != "" {
				kws = append(kws, kw)
			}
		}
		res.categories = append(res.categories, Category{Name: c.Name, Keywords: kws, Max: c.Max})
		if _, ok := res.quotas[c.Name]; !ok {
			res.quotas[c.Name] = c.Max
		}
	}
	if _, ok := res.quotas[OtherCategory]; !ok {
		res.quotas[OtherCategory] = defaultMax
	}
	return res
}

// NewLimiterFromConfig makes a limiter from the categories section
func NewLimiterFromConfig(cfg config.CategoriesConfig) *Limiter {
	cats := make([]Category, 0, len(cfg.Items))
	for _, c := range cfg.Items {
		cats = append(cats, Category{Name: c.Name, Keywords: c.Keywords, Max: c.Max})
	}
	return NewLimiter(cats, cfg.DefaultMax)
}

// Categorize returns the first category whose keyword is in the title, "other" if none
func (l *Limiter) Categorize(title string) string {
	lt := strings.ToLower(title)
	for _, c := range l.categories {
		for _, kw := range c.Keywords {
			if strings.Contains(lt, kw) {
				return c.Name
			}
		}
	}
	return OtherCategory
}

// Quota returns the max count for a category, unknown categories use the "other" quota
func (l *Limiter) Quota(category string) int {
	if q, ok := l.quotas[category]; ok {
		return q
	}
	return l.defaultMax
}

// Limit partitions by category, keeps the top quota of each by score and returns them
// sorted by score descending. Equal scores keep input order.
func (l *Limiter) Limit(items []domain.ScoredListing) []domain.ScoredListing {
	type ranked struct {
		domain.ScoredListing
		idx int
	}

	partitions := make(map[string][]ranked)
	var order []string
	for i, it := range items {
		it.Category = l.Categorize(it.Title)
		if _, ok := partitions[it.Category]; !ok {
			order = append(order, it.Category)
		}
		partitions[it.Category] = append(partitions[it.Category], ranked{ScoredListing: it, idx: i})
	}

	kept := make([]ranked, 0, len(items))
	for _, cat := range order {
		part := partitions[cat]
		sort.SliceStable(part, func(i, j int) bool { return part[i].Score > part[j].Score })
		if q := max(l.Quota(cat), 0); len(part) > q {
			part = part[:q]
		}
		kept = append(kept, part...)
	}

	// ties resolve to the earlier input listing, not to category order
	sort.SliceStable(kept, func(i, j int) bool {
		if kept[i].Score != kept[j].Score {
			return kept[i].Score > kept[j].Score
		}
		return kept[i].idx < kept[j].idx
	})

	res := make([]domain.ScoredListing, len(kept))
	for i, k := range kept {
		res[i] = k.ScoredListing
	}
	return res
}
