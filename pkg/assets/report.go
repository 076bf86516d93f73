package assets

import (
	"strings"

	"github.com/Rhymond/go-money"
)

// Missing is one asset that has no icon in the published manifest yet.
type Missing struct {
	Coin     string   `json:"coin" yaml:"coin"`
	Name     string   `json:"name" yaml:"name"`
	Category Category `json:"category" yaml:"category"`
	Grapheme string   `json:"grapheme,omitempty" yaml:"grapheme,omitempty"`
}

// Report is the todo diff of one category.
type Report struct {
	Category Category  `json:"category" yaml:"category"`
	Missing  []Missing `json:"missing" yaml:"missing"`
	Total    int       `json:"total" yaml:"total"`
}

// Done reports the "nothing to do" state.
func (r Report) Done() bool {
	return len(r.Missing) == 0
}

// BuildReport lists candidates whose coin is absent from the published
// symbols, in candidate order. Total is the number of candidates.
func BuildReport(category Category, published []RepositoryAsset, candidates []ClassifiedAsset) Report {
	known := make(map[string]struct{}, len(published))
	for _, a := range published {
		known[a.Symbol] = struct{}{}
	}

	r := Report{Category: category, Missing: []Missing{}, Total: len(candidates)}
	for _, a := range candidates {
		coin := strings.ToLower(a.Coin)
		if _, ok := known[coin]; ok {
			continue
		}
		m := Missing{Coin: coin, Name: a.Name, Category: category}
		if category == FiatCurrency {
			m.Grapheme = Grapheme(coin)
		}
		r.Missing = append(r.Missing, m)
	}
	return r
}

// Grapheme returns the currency sign of an ISO-4217 code, or "" if unknown.
func Grapheme(code string) string {
	c := money.GetCurrency(strings.ToUpper(code))
	if c == nil {
		return ""
	}
	return c.Grapheme
}
