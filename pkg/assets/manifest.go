package assets

import (
	"fmt"
	"sort"
	"strings"

	pkgerrors "github.com/vadimmalykhin/binance-icons-toolkit/pkg/errors"
)

// Manifest is the published record of which assets have icons.
type Manifest struct {
	Crypto   []RepositoryAsset `json:"crypto"`
	ETF      []RepositoryAsset `json:"etf"`
	Currency []RepositoryAsset `json:"currency"`
}

// Category returns the list of c. The result is never nil.
func (m Manifest) Category(c Category) []RepositoryAsset {
	var list []RepositoryAsset
	switch c {
	case CryptoETF:
		list = m.ETF
	case FiatCurrency:
		list = m.Currency
	default:
		list = m.Crypto
	}
	if list == nil {
		return []RepositoryAsset{}
	}
	return list
}

// SetCategory replaces the list of c.
func (m *Manifest) SetCategory(c Category, list []RepositoryAsset) {
	if list == nil {
		list = []RepositoryAsset{}
	}
	switch c {
	case CryptoETF:
		m.ETF = list
	case FiatCurrency:
		m.Currency = list
	default:
		m.Crypto = list
	}
}

// Normalized returns m with nil lists replaced by empty ones, so it always
// encodes as arrays.
func (m Manifest) Normalized() Manifest {
	var out Manifest
	for _, c := range Categories() {
		out.SetCategory(c, m.Category(c))
	}
	return out
}

// Len is the number of entries across all categories.
func (m Manifest) Len() int {
	return len(m.Crypto) + len(m.ETF) + len(m.Currency)
}

// Symbols returns the symbol set of category c.
func (m Manifest) Symbols(c Category) map[string]struct{} {
	list := m.Category(c)
	set := make(map[string]struct{}, len(list))
	for _, a := range list {
		set[a.Symbol] = struct{}{}
	}
	return set
}

// Validate checks that every category is strictly ascending by symbol.
func (m Manifest) Validate() error {
	for _, c := range Categories() {
		list := m.Category(c)
		for i := 1; i < len(list); i++ {
			if list[i-1].Symbol >= list[i].Symbol {
				return pkgerrors.NewValidationError(c.String(), list[i].Symbol,
					fmt.Sprintf("symbols not strictly ascending at %q after %q", list[i].Symbol, list[i-1].Symbol))
			}
		}
	}
	return nil
}

// MergeCategory extends the published list with the fresh assets.
// Empty names are backfilled from names. On duplicate symbols the first
// occurrence wins, so published entries are never replaced. The result is
// sorted by symbol. published is not modified.
func MergeCategory(published []RepositoryAsset, fresh []ClassifiedAsset, names NameIndex) []RepositoryAsset {
	combined := make([]RepositoryAsset, 0, len(published)+len(fresh))
	combined = append(combined, published...)
	for _, a := range fresh {
		symbol := strings.ToLower(a.Coin)
		name := a.Name
		if name == "" {
			if n, ok := names.Lookup(symbol); ok {
				name = n
			}
		}
		combined = append(combined, RepositoryAsset{Symbol: symbol, Name: name})
	}

	seen := make(map[string]struct{}, len(combined))
	out := make([]RepositoryAsset, 0, len(combined))
	for _, a := range combined {
		if _, dup := seen[a.Symbol]; dup {
			continue
		}
		seen[a.Symbol] = struct{}{}
		out = append(out, a)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Symbol < out[j].Symbol })
	return out
}

// Merge applies MergeCategory to every category.
func Merge(prior Manifest, fresh Classified, names NameIndex) Manifest {
	var out Manifest
	for _, c := range Categories() {
		out.SetCategory(c, MergeCategory(prior.Category(c), fresh.Category(c), names))
	}
	return out
}

// Added returns the entries of next whose symbol is not in prev, per category.
func Added(prev, next Manifest) map[Category][]RepositoryAsset {
	out := make(map[Category][]RepositoryAsset, 3)
	for _, c := range Categories() {
		known := prev.Symbols(c)
		for _, a := range next.Category(c) {
			if _, ok := known[a.Symbol]; !ok {
				out[c] = append(out[c], a)
			}
		}
	}
	return out
}
