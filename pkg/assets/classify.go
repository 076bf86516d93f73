package assets

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// etfNetwork is the network tag the exchange uses for ETF-like tokens.
const etfNetwork = "ETF"

// Classified is the classifier output, one list per category.
type Classified struct {
	Crypto   []ClassifiedAsset
	ETF      []ClassifiedAsset
	Currency []ClassifiedAsset
}

// Category returns the list of c.
func (c Classified) Category(cat Category) []ClassifiedAsset {
	switch cat {
	case CryptoETF:
		return c.ETF
	case FiatCurrency:
		return c.Currency
	default:
		return c.Crypto
	}
}

// Len is the number of classified assets across all categories.
func (c Classified) Len() int {
	return len(c.Crypto) + len(c.ETF) + len(c.Currency)
}

// All returns every asset in category order.
func (c Classified) All() []ClassifiedAsset {
	out := make([]ClassifiedAsset, 0, c.Len())
	out = append(out, c.Crypto...)
	out = append(out, c.ETF...)
	return append(out, c.Currency...)
}

// ClassifyOne returns the category of a single asset.
// Legal money wins over every other rule.
func ClassifyOne(a RawAsset) Category {
	if a.IsLegalMoney {
		return FiatCurrency
	}
	if len(a.NetworkList) > 0 && a.NetworkList[0].Network == etfNetwork {
		return CryptoETF
	}
	if IsLeveragedToken(a.Name) {
		return CryptoETF
	}
	return Crypto
}

// IsLeveragedToken reports whether name looks like "3X Long BTC Token".
func IsLeveragedToken(name string) bool {
	if utf8.RuneCountInString(name) <= 13 {
		return false
	}
	if !strings.HasPrefix(name, "3X Long") && !strings.HasPrefix(name, "3X Short") {
		return false
	}
	return strings.HasSuffix(name, "Token")
}

// Classify splits assets into the three categories. Every input lands in
// exactly one list, input order is kept within a list and coins are lowercased.
func Classify(raw []RawAsset) Classified {
	var out Classified
	for _, a := range raw {
		c := ClassifiedAsset{RawAsset: a, Category: ClassifyOne(a)}
		c.Coin = strings.ToLower(a.Coin)
		switch c.Category {
		case FiatCurrency:
			out.Currency = append(out.Currency, c)
		case CryptoETF:
			out.ETF = append(out.ETF, c)
		default:
			out.Crypto = append(out.Crypto, c)
		}
	}
	return out
}

// SortByCoin returns a copy of list stably sorted by coin.
func SortByCoin(list []ClassifiedAsset) []ClassifiedAsset {
	out := make([]ClassifiedAsset, len(list))
	copy(out, list)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Coin < out[j].Coin })
	return out
}
