package assets

import (
	"fmt"
	"strings"
)

// Category is one of the three disjoint asset buckets.
type Category int

// Categories.
const (
	Crypto Category = iota
	CryptoETF
	FiatCurrency
)

// Categories returns every category in manifest order.
func Categories() []Category {
	return []Category{Crypto, CryptoETF, FiatCurrency}
}

// String returns the directory and manifest key of the category.
func (c Category) String() string {
	switch c {
	case Crypto:
		return "crypto"
	case CryptoETF:
		return "etf"
	case FiatCurrency:
		return "currency"
	default:
		return fmt.Sprintf("category(%d)", int(c))
	}
}

// Title returns a human label.
func (c Category) Title() string {
	switch c {
	case CryptoETF:
		return "Crypto ETF"
	case FiatCurrency:
		return "Currency"
	default:
		return "Crypto"
	}
}

// Plural returns the label of a list of c, as used by the todo report.
func (c Category) Plural() string {
	switch c {
	case CryptoETF:
		return "ETFs"
	case FiatCurrency:
		return "Currencies"
	default:
		return "Crypto"
	}
}

// ParseCategory parses a category key.
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "crypto":
		return Crypto, nil
	case "etf":
		return CryptoETF, nil
	case "currency":
		return FiatCurrency, nil
	}
	return 0, fmt.Errorf("unknown category %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
