// Package markdown renders the manifest into the aligned markdown tables
// embedded in README.md and PREVIEW.md.
package markdown

import (
	"strconv"
	"strings"
	"unicode/utf16"

	"github.com/vadimmalykhin/binance-icons-toolkit/pkg/assets"
	"github.com/vadimmalykhin/binance-icons-toolkit/pkg/constants"
)

// Segment is the path segment of a category's icons in the published repo.
// ETF icons are released into the crypto directory.
func Segment(c assets.Category) string {
	if c == assets.FiatCurrency {
		return "currency"
	}
	return "crypto"
}

// IconURL returns the raw URL of an icon.
func IconURL(baseURL string, c assets.Category, symbol string) string {
	if baseURL == "" {
		baseURL = constants.IconsBaseURL
	}
	return strings.TrimRight(baseURL, "/") + "/" + Segment(c) + "/" + symbol + ".svg"
}

// RenderTable renders one row per asset. The symbol and name columns are
// padded to the longest value of the list; the last row has no newline.
// An empty list renders as "".
func RenderTable(c assets.Category, list []assets.RepositoryAsset, baseURL string) string {
	if len(list) == 0 {
		return ""
	}

	symbolMax, nameMax := 0, 0
	for _, a := range list {
		symbolMax = max(symbolMax, textLen(a.Symbol))
		nameMax = max(nameMax, textLen(a.Name))
	}

	var b strings.Builder
	for i, a := range list {
		pad := strings.Repeat(" ", symbolMax-textLen(a.Symbol)+1)
		namePad := strings.Repeat(" ", nameMax-textLen(a.Name)+1)

		b.WriteString(`| <img src="`)
		b.WriteString(IconURL(baseURL, c, a.Symbol))
		b.WriteString(`" width="32" height="32" alt=""/>`)
		b.WriteString(pad)
		b.WriteString("| ")
		b.WriteString(a.Symbol)
		b.WriteString(pad)
		b.WriteString("| ")
		b.WriteString(a.Name)
		b.WriteString(namePad)
		b.WriteString("|")
		if i < len(list)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// textLen is the length of s in UTF-16 code units, the unit the published
// tables were padded with.
func textLen(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}

// Table is the rendered block of one category.
type Table struct {
	Category assets.Category
	Count    int
	Rows     string
}

// Tables holds the rendered blocks of every category.
type Tables map[assets.Category]Table

// Render renders every category of m.
func Render(m assets.Manifest, baseURL string) Tables {
	out := make(Tables, 3)
	for _, c := range assets.Categories() {
		list := m.Category(c)
		out[c] = Table{Category: c, Count: len(list), Rows: RenderTable(c, list, baseURL)}
	}
	return out
}

// placeholder returns the template key prefix of c, e.g. "previewEtf".
func placeholder(c assets.Category) string {
	switch c {
	case assets.CryptoETF:
		return "previewEtf"
	case assets.FiatCurrency:
		return "previewCurrency"
	default:
		return "previewCrypto"
	}
}

// Substitute replaces every {{ previewXCount }} and {{ previewXTable }}
// placeholder in template. Unknown placeholders are left alone.
func Substitute(template string, tables Tables) string {
	pairs := make([]string, 0, 12)
	for _, c := range assets.Categories() {
		t := tables[c]
		key := placeholder(c)
		pairs = append(pairs,
			"{{ "+key+"Count }}", strconv.Itoa(t.Count),
			"{{ "+key+"Table }}", t.Rows,
		)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}
