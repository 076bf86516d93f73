package assets

import (
	"sort"
	"strings"
)

// BuildNameIndex maps coin to display name for every non fiat asset.
// Entries are applied in coin order, so on a duplicate coin the later
// entry of the sorted list wins.
func BuildNameIndex(list []ClassifiedAsset) NameIndex {
	type entry struct{ coin, name string }
	entries := make([]entry, 0, len(list))
	for _, a := range list {
		if a.IsLegalMoney || a.Category == FiatCurrency {
			continue
		}
		entries = append(entries, entry{coin: strings.ToLower(a.Coin), name: a.Name})
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].coin < entries[j].coin })

	index := make(NameIndex, len(entries))
	for _, e := range entries {
		index[e.coin] = e.name
	}
	return index
}

// Lookup returns the display name of coin.
func (n NameIndex) Lookup(coin string) (string, bool) {
	name, ok := n[strings.ToLower(coin)]
	return name, ok
}
