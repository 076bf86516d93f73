package assets

import (
	"strconv"
	"strings"
)

// Issue describes a malformed exchange record.
type Issue struct {
	Index  int
	Coin   string
	Field  string
	Reason string
}

// Validate flags records with a missing coin or name and amounts that are
// not numbers. Flagged records are still classified; the caller decides
// whether to log or abort.
func Validate(raw []RawAsset) []Issue {
	var issues []Issue
	seen := make(map[string]int, len(raw))
	for i, a := range raw {
		coin := strings.ToLower(strings.TrimSpace(a.Coin))
		if coin == "" {
			issues = append(issues, Issue{Index: i, Field: "coin", Reason: "empty coin"})
			continue
		}
		if strings.TrimSpace(a.Name) == "" {
			issues = append(issues, Issue{Index: i, Coin: coin, Field: "name", Reason: "empty name"})
		}
		for _, f := range a.invalidAmounts() {
			issues = append(issues, Issue{Index: i, Coin: coin, Field: f.name, Reason: "invalid amount " + f.raw})
		}
		if first, dup := seen[coin]; dup {
			issues = append(issues, Issue{Index: i, Coin: coin, Field: "coin", Reason: "duplicate of record " + strconv.Itoa(first)})
			continue
		}
		seen[coin] = i
	}
	return issues
}

type amountField struct {
	name string
	raw  string
}

func (a RawAsset) invalidAmounts() []amountField {
	var out []amountField
	check := func(name string, v Amount) {
		if !v.Valid() {
			out = append(out, amountField{name: name, raw: v.Invalid})
		}
	}
	check("free", a.Free)
	check("locked", a.Locked)
	check("freeze", a.Freeze)
	check("withdrawing", a.Withdrawing)
	check("ipoing", a.Ipoing)
	check("ipoable", a.Ipoable)
	check("storage", a.Storage)
	for _, n := range a.NetworkList {
		prefix := "networkList." + n.Network + "."
		check(prefix+"withdrawFee", n.WithdrawFee)
		check(prefix+"withdrawMin", n.WithdrawMin)
		check(prefix+"withdrawMax", n.WithdrawMax)
		check(prefix+"withdrawIntegerMultiple", n.WithdrawIntegerMultiple)
	}
	return out
}
