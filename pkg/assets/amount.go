package assets

import (
	"bytes"

	"github.com/shopspring/decimal"
)

// Amount is a decimal amount of the exchange feed. A value that is not a
// number decodes to zero and keeps its raw JSON in Invalid, so one odd field
// does not reject the whole feed. null decodes to zero.
type Amount struct {
	decimal.Decimal
	Invalid string
}

// NewAmount returns a valid amount of d.
func NewAmount(d decimal.Decimal) Amount {
	return Amount{Decimal: d}
}

// Valid reports whether the amount decoded as a number.
func (a Amount) Valid() bool {
	return a.Invalid == ""
}

// UnmarshalJSON implements json.Unmarshaler.
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*a = Amount{}
		return nil
	}
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		*a = Amount{Invalid: string(data)}
		return nil
	}
	*a = Amount{Decimal: d}
	return nil
}

// MarshalJSON implements json.Marshaler. Invalid amounts are written back
// as received.
func (a Amount) MarshalJSON() ([]byte, error) {
	if a.Invalid != "" {
		return []byte(a.Invalid), nil
	}
	return a.Decimal.MarshalJSON()
}
