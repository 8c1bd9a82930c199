// Package core holds the domain types shared by the store, the services and
// the presentation layer: expenses, the persisted document, and monetary
// amounts.
//
// Amounts are decimals, not floats, so that what the user typed is what gets
// persisted and displayed. The persisted document still carries them as bare
// JSON numbers for compatibility with files written by earlier versions.
package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Amount is a signed monetary value in a single implicit currency.
type Amount struct {
	decimal.Decimal
}

// NewAmount wraps a decimal as an Amount.
func NewAmount(d decimal.Decimal) Amount {
	return Amount{Decimal: d}
}

// ParseAmount parses user-entered amount text. Both dot (12.34) and comma
// (12,34) decimal separators are accepted; comma is normalized to dot before
// parsing. Negative values are valid.
//
// Returns ErrEmptyInput for blank text and ErrInvalidAmount when the text is
// not a real number after normalization.
func ParseAmount(text string) (Amount, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Amount{}, ErrEmptyInput
	}
	text = strings.ReplaceAll(text, ",", ".")
	d, err := decimal.NewFromString(text)
	if err != nil {
		return Amount{}, ErrInvalidAmount
	}
	return Amount{Decimal: d}, nil
}

// MarshalJSON writes the amount as a bare JSON number rather than the quoted
// string decimal.Decimal defaults to, keeping the on-disk document format.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.Decimal.String()), nil
}

// Add returns a + b.
func (a Amount) Add(b Amount) Amount {
	return Amount{Decimal: a.Decimal.Add(b.Decimal)}
}

// Equal reports numeric equality, so 12.5 and 12.50 compare equal.
func (a Amount) Equal(b Amount) bool {
	return a.Decimal.Equal(b.Decimal)
}

// Display renders the amount with two decimal places.
func (a Amount) Display() string {
	return a.Decimal.StringFixed(2)
}
