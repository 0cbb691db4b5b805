// Package money provides lossless conversion between integer base-unit token
// amounts and their decimal display representation, plus denom-to-symbol
// mapping. All arithmetic runs on math/big integers; binary floating point is
// never used for amounts.
package money

import (
	"errors"
	"fmt"
)

// ErrDenomMismatch is returned when arithmetic is attempted across denoms.
var ErrDenomMismatch = errors.New("cannot combine amounts of different denoms")

// Amount is a normalized token amount: an exact decimal value string, the
// ledger denom it came from, and a human display symbol.
type Amount struct {
	Value  string `json:"value"`
	Denom  string `json:"denom"`
	Symbol string `json:"symbol"`
}

// NewAmount builds an Amount from a denom and a raw base-unit integer string.
// Malformed or empty raw amounts normalize to zero rather than failing; the
// wire format routinely omits optional amount fields.
func NewAmount(denom, rawAmount string) Amount {
	return Amount{
		Value:  FromBaseUnits(parseRawInt(rawAmount), Exponent(denom)),
		Denom:  denom,
		Symbol: SymbolFor(denom),
	}
}

// ZeroAmount returns a zero-valued Amount in the given denom.
func ZeroAmount(denom string) Amount {
	return Amount{
		Value:  "0",
		Denom:  denom,
		Symbol: SymbolFor(denom),
	}
}

// BaseUnits returns the amount's base-unit integer string.
func (a Amount) BaseUnits() (string, error) {
	n, err := ToBaseUnits(a.Value, Exponent(a.Denom))
	if err != nil {
		return "", fmt.Errorf("invalid amount value %q: %w", a.Value, err)
	}
	return n.String(), nil
}

// IsZero reports whether the amount's decimal value is zero.
func (a Amount) IsZero() bool {
	return a.Value == "0" || a.Value == ""
}

// Equal compares two amounts on their decimal representation and denom.
func (a Amount) Equal(b Amount) bool {
	return a.Denom == b.Denom && a.Value == b.Value
}

// Add sums two amounts of the same denom. Adding across denoms is a usage
// error and fails explicitly.
func (a Amount) Add(b Amount) (Amount, error) {
	if a.Denom != b.Denom {
		return Amount{}, fmt.Errorf("%w: %s + %s", ErrDenomMismatch, a.Denom, b.Denom)
	}

	exp := Exponent(a.Denom)
	x, err := ToBaseUnits(a.Value, exp)
	if err != nil {
		return Amount{}, fmt.Errorf("invalid amount value %q: %w", a.Value, err)
	}
	y, err := ToBaseUnits(b.Value, exp)
	if err != nil {
		return Amount{}, fmt.Errorf("invalid amount value %q: %w", b.Value, err)
	}

	return Amount{
		Value:  FromBaseUnits(x.Add(x, y), exp),
		Denom:  a.Denom,
		Symbol: SymbolFor(a.Denom),
	}, nil
}

// String renders the amount as "<value> <symbol>".
func (a Amount) String() string {
	return a.Value + " " + a.Symbol
}
