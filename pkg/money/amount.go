package money

import (
	"fmt"
	"math/big"
	"strings"
)

// ToBaseUnits converts a human-readable decimal string to base units (big.Int).
// Handles decimal inputs like "1.5" → 1500000 (for a 6-decimal denom).
// Fractional digits beyond the denom's precision are truncated, not rounded,
// so the conversion is lossy for over-precise inputs.
func ToBaseUnits(amountStr string, decimals int) (*big.Int, error) {
	if amountStr == "" {
		return nil, fmt.Errorf("amount is required")
	}

	// Use string manipulation to avoid floating point precision issues
	parts := strings.Split(amountStr, ".")

	intPart := parts[0]
	if intPart == "" {
		intPart = "0"
	}

	decPart := ""
	if len(parts) > 1 {
		decPart = parts[1]
	}

	// Pad or truncate the fractional part to exactly `decimals` digits
	if len(decPart) < decimals {
		decPart = decPart + strings.Repeat("0", decimals-len(decPart))
	} else if len(decPart) > decimals {
		decPart = decPart[:decimals]
	}

	combined := intPart + decPart

	// Remove leading zeros (but keep at least one digit)
	combined = strings.TrimLeft(combined, "0")
	if combined == "" {
		combined = "0"
	}

	result := new(big.Int)
	if _, ok := result.SetString(combined, 10); !ok {
		return nil, fmt.Errorf("invalid amount format: %q", amountStr)
	}

	return result, nil
}

// FromBaseUnits converts base units (big.Int) to a human-readable decimal
// string. E.g. 1500000 with 6 decimals → "1.5". Trailing fractional zeros are
// stripped; whole amounts carry no decimal point; nil input yields "0".
func FromBaseUnits(amount *big.Int, decimals int) string {
	if amount == nil {
		return "0"
	}

	str := amount.String()
	if decimals == 0 {
		return str
	}

	// Pad with leading zeros so the fractional slice is always full width
	for len(str) <= decimals {
		str = "0" + str
	}

	pos := len(str) - decimals
	result := str[:pos] + "." + str[pos:]

	result = strings.TrimRight(result, "0")
	result = strings.TrimRight(result, ".")

	if result == "" {
		return "0"
	}

	return result
}

// FormatBaseUnits converts a raw base-unit integer string to its decimal
// representation. The input may exceed int64 range; it is parsed with
// arbitrary precision, never through binary floating point.
func FormatBaseUnits(raw string, decimals int) (string, error) {
	if raw == "" {
		return "", fmt.Errorf("amount is required")
	}
	n := new(big.Int)
	if _, ok := n.SetString(raw, 10); !ok {
		return "", fmt.Errorf("invalid base unit amount: %q", raw)
	}
	return FromBaseUnits(n, decimals), nil
}

// parseRawInt parses a base-unit integer string, returning zero on empty or
// malformed input. Used where the wire format tolerates missing amounts.
func parseRawInt(raw string) *big.Int {
	if raw == "" {
		return big.NewInt(0)
	}
	n := new(big.Int)
	if _, ok := n.SetString(raw, 10); !ok {
		return big.NewInt(0)
	}
	return n
}
