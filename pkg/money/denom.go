package money

import "strings"

// DefaultFeeDenom is the denom fees are paid in when a transaction carries no
// explicit fee entry.
const DefaultFeeDenom = "uosmo"

// defaultExponent is the base-unit exponent assumed for denoms without an
// explicit override. Almost every Cosmos SDK chain uses micro-units.
const defaultExponent = 6

const ibcDenomPrefix = "ibc/"

// knownSymbols maps native and common denoms to their display symbols.
// Lookup is case-sensitive exact match.
var knownSymbols = map[string]string{
	"uosmo":  "OSMO",
	"uion":   "ION",
	"uatom":  "ATOM",
	"ujuno":  "JUNO",
	"uakt":   "AKT",
	"uscrt":  "SCRT",
	"ustars": "STARS",
	"uusdc":  "USDC",
}

// exponentOverrides lists denoms whose base-unit exponent differs from the
// 6-decimal default.
var exponentOverrides = map[string]int{
	"wei":    18,
	"aevmos": 18,
	"inj":    18,
}

// Exponent returns the number of decimal places for a denom: 6 unless the
// denom has an explicit override.
func Exponent(denom string) int {
	if exp, ok := exponentOverrides[denom]; ok {
		return exp
	}
	return defaultExponent
}

// SymbolFor maps a denom identifier to a display symbol.
//
// Known denoms resolve through the static table. IBC hashed denoms
// ("ibc/<hex hash>") are shortened to "IBC/" plus the first six hash
// characters, uppercased. Anything else has a single leading micro-unit
// prefix ("u") stripped and the remainder uppercased; identifiers without
// the prefix are uppercased whole.
func SymbolFor(denom string) string {
	if symbol, ok := knownSymbols[denom]; ok {
		return symbol
	}

	if strings.HasPrefix(denom, ibcDenomPrefix) {
		hash := denom[len(ibcDenomPrefix):]
		if len(hash) > 6 {
			hash = hash[:6]
		}
		return "IBC/" + strings.ToUpper(hash)
	}

	if len(denom) > 1 && denom[0] == 'u' {
		return strings.ToUpper(denom[1:])
	}

	return strings.ToUpper(denom)
}
