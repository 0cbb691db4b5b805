package osmosis

import "regexp"

// Osmosis account address: the fixed lowercase prefix followed by exactly 39
// lowercase alphanumeric characters (43 characters total). No uppercase, no
// punctuation, no surrounding whitespace. Callers must trim input before
// validation.
var addressRegex = regexp.MustCompile(`^osmo[a-z0-9]{39}$`)

// ValidateAddress reports whether the address is a well-formed Osmosis
// account address.
func ValidateAddress(address string) bool {
	return addressRegex.MatchString(address)
}
