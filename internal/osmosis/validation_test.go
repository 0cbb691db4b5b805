package osmosis_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kislikjeka/osmotax/internal/osmosis"
)

const validAddress = "osmo1abcdefghijklmnopqrstuvwxyz0123456789xy"

func TestValidateAddress_Valid(t *testing.T) {
	// Fixed prefix + exactly 39 lowercase alphanumerics (43 chars total)
	require.Len(t, validAddress, 43)
	assert.True(t, osmosis.ValidateAddress(validAddress))
}

func TestValidateAddress_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		address string
	}{
		{"wrong prefix", "cosmos1abcdefghijklmnopqrstuvwxyz012345678"},
		{"one char short", validAddress[:len(validAddress)-1]},
		{"one char long", validAddress + "z"},
		{"uppercase", "osmo1ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789XY"},
		{"punctuation", "osmo1abcdefghijklmnopqrstuvwxyz0123456789x!"},
		{"empty", ""},
		{"whitespace only", "   "},
		{"leading whitespace", " " + validAddress},
		{"trailing whitespace", validAddress + " "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, osmosis.ValidateAddress(tt.address))
		})
	}
}
