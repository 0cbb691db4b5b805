package osmosis

import "errors"

var (
	// ErrNotConnected is returned when an operation requires a live
	// connection and the client has not been connected (or was disconnected).
	ErrNotConnected = errors.New("osmosis client is not connected")

	// ErrInvalidAddress is returned for addresses that fail bech32-format
	// validation.
	ErrInvalidAddress = errors.New("invalid osmosis address")

	// ErrTxNotFound is returned when the ledger has no record for a
	// transaction hash.
	ErrTxNotFound = errors.New("transaction not found")
)
