package addressbook

import "errors"

var (
	// ErrNotFound indicates no entry exists with the given ID.
	ErrNotFound = errors.New("address book entry not found")

	// ErrDuplicateAddress indicates the address is already saved.
	ErrDuplicateAddress = errors.New("address already in address book")

	// ErrStorageFull indicates the backing store rejected the write for
	// lack of space. Callers surface this distinctly so the user knows
	// the entry was not saved.
	ErrStorageFull = errors.New("address book storage is full")
)
