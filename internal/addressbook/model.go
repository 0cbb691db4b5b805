// Package addressbook persists the user's saved wallet addresses.
package addressbook

import (
	"time"

	"github.com/google/uuid"
)

// Entry is one saved wallet address with its display label.
type Entry struct {
	ID         uuid.UUID  `json:"id"`
	Address    string     `json:"address"`
	Label      string     `json:"label"`
	AddedAt    time.Time  `json:"added_at"`
	LastViewed *time.Time `json:"last_viewed,omitempty"`
}

// NewEntry builds an entry with a fresh ID and the current time.
func NewEntry(address, label string) Entry {
	return Entry{
		ID:      uuid.New(),
		Address: address,
		Label:   label,
		AddedAt: time.Now().UTC(),
	}
}
