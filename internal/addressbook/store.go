package addressbook

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/kislikjeka/osmotax/pkg/logger"
)

// storageKey is the single Redis key holding the serialized address book.
const storageKey = "osmotax:addressbook"

// Store is a Redis-backed address book. The whole book lives under one
// key as a JSON list; reads and writes load and replace it wholesale.
type Store struct {
	client *redis.Client
	logger *logger.Logger
}

// NewStore creates an address book store on the given Redis client.
func NewStore(client *redis.Client, log *logger.Logger) *Store {
	return &Store{
		client: client,
		logger: log.WithField("component", "addressbook"),
	}
}

// List returns all saved entries in insertion order. An absent key is an
// empty book, not an error.
func (s *Store) List(ctx context.Context) ([]Entry, error) {
	val, err := s.client.Get(ctx, storageKey).Result()
	if err == redis.Nil {
		return []Entry{}, nil
	}
	if err != nil {
		s.logger.Error("storage error", "operation", "list", "error", err)
		return nil, fmt.Errorf("failed to load address book: %w", err)
	}

	var entries []Entry
	if err := json.Unmarshal([]byte(val), &entries); err != nil {
		return nil, fmt.Errorf("failed to unmarshal address book: %w", err)
	}
	return entries, nil
}

// Get returns the entry with the given ID, or ErrNotFound.
func (s *Store) Get(ctx context.Context, id uuid.UUID) (Entry, error) {
	entries, err := s.List(ctx)
	if err != nil {
		return Entry{}, err
	}
	for _, e := range entries {
		if e.ID == id {
			return e, nil
		}
	}
	return Entry{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// Add appends a new entry for the address and label. Saving an address
// that is already in the book returns ErrDuplicateAddress.
func (s *Store) Add(ctx context.Context, address, label string) (Entry, error) {
	entries, err := s.List(ctx)
	if err != nil {
		return Entry{}, err
	}
	for _, e := range entries {
		if e.Address == address {
			return Entry{}, fmt.Errorf("%w: %s", ErrDuplicateAddress, address)
		}
	}

	entry := NewEntry(address, label)
	if err := s.save(ctx, append(entries, entry)); err != nil {
		return Entry{}, err
	}

	s.logger.Debug("entry added", "id", entry.ID, "address", address)
	return entry, nil
}

// UpdateLabel replaces the label on the entry with the given ID.
func (s *Store) UpdateLabel(ctx context.Context, id uuid.UUID, label string) (Entry, error) {
	entries, err := s.List(ctx)
	if err != nil {
		return Entry{}, err
	}
	for i, e := range entries {
		if e.ID == id {
			entries[i].Label = label
			if err := s.save(ctx, entries); err != nil {
				return Entry{}, err
			}
			return entries[i], nil
		}
	}
	return Entry{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// Touch records that the entry's address was just viewed.
func (s *Store) Touch(ctx context.Context, id uuid.UUID) error {
	entries, err := s.List(ctx)
	if err != nil {
		return err
	}
	for i, e := range entries {
		if e.ID == id {
			now := time.Now().UTC()
			entries[i].LastViewed = &now
			return s.save(ctx, entries)
		}
	}
	return fmt.Errorf("%w: %s", ErrNotFound, id)
}

// Delete removes the entry with the given ID.
func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	entries, err := s.List(ctx)
	if err != nil {
		return err
	}
	for i, e := range entries {
		if e.ID == id {
			entries = append(entries[:i], entries[i+1:]...)
			if err := s.save(ctx, entries); err != nil {
				return err
			}
			s.logger.Debug("entry deleted", "id", id)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrNotFound, id)
}

// save replaces the stored book. The key never expires.
func (s *Store) save(ctx context.Context, entries []Entry) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to marshal address book: %w", err)
	}

	if err := s.client.Set(ctx, storageKey, data, 0).Err(); err != nil {
		if isOutOfMemory(err) {
			return fmt.Errorf("%w: %v", ErrStorageFull, err)
		}
		s.logger.Error("storage error", "operation", "save", "error", err)
		return fmt.Errorf("failed to save address book: %w", err)
	}
	return nil
}

// isOutOfMemory reports whether the write failed against the server's
// maxmemory limit. Redis prefixes these replies with "OOM".
func isOutOfMemory(err error) bool {
	return strings.HasPrefix(err.Error(), "OOM")
}
