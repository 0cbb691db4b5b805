package addressbook_test

import (
	"context"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kislikjeka/osmotax/internal/addressbook"
	"github.com/kislikjeka/osmotax/pkg/logger"
	"github.com/kislikjeka/osmotax/testutil/testredis"
)

const (
	addrOne = "osmo1abcdefghijklmnopqrstuvwxyz0123456789xy"
	addrTwo = "osmo1zyxwvutsrqponmlkjihgfedcba9876543210zy"
)

// setupStore starts a throwaway Redis container for the test.
func setupStore(t *testing.T) (*addressbook.Store, context.Context) {
	ctx := context.Background()

	tr, err := testredis.NewTestRedis(ctx)
	if err != nil {
		t.Skipf("Skipping test: Redis container unavailable: %v", err)
	}
	t.Cleanup(func() { tr.Close(ctx) })

	log := logger.New("development", io.Discard)
	return addressbook.NewStore(tr.Client, log), ctx
}

func TestStore_EmptyBook(t *testing.T) {
	store, ctx := setupStore(t)

	entries, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestStore_AddAndList(t *testing.T) {
	store, ctx := setupStore(t)

	first, err := store.Add(ctx, addrOne, "Main wallet")
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, first.ID)
	assert.Equal(t, addrOne, first.Address)
	assert.Equal(t, "Main wallet", first.Label)
	assert.False(t, first.AddedAt.IsZero())
	assert.Nil(t, first.LastViewed)

	second, err := store.Add(ctx, addrTwo, "Staking")
	require.NoError(t, err)

	entries, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, first.ID, entries[0].ID)
	assert.Equal(t, second.ID, entries[1].ID)
}

func TestStore_AddDuplicateAddress(t *testing.T) {
	store, ctx := setupStore(t)

	_, err := store.Add(ctx, addrOne, "Main wallet")
	require.NoError(t, err)

	_, err = store.Add(ctx, addrOne, "Same wallet again")
	assert.ErrorIs(t, err, addressbook.ErrDuplicateAddress)
}

func TestStore_Get(t *testing.T) {
	store, ctx := setupStore(t)

	added, err := store.Add(ctx, addrOne, "Main wallet")
	require.NoError(t, err)

	got, err := store.Get(ctx, added.ID)
	require.NoError(t, err)
	assert.Equal(t, added.ID, got.ID)
	assert.Equal(t, addrOne, got.Address)

	_, err = store.Get(ctx, uuid.New())
	assert.ErrorIs(t, err, addressbook.ErrNotFound)
}

func TestStore_UpdateLabel(t *testing.T) {
	store, ctx := setupStore(t)

	added, err := store.Add(ctx, addrOne, "Old label")
	require.NoError(t, err)

	updated, err := store.UpdateLabel(ctx, added.ID, "New label")
	require.NoError(t, err)
	assert.Equal(t, "New label", updated.Label)
	assert.Equal(t, added.ID, updated.ID)

	got, err := store.Get(ctx, added.ID)
	require.NoError(t, err)
	assert.Equal(t, "New label", got.Label)

	_, err = store.UpdateLabel(ctx, uuid.New(), "whatever")
	assert.ErrorIs(t, err, addressbook.ErrNotFound)
}

func TestStore_Touch(t *testing.T) {
	store, ctx := setupStore(t)

	added, err := store.Add(ctx, addrOne, "Main wallet")
	require.NoError(t, err)

	require.NoError(t, store.Touch(ctx, added.ID))

	got, err := store.Get(ctx, added.ID)
	require.NoError(t, err)
	require.NotNil(t, got.LastViewed)
	assert.False(t, got.LastViewed.IsZero())

	assert.ErrorIs(t, store.Touch(ctx, uuid.New()), addressbook.ErrNotFound)
}

func TestStore_Delete(t *testing.T) {
	store, ctx := setupStore(t)

	first, err := store.Add(ctx, addrOne, "Main wallet")
	require.NoError(t, err)
	second, err := store.Add(ctx, addrTwo, "Staking")
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, first.ID))

	entries, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, second.ID, entries[0].ID)

	assert.ErrorIs(t, store.Delete(ctx, first.ID), addressbook.ErrNotFound)
}
