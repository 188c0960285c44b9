package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	got, err := store.Get(ctx, "chat-1")
	require.NoError(t, err)
	assert.Nil(t, got, "unknown chat has no session")

	s := &Session{ChatID: "chat-1", State: StateSelectTier}
	require.NoError(t, store.Put(ctx, s))

	got, err = store.Get(ctx, "chat-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, StateSelectTier, got.State)

	// The store hands out copies; mutating one must not leak into it.
	got.State = StateCollectPhone
	again, err := store.Get(ctx, "chat-1")
	require.NoError(t, err)
	assert.Equal(t, StateSelectTier, again.State)

	require.NoError(t, store.Delete(ctx, "chat-1"))
	got, err = store.Get(ctx, "chat-1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestNewStoreFallsBackWithoutRedis(t *testing.T) {
	store := NewStore(nil)
	_, ok := store.(*MemoryStore)
	assert.True(t, ok, "nil client degrades to the in-process store")
}
