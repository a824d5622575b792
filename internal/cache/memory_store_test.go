package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedPayload struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

func TestMemoryStore_RoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "analytics:test:key", cachedPayload{Name: "tuna", Value: 12.5}, time.Minute))

	var got cachedPayload
	found, err := store.Get(ctx, "analytics:test:key", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "tuna", got.Name)
	assert.Equal(t, 12.5, got.Value)
}

func TestMemoryStore_MissReturnsFalse(t *testing.T) {
	store := NewMemoryStore()

	var got cachedPayload
	found, err := store.Get(context.Background(), "absent", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemoryStore_ExpiredEntryIsAMiss(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "short-lived", cachedPayload{Name: "x"}, -time.Second))

	var got cachedPayload
	found, err := store.Get(ctx, "short-lived", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemoryStore_DeleteByPrefix(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "analytics:catch_trends:a", cachedPayload{}, time.Minute))
	require.NoError(t, store.Set(ctx, "analytics:catch_trends:b", cachedPayload{}, time.Minute))
	require.NoError(t, store.Set(ctx, "analytics:top_species:a", cachedPayload{}, time.Minute))

	require.NoError(t, store.DeleteByPrefix(ctx, "analytics:catch_trends:"))

	var got cachedPayload
	found, err := store.Get(ctx, "analytics:catch_trends:a", &got)
	require.NoError(t, err)
	assert.False(t, found)

	found, err = store.Get(ctx, "analytics:top_species:a", &got)
	require.NoError(t, err)
	assert.True(t, found)
}
