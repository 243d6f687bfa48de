package session

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shreeji-electro/catalog-finder/pkg/query"
	"github.com/shreeji-electro/catalog-finder/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testRedisAddr = "localhost:6379"

func sampleState() *query.Selection {
	tax := query.DefaultTaxonomy()
	s := query.NewSelection()
	s.ToggleBrand(tax, "POLYCAB")
	s.ToggleSubcategory(tax, "Cables", "Control Cable")
	s.SetSearch("flexible")
	s.SetPage(2)
	return s
}

func exerciseStore(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	_, found, err := store.LoadListing(ctx, "sid-1")
	require.NoError(t, err)
	assert.False(t, found)

	state := sampleState()
	require.NoError(t, store.SaveListing(ctx, "sid-1", state))
	loaded, found, err := store.LoadListing(ctx, "sid-1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, state, loaded)

	// stored values are copies
	state.SetPage(5)
	loaded, _, _ = store.LoadListing(ctx, "sid-1")
	assert.Equal(t, 2, loaded.Page)

	key := types.ProductKey{Brand: "POLYCAB", Name: "Polycab Control Cable"}
	require.NoError(t, store.SaveSelected(ctx, "sid-1", key))
	selected, found, err := store.LoadSelected(ctx, "sid-1")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, key, selected)

	_, found, err = store.LoadSelected(ctx, "sid-2")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, store.Clear(ctx, "sid-1"))
	_, found, _ = store.LoadListing(ctx, "sid-1")
	assert.False(t, found)
	_, found, _ = store.LoadSelected(ctx, "sid-1")
	assert.False(t, found)

	assert.ErrorIs(t, store.SaveListing(ctx, "", state), ErrNoSession)
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore(time.Minute))
}

func TestMemoryStoreSlidingExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Minute)
	now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	require.NoError(t, store.SaveListing(ctx, "sid", sampleState()))
	now = now.Add(50 * time.Second)
	_, found, _ := store.LoadListing(ctx, "sid")
	assert.True(t, found)

	now = now.Add(50 * time.Second)
	_, found, _ = store.LoadListing(ctx, "sid")
	assert.True(t, found, "read should extend the session")

	now = now.Add(2 * time.Minute)
	_, found, _ = store.LoadListing(ctx, "sid")
	assert.False(t, found)
}

func TestMemoryStoreSweep(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Minute)
	now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	require.NoError(t, store.SaveListing(ctx, "old", sampleState()))
	require.NoError(t, store.SaveSelected(ctx, "old", types.ProductKey{Brand: "HAGER", Name: "MCB"}))
	now = now.Add(45 * time.Second)
	require.NoError(t, store.SaveListing(ctx, "new", sampleState()))
	now = now.Add(30 * time.Second)

	assert.Equal(t, 2, store.Sweep())
	_, found, _ := store.LoadListing(ctx, "new")
	assert.True(t, found)
	assert.Equal(t, 0, store.Sweep())
}

func TestLoadNormalizesState(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(0)
	require.NoError(t, store.set(listingKey("", "sid"), map[string]any{"page": 0, "brandSel": []string{"HAGER"}}))
	loaded, found, err := store.LoadListing(ctx, "sid")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 1, loaded.Page)
	assert.Equal(t, []string{"HAGER"}, loaded.Brands)
	assert.NotNil(t, loaded.Subcategories)
}

func TestRedisStore(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: testRedisAddr})
	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("Redis not available at %s: %v", testRedisAddr, err)
	}
	store := NewRedisStoreWithClient(client, "catalog-test:", time.Minute)
	defer store.Close()
	store.Clear(ctx, "sid-1")
	exerciseStore(t, store)

	require.NoError(t, store.SaveListing(ctx, "sid-ttl", sampleState()))
	ttl, err := client.TTL(ctx, listingKey("catalog-test:", "sid-ttl")).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, 50*time.Second)
	store.Clear(ctx, "sid-ttl")
}
