package pricing

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	s := NewMemoryStore()
	s.now = func() time.Time { return now }

	require.NoError(t, s.Set(ctx, "short", []byte("a"), time.Minute))
	require.NoError(t, s.Set(ctx, "forever", []byte("b"), 0))

	v, found, err := s.Get(ctx, "short")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []byte("a"), v)

	now = now.Add(2 * time.Minute)
	_, found, err = s.Get(ctx, "short")
	require.NoError(t, err)
	assert.False(t, found, "expired entry")

	v, found, _ = s.Get(ctx, "forever")
	assert.True(t, found)
	assert.Equal(t, []byte("b"), v)

	require.NoError(t, s.Delete(ctx, "forever"))
	_, found, _ = s.Get(ctx, "forever")
	assert.False(t, found)
}

func TestMemoryStoreExpireKeepsFreshValue(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	s := NewMemoryStore()
	s.now = func() time.Time { return now }

	require.NoError(t, s.Set(ctx, "k", []byte("old"), time.Minute))
	now = now.Add(2 * time.Minute)
	// a Set lands between the read of the expired entry and its removal
	require.NoError(t, s.Set(ctx, "k", []byte("new"), time.Minute))
	s.expire("k")

	v, found, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, found, "fresh entry")
	assert.Equal(t, []byte("new"), v)

	now = now.Add(2 * time.Minute)
	s.expire("k")
	s.mu.RLock()
	_, ok := s.items["k"]
	s.mu.RUnlock()
	assert.False(t, ok, "expired entry is removed")
}

func TestMemoryStoreCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	value := []byte("abc")
	require.NoError(t, s.Set(ctx, "k", value, 0))
	value[0] = 'x'

	got, _, _ := s.Get(ctx, "k")
	assert.Equal(t, []byte("abc"), got)
	got[1] = 'y'
	again, _, _ := s.Get(ctx, "k")
	assert.Equal(t, []byte("abc"), again)
}

// TestRedisStore runs against the server at FLIP_TEST_REDIS_ADDR.
func TestRedisStore(t *testing.T) {
	addr := os.Getenv("FLIP_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("FLIP_TEST_REDIS_ADDR not set")
	}
	ctx := context.Background()
	s := NewRedisStore(&redis.Options{Addr: addr}, "flip-test:")
	defer s.Close()

	require.NoError(t, s.Set(ctx, "k", []byte("v"), time.Minute))
	v, found, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []byte("v"), v)

	require.NoError(t, s.Delete(ctx, "k"))
	_, found, err = s.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, found)
}
