package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) (*PageStoreRedis, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewPageStoreRedis(client), mr
}

func TestPageStoreMissThenHit(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()

	_, ok, err := store.Get(ctx, "main_page:page=1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set(ctx, "main_page:page=1", []byte("<html>1</html>"), time.Minute))

	body, ok, err := store.Get(ctx, "main_page:page=1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "<html>1</html>", string(body))
}

func TestPageStoreExpires(t *testing.T) {
	store, mr := newStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", []byte("v"), 3*time.Minute))
	mr.FastForward(2 * time.Minute)
	_, ok, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)

	mr.FastForward(2 * time.Minute)
	_, ok, err = store.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPageStoreReportsConnectionErrors(t *testing.T) {
	store, mr := newStore(t)
	mr.Close()

	_, ok, err := store.Get(context.Background(), "k")
	assert.Error(t, err)
	assert.False(t, ok)
}
