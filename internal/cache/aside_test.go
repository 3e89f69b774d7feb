package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedValue struct {
	Count int `json:"count"`
}

func setupMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	c := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	SetClient(c)
	t.Cleanup(func() {
		SetClient(nil)
		c.Close()
	})
	return mr
}

func TestAsideMissLoadsAndStores(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	loads := 0
	var value cachedValue
	err := Aside(ctx, "k", &value, time.Minute, func() error {
		loads++
		value.Count = 7
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, loads)
	assert.Equal(t, 7, value.Count)
	assert.True(t, mr.Exists("k"))

	// second read hits the cache, the loader stays untouched
	var again cachedValue
	err = Aside(ctx, "k", &again, time.Minute, func() error {
		loads++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, loads)
	assert.Equal(t, 7, again.Count)
}

func TestAsideWithoutClientCallsLoad(t *testing.T) {
	SetClient(nil)

	loads := 0
	var value cachedValue
	err := Aside(context.Background(), "k", &value, time.Minute, func() error {
		loads++
		value.Count = 3
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, loads)
	assert.Equal(t, 3, value.Count)
}

func TestAsideCorruptEntryFallsBackToLoader(t *testing.T) {
	mr := setupMiniredis(t)
	require.NoError(t, mr.Set("k", "{not json"))

	loads := 0
	var value cachedValue
	err := Aside(context.Background(), "k", &value, time.Minute, func() error {
		loads++
		value.Count = 9
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, loads)
	assert.Equal(t, 9, value.Count)

	// the corrupt entry was replaced
	raw, err := mr.Get("k")
	require.NoError(t, err)
	assert.JSONEq(t, `{"count":9}`, raw)
}

func TestAsideLoadErrorIsNotCached(t *testing.T) {
	mr := setupMiniredis(t)

	var value cachedValue
	err := Aside(context.Background(), "k", &value, time.Minute, func() error {
		return errors.New("load failed")
	})
	require.Error(t, err)
	assert.False(t, mr.Exists("k"))
}

func TestInvalidateNetworkSummary(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	key := NetworkSummaryKey(42)
	require.NoError(t, mr.Set(key, `{"connections_count":1}`))

	InvalidateNetworkSummary(ctx, 42)
	assert.False(t, mr.Exists(key))
}

func TestCacheKeys(t *testing.T) {
	assert.Equal(t, "user:7", UserKey(7))
	assert.Equal(t, "network:summary:7", NetworkSummaryKey(7))
}
