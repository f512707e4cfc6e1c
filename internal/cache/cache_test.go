package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/evidentia/internal/model"
)

func TestCacheKey(t *testing.T) {
	doc := []byte(`{"stage1":{}}`)
	audit := []byte(`{"inconsistencies":{}}`)

	base := CacheKey("balanced", doc, audit)

	assert.Equal(t, base, CacheKey("balanced", doc, audit))
	assert.NotEqual(t, base, CacheKey("strict", doc, audit))
	assert.NotEqual(t, base, CacheKey("balanced", doc))
	assert.NotEqual(t, CacheKey("p", []byte("ab"), []byte("c")), CacheKey("p", []byte("a"), []byte("bc")))
	assert.Regexp(t, `^evidentia:v1:[0-9a-f]{64}$`, base)
}

func TestMemoryCache(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	require.NoError(t, c.Set("k", []byte("report"), 0))
	got, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, []byte("report"), got)
	assert.Equal(t, 1, c.Len())

	require.NoError(t, c.Delete("k"))
	_, ok = c.Get("k")
	assert.False(t, ok)
}

func TestDiskCache_RoundTripAndExpiry(t *testing.T) {
	dir := t.TempDir()
	c := NewDiskCache(dir, time.Hour)
	key := CacheKey("balanced", []byte("doc"))
	report := []byte(`{"inputs":{"profile":"balanced"}}`)

	require.NoError(t, c.Set(key, report, 0))
	got, ok := c.Get(key)
	require.True(t, ok)
	assert.JSONEq(t, string(report), string(got))

	_, ok = c.Get(CacheKey("strict", []byte("doc")))
	assert.False(t, ok)

	assert.Error(t, c.Set(key, []byte("not json"), 0))

	require.NoError(t, c.Set(key, []byte(`{"stale":true}`), time.Nanosecond))
	time.Sleep(5 * time.Millisecond)
	_, ok = c.Get(key)
	assert.False(t, ok, "expired entries are dropped")
}

func TestLayeredCache_PromotesFromDisk(t *testing.T) {
	dir := t.TempDir()
	key := CacheKey("balanced", []byte("doc"))
	report := []byte(`{"claim_scores":[]}`)

	first := NewLayeredCache(time.Minute, dir, time.Hour)
	require.NoError(t, first.Set(key, report, 0))

	// A fresh process sees only the disk layer
	second := NewLayeredCache(time.Minute, dir, time.Hour)
	got, ok := second.Get(key)
	require.True(t, ok)
	assert.JSONEq(t, string(report), string(got))

	memGot, ok := second.memory.Get(key)
	require.True(t, ok)
	assert.JSONEq(t, string(report), string(memGot))

	require.NoError(t, second.Delete(key))
	require.NoError(t, second.Delete(key), "deleting a missing key is not an error")
}

func TestFromConfig(t *testing.T) {
	assert.Nil(t, FromConfig(model.CacheConfig{Enabled: false}))
	assert.IsType(t, &MemoryCache{}, FromConfig(model.CacheConfig{Enabled: true, TTL: time.Minute}))
	assert.IsType(t, &LayeredCache{}, FromConfig(model.CacheConfig{Enabled: true, Dir: t.TempDir()}))
}
