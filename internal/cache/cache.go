package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/ppiankov/evidentia/internal/model"
)

// Cache stores serialized reports
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// CacheKey derives a key from the profile and the exact input bytes, so a
// document is rescored whenever its content, its audit or the profile changes
func CacheKey(profile string, inputs ...[]byte) string {
	h := sha256.New()
	h.Write([]byte(profile))
	for _, in := range inputs {
		// Length prefix keeps ("ab","c") and ("a","bc") apart
		var size [8]byte
		n := uint64(len(in))
		for i := range size {
			size[i] = byte(n >> (8 * i))
		}
		h.Write(size[:])
		h.Write(in)
	}
	return "evidentia:v1:" + hex.EncodeToString(h.Sum(nil))
}

// FromConfig builds the configured cache: nil when disabled, memory only
// without a directory, memory over disk otherwise
func FromConfig(cfg model.CacheConfig) Cache {
	if !cfg.Enabled {
		return nil
	}
	if cfg.Dir == "" {
		return NewMemoryCache(cfg.TTL, 10*time.Minute)
	}
	return NewLayeredCache(cfg.TTL, cfg.Dir, cfg.TTL)
}
