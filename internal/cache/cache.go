// Package cache provides byte-value caching for search responses so repeated
// queries within one run (memory) and across runs (disk) skip the provider.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for caching
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key builds a namespaced cache key for a search provider and query
func Key(provider, query string) string {
	hash := sha256.Sum256([]byte(provider + "\x00" + query))
	return "veracity:v1:" + hex.EncodeToString(hash[:])
}
