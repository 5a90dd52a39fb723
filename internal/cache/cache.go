// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cache memoizes external retrieval results for a bounded time.
// Entries are keyed by a deterministic signature of the normalized
// keyword set, so two submissions that extract the same keywords share
// one entry regardless of the original text's formatting. Expired
// entries are indistinguishable from absent ones, and failed retrievals
// are never stored.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/singleflight"

	"github.com/pdiddy/provenance-engine/internal/metrics"
	"github.com/pdiddy/provenance-engine/pkg/types"
)

// FetchFunc performs one fresh retrieval on a cache miss.
type FetchFunc func(ctx context.Context) ([]types.ExternalSource, error)

// Cache is a TTL-bounded LRU of retrieval results, safe for concurrent
// use. Concurrent misses for the same signature are collapsed into a
// single upstream call.
type Cache struct {
	lru   *expirable.LRU[string, []types.ExternalSource]
	group singleflight.Group
}

// New creates a Cache holding at most maxEntries results, each valid
// for ttl after insertion.
func New(maxEntries int, ttl time.Duration) *Cache {
	if maxEntries <= 0 {
		maxEntries = 256
	}
	return &Cache{
		lru: expirable.NewLRU[string, []types.ExternalSource](maxEntries, nil, ttl),
	}
}

// Signature derives the deterministic cache key for a keyword set: a
// hex SHA-256 over the sorted, de-duplicated keywords.
func Signature(keywords []string) string {
	uniq := make([]string, 0, len(keywords))
	seen := make(map[string]struct{}, len(keywords))
	for _, k := range keywords {
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		uniq = append(uniq, k)
	}
	sort.Strings(uniq)

	sum := sha256.Sum256([]byte(strings.Join(uniq, "\n")))
	return hex.EncodeToString(sum[:])
}

// Get returns the cached result for the signature. ok is false both when
// no entry exists and when the entry's TTL has elapsed.
func (c *Cache) Get(sig string) ([]types.ExternalSource, bool) {
	return c.lru.Get(sig)
}

// Put stores a successful retrieval result under the signature.
func (c *Cache) Put(sig string, sources []types.ExternalSource) {
	c.lru.Add(sig, sources)
}

// GetOrFetch returns the cached result for the keyword set or performs
// exactly one fresh retrieval. When several goroutines miss on the same
// signature at once, one fetch runs and the rest share its outcome.
// Only successful results are stored; a failure leaves the entry absent
// so the next caller retries promptly.
func (c *Cache) GetOrFetch(ctx context.Context, keywords []string, fetch FetchFunc) ([]types.ExternalSource, bool, error) {
	sig := Signature(keywords)

	if sources, ok := c.lru.Get(sig); ok {
		metrics.CacheHitsTotal.Inc()
		return sources, true, nil
	}
	metrics.CacheMissesTotal.Inc()

	v, err, _ := c.group.Do(sig, func() (interface{}, error) {
		// Another goroutine may have filled the entry while this one
		// waited on the flight group.
		if sources, ok := c.lru.Get(sig); ok {
			return sources, nil
		}
		sources, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		c.lru.Add(sig, sources)
		return sources, nil
	})
	if err != nil {
		return nil, false, err
	}
	return v.([]types.ExternalSource), false, nil
}

// Len returns the number of live entries.
func (c *Cache) Len() int {
	return c.lru.Len()
}

// Purge drops every entry.
func (c *Cache) Purge() {
	c.lru.Purge()
}
