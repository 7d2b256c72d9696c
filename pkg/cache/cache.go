// Package cache provides the transparent result cache for ranking runs.
//
// Computed rankings are keyed by a SHA-256 digest of the input edge list
// plus the estimation parameters, so a cache hit is always byte-equivalent
// to recomputation. Backends:
//
//   - [NullCache]: caching disabled (the default)
//   - [FileCache]: directory of JSON entries for CLI usage
//   - [RedisCache]: shared cache for server deployments
//
// Only reproducible runs are cached: distribution results always, and
// stochastic results only when the caller pinned a seed.
package cache

import (
	"context"
	"time"
)

// Cache is the interface all cache backends implement.
type Cache interface {
	// Get retrieves a value. The second return value reports a hit.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. A zero TTL means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// TTLRank is how long cached ranking results stay valid.
// Rankings are pure functions of their key, so the TTL only bounds disk
// and memory growth.
const TTLRank = 7 * 24 * time.Hour

// Keyer generates cache keys for ranking results.
type Keyer interface {
	// RankKey generates a key for a ranking run. graphHash identifies the
	// input edge list; seed is empty for unseeded (uncacheable) runs.
	RankKey(graphHash, method string, steps int, seed string) string
}

// DefaultKeyer is the standard key scheme.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer { return &DefaultKeyer{} }

// RankKey generates a key of the form "rank:<sha256>".
func (k *DefaultKeyer) RankKey(graphHash, method string, steps int, seed string) string {
	return hashKey("rank", graphHash, method, steps, seed)
}
