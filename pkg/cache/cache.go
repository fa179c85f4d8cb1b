// Package cache provides content-addressed caching for computed attribute
// sets. Painting a layout is deterministic given the layout bytes, the
// mutation magnitude and the seed, so results can be cached under a hash of
// those inputs. Backends: file (CLI), Redis (server), null (disabled).
package cache

import (
	"context"
	"time"
)

// TTLPaint is how long cached paint results are kept. Paint results are
// fully content-addressed, so the TTL only bounds disk/keyspace growth.
const TTLPaint = 7 * 24 * time.Hour

// Cache is the interface all cache backends implement.
type Cache interface {
	// Get retrieves a value. The second result reports whether the key was
	// present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a TTL. A zero TTL means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// PaintKeyOpts are the inputs, beyond the layout content itself, that
// change a paint result and therefore its cache key.
type PaintKeyOpts struct {
	Mutation float64
	Seed     uint64
}

// Keyer generates cache keys. Implementations must be deterministic:
// the same inputs always yield the same key.
type Keyer interface {
	// PaintKey returns the key for a paint result, derived from the layout
	// content hash and the paint options.
	PaintKey(layoutHash string, opts PaintKeyOpts) string
}

// DefaultKeyer is the standard key scheme.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// PaintKey generates a key of the form "paint:<sha256>".
func (DefaultKeyer) PaintKey(layoutHash string, opts PaintKeyOpts) string {
	return hashKey("paint", layoutHash, opts)
}

// ScopedKeyer wraps a Keyer with a prefix for multi-tenant isolation,
// used by the server to namespace per-client cache entries.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer that prepends prefix to all keys.
// A nil inner falls back to the DefaultKeyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// PaintKey generates a prefixed paint key.
func (k *ScopedKeyer) PaintKey(layoutHash string, opts PaintKeyOpts) string {
	return k.prefix + k.inner.PaintKey(layoutHash, opts)
}
