// Package cache stores computed results keyed by content hash.
//
// Chromatic numbers, critical subgraphs and search runs are expensive and
// fully determined by their inputs, so they are cached under keys derived
// from a hash of the point set, the tolerance and the options that influence
// the result (see [Keyer]). Three backends implement [Cache]:
//
//   - [FileCache]: one JSON file per entry under a directory, for the CLI
//   - [RedisCache]: a shared Redis instance
//   - [NullCache]: stores nothing, for disabling the cache
//
// Values are opaque bytes; callers decide what is worth storing. Results
// that were not decided (unknown colorability) must not be cached, since a
// larger budget could decide them later.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero or less never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the backend.
	Close() error
}

// Default time-to-live per result kind. Results are pure functions of
// their keys, so these only bound storage growth.
const (
	TTLEstimate = 30 * 24 * time.Hour
	TTLCritical = 30 * 24 * time.Hour
	TTLSearch   = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)
