// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about oracle calls, search candidates and cache operations.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Hooks are registered by main, not by libraries, so the algorithm packages
// never import a metrics backend.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetOracleHooks(&myOracleHooks{})
//	    observability.SetSearchHooks(&mySearchHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Oracle().OnOracleStart(ctx, "exact", n, k)
//	// ... decide colorability ...
//	observability.Oracle().OnOracleComplete(ctx, "exact", n, k, "unsat", 0, duration)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Oracle Hooks
// =============================================================================

// OracleHooks receives events from the colorability oracles.
// The kind is "exact" or "heuristic"; status is "sat", "unsat" or "unknown".
type OracleHooks interface {
	OnOracleStart(ctx context.Context, kind string, vertices, k int)
	OnOracleComplete(ctx context.Context, kind string, vertices, k int, status string, nodes int64, duration time.Duration)
}

// =============================================================================
// Search Hooks
// =============================================================================

// SearchHooks receives events from the transform search.
type SearchHooks interface {
	// OnCandidate records a candidate reaching a terminal state
	// ("discarded" or "recorded") or an undecided estimate ("undecided").
	OnCandidate(ctx context.Context, index int, state string, k int)

	// OnBest records an improvement of the best chromatic number so far.
	OnBest(ctx context.Context, index int, k int)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopOracleHooks is a no-op implementation of OracleHooks.
type NoopOracleHooks struct{}

func (NoopOracleHooks) OnOracleStart(context.Context, string, int, int) {}
func (NoopOracleHooks) OnOracleComplete(context.Context, string, int, int, string, int64, time.Duration) {
}

// NoopSearchHooks is a no-op implementation of SearchHooks.
type NoopSearchHooks struct{}

func (NoopSearchHooks) OnCandidate(context.Context, int, string, int) {}
func (NoopSearchHooks) OnBest(context.Context, int, int)              {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	oracleHooks OracleHooks = NoopOracleHooks{}
	searchHooks SearchHooks = NoopSearchHooks{}
	cacheHooks  CacheHooks  = NoopCacheHooks{}
	hooksMu     sync.RWMutex
)

// SetOracleHooks registers custom oracle hooks.
// This should be called once at application startup before any oracle calls.
func SetOracleHooks(h OracleHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		oracleHooks = h
	}
}

// SetSearchHooks registers custom search hooks.
func SetSearchHooks(h SearchHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		searchHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Oracle returns the registered oracle hooks.
func Oracle() OracleHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return oracleHooks
}

// Search returns the registered search hooks.
func Search() SearchHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return searchHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	oracleHooks = NoopOracleHooks{}
	searchHooks = NoopSearchHooks{}
	cacheHooks = NoopCacheHooks{}
}
