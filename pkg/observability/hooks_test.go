package observability

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	o := NoopOracleHooks{}
	o.OnOracleStart(ctx, "exact", 7, 3)
	o.OnOracleComplete(ctx, "exact", 7, 3, "unsat", 0, time.Millisecond)

	s := NoopSearchHooks{}
	s.OnCandidate(ctx, 1, "discarded", 3)
	s.OnBest(ctx, 1, 4)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "chromatic")
	c.OnCacheMiss(ctx, "chromatic")
	c.OnCacheSet(ctx, "chromatic", 128)
}

type recordingOracleHooks struct {
	NoopOracleHooks
	mu       sync.Mutex
	statuses []string
}

func (r *recordingOracleHooks) OnOracleComplete(_ context.Context, _ string, _, _ int, status string, _ int64, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.statuses = append(r.statuses, status)
}

type countingSearchHooks struct {
	NoopSearchHooks
	best int
}

func (c *countingSearchHooks) OnBest(_ context.Context, _ int, k int) { c.best = k }

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	assert.IsType(t, NoopOracleHooks{}, Oracle())
	assert.IsType(t, NoopSearchHooks{}, Search())
	assert.IsType(t, NoopCacheHooks{}, Cache())

	rec := &recordingOracleHooks{}
	SetOracleHooks(rec)
	Oracle().OnOracleComplete(context.Background(), "heuristic", 7, 3, "unknown", 10, 0)
	assert.Equal(t, []string{"unknown"}, rec.statuses)

	cnt := &countingSearchHooks{}
	SetSearchHooks(cnt)
	Search().OnBest(context.Background(), 3, 5)
	assert.Equal(t, 5, cnt.best)

	// nil registrations are ignored
	SetOracleHooks(nil)
	SetSearchHooks(nil)
	SetCacheHooks(nil)
	assert.Same(t, rec, Oracle())

	Reset()
	assert.IsType(t, NoopOracleHooks{}, Oracle())
}
