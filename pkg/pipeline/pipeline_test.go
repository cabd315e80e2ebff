package pipeline

import (
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/chromaplane/pkg/cache"
	"github.com/matzehuels/chromaplane/pkg/critical"
	cperrors "github.com/matzehuels/chromaplane/pkg/errors"
	"github.com/matzehuels/chromaplane/pkg/oracle"
	"github.com/matzehuels/chromaplane/pkg/render"
	"github.com/matzehuels/chromaplane/pkg/search"
	"github.com/matzehuels/chromaplane/pkg/udg"
)

// memCache is an in-memory cache.Cache that counts writes.
type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
	sets int
}

func newMemCache() *memCache { return &memCache{data: map[string][]byte{}} }

func (c *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	return v, ok, nil
}

func (c *memCache) Set(_ context.Context, key string, data []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
	c.sets++
	return nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func (c *memCache) Close() error { return nil }

func (c *memCache) keys(kind string) []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []string
	for k := range c.data {
		if strings.HasPrefix(k, kind+":") {
			out = append(out, k)
		}
	}
	return out
}

func quietRunner(c cache.Cache) *Runner {
	return NewRunner(c, nil, log.NewWithOptions(io.Discard, log.Options{}))
}

func TestNewRunnerDefaults(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	assert.IsType(t, &cache.NullCache{}, r.Cache)
	assert.NotNil(t, r.Keyer)
	assert.NotNil(t, r.Logger)
	assert.NoError(t, r.Close())
}

func TestExecuteMoserSpindle(t *testing.T) {
	ctx := context.Background()
	mc := newMemCache()
	r := quietRunner(mc)

	res, err := r.Execute(ctx, udg.MoserSpindle(), Options{Critical: true})
	require.NoError(t, err)
	assert.Equal(t, 7, res.Analysis.Vertices)
	assert.Equal(t, 11, res.Analysis.Edges)
	assert.Equal(t, 4, res.Analysis.Estimate.Chi)
	assert.True(t, res.Analysis.Estimate.Exact())
	require.NotNil(t, res.Critical)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6}, res.Critical.Vertices)
	assert.True(t, res.Critical.Critical())
	assert.False(t, res.CacheInfo.AnalyzeHit)
	assert.False(t, res.CacheInfo.ReduceHit)
	assert.Len(t, mc.keys("estimate"), 1)
	assert.Len(t, mc.keys("critical"), 1)

	again, err := r.Execute(ctx, udg.MoserSpindle(), Options{Critical: true})
	require.NoError(t, err)
	assert.True(t, again.CacheInfo.AnalyzeHit)
	assert.True(t, again.CacheInfo.ReduceHit)
	assert.Equal(t, res.Analysis.Estimate, again.Analysis.Estimate)
	assert.Equal(t, res.Critical.Vertices, again.Critical.Vertices)
	require.NotNil(t, again.Critical.Graph)
	assert.Equal(t, 11, again.Critical.Graph.EdgeCount())

	refreshed, err := r.Execute(ctx, udg.MoserSpindle(), Options{Refresh: true})
	require.NoError(t, err)
	assert.False(t, refreshed.CacheInfo.AnalyzeHit)
	assert.Nil(t, refreshed.Critical)
}

func TestUnknownEstimateIsNotCached(t *testing.T) {
	ctx := context.Background()
	mc := newMemCache()
	r := quietRunner(mc)
	opts := Options{ExactLimit: -1, NodeBudget: 1, Critical: true}

	res, err := r.Execute(ctx, udg.GolombGraph(), opts)
	require.NoError(t, err)
	assert.Equal(t, oracle.Unknown, res.Analysis.Estimate.Status)
	assert.Nil(t, res.Critical, "reduction needs a determined chromatic number")
	assert.Zero(t, mc.sets)

	again, err := r.Execute(ctx, udg.GolombGraph(), opts)
	require.NoError(t, err)
	assert.False(t, again.CacheInfo.AnalyzeHit)
}

func TestUndecidedReductionIsNotCached(t *testing.T) {
	ctx := context.Background()
	mc := newMemCache()
	r := quietRunner(mc)

	sub, hit, err := r.ReduceWithCacheInfo(ctx, udg.MoserSpindle(), 4, Options{ExactLimit: -1, NodeBudget: 1})
	require.NoError(t, err)
	assert.False(t, hit)
	assert.False(t, sub.Critical())
	assert.Empty(t, mc.keys("critical"))
}

func TestCorruptEntryIsAMiss(t *testing.T) {
	ctx := context.Background()
	mc := newMemCache()
	r := quietRunner(mc)

	_, err := r.Analyze(ctx, udg.MoserSpindle(), Options{})
	require.NoError(t, err)
	keys := mc.keys("estimate")
	require.Len(t, keys, 1)
	require.NoError(t, mc.Set(ctx, keys[0], []byte("{not json"), time.Hour))

	_, hit, err := r.AnalyzeWithCacheInfo(ctx, udg.MoserSpindle(), Options{})
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestOptionsAffectKeys(t *testing.T) {
	ctx := context.Background()
	mc := newMemCache()
	r := quietRunner(mc)

	_, err := r.Analyze(ctx, udg.MoserSpindle(), Options{})
	require.NoError(t, err)
	_, hit, err := r.AnalyzeWithCacheInfo(ctx, udg.MoserSpindle(), Options{Tolerance: 1e-6})
	require.NoError(t, err)
	assert.False(t, hit)
	_, hit, err = r.AnalyzeWithCacheInfo(ctx, udg.MoserSpindle(), Options{NodeBudget: 99})
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Len(t, mc.keys("estimate"), 3)
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code cperrors.Code
	}{
		{"negative tolerance", Options{Tolerance: -1}, cperrors.ErrCodeInvalidTolerance},
		{"bad order", Options{Order: critical.Order("random")}, cperrors.ErrCodeInvalidArgument},
		{"negative ttl", Options{TTL: -time.Second}, cperrors.ErrCodeInvalidArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := quietRunner(nil).Execute(context.Background(), udg.Triangle(), tt.opts)
			require.Error(t, err)
			assert.True(t, cperrors.Is(err, tt.code), "got %v", err)
		})
	}
}

func TestBuild(t *testing.T) {
	g, hash, err := quietRunner(nil).Build([]udg.Point{udg.Pt(0, 0), udg.Pt(1, 0), udg.Pt(2, 0)}, Options{})
	require.NoError(t, err)
	assert.Equal(t, 2, g.EdgeCount())
	assert.NotEmpty(t, hash)

	_, err = quietRunner(nil).Analyze(context.Background(), []udg.Point{{X: 1, Y: 0}, {X: 0, Y: -1}}, Options{Tolerance: 0.7})
	assert.True(t, cperrors.Is(err, cperrors.ErrCodeInvalidTolerance))
}

func TestSearchCached(t *testing.T) {
	ctx := context.Background()
	mc := newMemCache()
	r := quietRunner(mc)
	bases := [][]udg.Point{udg.Rhombus()}
	space := search.Space{Mode: search.ModeAligned}

	res, hit, err := r.SearchWithCacheInfo(ctx, bases, space, search.Budget{Workers: 2}, false)
	require.NoError(t, err)
	assert.False(t, hit)
	best, ok := res.Best()
	require.True(t, ok)
	assert.Equal(t, 4, best.K)

	again, hit, err := r.SearchWithCacheInfo(ctx, bases, space, search.Budget{Workers: 1}, false)
	require.NoError(t, err)
	assert.True(t, hit, "worker count is not part of the key")
	assert.Equal(t, res.RunID, again.RunID)
	assert.Equal(t, res.Records, again.Records)

	_, hit, err = r.SearchWithCacheInfo(ctx, bases, space, search.Budget{}, true)
	require.NoError(t, err)
	assert.False(t, hit)

	_, err = r.Search(ctx, bases, search.Space{Mode: "spiral"}, search.Budget{})
	assert.Error(t, err)
}

func TestSearchWithUndecidedBaseIsNotCached(t *testing.T) {
	ctx := context.Background()
	mc := newMemCache()
	r := quietRunner(mc)
	// the triangle pair is screened out; the Golomb base stays undecided
	bases := [][]udg.Point{udg.Triangle(), udg.GolombGraph()}
	space := search.Space{Angles: []float64{0}}
	budget := search.Budget{Candidates: 1, ExactLimit: -1, NodeBudget: 1}

	res, hit, err := r.SearchWithCacheInfo(ctx, bases, space, budget, false)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.False(t, res.BaseExact)
	assert.Empty(t, res.Undecided)
	assert.Empty(t, mc.keys("search"))

	_, hit, err = r.SearchWithCacheInfo(ctx, bases, space, budget, false)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestHashBases(t *testing.T) {
	a := [][]udg.Point{udg.Rhombus(), udg.Triangle()}
	b := [][]udg.Point{udg.Triangle(), udg.Rhombus()}
	assert.Equal(t, HashBases(a, 1e-9), HashBases(a, 1e-9))
	assert.NotEqual(t, HashBases(a, 1e-9), HashBases(b, 1e-9))
	assert.NotEqual(t, HashBases(a, 1e-9), HashBases(a, 1e-8))
}

func TestRenderCached(t *testing.T) {
	ctx := context.Background()
	mc := newMemCache()
	r := quietRunner(mc)

	a, err := r.Analyze(ctx, udg.MoserSpindle(), Options{})
	require.NoError(t, err)

	dot, hit, err := r.RenderWithCacheInfo(ctx, a, RenderOptions{Format: render.FormatDOT, Colored: true, Labels: true})
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Contains(t, string(dot), `fillcolor="#`)
	assert.Equal(t, 11, strings.Count(string(dot), " -- "))

	again, hit, err := r.RenderWithCacheInfo(ctx, a, RenderOptions{Format: render.FormatDOT, Colored: true, Labels: true})
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, dot, again)

	plain, err := r.Render(ctx, a, RenderOptions{Format: render.FormatDOT})
	require.NoError(t, err)
	assert.NotEqual(t, dot, plain)
	assert.Len(t, mc.keys("artifact"), 2)

	_, err = r.Render(ctx, nil, RenderOptions{})
	assert.Error(t, err)
}
