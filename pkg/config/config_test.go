package config

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/chromaplane/pkg/cache"
	"github.com/matzehuels/chromaplane/pkg/chroma"
	"github.com/matzehuels/chromaplane/pkg/critical"
	cperrors "github.com/matzehuels/chromaplane/pkg/errors"
	"github.com/matzehuels/chromaplane/pkg/search"
	"github.com/matzehuels/chromaplane/pkg/udg"
)

const sample = `
[graph]
tolerance = 1e-7

[estimator]
exact_limit = 120
node_budget = 5000

[critical]
order = "degree"
verify = true

[search]
mode = "random"
seed = 42
samples = 64
angles = [0.5]
angles_deg = [90.0]
offsets = [[0.5, 0.0], [0.0, 0.25]]
offset_box = 1.5
copies = [2, 3]
workers = 4
top_n = 5
batch_size = 8
candidates = 200

[cache]
backend = "none"
ttl = "36h"
`

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(sample))
	require.NoError(t, err)

	assert.Equal(t, 1e-7, cfg.Graph.Tolerance)
	assert.Equal(t, chroma.Options{ExactLimit: 120, NodeBudget: 5000}, cfg.EstimatorOptions())

	co := cfg.CriticalOptions()
	assert.Equal(t, critical.OrderDegree, co.Order)
	assert.True(t, co.Verify)
	assert.Equal(t, 120, co.ExactLimit)

	space := cfg.SearchSpace()
	assert.Equal(t, search.ModeRandom, space.Mode)
	assert.Equal(t, uint64(42), space.Seed)
	assert.Equal(t, 1e-7, space.Tolerance)
	require.Len(t, space.Angles, 2)
	assert.Equal(t, 0.5, space.Angles[0])
	assert.InDelta(t, math.Pi/2, space.Angles[1], 1e-12)
	assert.Equal(t, []udg.Point{udg.Pt(0.5, 0), udg.Pt(0, 0.25)}, space.Offsets)
	assert.Equal(t, []int{2, 3}, space.Copies)
	assert.Equal(t, 64, space.Samples)
	assert.Equal(t, 1.5, space.OffsetBox)

	budget := cfg.SearchBudget()
	assert.Equal(t, 200, budget.Candidates)
	assert.Equal(t, 4, budget.Workers)
	assert.Equal(t, 5, budget.TopN)
	assert.Equal(t, 8, budget.BatchSize)
	assert.Equal(t, int64(5000), budget.NodeBudget)

	assert.Equal(t, BackendNone, cfg.Cache.Backend)
	assert.Equal(t, 36*time.Hour, cfg.TTL(time.Hour))
}

func TestDefaults(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)

	assert.Equal(t, search.DefaultTolerance, cfg.Graph.Tolerance)
	assert.Equal(t, chroma.DefaultExactLimit, cfg.Estimator.ExactLimit)
	assert.Equal(t, int64(chroma.DefaultNodeBudget), cfg.Estimator.NodeBudget)
	assert.Equal(t, string(critical.OrderIndex), cfg.Critical.Order)
	assert.Equal(t, string(search.DefaultMode), cfg.Search.Mode)
	assert.Equal(t, []int{search.DefaultCopies}, cfg.Search.Copies)
	assert.Equal(t, search.DefaultWorkers, cfg.Search.Workers)
	assert.Equal(t, BackendFile, cfg.Cache.Backend)
	assert.Equal(t, 2*time.Hour, cfg.TTL(2*time.Hour))

	assert.Equal(t, cfg, Default())
}

func TestRedisDefaultAddr(t *testing.T) {
	cfg, err := Parse([]byte("[cache]\nbackend = \"redis\"\n"))
	require.NoError(t, err)
	assert.Equal(t, "localhost:6379", cfg.Cache.RedisAddr)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		toml string
		code cperrors.Code
	}{
		{"syntax", "[graph\n", cperrors.ErrCodeInvalidConfig},
		{"unknown key", "[search]\nmdoe = \"grid\"\n", cperrors.ErrCodeInvalidConfig},
		{"bad tolerance", "[graph]\ntolerance = -1.0\n", cperrors.ErrCodeInvalidTolerance},
		{"bad order", "[critical]\norder = \"random\"\n", cperrors.ErrCodeInvalidConfig},
		{"bad mode", "[search]\nmode = \"spiral\"\n", cperrors.ErrCodeInvalidConfig},
		{"bad offset", "[search]\noffsets = [[1.0]]\n", cperrors.ErrCodeInvalidConfig},
		{"bad copies", "[search]\nmode = \"aligned\"\ncopies = [0]\n", cperrors.ErrCodeInvalidConfig},
		{"negative workers", "[search]\nworkers = -2\n", cperrors.ErrCodeInvalidConfig},
		{"bad backend", "[cache]\nbackend = \"s3\"\n", cperrors.ErrCodeInvalidConfig},
		{"bad ttl", "[cache]\nttl = \"soon\"\n", cperrors.ErrCodeInvalidConfig},
		{"negative ttl", "[cache]\nttl = \"-1h\"\n", cperrors.ErrCodeInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.toml))
			require.Error(t, err)
			assert.True(t, cperrors.Is(err, tt.code), "got %v", err)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.toml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, search.ModeRandom, cfg.SearchSpace().Mode)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.True(t, cperrors.Is(err, cperrors.ErrCodeFileNotFound))
}

func TestOpenCache(t *testing.T) {
	ctx := context.Background()

	cfg := Default()
	cfg.Cache.Backend = BackendNone
	c, err := cfg.OpenCache(ctx, t.TempDir())
	require.NoError(t, err)
	assert.IsType(t, &cache.NullCache{}, c)

	dir := filepath.Join(t.TempDir(), "entries")
	cfg.Cache.Backend = BackendFile
	c, err = cfg.OpenCache(ctx, dir)
	require.NoError(t, err)
	fc, ok := c.(*cache.FileCache)
	require.True(t, ok)
	assert.Equal(t, dir, fc.Dir())

	cfg.Cache.Dir = filepath.Join(t.TempDir(), "explicit")
	c, err = cfg.OpenCache(ctx, dir)
	require.NoError(t, err)
	assert.Equal(t, cfg.Cache.Dir, c.(*cache.FileCache).Dir())

	cfg.Cache.Dir = ""
	c, err = cfg.OpenCache(ctx, "")
	require.NoError(t, err)
	assert.IsType(t, &cache.NullCache{}, c)
}
