package chroma

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cperrors "github.com/matzehuels/chromaplane/pkg/errors"
	"github.com/matzehuels/chromaplane/pkg/oracle"
	"github.com/matzehuels/chromaplane/pkg/udg"
)

func mustBuild(t *testing.T, pts []udg.Point) *udg.Graph {
	t.Helper()
	g, err := udg.Build(pts, 1e-9)
	require.NoError(t, err)
	return g
}

var knownGraphs = []struct {
	name   string
	points func() []udg.Point
	chi    int
}{
	{"Triangle", udg.Triangle, 3},
	{"Rhombus", udg.Rhombus, 3},
	{"MoserSpindle", udg.MoserSpindle, 4},
	{"HexagonWheel", udg.HexagonWheel, 3},
	{"GolombGraph", udg.GolombGraph, 4},
	{"SinglePoint", func() []udg.Point { return []udg.Point{udg.Pt(3, 4)} }, 1},
	{"UnitSegment", func() []udg.Point { return []udg.Point{udg.Pt(0, 0), udg.Pt(0, 1)} }, 2},
}

func TestChromaticNumber(t *testing.T) {
	for _, tt := range knownGraphs {
		t.Run(tt.name, func(t *testing.T) {
			g := mustBuild(t, tt.points())
			est, err := ChromaticNumber(context.Background(), g, 0, 0)
			require.NoError(t, err)
			assert.True(t, est.Exact())
			assert.Equal(t, tt.chi, est.Chi)
			assert.Equal(t, tt.chi, est.Lower)
			assert.Equal(t, tt.chi, est.Upper)
			assert.True(t, g.ValidColoring(est.Witness, tt.chi))
		})
	}
}

func TestEstimatorKnownGraphs(t *testing.T) {
	e := NewEstimator(Options{})
	for _, tt := range knownGraphs {
		t.Run(tt.name, func(t *testing.T) {
			g := mustBuild(t, tt.points())
			est, err := e.Estimate(context.Background(), g)
			require.NoError(t, err)
			require.Equal(t, oracle.Satisfiable, est.Status)
			assert.Equal(t, tt.chi, est.Chi)
			assert.True(t, g.ValidColoring(est.Witness, tt.chi))
		})
	}
}

func TestEmptyGraph(t *testing.T) {
	est, err := ChromaticNumber(context.Background(), mustBuild(t, nil), 0, 0)
	require.NoError(t, err)
	assert.Equal(t, oracle.Satisfiable, est.Status)
	assert.Zero(t, est.Chi)
	assert.Empty(t, est.Witness)
}

func TestExplicitBounds(t *testing.T) {
	g := mustBuild(t, udg.MoserSpindle())

	est, err := ChromaticNumber(context.Background(), g, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, 4, est.Chi)

	est, err = ChromaticNumber(context.Background(), g, 1, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, est.Chi)
	assert.True(t, g.ValidColoring(est.Witness, 4))
}

func TestInvalidBounds(t *testing.T) {
	g := mustBuild(t, udg.MoserSpindle())

	_, err := ChromaticNumber(context.Background(), g, 9, 0)
	assert.True(t, cperrors.Is(err, cperrors.ErrCodeInvalidArgument))

	// 3 is not an upper bound for the spindle
	_, err = ChromaticNumber(context.Background(), g, 0, 3)
	assert.True(t, cperrors.Is(err, cperrors.ErrCodeInvalidArgument))
}

func TestHeuristicOnlyReportsUnknown(t *testing.T) {
	g := mustBuild(t, udg.GolombGraph())
	e := NewEstimator(Options{ExactLimit: -1, NodeBudget: 1})

	est, err := e.Estimate(context.Background(), g)
	require.NoError(t, err)
	assert.Equal(t, oracle.Unknown, est.Status)
	assert.False(t, est.Exact())
	assert.Zero(t, est.Chi)
	assert.Equal(t, 3, est.Lower)
	assert.GreaterOrEqual(t, est.Upper, 4)
	assert.True(t, g.ValidColoring(est.Witness, est.Upper))
	assert.Contains(t, est.String(), "unknown")
}

func TestHeuristicFallsBackToExact(t *testing.T) {
	g := mustBuild(t, udg.GolombGraph())
	e := NewEstimator(Options{NodeBudget: 1})

	res, err := e.Decide(context.Background(), g, 3)
	require.NoError(t, err)
	assert.Equal(t, oracle.Unsatisfiable, res.Status)

	est, err := e.Estimate(context.Background(), g)
	require.NoError(t, err)
	assert.Equal(t, 4, est.Chi)
}

func TestDecideWithClique(t *testing.T) {
	g := mustBuild(t, udg.GolombGraph())
	e := NewEstimator(Options{NodeBudget: 1})
	clique := udg.MaxClique(g)

	res, err := e.DecideWithClique(context.Background(), g, 3, clique)
	require.NoError(t, err)
	assert.Equal(t, oracle.Unsatisfiable, res.Status)

	res, err = e.DecideWithClique(context.Background(), g, 4, clique[:2])
	require.NoError(t, err)
	require.Equal(t, oracle.Satisfiable, res.Status)
	assert.True(t, g.ValidColoring(res.Coloring, 4))
}

func TestCancelledScanKeepsBounds(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	g := mustBuild(t, udg.GolombGraph())

	est, err := ChromaticNumber(ctx, g, 0, 0)
	require.Error(t, err)
	assert.True(t, cperrors.Is(err, cperrors.ErrCodeCanceled))
	assert.Equal(t, oracle.Unknown, est.Status)
	assert.Equal(t, 3, est.Lower)
}

func TestEstimateString(t *testing.T) {
	assert.Equal(t, "chi=4", Estimate{Chi: 4, Lower: 4, Upper: 4, Status: oracle.Satisfiable}.String())
	assert.Equal(t, "chi in [3, 5] (unknown)", Estimate{Lower: 3, Upper: 5}.String())
}
