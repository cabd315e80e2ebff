package udg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaxClique(t *testing.T) {
	tests := []struct {
		name   string
		points []Point
		want   int
	}{
		{"Empty", nil, 0},
		{"Isolated", []Point{Pt(0, 0), Pt(5, 5)}, 1},
		{"Edge", []Point{Pt(0, 0), Pt(1, 0)}, 2},
		{"Triangle", Triangle(), 3},
		{"MoserSpindle", MoserSpindle(), 3},
		{"HexagonWheel", HexagonWheel(), 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := mustBuild(t, tt.points)
			clique := MaxClique(g)
			assert.Len(t, clique, tt.want)
			for i, u := range clique {
				for _, v := range clique[i+1:] {
					assert.True(t, g.Adjacent(u, v), "%d-%d not adjacent", u, v)
				}
			}
			assert.Equal(t, tt.want, CliqueNumber(g))
		})
	}
}

func TestMaxCliqueIsDeterministic(t *testing.T) {
	g := mustBuild(t, GolombGraph())
	first := MaxClique(g)
	for range 5 {
		assert.Equal(t, first, MaxClique(g))
	}
}

func TestGreedyColoringIsDeterministic(t *testing.T) {
	g := mustBuild(t, GolombGraph())
	k, first := GreedyColoring(g)
	for range 20 {
		k2, c := GreedyColoring(g)
		assert.Equal(t, k, k2)
		assert.Equal(t, first, c)
	}
}

func TestIsClique(t *testing.T) {
	g := mustBuild(t, MoserSpindle())
	clique := MaxClique(g)
	assert.True(t, g.IsClique(clique))
	assert.True(t, g.IsClique(clique[:1]))
	assert.True(t, g.IsClique(nil))
	assert.False(t, g.IsClique([]int{clique[0], clique[0]}))
	assert.False(t, g.IsClique([]int{-1}))
	assert.False(t, g.IsClique([]int{g.N()}))

	// the spindle is not complete, so vertex 0 has a non-neighbor
	for v := 1; v < g.N(); v++ {
		if !g.Adjacent(0, v) {
			assert.False(t, g.IsClique([]int{0, v}))
			break
		}
	}
}

func TestGreedyColorings(t *testing.T) {
	for _, pts := range [][]Point{Triangle(), Rhombus(), MoserSpindle(), HexagonWheel(), GolombGraph()} {
		g := mustBuild(t, pts)

		k, c := GreedyColoring(g)
		assert.True(t, g.ValidColoring(c, k), "dsatur coloring invalid")
		assert.GreaterOrEqual(t, k, CliqueNumber(g))

		k2, c2 := InvertedGreedy(g)
		assert.True(t, g.ValidColoring(c2, k2), "inverted greedy coloring invalid")
		assert.LessOrEqual(t, k2, Degeneracy(g)+1)
	}
}

func TestGreedyColoringEmpty(t *testing.T) {
	g := mustBuild(t, nil)
	k, c := GreedyColoring(g)
	assert.Zero(t, k)
	assert.Empty(t, c)

	k, c = InvertedGreedy(g)
	assert.Zero(t, k)
	assert.Empty(t, c)
}

func TestSmallestLastOrder(t *testing.T) {
	// A path 0-1-2 plus an isolated vertex 3: 3 goes first (degree 0), then
	// the endpoints by id, then the middle vertex.
	g := mustBuild(t, []Point{Pt(0, 0), Pt(1, 0), Pt(2, 0), Pt(10, 10)})
	assert.Equal(t, []int{3, 0, 1, 2}, SmallestLastOrder(g))
	assert.Equal(t, 1, Degeneracy(g))
}

func TestFirstFit(t *testing.T) {
	g := mustBuild(t, Rhombus())
	k, c := FirstFit(g, []int{0, 1, 2, 3})
	assert.Equal(t, 3, k)
	assert.Equal(t, []int{0, 1, 2, 0}, c)
}
