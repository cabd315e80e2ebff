package udg

import (
	"errors"
	"slices"

	cperrors "github.com/matzehuels/chromaplane/pkg/errors"
)

var (
	// ErrVertexOutOfRange is returned by [Graph.InducedSubgraph] when a vertex
	// id is negative or not smaller than the vertex count.
	ErrVertexOutOfRange = errors.New("vertex out of range")

	// ErrDuplicateVertex is returned by [Graph.InducedSubgraph] when the same
	// vertex id appears more than once in the subset.
	ErrDuplicateVertex = errors.New("duplicate vertex in subset")
)

// Graph is a frozen unit-distance graph over a planar point set.
//
// The zero value is an empty graph. Use [Build] to construct one from points.
// Neighbor lists are sorted ascending and symmetric: v appears in
// Neighbors(u) exactly when u appears in Neighbors(v).
type Graph struct {
	points []Point
	eps    float64
	adj    [][]int
	edges  int
}

// Build constructs the unit-distance graph of points: vertex i is points[i],
// and an edge joins i and j whenever |dist(points[i], points[j]) - 1| <= eps.
//
// Build rejects non-finite coordinates (ErrCodeInvalidPoint) and tolerances
// that are not finite, not positive or at least [cperrors.MaxTolerance]
// (ErrCodeInvalidTolerance). The input slice is copied.
//
// Candidate pairs come from a uniform spatial hash with cell size 1+eps, so
// construction is close to linear for spread-out point sets while producing
// exactly the edges of the all-pairs scan.
func Build(points []Point, eps float64) (*Graph, error) {
	if err := cperrors.ValidateTolerance(eps); err != nil {
		return nil, err
	}
	for i, p := range points {
		if err := cperrors.ValidateCoordinate(i, "x", p.X); err != nil {
			return nil, err
		}
		if err := cperrors.ValidateCoordinate(i, "y", p.Y); err != nil {
			return nil, err
		}
	}

	pts := slices.Clone(points)
	adj := make([][]int, len(pts))
	edges := 0
	forEachNearPair(pts, 1+eps, func(i, j int) {
		if IsUnitDistance(pts[i], pts[j], eps) {
			adj[i] = append(adj[i], j)
			adj[j] = append(adj[j], i)
			edges++
		}
	})
	for _, nbrs := range adj {
		slices.Sort(nbrs)
	}

	return &Graph{points: pts, eps: eps, adj: adj, edges: edges}, nil
}

// N returns the number of vertices.
func (g *Graph) N() int { return len(g.adj) }

// EdgeCount returns the number of undirected edges.
func (g *Graph) EdgeCount() int { return g.edges }

// Tolerance returns the eps the graph was built with.
func (g *Graph) Tolerance() float64 { return g.eps }

// Point returns the coordinate of vertex v.
func (g *Graph) Point(v int) Point { return g.points[v] }

// Points returns a copy of the vertex coordinates indexed by vertex id.
func (g *Graph) Points() []Point { return slices.Clone(g.points) }

// Neighbors returns the sorted neighbor ids of v. The returned slice is a
// read-only view and must not be modified.
func (g *Graph) Neighbors(v int) []int { return g.adj[v] }

// Degree returns the number of neighbors of v.
func (g *Graph) Degree(v int) int { return len(g.adj[v]) }

// MaxDegree returns the largest vertex degree, or 0 for an empty graph.
func (g *Graph) MaxDegree() int {
	m := 0
	for _, nbrs := range g.adj {
		m = max(m, len(nbrs))
	}
	return m
}

// Adjacent reports whether u and v are joined by an edge.
func (g *Graph) Adjacent(u, v int) bool {
	a, b := g.adj[u], g.adj[v]
	if len(b) < len(a) {
		a, v = b, u
	}
	_, found := slices.BinarySearch(a, v)
	return found
}

// Edges returns every edge once as a pair {u, v} with u < v, ordered by u
// then v.
func (g *Graph) Edges() [][2]int {
	out := make([][2]int, 0, g.edges)
	for u, nbrs := range g.adj {
		for _, v := range nbrs {
			if u < v {
				out = append(out, [2]int{u, v})
			}
		}
	}
	return out
}

// ValidColoring reports whether coloring is a proper coloring of g using
// colors in [0, k): one entry per vertex, every entry in range and no edge
// with equally colored endpoints.
func (g *Graph) ValidColoring(coloring []int, k int) bool {
	if len(coloring) != g.N() {
		return false
	}
	for _, c := range coloring {
		if c < 0 || c >= k {
			return false
		}
	}
	for u, nbrs := range g.adj {
		for _, v := range nbrs {
			if coloring[u] == coloring[v] {
				return false
			}
		}
	}
	return true
}

// InducedSubgraph returns the subgraph induced by subset. Vertex i of the
// result is subset[i] of g; every edge of g between two members is kept.
// The receiver is not modified.
func (g *Graph) InducedSubgraph(subset []int) (*Graph, error) {
	pos := make([]int, g.N())
	for i := range pos {
		pos[i] = -1
	}
	for i, v := range subset {
		if v < 0 || v >= g.N() {
			return nil, ErrVertexOutOfRange
		}
		if pos[v] >= 0 {
			return nil, ErrDuplicateVertex
		}
		pos[v] = i
	}

	sub := &Graph{
		points: make([]Point, len(subset)),
		eps:    g.eps,
		adj:    make([][]int, len(subset)),
	}
	for i, v := range subset {
		sub.points[i] = g.points[v]
		for _, w := range g.adj[v] {
			if j := pos[w]; j >= 0 {
				sub.adj[i] = append(sub.adj[i], j)
				if i < j {
					sub.edges++
				}
			}
		}
		slices.Sort(sub.adj[i])
	}
	return sub, nil
}

// Without returns the subgraph induced by every vertex except v, together
// with the original ids of the remaining vertices.
func (g *Graph) Without(v int) (*Graph, []int, error) {
	if v < 0 || v >= g.N() {
		return nil, nil, ErrVertexOutOfRange
	}
	keep := make([]int, 0, g.N()-1)
	for u := range g.N() {
		if u != v {
			keep = append(keep, u)
		}
	}
	sub, err := g.InducedSubgraph(keep)
	return sub, keep, err
}
