package udg

import (
	"cmp"
	"slices"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/coloring"
	"gonum.org/v1/gonum/graph/iterator"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// gonumView returns g as a gonum undirected graph with node ids equal to
// vertex ids.
func (g *Graph) gonumView() *simple.UndirectedGraph {
	ug := simple.NewUndirectedGraph()
	for v := range g.N() {
		ug.AddNode(simple.Node(v))
	}
	for _, e := range g.Edges() {
		ug.SetEdge(simple.Edge{F: simple.Node(e[0]), T: simple.Node(e[1])})
	}
	return ug
}

// MaxClique returns a largest clique of g as ascending vertex ids. Among
// cliques of equal size the lexicographically smallest is returned, so the
// result does not depend on enumeration order. Returns nil for an empty graph.
//
// Maximal cliques are enumerated with Bron-Kerbosch. Exact unit-distance
// graphs have clique number at most 3; only very loose tolerances admit more.
func MaxClique(g *Graph) []int {
	if g.N() == 0 {
		return nil
	}
	var best []int
	for _, c := range topo.BronKerbosch(g.gonumView()) {
		ids := make([]int, len(c))
		for i, n := range c {
			ids[i] = int(n.ID())
		}
		slices.Sort(ids)
		if len(ids) > len(best) || (len(ids) == len(best) && slices.Compare(ids, best) < 0) {
			best = ids
		}
	}
	return best
}

// IsClique reports whether vs are distinct, in-range and pairwise adjacent
// vertices of g.
func (g *Graph) IsClique(vs []int) bool {
	for i, u := range vs {
		if u < 0 || u >= g.N() {
			return false
		}
		for _, v := range vs[i+1:] {
			if u == v || !g.Adjacent(u, v) {
				return false
			}
		}
	}
	return true
}

// CliqueNumber returns the size of a largest clique of g.
func CliqueNumber(g *Graph) int { return len(MaxClique(g)) }

// orderedView presents a gonum graph with nodes and neighbors in ascending
// id order. DSatur breaks ties by iteration order, and the map-backed
// simple graph iterates in random order.
type orderedView struct{ *simple.UndirectedGraph }

func (v orderedView) Nodes() graph.Nodes { return sortedNodes(v.UndirectedGraph.Nodes()) }

func (v orderedView) From(id int64) graph.Nodes { return sortedNodes(v.UndirectedGraph.From(id)) }

func sortedNodes(it graph.Nodes) graph.Nodes {
	nodes := graph.NodesOf(it)
	slices.SortFunc(nodes, func(a, b graph.Node) int { return cmp.Compare(a.ID(), b.ID()) })
	return iterator.NewOrderedNodes(nodes)
}

// GreedyColoring colors g with DSatur, breaking saturation ties by vertex id,
// and returns the number of colors used together with a dense coloring in
// [0, k). The result is an upper bound on the chromatic number.
func GreedyColoring(g *Graph) (int, []int) {
	if g.N() == 0 {
		return 0, []int{}
	}
	_, colors, err := coloring.Dsatur(orderedView{g.gonumView()}, nil)
	if err != nil {
		return InvertedGreedy(g)
	}

	raw := make([]int, g.N())
	for v := range raw {
		raw[v] = colors[int64(v)]
	}
	k, dense := compactColors(raw)
	if !g.ValidColoring(dense, k) {
		return InvertedGreedy(g)
	}
	return k, dense
}

// compactColors renumbers colors in order of first appearance by vertex id.
func compactColors(raw []int) (int, []int) {
	remap := make(map[int]int)
	out := make([]int, len(raw))
	for v, c := range raw {
		d, ok := remap[c]
		if !ok {
			d = len(remap)
			remap[c] = d
		}
		out[v] = d
	}
	return len(remap), out
}

// SmallestLastOrder returns the smallest-last removal order of g: repeatedly
// remove a vertex of minimum remaining degree (smallest id on ties). The
// reverse of this order is a degeneracy ordering.
func SmallestLastOrder(g *Graph) []int {
	n := g.N()
	deg := make([]int, n)
	for v := range n {
		deg[v] = g.Degree(v)
	}
	removed := make([]bool, n)
	order := make([]int, 0, n)
	for range n {
		pick := -1
		for v := range n {
			if !removed[v] && (pick < 0 || deg[v] < deg[pick]) {
				pick = v
			}
		}
		removed[pick] = true
		order = append(order, pick)
		for _, w := range g.Neighbors(pick) {
			if !removed[w] {
				deg[w]--
			}
		}
	}
	return order
}

// InvertedGreedy colors g first-fit in the inverted (reversed) smallest-last
// order. It is deterministic and cheap, and its color count is an upper
// bound on the chromatic number; the search package uses it as a screening
// bound before running the exact estimator.
func InvertedGreedy(g *Graph) (int, []int) {
	order := SmallestLastOrder(g)
	slices.Reverse(order)
	return FirstFit(g, order)
}

// FirstFit colors vertices in the given order with the smallest color not
// used by an already colored neighbor.
func FirstFit(g *Graph, order []int) (int, []int) {
	colors := make([]int, g.N())
	for i := range colors {
		colors[i] = -1
	}
	k := 0
	used := make([]bool, g.MaxDegree()+2)
	for _, v := range order {
		for _, w := range g.Neighbors(v) {
			if c := colors[w]; c >= 0 {
				used[c] = true
			}
		}
		c := 0
		for used[c] {
			c++
		}
		colors[v] = c
		k = max(k, c+1)
		for _, w := range g.Neighbors(v) {
			if c := colors[w]; c >= 0 {
				used[c] = false
			}
		}
	}
	return k, colors
}

// Degeneracy returns the largest minimum degree seen during smallest-last
// removal. Every graph is (degeneracy+1)-colorable.
func Degeneracy(g *Graph) int {
	n := g.N()
	deg := make([]int, n)
	for v := range n {
		deg[v] = g.Degree(v)
	}
	removed := make([]bool, n)
	d := 0
	for _, v := range SmallestLastOrder(g) {
		d = max(d, deg[v])
		removed[v] = true
		for _, w := range g.Neighbors(v) {
			if !removed[w] {
				deg[w]--
			}
		}
	}
	return d
}
