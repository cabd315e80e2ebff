package udg

import "math"

// Known unit-distance constructions. Each returns fresh points; callers may
// modify the slice.

// Triangle returns an equilateral triangle with unit sides (chi = 3).
func Triangle() []Point {
	return []Point{
		Pt(0, 0),
		Pt(1, 0),
		Pt(0.5, math.Sqrt(3)/2),
	}
}

// Rhombus returns two unit equilateral triangles sharing an edge: the origin,
// the two shared-edge endpoints at angles -30 and +30 degrees, and the far
// tip at distance sqrt(3) on the positive x axis. 4 vertices, 5 edges,
// chi = 3.
func Rhombus() []Point { return rhombusAt(0) }

// rhombusAt returns Rhombus rotated by theta about the origin.
func rhombusAt(theta float64) []Point {
	const deg30 = math.Pi / 6
	return []Point{
		Pt(0, 0),
		Pt(1, 0).Rotate(theta - deg30),
		Pt(1, 0).Rotate(theta + deg30),
		Pt(math.Sqrt(3), 0).Rotate(theta),
	}
}

// SpindleAngle is the rotation that puts the tips of two rhombi sharing the
// origin at unit distance: 2*asin(1/(2*sqrt(3))).
var SpindleAngle = 2 * math.Asin(1/(2*math.Sqrt(3)))

// MoserSpindle returns the Moser spindle: two rhombi sharing the origin,
// rotated against each other by [SpindleAngle] so that their tips are at unit
// distance. 7 vertices, 11 edges, chi = 4, and every vertex is needed.
func MoserSpindle() []Point {
	a := rhombusAt(0)
	b := rhombusAt(SpindleAngle)
	return append(a, b[1:]...)
}

// HexagonWheel returns a regular unit hexagon with its center (the wheel
// W6). 7 vertices, 12 edges, chi = 3.
func HexagonWheel() []Point {
	pts := []Point{Pt(0, 0)}
	for i := range 6 {
		pts = append(pts, Pt(1, 0).Rotate(float64(i)*math.Pi/3))
	}
	return pts
}

// GolombGraph returns the Golomb graph: a hexagon wheel plus a unit
// equilateral triangle around the center whose vertices are each at unit
// distance from alternate hexagon vertices. 10 vertices, 18 edges, chi = 4.
func GolombGraph() []Point {
	pts := HexagonWheel()
	r := 1 / math.Sqrt(3)
	phi := math.Acos(r / 2)
	for i := range 3 {
		pts = append(pts, Pt(r, 0).Rotate(phi+float64(i)*2*math.Pi/3))
	}
	return pts
}
