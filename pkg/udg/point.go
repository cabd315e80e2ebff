package udg

import "math"

// Point is an immutable planar coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Add returns p + q.
func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }

// Sub returns p - q.
func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

// Norm returns the Euclidean length of p.
func (p Point) Norm() float64 { return math.Hypot(p.X, p.Y) }

// Dist returns the Euclidean distance between p and q.
func (p Point) Dist(q Point) float64 { return math.Hypot(p.X-q.X, p.Y-q.Y) }

// Angle returns the polar angle of p in (-pi, pi].
func (p Point) Angle() float64 { return math.Atan2(p.Y, p.X) }

// Rotate returns p rotated counter-clockwise by theta radians about the origin.
func (p Point) Rotate(theta float64) Point {
	s, c := math.Sincos(theta)
	return Point{X: c*p.X - s*p.Y, Y: s*p.X + c*p.Y}
}

// IsUnitDistance reports whether p and q are at distance 1 within eps.
func IsUnitDistance(p, q Point, eps float64) bool {
	return math.Abs(p.Dist(q)-1) <= eps
}

// maxHashCoord bounds coordinates for which cell hashing is exact; beyond it
// the float-to-int conversion would overflow and the quadratic scan is used.
const maxHashCoord = 1e15

type cellKey struct{ x, y int64 }

func cellOf(p Point, size float64) cellKey {
	return cellKey{x: int64(math.Floor(p.X / size)), y: int64(math.Floor(p.Y / size))}
}

func hashable(points []Point, size float64) bool {
	for _, p := range points {
		if math.Abs(p.X/size) > maxHashCoord || math.Abs(p.Y/size) > maxHashCoord {
			return false
		}
	}
	return true
}

// forEachNearPair calls fn(i, j) with i < j for every pair of points whose
// distance may be at most reach. Pairs farther apart may also be reported;
// callers apply their own exact test. Each pair is reported at most once.
func forEachNearPair(points []Point, reach float64, fn func(i, j int)) {
	if !hashable(points, reach) {
		for i := range points {
			for j := i + 1; j < len(points); j++ {
				fn(i, j)
			}
		}
		return
	}

	cells := make(map[cellKey][]int, len(points))
	keys := make([]cellKey, len(points))
	for i, p := range points {
		k := cellOf(p, reach)
		keys[i] = k
		cells[k] = append(cells[k], i)
	}

	for i, k := range keys {
		for dx := int64(-1); dx <= 1; dx++ {
			for dy := int64(-1); dy <= 1; dy++ {
				for _, j := range cells[cellKey{x: k.x + dx, y: k.y + dy}] {
					if j > i {
						fn(i, j)
					}
				}
			}
		}
	}
}

// MergePoints removes points that coincide with an earlier point within eps.
// The first occurrence is kept and the input order is otherwise preserved, so
// the result is deterministic.
func MergePoints(points []Point, eps float64) []Point {
	if len(points) == 0 {
		return nil
	}
	dup := make([]bool, len(points))
	forEachNearPair(points, eps, func(i, j int) {
		if !dup[i] && points[i].Dist(points[j]) <= eps {
			dup[j] = true
		}
	})
	out := make([]Point, 0, len(points))
	for i, p := range points {
		if !dup[i] {
			out = append(out, p)
		}
	}
	return out
}
