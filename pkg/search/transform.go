package search

import (
	"math"
	"slices"

	cperrors "github.com/matzehuels/chromaplane/pkg/errors"
	"github.com/matzehuels/chromaplane/pkg/udg"
)

// Transform describes one candidate: base set Base united with Copies-1
// rotated and shifted images of base set Other.
type Transform struct {
	Base   int       `json:"base"`
	Other  int       `json:"other"`
	Angle  float64   `json:"angle"`
	Offset udg.Point `json:"offset"`
	Copies int       `json:"copies"`
}

// Validate checks the transform against the number of base sets.
func (t Transform) Validate(bases int) error {
	if t.Base < 0 || t.Base >= bases || t.Other < 0 || t.Other >= bases {
		return cperrors.New(cperrors.ErrCodeInvalidArgument,
			"transform references base %d/%d, have %d bases", t.Base, t.Other, bases)
	}
	if t.Copies < 1 {
		return cperrors.New(cperrors.ErrCodeInvalidArgument, "copies must be at least 1, got %d", t.Copies)
	}
	if math.IsNaN(t.Angle) || math.IsInf(t.Angle, 0) {
		return cperrors.New(cperrors.ErrCodeInvalidArgument, "angle is not finite")
	}
	return nil
}

// Apply returns the candidate point set with coinciding points merged
// within eps. The base sets are not modified.
func (t Transform) Apply(bases [][]udg.Point, eps float64) ([]udg.Point, error) {
	if err := t.Validate(len(bases)); err != nil {
		return nil, err
	}
	pts := slices.Clone(bases[t.Base])
	for i := 1; i < t.Copies; i++ {
		theta := float64(i) * t.Angle
		shift := udg.Pt(float64(i)*t.Offset.X, float64(i)*t.Offset.Y)
		for _, p := range bases[t.Other] {
			pts = append(pts, p.Rotate(theta).Add(shift))
		}
	}
	return udg.MergePoints(pts, eps), nil
}

// angleEps is the resolution below which two rotation angles are the same.
const angleEps = 1e-9

// normalizeAngle maps theta into [0, 2*pi).
func normalizeAngle(theta float64) float64 {
	theta = math.Mod(theta, 2*math.Pi)
	if theta < 0 {
		theta += 2 * math.Pi
	}
	if 2*math.Pi-theta < angleEps {
		return 0
	}
	return theta
}

// alignAngles returns the rotations theta in (0, 2*pi) for which p and
// q rotated by theta are at unit distance: |p - R(theta) q| = 1.
func alignAngles(p, q udg.Point) []float64 {
	s, r := p.Norm(), q.Norm()
	if s < angleEps || r < angleEps {
		return nil
	}
	cos := (s*s + r*r - 1) / (2 * s * r)
	if cos > 1 || cos < -1 {
		return nil
	}
	delta := math.Acos(cos)
	base := p.Angle() - q.Angle()
	var out []float64
	for _, theta := range []float64{base - delta, base + delta} {
		if theta = normalizeAngle(theta); theta >= angleEps {
			out = append(out, theta)
		}
	}
	return out
}

// dedupeAngles sorts angles and drops near-duplicates.
func dedupeAngles(angles []float64) []float64 {
	slices.Sort(angles)
	return slices.CompactFunc(angles, func(a, b float64) bool { return math.Abs(a-b) < angleEps })
}
