package errors

import "math"

// MaxTolerance is the largest accepted distance tolerance. At 0.5 and above
// the unit annulus |d-1| <= eps would contain the zero distance between
// coinciding points.
const MaxTolerance = 0.5

// ValidateTolerance checks that eps is a usable unit-distance tolerance:
// finite, strictly positive and below MaxTolerance.
func ValidateTolerance(eps float64) error {
	if math.IsNaN(eps) || math.IsInf(eps, 0) {
		return New(ErrCodeInvalidTolerance, "tolerance must be finite, got %v", eps)
	}
	if eps <= 0 {
		return New(ErrCodeInvalidTolerance, "tolerance must be positive, got %g", eps)
	}
	if eps >= MaxTolerance {
		return New(ErrCodeInvalidTolerance, "tolerance must be below %g, got %g", MaxTolerance, eps)
	}
	return nil
}

// ValidateCoordinate checks that a single coordinate of point i is finite.
// The axis is reported in the error message ("x" or "y").
func ValidateCoordinate(i int, axis string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidPoint, "point %d: %s coordinate is not finite (%v)", i, axis, v)
	}
	return nil
}

// ValidateColorCount checks that k is a usable number of colors.
func ValidateColorCount(k int) error {
	if k < 0 {
		return New(ErrCodeInvalidArgument, "color count must not be negative, got %d", k)
	}
	return nil
}
