package search

import (
	"iter"
	"math"
	"math/rand/v2"

	cperrors "github.com/matzehuels/chromaplane/pkg/errors"
	"github.com/matzehuels/chromaplane/pkg/udg"
)

// Mode selects how a [Space] produces transforms.
type Mode string

const (
	ModeGrid    Mode = "grid"
	ModeRandom  Mode = "random"
	ModeAligned Mode = "aligned"
)

// Defaults for zero-valued Space fields.
const (
	DefaultMode      = ModeGrid
	DefaultTolerance = 1e-9
	DefaultSamples   = 1000
	DefaultCopies    = 2
)

// Space is the set of transforms a search explores.
type Space struct {
	Mode Mode `json:"mode" toml:"mode"`

	// Seed drives every random choice of the run.
	Seed uint64 `json:"seed" toml:"seed"`

	// Tolerance is the unit-distance tolerance used for every candidate.
	Tolerance float64 `json:"tolerance" toml:"tolerance"`

	// Angles lists rotations (radians) for grid mode.
	Angles []float64 `json:"angles,omitempty" toml:"angles"`

	// Offsets lists translations for grid mode, and the translations random
	// mode picks from. Defaults to the zero offset.
	Offsets []udg.Point `json:"offsets,omitempty" toml:"offsets"`

	// OffsetBox is the half-width of the square random mode draws offsets
	// from when Offsets is empty.
	OffsetBox float64 `json:"offset_box,omitempty" toml:"offset_box"`

	// Copies lists copy counts; defaults to [2].
	Copies []int `json:"copies,omitempty" toml:"copies"`

	// Samples is the number of random-mode draws.
	Samples int `json:"samples,omitempty" toml:"samples"`

	// AlignPairs, when positive, makes aligned mode sample this many point
	// pairs per base pair instead of enumerating all of them.
	AlignPairs int `json:"align_pairs,omitempty" toml:"align_pairs"`
}

// SetDefaults fills zero-valued fields.
func (s *Space) SetDefaults() {
	if s.Mode == "" {
		s.Mode = DefaultMode
	}
	if s.Tolerance == 0 {
		s.Tolerance = DefaultTolerance
	}
	if len(s.Copies) == 0 {
		s.Copies = []int{DefaultCopies}
	}
	if s.Mode == ModeRandom && s.Samples == 0 {
		s.Samples = DefaultSamples
	}
}

// Validate checks the space after defaults have been applied.
func (s *Space) Validate() error {
	if err := cperrors.ValidateTolerance(s.Tolerance); err != nil {
		return err
	}
	for _, c := range s.Copies {
		if c < 1 {
			return cperrors.New(cperrors.ErrCodeInvalidArgument, "copies must be at least 1, got %d", c)
		}
	}
	for _, a := range s.Angles {
		if math.IsNaN(a) || math.IsInf(a, 0) {
			return cperrors.New(cperrors.ErrCodeInvalidArgument, "angle is not finite")
		}
	}
	switch s.Mode {
	case ModeGrid:
		if len(s.Angles) == 0 {
			return cperrors.New(cperrors.ErrCodeInvalidArgument, "grid mode needs at least one angle")
		}
	case ModeRandom:
		if s.Samples < 0 {
			return cperrors.New(cperrors.ErrCodeInvalidArgument, "samples must not be negative")
		}
		if s.OffsetBox < 0 || math.IsNaN(s.OffsetBox) || math.IsInf(s.OffsetBox, 0) {
			return cperrors.New(cperrors.ErrCodeInvalidArgument, "offset box must be finite and non-negative")
		}
	case ModeAligned:
		if s.AlignPairs < 0 {
			return cperrors.New(cperrors.ErrCodeInvalidArgument, "align pairs must not be negative")
		}
	default:
		return cperrors.New(cperrors.ErrCodeInvalidArgument, "invalid mode %q (must be grid, random or aligned)", s.Mode)
	}
	return nil
}

func (s *Space) offsets() []udg.Point {
	if len(s.Offsets) == 0 {
		return []udg.Point{{}}
	}
	return s.Offsets
}

func (s *Space) rng() *rand.Rand {
	return rand.New(rand.NewPCG(s.Seed, s.Seed^0xdeadbeef))
}

// Transforms enumerates the transforms of s over the given bases. The
// sequence is a pure function of s and bases.
func (s *Space) Transforms(bases [][]udg.Point) iter.Seq[Transform] {
	switch s.Mode {
	case ModeRandom:
		return s.random(len(bases))
	case ModeAligned:
		return s.aligned(bases)
	default:
		return s.grid(len(bases))
	}
}

func (s *Space) grid(n int) iter.Seq[Transform] {
	return func(yield func(Transform) bool) {
		for b := range n {
			for o := range n {
				for _, angle := range s.Angles {
					for _, off := range s.offsets() {
						for _, c := range s.Copies {
							if !yield(Transform{Base: b, Other: o, Angle: angle, Offset: off, Copies: c}) {
								return
							}
						}
					}
				}
			}
		}
	}
}

func (s *Space) random(n int) iter.Seq[Transform] {
	return func(yield func(Transform) bool) {
		if n == 0 {
			return
		}
		rng := s.rng()
		for range s.Samples {
			t := Transform{
				Base:   rng.IntN(n),
				Other:  rng.IntN(n),
				Angle:  rng.Float64() * 2 * math.Pi,
				Copies: s.Copies[rng.IntN(len(s.Copies))],
			}
			if len(s.Offsets) > 0 {
				t.Offset = s.Offsets[rng.IntN(len(s.Offsets))]
			} else if s.OffsetBox > 0 {
				t.Offset = udg.Pt((2*rng.Float64()-1)*s.OffsetBox, (2*rng.Float64()-1)*s.OffsetBox)
			}
			if !yield(t) {
				return
			}
		}
	}
}

// aligned yields, per ordered base pair, every distinct rotation that
// aligns a point pair at unit distance. Aligned transforms rotate about the
// origin only, so offsets are not applied.
func (s *Space) aligned(bases [][]udg.Point) iter.Seq[Transform] {
	return func(yield func(Transform) bool) {
		rng := s.rng()
		for b := range bases {
			for o := range bases {
				for _, angle := range s.alignedAngles(rng, bases[b], bases[o]) {
					for _, c := range s.Copies {
						if !yield(Transform{Base: b, Other: o, Angle: angle, Copies: c}) {
							return
						}
					}
				}
			}
		}
	}
}

func (s *Space) alignedAngles(rng *rand.Rand, base, other []udg.Point) []float64 {
	if len(base) == 0 || len(other) == 0 {
		return nil
	}
	var angles []float64
	if s.AlignPairs > 0 {
		for range s.AlignPairs {
			p := base[rng.IntN(len(base))]
			q := other[rng.IntN(len(other))]
			angles = append(angles, alignAngles(p, q)...)
		}
	} else {
		for _, p := range base {
			for _, q := range other {
				angles = append(angles, alignAngles(p, q)...)
			}
		}
	}
	return dedupeAngles(angles)
}
