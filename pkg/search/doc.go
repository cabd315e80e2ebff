// Package search looks for unit-distance graphs of higher chromatic number
// among transformed unions of known point sets.
//
// # Candidates
//
// A [Transform] names two base point sets and a rigid motion. The candidate
// point set is the first base together with Copies-1 images of the second,
// the i-th rotated by i*Angle about the origin and shifted by i*Offset.
// Points that coincide within the tolerance are merged, so shared vertices
// stay shared.
//
// A [Space] enumerates transforms in one of three modes:
//
//   - [ModeGrid]: every combination of base pair, angle, offset and copy
//     count, in a fixed order
//   - [ModeRandom]: Samples draws from a generator seeded with Seed
//   - [ModeAligned]: the rotations that put some point of one base at unit
//     distance from some point of the other (this is how two rhombi become a
//     Moser spindle)
//
// # Staged Evaluation
//
// Each candidate is built into a graph and screened with a cheap greedy
// coloring bound. Since that bound is an upper bound on the chromatic
// number, a candidate whose bound does not exceed the best chromatic number
// so far cannot improve on it and is discarded without running the full
// estimator. Only the survivors are estimated.
//
// # Reproducibility
//
// Candidates are evaluated in fixed-size batches. The best-so-far value used
// for screening is a snapshot taken at the start of each batch and advanced
// only when the batch completes, so the outcome depends on the inputs and
// the seed alone, not on the number of workers or their scheduling.
package search
