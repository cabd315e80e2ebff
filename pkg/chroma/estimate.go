package chroma

import (
	"context"
	"fmt"
	"slices"

	cperrors "github.com/matzehuels/chromaplane/pkg/errors"
	"github.com/matzehuels/chromaplane/pkg/oracle"
	"github.com/matzehuels/chromaplane/pkg/udg"
)

// Estimate is the outcome of a chromatic-number computation.
//
// When Status is Satisfiable, Chi is exact: Witness is a proper Chi-coloring
// and every smaller k was proven uncolorable; Lower and Upper both equal Chi.
// When Status is Unknown, Chi is zero and the chromatic number lies in
// [Lower, Upper]; Witness is then a proper Upper-coloring.
type Estimate struct {
	Chi     int           `json:"chi"`
	Lower   int           `json:"lower"`
	Upper   int           `json:"upper"`
	Status  oracle.Status `json:"status"`
	Witness []int         `json:"witness,omitempty"`
}

// Exact reports whether the estimate determined chi.
func (e Estimate) Exact() bool { return e.Status == oracle.Satisfiable }

// String formats the estimate as "chi=4" or "chi in [3, 5] (unknown)".
func (e Estimate) String() string {
	if e.Exact() {
		return fmt.Sprintf("chi=%d", e.Chi)
	}
	return fmt.Sprintf("chi in [%d, %d] (%s)", e.Lower, e.Upper, e.Status)
}

// decider answers one k-colorability query during the scan. clique is a
// clique of g computed once per scan.
type decider func(ctx context.Context, g *udg.Graph, k int, clique []int) (oracle.Result, error)

func exactDecider(ctx context.Context, g *udg.Graph, k int, clique []int) (oracle.Result, error) {
	return oracle.IsKColorableWith(ctx, g, k, oracle.ExactOptions{Clique: clique})
}

// ChromaticNumber returns the exact chromatic number of g, testing k =
// lowerBound, lowerBound+1, ... with the exact oracle until one is
// satisfiable. lowerBound <= 0 defaults to the clique number and
// upperBound <= 0 to the greedy color count. Reaching the upper bound
// returns the greedy witness without another oracle call.
//
// An error is returned only on cancellation, in which case the estimate is
// Unknown with the bounds reached so far.
func ChromaticNumber(ctx context.Context, g *udg.Graph, lowerBound, upperBound int) (Estimate, error) {
	return scan(ctx, g, lowerBound, upperBound, exactDecider)
}

// scan runs the linear chromatic-number scan with decide. A decider
// answering Unknown halts the scan: advancing past it would claim chi > k
// without proof.
func scan(ctx context.Context, g *udg.Graph, lowerBound, upperBound int, decide decider) (Estimate, error) {
	n := g.N()
	if n == 0 {
		return Estimate{Status: oracle.Satisfiable, Witness: []int{}}, nil
	}

	greedyK, greedy := udg.GreedyColoring(g)
	clique := udg.MaxClique(g)
	lower := lowerBound
	if lower <= 0 {
		lower = max(len(clique), 1)
	}
	upper := greedyK
	if upperBound > 0 {
		upper = min(upperBound, greedyK)
	}
	if lower > upper {
		return Estimate{}, cperrors.New(cperrors.ErrCodeInvalidArgument,
			"lower bound %d exceeds upper bound %d", lower, upper)
	}

	for k := lower; k <= upper; k++ {
		if k == greedyK {
			return exact(k, greedy), nil
		}
		res, err := decide(ctx, g, k, clique)
		if err != nil {
			return undetermined(k, greedyK, greedy), err
		}
		switch res.Status {
		case oracle.Satisfiable:
			return exact(k, res.Coloring), nil
		case oracle.Unknown:
			return undetermined(k, greedyK, greedy), nil
		}
	}
	return Estimate{}, cperrors.New(cperrors.ErrCodeInvalidArgument,
		"upper bound %d is not a valid bound: %d-coloring does not exist", upper, upper)
}

func exact(k int, witness []int) Estimate {
	return Estimate{Chi: k, Lower: k, Upper: k, Status: oracle.Satisfiable, Witness: slices.Clone(witness)}
}

func undetermined(lower, upper int, witness []int) Estimate {
	return Estimate{Lower: lower, Upper: upper, Status: oracle.Unknown, Witness: slices.Clone(witness)}
}
