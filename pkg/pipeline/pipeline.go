// Package pipeline runs the chromaplane stages with caching.
//
// A [Runner] wraps the library packages with a result cache and logging so
// every front end shares one code path. The stages are:
//
//  1. Analyze: build the unit-distance graph and estimate its chromatic number
//  2. Reduce: shrink a graph of known chromatic number to a critical subgraph
//  3. Search: look for transformed unions with a higher chromatic number
//  4. Render: draw a graph with its witness coloring
//
// Each stage checks the cache before computing. Only decided results are
// written back: an Unknown estimate, an uncertified reduction or a search
// with an undecided base or candidate is recomputed on the next run,
// possibly with a larger budget.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	res, err := runner.Execute(ctx, points, pipeline.Options{Critical: true})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(res.Analysis.Estimate)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/chromaplane/pkg/chroma"
	"github.com/matzehuels/chromaplane/pkg/critical"
	cperrors "github.com/matzehuels/chromaplane/pkg/errors"
	"github.com/matzehuels/chromaplane/pkg/udg"
)

// =============================================================================
// Default Values
// =============================================================================

// DefaultTolerance is the unit-distance tolerance used when none is given.
const DefaultTolerance = 1e-9

// =============================================================================
// Options
// =============================================================================

// Options configures the analyze and reduce stages.
type Options struct {
	Tolerance float64 `json:"tolerance,omitempty"`

	// ExactLimit and NodeBudget are passed to the estimator and the
	// reducer; see chroma.Options.
	ExactLimit int   `json:"exact_limit,omitempty"`
	NodeBudget int64 `json:"node_budget,omitempty"`

	Order  critical.Order `json:"order,omitempty"`
	Verify bool           `json:"verify,omitempty"`

	// Critical makes Execute reduce the graph once its chromatic number
	// is known.
	Critical bool `json:"critical,omitempty"`

	// Refresh skips cache reads. Fresh results are still written.
	Refresh bool `json:"refresh,omitempty"`

	// TTL overrides the per-stage cache lifetime.
	TTL time.Duration `json:"-"`

	Logger *log.Logger `json:"-"`
}

// SetDefaults fills zero-valued fields.
func (o *Options) SetDefaults() {
	if o.Tolerance == 0 {
		o.Tolerance = DefaultTolerance
	}
	if o.ExactLimit == 0 {
		o.ExactLimit = chroma.DefaultExactLimit
	}
	if o.NodeBudget == 0 {
		o.NodeBudget = chroma.DefaultNodeBudget
	}
	if o.Order == "" {
		o.Order = critical.OrderIndex
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Validate checks the options after defaults have been applied.
func (o *Options) Validate() error {
	if err := cperrors.ValidateTolerance(o.Tolerance); err != nil {
		return err
	}
	if o.TTL < 0 {
		return cperrors.New(cperrors.ErrCodeInvalidArgument, "ttl must not be negative")
	}
	ro := o.reducer()
	return ro.Validate()
}

func (o *Options) estimator() chroma.Options {
	return chroma.Options{ExactLimit: o.ExactLimit, NodeBudget: o.NodeBudget, Logger: o.Logger}
}

func (o *Options) reducer() critical.Options {
	return critical.Options{
		Order:      o.Order,
		NodeBudget: o.NodeBudget,
		ExactLimit: o.ExactLimit,
		Verify:     o.Verify,
		Logger:     o.Logger,
	}
}

func (o *Options) ttl(fallback time.Duration) time.Duration {
	if o.TTL > 0 {
		return o.TTL
	}
	return fallback
}

// =============================================================================
// Results
// =============================================================================

// Analysis is the outcome of the analyze stage.
type Analysis struct {
	Graph     *udg.Graph      `json:"-"`
	GraphHash string          `json:"graph_hash"`
	Vertices  int             `json:"vertices"`
	Edges     int             `json:"edges"`
	Estimate  chroma.Estimate `json:"estimate"`
}

// Result contains the outputs of [Runner.Execute].
type Result struct {
	Analysis *Analysis

	// Critical is the reduced subgraph, nil unless Options.Critical was
	// set and the chromatic number was determined.
	Critical *critical.Subgraph

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains timing information.
type Stats struct {
	AnalyzeTime time.Duration
	ReduceTime  time.Duration
}

// CacheInfo tracks which stages were served from the cache.
type CacheInfo struct {
	AnalyzeHit bool
	ReduceHit  bool
}
