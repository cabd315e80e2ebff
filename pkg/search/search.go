package search

import (
	"context"
	"fmt"
	"io"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/chromaplane/pkg/chroma"
	cperrors "github.com/matzehuels/chromaplane/pkg/errors"
	"github.com/matzehuels/chromaplane/pkg/observability"
	"github.com/matzehuels/chromaplane/pkg/oracle"
	"github.com/matzehuels/chromaplane/pkg/udg"
)

// Defaults for zero-valued Budget fields.
const (
	DefaultWorkers   = 1
	DefaultTopN      = 10
	DefaultBatchSize = 32
)

// Budget bounds the work of a search run.
type Budget struct {
	// Candidates caps the number of transforms generated. Zero means all
	// the space yields.
	Candidates int `json:"candidates,omitempty"`

	Workers int `json:"workers,omitempty"`

	// TopN is the number of ranked records kept.
	TopN int `json:"top_n,omitempty"`

	// NodeBudget and ExactLimit configure the estimator; see chroma.Options.
	NodeBudget int64 `json:"node_budget,omitempty"`
	ExactLimit int   `json:"exact_limit,omitempty"`

	// BatchSize is the number of candidates screened against one snapshot
	// of the best chromatic number.
	BatchSize int `json:"batch_size,omitempty"`

	Logger *log.Logger `json:"-"`
}

// SetDefaults fills zero-valued fields.
func (b *Budget) SetDefaults() {
	if b.Workers <= 0 {
		b.Workers = DefaultWorkers
	}
	if b.TopN <= 0 {
		b.TopN = DefaultTopN
	}
	if b.BatchSize <= 0 {
		b.BatchSize = DefaultBatchSize
	}
	if b.Logger == nil {
		b.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// State is the lifecycle state of a candidate.
type State string

const (
	StateGenerated      State = "generated"
	StateCheaplyBounded State = "cheaply-bounded"
	StateFullyEvaluated State = "fully-evaluated"
	StateDiscarded      State = "discarded"
	StateRecorded       State = "recorded"
	StateUndecided      State = "undecided"
)

// Record describes one evaluated candidate with enough information to
// regenerate it.
type Record struct {
	Rank      int           `json:"rank"`
	Candidate int           `json:"candidate"`
	Transform Transform     `json:"transform"`
	Seed      uint64        `json:"seed"`
	K         int           `json:"k"`
	Status    oracle.Status `json:"status"`
	Lower     int           `json:"lower"`
	Upper     int           `json:"upper"`
	Vertices  int           `json:"vertices"`
	Edges     int           `json:"edges"`
	Points    []udg.Point   `json:"points"`
}

// Stats counts candidates per state. A candidate passes through several
// states, so only the terminal counts (Discarded, Recorded, Undecided) add
// up to Generated.
type Stats struct {
	Generated      int           `json:"generated"`
	CheaplyBounded int           `json:"cheaply_bounded"`
	FullyEvaluated int           `json:"fully_evaluated"`
	Discarded      int           `json:"discarded"`
	Recorded       int           `json:"recorded"`
	Undecided      int           `json:"undecided"`
	Elapsed        time.Duration `json:"-"`
}

// Result is the outcome of a search run.
type Result struct {
	RunID   string `json:"run_id"`
	Mode    Mode   `json:"mode"`
	Seed    uint64 `json:"seed"`
	BaseChi int    `json:"base_chi"`

	// BaseExact is false when some base estimate came back Unknown. BaseChi
	// is then only a lower bound on the bases' chromatic number, and a
	// record may merely match it.
	BaseExact bool `json:"base_exact"`

	// Records are the best candidates found, ranked.
	Records []Record `json:"records"`

	// Undecided holds candidates whose estimate came back Unknown, ordered
	// by candidate index. They are neither ranked nor discarded.
	Undecided []Record `json:"undecided,omitempty"`

	Stats Stats `json:"stats"`
}

// Best returns the top-ranked record, if any.
func (r *Result) Best() (Record, bool) {
	if len(r.Records) == 0 {
		return Record{}, false
	}
	return r.Records[0], true
}

// outcome is the evaluation of one candidate within a batch.
type outcome struct {
	record    Record
	state     State
	evaluated bool
}

// searcher holds the read-only inputs of a run plus the best-so-far value.
type searcher struct {
	bases  [][]udg.Point
	space  Space
	budget Budget
	est    *chroma.Estimator

	mu   sync.Mutex
	best int
}

// SearchHigherChromatic explores space over the base point sets and returns
// the candidates whose chromatic number exceeds BaseChi, ranked. BaseChi is
// the largest chromatic number of the bases when [Result.BaseExact] holds,
// and the largest proven lower bound otherwise.
//
// On cancellation the partial result gathered so far is returned together
// with an error carrying [cperrors.ErrCodeCanceled].
func SearchHigherChromatic(ctx context.Context, bases [][]udg.Point, space Space, budget Budget) (*Result, error) {
	if len(bases) == 0 {
		return nil, cperrors.New(cperrors.ErrCodeInvalidInput, "at least one base point set is required")
	}
	space.SetDefaults()
	if err := space.Validate(); err != nil {
		return nil, err
	}
	budget.SetDefaults()

	s := &searcher{
		bases:  bases,
		space:  space,
		budget: budget,
		est: chroma.NewEstimator(chroma.Options{
			ExactLimit: budget.ExactLimit,
			NodeBudget: budget.NodeBudget,
			Logger:     budget.Logger,
		}),
	}

	start := time.Now()
	baseChi, baseExact, err := s.baseChi(ctx)
	if err != nil {
		return nil, err
	}
	s.best = baseChi

	res := &Result{
		RunID:     uuid.NewString(),
		Mode:      space.Mode,
		Seed:      space.Seed,
		BaseChi:   baseChi,
		BaseExact: baseExact,
	}
	budget.Logger.Info("starting search", "run", res.RunID, "mode", space.Mode, "seed", space.Seed,
		"bases", len(bases), "base_chi", baseChi, "workers", budget.Workers)

	top := newTopN(budget.TopN)
	batch := make([]indexed, 0, budget.BatchSize)
	index := 0
	for t := range space.Transforms(bases) {
		if budget.Candidates > 0 && index >= budget.Candidates {
			break
		}
		batch = append(batch, indexed{index: index, transform: t})
		index++
		if len(batch) == budget.BatchSize {
			if err := s.runBatch(ctx, batch, res, top); err != nil {
				return s.finish(res, top, start), err
			}
			batch = batch[:0]
		}
	}
	if len(batch) > 0 {
		if err := s.runBatch(ctx, batch, res, top); err != nil {
			return s.finish(res, top, start), err
		}
	}

	s.finish(res, top, start)
	budget.Logger.Info("search complete", "run", res.RunID, "generated", res.Stats.Generated,
		"recorded", res.Stats.Recorded, "undecided", res.Stats.Undecided, "best", s.best,
		"elapsed", res.Stats.Elapsed.Round(time.Millisecond))
	return res, nil
}

type indexed struct {
	index     int
	transform Transform
}

// baseChi returns the largest proven chromatic lower bound over the bases
// and whether every base estimate was exact.
func (s *searcher) baseChi(ctx context.Context) (int, bool, error) {
	best, exact := 0, true
	for i, pts := range s.bases {
		g, err := udg.Build(pts, s.space.Tolerance)
		if err != nil {
			return 0, false, fmt.Errorf("base %d: %w", i, err)
		}
		est, err := s.est.Estimate(ctx, g)
		if err != nil {
			return 0, false, fmt.Errorf("base %d: %w", i, err)
		}
		if !est.Exact() {
			exact = false
			s.budget.Logger.Warn("base chromatic number undecided", "base", i, "lower", est.Lower, "upper", est.Upper)
		}
		best = max(best, est.Lower)
	}
	return best, exact, nil
}

// runBatch evaluates a batch against a snapshot of the best value and then
// folds the outcomes in candidate order.
func (s *searcher) runBatch(ctx context.Context, batch []indexed, res *Result, top *topN) error {
	if err := ctx.Err(); err != nil {
		return cperrors.Wrap(cperrors.ErrCodeCanceled, err, "search cancelled")
	}
	s.mu.Lock()
	snapshot := s.best
	s.mu.Unlock()

	outcomes := make([]outcome, len(batch))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.budget.Workers)
	for i, c := range batch {
		g.Go(func() error {
			out, err := s.evaluate(gctx, c, snapshot)
			if err != nil {
				return fmt.Errorf("candidate %d: %w", c.index, err)
			}
			outcomes[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	hooks := observability.Search()
	for _, out := range outcomes {
		res.Stats.Generated++
		res.Stats.CheaplyBounded++
		if out.evaluated {
			res.Stats.FullyEvaluated++
		}
		switch out.state {
		case StateDiscarded:
			res.Stats.Discarded++
		case StateUndecided:
			res.Stats.Undecided++
			res.Undecided = append(res.Undecided, out.record)
		case StateRecorded:
			res.Stats.Recorded++
			top.push(out.record)
			s.mu.Lock()
			if out.record.K > s.best {
				s.best = out.record.K
				hooks.OnBest(ctx, out.record.Candidate, out.record.K)
				s.budget.Logger.Info("new best", "candidate", out.record.Candidate, "chi", out.record.K,
					"vertices", out.record.Vertices, "edges", out.record.Edges)
			}
			s.mu.Unlock()
		}
		hooks.OnCandidate(ctx, out.record.Candidate, string(out.state), out.record.K)
	}
	return nil
}

// evaluate takes one candidate from GENERATED to a terminal state, given
// the best chromatic number at the start of its batch.
func (s *searcher) evaluate(ctx context.Context, c indexed, best int) (outcome, error) {
	rec := Record{Candidate: c.index, Transform: c.transform, Seed: s.space.Seed}

	pts, err := c.transform.Apply(s.bases, s.space.Tolerance)
	if err != nil {
		return outcome{}, err
	}
	g, err := udg.Build(pts, s.space.Tolerance)
	if err != nil {
		return outcome{}, err
	}
	rec.Vertices, rec.Edges = g.N(), g.EdgeCount()

	screen, _ := udg.InvertedGreedy(g)
	rec.Upper = screen
	if screen <= best {
		return outcome{record: rec, state: StateDiscarded}, nil
	}

	est, err := s.est.Estimate(ctx, g)
	if err != nil {
		return outcome{}, err
	}
	rec.Status, rec.Lower, rec.Upper = est.Status, est.Lower, est.Upper
	switch {
	case est.Exact() && est.Chi > best:
		rec.K = est.Chi
		rec.Points = g.Points()
		return outcome{record: rec, state: StateRecorded, evaluated: true}, nil
	case !est.Exact() && est.Upper > best:
		rec.K = est.Lower
		rec.Points = g.Points()
		return outcome{record: rec, state: StateUndecided, evaluated: true}, nil
	default:
		rec.K = est.Lower
		return outcome{record: rec, state: StateDiscarded, evaluated: true}, nil
	}
}

func (s *searcher) finish(res *Result, top *topN, start time.Time) *Result {
	res.Records = top.ranked()
	slices.SortFunc(res.Undecided, func(a, b Record) int { return a.Candidate - b.Candidate })
	res.Stats.Elapsed = time.Since(start)
	return res
}
