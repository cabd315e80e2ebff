package pipeline

import (
	"context"
	"strings"

	"github.com/matzehuels/chromaplane/pkg/cache"
	"github.com/matzehuels/chromaplane/pkg/search"
	"github.com/matzehuels/chromaplane/pkg/udg"
)

// SearchWithCacheInfo runs a search over bases, reporting whether the
// result came from the cache. Runs that left candidates or a base undecided
// are not cached. A cached result keeps the RunID of the run that produced it.
func (r *Runner) SearchWithCacheInfo(ctx context.Context, bases [][]udg.Point, space search.Space, budget search.Budget, refresh bool) (*search.Result, bool, error) {
	space.SetDefaults()
	if err := space.Validate(); err != nil {
		return nil, false, err
	}
	if budget.Logger == nil {
		budget.Logger = r.Logger
	}
	budget.SetDefaults()

	key := r.Keyer.SearchKey(HashBases(bases, space.Tolerance), cache.SearchKeyOpts{
		Space:      space,
		Candidates: budget.Candidates,
		TopN:       budget.TopN,
		BatchSize:  budget.BatchSize,
		ExactLimit: budget.ExactLimit,
		NodeBudget: budget.NodeBudget,
	})

	var cached search.Result
	if r.load(ctx, key, refresh, &cached) && cached.RunID != "" {
		r.Logger.Info("search served from cache", "run", cached.RunID, "records", len(cached.Records))
		return &cached, true, nil
	}

	res, err := search.SearchHigherChromatic(ctx, bases, space, budget)
	if err != nil {
		return nil, false, err
	}
	r.Logger.Info("search finished",
		"run", res.RunID,
		"base_chi", res.BaseChi,
		"generated", res.Stats.Generated,
		"recorded", res.Stats.Recorded,
		"undecided", res.Stats.Undecided,
		"duration", res.Stats.Elapsed)
	if res.BaseExact && len(res.Undecided) == 0 {
		r.store(ctx, key, res, cache.TTLSearch)
	}
	return res, false, nil
}

// Search is a convenience wrapper that calls SearchWithCacheInfo and discards the cache hit info.
func (r *Runner) Search(ctx context.Context, bases [][]udg.Point, space search.Space, budget search.Budget) (*search.Result, error) {
	res, _, err := r.SearchWithCacheInfo(ctx, bases, space, budget, false)
	return res, err
}

// HashBases returns the content hash of an ordered list of base point sets.
func HashBases(bases [][]udg.Point, eps float64) string {
	parts := make([]string, len(bases))
	for i, b := range bases {
		parts[i] = cache.HashPoints(b, eps)
	}
	return cache.Hash([]byte(strings.Join(parts, ":")))
}
