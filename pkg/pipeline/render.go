package pipeline

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/matzehuels/chromaplane/pkg/cache"
	"github.com/matzehuels/chromaplane/pkg/render"
)

// RenderOptions configures the render stage.
type RenderOptions struct {
	// Format defaults to SVG.
	Format render.Format

	// Colored fills the vertices with the witness coloring of the estimate.
	Colored bool

	// Highlight outlines vertices, typically a critical subgraph.
	Highlight []int

	Labels bool
	Scale  float64
}

// RenderWithCacheInfo draws an analyzed graph and reports whether the
// artifact came from the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, a *Analysis, opts RenderOptions) ([]byte, bool, error) {
	if a == nil || a.Graph == nil {
		return nil, false, fmt.Errorf("render: no graph")
	}
	if opts.Format == "" {
		opts.Format = render.FormatSVG
	}
	if opts.Scale <= 0 {
		opts.Scale = render.DefaultScale
	}
	var coloring []int
	if opts.Colored {
		coloring = a.Estimate.Witness
	}

	key := r.Keyer.ArtifactKey(a.GraphHash, cache.ArtifactKeyOpts{
		Format:    string(opts.Format),
		Coloring:  hashInts(coloring),
		Highlight: hashInts(opts.Highlight),
		Labels:    opts.Labels,
		Scale:     opts.Scale,
	})
	if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
		return data, true, nil
	}

	dot := render.ToDOT(a.Graph, render.Options{
		Coloring:  coloring,
		Highlight: opts.Highlight,
		Labels:    opts.Labels,
		Scale:     opts.Scale,
	})
	data, err := render.Render(ctx, dot, opts.Format)
	if err != nil {
		return nil, false, fmt.Errorf("render %s: %w", opts.Format, err)
	}
	if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err != nil {
		r.Logger.Warn("cache write failed", "key", key, "error", err)
	}
	return data, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, a *Analysis, opts RenderOptions) ([]byte, error) {
	data, _, err := r.RenderWithCacheInfo(ctx, a, opts)
	return data, err
}

func hashInts(xs []int) string {
	if len(xs) == 0 {
		return ""
	}
	data, _ := json.Marshal(xs)
	return cache.Hash(data)
}
