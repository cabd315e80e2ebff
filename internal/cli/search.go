package cli

import (
	"context"
	"fmt"
	"math"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/chromaplane/pkg/config"
	"github.com/matzehuels/chromaplane/pkg/pointset"
	"github.com/matzehuels/chromaplane/pkg/udg"
)

// searchFlags override the [search] section of the run configuration.
type searchFlags struct {
	mode       string
	seed       uint64
	samples    int
	anglesDeg  []float64
	copies     []int
	workers    int
	candidates int
	topN       int
}

func (f *searchFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.mode, "mode", "", "candidate generation: grid, random or aligned")
	cmd.Flags().Uint64Var(&f.seed, "seed", 0, "random seed (random mode and aligned sampling)")
	cmd.Flags().IntVar(&f.samples, "samples", 0, "number of random draws")
	cmd.Flags().Float64SliceVar(&f.anglesDeg, "angle", nil, "grid rotation angles in degrees (repeatable)")
	cmd.Flags().IntSliceVar(&f.copies, "copies", nil, "copy counts per candidate (repeatable)")
	cmd.Flags().IntVarP(&f.workers, "workers", "j", 0, "parallel evaluations")
	cmd.Flags().IntVar(&f.candidates, "candidates", 0, "stop after this many candidates (0: whole space)")
	cmd.Flags().IntVar(&f.topN, "top", 0, "number of records kept")
}

func (f *searchFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	s := &cfg.Search
	if f.mode != "" {
		s.Mode = f.mode
	}
	if cmd.Flags().Changed("seed") {
		s.Seed = f.seed
	}
	if f.samples != 0 {
		s.Samples = f.samples
	}
	if len(f.anglesDeg) > 0 {
		s.Angles = nil
		s.AnglesDeg = f.anglesDeg
	}
	if len(f.copies) > 0 {
		s.Copies = f.copies
	}
	if f.workers != 0 {
		s.Workers = f.workers
	}
	if f.candidates != 0 {
		s.Candidates = f.candidates
	}
	if f.topN != 0 {
		s.TopN = f.topN
	}
}

// searchCommand creates the search command.
func (c *CLI) searchCommand() *cobra.Command {
	var (
		flags  runFlags
		sflags searchFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "search [bases...]",
		Short: "Search transformed unions of base graphs for a higher chromatic number",
		Long: `Search forms candidates by uniting a base point set with rotated and shifted
copies of another, and ranks those whose chromatic number exceeds the best
base. Candidates whose estimate stays undecided are listed separately.

The same bases, configuration and seed give the same records regardless of
--workers.`,
		Example: `  chromaplane search rhombus.txt --mode aligned
  chromaplane search spindle.txt --config run.toml -j 8 -o records.json
  chromaplane search spindle.txt --mode grid --angle 0 --angle 33.557 --copies 2,3`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load()
			if err != nil {
				return err
			}
			sflags.apply(cmd, cfg)
			if err := cfg.Validate(); err != nil {
				return err
			}
			return c.runSearch(cmd.Context(), args, cfg, flags.refresh, output)
		},
	}

	flags.register(cmd)
	sflags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "write ranked records to this file (JSON)")

	return cmd
}

func (c *CLI) runSearch(ctx context.Context, inputs []string, cfg *config.Config, refresh bool, output string) error {
	bases := make([][]udg.Point, len(inputs))
	for i, in := range inputs {
		pts, err := pointset.ImportPoints(in)
		if err != nil {
			return err
		}
		bases[i] = pts
	}

	runner := c.newRunner(ctx, cfg)
	defer runner.Close()

	space := cfg.SearchSpace()
	budget := cfg.SearchBudget()
	c.Logger.Debug("search space",
		"mode", space.Mode, "seed", space.Seed, "angles", len(space.Angles),
		"copies", space.Copies, "workers", budget.Workers)

	var spin *Spinner
	if c.Logger.GetLevel() > log.DebugLevel {
		spin = newSpinner(ctx, os.Stderr, fmt.Sprintf("Searching %s space...", space.Mode))
		spin.Start()
	}
	prog := newProgress(c.Logger)
	res, hit, err := runner.SearchWithCacheInfo(ctx, bases, space, budget, refresh)
	if spin != nil {
		spin.Stop()
	}
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Searched %d candidates", res.Stats.Generated))

	fmt.Fprintln(c.Out, StyleTitle.Render("run "+res.RunID))
	status := iconFresh
	if hit {
		status = iconCached
	}
	printDetail(c.Out, "mode %s · seed %d · base chi %d · %s", res.Mode, res.Seed, res.BaseChi, status)
	printDetail(c.Out, "generated %d · discarded %d · evaluated %d · recorded %d · undecided %d",
		res.Stats.Generated, res.Stats.Discarded, res.Stats.FullyEvaluated, res.Stats.Recorded, res.Stats.Undecided)

	if !res.BaseExact {
		printWarning(c.Out, "base chi %d is only a lower bound; a base estimate is undecided", res.BaseChi)
	}
		if best, ok := res.Best(); ok {
		printRecords(c.Out, res.Records)
		printSuccess(c.Out, "Best candidate #%d has chi=%d with %d vertices", best.Candidate, best.K, best.Vertices)
	} else {
		printInfo(c.Out, "No candidate exceeded chi=%d", res.BaseChi)
	}
	if len(res.Undecided) > 0 {
		printWarning(c.Out, "%d candidates undecided; raise --node-budget or --exact-limit", len(res.Undecided))
		printRecords(c.Out, res.Undecided)
	}

	if output != "" {
		if err := pointset.ExportRecords(output, res.Records); err != nil {
			return err
		}
		printFile(c.Out, output)
	}
	return nil
}

// degrees converts radians for display.
func degrees(rad float64) float64 { return rad * 180 / math.Pi }
