package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/chromaplane/pkg/pointset"
	"github.com/matzehuels/chromaplane/pkg/udg"
)

// analyzeCommand creates the analyze command.
func (c *CLI) analyzeCommand() *cobra.Command {
	var (
		flags    runFlags
		witness  bool
		critical bool
		output   string
	)

	cmd := &cobra.Command{
		Use:   "analyze [points]",
		Short: "Estimate the chromatic number of a unit-distance graph",
		Long: `Analyze builds the unit-distance graph of a point file and determines its
chromatic number. Small graphs are decided exactly with a SAT solver; larger
ones get a budgeted search that may end with bounds marked "unknown".

Point files are JSON ({"points": [[x, y], ...]}) or plain text with one
"x y" or "x,y" pair per line.`,
		Example: `  chromaplane analyze spindle.txt
  chromaplane analyze golomb.json --witness --critical -o core.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runAnalyze(cmd.Context(), args[0], &flags, witness, critical, output)
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVarP(&witness, "witness", "w", false, "print the witness coloring")
	cmd.Flags().BoolVar(&critical, "critical", false, "also reduce to a critical subgraph")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the critical subgraph's points to this file (JSON)")

	return cmd
}

func (c *CLI) runAnalyze(ctx context.Context, input string, flags *runFlags, witness, critical bool, output string) error {
	cfg, err := flags.load()
	if err != nil {
		return err
	}
	points, err := pointset.ImportPoints(input)
	if err != nil {
		return err
	}

	runner := c.newRunner(ctx, cfg)
	defer runner.Close()

	opts := flags.options(cfg)
	opts.Critical = critical

	prog := newProgress(c.Logger)
	res, err := runner.Execute(ctx, points, opts)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Analyzed %d points", len(points)))

	a := res.Analysis
	fmt.Fprintln(c.Out, StyleTitle.Render(input))
	printStats(c.Out, a.Vertices, a.Edges, res.CacheInfo.AnalyzeHit)
	printEstimate(c.Out, a.Estimate)
	if witness && len(a.Estimate.Witness) > 0 {
		label := "witness"
		if !a.Estimate.Exact() {
			label = fmt.Sprintf("%d-coloring", a.Estimate.Upper)
		}
		printKeyValue(c.Out, label, formatInts(a.Estimate.Witness))
	}

	if !critical {
		return nil
	}
	if res.Critical == nil {
		printWarning(c.Out, "Chromatic number undetermined; no critical subgraph computed")
		return nil
	}

	sub := res.Critical
	printKeyValue(c.Out, "critical", fmt.Sprintf("%d vertices", len(sub.Vertices)))
	printDetail(c.Out, "%s", formatInts(sub.Vertices))
	switch {
	case sub.Critical():
		printSuccess(c.Out, "Locally vertex-critical, chi=%d certified", sub.Chi)
	case !sub.Certified:
		printWarning(c.Out, "Subgraph too large to certify chi=%d exactly", sub.Chi)
	}
	if len(sub.Undecided) > 0 {
		printWarning(c.Out, "%d deletions undecided: %s", len(sub.Undecided), formatInts(sub.Undecided))
	}

	if output != "" {
		pts := make([]udg.Point, len(sub.Vertices))
		for i, v := range sub.Vertices {
			pts[i] = a.Graph.Point(v)
		}
		if err := pointset.ExportPoints(output, pts); err != nil {
			return err
		}
		printFile(c.Out, output)
	}
	return nil
}
