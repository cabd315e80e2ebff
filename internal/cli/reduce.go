package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/chromaplane/pkg/critical"
	cperrors "github.com/matzehuels/chromaplane/pkg/errors"
	"github.com/matzehuels/chromaplane/pkg/pointset"
)

// reduceCommand creates the reduce command.
func (c *CLI) reduceCommand() *cobra.Command {
	var (
		flags  runFlags
		chi    int
		order  string
		verify bool
		output string
	)

	cmd := &cobra.Command{
		Use:   "reduce [points] --chi K",
		Short: "Reduce a graph of known chromatic number to a critical subgraph",
		Long: `Reduce deletes vertices one at a time, keeping each deletion only if the
rest still needs K colors, until no single vertex can go. K must be the
chromatic number of the input; --verify checks it with the SAT solver first.`,
		Example: `  chromaplane reduce golomb.json --chi 4 -o core.json
  chromaplane reduce candidate.json --chi 5 --order degree --verify`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runReduce(cmd.Context(), args[0], &flags, chi, order, verify, output)
		},
	}

	flags.register(cmd)
	cmd.Flags().IntVar(&chi, "chi", 0, "chromatic number of the input graph (required)")
	cmd.Flags().StringVar(&order, "order", "", "deletion order: index or degree (default from config, index)")
	cmd.Flags().BoolVar(&verify, "verify", false, "check chi with the SAT solver before reducing")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the subgraph's points to this file (JSON)")
	_ = cmd.MarkFlagRequired("chi")

	return cmd
}

func (c *CLI) runReduce(ctx context.Context, input string, flags *runFlags, chi int, order string, verify bool, output string) error {
	if chi < 0 {
		return cperrors.New(cperrors.ErrCodeInvalidArgument, "--chi must not be negative, got %d", chi)
	}
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
	if order != "" {
		opts.Order = critical.Order(order)
	}
	opts.Verify = opts.Verify || verify

	prog := newProgress(c.Logger)
	sub, hit, err := runner.ReduceWithCacheInfo(ctx, points, chi, opts)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Reduced %d points to %d", len(points), len(sub.Vertices)))

	fmt.Fprintln(c.Out, StyleTitle.Render(input))
	printStats(c.Out, sub.Graph.N(), sub.Graph.EdgeCount(), hit)
	printKeyValue(c.Out, "vertices", formatInts(sub.Vertices))
	if sub.Critical() {
		printSuccess(c.Out, "Locally vertex-critical, chi=%d certified", sub.Chi)
	} else {
		if !sub.Certified {
			printWarning(c.Out, "Subgraph too large to certify chi=%d exactly", sub.Chi)
		}
		if len(sub.Undecided) > 0 {
			printWarning(c.Out, "%d deletions undecided: %s", len(sub.Undecided), formatInts(sub.Undecided))
		}
	}

	if output != "" {
		if err := pointset.ExportPoints(output, sub.Graph.Points()); err != nil {
			return err
		}
		printFile(c.Out, output)
	}
	return nil
}
