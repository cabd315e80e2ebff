package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/chromaplane/pkg/pipeline"
	"github.com/matzehuels/chromaplane/pkg/pointset"
	"github.com/matzehuels/chromaplane/pkg/render"
)

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		flags    runFlags
		output   string
		format   string
		plain    bool
		critical bool
		labels   bool
		scale    float64
	)

	cmd := &cobra.Command{
		Use:   "render [points]",
		Short: "Draw a unit-distance graph with its witness coloring",
		Long: `Render draws the graph at its true coordinates with Graphviz (neato, pinned
positions). Vertices are filled with the witness coloring of the chromatic
number estimate; --critical outlines a critical subgraph.

The format follows the output extension (.dot, .svg, .png) unless --format
is given.`,
		Example: `  chromaplane render spindle.txt -o spindle.svg
  chromaplane render golomb.json -o golomb.png --critical --labels`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := outputFormat(format, output)
			if err != nil {
				return err
			}
			ropts := pipeline.RenderOptions{Format: f, Colored: !plain, Labels: labels, Scale: scale}
			return c.runRender(cmd.Context(), args[0], &flags, critical, ropts, output)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: input name with the format's extension)")
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: dot, svg or png")
	cmd.Flags().BoolVar(&plain, "plain", false, "draw without the witness coloring")
	cmd.Flags().BoolVar(&critical, "critical", false, "outline a critical subgraph")
	cmd.Flags().BoolVar(&labels, "labels", false, "print vertex ids")
	cmd.Flags().Float64Var(&scale, "scale", 0, "inches per unit distance")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, input string, flags *runFlags, critical bool, ropts pipeline.RenderOptions, output string) error {
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
	res, err := runner.Execute(ctx, points, opts)
	if err != nil {
		return err
	}
	if res.Critical != nil {
		ropts.Highlight = res.Critical.Vertices
	}

	prog := newProgress(c.Logger)
	data, hit, err := runner.RenderWithCacheInfo(ctx, res.Analysis, ropts)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Rendered %s", ropts.Format))

	if output == "" {
		output = strings.TrimSuffix(input, filepath.Ext(input)) + "." + string(ropts.Format)
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}

	fmt.Fprintln(c.Out, StyleTitle.Render(input))
	printStats(c.Out, res.Analysis.Vertices, res.Analysis.Edges, hit)
	printEstimate(c.Out, res.Analysis.Estimate)
	printFile(c.Out, output)
	return nil
}

// outputFormat resolves the render format from the flag or the output
// extension, defaulting to SVG.
func outputFormat(flag, output string) (render.Format, error) {
	if flag != "" {
		return render.ParseFormat(flag)
	}
	if ext := strings.TrimPrefix(filepath.Ext(output), "."); ext != "" {
		return render.ParseFormat(strings.ToLower(ext))
	}
	return render.FormatSVG, nil
}
