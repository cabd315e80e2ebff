// Package cli implements the chromaplane command-line interface.
//
// # Commands
//
//   - analyze: build the unit-distance graph of a point file and estimate its chromatic number
//   - reduce: shrink a graph of known chromatic number to a critical subgraph
//   - search: combine base point sets into candidates with a higher chromatic number
//   - render: draw a graph with its witness coloring (DOT, SVG or PNG)
//   - cache: manage the result cache
//
// All commands support --verbose (-v) for debug-level logging. Run
// settings come from a TOML file (--config); flags override it.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/chromaplane/pkg/buildinfo"
	"github.com/matzehuels/chromaplane/pkg/cache"
	"github.com/matzehuels/chromaplane/pkg/config"
	"github.com/matzehuels/chromaplane/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "chromaplane"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Out receives command results; logs go to the logger.
	Out io.Writer
}

// New creates a new CLI instance writing logs to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Out:    os.Stdout,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Chromaplane computes chromatic numbers of unit-distance graphs",
		Long:         `Chromaplane builds unit-distance graphs from planar point sets, determines or bounds their chromatic number, reduces them to critical subgraphs and searches for new graphs of higher chromatic number.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c.installHooks()
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.analyzeCommand())
	root.AddCommand(c.reduceCommand())
	root.AddCommand(c.searchCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Shared Flags
// =============================================================================

// runFlags are the flags shared by commands that run the pipeline.
type runFlags struct {
	config     string
	tolerance  float64
	exactLimit int
	nodeBudget int64
	noCache    bool
	refresh    bool
}

func (f *runFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.config, "config", "c", "", "TOML run configuration")
	cmd.Flags().Float64Var(&f.tolerance, "tolerance", 0, "unit-distance tolerance (default from config, 1e-9)")
	cmd.Flags().IntVar(&f.exactLimit, "exact-limit", 0, "largest graph handed to the SAT oracle; negative disables it")
	cmd.Flags().Int64Var(&f.nodeBudget, "node-budget", 0, "search-tree node budget of each heuristic call")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable the result cache")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "ignore cached results")
}

// load reads the configuration and applies flag overrides.
func (f *runFlags) load() (*config.Config, error) {
	cfg := config.Default()
	if f.config != "" {
		var err error
		if cfg, err = config.Load(f.config); err != nil {
			return nil, err
		}
	}
	if f.tolerance != 0 {
		cfg.Graph.Tolerance = f.tolerance
	}
	if f.exactLimit != 0 {
		cfg.Estimator.ExactLimit = f.exactLimit
	}
	if f.nodeBudget != 0 {
		cfg.Estimator.NodeBudget = f.nodeBudget
	}
	if f.noCache {
		cfg.Cache.Backend = config.BackendNone
	}
	return cfg, cfg.Validate()
}

// options converts the configuration into pipeline options.
func (f *runFlags) options(cfg *config.Config) pipeline.Options {
	return pipeline.Options{
		Tolerance:  cfg.Graph.Tolerance,
		ExactLimit: cfg.Estimator.ExactLimit,
		NodeBudget: cfg.Estimator.NodeBudget,
		Order:      cfg.CriticalOptions().Order,
		Verify:     cfg.Critical.Verify,
		Refresh:    f.refresh,
		TTL:        cfg.Cache.TTL.Duration,
	}
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner backed by the configured cache. A
// cache that cannot be opened is logged and replaced by no cache.
func (c *CLI) newRunner(ctx context.Context, cfg *config.Config) *pipeline.Runner {
	dir, err := cacheDir()
	if err != nil {
		dir = ""
	}
	store, err := cfg.OpenCache(ctx, dir)
	if err != nil {
		c.Logger.Warn("cache unavailable, continuing without", "backend", cfg.Cache.Backend, "error", err)
		store = cache.NewNullCache()
	}
	return pipeline.NewRunner(store, cache.NewScopedKeyer(nil, buildinfo.Version+":"), c.Logger)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/chromaplane/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
