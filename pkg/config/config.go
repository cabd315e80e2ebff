// Package config loads chromaplane run configuration from TOML.
//
// A run file has one table per stage; every key is optional:
//
//	[graph]
//	tolerance = 1e-9
//
//	[estimator]
//	exact_limit = 400
//	node_budget = 2000000
//
//	[critical]
//	order = "index"
//
//	[search]
//	mode = "aligned"
//	seed = 7
//	copies = [2, 3]
//	workers = 4
//	top_n = 10
//
//	[cache]
//	backend = "file"
//	ttl = "720h"
//
// Angles are given in degrees (angles_deg) or radians (angles); both lists
// are merged. Unknown keys are rejected so typos do not silently fall back
// to defaults.
package config

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/chromaplane/pkg/chroma"
	"github.com/matzehuels/chromaplane/pkg/critical"
	cperrors "github.com/matzehuels/chromaplane/pkg/errors"
	"github.com/matzehuels/chromaplane/pkg/search"
	"github.com/matzehuels/chromaplane/pkg/udg"
)

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Config is a complete run configuration.
type Config struct {
	Graph     GraphConfig     `toml:"graph"`
	Estimator EstimatorConfig `toml:"estimator"`
	Critical  CriticalConfig  `toml:"critical"`
	Search    SearchConfig    `toml:"search"`
	Cache     CacheConfig     `toml:"cache"`
}

type GraphConfig struct {
	Tolerance float64 `toml:"tolerance"`
}

type EstimatorConfig struct {
	ExactLimit int   `toml:"exact_limit"`
	NodeBudget int64 `toml:"node_budget"`
}

type CriticalConfig struct {
	Order  string `toml:"order"`
	Verify bool   `toml:"verify"`
}

type SearchConfig struct {
	Mode       string      `toml:"mode"`
	Seed       uint64      `toml:"seed"`
	Samples    int         `toml:"samples"`
	Angles     []float64   `toml:"angles"`
	AnglesDeg  []float64   `toml:"angles_deg"`
	Offsets    [][]float64 `toml:"offsets"`
	OffsetBox  float64     `toml:"offset_box"`
	Copies     []int       `toml:"copies"`
	AlignPairs int         `toml:"align_pairs"`
	Workers    int         `toml:"workers"`
	TopN       int         `toml:"top_n"`
	BatchSize  int         `toml:"batch_size"`
	Candidates int         `toml:"candidates"`
}

type CacheConfig struct {
	Backend       string   `toml:"backend"`
	Dir           string   `toml:"dir"`
	RedisAddr     string   `toml:"redis_addr"`
	RedisPassword string   `toml:"redis_password"`
	RedisDB       int      `toml:"redis_db"`
	TTL           Duration `toml:"ttl"`
}

// Duration is a time.Duration written as a Go duration string ("36h").
type Duration struct{ time.Duration }

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// Default returns a configuration with every default applied.
func Default() *Config {
	c := &Config{}
	c.SetDefaults()
	return c
}

// Load reads, defaults and validates the run file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, cperrors.Wrap(cperrors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes, defaults and validates TOML run configuration.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	md, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&cfg)
	if err != nil {
		return nil, cperrors.Wrap(cperrors.ErrCodeInvalidConfig, err, "decode config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, cperrors.New(cperrors.ErrCodeInvalidConfig, "unknown config keys: %s", strings.Join(keys, ", "))
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SetDefaults fills zero-valued fields.
func (c *Config) SetDefaults() {
	if c.Graph.Tolerance == 0 {
		c.Graph.Tolerance = search.DefaultTolerance
	}
	if c.Estimator.ExactLimit == 0 {
		c.Estimator.ExactLimit = chroma.DefaultExactLimit
	}
	if c.Estimator.NodeBudget == 0 {
		c.Estimator.NodeBudget = chroma.DefaultNodeBudget
	}
	if c.Critical.Order == "" {
		c.Critical.Order = string(critical.OrderIndex)
	}
	if c.Search.Mode == "" {
		c.Search.Mode = string(search.DefaultMode)
	}
	if len(c.Search.Copies) == 0 {
		c.Search.Copies = []int{search.DefaultCopies}
	}
	if c.Search.Mode == string(search.ModeRandom) && c.Search.Samples == 0 {
		c.Search.Samples = search.DefaultSamples
	}
	if c.Search.Workers == 0 {
		c.Search.Workers = search.DefaultWorkers
	}
	if c.Search.TopN == 0 {
		c.Search.TopN = search.DefaultTopN
	}
	if c.Search.BatchSize == 0 {
		c.Search.BatchSize = search.DefaultBatchSize
	}
	if c.Cache.Backend == "" {
		c.Cache.Backend = BackendFile
	}
	if c.Cache.Backend == BackendRedis && c.Cache.RedisAddr == "" {
		c.Cache.RedisAddr = "localhost:6379"
	}
}

// Validate checks the configuration after defaults have been applied.
func (c *Config) Validate() error {
	if err := cperrors.ValidateTolerance(c.Graph.Tolerance); err != nil {
		return err
	}
	opts := c.CriticalOptions()
	if err := opts.Validate(); err != nil {
		return cperrors.Wrap(cperrors.ErrCodeInvalidConfig, err, "critical")
	}
	for i, off := range c.Search.Offsets {
		if len(off) != 2 {
			return cperrors.New(cperrors.ErrCodeInvalidConfig, "search.offsets[%d]: want [x, y]", i)
		}
	}
	for _, a := range c.Search.AnglesDeg {
		if math.IsNaN(a) || math.IsInf(a, 0) {
			return cperrors.New(cperrors.ErrCodeInvalidConfig, "search.angles_deg: angle is not finite")
		}
	}
	if c.Search.Workers < 0 || c.Search.TopN < 0 || c.Search.BatchSize < 0 || c.Search.Candidates < 0 {
		return cperrors.New(cperrors.ErrCodeInvalidConfig, "search: workers, top_n, batch_size and candidates must not be negative")
	}
	space := c.SearchSpace()
	if c.Search.Mode != string(search.ModeGrid) || len(space.Angles) > 0 {
		if err := space.Validate(); err != nil {
			return cperrors.Wrap(cperrors.ErrCodeInvalidConfig, err, "search")
		}
	}
	switch c.Cache.Backend {
	case BackendFile, BackendRedis, BackendNone:
	default:
		return cperrors.New(cperrors.ErrCodeInvalidConfig, "cache.backend: %q (must be file, redis or none)", c.Cache.Backend)
	}
	if c.Cache.TTL.Duration < 0 {
		return cperrors.New(cperrors.ErrCodeInvalidConfig, "cache.ttl must not be negative")
	}
	return nil
}

// EstimatorOptions returns the estimator settings.
func (c *Config) EstimatorOptions() chroma.Options {
	return chroma.Options{ExactLimit: c.Estimator.ExactLimit, NodeBudget: c.Estimator.NodeBudget}
}

// CriticalOptions returns the reducer settings.
func (c *Config) CriticalOptions() critical.Options {
	return critical.Options{
		Order:      critical.Order(c.Critical.Order),
		Verify:     c.Critical.Verify,
		ExactLimit: c.Estimator.ExactLimit,
		NodeBudget: c.Estimator.NodeBudget,
	}
}

// SearchSpace returns the transform space; degree angles are converted to
// radians and appended after the radian list.
func (c *Config) SearchSpace() search.Space {
	angles := append([]float64(nil), c.Search.Angles...)
	for _, d := range c.Search.AnglesDeg {
		angles = append(angles, d*math.Pi/180)
	}
	var offsets []udg.Point
	for _, off := range c.Search.Offsets {
		if len(off) == 2 {
			offsets = append(offsets, udg.Pt(off[0], off[1]))
		}
	}
	return search.Space{
		Mode:       search.Mode(c.Search.Mode),
		Seed:       c.Search.Seed,
		Tolerance:  c.Graph.Tolerance,
		Angles:     angles,
		Offsets:    offsets,
		OffsetBox:  c.Search.OffsetBox,
		Copies:     append([]int(nil), c.Search.Copies...),
		Samples:    c.Search.Samples,
		AlignPairs: c.Search.AlignPairs,
	}
}

// SearchBudget returns the search budget.
func (c *Config) SearchBudget() search.Budget {
	return search.Budget{
		Candidates: c.Search.Candidates,
		Workers:    c.Search.Workers,
		TopN:       c.Search.TopN,
		BatchSize:  c.Search.BatchSize,
		NodeBudget: c.Estimator.NodeBudget,
		ExactLimit: c.Estimator.ExactLimit,
	}
}
