package cache

// Keyer derives cache keys. Every option that can change a result must be
// part of its key.
type Keyer interface {
	// EstimateKey keys a chromatic-number estimate of a graph.
	EstimateKey(graphHash string, opts EstimateKeyOpts) string

	// CriticalKey keys a critical-subgraph reduction.
	CriticalKey(graphHash string, opts CriticalKeyOpts) string

	// SearchKey keys a whole search run over hashed bases.
	SearchKey(basesHash string, opts SearchKeyOpts) string

	// ArtifactKey keys a rendered drawing of a graph.
	ArtifactKey(graphHash string, opts ArtifactKeyOpts) string
}

// EstimateKeyOpts are the estimator options that affect an estimate.
type EstimateKeyOpts struct {
	ExactLimit int   `json:"exact_limit"`
	NodeBudget int64 `json:"node_budget"`
}

// CriticalKeyOpts are the reducer options that affect a reduction.
type CriticalKeyOpts struct {
	Chi        int    `json:"chi"`
	Order      string `json:"order"`
	ExactLimit int    `json:"exact_limit"`
	NodeBudget int64  `json:"node_budget"`
}

// SearchKeyOpts carries the search space and budget in canonical form.
// Workers is deliberately absent: results do not depend on it.
type SearchKeyOpts struct {
	Space      any   `json:"space"`
	Candidates int   `json:"candidates"`
	TopN       int   `json:"top_n"`
	BatchSize  int   `json:"batch_size"`
	ExactLimit int   `json:"exact_limit"`
	NodeBudget int64 `json:"node_budget"`
}

// ArtifactKeyOpts describe a rendering. Coloring is the witness hash, empty
// for an uncolored drawing.
type ArtifactKeyOpts struct {
	Format    string  `json:"format"`
	Coloring  string  `json:"coloring,omitempty"`
	Highlight string  `json:"highlight,omitempty"`
	Labels    bool    `json:"labels"`
	Scale     float64 `json:"scale"`
}

// DefaultKeyer hashes the options into the key.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() *DefaultKeyer { return &DefaultKeyer{} }

func (DefaultKeyer) EstimateKey(graphHash string, opts EstimateKeyOpts) string {
	return hashKey("estimate", graphHash, opts)
}

func (DefaultKeyer) CriticalKey(graphHash string, opts CriticalKeyOpts) string {
	return hashKey("critical", graphHash, opts)
}

func (DefaultKeyer) SearchKey(basesHash string, opts SearchKeyOpts) string {
	return hashKey("search", basesHash, opts)
}

func (DefaultKeyer) ArtifactKey(graphHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", graphHash, opts)
}

var _ Keyer = DefaultKeyer{}
