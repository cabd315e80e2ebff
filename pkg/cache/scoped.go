package cache

// ScopedKeyer prefixes the keys of another keyer, giving separate
// namespaces on a shared backend (for example one per release, so a change
// in the algorithms never serves stale results).
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner, or a DefaultKeyer when inner is nil.
func NewScopedKeyer(inner Keyer, prefix string) *ScopedKeyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) EstimateKey(graphHash string, opts EstimateKeyOpts) string {
	return k.prefix + k.inner.EstimateKey(graphHash, opts)
}

func (k *ScopedKeyer) CriticalKey(graphHash string, opts CriticalKeyOpts) string {
	return k.prefix + k.inner.CriticalKey(graphHash, opts)
}

func (k *ScopedKeyer) SearchKey(basesHash string, opts SearchKeyOpts) string {
	return k.prefix + k.inner.SearchKey(basesHash, opts)
}

func (k *ScopedKeyer) ArtifactKey(graphHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(graphHash, opts)
}

var _ Keyer = (*ScopedKeyer)(nil)
