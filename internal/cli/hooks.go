package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/chromaplane/pkg/observability"
)

// logHooks reports library events through the CLI logger: improvements of
// the search at info level, everything else at debug level.
type logHooks struct {
	logger *log.Logger
}

func (h logHooks) OnOracleStart(context.Context, string, int, int) {}

func (h logHooks) OnOracleComplete(_ context.Context, kind string, vertices, k int, status string, nodes int64, d time.Duration) {
	h.logger.Debug("oracle", "kind", kind, "vertices", vertices, "k", k, "status", status, "nodes", nodes, "duration", d.Round(time.Microsecond))
}

func (h logHooks) OnCandidate(_ context.Context, index int, state string, k int) {
	h.logger.Debug("candidate", "index", index, "state", state, "k", k)
}

func (h logHooks) OnBest(_ context.Context, index int, k int) {
	h.logger.Info("new best", "candidate", index, "chi", k)
}

func (h logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

// installHooks routes observability events to the CLI logger.
func (c *CLI) installHooks() {
	h := logHooks{logger: c.Logger}
	observability.SetOracleHooks(h)
	observability.SetSearchHooks(h)
	observability.SetCacheHooks(h)
}
