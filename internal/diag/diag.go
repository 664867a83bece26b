// Package diag defines the observer the extraction engine notifies at its
// diagnostic extension points: a relationship skipped, a cycle truncated, the
// formula depth cap hit, a scope with no relationships. The engine never
// prints; it reports here and moves on.
package diag

import (
	"context"

	"github.com/vk/texo/internal/ctxlog"
)

// Skip reasons reported through EdgeSkipped.
const (
	ReasonMissingEndpoint = "parent or child is missing"
	ReasonMissingQName    = "missing qname"
)

// Observer receives data-quality events from the hierarchy builder and the
// formula walker. All events are non-fatal by contract; implementations must
// not panic or block.
type Observer interface {
	// EdgeSkipped reports one relationship dropped during edge collection.
	EdgeSkipped(ctx context.Context, arcRole, linkRole, reason string)
	// CycleTruncated reports a node skipped because it was already on the
	// current descent path.
	CycleTruncated(ctx context.Context, arcRole, linkRole, node string)
	// DepthExceeded reports a formula descent stopped at the depth cap.
	DepthExceeded(ctx context.Context, label string, depth int)
	// EmptyScope reports an arc-role or link-role query with no relationships.
	EmptyScope(ctx context.Context, arcRole, linkRole string)
}

// Nop discards every event. It is the silent-collector variant: extraction
// behaves identically, diagnostics simply vanish.
type Nop struct{}

func (Nop) EdgeSkipped(context.Context, string, string, string)    {}
func (Nop) CycleTruncated(context.Context, string, string, string) {}
func (Nop) DepthExceeded(context.Context, string, int)             {}
func (Nop) EmptyScope(context.Context, string, string)             {}

// Logging writes each event to the context logger and, when metrics are
// attached, increments the matching counter.
type Logging struct {
	metrics *Metrics
}

// NewLogging returns a Logging observer. metrics may be nil.
func NewLogging(metrics *Metrics) *Logging {
	return &Logging{metrics: metrics}
}

func (l *Logging) EdgeSkipped(ctx context.Context, arcRole, linkRole, reason string) {
	ctxlog.FromContext(ctx).Warn("Relationship skipped.",
		"arcrole", arcRole, "link_role", linkRole, "reason", reason)
	if l.metrics != nil {
		l.metrics.EdgesSkipped.WithLabelValues(reason).Inc()
	}
}

func (l *Logging) CycleTruncated(ctx context.Context, arcRole, linkRole, node string) {
	ctxlog.FromContext(ctx).Warn("Cycle truncated.",
		"arcrole", arcRole, "link_role", linkRole, "node", node)
	if l.metrics != nil {
		l.metrics.CyclesTruncated.Inc()
	}
}

func (l *Logging) DepthExceeded(ctx context.Context, label string, depth int) {
	ctxlog.FromContext(ctx).Warn("Max recursion depth reached.",
		"label", label, "depth", depth)
	if l.metrics != nil {
		l.metrics.DepthExceeded.Inc()
	}
}

func (l *Logging) EmptyScope(ctx context.Context, arcRole, linkRole string) {
	ctxlog.FromContext(ctx).Info("No relationships found for scope.",
		"arcrole", arcRole, "link_role", linkRole)
	if l.metrics != nil {
		l.metrics.EmptyScopes.Inc()
	}
}

// Recorder captures events for assertions in tests.
type Recorder struct {
	Skipped   []string
	Cycles    []string
	Depths    []string
	EmptyURIs []string
}

func (r *Recorder) EdgeSkipped(_ context.Context, _, _, reason string) {
	r.Skipped = append(r.Skipped, reason)
}

func (r *Recorder) CycleTruncated(_ context.Context, _, _, node string) {
	r.Cycles = append(r.Cycles, node)
}

func (r *Recorder) DepthExceeded(_ context.Context, label string, _ int) {
	r.Depths = append(r.Depths, label)
}

func (r *Recorder) EmptyScope(_ context.Context, arcRole, _ string) {
	r.EmptyURIs = append(r.EmptyURIs, arcRole)
}
