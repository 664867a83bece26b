package diag

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/texo/internal/ctxlog"
)

func loggedContext(buf *bytes.Buffer) context.Context {
	logger := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return ctxlog.WithLogger(context.Background(), logger)
}

func TestLogging_WritesAndCounts(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)
	obs := NewLogging(metrics)

	buf := &bytes.Buffer{}
	ctx := loggedContext(buf)

	obs.EdgeSkipped(ctx, "arc", "role", ReasonMissingQName)
	obs.EdgeSkipped(ctx, "arc", "role", ReasonMissingQName)
	obs.CycleTruncated(ctx, "arc", "role", "x:A")
	obs.DepthExceeded(ctx, "va_1", 101)
	obs.EmptyScope(ctx, "arc", "")

	out := buf.String()
	require.Contains(t, out, "Relationship skipped.")
	require.Contains(t, out, "Cycle truncated.")
	require.Contains(t, out, "Max recursion depth reached.")
	require.Contains(t, out, "No relationships found for scope.")

	assert.Equal(t, float64(2), testutil.ToFloat64(metrics.EdgesSkipped.WithLabelValues(ReasonMissingQName)))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.CyclesTruncated))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.DepthExceeded))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.EmptyScopes))
}

func TestLogging_NilMetrics(t *testing.T) {
	t.Parallel()

	obs := NewLogging(nil)
	buf := &bytes.Buffer{}
	ctx := loggedContext(buf)

	assert.NotPanics(t, func() {
		obs.EdgeSkipped(ctx, "arc", "", ReasonMissingEndpoint)
		obs.CycleTruncated(ctx, "arc", "", "n")
		obs.DepthExceeded(ctx, "l", 1)
		obs.EmptyScope(ctx, "arc", "")
	})
}

func TestRecorder(t *testing.T) {
	t.Parallel()

	r := &Recorder{}
	ctx := context.Background()

	r.EdgeSkipped(ctx, "a", "b", ReasonMissingEndpoint)
	r.CycleTruncated(ctx, "a", "b", "n1")
	r.DepthExceeded(ctx, "va_1", 5)
	r.EmptyScope(ctx, "arc-x", "")

	assert.Equal(t, []string{ReasonMissingEndpoint}, r.Skipped)
	assert.Equal(t, []string{"n1"}, r.Cycles)
	assert.Equal(t, []string{"va_1"}, r.Depths)
	assert.Equal(t, []string{"arc-x"}, r.EmptyURIs)
}
