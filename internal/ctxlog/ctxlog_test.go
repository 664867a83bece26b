package ctxlog

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithLoggerAndFromContext(t *testing.T) {
	t.Parallel()

	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	ctx := WithLogger(context.Background(), logger)

	assert.Same(t, logger, FromContext(ctx))
}

func TestFromContext_PanicsWithoutLogger(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		FromContext(context.Background())
	})
}

func TestWith_AddsFields(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	logger := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	ctx := WithLogger(context.Background(), logger)

	ctx = With(ctx, "arcrole", "parent-child")
	FromContext(ctx).Info("scope started")

	require.Contains(t, buf.String(), "arcrole=parent-child")
}
