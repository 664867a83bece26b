package app

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/vk/texo/internal/ctxlog"
	"github.com/vk/texo/internal/diag"
	"github.com/vk/texo/internal/export"
	"github.com/vk/texo/internal/extract"
)

// Run executes the extraction pipeline: it builds the relationship
// hierarchies from the loaded snapshot, writes the result, and, when a serve
// port is configured, serves it over HTTP until the context is cancelled.
func (a *App) Run(ctx context.Context) error {
	runID := uuid.NewString()
	ctx = ctxlog.WithLogger(ctx, a.logger.With("run_id", runID))
	logger := ctxlog.FromContext(ctx)
	logger.Debug("App.Run method started.")

	logger.Info("Extracting taxonomy metadata...", "concepts", len(a.source.Concepts()))
	result := extract.Extract(ctx, a.source, extract.Options{
		MaxDepth: a.config.MaxDepth,
		Observer: diag.NewLogging(a.metrics),
	})
	a.setResult(result)
	logger.Info("Extraction finished.",
		"presentation_roots", result.Presentation.Len(),
		"dimension_roots", result.Dimensions.Len(),
		"formula_roots", result.Formulas.Len(),
	)

	if err := export.WriteTo(ctx, a.config.OutPath, a.outW, result); err != nil {
		return fmt.Errorf("failed to write result: %w", err)
	}

	if a.config.ServePort > 0 {
		return a.serve(ctx)
	}

	logger.Debug("App.Run method finished.")
	return nil
}
