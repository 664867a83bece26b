package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vk/texo/internal/ctxlog"
	"github.com/vk/texo/internal/diag"
	"github.com/vk/texo/internal/extract"
	"github.com/vk/texo/internal/taxonomy"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	config   *Config
	source   taxonomy.Source
	registry *prometheus.Registry
	metrics  *diag.Metrics

	mu         sync.RWMutex
	result     *extract.Result
	httpServer *http.Server
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger and metrics registry,
// and the taxonomy snapshot already loaded.
func NewApp(outW io.Writer, config *Config, loader taxonomy.Loader) *App {
	logger := newLogger(config.LogLevel, config.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	source, err := loader.Load(ctx, config.SnapshotPath)
	if err != nil {
		// A failure to load the snapshot is a fatal startup error.
		panic(fmt.Errorf("failed to load taxonomy snapshot: %w", err))
	}
	logger.Debug("Taxonomy snapshot loaded.", "path", config.SnapshotPath, "concepts", len(source.Concepts()))

	registry := prometheus.NewRegistry()
	metrics := diag.NewMetrics(registry)
	logger.Debug("Metrics registry initialized.")

	return &App{
		outW:     outW,
		logger:   logger,
		config:   config,
		source:   source,
		registry: registry,
		metrics:  metrics,
	}
}

// Result returns the latest extraction result. It is nil until Run completes
// an extraction pass.
func (a *App) Result() *extract.Result {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.result
}

func (a *App) setResult(r *extract.Result) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.result = r
}
