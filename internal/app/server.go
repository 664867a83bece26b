package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vk/texo/internal/ctxlog"
	"github.com/vk/texo/internal/export"
)

// healthHandler reports liveness. The snapshot is loaded in the constructor,
// so a running server is always healthy.
func (a *App) healthHandler(w http.ResponseWriter, r *http.Request) {
	a.logger.Debug("Health check endpoint hit.", "remote_addr", r.RemoteAddr, "path", r.URL.Path)
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "OK")
}

// taxonomyHandler serves the latest extraction result as JSON.
func (a *App) taxonomyHandler(w http.ResponseWriter, r *http.Request) {
	a.logger.Debug("Taxonomy endpoint hit.", "remote_addr", r.RemoteAddr)

	result := a.Result()
	if result == nil {
		http.Error(w, "extraction has not completed", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := export.Write(w, result); err != nil {
		a.logger.Error("Failed to serve taxonomy result", "error", err)
	}
}

// serve runs the HTTP server until ctx is cancelled, then shuts it down
// gracefully.
func (a *App) serve(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Configuring HTTP server.")

	mux := http.NewServeMux()
	mux.HandleFunc("/health", a.healthHandler)
	mux.HandleFunc("/taxonomy", a.taxonomyHandler)
	mux.Handle("/metrics", promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{}))

	addr := fmt.Sprintf(":%d", a.config.ServePort)
	a.httpServer = &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("🩺 HTTP server starting", "address", fmt.Sprintf("http://localhost%s/taxonomy", addr))
		// ListenAndServe returns http.ErrServerClosed on graceful shutdown;
		// only real failures go to the channel.
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("HTTP server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger.Info("🩺 Shutting down HTTP server...")
	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", "error", err)
		return err
	}

	logger.Debug("HTTP server shut down gracefully.")
	return nil
}
