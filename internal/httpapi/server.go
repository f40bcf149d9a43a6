// Package httpapi contains slidedeck's HTTP API.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"slidedeck/internal/logger"
	"slidedeck/internal/services"
)

const (
	middlewareTimeout = 30 * time.Second
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 15 * time.Second
)

// NewRouter builds the API router from the services in registry.
func NewRouter(registry *services.Registry) (http.Handler, error) {
	config, err := registry.ConfigurationService()
	if err != nil {
		return nil, fmt.Errorf("failed to get configuration service: %w", err)
	}
	layouts, err := registry.LayoutCatalogService()
	if err != nil {
		return nil, fmt.Errorf("failed to get layout catalog service: %w", err)
	}

	r := chi.NewRouter()
	r.Use(
		assignRequestID,
		middleware.RequestID,
		echoRequestID,
		middleware.Recoverer,
		requestLogMiddleware(logger.NewStyledLogger("HTTP")),
		middleware.Timeout(middlewareTimeout),
		headersMiddleware,
	)

	routers := map[string]http.Handler{
		"/health":               HealthcheckRouter(),
		"/api/version":          VersionRouter(),
		"/api/has-required-key": HasRequiredKeyRouter(config),
		"/api/layouts":          LayoutsRouter(layouts),
	}
	for prefix, router := range routers {
		r.Mount(prefix, router)
	}

	return r, nil
}

func headersMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/") {
			w.Header().Set("Content-Type", "application/json")
		}
		next.ServeHTTP(w, r)
	})
}

// Serve starts the server on address and serves the API until ctx is cancelled.
// It is assumed that the caller sets up appropriate signal handling.
func Serve(ctx context.Context, address string, registry *services.Registry) error {
	handler, err := NewRouter(registry)
	if err != nil {
		return err
	}

	srv := &http.Server{
		BaseContext:       func(net.Listener) context.Context { return ctx },
		Addr:              address,
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	listener, err := net.Listen("tcp", address)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", address, err)
	}

	logger.Info("Starting HTTP server", "address", listener.Addr().String())

	serveErr := make(chan error, 1)
	go func() {
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server stopped with error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	logger.Info("HTTP server stopped")
	return nil
}
