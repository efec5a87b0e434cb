// Package server assembles the gin engine and runs it with graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"soundwave/internal/handlers"
	"soundwave/internal/middleware"
	"soundwave/internal/monitoring"
	"soundwave/internal/utils"
)

// DefaultShutdownTimeout bounds graceful shutdown when the context is cancelled.
const DefaultShutdownTimeout = 10 * time.Second

// NewRouter builds the engine with the global middleware chain and every
// route mounted.
func NewRouter(h *handlers.Handler, tokens *utils.TokenManager, corsOrigins []string, logger *log.Logger) (*gin.Engine, error) {
	cors, err := middleware.CORSMiddleware(corsOrigins, logger)
	if err != nil {
		return nil, fmt.Errorf("configure cors: %w", err)
	}

	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestIDMiddleware(logger),
		monitoring.RequestMetricsMiddleware(),
		cors,
	)
	h.Mount(router, middleware.AuthMiddleware(tokens))
	return router, nil
}

// Config controls the HTTP server runtime behaviour.
type Config struct {
	Server          *http.Server
	ShutdownTimeout time.Duration
	Ready           chan<- struct{}
	Logger          *log.Logger
}

// Run starts the server and blocks until it stops. Cancelling ctx triggers a
// graceful shutdown bounded by ShutdownTimeout.
func Run(ctx context.Context, cfg Config) error {
	if cfg.Server == nil {
		return errors.New("server is required")
	}
	timeout := cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = DefaultShutdownTimeout
	}

	ln, err := net.Listen("tcp", cfg.Server.Addr)
	if err != nil {
		return err
	}
	if cfg.Logger != nil {
		cfg.Logger.Info("api listening", "addr", ln.Addr().String())
	}
	if cfg.Ready != nil {
		close(cfg.Ready)
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- cfg.Server.Serve(ln)
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	if cfg.Logger != nil {
		cfg.Logger.Info("shutting down", "timeout", timeout)
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	shutdownErr := cfg.Server.Shutdown(shutdownCtx)

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-shutdownCtx.Done():
		if shutdownErr != nil {
			return shutdownErr
		}
		return shutdownCtx.Err()
	}
	return shutdownErr
}
