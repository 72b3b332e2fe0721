// Package server implements the HTTP introspection API.
//
// The server wraps a [GraphSource] and exposes the graph document, summary
// counts, export artifacts, and AI context documents over a chi router.
// Export artifacts are produced through the shared pipeline Runner, so
// responses are cached by graph content hash and served without recomputing
// when the graph is unchanged.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/archscope/archscope/pkg/cache"
	"github.com/archscope/archscope/pkg/config"
	"github.com/archscope/archscope/pkg/pipeline"
)

// Server hosts the HTTP introspection API around a graph source.
type Server struct {
	cfg        *config.Config
	logger     *log.Logger
	runner     *pipeline.Runner
	handlers   *Handlers
	httpServer *http.Server
}

// New assembles a server from configuration. The artifact cache backend is
// chosen by cfg.Server.CacheBackend; a redis backend is verified with a
// ping before the server starts.
func New(ctx context.Context, cfg *config.Config, source *GraphSource, logger *log.Logger) (*Server, error) {
	if logger == nil {
		logger = log.Default()
	}

	c, err := newCache(ctx, cfg)
	if err != nil {
		return nil, err
	}
	runner := pipeline.NewRunner(c, nil, logger)

	return &Server{
		cfg:      cfg,
		logger:   logger,
		runner:   runner,
		handlers: NewHandlers(cfg, source, runner, logger),
	}, nil
}

// newCache builds the artifact cache for the configured backend.
func newCache(ctx context.Context, cfg *config.Config) (cache.Cache, error) {
	switch cfg.Server.CacheBackend {
	case config.CacheBackendFile:
		dir := cfg.Server.CacheDir
		if dir == "" {
			base, err := os.UserCacheDir()
			if err != nil {
				return nil, fmt.Errorf("resolve cache dir: %w", err)
			}
			dir = filepath.Join(base, "archscope", "server")
		}
		return cache.NewFileCache(dir)
	case config.CacheBackendRedis:
		return cache.NewRedisCache(ctx, cache.RedisConfig{Addr: cfg.Server.RedisAddr})
	default:
		return cache.NewNullCache(), nil
	}
}

// Start runs the HTTP server until ctx is canceled, then shuts down
// gracefully. In-flight requests get a shutdown grace period before the
// listener closes.
func (s *Server) Start(ctx context.Context) error {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	s.handlers.RegisterRoutes(r)

	s.httpServer = &http.Server{
		Addr:    s.cfg.Server.Addr,
		Handler: r,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	s.logger.Info("server listening",
		"addr", s.cfg.Server.Addr,
		"cache", s.cfg.Server.CacheBackend,
		"source", s.handlers.source.Name())

	select {
	case err := <-errCh:
		_ = s.runner.Close()
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		_ = s.runner.Close()
		return fmt.Errorf("shutdown: %w", err)
	}
	return s.runner.Close()
}
