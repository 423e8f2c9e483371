// Package server is the composition root: it opens the store, wires the
// services and handlers onto a chi router and runs the HTTP server until
// SIGINT or SIGTERM.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sakif/scrapbook/internal/auth"
	"github.com/sakif/scrapbook/internal/config"
	"github.com/sakif/scrapbook/internal/handler"
	"github.com/sakif/scrapbook/internal/middleware"
	"github.com/sakif/scrapbook/internal/repository"
	mongoRepo "github.com/sakif/scrapbook/internal/repository/mongo"
	sqliteRepo "github.com/sakif/scrapbook/internal/repository/sqlite"
	"github.com/sakif/scrapbook/internal/service"
)

const shutdownTimeout = 30 * time.Second

type Server struct {
	router *chi.Mux
	config config.Config
	logger *slog.Logger
	store  repository.Store
}

// OpenStore picks the backend from the URI scheme. The MongoDB client
// connects lazily on first use.
func OpenStore(cfg config.Config, logger *slog.Logger) (repository.Store, error) {
	switch uri := cfg.MongoURI; {
	case mongoRepo.IsURI(uri):
		return mongoRepo.New(uri, cfg.MongoDatabase, logger)
	case sqliteRepo.IsURI(uri):
		return sqliteRepo.New(sqliteRepo.DSNFromURI(uri))
	default:
		return nil, fmt.Errorf("unsupported database URI scheme in %q", redactURI(uri))
	}
}

// New opens the store named by cfg and builds the router.
func New(cfg config.Config, logger *slog.Logger) (*Server, error) {
	gate, err := auth.NewGate(cfg.PrivatePassword.Value(), auth.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("preparing password gate: %w", err)
	}

	store, err := OpenStore(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	return NewWithStore(cfg, store, gate, logger), nil
}

// NewWithStore builds a server over an already opened store. The server
// owns store from here on and closes it on shutdown.
func NewWithStore(cfg config.Config, store repository.Store, gate service.PasswordChecker, logger *slog.Logger) *Server {
	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		store:  store,
	}
	s.setupRoutes(gate)
	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// setupRoutes mounts:
//
//	POST              /api/auth
//	GET, POST         /api/letters
//	GET, POST, PUT, DELETE /api/memories
//	GET, POST, PUT, DELETE /api/videos
//	GET, POST         /api/timeline
//	GET, PUT          /api/settings
//	GET               /healthz
//	GET               /metrics   (when enabled)
func (s *Server) setupRoutes(gate service.PasswordChecker) {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(middleware.Logger(s.logger))
	s.router.Use(chimiddleware.Recoverer)
	if s.config.MetricsEnabled {
		s.router.Use(middleware.Metrics)
	}

	authHandler := handler.NewAuthHandler(service.NewAuthService(gate, s.logger), s.logger)
	letterHandler := handler.NewLetterHandler(service.NewLetterService(s.store.Letters(), s.logger), s.logger)
	memoryHandler := handler.NewMemoryHandler(service.NewMemoryService(s.store.Memories(), s.logger), s.logger)
	videoHandler := handler.NewVideoHandler(service.NewVideoService(s.store.Videos(), s.logger), s.logger)
	timelineHandler := handler.NewTimelineHandler(service.NewTimelineService(s.store.Timeline(), s.logger), s.logger)
	settingsHandler := handler.NewSettingsHandler(service.NewSettingsService(s.store.Settings(), s.logger), s.logger)
	healthHandler := handler.NewHealthHandler(s.store, s.logger)

	s.router.Route("/api", func(r chi.Router) {
		r.Post("/auth", authHandler.HandleCheck)

		r.Get("/letters", letterHandler.HandleList)
		r.Post("/letters", letterHandler.HandleCreate)

		r.Get("/memories", memoryHandler.HandleList)
		r.Post("/memories", memoryHandler.HandleCreate)
		r.Put("/memories", memoryHandler.HandleUpdate)
		r.Delete("/memories", memoryHandler.HandleDelete)

		r.Get("/videos", videoHandler.HandleList)
		r.Post("/videos", videoHandler.HandleCreate)
		r.Put("/videos", videoHandler.HandleUpdate)
		r.Delete("/videos", videoHandler.HandleDelete)

		r.Get("/timeline", timelineHandler.HandleList)
		r.Post("/timeline", timelineHandler.HandleCreate)

		r.Get("/settings", settingsHandler.HandleGet)
		r.Put("/settings", settingsHandler.HandleUpdate)
	})

	s.router.Get("/healthz", healthHandler.HandleHealth)
	if s.config.MetricsEnabled {
		s.router.Handle("/metrics", promhttp.Handler())
	}
}

// Start serves until a shutdown signal arrives, drains in-flight requests
// for up to 30 seconds and then closes the store.
func (s *Server) Start() error {
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.store.Close(ctx); err != nil {
			s.logger.Error("failed to close database", slog.String("error", err.Error()))
		}
	}()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("database", redactURI(s.config.MongoURI)),
			slog.Bool("metrics", s.config.MetricsEnabled),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
