package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/stratlens/stratlens/internal/config"
)

// Runner is the analysis entry point the server exposes. It never fails:
// every input yields a (report, status) pair.
type Runner interface {
	Run(ctx context.Context, query, targetsCSV string) (report, status string)
}

type Server struct {
	cfg    config.ServerConfig
	router *chi.Mux
	runner Runner
	server *http.Server
}

// New wires the router. A nil runner puts the server into the degraded
// configuration-error state: it still serves, but the analyze endpoint
// answers with credential guidance instead of running an analysis.
func New(cfg config.Config, runner Runner) *Server {
	s := &Server{
		cfg:    cfg.Server,
		router: chi.NewRouter(),
		runner: runner,
	}
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:      s.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Post("/analyze", s.handleAnalyze)
		r.Get("/health", s.handleHealth)
	})
}

// Run starts the server and blocks until a listener error or a shutdown
// signal, then drains outstanding requests.
func (s *Server) Run() error {
	serverErrors := make(chan error, 1)

	go func() {
		slog.Info("starting server", "address", s.server.Addr)
		serverErrors <- s.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		slog.Info("starting shutdown", "signal", sig)

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := s.server.Shutdown(ctx); err != nil {
			return fmt.Errorf("shutdown error: %w", err)
		}
	}

	return nil
}
