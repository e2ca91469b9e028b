// Package web serves a read-only JSON view of a mapping result file.
package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/gorilla/mux"

	"github.com/keyword-mapper/internal/logger"
	"github.com/keyword-mapper/internal/match"
	"github.com/keyword-mapper/internal/report"
	"github.com/keyword-mapper/internal/web/handlers"
	"github.com/keyword-mapper/internal/web/middleware"
)

// Server represents the web server
type Server struct {
	config     *Config
	log        logger.Logger
	httpServer *http.Server
	router     *mux.Router
}

// NewServer loads the configured result file and builds the server.
func NewServer(config *Config, log logger.Logger) (*Server, error) {
	store, err := report.ReadCSV(config.ResultsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load results: %w", err)
	}
	log.Info("Loaded results",
		logger.String("file", config.ResultsFile),
		logger.Int("keywords", store.Lines()))

	return NewServerWithStore(config, store, log), nil
}

// NewServerWithStore builds a server over an in-memory Mapping Store.
func NewServerWithStore(config *Config, store *match.Store, log logger.Logger) *Server {
	if log == nil {
		log = logger.NewNop()
	}
	server := &Server{
		config: config,
		log:    log,
	}

	server.setupRoutes(store)

	server.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", config.Server.Host, config.Server.Port),
		Handler:      server.router,
		ReadTimeout:  config.Server.ReadTimeout,
		WriteTimeout: config.Server.WriteTimeout,
		IdleTimeout:  config.Server.IdleTimeout,
	}

	return server
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes(store *match.Store) {
	s.router = mux.NewRouter()

	apiHandler := handlers.NewAPIHandler(store)
	exportHandler := &handlers.ExportHandler{Store: store, Filename: "keyword_mappings.csv"}

	s.router.HandleFunc("/health", apiHandler.Health).Methods(http.MethodGet)

	api := s.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/stats", apiHandler.GetStats).Methods(http.MethodGet)
	api.HandleFunc("/mappings", apiHandler.ListMappings).Methods(http.MethodGet)
	api.HandleFunc("/mappings/{keyword}", apiHandler.GetMapping).Methods(http.MethodGet)
	api.HandleFunc("/urls", apiHandler.ListURLs).Methods(http.MethodGet)
	api.HandleFunc("/export", exportHandler.ExportCSV).Methods(http.MethodGet)

	s.router.Use(middleware.CORS())
	s.router.Use(middleware.RequestLogging(s.log))
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Addr is the listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Start serves until ctx is cancelled or SIGINT/SIGTERM arrives, then shuts
// down gracefully.
func (s *Server) Start(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("Starting server", logger.String("addr", "http://"+s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.log.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.Server.ShutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	s.log.Info("Server stopped")
	return nil
}
