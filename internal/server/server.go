// Package server exposes conversations over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	conversationrouter "academy-assistant/internal/agents/routing/conversation-router"
	"academy-assistant/internal/common/config"
	apperrors "academy-assistant/internal/common/errors"
	"academy-assistant/internal/common/logger"
	"academy-assistant/internal/common/observability"
	"academy-assistant/internal/common/validation"
	"academy-assistant/internal/conversation"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Check reports whether a dependency is reachable.
type Check func(ctx context.Context) error

type Dependencies struct {
	Router        *conversationrouter.Router
	Store         conversation.Store
	Observability *observability.Observability
	Checks        map[string]Check
	Logger        logger.Logger
}

type Server struct {
	config    config.ServerConfig
	router    *conversationrouter.Router
	store     conversation.Store
	locker    *conversation.Locker
	validator *validation.Validator
	errors    *apperrors.ErrorHandler
	obs       *observability.Observability
	checks    map[string]Check
	logger    logger.Logger
	newID     func() string
}

func New(cfg config.ServerConfig, deps Dependencies) *Server {
	log := deps.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	log = logger.ForComponent(log, "http-server")
	return &Server{
		config:    cfg,
		router:    deps.Router,
		store:     deps.Store,
		locker:    conversation.NewLocker(),
		validator: validation.MustValidator(validation.MessageRequestSchema),
		errors:    apperrors.NewErrorHandler(log),
		obs:       deps.Observability,
		checks:    deps.Checks,
		logger:    log,
		newID:     uuid.NewString,
	}
}

// Handler returns the routed handler wrapped in recovery and access logging.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/conversations", s.handleCreate)
	mux.HandleFunc("GET /v1/conversations/{id}", s.handleGet)
	mux.HandleFunc("DELETE /v1/conversations/{id}", s.handleDelete)
	mux.HandleFunc("POST /v1/conversations/{id}/messages", s.handleMessage)
	mux.HandleFunc("POST /v1/conversations/{id}/reset", s.handleReset)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /ready", s.handleReady)
	mux.Handle("GET /metrics", promhttp.Handler())
	return s.recoverer(s.accessLog(mux))
}

// Run serves on the configured port until ctx is cancelled, then drains in-flight
// requests within the shutdown timeout.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", s.config.Port))
	if err != nil {
		return fmt.Errorf("listen on port %d: %w", s.config.Port, err)
	}
	return s.Serve(ctx, ln)
}

func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  config.GetDuration(s.config.ReadTimeout),
		WriteTimeout: config.GetDuration(s.config.WriteTimeout),
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server listening", map[string]interface{}{"addr": ln.Addr().String()})
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	timeout := config.GetDuration(s.config.ShutdownTimeout)
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	s.logger.Info("Shutting down HTTP server", map[string]interface{}{"timeout": timeout.String()})
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
