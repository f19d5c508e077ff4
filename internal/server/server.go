// ABOUTME: HTTP server assembly for auth-ui: routes, static files, lifecycle.
// ABOUTME: Wires the auth handlers, health endpoints, and JSON 404 fallback.

package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/authlab/auth-ui/internal/auth"
	"github.com/authlab/auth-ui/internal/config"
	"github.com/authlab/auth-ui/internal/store"
)

const serviceName = "auth-ui"

// Server hosts the auth API, health endpoints, and optional static files.
type Server struct {
	config     *config.Config
	httpServer *http.Server
	logger     *slog.Logger
	version    string
	started    time.Time
}

// healthResponse is the JSON response for GET /health.
type healthResponse struct {
	Status    string    `json:"status"`
	Service   string    `json:"service"`
	Timestamp time.Time `json:"timestamp"`
	Uptime    float64   `json:"uptime"`
}

// apiHealthResponse is the JSON response for GET /api/health.
type apiHealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// notFoundResponse is the JSON body for any unmatched route.
type notFoundResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Path    string `json:"path"`
}

// New creates a server with all routes registered.
func New(cfg *config.Config, logger *slog.Logger, version string) *Server {
	registry := store.NewRegistry()
	handlers := auth.NewHandlers(registry, auth.NewCodec(), logger)

	s := &Server{
		config:  cfg,
		logger:  logger.With("component", "server"),
		version: version,
		started: time.Now(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /api/health", s.handleAPIHealth)
	handlers.RegisterRoutes(mux)
	mux.HandleFunc("/", s.handleRoot)

	handler := chain(mux,
		requestLogger(logger),
		gzipMiddleware(),
		securityHeaders(),
	)

	s.httpServer = &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s
}

// Handler returns the fully assembled HTTP handler, including middleware.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Run starts the HTTP server and blocks until the context is canceled or
// the server fails. Returns nil on graceful shutdown.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Server.HTTPAddr)
	if err != nil {
		return fmt.Errorf("listening on HTTP address: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server listening", "addr", ln.Addr().String())
		if err := s.httpServer.Serve(ln); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("HTTP server: %w", err)
		}
	}()

	var serverErr error
	select {
	case <-ctx.Done():
		s.logger.Info("context canceled, initiating shutdown")
	case serverErr = <-errCh:
		s.logger.Error("server error", "error", serverErr)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("shutdown error", "error", err)
		if serverErr == nil {
			serverErr = fmt.Errorf("shutting down: %w", err)
		}
	}

	return serverErr
}

// handleHealth handles GET /health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:    "healthy",
		Service:   serviceName,
		Timestamp: time.Now(),
		Uptime:    time.Since(s.started).Seconds(),
	})
}

// handleAPIHealth handles GET /api/health.
func (s *Server) handleAPIHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, apiHealthResponse{
		Status:  "ok",
		Version: s.version,
	})
}

// handleRoot serves static files when a static dir is configured and
// answers every other unmatched route with the JSON 404 body.
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if dir := s.config.Static.Dir; dir != "" && r.Method == http.MethodGet {
		name := filepath.Clean("/" + r.URL.Path)
		if name == "/" {
			name = "/index.html"
		}
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			http.ServeFile(w, r, path)
			return
		}
	}

	writeJSON(w, http.StatusNotFound, notFoundResponse{
		Success: false,
		Message: "Not found",
		Path:    r.URL.Path,
	})
}

// writeJSON writes v as a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
