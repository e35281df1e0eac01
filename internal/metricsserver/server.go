package metricsserver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

// Config configures the observability HTTP surface.
type Config struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// DefaultConfig returns the conventional exporter address, port 9090 on
// all interfaces (0.0.0.0).
func DefaultConfig() *Config {
	return &Config{Host: "0.0.0.0", Port: 9090, ReadTimeout: 5 * time.Second, WriteTimeout: 5 * time.Second}
}

// Server is a minimal HTTP surface exposing /metrics and /health,
// grounded on the teacher's internal/api.Server routing and CORS setup
// (mux.Router + rs/cors + http.Server), trimmed to the two routes this
// engine needs — it has no WebSocket/backtest-control surface to serve.
type Server struct {
	logger     *zap.Logger
	config     *Config
	router     *mux.Router
	httpServer *http.Server
	startedAt  time.Time
}

// NewServer builds the server and wires its routes.
func NewServer(logger *zap.Logger, config *Config) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if config == nil {
		config = DefaultConfig()
	}
	s := &Server{
		logger:    logger,
		config:    config,
		router:    mux.NewRouter(),
		startedAt: time.Now(),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.Handle("/metrics", promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})).Methods("GET")
	s.router.HandleFunc("/health", s.handleHealth).Methods("GET")
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"status":         "healthy",
		"uptime_seconds": time.Since(s.startedAt).Seconds(),
	})
}

// Start runs the HTTP server, blocking until it stops or errors.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	handler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET"},
	}).Handler(s.router)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}
	s.logger.Info("starting metrics server", zap.String("addr", addr))
	return s.httpServer.ListenAndServe()
}

// Stop gracefully shuts the server down.
func (s *Server) Stop(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}
