// Package http provides the API server hosting the color apply surface.
package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/metric"

	"github.com/colorsync/colorsync/internal/metrics"
	rolehttp "github.com/colorsync/colorsync/internal/role/http"
)

// ServerConfig carries the knobs the API server needs from configuration.
type ServerConfig struct {
	Host             string
	Port             int
	GinMode          string
	CORSEnabled      bool
	AllowOrigins     string
	RateLimitEnabled bool
	RateLimitRPS     float64
	RateLimitBurst   int
	MetricsEnabled   bool
	MetricsNamespace string
}

// Server represents the API HTTP server.
type Server struct {
	server *http.Server
	logger *slog.Logger
}

// NewServer creates the API server and wires the route table: the root
// marker, the liveness endpoint, and the token-gated apply endpoint.
func NewServer(
	cfg ServerConfig,
	applyHandler *rolehttp.ApplyHandler,
	meterProvider metric.MeterProvider,
	logger *slog.Logger,
) *Server {
	gin.SetMode(cfg.GinMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.NewString()
	})))
	router.Use(CustomLoggerMiddleware(logger))

	if cfg.MetricsEnabled && meterProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(meterProvider, cfg.MetricsNamespace))
	}

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.AllowOrigins, logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	router.GET("/", applyHandler.RootHandler)
	router.GET("/health", applyHandler.HealthHandler)

	applyHandlers := []gin.HandlerFunc{}
	if cfg.RateLimitEnabled {
		applyHandlers = append(applyHandlers,
			rolehttp.RateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst, logger))
	}
	applyHandlers = append(applyHandlers, applyHandler.Handle)
	router.POST("/apply", applyHandlers...)

	return &Server{
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
			Handler:      router,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger: logger,
	}
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.server.Handler
}

// Start starts the HTTP server.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}
