// Package app provides dependency injection container for assembling application components.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/colorsync/colorsync/internal/config"
	"github.com/colorsync/colorsync/internal/directory"
	"github.com/colorsync/colorsync/internal/http"
	"github.com/colorsync/colorsync/internal/metrics"
	"github.com/colorsync/colorsync/internal/role/domain"
	rolehttp "github.com/colorsync/colorsync/internal/role/http"
	"github.com/colorsync/colorsync/internal/role/service"
	"github.com/colorsync/colorsync/internal/role/usecase"
)

// Container holds all application dependencies and provides methods to access them.
// It follows the lazy initialization pattern - components are created on first access.
type Container struct {
	// Configuration
	config *config.Config

	// Infrastructure
	logger          *slog.Logger
	metricsProvider *metrics.Provider
	directoryClient usecase.Directory

	// Services
	tokenCodec   service.TokenCodec
	nameEncoding service.NameEncoding

	// Use Cases
	reconcileEngine usecase.ReconcileEngine

	// Servers
	httpServer    *http.Server
	metricsServer *http.MetricsServer

	// Initialization flags and mutex for thread-safety
	mu                  sync.Mutex
	loggerInit          sync.Once
	metricsProviderInit sync.Once
	directoryInit       sync.Once
	tokenCodecInit      sync.Once
	nameEncodingInit    sync.Once
	engineInit          sync.Once
	httpServerInit      sync.Once
	metricsServerInit   sync.Once
	initErrors          map[string]error
}

// NewContainer creates a new dependency injection container with the provided configuration.
func NewContainer(cfg *config.Config) *Container {
	return &Container{
		config:     cfg,
		initErrors: make(map[string]error),
	}
}

// Config returns the application configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// Logger returns the configured logger instance.
// It creates a new logger on first access based on the log level in configuration.
func (c *Container) Logger() *slog.Logger {
	c.loggerInit.Do(func() {
		c.logger = c.initLogger()
	})
	return c.logger
}

// MetricsProvider returns the OTel meter provider backed by the Prometheus
// exporter. Returns nil without error when metrics are disabled.
func (c *Container) MetricsProvider() (*metrics.Provider, error) {
	var err error
	c.metricsProviderInit.Do(func() {
		if !c.config.MetricsEnabled {
			return
		}
		c.metricsProvider, err = metrics.NewProvider(c.config.MetricsNamespace)
		if err != nil {
			c.initErrors["metricsProvider"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["metricsProvider"]; exists {
		return nil, storedErr
	}
	return c.metricsProvider, nil
}

// TokenCodec returns the capability token codec.
func (c *Container) TokenCodec() (service.TokenCodec, error) {
	var err error
	c.tokenCodecInit.Do(func() {
		c.tokenCodec, err = c.initTokenCodec()
		if err != nil {
			c.initErrors["tokenCodec"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["tokenCodec"]; exists {
		return nil, storedErr
	}
	return c.tokenCodec, nil
}

// NameEncoding returns the role name suffix encoding.
func (c *Container) NameEncoding() (service.NameEncoding, error) {
	var err error
	c.nameEncodingInit.Do(func() {
		c.nameEncoding, err = c.initNameEncoding()
		if err != nil {
			c.initErrors["nameEncoding"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["nameEncoding"]; exists {
		return nil, storedErr
	}
	return c.nameEncoding, nil
}

// Directory returns the role directory client with the member cache layered
// on top.
func (c *Container) Directory() (usecase.Directory, error) {
	var err error
	c.directoryInit.Do(func() {
		c.directoryClient, err = c.initDirectory()
		if err != nil {
			c.initErrors["directory"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["directory"]; exists {
		return nil, storedErr
	}
	return c.directoryClient, nil
}

// ReconcileEngine returns the reconcile engine, wrapped with the metrics
// decorator when metrics are enabled.
func (c *Container) ReconcileEngine() (usecase.ReconcileEngine, error) {
	var err error
	c.engineInit.Do(func() {
		c.reconcileEngine, err = c.initReconcileEngine()
		if err != nil {
			c.initErrors["reconcileEngine"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["reconcileEngine"]; exists {
		return nil, storedErr
	}
	return c.reconcileEngine, nil
}

// HTTPServer returns the API server instance.
func (c *Container) HTTPServer() (*http.Server, error) {
	var err error
	c.httpServerInit.Do(func() {
		c.httpServer, err = c.initHTTPServer()
		if err != nil {
			c.initErrors["httpServer"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["httpServer"]; exists {
		return nil, storedErr
	}
	return c.httpServer, nil
}

// MetricsServer returns the metrics server instance. Returns nil without
// error when metrics are disabled.
func (c *Container) MetricsServer() (*http.MetricsServer, error) {
	var err error
	c.metricsServerInit.Do(func() {
		if !c.config.MetricsEnabled {
			return
		}
		c.metricsServer, err = c.initMetricsServer()
		if err != nil {
			c.initErrors["metricsServer"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["metricsServer"]; exists {
		return nil, storedErr
	}
	return c.metricsServer, nil
}

// Shutdown performs cleanup of all initialized resources.
// It should be called when the application is shutting down.
func (c *Container) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var shutdownErrors []error

	// Shutdown HTTP server if initialized
	if c.httpServer != nil {
		if err := c.httpServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("http server shutdown: %w", err))
		}
	}

	// Shutdown metrics server if initialized
	if c.metricsServer != nil {
		if err := c.metricsServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics server shutdown: %w", err))
		}
	}

	// Shutdown metrics provider if initialized
	if c.metricsProvider != nil {
		if err := c.metricsProvider.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics provider shutdown: %w", err))
		}
	}

	// Return combined errors if any occurred
	if len(shutdownErrors) > 0 {
		return fmt.Errorf("shutdown errors: %v", shutdownErrors)
	}

	return nil
}

// initLogger creates and configures a structured logger based on the log level.
func (c *Container) initLogger() *slog.Logger {
	var logLevel slog.Level
	switch c.config.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})

	return slog.New(handler)
}

// initTokenCodec creates the token codec from the configured secret.
func (c *Container) initTokenCodec() (service.TokenCodec, error) {
	if c.config.WebSecret == "" {
		return nil, fmt.Errorf("WEB_SECRET is required")
	}
	codec, err := service.NewTokenCodec([]byte(c.config.WebSecret))
	if err != nil {
		return nil, fmt.Errorf("failed to create token codec: %w", err)
	}
	return codec, nil
}

// initNameEncoding creates the name encoding from the configured secret.
func (c *Container) initNameEncoding() (service.NameEncoding, error) {
	if c.config.WebSecret == "" {
		return nil, fmt.Errorf("WEB_SECRET is required")
	}
	encoding, err := service.NewNameEncoding([]byte(c.config.WebSecret))
	if err != nil {
		return nil, fmt.Errorf("failed to create name encoding: %w", err)
	}
	return encoding, nil
}

// initDirectory creates the directory client and layers the member cache on it.
func (c *Container) initDirectory() (usecase.Directory, error) {
	if c.config.DirectoryBaseURL == "" {
		return nil, fmt.Errorf("DIRECTORY_BASE_URL is required")
	}
	if c.config.DirectoryBotToken == "" {
		return nil, fmt.Errorf("DIRECTORY_BOT_TOKEN is required")
	}

	client := directory.NewClient(directory.ClientConfig{
		BaseURL:  c.config.DirectoryBaseURL,
		BotToken: c.config.DirectoryBotToken,
		Timeout:  c.config.DirectoryTimeout,
		RetryMax: c.config.DirectoryRetryMax,
	}, c.Logger())

	return directory.NewCachedDirectory(client, c.config.MemberCacheSize, c.config.MemberCacheTTL), nil
}

// initReconcileEngine creates the reconcile engine with all its dependencies.
func (c *Container) initReconcileEngine() (usecase.ReconcileEngine, error) {
	dir, err := c.Directory()
	if err != nil {
		return nil, fmt.Errorf("failed to get directory for reconcile engine: %w", err)
	}

	encoding, err := c.NameEncoding()
	if err != nil {
		return nil, fmt.Errorf("failed to get name encoding for reconcile engine: %w", err)
	}

	protection := domain.NewProtectionSet(
		c.config.ProtectedRoleIDList(),
		c.config.ProtectedRoleNameList(),
	)

	locator := usecase.NewRoleLocator(dir, encoding)
	guard := usecase.NewHierarchyGuard(protection)
	engine := usecase.NewReconcileEngine(dir, locator, guard, encoding, c.Logger())

	if !c.config.MetricsEnabled {
		return engine, nil
	}

	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for reconcile engine: %w", err)
	}

	businessMetrics, err := metrics.NewBusinessMetrics(provider.MeterProvider(), c.config.MetricsNamespace)
	if err != nil {
		return nil, fmt.Errorf("failed to create business metrics: %w", err)
	}

	return usecase.NewReconcileEngineWithMetrics(engine, businessMetrics), nil
}

// initHTTPServer creates the API server with all its dependencies.
func (c *Container) initHTTPServer() (*http.Server, error) {
	logger := c.Logger()

	codec, err := c.TokenCodec()
	if err != nil {
		return nil, fmt.Errorf("failed to get token codec for http server: %w", err)
	}

	engine, err := c.ReconcileEngine()
	if err != nil {
		return nil, fmt.Errorf("failed to get reconcile engine for http server: %w", err)
	}

	applyHandler := rolehttp.NewApplyHandler(codec, engine, logger)

	serverConfig := http.ServerConfig{
		Host:             c.config.ServerHost,
		Port:             c.config.ServerPort,
		GinMode:          c.config.GetGinMode(),
		CORSEnabled:      c.config.CORSEnabled,
		AllowOrigins:     c.config.CORSAllowOrigins,
		RateLimitEnabled: c.config.RateLimitEnabled,
		RateLimitRPS:     c.config.RateLimitRequestsPerSec,
		RateLimitBurst:   c.config.RateLimitBurst,
		MetricsEnabled:   c.config.MetricsEnabled,
		MetricsNamespace: c.config.MetricsNamespace,
	}

	if c.config.MetricsEnabled {
		provider, err := c.MetricsProvider()
		if err != nil {
			return nil, fmt.Errorf("failed to get metrics provider for http server: %w", err)
		}
		return http.NewServer(serverConfig, applyHandler, provider.MeterProvider(), logger), nil
	}

	return http.NewServer(serverConfig, applyHandler, nil, logger), nil
}

// initMetricsServer creates the metrics server.
func (c *Container) initMetricsServer() (*http.MetricsServer, error) {
	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for metrics server: %w", err)
	}

	return http.NewMetricsServer(
		c.config.ServerHost,
		c.config.MetricsPort,
		c.Logger(),
		provider,
	), nil
}
