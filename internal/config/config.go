// Package config provides application configuration through environment variables.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/allisson/go-env"
	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// ServerHost is the host address the server will bind to.
	ServerHost string
	// ServerPort is the port number the server will listen on.
	ServerPort int

	// LogLevel is the logging level (e.g., "debug", "info", "warn", "error").
	LogLevel string

	// WebSecret is the shared secret behind token signing and name-suffix
	// hashing. Rotating it invalidates every issued token and orphans every
	// hash-suffixed role name.
	WebSecret string

	// DirectoryBaseURL is the base URL of the external role directory API.
	DirectoryBaseURL string
	// DirectoryBotToken authenticates the service's own directory account.
	DirectoryBotToken string
	// DirectoryTimeout is the per-request timeout for directory calls.
	DirectoryTimeout time.Duration
	// DirectoryRetryMax is the number of retries for transient directory failures.
	DirectoryRetryMax int

	// MemberCacheSize is the maximum number of cached member records.
	MemberCacheSize int
	// MemberCacheTTL is how long a cached member record stays fresh.
	MemberCacheTTL time.Duration

	// ProtectedRoleIDs is a comma-separated list of role IDs that must never
	// be mutated.
	ProtectedRoleIDs string
	// ProtectedRoleNames is a comma-separated, case-insensitive list of role
	// names that must never be mutated.
	ProtectedRoleNames string

	// RateLimitEnabled indicates whether IP rate limiting on the apply endpoint is enabled.
	RateLimitEnabled bool
	// RateLimitRequestsPerSec is the number of requests allowed per second per IP.
	RateLimitRequestsPerSec float64
	// RateLimitBurst is the burst size for the apply endpoint rate limiting.
	RateLimitBurst int

	// CORSEnabled indicates whether CORS is enabled.
	CORSEnabled bool
	// CORSAllowOrigins is a comma-separated list of allowed origins for CORS.
	CORSAllowOrigins string

	// MetricsEnabled indicates whether metrics collection is enabled.
	MetricsEnabled bool
	// MetricsNamespace is the namespace for the application metrics.
	MetricsNamespace string
	// MetricsPort is the port number for the metrics server.
	MetricsPort int
}

// Load loads configuration from environment variables and .env file.
func Load() *Config {
	// Try to load .env file recursively
	loadDotEnv()

	return &Config{
		// Server configuration
		ServerHost: env.GetString("SERVER_HOST", "0.0.0.0"),
		ServerPort: env.GetInt("SERVER_PORT", 8080),

		// Logging
		LogLevel: env.GetString("LOG_LEVEL", "info"),

		// Token and name-suffix secret
		WebSecret: env.GetString("WEB_SECRET", ""),

		// Role directory
		DirectoryBaseURL:  env.GetString("DIRECTORY_BASE_URL", ""),
		DirectoryBotToken: env.GetString("DIRECTORY_BOT_TOKEN", ""),
		DirectoryTimeout:  env.GetDuration("DIRECTORY_TIMEOUT_SECONDS", 10, time.Second),
		DirectoryRetryMax: env.GetInt("DIRECTORY_RETRY_MAX", 3),

		// Member cache
		MemberCacheSize: env.GetInt("MEMBER_CACHE_SIZE", 1024),
		MemberCacheTTL:  env.GetDuration("MEMBER_CACHE_TTL_SECONDS", 30, time.Second),

		// Protected roles
		ProtectedRoleIDs:   env.GetString("PROTECTED_ROLE_IDS", ""),
		ProtectedRoleNames: env.GetString("PROTECTED_ROLE_NAMES", "admin,administrator,mod"),

		// Rate Limiting (apply endpoint, IP-based)
		RateLimitEnabled:        env.GetBool("RATE_LIMIT_ENABLED", true),
		RateLimitRequestsPerSec: env.GetFloat64("RATE_LIMIT_REQUESTS_PER_SEC", 5.0),
		RateLimitBurst:          env.GetInt("RATE_LIMIT_BURST", 10),

		// CORS
		CORSEnabled:      env.GetBool("CORS_ENABLED", true),
		CORSAllowOrigins: env.GetString("CORS_ALLOW_ORIGINS", "https://example.com"),

		// Metrics
		MetricsEnabled:   env.GetBool("METRICS_ENABLED", true),
		MetricsNamespace: env.GetString("METRICS_NAMESPACE", "colorsync"),
		MetricsPort:      env.GetInt("METRICS_PORT", 8081),
	}
}

// GetGinMode returns the appropriate Gin mode based on log level.
func (c *Config) GetGinMode() string {
	switch c.LogLevel {
	case "debug":
		return "debug"
	case "info", "warn", "error":
		return "release"
	default:
		return "release"
	}
}

// ProtectedRoleIDList parses ProtectedRoleIDs into identifiers, skipping
// malformed entries.
func (c *Config) ProtectedRoleIDList() []int64 {
	return parseIDList(c.ProtectedRoleIDs)
}

// ProtectedRoleNameList parses ProtectedRoleNames, trimming whitespace and
// skipping empty entries.
func (c *Config) ProtectedRoleNameList() []string {
	return parseNameList(c.ProtectedRoleNames)
}

func parseIDList(raw string) []int64 {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		id, err := strconv.ParseInt(trimmed, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

func parseNameList(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	names := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			names = append(names, trimmed)
		}
	}
	return names
}

// loadDotEnv searches for a .env file recursively from the current directory
// up to the root directory and loads it if found.
func loadDotEnv() {
	// Get current working directory
	cwd, err := os.Getwd()
	if err != nil {
		return
	}

	// Search for .env file recursively up the directory tree
	dir := cwd
	for {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			// .env file found, load it
			_ = godotenv.Load(envPath)
			return
		}

		// Move to parent directory
		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root directory
			break
		}
		dir = parent
	}
}
