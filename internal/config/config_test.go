package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "0.0.0.0", cfg.ServerHost)
	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 10*time.Second, cfg.DirectoryTimeout)
	assert.Equal(t, 3, cfg.DirectoryRetryMax)
	assert.Equal(t, 1024, cfg.MemberCacheSize)
	assert.Equal(t, 30*time.Second, cfg.MemberCacheTTL)
	assert.Equal(t, "admin,administrator,mod", cfg.ProtectedRoleNames)
	assert.True(t, cfg.RateLimitEnabled)
	assert.True(t, cfg.CORSEnabled)
	assert.Equal(t, "colorsync", cfg.MetricsNamespace)
	assert.Equal(t, 8081, cfg.MetricsPort)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("WEB_SECRET", "super-secret")
	t.Setenv("DIRECTORY_BASE_URL", "https://directory.example.com")
	t.Setenv("PROTECTED_ROLE_IDS", "100,200")
	t.Setenv("RATE_LIMIT_ENABLED", "false")

	cfg := Load()

	assert.Equal(t, 9090, cfg.ServerPort)
	assert.Equal(t, "super-secret", cfg.WebSecret)
	assert.Equal(t, "https://directory.example.com", cfg.DirectoryBaseURL)
	assert.Equal(t, "100,200", cfg.ProtectedRoleIDs)
	assert.False(t, cfg.RateLimitEnabled)
}

func TestConfig_GetGinMode(t *testing.T) {
	tests := []struct {
		logLevel string
		want     string
	}{
		{logLevel: "debug", want: "debug"},
		{logLevel: "info", want: "release"},
		{logLevel: "warn", want: "release"},
		{logLevel: "error", want: "release"},
		{logLevel: "bogus", want: "release"},
	}

	for _, tt := range tests {
		t.Run(tt.logLevel, func(t *testing.T) {
			cfg := &Config{LogLevel: tt.logLevel}
			assert.Equal(t, tt.want, cfg.GetGinMode())
		})
	}
}

func TestConfig_ProtectedRoleIDList(t *testing.T) {
	cfg := &Config{ProtectedRoleIDs: " 100 , 200 , bogus , "}
	assert.Equal(t, []int64{100, 200}, cfg.ProtectedRoleIDList())

	empty := &Config{}
	assert.Nil(t, empty.ProtectedRoleIDList())
}

func TestConfig_ProtectedRoleNameList(t *testing.T) {
	cfg := &Config{ProtectedRoleNames: "admin, administrator ,mod,,"}
	assert.Equal(t, []string{"admin", "administrator", "mod"}, cfg.ProtectedRoleNameList())

	empty := &Config{}
	assert.Nil(t, empty.ProtectedRoleNameList())
}
