package metrics

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBusinessMetrics(t *testing.T) {
	provider, err := NewProvider("colorsync")
	require.NoError(t, err)
	defer func() { _ = provider.Shutdown(context.Background()) }()

	metrics, err := NewBusinessMetrics(provider.MeterProvider(), "colorsync")
	require.NoError(t, err)
	require.NotNil(t, metrics)
}

func TestBusinessMetrics_Record(t *testing.T) {
	provider, err := NewProvider("colorsync")
	require.NoError(t, err)
	defer func() { _ = provider.Shutdown(context.Background()) }()

	metrics, err := NewBusinessMetrics(provider.MeterProvider(), "colorsync")
	require.NoError(t, err)

	ctx := context.Background()
	metrics.RecordOperation(ctx, "role", "apply_color", "success")
	metrics.RecordOperation(ctx, "role", "clear", "error")
	metrics.RecordDuration(ctx, "role", "apply_color", 120*time.Millisecond, "success")

	recorder := httptest.NewRecorder()
	provider.Handler().ServeHTTP(recorder, httptest.NewRequest("GET", "/metrics", nil))

	body := recorder.Body.String()
	assert.Contains(t, body, "colorsync_operations_total")
	assert.Contains(t, body, "colorsync_operation_duration_seconds")
	assert.Contains(t, body, `operation="apply_color"`)
}

func TestNoOpBusinessMetrics(t *testing.T) {
	metrics := NewNoOpBusinessMetrics()

	// Must be safe to call with no provider behind it.
	metrics.RecordOperation(context.Background(), "role", "apply_color", "success")
	metrics.RecordDuration(context.Background(), "role", "apply_color", time.Second, "success")
}
