package metrics

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProvider(t *testing.T) {
	provider, err := NewProvider("colorsync")
	require.NoError(t, err)
	require.NotNil(t, provider)

	assert.NotNil(t, provider.MeterProvider())
	assert.NotNil(t, provider.Handler())

	assert.NoError(t, provider.Shutdown(context.Background()))
}

func TestProvider_HandlerServesExposition(t *testing.T) {
	provider, err := NewProvider("colorsync")
	require.NoError(t, err)
	defer func() { _ = provider.Shutdown(context.Background()) }()

	metrics, err := NewBusinessMetrics(provider.MeterProvider(), "colorsync")
	require.NoError(t, err)
	metrics.RecordOperation(context.Background(), "role", "apply_color", "success")

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("GET", "/metrics", nil)
	provider.Handler().ServeHTTP(recorder, request)

	require.Equal(t, 200, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "colorsync_operations_total")
}
