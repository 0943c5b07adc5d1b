package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/colorsync/colorsync/internal/errors"
	"github.com/colorsync/colorsync/internal/role/domain"
)

// recordingMetrics captures recorded operations for assertions.
type recordingMetrics struct {
	mu         sync.Mutex
	operations []string
	statuses   []string
	durations  int
}

func (r *recordingMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.operations = append(r.operations, operation)
	r.statuses = append(r.statuses, status)
}

func (r *recordingMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.durations++
}

// stubEngine returns canned results for decorator tests.
type stubEngine struct {
	role *domain.Role
	err  error
}

func (s *stubEngine) ApplyColor(ctx context.Context, identity domain.Identity, color int) (*domain.Role, error) {
	return s.role, s.err
}

func (s *stubEngine) SetColor(ctx context.Context, identity domain.Identity, color int) (*domain.Role, error) {
	return s.role, s.err
}

func (s *stubEngine) Rename(ctx context.Context, identity domain.Identity, newBase string) (*domain.Role, error) {
	return s.role, s.err
}

func (s *stubEngine) MigrateLegacyName(ctx context.Context, identity domain.Identity) (*domain.Role, error) {
	return s.role, s.err
}

func (s *stubEngine) Clear(ctx context.Context, identity domain.Identity) error {
	return s.err
}

func TestReconcileEngineWithMetrics_Success(t *testing.T) {
	recorder := &recordingMetrics{}
	engine := NewReconcileEngineWithMetrics(&stubEngine{role: &domain.Role{ID: 1}}, recorder)
	identity := domain.Identity{WorkspaceID: 1, UserID: 42}
	ctx := context.Background()

	_, err := engine.ApplyColor(ctx, identity, 0x123456)
	require.NoError(t, err)
	_, err = engine.SetColor(ctx, identity, 0x123456)
	require.NoError(t, err)
	_, err = engine.Rename(ctx, identity, "Sunset")
	require.NoError(t, err)
	_, err = engine.MigrateLegacyName(ctx, identity)
	require.NoError(t, err)
	require.NoError(t, engine.Clear(ctx, identity))

	assert.Equal(t, []string{"apply_color", "set_color", "rename", "migrate_name", "clear"}, recorder.operations)
	for _, status := range recorder.statuses {
		assert.Equal(t, "success", status)
	}
	assert.Equal(t, 5, recorder.durations)
}

func TestReconcileEngineWithMetrics_Error(t *testing.T) {
	recorder := &recordingMetrics{}
	engine := NewReconcileEngineWithMetrics(&stubEngine{err: apperrors.ErrNotFound}, recorder)
	identity := domain.Identity{WorkspaceID: 1, UserID: 42}

	_, err := engine.ApplyColor(context.Background(), identity, 0x123456)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	require.Len(t, recorder.statuses, 1)
	assert.Equal(t, "error", recorder.statuses[0])
}
