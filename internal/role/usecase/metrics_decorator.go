package usecase

import (
	"context"
	"time"

	"github.com/colorsync/colorsync/internal/metrics"
	"github.com/colorsync/colorsync/internal/role/domain"
)

// reconcileEngineWithMetrics decorates ReconcileEngine with metrics
// instrumentation.
type reconcileEngineWithMetrics struct {
	next    ReconcileEngine
	metrics metrics.BusinessMetrics
}

// NewReconcileEngineWithMetrics wraps a ReconcileEngine with metrics
// recording for each reconcile operation.
func NewReconcileEngineWithMetrics(engine ReconcileEngine, m metrics.BusinessMetrics) ReconcileEngine {
	return &reconcileEngineWithMetrics{
		next:    engine,
		metrics: m,
	}
}

// record reports one operation's status and duration under the "role" domain.
func (r *reconcileEngineWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	r.metrics.RecordOperation(ctx, "role", operation, status)
	r.metrics.RecordDuration(ctx, "role", operation, time.Since(start), status)
}

// ApplyColor records metrics for create-or-update color applies.
func (r *reconcileEngineWithMetrics) ApplyColor(
	ctx context.Context,
	identity domain.Identity,
	color int,
) (*domain.Role, error) {
	start := time.Now()
	role, err := r.next.ApplyColor(ctx, identity, color)
	r.record(ctx, "apply_color", start, err)
	return role, err
}

// SetColor records metrics for update-only color changes.
func (r *reconcileEngineWithMetrics) SetColor(
	ctx context.Context,
	identity domain.Identity,
	color int,
) (*domain.Role, error) {
	start := time.Now()
	role, err := r.next.SetColor(ctx, identity, color)
	r.record(ctx, "set_color", start, err)
	return role, err
}

// Rename records metrics for rename operations.
func (r *reconcileEngineWithMetrics) Rename(
	ctx context.Context,
	identity domain.Identity,
	newBase string,
) (*domain.Role, error) {
	start := time.Now()
	role, err := r.next.Rename(ctx, identity, newBase)
	r.record(ctx, "rename", start, err)
	return role, err
}

// MigrateLegacyName records metrics for name encoding migrations.
func (r *reconcileEngineWithMetrics) MigrateLegacyName(
	ctx context.Context,
	identity domain.Identity,
) (*domain.Role, error) {
	start := time.Now()
	role, err := r.next.MigrateLegacyName(ctx, identity)
	r.record(ctx, "migrate_name", start, err)
	return role, err
}

// Clear records metrics for role removals.
func (r *reconcileEngineWithMetrics) Clear(ctx context.Context, identity domain.Identity) error {
	start := time.Now()
	err := r.next.Clear(ctx, identity)
	r.record(ctx, "clear", start, err)
	return err
}
