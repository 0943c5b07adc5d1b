package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/colorsync/colorsync/internal/role/domain"
)

// MockReconcileEngine is a mock implementation of usecase.ReconcileEngine for
// testing handlers and commands.
type MockReconcileEngine struct {
	mock.Mock
}

// ApplyColor mocks the ApplyColor method of ReconcileEngine.
func (m *MockReconcileEngine) ApplyColor(
	ctx context.Context,
	identity domain.Identity,
	color int,
) (*domain.Role, error) {
	args := m.Called(ctx, identity, color)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Role), args.Error(1)
}

// SetColor mocks the SetColor method of ReconcileEngine.
func (m *MockReconcileEngine) SetColor(
	ctx context.Context,
	identity domain.Identity,
	color int,
) (*domain.Role, error) {
	args := m.Called(ctx, identity, color)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Role), args.Error(1)
}

// Rename mocks the Rename method of ReconcileEngine.
func (m *MockReconcileEngine) Rename(
	ctx context.Context,
	identity domain.Identity,
	newBase string,
) (*domain.Role, error) {
	args := m.Called(ctx, identity, newBase)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Role), args.Error(1)
}

// MigrateLegacyName mocks the MigrateLegacyName method of ReconcileEngine.
func (m *MockReconcileEngine) MigrateLegacyName(
	ctx context.Context,
	identity domain.Identity,
) (*domain.Role, error) {
	args := m.Called(ctx, identity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Role), args.Error(1)
}

// Clear mocks the Clear method of ReconcileEngine.
func (m *MockReconcileEngine) Clear(ctx context.Context, identity domain.Identity) error {
	args := m.Called(ctx, identity)
	return args.Error(0)
}
