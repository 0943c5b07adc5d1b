// Package mocks provides mock implementations for testing the reconciler.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/colorsync/colorsync/internal/role/domain"
)

// MockDirectory is a mock implementation of usecase.Directory for testing.
type MockDirectory struct {
	mock.Mock
}

// GetWorkspace mocks the GetWorkspace method of Directory.
func (m *MockDirectory) GetWorkspace(ctx context.Context, workspaceID int64) (*domain.Workspace, error) {
	args := m.Called(ctx, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Workspace), args.Error(1)
}

// GetMember mocks the GetMember method of Directory.
func (m *MockDirectory) GetMember(ctx context.Context, workspaceID, userID int64) (*domain.Member, error) {
	args := m.Called(ctx, workspaceID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Member), args.Error(1)
}

// ListRoles mocks the ListRoles method of Directory.
func (m *MockDirectory) ListRoles(ctx context.Context, workspaceID int64) ([]domain.Role, error) {
	args := m.Called(ctx, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Role), args.Error(1)
}

// MemberRoles mocks the MemberRoles method of Directory.
func (m *MockDirectory) MemberRoles(
	ctx context.Context,
	workspaceID int64,
	member *domain.Member,
) ([]domain.Role, error) {
	args := m.Called(ctx, workspaceID, member)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Role), args.Error(1)
}

// CreateRole mocks the CreateRole method of Directory.
func (m *MockDirectory) CreateRole(
	ctx context.Context,
	workspaceID int64,
	input *domain.CreateRoleInput,
) (*domain.Role, error) {
	args := m.Called(ctx, workspaceID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Role), args.Error(1)
}

// EditRole mocks the EditRole method of Directory.
func (m *MockDirectory) EditRole(
	ctx context.Context,
	workspaceID, roleID int64,
	patch *domain.RolePatch,
) (*domain.Role, error) {
	args := m.Called(ctx, workspaceID, roleID, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Role), args.Error(1)
}

// DeleteRole mocks the DeleteRole method of Directory.
func (m *MockDirectory) DeleteRole(ctx context.Context, workspaceID, roleID int64, reason string) error {
	args := m.Called(ctx, workspaceID, roleID, reason)
	return args.Error(0)
}

// AttachRole mocks the AttachRole method of Directory.
func (m *MockDirectory) AttachRole(ctx context.Context, workspaceID, userID, roleID int64, reason string) error {
	args := m.Called(ctx, workspaceID, userID, roleID, reason)
	return args.Error(0)
}

// ActorCapabilities mocks the ActorCapabilities method of Directory.
func (m *MockDirectory) ActorCapabilities(
	ctx context.Context,
	workspaceID int64,
) (*domain.ActorCapabilities, error) {
	args := m.Called(ctx, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ActorCapabilities), args.Error(1)
}
