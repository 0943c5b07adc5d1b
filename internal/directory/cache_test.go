package directory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/colorsync/colorsync/internal/errors"
	"github.com/colorsync/colorsync/internal/role/domain"
	"github.com/colorsync/colorsync/internal/role/usecase/mocks"
)

func TestCachedDirectory_GetMember_CachesResult(t *testing.T) {
	inner := &mocks.MockDirectory{}
	inner.On("GetMember", mock.Anything, int64(1), int64(42)).
		Return(&domain.Member{UserID: 42, RoleIDs: []int64{7}}, nil).
		Once()

	cached := NewCachedDirectory(inner, 16, time.Minute)

	first, err := cached.GetMember(context.Background(), 1, 42)
	require.NoError(t, err)
	second, err := cached.GetMember(context.Background(), 1, 42)
	require.NoError(t, err)

	assert.Same(t, first, second)
	inner.AssertExpectations(t)
}

func TestCachedDirectory_GetMember_ExpiresAfterTTL(t *testing.T) {
	inner := &mocks.MockDirectory{}
	inner.On("GetMember", mock.Anything, int64(1), int64(42)).
		Return(&domain.Member{UserID: 42}, nil).
		Twice()

	cached := NewCachedDirectory(inner, 16, 10*time.Millisecond)

	_, err := cached.GetMember(context.Background(), 1, 42)
	require.NoError(t, err)

	time.Sleep(30 * time.Millisecond)

	_, err = cached.GetMember(context.Background(), 1, 42)
	require.NoError(t, err)
	inner.AssertExpectations(t)
}

func TestCachedDirectory_GetMember_DoesNotCacheErrors(t *testing.T) {
	inner := &mocks.MockDirectory{}
	inner.On("GetMember", mock.Anything, int64(1), int64(42)).
		Return(nil, apperrors.ErrNotFound).
		Once()
	inner.On("GetMember", mock.Anything, int64(1), int64(42)).
		Return(&domain.Member{UserID: 42}, nil).
		Once()

	cached := NewCachedDirectory(inner, 16, time.Minute)

	_, err := cached.GetMember(context.Background(), 1, 42)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	member, err := cached.GetMember(context.Background(), 1, 42)
	require.NoError(t, err)
	assert.Equal(t, int64(42), member.UserID)
	inner.AssertExpectations(t)
}

func TestCachedDirectory_AttachRole_InvalidatesMember(t *testing.T) {
	inner := &mocks.MockDirectory{}
	inner.On("GetMember", mock.Anything, int64(1), int64(42)).
		Return(&domain.Member{UserID: 42}, nil).
		Twice()
	inner.On("AttachRole", mock.Anything, int64(1), int64(42), int64(900), "attach").
		Return(nil).
		Once()

	cached := NewCachedDirectory(inner, 16, time.Minute)

	_, err := cached.GetMember(context.Background(), 1, 42)
	require.NoError(t, err)

	require.NoError(t, cached.AttachRole(context.Background(), 1, 42, 900, "attach"))

	_, err = cached.GetMember(context.Background(), 1, 42)
	require.NoError(t, err)
	inner.AssertExpectations(t)
}

func TestCachedDirectory_DistinctIdentitiesCachedSeparately(t *testing.T) {
	inner := &mocks.MockDirectory{}
	inner.On("GetMember", mock.Anything, int64(1), int64(42)).
		Return(&domain.Member{UserID: 42}, nil).
		Once()
	inner.On("GetMember", mock.Anything, int64(1), int64(43)).
		Return(&domain.Member{UserID: 43}, nil).
		Once()

	cached := NewCachedDirectory(inner, 16, time.Minute)

	first, err := cached.GetMember(context.Background(), 1, 42)
	require.NoError(t, err)
	second, err := cached.GetMember(context.Background(), 1, 43)
	require.NoError(t, err)

	assert.NotEqual(t, first.UserID, second.UserID)
	inner.AssertExpectations(t)
}

func TestCachedDirectory_PassThroughOperations(t *testing.T) {
	inner := &mocks.MockDirectory{}
	inner.On("GetWorkspace", mock.Anything, int64(1)).
		Return(&domain.Workspace{ID: 1, Name: "studio"}, nil)
	inner.On("ListRoles", mock.Anything, int64(1)).
		Return([]domain.Role{{ID: 7}}, nil)
	inner.On("DeleteRole", mock.Anything, int64(1), int64(7), "clear").
		Return(nil)

	cached := NewCachedDirectory(inner, 16, time.Minute)
	ctx := context.Background()

	workspace, err := cached.GetWorkspace(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "studio", workspace.Name)

	roles, err := cached.ListRoles(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, roles, 1)

	require.NoError(t, cached.DeleteRole(ctx, 1, 7, "clear"))
	inner.AssertExpectations(t)
}
