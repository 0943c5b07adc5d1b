package directory

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/singleflight"

	"github.com/colorsync/colorsync/internal/role/domain"
	"github.com/colorsync/colorsync/internal/role/usecase"
)

// CachedDirectory decorates a Directory with a TTL-bounded member cache.
// Concurrent fetches for the same member collapse into one remote call.
// Mutations that change a member's role list invalidate their entry.
type CachedDirectory struct {
	next    usecase.Directory
	members *expirable.LRU[string, *domain.Member]
	group   singleflight.Group
}

// NewCachedDirectory wraps next with a member cache of the given size and TTL.
func NewCachedDirectory(next usecase.Directory, size int, ttl time.Duration) *CachedDirectory {
	return &CachedDirectory{
		next:    next,
		members: expirable.NewLRU[string, *domain.Member](size, nil, ttl),
	}
}

func memberKey(workspaceID, userID int64) string {
	return fmt.Sprintf("%d:%d", workspaceID, userID)
}

// GetMember returns the cached member when fresh, otherwise fetches remotely.
func (c *CachedDirectory) GetMember(ctx context.Context, workspaceID, userID int64) (*domain.Member, error) {
	key := memberKey(workspaceID, userID)
	if member, ok := c.members.Get(key); ok {
		return member, nil
	}

	value, err, _ := c.group.Do(key, func() (any, error) {
		member, err := c.next.GetMember(ctx, workspaceID, userID)
		if err != nil {
			return nil, err
		}
		c.members.Add(key, member)
		return member, nil
	})
	if err != nil {
		return nil, err
	}
	return value.(*domain.Member), nil
}

// AttachRole invalidates the member's cache entry after the attach succeeds.
func (c *CachedDirectory) AttachRole(ctx context.Context, workspaceID, userID, roleID int64, reason string) error {
	if err := c.next.AttachRole(ctx, workspaceID, userID, roleID, reason); err != nil {
		return err
	}
	c.members.Remove(memberKey(workspaceID, userID))
	return nil
}

// The remaining operations pass through unchanged.

func (c *CachedDirectory) GetWorkspace(ctx context.Context, workspaceID int64) (*domain.Workspace, error) {
	return c.next.GetWorkspace(ctx, workspaceID)
}

func (c *CachedDirectory) ListRoles(ctx context.Context, workspaceID int64) ([]domain.Role, error) {
	return c.next.ListRoles(ctx, workspaceID)
}

func (c *CachedDirectory) MemberRoles(
	ctx context.Context,
	workspaceID int64,
	member *domain.Member,
) ([]domain.Role, error) {
	return c.next.MemberRoles(ctx, workspaceID, member)
}

func (c *CachedDirectory) CreateRole(
	ctx context.Context,
	workspaceID int64,
	input *domain.CreateRoleInput,
) (*domain.Role, error) {
	return c.next.CreateRole(ctx, workspaceID, input)
}

func (c *CachedDirectory) EditRole(
	ctx context.Context,
	workspaceID, roleID int64,
	patch *domain.RolePatch,
) (*domain.Role, error) {
	return c.next.EditRole(ctx, workspaceID, roleID, patch)
}

func (c *CachedDirectory) DeleteRole(ctx context.Context, workspaceID, roleID int64, reason string) error {
	return c.next.DeleteRole(ctx, workspaceID, roleID, reason)
}

func (c *CachedDirectory) ActorCapabilities(
	ctx context.Context,
	workspaceID int64,
) (*domain.ActorCapabilities, error) {
	return c.next.ActorCapabilities(ctx, workspaceID)
}
