// Package usecase implements the personal color role reconciler: locating a
// member's role, guarding mutations, and applying create-or-update-or-delete
// state transitions against the external role directory.
package usecase

import (
	"context"

	"github.com/colorsync/colorsync/internal/role/domain"
)

// Directory is the collaborator contract with the external role directory.
// All operations are remote and I/O bound; implementations must honor the
// context for cancellation.
type Directory interface {
	// GetWorkspace fetches a workspace by ID. Returns ErrNotFound if the
	// workspace does not exist or the actor is not in it.
	GetWorkspace(ctx context.Context, workspaceID int64) (*domain.Workspace, error)

	// GetMember fetches a workspace member, from a local cache when fresh,
	// otherwise remotely. Returns ErrNotFound for unknown members.
	GetMember(ctx context.Context, workspaceID, userID int64) (*domain.Member, error)

	// ListRoles returns the workspace's full role list.
	ListRoles(ctx context.Context, workspaceID int64) ([]domain.Role, error)

	// MemberRoles returns the roles currently assigned to the member.
	MemberRoles(ctx context.Context, workspaceID int64, member *domain.Member) ([]domain.Role, error)

	// CreateRole creates a role with empty permissions, not hoisted, not
	// mentionable.
	CreateRole(ctx context.Context, workspaceID int64, input *domain.CreateRoleInput) (*domain.Role, error)

	// EditRole applies an in-place patch to a role.
	EditRole(ctx context.Context, workspaceID, roleID int64, patch *domain.RolePatch) (*domain.Role, error)

	// DeleteRole removes a role from the workspace.
	DeleteRole(ctx context.Context, workspaceID, roleID int64, reason string) error

	// AttachRole assigns a role to a member.
	AttachRole(ctx context.Context, workspaceID, userID, roleID int64, reason string) error

	// ActorCapabilities reports whether the acting principal holds the
	// role-management capability and its senior-most rank position.
	ActorCapabilities(ctx context.Context, workspaceID int64) (*domain.ActorCapabilities, error)
}

// RoleLocator finds the one role belonging to an identity by scanning for a
// name matching any known suffix encoding.
type RoleLocator interface {
	// Find returns the identity's personal role, or nil if none exists.
	// A nil role with nil error means "absent", not a failure.
	Find(ctx context.Context, identity domain.Identity, member *domain.Member) (*domain.Role, error)
}

// HierarchyGuard validates that the acting principal may mutate a target
// role. Checks are re-evaluated on every mutating call, never cached.
type HierarchyGuard interface {
	// Check returns ErrPermissionDenied if the actor lacks the
	// role-management capability, the target is protected, or the target's
	// rank is at or above the actor's top rank.
	Check(actor *domain.ActorCapabilities, target *domain.Role) error

	// CheckActor validates only the actor's capability, for transitions with
	// no existing target (first creation).
	CheckActor(actor *domain.ActorCapabilities) error
}

// ReconcileEngine drives the personal role through its lifecycle: absent
// until the first apply creates it, updated on every color or name change,
// absent again after a clear.
type ReconcileEngine interface {
	// ApplyColor creates the role if absent, otherwise edits its color in
	// place. Ensures the role is attached to the member either way.
	ApplyColor(ctx context.Context, identity domain.Identity, color int) (*domain.Role, error)

	// SetColor edits the color of an existing role. Returns ErrNotFound
	// instead of creating when no role exists.
	SetColor(ctx context.Context, identity domain.Identity, color int) (*domain.Role, error)

	// Rename recomposes the role name from a new base under the current
	// encoding. Returns ErrInvalidInput if the base matches a suffix shape,
	// ErrNotFound if no role exists.
	Rename(ctx context.Context, identity domain.Identity, newBase string) (*domain.Role, error)

	// MigrateLegacyName rewrites a legacy-suffixed role name under the
	// current encoding, keeping the visible base. No-op when the name is
	// already current; ErrNotFound when no role exists.
	MigrateLegacyName(ctx context.Context, identity domain.Identity) (*domain.Role, error)

	// Clear deletes the identity's role. Returns ErrNotFound if absent.
	Clear(ctx context.Context, identity domain.Identity) error
}
