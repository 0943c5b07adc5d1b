package usecase

import (
	"context"
	"log/slog"

	apperrors "github.com/colorsync/colorsync/internal/errors"
	"github.com/colorsync/colorsync/internal/role/domain"
	roleService "github.com/colorsync/colorsync/internal/role/service"
)

// Audit reasons recorded on directory mutations.
const (
	reasonCreate  = "Create personal color role"
	reasonAttach  = "Attach personal color role"
	reasonUpdate  = "Update personal color"
	reasonEnsure  = "Ensure personal color role attached"
	reasonRename  = "Rename personal color role"
	reasonMigrate = "Migrate personal color role name encoding"
	reasonClear   = "Remove personal color role"
)

// reconcileEngine implements ReconcileEngine. Every mutating operation runs
// under the identity's lock and re-fetches actor capabilities; guard results
// are never cached across calls. A failed step aborts the whole operation
// with no partial mutation.
type reconcileEngine struct {
	directory Directory
	locator   RoleLocator
	guard     HierarchyGuard
	encoding  roleService.NameEncoding
	locks     *identityLocks
	logger    *slog.Logger
}

// NewReconcileEngine creates a ReconcileEngine with its collaborators.
func NewReconcileEngine(
	directory Directory,
	locator RoleLocator,
	guard HierarchyGuard,
	encoding roleService.NameEncoding,
	logger *slog.Logger,
) ReconcileEngine {
	return &reconcileEngine{
		directory: directory,
		locator:   locator,
		guard:     guard,
		encoding:  encoding,
		locks:     newIdentityLocks(),
		logger:    logger,
	}
}

// ApplyColor is the primary operation: create the personal role if absent,
// otherwise recolor it in place, and ensure it is attached to the member.
func (e *reconcileEngine) ApplyColor(
	ctx context.Context,
	identity domain.Identity,
	color int,
) (*domain.Role, error) {
	release := e.locks.acquire(identity)
	defer release()

	// Resolve the workspace before the member so an unknown workspace is
	// reported as such rather than as an unknown member.
	if _, err := e.directory.GetWorkspace(ctx, identity.WorkspaceID); err != nil {
		return nil, err
	}

	member, err := e.directory.GetMember(ctx, identity.WorkspaceID, identity.UserID)
	if err != nil {
		return nil, err
	}

	role, err := e.locator.Find(ctx, identity, member)
	if err != nil {
		return nil, err
	}

	actor, err := e.directory.ActorCapabilities(ctx, identity.WorkspaceID)
	if err != nil {
		return nil, err
	}

	if role == nil {
		return e.createRole(ctx, identity, actor, color)
	}

	if err := e.guard.Check(actor, role); err != nil {
		return nil, err
	}

	updated, err := e.directory.EditRole(ctx, identity.WorkspaceID, role.ID, &domain.RolePatch{
		Color:  &color,
		Reason: reasonUpdate,
	})
	if err != nil {
		return nil, err
	}

	// The member snapshot may be stale; attaching an already-attached role
	// is a no-op on the directory side.
	if err := e.directory.AttachRole(ctx, identity.WorkspaceID, identity.UserID, updated.ID, reasonEnsure); err != nil {
		return nil, err
	}

	e.logger.Debug("personal role recolored",
		slog.String("identity", identity.Key()),
		slog.Int64("role_id", updated.ID),
		slog.Int("color", color))

	return updated, nil
}

// createRole performs the Absent -> Created transition: compose the default
// name, create the role with empty permissions, best-effort place it just
// below the actor's top rank, and attach it to the member.
func (e *reconcileEngine) createRole(
	ctx context.Context,
	identity domain.Identity,
	actor *domain.ActorCapabilities,
	color int,
) (*domain.Role, error) {
	if err := e.guard.CheckActor(actor); err != nil {
		return nil, err
	}

	name, err := e.encoding.Compose(domain.DefaultRoleBase, identity.UserID)
	if err != nil {
		return nil, err
	}

	created, err := e.directory.CreateRole(ctx, identity.WorkspaceID, &domain.CreateRoleInput{
		Name:   name,
		Color:  color,
		Reason: reasonCreate,
	})
	if err != nil {
		return nil, err
	}

	// Failure to reposition is non-fatal: the role works at any rank, it is
	// just less likely to win the member's display color.
	if position := actor.TopRankPosition - 1; position > 0 {
		repositioned, err := e.directory.EditRole(ctx, identity.WorkspaceID, created.ID, &domain.RolePatch{
			Position: &position,
			Reason:   reasonCreate,
		})
		if err != nil {
			e.logger.Warn("failed to reposition personal role",
				slog.String("identity", identity.Key()),
				slog.Int64("role_id", created.ID),
				slog.Any("error", err))
		} else {
			created = repositioned
		}
	}

	if err := e.directory.AttachRole(ctx, identity.WorkspaceID, identity.UserID, created.ID, reasonAttach); err != nil {
		return nil, err
	}

	e.logger.Info("personal role created",
		slog.String("identity", identity.Key()),
		slog.Int64("role_id", created.ID),
		slog.String("name", created.Name))

	return created, nil
}

// SetColor recolors an existing role, failing with ErrNotFound instead of
// creating.
func (e *reconcileEngine) SetColor(
	ctx context.Context,
	identity domain.Identity,
	color int,
) (*domain.Role, error) {
	release := e.locks.acquire(identity)
	defer release()

	member, err := e.directory.GetMember(ctx, identity.WorkspaceID, identity.UserID)
	if err != nil {
		return nil, err
	}

	role, err := e.locator.Find(ctx, identity, member)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, apperrors.Wrap(apperrors.ErrNotFound, "no personal role exists")
	}

	actor, err := e.directory.ActorCapabilities(ctx, identity.WorkspaceID)
	if err != nil {
		return nil, err
	}
	if err := e.guard.Check(actor, role); err != nil {
		return nil, err
	}

	updated, err := e.directory.EditRole(ctx, identity.WorkspaceID, role.ID, &domain.RolePatch{
		Color:  &color,
		Reason: reasonUpdate,
	})
	if err != nil {
		return nil, err
	}

	if err := e.directory.AttachRole(ctx, identity.WorkspaceID, identity.UserID, updated.ID, reasonEnsure); err != nil {
		return nil, err
	}

	return updated, nil
}

// Rename recomposes the role name from a new visible base under the current
// encoding.
func (e *reconcileEngine) Rename(
	ctx context.Context,
	identity domain.Identity,
	newBase string,
) (*domain.Role, error) {
	// Validate before touching the directory: a base that matches a suffix
	// shape would spoof another identity's link.
	name, err := e.encoding.Compose(newBase, identity.UserID)
	if err != nil {
		return nil, err
	}

	release := e.locks.acquire(identity)
	defer release()

	member, err := e.directory.GetMember(ctx, identity.WorkspaceID, identity.UserID)
	if err != nil {
		return nil, err
	}

	role, err := e.locator.Find(ctx, identity, member)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, apperrors.Wrap(apperrors.ErrNotFound, "no personal role exists")
	}

	actor, err := e.directory.ActorCapabilities(ctx, identity.WorkspaceID)
	if err != nil {
		return nil, err
	}
	if err := e.guard.Check(actor, role); err != nil {
		return nil, err
	}

	updated, err := e.directory.EditRole(ctx, identity.WorkspaceID, role.ID, &domain.RolePatch{
		Name:   &name,
		Reason: reasonRename,
	})
	if err != nil {
		return nil, err
	}

	e.logger.Info("personal role renamed",
		slog.String("identity", identity.Key()),
		slog.Int64("role_id", updated.ID),
		slog.String("name", updated.Name))

	return updated, nil
}

// MigrateLegacyName rewrites a role discovered under the legacy encoding
// into the current scheme, preserving the visible base. Roles already on the
// current scheme are returned unchanged.
func (e *reconcileEngine) MigrateLegacyName(
	ctx context.Context,
	identity domain.Identity,
) (*domain.Role, error) {
	release := e.locks.acquire(identity)
	defer release()

	member, err := e.directory.GetMember(ctx, identity.WorkspaceID, identity.UserID)
	if err != nil {
		return nil, err
	}

	role, err := e.locator.Find(ctx, identity, member)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, apperrors.Wrap(apperrors.ErrNotFound, "no personal role exists")
	}

	if !e.encoding.IsLegacy(role.Name, identity.UserID) {
		return role, nil
	}

	base := e.encoding.VisibleBase(role.Name)
	name, err := e.encoding.Compose(base, identity.UserID)
	if err != nil {
		// A stripped base can still look like a suffix; fall back to the
		// default rather than refusing the migration.
		name, err = e.encoding.Compose(domain.DefaultRoleBase, identity.UserID)
		if err != nil {
			return nil, err
		}
	}

	actor, err := e.directory.ActorCapabilities(ctx, identity.WorkspaceID)
	if err != nil {
		return nil, err
	}
	if err := e.guard.Check(actor, role); err != nil {
		return nil, err
	}

	updated, err := e.directory.EditRole(ctx, identity.WorkspaceID, role.ID, &domain.RolePatch{
		Name:   &name,
		Reason: reasonMigrate,
	})
	if err != nil {
		return nil, err
	}

	e.logger.Info("personal role migrated to current name encoding",
		slog.String("identity", identity.Key()),
		slog.Int64("role_id", updated.ID),
		slog.String("name", updated.Name))

	return updated, nil
}

// Clear deletes the identity's personal role, returning to the Absent state.
// A member who already left the workspace can still have their role cleared.
func (e *reconcileEngine) Clear(ctx context.Context, identity domain.Identity) error {
	release := e.locks.acquire(identity)
	defer release()

	member, err := e.directory.GetMember(ctx, identity.WorkspaceID, identity.UserID)
	if err != nil && !apperrors.Is(err, apperrors.ErrNotFound) {
		return err
	}

	role, err := e.locator.Find(ctx, identity, member)
	if err != nil {
		return err
	}
	if role == nil {
		return apperrors.Wrap(apperrors.ErrNotFound, "no personal role exists")
	}

	actor, err := e.directory.ActorCapabilities(ctx, identity.WorkspaceID)
	if err != nil {
		return err
	}
	if err := e.guard.Check(actor, role); err != nil {
		return err
	}

	if err := e.directory.DeleteRole(ctx, identity.WorkspaceID, role.ID, reasonClear); err != nil {
		return err
	}

	e.logger.Info("personal role removed",
		slog.String("identity", identity.Key()),
		slog.Int64("role_id", role.ID))

	return nil
}
