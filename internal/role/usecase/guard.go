package usecase

import (
	apperrors "github.com/colorsync/colorsync/internal/errors"
	"github.com/colorsync/colorsync/internal/role/domain"
)

// hierarchyGuard implements HierarchyGuard against a static protection set.
// The actor's capabilities are passed in by the caller, fetched fresh for
// every mutating operation.
type hierarchyGuard struct {
	protection *domain.ProtectionSet
}

// NewHierarchyGuard creates a HierarchyGuard with the configured protection
// set.
func NewHierarchyGuard(protection *domain.ProtectionSet) HierarchyGuard {
	return &hierarchyGuard{protection: protection}
}

// CheckActor fails when the actor lacks the role-management capability.
func (g *hierarchyGuard) CheckActor(actor *domain.ActorCapabilities) error {
	if actor == nil || !actor.CanManageRoles {
		return apperrors.Wrap(apperrors.ErrPermissionDenied, "actor lacks role management capability")
	}
	return nil
}

// Check validates capability, protection, and rank in that order. The first
// failing check aborts the operation before any directory call is issued.
func (g *hierarchyGuard) Check(actor *domain.ActorCapabilities, target *domain.Role) error {
	if err := g.CheckActor(actor); err != nil {
		return err
	}

	if g.protection.Contains(target.ID, target.Name) {
		return apperrors.Wrapf(apperrors.ErrPermissionDenied, "role %q is protected", target.Name)
	}

	if target.Position >= actor.TopRankPosition {
		return apperrors.Wrapf(apperrors.ErrPermissionDenied,
			"role %q outranks the actor (position %d >= %d)",
			target.Name, target.Position, actor.TopRankPosition)
	}

	return nil
}
