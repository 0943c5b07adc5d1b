package usecase

import (
	"context"

	apperrors "github.com/colorsync/colorsync/internal/errors"
	"github.com/colorsync/colorsync/internal/role/domain"
	roleService "github.com/colorsync/colorsync/internal/role/service"
)

// roleLocator implements RoleLocator with a two-pass linear scan: the
// member's assigned roles first, then the full workspace list. No index is
// kept; the directory's snapshot is the source of truth.
type roleLocator struct {
	directory Directory
	encoding  roleService.NameEncoding
}

// NewRoleLocator creates a RoleLocator backed by the directory and the known
// suffix encodings.
func NewRoleLocator(directory Directory, encoding roleService.NameEncoding) RoleLocator {
	return &roleLocator{
		directory: directory,
		encoding:  encoding,
	}
}

// Find scans for the identity's personal role. The data model allows at most
// one; if more than one exists the first encountered wins and the anomaly is
// not corrected here.
func (l *roleLocator) Find(
	ctx context.Context,
	identity domain.Identity,
	member *domain.Member,
) (*domain.Role, error) {
	// Assigned roles first: the common case is a member who already has
	// their personal role attached.
	if member != nil {
		assigned, err := l.directory.MemberRoles(ctx, identity.WorkspaceID, member)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to list member roles")
		}
		if role := l.firstMatch(assigned, identity.UserID); role != nil {
			return role, nil
		}
	}

	// Fall back to the full workspace list: covers roles that exist but were
	// detached from the member.
	all, err := l.directory.ListRoles(ctx, identity.WorkspaceID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list workspace roles")
	}
	return l.firstMatch(all, identity.UserID), nil
}

// firstMatch returns the first role whose name matches any known encoding
// for the user, or nil.
func (l *roleLocator) firstMatch(roles []domain.Role, userID int64) *domain.Role {
	for i := range roles {
		if l.encoding.Matches(roles[i].Name, userID) {
			return &roles[i]
		}
	}
	return nil
}
