// Package directory implements the REST client for the external role
// directory, plus a caching layer for member lookups.
package directory

import (
	"strconv"

	apperrors "github.com/colorsync/colorsync/internal/errors"
	"github.com/colorsync/colorsync/internal/role/domain"
)

// PermissionManageRoles is the permission bit the acting account needs to
// create, edit, delete, or attach roles.
const PermissionManageRoles uint64 = 1 << 28

// Identifiers travel as decimal strings on the wire; they exceed the safe
// integer range of JSON numbers.

type wireWorkspace struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type wireRole struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Color       int    `json:"color"`
	Position    int    `json:"position"`
	Permissions string `json:"permissions"`
	Hoist       bool   `json:"hoist"`
	Mentionable bool   `json:"mentionable"`
}

type wireUser struct {
	ID string `json:"id"`
}

type wireMember struct {
	User  wireUser `json:"user"`
	Roles []string `json:"roles"`
}

type wireCreateRole struct {
	Name        string `json:"name"`
	Color       int    `json:"color"`
	Permissions string `json:"permissions"`
	Hoist       bool   `json:"hoist"`
	Mentionable bool   `json:"mentionable"`
}

type wireEditRole struct {
	Name     *string `json:"name,omitempty"`
	Color    *int    `json:"color,omitempty"`
	Position *int    `json:"position,omitempty"`
}

// wireError is the directory's error body shape.
type wireError struct {
	Message string `json:"message"`
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, apperrors.Wrapf(apperrors.ErrRemoteFailure, "malformed identifier %q", s)
	}
	return id, nil
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

func (w *wireWorkspace) toDomain() (*domain.Workspace, error) {
	id, err := parseID(w.ID)
	if err != nil {
		return nil, err
	}
	return &domain.Workspace{ID: id, Name: w.Name}, nil
}

func (w *wireRole) toDomain() (*domain.Role, error) {
	id, err := parseID(w.ID)
	if err != nil {
		return nil, err
	}

	permissions := uint64(0)
	if w.Permissions != "" {
		permissions, err = strconv.ParseUint(w.Permissions, 10, 64)
		if err != nil {
			return nil, apperrors.Wrapf(apperrors.ErrRemoteFailure, "malformed permissions %q", w.Permissions)
		}
	}

	return &domain.Role{
		ID:          id,
		Name:        w.Name,
		Color:       w.Color,
		Position:    w.Position,
		Permissions: permissions,
		Hoist:       w.Hoist,
		Mentionable: w.Mentionable,
	}, nil
}

func (w *wireMember) toDomain() (*domain.Member, error) {
	userID, err := parseID(w.User.ID)
	if err != nil {
		return nil, err
	}

	roleIDs := make([]int64, 0, len(w.Roles))
	for _, raw := range w.Roles {
		roleID, err := parseID(raw)
		if err != nil {
			return nil, err
		}
		roleIDs = append(roleIDs, roleID)
	}

	return &domain.Member{UserID: userID, RoleIDs: roleIDs}, nil
}
