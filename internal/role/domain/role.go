// Package domain defines the core entities for personal color role management.
package domain

import (
	"fmt"
	"time"
)

// DefaultRoleBase is the display base name used when a personal role is first
// created. The identity-linking suffix is appended by the name encoding.
const DefaultRoleBase = "NameColor"

// MaxRoleNameLength is the directory's hard limit on role display names.
const MaxRoleNameLength = 100

// Identity is a stable (workspace, user) pair. Identifiers are assigned by the
// external platform and never generated internally.
type Identity struct {
	WorkspaceID int64
	UserID      int64
}

// Key returns the canonical string form used for lock keys and cache keys.
func (i Identity) Key() string {
	return fmt.Sprintf("%d:%d", i.WorkspaceID, i.UserID)
}

// Role is a personal color role as seen in the external directory. At most one
// role may exist per identity per workspace; the reconciler enforces this, the
// directory does not.
type Role struct {
	ID          int64
	Name        string
	Color       int
	Position    int
	Permissions uint64
	Hoist       bool
	Mentionable bool
}

// Workspace is the shared space in which members and roles live.
type Workspace struct {
	ID   int64
	Name string
}

// Member is a workspace member with the role identifiers currently assigned
// to them.
type Member struct {
	UserID    int64
	RoleIDs   []int64
	FetchedAt time.Time
}

// HasRole reports whether the member currently has the given role attached.
func (m *Member) HasRole(roleID int64) bool {
	for _, id := range m.RoleIDs {
		if id == roleID {
			return true
		}
	}
	return false
}

// ActorCapabilities describes what the acting principal (the service's own
// directory account) may do in a workspace. Re-fetched on every mutating call
// since rank can change between calls.
type ActorCapabilities struct {
	// CanManageRoles is true when the actor holds the role-management capability.
	CanManageRoles bool
	// TopRankPosition is the actor's senior-most rank position. The actor can
	// only manage roles strictly below it.
	TopRankPosition int
}

// CreateRoleInput carries the fields for creating a personal role. Permissions
// are always empty and the role is never hoisted or mentionable.
type CreateRoleInput struct {
	Name   string
	Color  int
	Reason string
}

// RolePatch carries an in-place edit of a role. Nil fields are left unchanged.
type RolePatch struct {
	Name     *string
	Color    *int
	Position *int
	Reason   string
}

// ProtectionSet holds roles that must never be mutated, identified by ID or by
// case-insensitive name. Supplied as static configuration.
type ProtectionSet struct {
	ids   map[int64]struct{}
	names map[string]struct{}
}

// NewProtectionSet builds a protection set from configured IDs and names.
// Name matching is case-insensitive.
func NewProtectionSet(ids []int64, names []string) *ProtectionSet {
	p := &ProtectionSet{
		ids:   make(map[int64]struct{}, len(ids)),
		names: make(map[string]struct{}, len(names)),
	}
	for _, id := range ids {
		p.ids[id] = struct{}{}
	}
	for _, name := range names {
		p.names[foldName(name)] = struct{}{}
	}
	return p
}

// Contains reports whether the role is protected by ID or name.
func (p *ProtectionSet) Contains(roleID int64, roleName string) bool {
	if _, ok := p.ids[roleID]; ok {
		return true
	}
	_, ok := p.names[foldName(roleName)]
	return ok
}

// foldName lowercases ASCII letters only. Directory role names are compared
// the same way the platform compares them.
func foldName(s string) string {
	b := []byte(s)
	for i, c := range b {
		if 'A' <= c && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
