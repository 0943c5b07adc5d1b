// Package service provides the cryptographic services behind capability
// tokens and identity-linked role names.
package service

import (
	"github.com/colorsync/colorsync/internal/role/domain"
)

// TokenCodec signs and verifies opaque capability tokens binding a
// (workspace, user) identity. Possession of a token is the sole
// authentication factor; tokens carry no expiry.
type TokenCodec interface {
	// Sign produces an opaque URL-safe token for the identity.
	Sign(identity domain.Identity) (string, error)

	// Verify recovers the identity from a token. Returns ErrInvalidSignature
	// if the token is structurally malformed or was not produced by Sign
	// with the current secret.
	Verify(token string) (domain.Identity, error)
}

// NameEncoding encodes and decodes the identity-linking suffix embedded in a
// role's display name. Multiple codec versions are supported for backward
// compatibility: the current salted-hash suffix and the legacy raw-identifier
// suffix. Decoding tries codecs in preference order, current first.
type NameEncoding interface {
	// Suffix returns the current-scheme suffix for a user: six lowercase hex
	// characters of a keyed hash of the user ID.
	Suffix(userID int64) string

	// Compose builds a full role name from a base and the current suffix,
	// truncating the base so the result fits the directory's name limit.
	// Returns ErrInvalidInput if the base itself matches a suffix shape.
	Compose(base string, userID int64) (string, error)

	// Matches reports whether the name carries the suffix of any known codec
	// version for the given user.
	Matches(name string, userID int64) bool

	// VisibleBase strips any recognized suffix pattern from the name, for
	// display purposes only.
	VisibleBase(name string) string

	// IsLegacy reports whether the name carries the legacy suffix for the
	// given user and not the current one.
	IsLegacy(name string, userID int64) bool

	// DecodeLegacyUserID extracts the user ID from a legacy-suffixed name.
	// Returns false if the name does not carry a legacy suffix.
	DecodeLegacyUserID(name string) (int64, bool)

	// ValidateBase rejects user-supplied base names that already end in a
	// pattern matching either suffix shape, to prevent suffix spoofing.
	ValidateBase(base string) error
}
