package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strconv"
	"strings"

	apperrors "github.com/colorsync/colorsync/internal/errors"
	"github.com/colorsync/colorsync/internal/role/domain"
)

// nameSuffixInfo versions the derived name-hash key, separate from the token
// signing key usage.
const nameSuffixInfo = "role-name-suffix-v1"

// suffixHexLength is the number of hex characters in the current-scheme
// suffix. Not collision-free in general, just at practical workspace scale.
const suffixHexLength = 6

var (
	// hashSuffixShape recognizes the current salted-hash suffix at the end of
	// a name: "-" followed by six lowercase hex characters.
	hashSuffixShape = regexp.MustCompile(`-[0-9a-f]{6}$`)

	// legacySuffixShape recognizes the legacy raw-identifier suffix: "-"
	// followed by a platform snowflake in decimal.
	legacySuffixShape = regexp.MustCompile(`-[0-9]{15,20}$`)
)

// suffixCodec is one version of the identity-linking suffix scheme. Adding a
// future scheme means appending a codec to the ordered list in newCodecs,
// not editing scan logic.
type suffixCodec struct {
	version string
	// suffix derives the suffix for a user under this codec.
	suffix func(userID int64) string
	// shape recognizes the "-<suffix>" pattern at the end of a name without
	// knowing the user.
	shape *regexp.Regexp
}

// links reports whether the name carries this codec's suffix for the user.
// Both halves of the codec must agree: the name ends with the user's suffix
// and that tail has the codec's recognized shape. A raw ID too short for the
// legacy shape never forms a link, so every linked name can also be stripped
// by VisibleBase.
func (c suffixCodec) links(name string, userID int64) bool {
	return strings.HasSuffix(name, "-"+c.suffix(userID)) && c.shape.MatchString(name)
}

// nameEncoding implements NameEncoding with an ordered codec version list,
// current scheme first.
type nameEncoding struct {
	codecs []suffixCodec
}

// NewNameEncoding creates a NameEncoding keyed by the workspace-wide shared
// secret. The current scheme hashes the user ID with a key derived from the
// secret; the legacy scheme is the raw decimal user ID.
func NewNameEncoding(secret []byte) (NameEncoding, error) {
	hashKey, err := deriveKey(secret, nameSuffixInfo)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to derive name suffix key")
	}
	return &nameEncoding{codecs: newCodecs(hashKey)}, nil
}

// newCodecs returns the known suffix codecs in preference order.
func newCodecs(hashKey []byte) []suffixCodec {
	return []suffixCodec{
		{
			version: "hash-v1",
			suffix: func(userID int64) string {
				mac := hmac.New(sha256.New, hashKey)
				mac.Write([]byte(strconv.FormatInt(userID, 10)))
				return hex.EncodeToString(mac.Sum(nil))[:suffixHexLength]
			},
			shape: hashSuffixShape,
		},
		{
			version: "legacy-raw-id",
			suffix: func(userID int64) string {
				return strconv.FormatInt(userID, 10)
			},
			shape: legacySuffixShape,
		},
	}
}

// Suffix returns the current-scheme suffix: six lowercase hex characters,
// deterministic per user under a fixed secret.
func (n *nameEncoding) Suffix(userID int64) string {
	return n.codecs[0].suffix(userID)
}

// Compose builds "<base>-<suffix>" under the current scheme, truncating the
// base so the full name fits MaxRoleNameLength.
func (n *nameEncoding) Compose(base string, userID int64) (string, error) {
	if err := n.ValidateBase(base); err != nil {
		return "", err
	}

	suffix := n.Suffix(userID)
	maxBase := domain.MaxRoleNameLength - len(suffix) - 1
	if len(base) > maxBase {
		base = base[:maxBase]
	}
	return base + "-" + suffix, nil
}

// Matches reports whether the name ends with the suffix of any known codec
// for this user, current scheme tried first.
func (n *nameEncoding) Matches(name string, userID int64) bool {
	for _, codec := range n.codecs {
		if codec.links(name, userID) {
			return true
		}
	}
	return false
}

// VisibleBase strips the first recognized suffix pattern from the name. A
// name with no recognizable suffix is returned unchanged.
func (n *nameEncoding) VisibleBase(name string) string {
	for _, codec := range n.codecs {
		if loc := codec.shape.FindStringIndex(name); loc != nil {
			return name[:loc[0]]
		}
	}
	return name
}

// IsLegacy reports whether the name is linked to the user through the legacy
// codec rather than the current one.
func (n *nameEncoding) IsLegacy(name string, userID int64) bool {
	if n.codecs[0].links(name, userID) {
		return false
	}
	for _, codec := range n.codecs[1:] {
		if codec.links(name, userID) {
			return true
		}
	}
	return false
}

// DecodeLegacyUserID extracts the raw user ID from a legacy-suffixed name.
func (n *nameEncoding) DecodeLegacyUserID(name string) (int64, bool) {
	match := legacySuffixShape.FindString(name)
	if match == "" {
		return 0, false
	}
	userID, err := strconv.ParseInt(match[1:], 10, 64)
	if err != nil {
		return 0, false
	}
	return userID, true
}

// ValidateBase rejects a base name that itself ends in a suffix shape. A base
// like "Cool-a1b2c3" would collide with the composed form of another user's
// role and is refused outright.
func (n *nameEncoding) ValidateBase(base string) error {
	if strings.TrimSpace(base) == "" {
		return apperrors.Wrap(apperrors.ErrInvalidInput, "base name must not be blank")
	}
	for _, codec := range n.codecs {
		if codec.shape.MatchString(base) {
			return apperrors.Wrapf(apperrors.ErrInvalidInput,
				"base name must not end in a %s suffix pattern", codec.version)
		}
	}
	return nil
}
