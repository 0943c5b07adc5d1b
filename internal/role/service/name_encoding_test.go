package service

import (
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/colorsync/colorsync/internal/errors"
	"github.com/colorsync/colorsync/internal/role/domain"
)

func newTestEncoding(t *testing.T, secret string) NameEncoding {
	t.Helper()
	encoding, err := NewNameEncoding([]byte(secret))
	require.NoError(t, err)
	return encoding
}

func TestNameEncoding_Suffix(t *testing.T) {
	encoding := newTestEncoding(t, "test-secret")

	t.Run("six lowercase hex characters", func(t *testing.T) {
		suffix := encoding.Suffix(42)
		assert.Regexp(t, regexp.MustCompile(`^[0-9a-f]{6}$`), suffix)
	})

	t.Run("deterministic", func(t *testing.T) {
		assert.Equal(t, encoding.Suffix(42), encoding.Suffix(42))
	})

	t.Run("distinct users get distinct suffixes", func(t *testing.T) {
		seen := map[string]int64{}
		for userID := int64(1); userID <= 200; userID++ {
			suffix := encoding.Suffix(userID)
			if prev, ok := seen[suffix]; ok {
				t.Fatalf("suffix collision between users %d and %d", prev, userID)
			}
			seen[suffix] = userID
		}
	})

	t.Run("depends on secret", func(t *testing.T) {
		other := newTestEncoding(t, "other-secret")
		assert.NotEqual(t, encoding.Suffix(42), other.Suffix(42))
	})
}

func TestNameEncoding_Compose(t *testing.T) {
	encoding := newTestEncoding(t, "test-secret")

	t.Run("appends current suffix", func(t *testing.T) {
		name, err := encoding.Compose("NameColor", 42)
		require.NoError(t, err)
		assert.Equal(t, "NameColor-"+encoding.Suffix(42), name)
	})

	t.Run("truncates long base to fit name limit", func(t *testing.T) {
		longBase := strings.Repeat("x", 200)
		name, err := encoding.Compose(longBase, 42)
		require.NoError(t, err)
		assert.Len(t, name, domain.MaxRoleNameLength)
		assert.True(t, strings.HasSuffix(name, "-"+encoding.Suffix(42)))
	})

	t.Run("rejects base matching hash suffix shape", func(t *testing.T) {
		_, err := encoding.Compose("Cool-a1b2c3", 42)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})

	t.Run("rejects base matching legacy suffix shape", func(t *testing.T) {
		_, err := encoding.Compose("Cool-123456789012345", 42)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})

	t.Run("rejects blank base", func(t *testing.T) {
		_, err := encoding.Compose("   ", 42)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})

	t.Run("accepts base with short numeric tail", func(t *testing.T) {
		// "Cool-42" cannot link to any user, so it is a safe base.
		name, err := encoding.Compose("Cool-42", 42)
		require.NoError(t, err)
		assert.Equal(t, "Cool-42-"+encoding.Suffix(42), name)
	})
}

func TestNameEncoding_Matches(t *testing.T) {
	encoding := newTestEncoding(t, "test-secret")
	const userID = int64(123456789012345)

	t.Run("matches current scheme", func(t *testing.T) {
		name, err := encoding.Compose("NameColor", userID)
		require.NoError(t, err)
		assert.True(t, encoding.Matches(name, userID))
	})

	t.Run("matches legacy scheme", func(t *testing.T) {
		assert.True(t, encoding.Matches("NameColor-123456789012345", userID))
	})

	t.Run("does not match another user", func(t *testing.T) {
		name, err := encoding.Compose("NameColor", userID)
		require.NoError(t, err)
		assert.False(t, encoding.Matches(name, userID+1))
		assert.False(t, encoding.Matches("NameColor-123456789012345", userID+1))
	})

	t.Run("does not match unsuffixed names", func(t *testing.T) {
		assert.False(t, encoding.Matches("admin", userID))
		assert.False(t, encoding.Matches("NameColor", userID))
	})

	t.Run("short raw id does not form a legacy link", func(t *testing.T) {
		// The legacy shape only covers snowflake-sized IDs; a short numeric
		// tail is part of the visible name, not an identity link.
		assert.False(t, encoding.Matches("NameColor-42", 42))
		assert.False(t, encoding.Matches("Team-7", 7))
	})
}

func TestNameEncoding_VisibleBase(t *testing.T) {
	encoding := newTestEncoding(t, "test-secret")

	t.Run("strips current suffix", func(t *testing.T) {
		name, err := encoding.Compose("NameColor", 42)
		require.NoError(t, err)
		assert.Equal(t, "NameColor", encoding.VisibleBase(name))
	})

	t.Run("strips legacy suffix", func(t *testing.T) {
		assert.Equal(t, "NameColor", encoding.VisibleBase("NameColor-123456789012345"))
	})

	t.Run("leaves unsuffixed names alone", func(t *testing.T) {
		assert.Equal(t, "Moderator", encoding.VisibleBase("Moderator"))
	})
}

func TestNameEncoding_IsLegacy(t *testing.T) {
	encoding := newTestEncoding(t, "test-secret")
	const userID = int64(123456789012345)

	t.Run("legacy name", func(t *testing.T) {
		assert.True(t, encoding.IsLegacy("NameColor-123456789012345", userID))
	})

	t.Run("current name", func(t *testing.T) {
		name, err := encoding.Compose("NameColor", userID)
		require.NoError(t, err)
		assert.False(t, encoding.IsLegacy(name, userID))
	})

	t.Run("unrelated name", func(t *testing.T) {
		assert.False(t, encoding.IsLegacy("admin", userID))
	})

	t.Run("short raw suffix is never legacy", func(t *testing.T) {
		assert.False(t, encoding.IsLegacy("NameColor-42", 42))
	})
}

func TestNameEncoding_LegacyLinkAndShapeAgree(t *testing.T) {
	encoding := newTestEncoding(t, "test-secret")

	// Every name IsLegacy claims for a user must also be strippable, so a
	// migration never re-suffixes a name it cannot reduce to its base.
	for _, userID := range []int64{7, 42, 99999999999999, 123456789012345, 987654321098765432} {
		name := "NameColor-" + strconv.FormatInt(userID, 10)
		if encoding.IsLegacy(name, userID) {
			assert.Equal(t, "NameColor", encoding.VisibleBase(name), "user %d", userID)
		} else {
			assert.Equal(t, name, encoding.VisibleBase(name), "user %d", userID)
		}
	}
}

func TestNameEncoding_DecodeLegacyUserID(t *testing.T) {
	encoding := newTestEncoding(t, "test-secret")

	t.Run("decodes raw identifier", func(t *testing.T) {
		userID, ok := encoding.DecodeLegacyUserID("NameColor-123456789012345")
		require.True(t, ok)
		assert.Equal(t, int64(123456789012345), userID)
	})

	t.Run("rejects current-scheme names", func(t *testing.T) {
		name, err := encoding.Compose("NameColor", 42)
		require.NoError(t, err)
		_, ok := encoding.DecodeLegacyUserID(name)
		assert.False(t, ok)
	})

	t.Run("rejects unsuffixed names", func(t *testing.T) {
		_, ok := encoding.DecodeLegacyUserID("admin")
		assert.False(t, ok)
	})
}
