package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/colorsync/colorsync/internal/errors"
)

func TestHexColor(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{name: "plain hex", value: "ff00aa", wantErr: false},
		{name: "with hash prefix", value: "#ff00aa", wantErr: false},
		{name: "uppercase", value: "FF00AA", wantErr: false},
		{name: "mixed case with hash", value: "#Ff00Aa", wantErr: false},
		{name: "too short", value: "fff", wantErr: true},
		{name: "too long", value: "ff00aab", wantErr: true},
		{name: "non-hex characters", value: "gg00aa", wantErr: true},
		{name: "double hash", value: "##ff00aa", wantErr: true},
		// String rules skip empty values; pairing with Required catches them.
		{name: "empty", value: "", wantErr: false},
		{name: "css color name", value: "tomato", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := HexColor.Validate(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNormalizeHexColor(t *testing.T) {
	assert.Equal(t, "ff00aa", NormalizeHexColor("#FF00AA"))
	assert.Equal(t, "ff00aa", NormalizeHexColor("ff00aa"))
	assert.Equal(t, "abcdef", NormalizeHexColor("#abcdef"))
}

func TestRoleBaseName(t *testing.T) {
	assert.NoError(t, RoleBaseName.Validate("Sunset Orange"))
	assert.NoError(t, RoleBaseName.Validate("Crimson"))
	assert.Error(t, RoleBaseName.Validate("bad\x00name"))
	assert.Error(t, RoleBaseName.Validate("tab\tname"))
}

func TestNotBlank(t *testing.T) {
	assert.NoError(t, NotBlank.Validate("value"))
	// Empty strings are skipped by string rules and left to Required.
	assert.NoError(t, NotBlank.Validate(""))
	assert.Error(t, NotBlank.Validate("   "))
}

func TestNoWhitespace(t *testing.T) {
	assert.NoError(t, NoWhitespace.Validate("value"))
	assert.Error(t, NoWhitespace.Validate(" value"))
	assert.Error(t, NoWhitespace.Validate("value "))
}

func TestWrapValidationError(t *testing.T) {
	require.NoError(t, WrapValidationError(nil))

	err := WrapValidationError(errors.New("must be a 6-digit hex color"))
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	assert.Contains(t, err.Error(), "must be a 6-digit hex color")
}
