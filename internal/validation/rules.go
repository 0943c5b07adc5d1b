// Package validation provides custom validation rules for the application.
package validation

import (
	"regexp"
	"strings"

	validation "github.com/jellydator/validation"

	apperrors "github.com/colorsync/colorsync/internal/errors"
)

var (
	// hexColorRegex matches a 6-digit hex color, with or without a leading "#".
	hexColorRegex = regexp.MustCompile(`^#?[0-9a-fA-F]{6}$`)

	// roleBaseRegex matches role base names: printable characters, no control chars.
	roleBaseRegex = regexp.MustCompile(`^[^\x00-\x1f\x7f]+$`)
)

// WrapValidationError wraps validation errors as domain ErrInvalidInput
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// HexColor validates a 6-digit hex color string, accepting an optional leading "#".
var HexColor = validation.NewStringRuleWithError(
	func(s string) bool {
		return hexColorRegex.MatchString(s)
	},
	validation.NewError("validation_hex_color", "must be a 6-digit hex color"),
)

// RoleBaseName validates the visible portion of a role name.
var RoleBaseName = validation.NewStringRuleWithError(
	func(s string) bool {
		return roleBaseRegex.MatchString(s)
	},
	validation.NewError("validation_role_base_name", "must not contain control characters"),
)

// NoWhitespace validates that string doesn't contain leading/trailing whitespace
var NoWhitespace = validation.NewStringRuleWithError(
	func(s string) bool {
		return s == strings.TrimSpace(s)
	},
	validation.NewError("validation_no_whitespace", "must not contain leading or trailing whitespace"),
)

// NotBlank validates that a string is not empty after trimming whitespace
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)

// NormalizeHexColor strips an optional leading "#" and lowercases the value.
// Callers should validate with HexColor first.
func NormalizeHexColor(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, "#"))
}
