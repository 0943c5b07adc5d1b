// Package dto defines request shapes for the role HTTP endpoints.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/colorsync/colorsync/internal/validation"
)

// ApplyRequest is the body of POST /apply. T is the opaque capability token;
// Hex is a 6-digit color, with or without a leading "#".
type ApplyRequest struct {
	T   string `json:"t"`
	Hex string `json:"hex"`
}

// Validate checks that a token is present and the hex value is well formed.
func (r ApplyRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.T, validation.Required, customValidation.NotBlank),
		validation.Field(&r.Hex, validation.Required, customValidation.HexColor),
	)
}
