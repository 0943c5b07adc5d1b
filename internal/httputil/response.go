// Package httputil provides HTTP utility functions for request and response handling.
package httputil

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/colorsync/colorsync/internal/errors"
)

// Response is the wire shape shared by every endpoint. Msg carries either
// a confirmation or a human-readable failure reason; Role is only set when
// an operation produced or touched a role.
type Response struct {
	OK   bool   `json:"ok"`
	Msg  string `json:"msg"`
	Role string `json:"role,omitempty"`
}

// OKResponse writes a success response.
func OKResponse(c *gin.Context, msg, role string) {
	c.JSON(http.StatusOK, Response{OK: true, Msg: msg, Role: role})
}

// HandleErrorGin maps domain errors to HTTP status codes and returns a JSON response using Gin.
// Remote directory failures deliberately map to a 200 with ok=false so browser
// clients surface the message instead of a generic network error page.
func HandleErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	if err == nil {
		return
	}

	var statusCode int
	var response Response

	switch {
	case apperrors.Is(err, apperrors.ErrNotFound):
		statusCode = http.StatusNotFound
		response = Response{OK: false, Msg: "not found"}

	case apperrors.Is(err, apperrors.ErrInvalidSignature):
		statusCode = http.StatusUnauthorized
		response = Response{OK: false, Msg: "invalid token"}

	case apperrors.Is(err, apperrors.ErrPermissionDenied):
		statusCode = http.StatusForbidden
		response = Response{OK: false, Msg: "not allowed to manage that role"}

	case apperrors.Is(err, apperrors.ErrInvalidInput):
		statusCode = http.StatusBadRequest
		response = Response{OK: false, Msg: err.Error()}

	case apperrors.Is(err, apperrors.ErrRemoteFailure):
		statusCode = http.StatusOK
		response = Response{OK: false, Msg: "directory request failed, try again"}

	default:
		// For unknown/internal errors, don't expose details to the client
		statusCode = http.StatusInternalServerError
		response = Response{OK: false, Msg: "internal error"}
	}

	// Log the full error details (including wrapped errors)
	if logger != nil {
		logger.Error("request failed",
			slog.Int("status_code", statusCode),
			slog.Any("error", err),
		)
	}

	c.JSON(statusCode, response)
}

// HandleBadRequestGin writes a 400 Bad Request response for malformed JSON or parameters using Gin.
func HandleBadRequestGin(c *gin.Context, err error, logger *slog.Logger) {
	if logger != nil {
		logger.Warn("bad request", slog.Any("error", err))
	}

	c.JSON(http.StatusBadRequest, Response{OK: false, Msg: "malformed request"})
}
