// Package http provides the HTTP handlers for the color apply surface.
package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/colorsync/colorsync/internal/httputil"
	"github.com/colorsync/colorsync/internal/role/http/dto"
	"github.com/colorsync/colorsync/internal/role/service"
	"github.com/colorsync/colorsync/internal/role/usecase"
	customValidation "github.com/colorsync/colorsync/internal/validation"
)

// ApplyHandler handles the token-gated color apply endpoint. It verifies the
// capability token, then delegates the create-or-update transition to the
// reconcile engine.
type ApplyHandler struct {
	codec  service.TokenCodec
	engine usecase.ReconcileEngine
	logger *slog.Logger
}

// NewApplyHandler creates an apply handler with required dependencies.
func NewApplyHandler(
	codec service.TokenCodec,
	engine usecase.ReconcileEngine,
	logger *slog.Logger,
) *ApplyHandler {
	return &ApplyHandler{
		codec:  codec,
		engine: engine,
		logger: logger,
	}
}

// RootHandler serves a plain-text marker so users pasting the base URL into a
// browser see the service is up.
// GET /
func (h *ApplyHandler) RootHandler(c *gin.Context) {
	c.String(http.StatusOK, "colorsync apply endpoint")
}

// HealthHandler reports liveness.
// GET /health
func (h *ApplyHandler) HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, httputil.Response{OK: true, Msg: "alive"})
}

// Handle applies a color for the identity bound to the token, creating the
// personal role on first use.
// POST /apply
func (h *ApplyHandler) Handle(c *gin.Context) {
	var req dto.ApplyRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	identity, err := h.codec.Verify(req.T)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	hex := customValidation.NormalizeHexColor(req.Hex)
	color, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		// Validate already constrained the shape; this only trips on
		// programming errors.
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	role, err := h.engine.ApplyColor(c.Request.Context(), identity, int(color))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	h.logger.InfoContext(c.Request.Context(), "color applied",
		slog.Int64("workspace_id", identity.WorkspaceID),
		slog.Int64("user_id", identity.UserID),
		slog.String("hex", hex),
	)

	httputil.OKResponse(c, fmt.Sprintf("applied #%s", hex), role.Name)
}
