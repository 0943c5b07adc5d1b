package httputil

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/colorsync/colorsync/internal/errors"
)

func testContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest("POST", "/apply", nil)
	return c, recorder
}

func decodeResponse(t *testing.T, recorder *httptest.ResponseRecorder) Response {
	t.Helper()
	var response Response
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	return response
}

func TestOKResponse(t *testing.T) {
	c, recorder := testContext()

	OKResponse(c, "applied #ff00aa", "NameColor-a1b2c3")

	require.Equal(t, http.StatusOK, recorder.Code)
	response := decodeResponse(t, recorder)
	assert.True(t, response.OK)
	assert.Equal(t, "applied #ff00aa", response.Msg)
	assert.Equal(t, "NameColor-a1b2c3", response.Role)
}

func TestOKResponse_OmitsEmptyRole(t *testing.T) {
	c, recorder := testContext()

	OKResponse(c, "cleared", "")

	assert.NotContains(t, recorder.Body.String(), "role")
}

func TestHandleErrorGin(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "not found",
			err:        apperrors.Wrap(apperrors.ErrNotFound, "no color role"),
			wantStatus: http.StatusNotFound,
			wantMsg:    "not found",
		},
		{
			name:       "invalid signature",
			err:        apperrors.Wrap(apperrors.ErrInvalidSignature, "bad mac"),
			wantStatus: http.StatusUnauthorized,
			wantMsg:    "invalid token",
		},
		{
			name:       "permission denied",
			err:        apperrors.Wrap(apperrors.ErrPermissionDenied, "role outranks actor"),
			wantStatus: http.StatusForbidden,
			wantMsg:    "not allowed to manage that role",
		},
		{
			name:       "invalid input",
			err:        apperrors.Wrap(apperrors.ErrInvalidInput, "invalid hex"),
			wantStatus: http.StatusBadRequest,
			wantMsg:    "invalid hex",
		},
		{
			name:       "remote failure keeps 200",
			err:        apperrors.Wrap(apperrors.ErrRemoteFailure, "directory returned 502"),
			wantStatus: http.StatusOK,
			wantMsg:    "directory request failed, try again",
		},
		{
			name:       "unknown error",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "internal error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, recorder := testContext()

			HandleErrorGin(c, tt.err, logger)

			assert.Equal(t, tt.wantStatus, recorder.Code)
			response := decodeResponse(t, recorder)
			assert.False(t, response.OK)
			assert.Contains(t, response.Msg, tt.wantMsg)
		})
	}
}

func TestHandleErrorGin_NilError(t *testing.T) {
	c, recorder := testContext()

	HandleErrorGin(c, nil, nil)

	assert.Empty(t, recorder.Body.String())
}

func TestHandleBadRequestGin(t *testing.T) {
	c, recorder := testContext()

	HandleBadRequestGin(c, errors.New("unexpected EOF"), nil)

	require.Equal(t, http.StatusBadRequest, recorder.Code)
	response := decodeResponse(t, recorder)
	assert.False(t, response.OK)
	assert.Equal(t, "malformed request", response.Msg)
}
