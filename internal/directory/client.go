package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	retryablehttp "github.com/hashicorp/go-retryablehttp"

	apperrors "github.com/colorsync/colorsync/internal/errors"
	"github.com/colorsync/colorsync/internal/role/domain"
)

// auditReasonHeader carries the human-readable reason recorded in the
// directory's audit log for mutating calls.
const auditReasonHeader = "X-Audit-Log-Reason"

// ClientConfig configures the directory REST client.
type ClientConfig struct {
	BaseURL  string
	BotToken string
	Timeout  time.Duration
	RetryMax int
}

// Client talks to the external role directory over its REST API. Transient
// failures (429, 5xx, connection resets) are retried with backoff by the
// underlying retryable client.
type Client struct {
	baseURL  string
	botToken string
	http     *retryablehttp.Client
	logger   *slog.Logger
}

// NewClient creates a directory client. The logger is used for retry
// diagnostics only.
func NewClient(cfg ClientConfig, logger *slog.Logger) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = cfg.RetryMax
	retryClient.HTTPClient.Timeout = cfg.Timeout
	retryClient.Logger = nil

	return &Client{
		baseURL:  cfg.BaseURL,
		botToken: cfg.BotToken,
		http:     retryClient,
		logger:   logger,
	}
}

// GetWorkspace fetches a workspace by ID.
func (c *Client) GetWorkspace(ctx context.Context, workspaceID int64) (*domain.Workspace, error) {
	path := fmt.Sprintf("/api/v1/workspaces/%s", formatID(workspaceID))

	var wire wireWorkspace
	if err := c.do(ctx, http.MethodGet, path, nil, "", &wire); err != nil {
		return nil, err
	}
	return wire.toDomain()
}

// GetMember fetches a workspace member.
func (c *Client) GetMember(ctx context.Context, workspaceID, userID int64) (*domain.Member, error) {
	path := fmt.Sprintf("/api/v1/workspaces/%s/members/%s", formatID(workspaceID), formatID(userID))

	var wire wireMember
	if err := c.do(ctx, http.MethodGet, path, nil, "", &wire); err != nil {
		return nil, err
	}

	member, err := wire.toDomain()
	if err != nil {
		return nil, err
	}
	member.FetchedAt = time.Now()
	return member, nil
}

// ListRoles returns the workspace's full role list.
func (c *Client) ListRoles(ctx context.Context, workspaceID int64) ([]domain.Role, error) {
	path := fmt.Sprintf("/api/v1/workspaces/%s/roles", formatID(workspaceID))

	var wires []wireRole
	if err := c.do(ctx, http.MethodGet, path, nil, "", &wires); err != nil {
		return nil, err
	}

	roles := make([]domain.Role, 0, len(wires))
	for i := range wires {
		role, err := wires[i].toDomain()
		if err != nil {
			return nil, err
		}
		roles = append(roles, *role)
	}
	return roles, nil
}

// MemberRoles returns the roles currently assigned to the member. The
// directory exposes no per-member role expansion, so this filters the
// workspace role list by the member's role IDs.
func (c *Client) MemberRoles(ctx context.Context, workspaceID int64, member *domain.Member) ([]domain.Role, error) {
	if member == nil || len(member.RoleIDs) == 0 {
		return nil, nil
	}

	all, err := c.ListRoles(ctx, workspaceID)
	if err != nil {
		return nil, err
	}

	assigned := make(map[int64]struct{}, len(member.RoleIDs))
	for _, id := range member.RoleIDs {
		assigned[id] = struct{}{}
	}

	roles := make([]domain.Role, 0, len(member.RoleIDs))
	for _, role := range all {
		if _, ok := assigned[role.ID]; ok {
			roles = append(roles, role)
		}
	}
	return roles, nil
}

// CreateRole creates a role with empty permissions, not hoisted, not
// mentionable.
func (c *Client) CreateRole(
	ctx context.Context,
	workspaceID int64,
	input *domain.CreateRoleInput,
) (*domain.Role, error) {
	path := fmt.Sprintf("/api/v1/workspaces/%s/roles", formatID(workspaceID))
	body := wireCreateRole{
		Name:        input.Name,
		Color:       input.Color,
		Permissions: "0",
	}

	var wire wireRole
	if err := c.do(ctx, http.MethodPost, path, body, input.Reason, &wire); err != nil {
		return nil, err
	}
	return wire.toDomain()
}

// EditRole applies an in-place patch to a role.
func (c *Client) EditRole(
	ctx context.Context,
	workspaceID, roleID int64,
	patch *domain.RolePatch,
) (*domain.Role, error) {
	path := fmt.Sprintf("/api/v1/workspaces/%s/roles/%s", formatID(workspaceID), formatID(roleID))
	body := wireEditRole{
		Name:     patch.Name,
		Color:    patch.Color,
		Position: patch.Position,
	}

	var wire wireRole
	if err := c.do(ctx, http.MethodPatch, path, body, patch.Reason, &wire); err != nil {
		return nil, err
	}
	return wire.toDomain()
}

// DeleteRole removes a role from the workspace.
func (c *Client) DeleteRole(ctx context.Context, workspaceID, roleID int64, reason string) error {
	path := fmt.Sprintf("/api/v1/workspaces/%s/roles/%s", formatID(workspaceID), formatID(roleID))
	return c.do(ctx, http.MethodDelete, path, nil, reason, nil)
}

// AttachRole assigns a role to a member.
func (c *Client) AttachRole(ctx context.Context, workspaceID, userID, roleID int64, reason string) error {
	path := fmt.Sprintf(
		"/api/v1/workspaces/%s/members/%s/roles/%s",
		formatID(workspaceID), formatID(userID), formatID(roleID),
	)
	return c.do(ctx, http.MethodPut, path, nil, reason, nil)
}

// ActorCapabilities derives the acting account's capability and top rank from
// its own member record and the workspace role list.
func (c *Client) ActorCapabilities(ctx context.Context, workspaceID int64) (*domain.ActorCapabilities, error) {
	path := fmt.Sprintf("/api/v1/workspaces/%s/members/@me", formatID(workspaceID))

	var wire wireMember
	if err := c.do(ctx, http.MethodGet, path, nil, "", &wire); err != nil {
		return nil, err
	}

	self, err := wire.toDomain()
	if err != nil {
		return nil, err
	}

	roles, err := c.MemberRoles(ctx, workspaceID, self)
	if err != nil {
		return nil, err
	}

	caps := &domain.ActorCapabilities{}
	for _, role := range roles {
		if role.Permissions&PermissionManageRoles != 0 {
			caps.CanManageRoles = true
		}
		if role.Position > caps.TopRankPosition {
			caps.TopRankPosition = role.Position
		}
	}
	return caps, nil
}

// do performs one request, retrying transient failures, and decodes the
// response into out when out is non-nil.
func (c *Client) do(ctx context.Context, method, path string, body any, reason string, out any) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return apperrors.Wrap(apperrors.ErrRemoteFailure, "encode request body")
		}
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrRemoteFailure, "build request")
	}

	req.Header.Set("Authorization", "Bot "+c.botToken)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if reason != "" {
		req.Header.Set(auditReasonHeader, reason)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.WarnContext(ctx, "directory request failed",
			slog.String("method", method),
			slog.String("path", path),
			slog.Any("error", err),
		)
		return apperrors.Wrapf(apperrors.ErrRemoteFailure, "%s %s", method, path)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.mapError(ctx, method, path, resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperrors.Wrapf(apperrors.ErrRemoteFailure, "decode %s %s response", method, path)
	}
	return nil
}

// mapError converts a non-2xx directory response into a domain error.
func (c *Client) mapError(ctx context.Context, method, path string, resp *http.Response) error {
	var wire wireError
	_ = json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(&wire)

	c.logger.WarnContext(ctx, "directory returned error",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status_code", resp.StatusCode),
		slog.String("message", wire.Message),
	)

	switch resp.StatusCode {
	case http.StatusNotFound:
		return apperrors.Wrapf(apperrors.ErrNotFound, "%s %s", method, path)
	case http.StatusUnauthorized, http.StatusForbidden:
		return apperrors.Wrapf(apperrors.ErrPermissionDenied, "%s %s", method, path)
	default:
		return apperrors.Wrapf(apperrors.ErrRemoteFailure, "%s %s: status %d", method, path, resp.StatusCode)
	}
}
