package commands

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/colorsync/colorsync/internal/role/domain"
	"github.com/colorsync/colorsync/internal/role/service"
)

// issueTokenOutput is the JSON shape of the issue-token command output.
type issueTokenOutput struct {
	WorkspaceID int64  `json:"workspace_id"`
	UserID      int64  `json:"user_id"`
	Token       string `json:"token"`
	ApplyURL    string `json:"apply_url,omitempty"`
}

// RunIssueToken signs a capability token for a (workspace, user) identity and
// prints it. When pageURL is set, a ready-to-share link with the token in the
// query string is printed as well.
//
// Tokens carry no expiry: issuing is cheap, revocation means rotating
// WEB_SECRET for everyone.
func RunIssueToken(
	codec service.TokenCodec,
	logger *slog.Logger,
	workspaceID, userID int64,
	pageURL string,
	format string,
	io IOTuple,
) error {
	if workspaceID <= 0 {
		return fmt.Errorf("workspace must be a positive identifier")
	}
	if userID <= 0 {
		return fmt.Errorf("user must be a positive identifier")
	}

	identity := domain.Identity{WorkspaceID: workspaceID, UserID: userID}

	token, err := codec.Sign(identity)
	if err != nil {
		return fmt.Errorf("failed to sign token: %w", err)
	}

	output := issueTokenOutput{
		WorkspaceID: workspaceID,
		UserID:      userID,
		Token:       token,
	}

	if pageURL != "" {
		applyURL, err := buildApplyURL(pageURL, token)
		if err != nil {
			return fmt.Errorf("failed to build apply URL: %w", err)
		}
		output.ApplyURL = applyURL
	}

	if format == "json" {
		encoder := json.NewEncoder(io.Writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(output); err != nil {
			return fmt.Errorf("failed to encode output: %w", err)
		}
	} else {
		fmt.Fprintf(io.Writer, "token: %s\n", output.Token)
		if output.ApplyURL != "" {
			fmt.Fprintf(io.Writer, "url: %s\n", output.ApplyURL)
		}
	}

	logger.Info("token issued",
		slog.Int64("workspace_id", workspaceID),
		slog.Int64("user_id", userID),
	)

	return nil
}

// buildApplyURL appends the token as the "t" query parameter.
func buildApplyURL(pageURL, token string) (string, error) {
	parsed, err := url.Parse(pageURL)
	if err != nil {
		return "", err
	}

	query := parsed.Query()
	query.Set("t", token)
	parsed.RawQuery = query.Encode()
	return parsed.String(), nil
}
