package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/crypto/hkdf"

	apperrors "github.com/colorsync/colorsync/internal/errors"
	"github.com/colorsync/colorsync/internal/role/domain"
)

// tokenSigningInfo versions the derived signing key. Changing the token
// format means a new info string, not a new secret.
const tokenSigningInfo = "apply-token-signing-v1"

// tokenCodec implements TokenCodec using HMAC-SHA256 over a compact
// workspace:user payload. The signing key is derived from the shared secret
// with HKDF-SHA256 so the same secret can also key the name encoding without
// cross-protocol reuse.
type tokenCodec struct {
	signingKey []byte
}

// NewTokenCodec creates a TokenCodec from the workspace-wide shared secret.
func NewTokenCodec(secret []byte) (TokenCodec, error) {
	key, err := deriveKey(secret, tokenSigningInfo)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to derive token signing key")
	}
	return &tokenCodec{signingKey: key}, nil
}

// deriveKey uses HKDF-SHA256 to derive a 32-byte key from the shared secret.
// The info parameter separates key usages.
func deriveKey(secret []byte, info string) ([]byte, error) {
	kdf := hkdf.New(sha256.New, secret, nil, []byte(info))
	key := make([]byte, 32)
	if _, err := io.ReadFull(kdf, key); err != nil {
		return nil, err
	}
	return key, nil
}

// Sign produces "base64url(workspaceID:userID).base64url(hmac)".
// Deterministic for a given identity and secret.
func (t *tokenCodec) Sign(identity domain.Identity) (string, error) {
	payload := fmt.Sprintf("%d:%d", identity.WorkspaceID, identity.UserID)
	sig := t.mac(payload)

	token := base64.RawURLEncoding.EncodeToString([]byte(payload)) +
		"." +
		base64.RawURLEncoding.EncodeToString(sig)
	return token, nil
}

// Verify checks the signature and recovers the identity. Any structural
// problem or signature mismatch is reported as ErrInvalidSignature; the
// caller cannot distinguish a garbled token from a forged one.
func (t *tokenCodec) Verify(token string) (domain.Identity, error) {
	encodedPayload, encodedSig, ok := strings.Cut(token, ".")
	if !ok {
		return domain.Identity{}, apperrors.Wrap(apperrors.ErrInvalidSignature, "malformed token")
	}

	payload, err := base64.RawURLEncoding.DecodeString(encodedPayload)
	if err != nil {
		return domain.Identity{}, apperrors.Wrap(apperrors.ErrInvalidSignature, "malformed payload")
	}

	sig, err := base64.RawURLEncoding.DecodeString(encodedSig)
	if err != nil {
		return domain.Identity{}, apperrors.Wrap(apperrors.ErrInvalidSignature, "malformed signature")
	}

	expected := t.mac(string(payload))
	if !hmac.Equal(sig, expected) {
		return domain.Identity{}, apperrors.ErrInvalidSignature
	}

	identity, err := parsePayload(string(payload))
	if err != nil {
		return domain.Identity{}, apperrors.Wrap(apperrors.ErrInvalidSignature, err.Error())
	}
	return identity, nil
}

// mac computes HMAC-SHA256 of the payload with the derived signing key.
func (t *tokenCodec) mac(payload string) []byte {
	mac := hmac.New(sha256.New, t.signingKey)
	mac.Write([]byte(payload))
	return mac.Sum(nil)
}

// parsePayload parses "workspaceID:userID" into an identity.
func parsePayload(payload string) (domain.Identity, error) {
	workspacePart, userPart, ok := strings.Cut(payload, ":")
	if !ok {
		return domain.Identity{}, fmt.Errorf("malformed payload")
	}

	workspaceID, err := strconv.ParseInt(workspacePart, 10, 64)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("malformed workspace id")
	}

	userID, err := strconv.ParseInt(userPart, 10, 64)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("malformed user id")
	}

	return domain.Identity{WorkspaceID: workspaceID, UserID: userID}, nil
}
