// Package auth verifies the PASETO v4.local bearer tokens issued by the
// identity provider. The token subject carries the user id.
package auth

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"aidanwoods.dev/go-paseto"
)

const (
	// PASETO v4 symmetric keys are 32 bytes.
	keyBytesSize = 32
	keyHexSize   = 64
)

// ErrInvalidToken is returned for any token that fails to decrypt or
// violates a claim rule.
var ErrInvalidToken = errors.New("invalid or expired token")

type claims struct {
	Subject string `json:"sub"`
}

// Tokens verifies, and for development and tests issues, access tokens.
type Tokens struct {
	key      paseto.V4SymmetricKey
	issuer   string
	audience string
}

// NewTokens creates a verifier for the hex-encoded shared key. Empty issuer
// or audience disables the corresponding claim check.
func NewTokens(keyHex, issuer, audience string) (*Tokens, error) {
	if len(keyHex) != keyHexSize {
		return nil, fmt.Errorf("PASETO v4 key must be exactly %d hex characters (%d bytes), got %d", keyHexSize, keyBytesSize, len(keyHex))
	}
	keyBytes, err := hex.DecodeString(keyHex)
	if err != nil {
		return nil, fmt.Errorf("invalid hex string for PASETO key: %w", err)
	}
	key, err := paseto.V4SymmetricKeyFromBytes(keyBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to create PASETO symmetric key: %w", err)
	}
	return &Tokens{key: key, issuer: issuer, audience: audience}, nil
}

// Verify decrypts token, checks its claims and returns the user id it was
// issued for.
func (t *Tokens) Verify(token string) (int64, error) {
	parser := paseto.NewParser()
	if t.audience != "" {
		parser.AddRule(paseto.ForAudience(t.audience))
	}
	if t.issuer != "" {
		parser.AddRule(paseto.IssuedBy(t.issuer))
	}
	parser.AddRule(paseto.NotExpired())
	parser.AddRule(paseto.ValidAt(time.Now()))

	parsed, err := parser.ParseV4Local(t.key, token, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	var c claims
	if err := json.Unmarshal(parsed.ClaimsJSON(), &c); err != nil {
		return 0, fmt.Errorf("%w: parse claims: %v", ErrInvalidToken, err)
	}
	userID, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil || userID < 1 {
		return 0, fmt.Errorf("%w: subject %q is not a user id", ErrInvalidToken, c.Subject)
	}
	return userID, nil
}

// Issue mints a token for userID valid for ttl.
func (t *Tokens) Issue(userID int64, ttl time.Duration) string {
	now := time.Now()
	token := paseto.NewToken()
	token.SetIssuer(t.issuer)
	token.SetAudience(t.audience)
	token.SetSubject(strconv.FormatInt(userID, 10))
	token.SetIssuedAt(now)
	token.SetNotBefore(now)
	token.SetExpiration(now.Add(ttl))
	return token.V4Encrypt(t.key, nil)
}
