// Package auth signs and verifies the browser session token carried in the
// session cookie. The token only names the session; who is signed in lives in
// the session's user slot.
package auth

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/hkdf"
)

const issuer = "sabor-storefront"

// Claims is the typed JWT payload of a session cookie.
type Claims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// Signer issues and parses session tokens with a key derived from the app key.
type Signer struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

// NewSigner derives a 32-byte HS256 key from appKey. Rotating APP_KEY
// invalidates every outstanding cookie.
func NewSigner(appKey string, ttl time.Duration) (*Signer, error) {
	if appKey == "" {
		return nil, errors.New("auth: APP_KEY is empty")
	}
	key := make([]byte, 32)
	r := hkdf.New(sha256.New, []byte(appKey), nil, []byte("sabor session cookie v1"))
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, fmt.Errorf("auth: derive key: %w", err)
	}
	return &Signer{key: key, ttl: ttl, now: time.Now}, nil
}

// TTL is the lifetime of tokens issued by s.
func (s *Signer) TTL() time.Duration { return s.ttl }

// Sign issues a token for sessionID.
func (s *Signer) Sign(sessionID string) (string, error) {
	now := s.now()
	claims := Claims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
}

// Parse validates token and returns its claims.
func (s *Signer) Parse(token string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(tok *jwt.Token) (interface{}, error) {
		return s.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.SessionID == "" {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

// NeedsRefresh reports whether less than half of the token lifetime is left.
func (s *Signer) NeedsRefresh(c *Claims) bool {
	if c.ExpiresAt == nil {
		return true
	}
	return c.ExpiresAt.Time.Sub(s.now()) < s.ttl/2
}
