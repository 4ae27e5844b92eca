// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionTTL is the lifetime of every issued session token.
const SessionTTL = 7 * 24 * time.Hour

// DevSessionSecret signs sessions outside production when no secret is set.
const DevSessionSecret = "dev-session-secret-change-me"

// SessionClaims is the verified content of a session token.
type SessionClaims struct {
	UserID    string
	Email     *string
	Role      Role
	IssuedAt  time.Time
	ExpiresAt time.Time
}

type sessionTokenClaims struct {
	Email *string `json:"email,omitempty"`
	Role  any     `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// SessionCodec signs and parses HS256 session tokens.
type SessionCodec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// Sign returns a token for p and its expiry.
func (c *SessionCodec) Sign(p Principal) (string, time.Time, error) {
	issuedAt := c.now().Truncate(time.Second)
	expiresAt := issuedAt.Add(c.ttl)

	claims := sessionTokenClaims{
		Email: p.Email,
		Role:  string(p.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.UserID,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign session token: %w", err)
	}

	return token, expiresAt, nil
}

// Parse validates signature, algorithm and expiry. Every failure wraps
// ErrUnauthenticated.
func (c *SessionCodec) Parse(raw string) (*SessionClaims, error) {
	if raw == "" {
		return nil, fmt.Errorf("%w: empty token", ErrUnauthenticated)
	}

	var claims sessionTokenClaims
	_, err := jwt.ParseWithClaims(
		raw,
		&claims,
		func(*jwt.Token) (any, error) { return c.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}

	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: empty subject", ErrUnauthenticated)
	}

	sc := &SessionClaims{
		UserID:    claims.Subject,
		Email:     claims.Email,
		Role:      ParseRole(claims.Role),
		ExpiresAt: claims.ExpiresAt.Time,
	}
	if claims.IssuedAt != nil {
		sc.IssuedAt = claims.IssuedAt.Time
	}

	return sc, nil
}

func NewSessionCodec(secret string) *SessionCodec {
	return &SessionCodec{
		secret: []byte(secret),
		ttl:    SessionTTL,
		now:    time.Now,
	}
}
