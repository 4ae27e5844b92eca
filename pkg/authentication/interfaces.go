// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"
)

type IdentityVerifierInterface interface {
	// Verify checks a raw provider ID token and returns the asserted identity
	Verify(ctx context.Context, rawToken string) (*IdentityAssertion, error)
}

type SessionVerifierInterface interface {
	Verify(ctx context.Context, token string) (*SessionClaims, error)
}

type AuthenticatorInterface interface {
	IssueFromExternalToken(ctx context.Context, rawToken string) (*Session, error)
	IssueDevSession(ctx context.Context) (*Session, error)
	Verify(ctx context.Context, token string) (*SessionClaims, error)
}
