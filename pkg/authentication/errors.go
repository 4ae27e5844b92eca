// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import "errors"

var (
	// ErrUnauthenticated covers missing, malformed, expired or forged session tokens.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrInvalidCredential is returned when an external identity token is rejected.
	ErrInvalidCredential = errors.New("invalid credential")
	// ErrInvalidToken is the identity verifier's collapsed failure.
	ErrInvalidToken = errors.New("invalid identity token")
	// ErrNotConfigured means no identity provider is set up in this environment.
	ErrNotConfigured = errors.New("identity provider is not configured")
	// ErrDevSessionDisabled is returned when the dev bypass is not allowed.
	ErrDevSessionDisabled = errors.New("dev sessions are disabled")
	ErrInvalidInput       = errors.New("invalid input")
	ErrMissingSecret      = errors.New("session secret is required in production")
)
