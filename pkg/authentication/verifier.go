// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"

	"github.com/coreos/go-oidc/v3/oidc"

	"github.com/canonical/noxera-service/internal/logging"
	"github.com/canonical/noxera-service/internal/monitoring"
	"github.com/canonical/noxera-service/internal/tracing"
)

const defaultRoleClaim = "role"

// IdentityAssertion is what the external provider vouches for.
type IdentityAssertion struct {
	Subject string
	Email   *string
	// Role is the raw role claim, nil when absent.
	Role any
}

type OIDCIdentityVerifier struct {
	verifier  *oidc.IDTokenVerifier
	roleClaim string

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// Verify checks the ID token against the provider keys, issuer and audience.
// Provider errors are only logged; callers get ErrInvalidToken.
func (v *OIDCIdentityVerifier) Verify(ctx context.Context, rawToken string) (*IdentityAssertion, error) {
	ctx, span := v.tracer.Start(ctx, "authentication.OIDCIdentityVerifier.Verify")
	defer span.End()

	token, err := v.verifier.Verify(ctx, rawToken)
	if err != nil {
		v.logger.Debugf("ID token verification failed: %v", err)
		return nil, ErrInvalidToken
	}

	claims := make(map[string]any)
	if err := token.Claims(&claims); err != nil {
		v.logger.Debugf("Failed to extract claims: %v", err)
		return nil, ErrInvalidToken
	}

	a := &IdentityAssertion{
		Subject: token.Subject,
		Role:    claims[v.roleClaim],
	}
	if email, ok := claims["email"].(string); ok && email != "" {
		a.Email = &email
	}

	return a, nil
}

func NewOIDCIdentityVerifier(
	verifier *oidc.IDTokenVerifier,
	roleClaim string,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *OIDCIdentityVerifier {
	if roleClaim == "" {
		roleClaim = defaultRoleClaim
	}

	return &OIDCIdentityVerifier{
		verifier:  verifier,
		roleClaim: roleClaim,
		tracer:    tracer,
		monitor:   monitor,
		logger:    logger,
	}
}

// NotConfiguredVerifier stands in when no identity provider is configured.
type NotConfiguredVerifier struct{}

func NewNotConfiguredVerifier() *NotConfiguredVerifier {
	return &NotConfiguredVerifier{}
}

func (n *NotConfiguredVerifier) Verify(context.Context, string) (*IdentityAssertion, error) {
	return nil, ErrNotConfigured
}
