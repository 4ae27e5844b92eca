// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/canonical/noxera-service/internal/logging"
	"github.com/canonical/noxera-service/internal/monitoring"
	"github.com/canonical/noxera-service/internal/tracing"
)

const (
	DevSubjectID = "dev-user"
	DevEmail     = "dev@noxera.local"

	sourceExternal = "oidc"
	sourceDev      = "dev"
)

// Session is a freshly issued session token and the caller it represents.
type Session struct {
	Token     string    `json:"token"`
	User      Principal `json:"user"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// DevSessionPolicy gates the dev bypass. Both conditions are checked on
// every issuance.
type DevSessionPolicy struct {
	Production bool
	Enabled    bool
}

func (p DevSessionPolicy) Allowed() bool {
	return !p.Production && p.Enabled
}

// SigningSecret resolves the session secret at boot. Production refuses to
// start without one; other environments fall back to DevSessionSecret.
func SigningSecret(configured string, production bool) (string, error) {
	if configured != "" {
		return configured, nil
	}

	if production {
		return "", ErrMissingSecret
	}

	return DevSessionSecret, nil
}

type Authenticator struct {
	verifier IdentityVerifierInterface
	codec    *SessionCodec
	policy   DevSessionPolicy

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// IssueFromExternalToken exchanges a provider ID token for a session.
// ErrNotConfigured passes through, any other verifier failure becomes
// ErrInvalidCredential.
func (a *Authenticator) IssueFromExternalToken(ctx context.Context, rawToken string) (*Session, error) {
	ctx, span := a.tracer.Start(ctx, "authentication.Authenticator.IssueFromExternalToken")
	defer span.End()

	rawToken = strings.TrimSpace(rawToken)
	if rawToken == "" {
		return nil, fmt.Errorf("%w: idToken is required", ErrInvalidInput)
	}

	assertion, err := a.verifier.Verify(ctx, rawToken)
	if err != nil {
		if errors.Is(err, ErrNotConfigured) {
			a.logger.Security().AuthnLoginFail(sourceExternal, "identity provider not configured")
			return nil, err
		}
		a.logger.Security().AuthnLoginFail(sourceExternal, "identity token rejected")
		return nil, ErrInvalidCredential
	}

	if assertion == nil || assertion.Subject == "" {
		a.logger.Security().AuthnLoginFail(sourceExternal, "empty subject")
		return nil, ErrInvalidCredential
	}

	session, err := a.issue(Principal{
		UserID: assertion.Subject,
		Email:  assertion.Email,
		Role:   ParseRole(assertion.Role),
	})
	if err != nil {
		return nil, err
	}

	a.logger.Security().AuthnLoginSuccess(session.User.UserID, sourceExternal)

	return session, nil
}

// IssueDevSession returns a SUPER_ADMIN session for the fixed dev identity.
// It fails closed unless the policy allows it.
func (a *Authenticator) IssueDevSession(ctx context.Context) (*Session, error) {
	_, span := a.tracer.Start(ctx, "authentication.Authenticator.IssueDevSession")
	defer span.End()

	if !a.policy.Allowed() {
		a.logger.Security().DevBypassUsed(DevSubjectID, false)
		return nil, ErrDevSessionDisabled
	}

	email := DevEmail
	session, err := a.issue(Principal{
		UserID: DevSubjectID,
		Email:  &email,
		Role:   RoleSuperAdmin,
	})
	if err != nil {
		return nil, err
	}

	a.logger.Security().DevBypassUsed(DevSubjectID, true)

	return session, nil
}

// Verify parses a session token. Failures wrap ErrUnauthenticated.
func (a *Authenticator) Verify(ctx context.Context, token string) (*SessionClaims, error) {
	_, span := a.tracer.Start(ctx, "authentication.Authenticator.Verify")
	defer span.End()

	return a.codec.Parse(token)
}

func (a *Authenticator) issue(p Principal) (*Session, error) {
	token, expiresAt, err := a.codec.Sign(p)
	if err != nil {
		return nil, err
	}

	return &Session{Token: token, User: p, ExpiresAt: expiresAt}, nil
}

func NewAuthenticator(
	verifier IdentityVerifierInterface,
	codec *SessionCodec,
	policy DevSessionPolicy,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Authenticator {
	if policy.Allowed() {
		logger.Warn("DEV SESSIONS ARE ENABLED: POST /api/v0/auth/session with {\"dev\": true} grants SUPER_ADMIN")
	}

	return &Authenticator{
		verifier: verifier,
		codec:    codec,
		policy:   policy,
		tracer:   tracer,
		monitor:  monitor,
		logger:   logger,
	}
}
