// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"
	"fmt"
	"net/http"

	"github.com/coreos/go-oidc/v3/oidc"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/canonical/noxera-service/internal/logging"
	"github.com/canonical/noxera-service/internal/monitoring"
	"github.com/canonical/noxera-service/internal/tracing"
)

var (
	otelHTTPClient = http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}
)

// VerifierConfig describes the external identity provider.
type VerifierConfig struct {
	Issuer    string
	JWKSURL   string
	ClientID  string
	RoleClaim string
}

func oidcConfig(clientID string) *oidc.Config {
	return &oidc.Config{
		ClientID:          clientID,
		SkipClientIDCheck: clientID == "",
		SkipIssuerCheck:   false,
	}
}

// NewProvider creates an OIDC provider using the issuer's well-known configuration
func NewProvider(ctx context.Context, issuer string) (*oidc.Provider, error) {
	// Use otel-instrumented HTTP client
	ctx = oidc.ClientContext(ctx, &otelHTTPClient)

	provider, err := oidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, fmt.Errorf("failed to create OIDC provider: %v", err)
	}

	return provider, nil
}

// NewVerifierWithJWKS skips discovery and fetches signing keys from jwksURL.
func NewVerifierWithJWKS(ctx context.Context, issuer, jwksURL, clientID string) *oidc.IDTokenVerifier {
	ctx = oidc.ClientContext(ctx, &otelHTTPClient)

	keySet := oidc.NewRemoteKeySet(ctx, jwksURL)

	return oidc.NewVerifier(issuer, keySet, oidcConfig(clientID))
}

// NewIdentityVerifier picks the verifier for cfg. Without an issuer every
// external login fails with ErrNotConfigured.
func NewIdentityVerifier(
	ctx context.Context,
	cfg VerifierConfig,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) (IdentityVerifierInterface, error) {
	if cfg.Issuer == "" {
		logger.Warn("OIDC_ISSUER is not set, external sign-in is disabled; set OIDC_ISSUER and OIDC_CLIENT_ID to enable it")
		return NewNotConfiguredVerifier(), nil
	}

	if cfg.ClientID == "" {
		logger.Warn("OIDC_CLIENT_ID is not set, ID token audience will not be checked")
	}

	var idTokenVerifier *oidc.IDTokenVerifier

	if cfg.JWKSURL != "" {
		logger.Infof("Using manual JWKS URL: %s", cfg.JWKSURL)
		idTokenVerifier = NewVerifierWithJWKS(ctx, cfg.Issuer, cfg.JWKSURL, cfg.ClientID)
	} else {
		logger.Infof("Using OIDC discovery for issuer: %s", cfg.Issuer)
		provider, err := NewProvider(ctx, cfg.Issuer)
		if err != nil {
			return nil, err
		}
		idTokenVerifier = provider.Verifier(oidcConfig(cfg.ClientID))
	}

	return NewOIDCIdentityVerifier(idTokenVerifier, cfg.RoleClaim, tracer, monitor, logger), nil
}
