// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package config

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrMissingSessionSecret = errors.New("SESSION_SECRET is required in production")
	ErrDevAuthInProduction  = errors.New("DEV_AUTH_ENABLED must not be set in production")
)

// nonProductionEnvironments are the only values of ENVIRONMENT that relax
// production safeguards, anything else is treated as production.
var nonProductionEnvironments = []string{"development", "test", "local"}

// EnvSpec is the basic environment configuration setup needed for the app to start
type EnvSpec struct {
	OtelGRPCEndpoint string `envconfig:"otel_grpc_endpoint"`
	OtelHTTPEndpoint string `envconfig:"otel_http_endpoint"`
	TracingEnabled   bool   `envconfig:"tracing_enabled" default:"true"`

	LogLevel string `envconfig:"log_level" default:"error"`
	Debug    bool   `envconfig:"debug" default:"false"`

	Port int `envconfig:"port" default:"8080"`

	Environment    string `envconfig:"environment" default:"production"`
	DevAuthEnabled bool   `envconfig:"dev_auth_enabled" default:"false"`

	SessionSecret string `envconfig:"session_secret"`

	OIDCIssuer    string `envconfig:"oidc_issuer"`
	OIDCJWKSURL   string `envconfig:"oidc_jwks_url"`
	OIDCClientID  string `envconfig:"oidc_client_id"`
	OIDCRoleClaim string `envconfig:"oidc_role_claim" default:"role"`

	CORSAllowedOrigins []string `envconfig:"cors_allowed_origins" default:"*"`

	DSN string `envconfig:"DSN" required:"true"`

	DBMaxConns        int32         `envconfig:"db_max_conns" default:"25"`
	DBMinConns        int32         `envconfig:"db_min_conns" default:"2"`
	DBMaxConnLifetime time.Duration `envconfig:"db_max_conn_lifetime" default:"1h"`
	DBMaxConnIdleTime time.Duration `envconfig:"db_max_conn_idle_time" default:"30m"`
}

// IsProduction reports whether production safeguards apply.
func (s *EnvSpec) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(s.Environment))
	for _, e := range nonProductionEnvironments {
		if env == e {
			return false
		}
	}
	return true
}

// DevAuthAllowed reports whether the development session bypass may be used.
func (s *EnvSpec) DevAuthAllowed() bool {
	return !s.IsProduction() && s.DevAuthEnabled
}

// Validate rejects configurations that must never reach a running server.
func (s *EnvSpec) Validate() error {
	if !s.IsProduction() {
		return nil
	}

	if strings.TrimSpace(s.SessionSecret) == "" {
		return ErrMissingSessionSecret
	}

	if s.DevAuthEnabled {
		return ErrDevAuthInProduction
	}

	return nil
}
