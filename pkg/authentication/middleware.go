// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"net/http"
	"net/url"
	"strings"

	httptypes "github.com/canonical/noxera-service/internal/http/types"
	"github.com/canonical/noxera-service/internal/logging"
	"github.com/canonical/noxera-service/internal/monitoring"
	"github.com/canonical/noxera-service/internal/tracing"
)

// SessionCookieName is the cookie carrying the session token.
const SessionCookieName = "noxera_session"

// ExtractSessionToken finds the session token of a request. The bearer
// header wins over the session cookie, which wins over a manual scan of the
// raw Cookie header for values net/http refuses to parse.
func ExtractSessionToken(r *http.Request) (string, bool) {
	if token, ok := bearerToken(r.Header); ok {
		return token, true
	}

	if c, err := r.Cookie(SessionCookieName); err == nil && c.Value != "" {
		return decodeCookieValue(c.Value), true
	}

	return rawCookieToken(r.Header)
}

func bearerToken(headers http.Header) (string, bool) {
	bearer := headers.Get("Authorization")
	if bearer == "" {
		return "", false
	}

	scheme, token, found := strings.Cut(bearer, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}

	token = strings.TrimSpace(token)
	return token, token != ""
}

func rawCookieToken(headers http.Header) (string, bool) {
	prefix := SessionCookieName + "="

	for _, line := range headers.Values("Cookie") {
		for _, part := range strings.Split(line, ";") {
			part = strings.TrimSpace(part)
			if !strings.HasPrefix(part, prefix) {
				continue
			}

			value := strings.Trim(strings.TrimPrefix(part, prefix), `"`)
			if value == "" {
				continue
			}
			return decodeCookieValue(value), true
		}
	}

	return "", false
}

func decodeCookieValue(v string) string {
	decoded, err := url.PathUnescape(v)
	if err != nil {
		return v
	}
	return decoded
}

type Middleware struct {
	verifier SessionVerifierInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// Authenticate rejects requests without a valid session and stores the
// caller in the request context.
func (m *Middleware) Authenticate() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := m.tracer.Start(r.Context(), "authentication.Middleware.Authenticate")
			defer span.End()

			token, found := ExtractSessionToken(r)
			if !found {
				m.unauthorizedResponse(w, "missing session token")
				return
			}

			claims, err := m.verifier.Verify(ctx, token)
			if err != nil {
				m.logger.Debugf("session verification failed: %v", err)
				m.logger.Security().AuthnTokenInvalid("session token rejected")
				m.unauthorizedResponse(w, "invalid session token")
				return
			}

			ctx = WithPrincipal(ctx, &Principal{
				UserID: claims.UserID,
				Email:  claims.Email,
				Role:   claims.Role,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func (m *Middleware) unauthorizedResponse(w http.ResponseWriter, message string) {
	if err := httptypes.WriteError(w, http.StatusUnauthorized, message); err != nil {
		m.logger.Errorf("failed to encode unauthorized response: %v", err)
	}
}

func NewMiddleware(verifier SessionVerifierInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Middleware {
	return &Middleware{
		verifier: verifier,
		tracer:   tracer,
		monitor:  monitor,
		logger:   logger,
	}
}
