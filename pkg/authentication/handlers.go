// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	httptypes "github.com/canonical/noxera-service/internal/http/types"
	"github.com/canonical/noxera-service/internal/logging"
	"github.com/canonical/noxera-service/internal/monitoring"
	"github.com/canonical/noxera-service/internal/tracing"
)

const notConfiguredMessage = "external sign-in is not configured on this server: set OIDC_ISSUER and OIDC_CLIENT_ID"

type sessionRequest struct {
	IDToken string `json:"idToken" validate:"required_without=Dev"`
	Dev     bool   `json:"dev"`
}

type sessionResponse struct {
	Token string    `json:"token"`
	User  Principal `json:"user"`
}

type meResponse struct {
	User *Principal `json:"user"`
}

type API struct {
	authenticator AuthenticatorInterface
	authenticate  func(http.Handler) http.Handler
	secureCookie  bool
	validate      *validator.Validate

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (a *API) RegisterEndpoints(mux chi.Router) {
	mux.Post("/api/v0/auth/session", a.handleCreateSession)
	mux.Post("/api/v0/auth/logout", a.handleLogout)
	mux.With(a.authenticate).Get("/api/v0/auth/me", a.handleMe)
}

func (a *API) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "authentication.API.handleCreateSession")
	defer span.End()

	var req sessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = httptypes.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := a.validate.Struct(req); err != nil {
		_ = httptypes.WriteError(w, http.StatusBadRequest, "idToken is required")
		return
	}

	var (
		session *Session
		err     error
	)
	if req.Dev {
		session, err = a.authenticator.IssueDevSession(ctx)
	} else {
		session, err = a.authenticator.IssueFromExternalToken(ctx, req.IDToken)
	}

	if err != nil {
		a.writeError(w, err)
		return
	}

	http.SetCookie(w, a.sessionCookie(session.Token, int(SessionTTL.Seconds())))
	_ = httptypes.WriteJSON(w, http.StatusOK, sessionResponse{Token: session.Token, User: session.User})
}

func (a *API) handleLogout(w http.ResponseWriter, r *http.Request) {
	_, span := a.tracer.Start(r.Context(), "authentication.API.handleLogout")
	defer span.End()

	http.SetCookie(w, a.sessionCookie("", -1))
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) handleMe(w http.ResponseWriter, r *http.Request) {
	_, span := a.tracer.Start(r.Context(), "authentication.API.handleMe")
	defer span.End()

	p, ok := PrincipalFromContext(r.Context())
	if !ok {
		_ = httptypes.WriteError(w, http.StatusUnauthorized, "missing session token")
		return
	}

	_ = httptypes.WriteJSON(w, http.StatusOK, meResponse{User: p})
}

func (a *API) sessionCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   a.secureCookie,
		SameSite: http.SameSiteLaxMode,
	}
}

func (a *API) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		_ = httptypes.WriteError(w, http.StatusBadRequest, "idToken is required")
	case errors.Is(err, ErrNotConfigured):
		_ = httptypes.WriteError(w, http.StatusServiceUnavailable, notConfiguredMessage)
	case errors.Is(err, ErrDevSessionDisabled):
		_ = httptypes.WriteError(w, http.StatusForbidden, "dev sessions are disabled")
	case errors.Is(err, ErrInvalidCredential):
		_ = httptypes.WriteError(w, http.StatusUnauthorized, "invalid identity token")
	default:
		a.logger.Errorf("failed to issue session: %v", err)
		_ = httptypes.WriteError(w, http.StatusInternalServerError, "internal server error")
	}
}

// NewAPI wires the session endpoints. secureCookie marks the cookie Secure
// and should be set in production.
func NewAPI(
	authenticator AuthenticatorInterface,
	authenticate func(http.Handler) http.Handler,
	secureCookie bool,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *API {
	return &API{
		authenticator: authenticator,
		authenticate:  authenticate,
		secureCookie:  secureCookie,
		validate:      validator.New(validator.WithRequiredStructEnabled()),
		tracer:        tracer,
		monitor:       monitor,
		logger:        logger,
	}
}
