// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/mock/gomock"

	httptypes "github.com/canonical/noxera-service/internal/http/types"
	"github.com/canonical/noxera-service/internal/logging"
	"github.com/canonical/noxera-service/internal/monitoring"
	"github.com/canonical/noxera-service/internal/tracing"
)

func TestAPI_CreateSession(t *testing.T) {
	email := "ada@example.com"
	session := &Session{
		Token:     "session-token",
		User:      Principal{UserID: "user-1", Email: &email, Role: RoleTenantUser},
		ExpiresAt: time.Now().Add(SessionTTL),
	}

	tests := []struct {
		name           string
		body           string
		secure         bool
		setupMocks     func(*MockAuthenticatorInterface)
		expectedStatus int
		expectCookie   bool
	}{
		{
			name: "external token",
			body: `{"idToken":"id-token"}`,
			setupMocks: func(a *MockAuthenticatorInterface) {
				a.EXPECT().IssueFromExternalToken(gomock.Any(), "id-token").Return(session, nil)
			},
			expectedStatus: http.StatusOK,
			expectCookie:   true,
		},
		{
			name:   "dev session with secure cookie",
			body:   `{"dev":true}`,
			secure: true,
			setupMocks: func(a *MockAuthenticatorInterface) {
				a.EXPECT().IssueDevSession(gomock.Any()).Return(session, nil)
			},
			expectedStatus: http.StatusOK,
			expectCookie:   true,
		},
		{
			name:           "missing id token",
			body:           `{}`,
			setupMocks:     func(*MockAuthenticatorInterface) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "malformed body",
			body:           `{`,
			setupMocks:     func(*MockAuthenticatorInterface) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "dev session disabled",
			body: `{"dev":true}`,
			setupMocks: func(a *MockAuthenticatorInterface) {
				a.EXPECT().IssueDevSession(gomock.Any()).Return(nil, ErrDevSessionDisabled)
			},
			expectedStatus: http.StatusForbidden,
		},
		{
			name: "provider not configured",
			body: `{"idToken":"id-token"}`,
			setupMocks: func(a *MockAuthenticatorInterface) {
				a.EXPECT().IssueFromExternalToken(gomock.Any(), "id-token").Return(nil, ErrNotConfigured)
			},
			expectedStatus: http.StatusServiceUnavailable,
		},
		{
			name: "invalid credential",
			body: `{"idToken":"id-token"}`,
			setupMocks: func(a *MockAuthenticatorInterface) {
				a.EXPECT().IssueFromExternalToken(gomock.Any(), "id-token").Return(nil, ErrInvalidCredential)
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "unexpected failure",
			body: `{"idToken":"id-token"}`,
			setupMocks: func(a *MockAuthenticatorInterface) {
				a.EXPECT().IssueFromExternalToken(gomock.Any(), "id-token").Return(nil, errors.New("signing failed"))
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockAuthenticator := NewMockAuthenticatorInterface(ctrl)
			tt.setupMocks(mockAuthenticator)

			noop := func(next http.Handler) http.Handler { return next }

			mux := chi.NewMux()
			NewAPI(mockAuthenticator, noop, tt.secure, tracing.NewNoopTracer(), monitoring.NewNoopMonitor("test"), logging.NewNoopLogger()).RegisterEndpoints(mux)

			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v0/auth/session", strings.NewReader(tt.body)))

			res := w.Result()
			defer res.Body.Close()

			if res.StatusCode != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d", tt.expectedStatus, res.StatusCode)
			}

			if !tt.expectCookie {
				if len(res.Cookies()) != 0 {
					t.Error("expected no cookie on failure")
				}
				var e httptypes.ErrorResponse
				if err := json.NewDecoder(res.Body).Decode(&e); err != nil || e.Status != tt.expectedStatus {
					t.Errorf("unexpected error body %+v (%v)", e, err)
				}
				return
			}

			cookies := res.Cookies()
			if len(cookies) != 1 {
				t.Fatalf("expected one cookie, got %d", len(cookies))
			}
			c := cookies[0]
			if c.Name != SessionCookieName || c.Value != "session-token" || c.Path != "/" || !c.HttpOnly || c.SameSite != http.SameSiteLaxMode {
				t.Errorf("unexpected cookie %+v", c)
			}
			if c.MaxAge != int(SessionTTL.Seconds()) {
				t.Errorf("expected max age %d, got %d", int(SessionTTL.Seconds()), c.MaxAge)
			}
			if c.Secure != tt.secure {
				t.Errorf("expected secure %v, got %v", tt.secure, c.Secure)
			}

			var body struct {
				Token string    `json:"token"`
				User  Principal `json:"user"`
			}
			if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
				t.Fatalf("failed to decode: %v", err)
			}
			if body.Token != "session-token" || body.User.UserID != "user-1" || body.User.Role != RoleTenantUser {
				t.Errorf("unexpected body %+v", body)
			}
		})
	}
}

func TestAPI_MeAndLogout(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockVerifier := NewMockSessionVerifierInterface(ctrl)
	mockVerifier.EXPECT().Verify(gomock.Any(), "good").Return(&SessionClaims{UserID: "user-1", Role: RoleSuperAdmin}, nil)

	logger := logging.NewNoopLogger()
	authn := NewMiddleware(mockVerifier, tracing.NewNoopTracer(), monitoring.NewNoopMonitor("test"), logger)

	mux := chi.NewMux()
	NewAPI(NewMockAuthenticatorInterface(ctrl), authn.Authenticate(), false, tracing.NewNoopTracer(), monitoring.NewNoopMonitor("test"), logger).RegisterEndpoints(mux)

	req := httptest.NewRequest(http.MethodGet, "/api/v0/auth/me", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "good"})
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if got := strings.TrimSpace(w.Body.String()); got != `{"user":{"userId":"user-1","email":null,"role":"SUPER_ADMIN"}}` {
		t.Errorf("unexpected body %s", got)
	}

	w = httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v0/auth/me", nil))
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without session, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v0/auth/logout", nil))
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}
	cookies := w.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != SessionCookieName || cookies[0].MaxAge >= 0 {
		t.Errorf("expected an expired session cookie, got %+v", cookies)
	}
}
