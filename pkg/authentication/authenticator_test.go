// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/canonical/noxera-service/internal/logging"
	"github.com/canonical/noxera-service/internal/monitoring"
	"github.com/canonical/noxera-service/internal/tracing"
)

//go:generate mockgen -build_flags=--mod=mod -package authentication -destination ./mock_logger.go -source=../../internal/logging/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package authentication -destination ./mock_interfaces.go -source=./interfaces.go

func newSecurityLogger(ctrl *gomock.Controller) (*MockLoggerInterface, *MockSecurityLoggerInterface) {
	mockLogger := NewMockLoggerInterface(ctrl)
	mockSecurity := NewMockSecurityLoggerInterface(ctrl)

	mockLogger.EXPECT().Security().Return(mockSecurity).AnyTimes()
	mockLogger.EXPECT().Warn(gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Debugf(gomock.Any(), gomock.Any()).AnyTimes()

	return mockLogger, mockSecurity
}

func TestAuthenticator_IssueDevSession(t *testing.T) {
	tests := []struct {
		name    string
		policy  DevSessionPolicy
		allowed bool
	}{
		{name: "non production with flag", policy: DevSessionPolicy{Production: false, Enabled: true}, allowed: true},
		{name: "non production without flag", policy: DevSessionPolicy{Production: false, Enabled: false}},
		{name: "production with flag", policy: DevSessionPolicy{Production: true, Enabled: true}},
		{name: "production without flag", policy: DevSessionPolicy{Production: true, Enabled: false}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockLogger, mockSecurity := newSecurityLogger(ctrl)
			mockSecurity.EXPECT().DevBypassUsed(DevSubjectID, tt.allowed).Times(1)

			a := NewAuthenticator(NewMockIdentityVerifierInterface(ctrl), NewSessionCodec(testSecret), tt.policy, tracing.NewNoopTracer(), monitoring.NewNoopMonitor("test"), mockLogger)

			session, err := a.IssueDevSession(context.Background())

			if !tt.allowed {
				if !errors.Is(err, ErrDevSessionDisabled) {
					t.Fatalf("expected ErrDevSessionDisabled, got %v", err)
				}
				if session != nil {
					t.Fatal("expected no session")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			claims, err := a.Verify(context.Background(), session.Token)
			if err != nil {
				t.Fatalf("unexpected verify error: %v", err)
			}
			if claims.UserID != DevSubjectID || claims.Role != RoleSuperAdmin {
				t.Errorf("unexpected claims %+v", claims)
			}
			if claims.Email == nil || *claims.Email != DevEmail {
				t.Errorf("expected dev email, got %v", claims.Email)
			}
			if session.User.UserID != DevSubjectID || session.User.Role != RoleSuperAdmin {
				t.Errorf("unexpected session user %+v", session.User)
			}
		})
	}
}

func TestAuthenticator_IssueFromExternalToken(t *testing.T) {
	email := "ada@example.com"

	tests := []struct {
		name         string
		token        string
		setupMocks   func(*MockIdentityVerifierInterface, *MockSecurityLoggerInterface)
		expectedErr  error
		expectedRole Role
	}{
		{
			name:  "super admin claim",
			token: "id-token",
			setupMocks: func(v *MockIdentityVerifierInterface, sec *MockSecurityLoggerInterface) {
				v.EXPECT().Verify(gomock.Any(), "id-token").Return(&IdentityAssertion{Subject: "user-1", Email: &email, Role: "SUPER_ADMIN"}, nil)
				sec.EXPECT().AuthnLoginSuccess("user-1", gomock.Any())
			},
			expectedRole: RoleSuperAdmin,
		},
		{
			name:  "unrecognized role defaults to tenant user",
			token: "  id-token  ",
			setupMocks: func(v *MockIdentityVerifierInterface, sec *MockSecurityLoggerInterface) {
				v.EXPECT().Verify(gomock.Any(), "id-token").Return(&IdentityAssertion{Subject: "user-1", Role: "owner"}, nil)
				sec.EXPECT().AuthnLoginSuccess("user-1", gomock.Any())
			},
			expectedRole: RoleTenantUser,
		},
		{
			name:  "absent role defaults to tenant user",
			token: "id-token",
			setupMocks: func(v *MockIdentityVerifierInterface, sec *MockSecurityLoggerInterface) {
				v.EXPECT().Verify(gomock.Any(), "id-token").Return(&IdentityAssertion{Subject: "user-1"}, nil)
				sec.EXPECT().AuthnLoginSuccess("user-1", gomock.Any())
			},
			expectedRole: RoleTenantUser,
		},
		{
			name:        "blank token",
			token:       "   ",
			setupMocks:  func(*MockIdentityVerifierInterface, *MockSecurityLoggerInterface) {},
			expectedErr: ErrInvalidInput,
		},
		{
			name:  "verifier not configured",
			token: "id-token",
			setupMocks: func(v *MockIdentityVerifierInterface, sec *MockSecurityLoggerInterface) {
				v.EXPECT().Verify(gomock.Any(), "id-token").Return(nil, ErrNotConfigured)
				sec.EXPECT().AuthnLoginFail(gomock.Any(), gomock.Any())
			},
			expectedErr: ErrNotConfigured,
		},
		{
			name:  "verifier rejects token",
			token: "id-token",
			setupMocks: func(v *MockIdentityVerifierInterface, sec *MockSecurityLoggerInterface) {
				v.EXPECT().Verify(gomock.Any(), "id-token").Return(nil, ErrInvalidToken)
				sec.EXPECT().AuthnLoginFail(gomock.Any(), gomock.Any())
			},
			expectedErr: ErrInvalidCredential,
		},
		{
			name:  "empty subject",
			token: "id-token",
			setupMocks: func(v *MockIdentityVerifierInterface, sec *MockSecurityLoggerInterface) {
				v.EXPECT().Verify(gomock.Any(), "id-token").Return(&IdentityAssertion{Role: "SUPER_ADMIN"}, nil)
				sec.EXPECT().AuthnLoginFail(gomock.Any(), gomock.Any())
			},
			expectedErr: ErrInvalidCredential,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockLogger, mockSecurity := newSecurityLogger(ctrl)
			mockVerifier := NewMockIdentityVerifierInterface(ctrl)
			tt.setupMocks(mockVerifier, mockSecurity)

			a := NewAuthenticator(mockVerifier, NewSessionCodec(testSecret), DevSessionPolicy{Production: true}, tracing.NewNoopTracer(), monitoring.NewNoopMonitor("test"), mockLogger)

			session, err := a.IssueFromExternalToken(context.Background(), tt.token)

			if tt.expectedErr != nil {
				if !errors.Is(err, tt.expectedErr) {
					t.Fatalf("expected %v, got %v", tt.expectedErr, err)
				}
				if errors.Is(err, ErrNotConfigured) && errors.Is(err, ErrInvalidCredential) {
					t.Fatal("not configured must stay distinct from invalid credential")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if session.User.Role != tt.expectedRole {
				t.Errorf("expected role %s, got %s", tt.expectedRole, session.User.Role)
			}

			claims, err := a.Verify(context.Background(), session.Token)
			if err != nil {
				t.Fatalf("unexpected verify error: %v", err)
			}
			if claims.UserID != "user-1" || claims.Role != tt.expectedRole {
				t.Errorf("unexpected claims %+v", claims)
			}
			if d := session.ExpiresAt.Sub(claims.IssuedAt); d != SessionTTL {
				t.Errorf("expected a %v session, got %v", SessionTTL, d)
			}
		})
	}
}

func TestAuthenticator_NotConfiguredVerifier(t *testing.T) {
	a := NewAuthenticator(NewNotConfiguredVerifier(), NewSessionCodec(testSecret), DevSessionPolicy{}, tracing.NewNoopTracer(), monitoring.NewNoopMonitor("test"), logging.NewNoopLogger())

	if _, err := a.IssueFromExternalToken(context.Background(), "id-token"); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("expected ErrNotConfigured, got %v", err)
	}
}

func TestAuthenticator_VerifyExpired(t *testing.T) {
	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	codec := newTestCodec(testSecret, now)

	a := NewAuthenticator(NewNotConfiguredVerifier(), codec, DevSessionPolicy{Enabled: true}, tracing.NewNoopTracer(), monitoring.NewNoopMonitor("test"), logging.NewNoopLogger())

	session, err := a.IssueDevSession(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	codec.now = func() time.Time { return now.Add(8 * 24 * time.Hour) }

	if _, err := a.Verify(context.Background(), session.Token); !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestSigningSecret(t *testing.T) {
	tests := []struct {
		name        string
		configured  string
		production  bool
		expected    string
		expectedErr error
	}{
		{name: "configured in production", configured: "s3cret", production: true, expected: "s3cret"},
		{name: "configured outside production", configured: "s3cret", expected: "s3cret"},
		{name: "missing in production", production: true, expectedErr: ErrMissingSecret},
		{name: "missing outside production", expected: DevSessionSecret},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SigningSecret(tt.configured, tt.production)

			if tt.expectedErr != nil {
				if !errors.Is(err, tt.expectedErr) {
					t.Fatalf("expected %v, got %v", tt.expectedErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}
