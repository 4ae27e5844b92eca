// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package logging

import (
	"fmt"

	"go.uber.org/zap"
)

const appID = "noxera-service"

var _ SecurityLoggerInterface = (*SecurityLogger)(nil)

type SecurityLogger struct {
	l *zap.Logger
}

func (s *SecurityLogger) SystemStartup() {
	s.l.Info("service started", s.event("sys_startup", ""), zap.String("level", "INFO"))
}

func (s *SecurityLogger) SystemShutdown() {
	s.l.Info("service shutting down", s.event("sys_shutdown", ""), zap.String("level", "INFO"))
}

func (s *SecurityLogger) AuthnLoginSuccess(userID, source string) {
	s.l.Info(
		fmt.Sprintf("user %s logged in through %s", userID, source),
		s.event("authn_login_success", userID),
		zap.String("level", "INFO"),
	)
}

func (s *SecurityLogger) AuthnLoginFail(source, reason string) {
	s.l.Warn(
		fmt.Sprintf("login through %s failed: %s", source, reason),
		s.event("authn_login_fail", source),
		zap.String("level", "WARN"),
	)
}

func (s *SecurityLogger) AuthnTokenInvalid(reason string) {
	s.l.Warn(
		fmt.Sprintf("session token rejected: %s", reason),
		s.event("authn_token_invalid", ""),
		zap.String("level", "WARN"),
	)
}

func (s *SecurityLogger) AuthzFailure(userID, resource string) {
	s.l.Warn(
		fmt.Sprintf("user %s attempted to access %s without entitlement", userID, resource),
		s.event("authz_fail", userID+","+resource),
		zap.String("level", "CRITICAL"),
	)
}

// DevBypassUsed is emitted on every development session request. Allowed
// requests are logged too, they must never show up in a production log.
func (s *SecurityLogger) DevBypassUsed(userID string, allowed bool) {
	if allowed {
		s.l.Warn(
			fmt.Sprintf("DEVELOPMENT AUTH BYPASS: issued privileged session for %s", userID),
			s.event("authn_dev_bypass", userID),
			zap.String("level", "CRITICAL"),
		)
		return
	}

	s.l.Warn(
		"DEVELOPMENT AUTH BYPASS requested while disabled",
		s.event("authn_dev_bypass_refused", userID),
		zap.String("level", "CRITICAL"),
	)
}

func (s *SecurityLogger) AdminAction(userID, action, resource string) {
	s.l.Info(
		fmt.Sprintf("user %s performed %s on %s", userID, action, resource),
		s.event("sys_admin_action", userID+","+action+","+resource),
		zap.String("level", "WARN"),
	)
}

func (s *SecurityLogger) event(name, params string) zap.Field {
	if params == "" {
		return zap.String("event", fmt.Sprintf("%s:%s", name, appID))
	}
	return zap.String("event", fmt.Sprintf("%s:%s", name, params))
}
