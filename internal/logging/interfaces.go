// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package logging

type LoggerInterface interface {
	Errorf(string, ...interface{})
	Infof(string, ...interface{})
	Warnf(string, ...interface{})
	Debugf(string, ...interface{})
	Fatalf(string, ...interface{})
	Error(...interface{})
	Info(...interface{})
	Warn(...interface{})
	Debug(...interface{})
	Fatal(...interface{})
	Security() SecurityLoggerInterface
}

// SecurityLoggerInterface records security relevant events using the
// OWASP logging vocabulary (authn_*, authz_*, sys_*).
type SecurityLoggerInterface interface {
	SystemStartup()
	SystemShutdown()
	AuthnLoginSuccess(userID string, source string)
	AuthnLoginFail(source string, reason string)
	AuthnTokenInvalid(reason string)
	AuthzFailure(userID string, resource string)
	DevBypassUsed(userID string, allowed bool)
	AdminAction(userID string, action string, resource string)
}
