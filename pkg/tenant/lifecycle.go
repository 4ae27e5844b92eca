// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenant

import (
	"time"

	"github.com/canonical/noxera-service/internal/types"
)

// StatusTransition is the row update derived from a target status.
// Every status may move to every other status.
type StatusTransition struct {
	Status      types.TenantStatus
	SuspendedAt *time.Time
	CancelledAt *time.Time
}

// NewStatusTransition stamps SuspendedAt only for SUSPENDED and CancelledAt
// only for CANCELLED, clearing both otherwise.
func NewStatusTransition(next types.TenantStatus, now time.Time) StatusTransition {
	t := StatusTransition{Status: next}

	switch next {
	case types.TenantStatusSuspended:
		ts := now
		t.SuspendedAt = &ts
	case types.TenantStatusCancelled:
		ts := now
		t.CancelledAt = &ts
	}

	return t
}

// StatusChange is the result of a successful status update.
type StatusChange struct {
	TenantID string             `json:"tenantId"`
	Status   types.TenantStatus `json:"status"`
}
