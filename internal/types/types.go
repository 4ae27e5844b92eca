// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

var ErrInvalidStatus = errors.New("invalid tenant status")

type TenantStatus string

const (
	TenantStatusTrial     TenantStatus = "TRIAL"
	TenantStatusActive    TenantStatus = "ACTIVE"
	TenantStatusPastDue   TenantStatus = "PAST_DUE"
	TenantStatusSuspended TenantStatus = "SUSPENDED"
	TenantStatusCancelled TenantStatus = "CANCELLED"
)

// TenantStatuses lists every valid status in lifecycle order.
var TenantStatuses = []TenantStatus{
	TenantStatusTrial,
	TenantStatusActive,
	TenantStatusPastDue,
	TenantStatusSuspended,
	TenantStatusCancelled,
}

// ParseTenantStatus matches v exactly (case sensitive) against the fixed set.
func ParseTenantStatus(v string) (TenantStatus, error) {
	for _, s := range TenantStatuses {
		if string(s) == v {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, v)
}

type ActorType string

const (
	ActorTypeUser   ActorType = "USER"
	ActorTypeSystem ActorType = "SYSTEM"
)

func (a ActorType) Valid() bool {
	return a == ActorTypeUser || a == ActorTypeSystem
}

const (
	AuditActionTenantCreated          = "TENANT_CREATED"
	AuditActionTenantStatusChanged    = "TENANT_STATUS_CHANGED"
	AuditActionTenantFeaturesOverride = "TENANT_FEATURES_OVERRIDDEN"

	EntityTypeTenant = "Tenant"
)

type Tenant struct {
	ID          string       `db:"id" json:"id"`
	Name        string       `db:"name" json:"name"`
	Slug        string       `db:"slug" json:"slug"`
	Status      TenantStatus `db:"status" json:"status"`
	PlanID      string       `db:"plan_id" json:"planId"`
	PlanTier    string       `db:"plan_tier" json:"planTier,omitempty"`
	SeatsLimit  *int32       `db:"seats_limit" json:"seatsLimit"`
	SuspendedAt *time.Time   `db:"suspended_at" json:"suspendedAt"`
	CancelledAt *time.Time   `db:"cancelled_at" json:"cancelledAt"`
	TrialEndsAt *time.Time   `db:"trial_ends_at" json:"trialEndsAt"`
	CreatedAt   time.Time    `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time    `db:"updated_at" json:"updatedAt"`
}

type Plan struct {
	ID        string          `db:"id" json:"id"`
	Tier      string          `db:"tier" json:"tier"`
	Name      string          `db:"name" json:"name"`
	Features  json.RawMessage `db:"features" json:"features"`
	CreatedAt time.Time       `db:"created_at" json:"createdAt"`
}

type TenantFeatureOverride struct {
	TenantID  string          `db:"tenant_id" json:"tenantId"`
	Overrides json.RawMessage `db:"overrides" json:"overrides"`
	CreatedAt time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time       `db:"updated_at" json:"updatedAt"`
}

// TenantFeatureDocuments holds the raw plan and override documents of a
// tenant. Overrides is nil when the tenant has no override row yet.
type TenantFeatureDocuments struct {
	TenantID  string
	Plan      json.RawMessage
	Overrides json.RawMessage
}

type AuditEvent struct {
	ID         string          `db:"id" json:"id"`
	TenantID   *string         `db:"tenant_id" json:"tenantId"`
	ActorType  ActorType       `db:"actor_type" json:"actorType"`
	ActorID    *string         `db:"actor_id" json:"actorId"`
	Action     string          `db:"action" json:"action"`
	EntityType string          `db:"entity_type" json:"entityType"`
	EntityID   *string         `db:"entity_id" json:"entityId"`
	Success    bool            `db:"success" json:"success"`
	Metadata   json.RawMessage `db:"metadata" json:"metadata"`
	CreatedAt  time.Time       `db:"created_at" json:"createdAt"`
}

type TenantFilter struct {
	Query    string
	Status   TenantStatus
	PlanTier string
}

type AuditFilter struct {
	Query      string
	TenantID   string
	Action     string
	EntityType string
	EntityID   string
}

// Page is a single page of a paginated listing.
type Page[T any] struct {
	Page     uint64 `json:"page"`
	PageSize uint64 `json:"pageSize"`
	Total    uint64 `json:"total"`
	Items    []T    `json:"items"`
}
