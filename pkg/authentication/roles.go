// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

type Role string

const (
	RoleSuperAdmin Role = "SUPER_ADMIN"
	RoleTenantUser Role = "TENANT_USER"
)

// ParseRole maps a raw role claim onto the closed role set. Only the exact
// string "SUPER_ADMIN" grants RoleSuperAdmin.
func ParseRole(claim any) Role {
	if s, ok := claim.(string); ok && s == string(RoleSuperAdmin) {
		return RoleSuperAdmin
	}
	return RoleTenantUser
}
