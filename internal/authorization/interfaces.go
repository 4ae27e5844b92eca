// Copyright 2025 Canonical Ltd
// SPDX-License-Identifier: AGPL-3.0

package authorization

import (
	"context"

	"github.com/canonical/noxera-service/pkg/authentication"
)

type AuthorizerInterface interface {
	Check(ctx context.Context, principal *authentication.Principal, required authentication.Role) error
}
