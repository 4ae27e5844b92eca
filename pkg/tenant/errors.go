// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenant

import "errors"

var (
	ErrNotFound        = errors.New("tenant not found")
	ErrInvalidInput    = errors.New("invalid input")
	ErrNoPlanAvailable = errors.New("no plan available, seed at least one plan first")
	ErrSlugTaken       = errors.New("slug already in use")
)
