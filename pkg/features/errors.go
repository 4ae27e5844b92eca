// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package features

import "errors"

var (
	ErrNotFound     = errors.New("tenant not found")
	ErrInvalidInput = errors.New("invalid input")
)
