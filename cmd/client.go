// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"os"
	"strings"
)

// getClient returns an API client for the configured endpoint, authenticated
// with the session token from the flag or the environment.
func getClient() *apiClient {
	token := strings.TrimSpace(sessionToken)
	if token == "" {
		token = strings.TrimSpace(os.Getenv(sessionEnvVar))
	}

	return newAPIClient(endpoint, token)
}
