// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/canonical/noxera-service/pkg/authentication"
)

var (
	sessionIDToken string
	sessionDev     bool
)

type sessionReply struct {
	Token string                   `json:"token"`
	User  authentication.Principal `json:"user"`
}

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Exchange an identity provider ID token, or a dev request, for a session token",
	Long: `Exchange an identity provider ID token, or a dev request, for a session token.

The token is printed on stdout, export it as ` + sessionEnvVar + ` for the tenant commands.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if sessionIDToken == "" && !sessionDev {
			return errors.New("either --id-token or --dev must be provided")
		}

		body := map[string]any{"idToken": sessionIDToken, "dev": sessionDev}
		reply := new(sessionReply)

		if err := newAPIClient(endpoint, "").do(cmd.Context(), http.MethodPost, "/api/v0/auth/session", body, reply); err != nil {
			return fmt.Errorf("failed to create session: %w", err)
		}

		cmd.PrintErrf("signed in as %s (%s)\n", reply.User.UserID, reply.User.Role)
		fmt.Fprintln(cmd.OutOrStdout(), reply.Token)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sessionCmd)

	sessionCmd.Flags().StringVar(&sessionIDToken, "id-token", "", "ID token issued by the identity provider")
	sessionCmd.Flags().BoolVar(&sessionDev, "dev", false, "Request a development session (non-production servers only)")
	sessionCmd.MarkFlagsMutuallyExclusive("id-token", "dev")
}
