// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

const sessionEnvVar = "NOXERA_SESSION"

var (
	endpoint     string
	sessionToken string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "noxera",
	Short: "Noxera Service",
	Long:  `Noxera multi-tenant backend: API server, migrations and an admin CLI.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&endpoint, "endpoint", "http://localhost:8080", "API server endpoint")
	rootCmd.PersistentFlags().StringVar(&sessionToken, "session-token", "", "Session token, defaults to $"+sessionEnvVar)
}
