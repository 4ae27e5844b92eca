// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"errors"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/spf13/cobra"
	"golang.org/x/oauth2/clientcredentials"
)

var (
	clientID     string
	clientSecret string
	tokenURL     string
	issuerURL    string
	scopes       []string
	printIDToken bool
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Get a token from the identity provider using the Client Credentials flow",
	Long: `Get a token from the identity provider using the Client Credentials flow.

With --id-token the OIDC ID token of the response is printed instead of the
access token, ready to be passed to "session --id-token".`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if tokenURL == "" {
			if issuerURL == "" {
				return errors.New("either --token-url or --issuer-url must be provided")
			}

			provider, err := oidc.NewProvider(ctx, issuerURL)
			if err != nil {
				return fmt.Errorf("failed to discover issuer: %w", err)
			}
			tokenURL = provider.Endpoint().TokenURL
		}

		config := &clientcredentials.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			TokenURL:     tokenURL,
			Scopes:       scopes,
		}

		token, err := config.Token(ctx)
		if err != nil {
			return fmt.Errorf("failed to get token: %w", err)
		}

		if !printIDToken {
			fmt.Fprintln(cmd.OutOrStdout(), token.AccessToken)
			return nil
		}

		idToken, ok := token.Extra("id_token").(string)
		if !ok || idToken == "" {
			return errors.New("the identity provider did not return an id_token, add the openid scope")
		}

		fmt.Fprintln(cmd.OutOrStdout(), idToken)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tokenCmd)

	tokenCmd.Flags().StringVar(&clientID, "client-id", "", "Client ID")
	tokenCmd.Flags().StringVar(&clientSecret, "client-secret", "", "Client Secret")
	tokenCmd.Flags().StringVar(&tokenURL, "token-url", "", "Token URL")
	tokenCmd.Flags().StringVar(&issuerURL, "issuer-url", "", "Issuer URL (for OIDC discovery)")
	tokenCmd.Flags().StringSliceVar(&scopes, "scopes", []string{}, "Scopes (comma-separated)")
	tokenCmd.Flags().BoolVar(&printIDToken, "id-token", false, "Print the ID token instead of the access token")

	_ = tokenCmd.MarkFlagRequired("client-id")
	_ = tokenCmd.MarkFlagRequired("client-secret")
}
