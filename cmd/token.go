// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/spf13/cobra"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/canonical/membership-gateway/internal/config"
)

var (
	clientID     string
	clientSecret string
	tokenURL     string
	issuerURL    string
	scopes       []string
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Get a gateway access token with the client credentials flow",
	Long: `Get an access token for the gateway API and print it, pass it to the other commands with --token or GATEWAY_TOKEN.

The gateway checks two scopes: EVENTS_SCOPE (default gateway:events) guards the
chat event, membership and admin routes, PAYMENTS_SCOPE (default gateway:payments)
guards the payment webhook. Without --scopes the token asks for both.
The issuer defaults to AUTHENTICATION_ISSUER.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		specs, err := loadSpecs()
		if err != nil {
			return err
		}

		token, err := requestToken(cmd.Context(), tokenRequestFor(specs))
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

type tokenRequest struct {
	clientID     string
	clientSecret string
	tokenURL     string
	issuerURL    string
	scopes       []string
}

// tokenRequestFor fills what the flags left unset from the environment.
func tokenRequestFor(specs *config.EnvSpec) tokenRequest {
	r := tokenRequest{
		clientID:     clientID,
		clientSecret: clientSecret,
		tokenURL:     tokenURL,
		issuerURL:    issuerURL,
		scopes:       scopes,
	}

	if r.issuerURL == "" {
		r.issuerURL = specs.AuthenticationIssuer
	}

	if len(r.scopes) == 0 {
		r.scopes = gatewayScopes(specs)
	}

	return r
}

// gatewayScopes lists the scopes the server checks, once each.
func gatewayScopes(specs *config.EnvSpec) []string {
	var out []string
	for _, s := range []string{specs.EventsScope, specs.PaymentsScope} {
		if s != "" && !slices.Contains(out, s) {
			out = append(out, s)
		}
	}

	return out
}

func requestToken(ctx context.Context, r tokenRequest) (string, error) {
	endpoint := r.tokenURL
	if endpoint == "" {
		if r.issuerURL == "" {
			return "", errors.New("either --token-url or --issuer-url must be provided")
		}

		provider, err := oidc.NewProvider(ctx, r.issuerURL)
		if err != nil {
			return "", fmt.Errorf("failed to discover the token endpoint of %s: %w", r.issuerURL, err)
		}
		endpoint = provider.Endpoint().TokenURL
	}

	cc := &clientcredentials.Config{
		ClientID:     r.clientID,
		ClientSecret: r.clientSecret,
		TokenURL:     endpoint,
		Scopes:       r.scopes,
	}

	token, err := cc.Token(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to get token: %w", err)
	}

	return token.AccessToken, nil
}

func init() {
	rootCmd.AddCommand(tokenCmd)

	tokenCmd.Flags().StringVar(&clientID, "client-id", "", "Client ID")
	tokenCmd.Flags().StringVar(&clientSecret, "client-secret", "", "Client Secret")
	tokenCmd.Flags().StringVar(&tokenURL, "token-url", "", "Token URL")
	tokenCmd.Flags().StringVar(&issuerURL, "issuer-url", "", "Issuer URL for OIDC discovery, defaults to AUTHENTICATION_ISSUER")
	tokenCmd.Flags().StringSliceVar(&scopes, "scopes", nil, "Scopes (comma-separated), defaults to EVENTS_SCOPE and PAYMENTS_SCOPE")

	_ = tokenCmd.MarkFlagRequired("client-id")
	_ = tokenCmd.MarkFlagRequired("client-secret")
}
