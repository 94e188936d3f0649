// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"net/http"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/canonical/membership-gateway/internal/types"
	"github.com/canonical/membership-gateway/pkg/access"
	"github.com/canonical/membership-gateway/pkg/webhooks"
)

var (
	adminUserID string
	chatType    string
)

var memberCmd = &cobra.Command{
	Use:   "member",
	Short: "Inspect and manage memberships",
}

var memberGetCmd = &cobra.Command{
	Use:   "get [user-id]",
	Short: "Show the access state of a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return call(cmd, http.MethodGet, "/api/v0/members/"+url.PathEscape(args[0]), nil)
	},
}

var memberHistoryCmd = &cobra.Command{
	Use:   "history [user-id]",
	Short: "List every grant a user ever held",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return call(cmd, http.MethodGet, "/api/v0/members/"+url.PathEscape(args[0])+"/history", nil)
	},
}

var memberTrialCmd = &cobra.Command{
	Use:   "trial [user-id]",
	Short: "Request the one time trial for a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return call(cmd, http.MethodPost, "/api/v0/trials", access.TrialRequest{UserID: args[0]})
	},
}

var memberRevokeCmd = &cobra.Command{
	Use:   "revoke [user-id]",
	Short: "Revoke a user's access as the administrator",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return call(cmd, http.MethodPost, "/api/v0/members/"+url.PathEscape(args[0])+"/revoke", access.RevokeRequest{AdminUserID: adminUserID})
	},
}

var memberPayCmd = &cobra.Command{
	Use:   "pay [payment-id] [user-id] [amount]",
	Short: "Deliver a payment confirmation, as the payment provider would",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return call(cmd, http.MethodPost, "/webhooks/payments", webhooks.PaymentEvent{PaymentID: args[0], UserID: args[1], Amount: args[2]})
	},
}

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Administrator and channel setup",
}

var adminClaimCmd = &cobra.Command{
	Use:   "claim [user-id]",
	Short: "Claim the administrator role, only the first claim wins",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return call(cmd, http.MethodPost, "/api/v0/admin/claim", access.ClaimAdminRequest{UserID: args[0]})
	},
}

var adminBindCmd = &cobra.Command{
	Use:   "bind-channel [chat-id]",
	Short: "Bind the channel access is granted to",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return call(cmd, http.MethodPost, "/api/v0/channel", access.BindChannelRequest{
			AdminUserID: adminUserID,
			ChatID:      args[0],
			ChatType:    types.ChatType(chatType),
		})
	},
}

var adminChannelCmd = &cobra.Command{
	Use:   "channel",
	Short: "Show the bound channel",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return call(cmd, http.MethodGet, "/api/v0/channel", nil)
	},
}

func call(cmd *cobra.Command, method, path string, in any) error {
	body, err := newGatewayClient(cmd.Context()).do(cmd.Context(), method, path, in)
	if err != nil {
		return err
	}

	return printJSON(cmd.OutOrStdout(), body)
}

func init() {
	memberRevokeCmd.Flags().StringVar(&adminUserID, "admin", "", "Administrator user id")
	_ = memberRevokeCmd.MarkFlagRequired("admin")

	adminBindCmd.Flags().StringVar(&adminUserID, "admin", "", "Administrator user id")
	adminBindCmd.Flags().StringVar(&chatType, "chat-type", string(types.ChatChannel), "Type of the chat the command was issued from")
	_ = adminBindCmd.MarkFlagRequired("admin")

	memberCmd.AddCommand(memberGetCmd, memberHistoryCmd, memberTrialCmd, memberRevokeCmd, memberPayCmd)
	adminCmd.AddCommand(adminClaimCmd, adminBindCmd, adminChannelCmd)

	rootCmd.AddCommand(memberCmd, adminCmd)
}
