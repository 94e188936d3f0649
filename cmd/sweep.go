// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/canonical/membership-gateway/internal/logging"
	"github.com/canonical/membership-gateway/internal/monitoring/prometheus"
	"github.com/canonical/membership-gateway/internal/tracing"
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Run a single expiry sweep and exit",
	Long:  `Revoke every grant that is due, using the same environment as serve. Meant for cron style deployments.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		specs, err := loadSpecs()
		if err != nil {
			return err
		}

		logger := logging.NewLogger(specs.LogLevel)
		defer logger.Sync()

		monitor := prometheus.NewMonitor("membership-gateway", logger)
		tracer := tracing.NewTracer(tracing.NewConfig(specs.TracingEnabled, specs.OtelGRPCEndpoint, specs.OtelHTTPEndpoint, logger))

		gw, err := newGateway(cmd.Context(), specs, tracer, monitor, logger)
		if err != nil {
			return err
		}
		defer gw.Close()

		res, err := gw.scheduler.Sweep(cmd.Context())
		if err != nil {
			return fmt.Errorf("sweep failed: %w", err)
		}

		if err := json.NewEncoder(cmd.OutOrStdout()).Encode(res); err != nil {
			return err
		}

		if res.Failed > 0 {
			return fmt.Errorf("%d of %d grants could not be revoked", res.Failed, res.Due)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sweepCmd)
}
