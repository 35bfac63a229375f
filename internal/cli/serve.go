// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-classical.
//
// go-classical is dual-licensed:
//
// 1. GNU Affero General Public License v3.0 (AGPL-3.0)
//    See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html
//
// 2. Commercial License
//    Contact licensing@automatethethings.com for commercial licensing options.

package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jeremyhahn/go-classical/internal/rest"
	"github.com/jeremyhahn/go-classical/pkg/metrics"
	"github.com/jeremyhahn/go-classical/pkg/pipeline"
)

// resourceInterval is how often runtime gauges are sampled while serving.
const resourceInterval = 15 * time.Second

func (a *app) newServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Long: `Serve the cipher operations as a JSON API with health probes and
Prometheus metrics. SIGINT or SIGTERM shuts the server down gracefully.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings := *a.settings
			settings.Server.Host = a.viper.GetString(flagHost)
			settings.Server.Port = a.viper.GetInt(flagPort)
			if err := settings.Validate(); err != nil {
				return err
			}

			logger, err := settings.NewLogger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			svc, err := pipeline.NewService(settings.ServiceConfig(logger))
			if err != nil {
				return err
			}

			if settings.Metrics.Enabled {
				metrics.Enable()
			} else {
				metrics.Disable()
			}

			server, err := rest.NewServer(rest.NewConfig(&settings, svc, logger, Version))
			if err != nil {
				return fmt.Errorf("failed to create server: %w", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			collector := metrics.StartResourceCollector(ctx, resourceInterval)
			defer collector.Stop()

			logger.Info("Starting classical server", "version", Version, "addr", server.Addr())
			return server.Run(ctx, settings.Server.ShutdownTimeout)
		},
	}

	cmd.Flags().String(flagHost, "", "listen host (env: CLASSICAL_HOST)")
	cmd.Flags().Int(flagPort, 8080, "listen port (env: CLASSICAL_PORT)")

	return cmd
}
