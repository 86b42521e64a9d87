// Copyright (c) 2026 John Dewey

// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to
// deal in the Software without restriction, including without limitation the
// rights to use, copy, modify, merge, publish, distribute, sublicense, and/or
// sell copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:

// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.

// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER
// DEALINGS IN THE SOFTWARE.

package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/retr0h/storefront/internal/api"
	"github.com/retr0h/storefront/internal/cli"
	"github.com/retr0h/storefront/internal/database"
	"github.com/retr0h/storefront/internal/telemetry"
)

// startCmd represents the start command.
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the API server",
	Long: `Start the storefront API server.

Connects to Postgres (and NATS when configured), optionally applies pending
migrations, then serves the API until SIGINT/SIGTERM, draining pending audit
writes on the way out.
`,
	Run: func(cmd *cobra.Command, _ []string) {
		ctx := cmd.Context()

		shutdownTracer, err := telemetry.InitTracer(
			ctx,
			telemetry.Service{
				Name:        api.ServiceName,
				Version:     versionInfo().GitVersion,
				Environment: appConfig.Environment,
			},
			appConfig.Telemetry.Tracing,
		)
		if err != nil {
			cli.LogFatal(logger, "failed to initialize tracer", err)
		}

		metricsHandler, metricsPath, shutdownMeter, err := telemetry.InitMeter(
			appConfig.Telemetry.Metrics,
		)
		if err != nil {
			cli.LogFatal(logger, "failed to initialize meter", err)
		}

		db, err := database.Open(ctx, appConfig.Database)
		if err != nil {
			cli.LogFatal(logger, "failed to open database", err)
		}

		if appConfig.Database.MigrateOnStart {
			if err := database.Migrate(ctx, db); err != nil {
				cli.LogFatal(logger, "failed to apply migrations", err)
			}
		}

		nc := connectNATS()
		deps := buildDependencies(db, nc)

		sm := api.New(
			appConfig,
			logger.With("component", "api"),
			api.WithAuditRecorder(deps.recorder),
			api.WithSessionValidator(deps.sessions),
		)
		registerAPIHandlers(sm, deps, metricsHandler, metricsPath, time.Now())

		components := cli.Group{sm, deps.sweeper}
		components.Start()

		cli.RunServer(ctx, components, func() {
			drainCtx, cancel := context.WithTimeout(context.Background(), cli.ShutdownTimeout)
			defer cancel()

			deps.recorder.Stop(drainCtx)
			_ = shutdownMeter(context.Background())
			_ = shutdownTracer(context.Background())
			if nc != nil {
				nc.Close()
			}
			_ = db.Close()
		})
	},
}

func init() {
	rootCmd.AddCommand(startCmd)
}
