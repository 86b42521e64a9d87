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
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/nats-io/nats.go"
	stripeclient "github.com/stripe/stripe-go/v76/client"

	"github.com/retr0h/storefront/internal/api"
	authapi "github.com/retr0h/storefront/internal/api/auth"
	docsapi "github.com/retr0h/storefront/internal/api/docs"
	featuredapi "github.com/retr0h/storefront/internal/api/featured"
	"github.com/retr0h/storefront/internal/api/health"
	ordersapi "github.com/retr0h/storefront/internal/api/orders"
	paymentapi "github.com/retr0h/storefront/internal/api/payment"
	"github.com/retr0h/storefront/internal/api/system"
	"github.com/retr0h/storefront/internal/audit"
	"github.com/retr0h/storefront/internal/auth"
	"github.com/retr0h/storefront/internal/authtoken"
	"github.com/retr0h/storefront/internal/cli"
	"github.com/retr0h/storefront/internal/config"
	"github.com/retr0h/storefront/internal/docs"
	"github.com/retr0h/storefront/internal/featured"
	"github.com/retr0h/storefront/internal/order"
	"github.com/retr0h/storefront/internal/payment"
	"github.com/retr0h/storefront/internal/printify"
	"github.com/retr0h/storefront/internal/session"
	"github.com/retr0h/storefront/internal/user"
)

// ServerManager responsible for Server operations.
type ServerManager interface {
	cli.Lifecycle
	// GetHealthHandler returns health handler for registration.
	GetHealthHandler(checker health.Checker, startTime time.Time, version string) []func(e *echo.Echo)
	// GetSystemHandler returns system status handler for registration.
	GetSystemHandler(
		host system.HostProvider,
		components system.ComponentReporter,
		version string,
	) []func(e *echo.Echo)
	// GetMetricsHandler returns Prometheus metrics handler for registration.
	GetMetricsHandler(handler http.Handler, path string) []func(e *echo.Echo)
	GetAuthHandler(service authapi.Service) []func(e *echo.Echo)
	GetCatalogHandler(client printify.Catalog) []func(e *echo.Echo)
	GetFeaturedHandler(service featuredapi.Service) []func(e *echo.Echo)
	GetDocsHandler(library docsapi.Library) []func(e *echo.Echo)
	GetPaymentHandler(service paymentapi.Service, accounts paymentapi.Accounts) []func(e *echo.Echo)
	GetOrdersHandler(service ordersapi.Service) []func(e *echo.Echo)
	// GetAuditHandler returns audit handler for registration.
	GetAuditHandler(store audit.Store) []func(e *echo.Echo)
	// RegisterHandlers registers a list of handlers with the Echo instance.
	RegisterHandlers(handlers []func(e *echo.Echo))
}

var _ ServerManager = (*api.Server)(nil)

// dependencies are the services behind the API handlers.
type dependencies struct {
	checker    *health.DependencyChecker
	auditStore audit.Store
	recorder   *audit.Recorder
	sessions   *session.Manager
	sweeper    *session.Sweeper
	auth       *auth.Service
	catalog    *printify.Client
	featured   *featured.Service
	orders     *order.Service
	payments   *payment.Service
	docs       *docs.Store
}

// connectNATS returns nil when no NATS server is configured and the audit
// log does not need one.
func connectNATS() *nats.Conn {
	if appConfig.NATS.URL == "" && appConfig.Audit.Backend != config.AuditBackendNATS {
		return nil
	}

	nc, err := cli.ConnectNATS(logger.With("component", "nats"), appConfig.NATS)
	if err != nil {
		cli.LogFatal(logger, "failed to connect to NATS", err)
	}

	return nc
}

// openAuditStore selects the configured audit backend.
func openAuditStore(
	db *sql.DB,
	nc *nats.Conn,
) audit.Store {
	if appConfig.Audit.Backend != config.AuditBackendNATS {
		return audit.NewPostgresStore(db)
	}

	js, err := nc.JetStream()
	if err != nil {
		cli.LogFatal(logger, "failed to open JetStream", err)
	}

	kvCfg := cli.BuildAuditKVConfig(appConfig.NATS.Audit)
	kv, err := cli.OpenKeyValue(js, kvCfg)
	if err != nil {
		cli.LogFatal(logger, "failed to open audit KV bucket", err, "bucket", kvCfg.Bucket)
	}

	return audit.NewKVStore(logger.With("component", "audit"), kv)
}

func newHealthChecker(
	db *sql.DB,
	nc *nats.Conn,
) *health.DependencyChecker {
	checker := &health.DependencyChecker{
		DBCheck: db.PingContext,
	}

	if nc != nil {
		checker.NATSCheck = func(_ context.Context) error {
			if status := nc.Status(); status != nats.CONNECTED {
				return fmt.Errorf("connection %s", status)
			}

			return nil
		}
	}

	return checker
}

func buildDependencies(
	db *sql.DB,
	nc *nats.Conn,
) *dependencies {
	auditStore := openAuditStore(db, nc)
	recorder := audit.NewRecorder(logger.With("component", "audit"), auditStore)

	sessions := session.NewManager(
		logger.With("component", "session"),
		session.NewPostgresRepository(db),
		appConfig.Session,
	)
	sweeper, err := session.NewSweeper(logger.With("component", "session"), sessions, appConfig.Session.SweepSchedule)
	if err != nil {
		cli.LogFatal(logger, "invalid session sweep schedule", err, "schedule", appConfig.Session.SweepSchedule)
	}

	authService := auth.NewService(
		logger.With("component", "auth"),
		user.NewPostgresRepository(db),
		sessions,
		authtoken.New(logger),
		recorder,
		auth.Config{
			SigningKey: appConfig.API.Security.SigningKey,
			TokenTTL:   appConfig.API.Security.TokenTTL,
		},
	)

	catalog := printify.New(logger.With("component", "printify"), appConfig.Printify)
	orders := order.NewService(logger.With("component", "orders"), order.NewPostgresRepository(db), recorder)

	sc := &stripeclient.API{}
	sc.Init(appConfig.Stripe.SecretKey, nil)
	payments := payment.NewService(
		logger.With("component", "payment"),
		appConfig.Stripe,
		sc.CheckoutSessions,
		sc.Refunds,
		catalog,
		orders,
		recorder,
	)

	return &dependencies{
		checker:    newHealthChecker(db, nc),
		auditStore: auditStore,
		recorder:   recorder,
		sessions:   sessions,
		sweeper:    sweeper,
		auth:       authService,
		catalog:    catalog,
		featured:   featured.NewService(logger.With("component", "featured"), featured.NewPostgresRepository(db), recorder),
		orders:     orders,
		payments:   payments,
		docs:       docs.NewStore(appFs, appConfig.Docs.Dir),
	}
}

func registerAPIHandlers(
	sm ServerManager,
	deps *dependencies,
	metricsHandler http.Handler,
	metricsPath string,
	startTime time.Time,
) {
	v := versionInfo().GitVersion

	handlers := make([]func(e *echo.Echo), 0, 16)
	handlers = append(handlers, sm.GetHealthHandler(deps.checker, startTime, v)...)
	handlers = append(handlers, sm.GetSystemHandler(system.NewHostProvider(), deps.checker, v)...)
	handlers = append(handlers, sm.GetMetricsHandler(metricsHandler, metricsPath)...)
	handlers = append(handlers, sm.GetAuthHandler(deps.auth)...)
	handlers = append(handlers, sm.GetCatalogHandler(deps.catalog)...)
	handlers = append(handlers, sm.GetFeaturedHandler(deps.featured)...)
	handlers = append(handlers, sm.GetDocsHandler(deps.docs)...)
	handlers = append(handlers, sm.GetPaymentHandler(deps.payments, deps.auth)...)
	handlers = append(handlers, sm.GetOrdersHandler(deps.orders)...)
	handlers = append(handlers, sm.GetAuditHandler(deps.auditStore)...)

	sm.RegisterHandlers(handlers)
}
