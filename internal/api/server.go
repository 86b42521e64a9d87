// Copyright (c) 2024 John Dewey

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

package api

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	slogecho "github.com/samber/slog-echo"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"

	"github.com/retr0h/storefront/internal/api/response"
	"github.com/retr0h/storefront/internal/authtoken"
	"github.com/retr0h/storefront/internal/config"
)

// ServiceName identifies the API in traces.
const ServiceName = "storefront-api"

// DefaultBodyLimit caps request bodies when none is configured.
const DefaultBodyLimit = "1M"

// New initialize a new Server and configure an Echo server.
//
// The middleware order matters: request ids are assigned first so every
// later log line and audit record carries them, and the audit middleware
// wraps panic recovery so a recovered panic is still audited as a failure.
func New(
	appConfig config.Config,
	logger *slog.Logger,
	opts ...Option,
) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Build custom roles map from config.
	var customRoles map[string][]string
	if cfgRoles := appConfig.API.Security.Roles; len(cfgRoles) > 0 {
		customRoles = make(map[string][]string, len(cfgRoles))
		for name, role := range cfgRoles {
			customRoles[name] = role.Permissions
		}
	}

	s := &Server{
		Echo:        e,
		logger:      logger,
		appConfig:   appConfig,
		customRoles: customRoles,
		responder:   response.New(logger, appConfig.IsDevelopment()),
		tokens:      authtoken.New(logger),
	}

	for _, opt := range opts {
		opt(s)
	}

	e.HTTPErrorHandler = s.httpErrorHandler
	e.IPExtractor = ipExtractor(logger, appConfig.API.Security.TrustedProxies)

	corsConfig := middleware.CORSConfig{}
	if allowOrigins := appConfig.API.Security.CORS.AllowOrigins; len(allowOrigins) > 0 {
		corsConfig.AllowOrigins = allowOrigins
	}
	corsConfig.ExposeHeaders = []string{
		echo.HeaderXRequestID,
		HeaderXCorrelationID,
		HeaderXResponseTime,
	}

	bodyLimit := appConfig.API.BodyLimit
	if bodyLimit == "" {
		bodyLimit = DefaultBodyLimit
	}

	e.Use(otelecho.Middleware(ServiceName))
	e.Use(requestContextMiddleware())
	e.Use(responseTimeMiddleware())
	e.Use(slogecho.NewWithConfig(logger, slogecho.Config{
		DefaultLevel:     slog.LevelInfo,
		ClientErrorLevel: slog.LevelWarn,
		ServerErrorLevel: slog.LevelError,
		WithRequestID:    true,
		WithTraceID:      true,
		WithSpanID:       true,
	}))
	e.Use(middleware.BodyLimit(bodyLimit))
	if s.recorder != nil {
		e.Use(auditMiddleware(s.recorder, appConfig.Audit))
	}
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(corsConfig))
	if rl := appConfig.RateLimit; rl.APIRequests > 0 && rl.APIWindow > 0 {
		e.Use(rateLimit(rl.APIRequests, rl.APIWindow, "Too many requests, please slow down"))
	}

	return s
}

// ipExtractor resolves the client address used for rate limiting, audit
// records and sessions. Forwarded headers are only read when the peer is
// one of the trusted proxy ranges; otherwise the TCP peer address is used.
func ipExtractor(
	logger *slog.Logger,
	trustedProxies []string,
) echo.IPExtractor {
	var ranges []echo.TrustOption
	for _, cidr := range trustedProxies {
		_, ipNet, err := net.ParseCIDR(cidr)
		if err != nil {
			logger.Warn("ignoring invalid trusted proxy", slog.String("cidr", cidr))
			continue
		}
		ranges = append(ranges, echo.TrustIPRange(ipNet))
	}

	if len(ranges) == 0 {
		return echo.ExtractIPDirect()
	}

	opts := append([]echo.TrustOption{
		echo.TrustLoopback(false),
		echo.TrustLinkLocal(false),
		echo.TrustPrivateNet(false),
	}, ranges...)

	return echo.ExtractIPFromXFFHeader(opts...)
}

// RegisterHandlers mounts the given route registrations.
func (s *Server) RegisterHandlers(
	handlers []func(e *echo.Echo),
) {
	for _, register := range handlers {
		register(s.Echo)
	}
}

// Responder returns the envelope writer shared by the handlers.
func (s *Server) Responder() *response.Responder {
	return s.responder
}

// Start starts the Echo server with the configured port.
func (s *Server) Start() {
	go func() {
		s.logger.Info("starting server", slog.Int("port", s.appConfig.API.Port))
		listenAddr := fmt.Sprintf(":%d", s.appConfig.API.Port)
		if err := s.Echo.Start(listenAddr); err != nil && err != http.ErrServerClosed {
			s.logger.Error(
				"failed to start server",
				slog.String("error", err.Error()),
			)
		}
	}()
}

// Stop gracefully shuts down the Echo server.
func (s *Server) Stop(
	ctx context.Context,
) {
	s.logger.Info("stopping server")

	if err := s.Echo.Shutdown(ctx); err != nil {
		s.logger.Error(
			"server shutdown failed",
			slog.String("error", err.Error()),
		)
	} else {
		s.logger.Info("server stopped gracefully")
	}
}
