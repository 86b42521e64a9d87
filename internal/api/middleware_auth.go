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

package api

import (
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"github.com/retr0h/storefront/internal/api/identity"
	"github.com/retr0h/storefront/internal/apperror"
	"github.com/retr0h/storefront/internal/authtoken"
	"github.com/retr0h/storefront/internal/requestctx"
)

// Client-facing authentication failures.
const (
	msgBearerRequired   = "Bearer token required"
	msgInvalidToken     = "Invalid or expired token"
	msgSessionEnded     = "Session is no longer valid"
	msgInsufficientPerm = "Insufficient permissions"
)

// authenticate validates the bearer token and, for session-bound tokens,
// the login session behind it. The caller's identity and resolved
// permissions are stored on the context.
func (s *Server) authenticate(
	next echo.HandlerFunc,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()
		ctx := req.Context()

		authHeader := req.Header.Get(echo.HeaderAuthorization)
		if !strings.HasPrefix(authHeader, "Bearer ") {
			return apperror.Unauthorized(msgBearerRequired)
		}
		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))

		claims, err := s.tokens.Validate(token, s.appConfig.API.Security.SigningKey)
		if err != nil {
			s.logger.DebugContext(ctx, "token rejected", slog.String("error", err.Error()))
			return apperror.Unauthorized(msgInvalidToken)
		}

		if claims.SessionBound && s.sessions != nil {
			live, err := s.sessions.Validate(ctx, token)
			if err != nil {
				return apperror.Unavailable("Session store is unavailable", err)
			}
			if !live {
				return apperror.Unauthorized(msgSessionEnded)
			}
		}

		identity.Set(c, identity.Identity{
			Subject: claims.Subject,
			Roles:   claims.Roles,
			Permissions: authtoken.ResolvePermissions(
				claims.Roles,
				claims.Permissions,
				s.customRoles,
			),
			Token: token,
		})
		c.SetRequest(req.WithContext(requestctx.WithUserID(ctx, claims.Subject)))

		return next(c)
	}
}

// requirePermission allows the request when the caller holds any of perms.
// It must run after authenticate.
func requirePermission(
	perms ...string,
) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, ok := identity.From(c)
			if !ok {
				return apperror.Unauthorized(msgBearerRequired)
			}

			for _, p := range perms {
				if id.Has(p) {
					return next(c)
				}
			}

			return apperror.Forbidden(msgInsufficientPerm)
		}
	}
}

// rateLimit allows limit requests per client IP within window, with the
// full allowance available as a burst.
func rateLimit(
	limit int,
	window time.Duration,
	message string,
) echo.MiddlewareFunc {
	store := middleware.NewRateLimiterMemoryStoreWithConfig(
		middleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(float64(limit) / window.Seconds()),
			Burst:     limit,
			ExpiresIn: window,
		},
	)

	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(_ echo.Context, err error) error {
			return apperror.Wrap(apperror.KindForbidden, "Client could not be identified", err)
		},
		DenyHandler: func(c echo.Context, _ string, _ error) error {
			c.Response().Header().Set(echo.HeaderRetryAfter, strconv.Itoa(int(window.Seconds())))
			return apperror.RateLimited(message)
		},
	})
}
