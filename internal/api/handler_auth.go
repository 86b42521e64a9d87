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
	"time"

	"github.com/labstack/echo/v4"

	authapi "github.com/retr0h/storefront/internal/api/auth"
)

// Defaults for the login limiter when none are configured.
const (
	defaultLoginAttempts = 5
	defaultLoginWindow   = 15 * time.Minute
)

// GetAuthHandler returns account handlers for registration. Login attempts
// are rate limited per client IP.
func (s *Server) GetAuthHandler(
	service authapi.Service,
) []func(e *echo.Echo) {
	h := authapi.New(s.logger, s.responder, service)

	attempts := s.appConfig.RateLimit.LoginAttempts
	window := s.appConfig.RateLimit.LoginWindow
	if attempts <= 0 || window <= 0 {
		attempts = defaultLoginAttempts
		window = defaultLoginWindow
	}
	loginLimiter := rateLimit(attempts, window, "Too many login attempts, please try again later")

	return []func(e *echo.Echo){
		func(e *echo.Echo) {
			g := e.Group("/api/auth")
			g.POST("/register", h.PostRegister)
			g.POST("/login", h.PostLogin, loginLimiter)
			g.POST("/logout", h.PostLogout, s.protected()...)
			g.POST("/logout-all", h.PostLogoutAll, s.protected()...)
			g.GET("/me", h.GetMe, s.protected()...)
		},
	}
}
