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
	"context"
	"log/slog"

	"github.com/labstack/echo/v4"

	"github.com/retr0h/storefront/internal/api/response"
	"github.com/retr0h/storefront/internal/audit"
	"github.com/retr0h/storefront/internal/authtoken"
	"github.com/retr0h/storefront/internal/config"
)

// Server implementation of the Server's API operations.
type Server struct {
	// Echo server instance.
	Echo *echo.Echo

	logger      *slog.Logger
	appConfig   config.Config
	customRoles map[string][]string
	responder   *response.Responder
	tokens      TokenValidator
	sessions    SessionValidator
	recorder    AuditRecorder
}

// Option configures optional Server dependencies.
type Option func(*Server)

// TokenValidator parses and validates JWT tokens.
type TokenValidator interface {
	Validate(
		tokenString string,
		signingKey string,
	) (*authtoken.CustomClaims, error)
}

// SessionValidator reports whether a session-bound token is still live.
type SessionValidator interface {
	Validate(
		ctx context.Context,
		token string,
	) (bool, error)
}

// AuditRecorder records audit events without blocking the request.
type AuditRecorder interface {
	CreateAsync(
		ctx context.Context,
		opts audit.Options,
	)
}
