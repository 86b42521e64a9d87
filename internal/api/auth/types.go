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

package auth

import (
	"context"
	"log/slog"

	"github.com/retr0h/storefront/internal/api/response"
	authsvc "github.com/retr0h/storefront/internal/auth"
	"github.com/retr0h/storefront/internal/user"
)

// Service is the account logic behind the auth endpoints.
type Service interface {
	Register(ctx context.Context, in authsvc.RegisterInput) (*user.User, error)
	Login(ctx context.Context, in authsvc.LoginInput) (*authsvc.LoginResult, error)
	Logout(ctx context.Context, userID string, token string) error
	LogoutAll(ctx context.Context, userID string) (int64, error)
	Me(ctx context.Context, userID string) (*user.User, error)
}

// Auth implementation of the account API operations.
type Auth struct {
	Service Service

	logger    *slog.Logger
	responder *response.Responder
}

// LogoutAllResult reports how many sessions were ended.
type LogoutAllResult struct {
	Sessions int64 `json:"sessions"`
}
