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

// Package auth registers accounts and runs the login and logout flows.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/retr0h/storefront/internal/apperror"
	"github.com/retr0h/storefront/internal/audit"
	"github.com/retr0h/storefront/internal/authtoken"
	"github.com/retr0h/storefront/internal/session"
	"github.com/retr0h/storefront/internal/user"
)

// InvalidCredentialsMessage is returned for any failed login so the
// response does not reveal whether the email exists.
const InvalidCredentialsMessage = "Invalid email or password"

// Sessions is the part of session.Manager the service uses.
type Sessions interface {
	Create(ctx context.Context, userID string, token string) (*session.Session, error)
	Invalidate(ctx context.Context, token string) error
	InvalidateAllForUser(ctx context.Context, userID string) (int64, error)
}

// Recorder records explicit audit events.
type Recorder interface {
	CreateAsync(ctx context.Context, opts audit.Options)
}

// Config holds the token settings for issued logins.
type Config struct {
	SigningKey string
	TokenTTL   time.Duration
}

// Service implements registration, login and logout.
type Service struct {
	logger   *slog.Logger
	users    user.Repository
	sessions Sessions
	tokens   *authtoken.Token
	recorder Recorder
	cfg      Config
	now      func() time.Time
}

// NewService creates a Service.
func NewService(
	logger *slog.Logger,
	users user.Repository,
	sessions Sessions,
	tokens *authtoken.Token,
	recorder Recorder,
	cfg Config,
) *Service {
	return &Service{
		logger:   logger,
		users:    users,
		sessions: sessions,
		tokens:   tokens,
		recorder: recorder,
		cfg:      cfg,
		now:      time.Now,
	}
}

// RegisterInput is a new account request.
type RegisterInput struct {
	Email    string `json:"email"    validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Name     string `json:"name"     validate:"omitempty,max=120"`
}

// LoginInput is a login request.
type LoginInput struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResult is returned by a successful login.
type LoginResult struct {
	Token     string     `json:"token"`
	ExpiresAt time.Time  `json:"expiresAt"`
	User      *user.User `json:"user"`
}

// Register creates a customer account.
func (s *Service) Register(
	ctx context.Context,
	in RegisterInput,
) (*user.User, error) {
	hash, err := user.HashPassword(in.Password)
	if err != nil {
		return nil, apperror.Internal("", err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, apperror.Internal("", fmt.Errorf("generate user id: %w", err))
	}

	now := s.now().UTC()
	u := user.User{
		ID:           id.String(),
		Email:        user.NormalizeEmail(in.Email),
		PasswordHash: hash,
		Name:         in.Name,
		Roles:        []string{authtoken.RoleCustomer},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			return nil, apperror.Wrap(apperror.KindConflict, "Email already registered", err)
		}
		return nil, apperror.Internal("", err)
	}

	s.recorder.CreateAsync(ctx, audit.Options{
		Action:     audit.ActionCreate,
		EntityType: "User",
		EntityID:   u.ID,
		UserID:     u.ID,
		StatusCode: http.StatusCreated,
		NewValues:  u,
	})

	s.logger.InfoContext(ctx, "user registered", slog.String("target_user_id", u.ID))

	return &u, nil
}

// Login verifies credentials, issues a token and opens a session for it.
// Every attempt is audited; failures are reported with the same message
// whether or not the email exists.
func (s *Service) Login(
	ctx context.Context,
	in LoginInput,
) (*LoginResult, error) {
	email := user.NormalizeEmail(in.Email)

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, user.ErrNotFound) {
		return nil, apperror.Internal("", err)
	}

	if u == nil || !u.CheckPassword(in.Password) {
		opts := audit.Options{
			Action:     audit.ActionLogin,
			EntityType: "User",
			StatusCode: http.StatusUnauthorized,
			Metadata:   map[string]any{"email": email, "reason": "invalid_credentials"},
		}
		if u != nil {
			opts.EntityID = u.ID
		}
		s.recorder.CreateAsync(ctx, opts)

		return nil, apperror.Unauthorized(InvalidCredentialsMessage)
	}

	token, err := s.tokens.Generate(
		s.cfg.SigningKey,
		u.Roles,
		u.ID,
		authtoken.WithTTL(s.cfg.TokenTTL),
		authtoken.WithSession(),
	)
	if err != nil {
		return nil, apperror.Internal("", err)
	}

	sess, err := s.sessions.Create(ctx, u.ID, token)
	if err != nil {
		return nil, apperror.Internal("", fmt.Errorf("create session: %w", err))
	}

	s.recorder.CreateAsync(ctx, audit.Options{
		Action:     audit.ActionLogin,
		EntityType: "User",
		EntityID:   u.ID,
		UserID:     u.ID,
		StatusCode: http.StatusOK,
		Metadata:   map[string]any{"sessionId": sess.ID},
	})

	return &LoginResult{
		Token:     token,
		ExpiresAt: sess.ExpiresAt,
		User:      u,
	}, nil
}

// Logout ends the session of token. Logging out twice is not an error.
func (s *Service) Logout(
	ctx context.Context,
	userID string,
	token string,
) error {
	if err := s.sessions.Invalidate(ctx, token); err != nil {
		return apperror.Internal("", err)
	}

	s.recorder.CreateAsync(ctx, audit.Options{
		Action:     audit.ActionLogout,
		EntityType: "Session",
		UserID:     userID,
		StatusCode: http.StatusOK,
	})

	return nil
}

// LogoutAll ends every session of the user.
func (s *Service) LogoutAll(
	ctx context.Context,
	userID string,
) (int64, error) {
	n, err := s.sessions.InvalidateAllForUser(ctx, userID)
	if err != nil {
		return 0, apperror.Internal("", err)
	}

	s.recorder.CreateAsync(ctx, audit.Options{
		Action:     audit.ActionLogout,
		EntityType: "Session",
		UserID:     userID,
		StatusCode: http.StatusOK,
		Metadata:   map[string]any{"invalidated": n, "scope": "all"},
	})

	return n, nil
}

// Me returns the account for userID.
func (s *Service) Me(
	ctx context.Context,
	userID string,
) (*user.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, apperror.NotFound("User not found")
		}
		return nil, apperror.Internal("", err)
	}

	return u, nil
}
