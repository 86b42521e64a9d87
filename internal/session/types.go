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

// Package session tracks login sessions bound to issued tokens.
package session

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when no session matches.
var ErrNotFound = errors.New("session not found")

// Session is a login session. Only a hash of its token is stored.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	TokenHash string    `json:"-"`
	IPAddress string    `json:"ipAddress"`
	UserAgent string    `json:"userAgent"`
	ExpiresAt time.Time `json:"expiresAt"`
	IsValid   bool      `json:"isValid"`
	CreatedAt time.Time `json:"createdAt"`
}

// Expired reports whether the session has passed its expiry at now.
func (s Session) Expired(
	now time.Time,
) bool {
	return !now.Before(s.ExpiresAt)
}

// Repository persists sessions. Invalidation is a soft delete.
type Repository interface {
	// Create stores a new session.
	Create(ctx context.Context, s Session) error
	// GetByTokenHash returns the session for a token hash or ErrNotFound.
	GetByTokenHash(ctx context.Context, tokenHash string) (*Session, error)
	// ListActiveByUser returns a user's valid, unexpired sessions oldest first.
	ListActiveByUser(ctx context.Context, userID string, now time.Time) ([]Session, error)
	// Invalidate marks one session invalid.
	Invalidate(ctx context.Context, id string) error
	// InvalidateByTokenHash marks the session for a token hash invalid.
	InvalidateByTokenHash(ctx context.Context, tokenHash string) error
	// InvalidateAllForUser marks every valid session of a user invalid.
	InvalidateAllForUser(ctx context.Context, userID string) (int64, error)
	// InvalidateExpired marks every valid session expired at now invalid.
	InvalidateExpired(ctx context.Context, now time.Time) (int64, error)
}
