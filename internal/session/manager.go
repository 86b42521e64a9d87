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

package session

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"

	"github.com/retr0h/storefront/internal/config"
	"github.com/retr0h/storefront/internal/requestctx"
)

// DefaultTTL is the session lifetime when none is configured.
const DefaultTTL = 24 * time.Hour

// Manager creates, validates and invalidates sessions.
type Manager struct {
	logger        *slog.Logger
	repo          Repository
	ttl           time.Duration
	maxConcurrent int
	now           func() time.Time
	events        metric.Int64Counter
}

// Option configures a Manager.
type Option func(*Manager)

// WithClock overrides the time source.
func WithClock(
	now func() time.Time,
) Option {
	return func(m *Manager) {
		m.now = now
	}
}

// NewManager creates a Manager.
func NewManager(
	logger *slog.Logger,
	repo Repository,
	cfg config.Session,
	opts ...Option,
) *Manager {
	counter, err := otel.Meter("github.com/retr0h/storefront/internal/session").Int64Counter(
		"storefront.session.events",
		metric.WithDescription("Session lifecycle events."),
	)
	if err != nil {
		counter = noop.Int64Counter{}
	}

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	m := &Manager{
		logger:        logger,
		repo:          repo,
		ttl:           ttl,
		maxConcurrent: cfg.MaxConcurrent,
		now:           time.Now,
		events:        counter,
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// HashToken returns the stored form of a token.
func HashToken(
	token string,
) string {
	sum := sha256.Sum256([]byte(token))

	return hex.EncodeToString(sum[:])
}

// Create stores a session for token, recording the client address and user
// agent from ctx. When the user already holds the maximum number of active
// sessions the oldest are invalidated first.
func (m *Manager) Create(
	ctx context.Context,
	userID string,
	token string,
) (*Session, error) {
	now := m.now().UTC()

	if m.maxConcurrent > 0 {
		if err := m.evict(ctx, userID, now); err != nil {
			return nil, err
		}
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate session id: %w", err)
	}

	info := requestctx.From(ctx)
	s := Session{
		ID:        id.String(),
		UserID:    userID,
		TokenHash: HashToken(token),
		IPAddress: info.IPAddress,
		UserAgent: info.UserAgent,
		ExpiresAt: now.Add(m.ttl),
		IsValid:   true,
		CreatedAt: now,
	}

	if err := m.repo.Create(ctx, s); err != nil {
		return nil, err
	}

	m.count(ctx, "created")

	return &s, nil
}

// Validate reports whether token belongs to a valid, unexpired session. An
// expired session found still marked valid is invalidated as a side effect.
// Errors are returned only for storage failures.
func (m *Manager) Validate(
	ctx context.Context,
	token string,
) (bool, error) {
	s, err := m.repo.GetByTokenHash(ctx, HashToken(token))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}

	if !s.IsValid {
		return false, nil
	}

	if s.Expired(m.now()) {
		if err := m.repo.Invalidate(ctx, s.ID); err != nil {
			m.logger.WarnContext(
				ctx,
				"failed to invalidate expired session",
				slog.String("session_id", s.ID),
				slog.String("error", err.Error()),
			)
		} else {
			m.count(ctx, "expired")
		}
		return false, nil
	}

	return true, nil
}

// Invalidate ends the session for token. Invalidating an unknown or already
// invalid session is a no-op.
func (m *Manager) Invalidate(
	ctx context.Context,
	token string,
) error {
	if err := m.repo.InvalidateByTokenHash(ctx, HashToken(token)); err != nil {
		return err
	}

	m.count(ctx, "invalidated")

	return nil
}

// InvalidateAllForUser ends every session of a user and returns how many
// were active.
func (m *Manager) InvalidateAllForUser(
	ctx context.Context,
	userID string,
) (int64, error) {
	n, err := m.repo.InvalidateAllForUser(ctx, userID)
	if err != nil {
		return 0, err
	}

	m.logger.InfoContext(
		ctx,
		"invalidated user sessions",
		slog.String("target_user_id", userID),
		slog.Int64("count", n),
	)

	return n, nil
}

// PurgeExpired invalidates every session past its expiry.
func (m *Manager) PurgeExpired(
	ctx context.Context,
) (int64, error) {
	return m.repo.InvalidateExpired(ctx, m.now().UTC())
}

func (m *Manager) evict(
	ctx context.Context,
	userID string,
	now time.Time,
) error {
	active, err := m.repo.ListActiveByUser(ctx, userID, now)
	if err != nil {
		return err
	}

	excess := len(active) - m.maxConcurrent + 1
	for i := 0; i < excess; i++ {
		if err := m.repo.Invalidate(ctx, active[i].ID); err != nil {
			return err
		}
		m.count(ctx, "evicted")
		m.logger.InfoContext(
			ctx,
			"evicted oldest session",
			slog.String("session_id", active[i].ID),
			slog.String("target_user_id", userID),
		)
	}

	return nil
}

func (m *Manager) count(
	ctx context.Context,
	event string,
) {
	m.events.Add(ctx, 1, metric.WithAttributes(attribute.String("event", event)))
}
