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
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/retr0h/storefront/internal/dbx"
)

// ensure PostgresRepository implements Repository at compile time.
var _ Repository = (*PostgresRepository)(nil)

const sessionColumns = `id, user_id, token_hash, ip_address, user_agent, expires_at, is_valid, created_at`

// PostgresRepository stores sessions in the sessions table.
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository creates a PostgresRepository.
func NewPostgresRepository(
	db dbx.DBTX,
) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a session.
func (r *PostgresRepository) Create(
	ctx context.Context,
	s Session,
) error {
	query := `INSERT INTO sessions (` + sessionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	if _, err := r.db.ExecContext(ctx, query,
		s.ID, s.UserID, s.TokenHash, s.IPAddress, s.UserAgent,
		s.ExpiresAt, s.IsValid, s.CreatedAt,
	); err != nil {
		return fmt.Errorf("insert session: %w", err)
	}

	return nil
}

// GetByTokenHash returns the session for tokenHash.
func (r *PostgresRepository) GetByTokenHash(
	ctx context.Context,
	tokenHash string,
) (*Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE token_hash = $1`

	var s Session
	err := r.db.QueryRowContext(ctx, query, tokenHash).Scan(
		&s.ID, &s.UserID, &s.TokenHash, &s.IPAddress, &s.UserAgent,
		&s.ExpiresAt, &s.IsValid, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get session: %w", err)
	}

	return &s, nil
}

// ListActiveByUser returns valid, unexpired sessions oldest first.
func (r *PostgresRepository) ListActiveByUser(
	ctx context.Context,
	userID string,
	now time.Time,
) ([]Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions
		WHERE user_id = $1 AND is_valid AND expires_at > $2
		ORDER BY created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, userID, now)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	sessions := []Session{}
	for rows.Next() {
		var s Session
		if err := rows.Scan(
			&s.ID, &s.UserID, &s.TokenHash, &s.IPAddress, &s.UserAgent,
			&s.ExpiresAt, &s.IsValid, &s.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}

	return sessions, nil
}

// Invalidate marks the session with id invalid.
func (r *PostgresRepository) Invalidate(
	ctx context.Context,
	id string,
) error {
	query := `UPDATE sessions SET is_valid = FALSE, updated_at = now() WHERE id = $1`

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("invalidate session: %w", err)
	}

	return nil
}

// InvalidateByTokenHash marks the session for tokenHash invalid. Unknown or
// already invalid sessions are not an error.
func (r *PostgresRepository) InvalidateByTokenHash(
	ctx context.Context,
	tokenHash string,
) error {
	query := `UPDATE sessions SET is_valid = FALSE, updated_at = now()
		WHERE token_hash = $1 AND is_valid`

	if _, err := r.db.ExecContext(ctx, query, tokenHash); err != nil {
		return fmt.Errorf("invalidate session: %w", err)
	}

	return nil
}

// InvalidateAllForUser marks all of a user's valid sessions invalid.
func (r *PostgresRepository) InvalidateAllForUser(
	ctx context.Context,
	userID string,
) (int64, error) {
	query := `UPDATE sessions SET is_valid = FALSE, updated_at = now()
		WHERE user_id = $1 AND is_valid`

	return r.execCount(ctx, "invalidate user sessions", query, userID)
}

// InvalidateExpired marks valid sessions past their expiry invalid.
func (r *PostgresRepository) InvalidateExpired(
	ctx context.Context,
	now time.Time,
) (int64, error) {
	query := `UPDATE sessions SET is_valid = FALSE, updated_at = now()
		WHERE is_valid AND expires_at <= $1`

	return r.execCount(ctx, "invalidate expired sessions", query, now)
}

func (r *PostgresRepository) execCount(
	ctx context.Context,
	op string,
	query string,
	args ...any,
) (int64, error) {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return n, nil
}
