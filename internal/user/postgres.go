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

package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/retr0h/storefront/internal/dbx"
)

// ensure PostgresRepository implements Repository at compile time.
var _ Repository = (*PostgresRepository)(nil)

const uniqueViolation = "23505"

// PostgresRepository stores users in the users table. Roles are kept as a
// comma separated list.
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository creates a PostgresRepository.
func NewPostgresRepository(
	db dbx.DBTX,
) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts u. A duplicate email returns ErrEmailTaken.
func (r *PostgresRepository) Create(
	ctx context.Context,
	u User,
) error {
	query := `INSERT INTO users (id, email, password_hash, name, roles, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.ExecContext(ctx, query,
		u.ID, u.Email, u.PasswordHash, u.Name, joinRoles(u.Roles), u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrEmailTaken
		}
		return fmt.Errorf("insert user: %w", err)
	}

	return nil
}

// GetByEmail returns the user with email.
func (r *PostgresRepository) GetByEmail(
	ctx context.Context,
	email string,
) (*User, error) {
	return r.getOne(ctx, `WHERE email = $1`, email)
}

// GetByID returns the user with id.
func (r *PostgresRepository) GetByID(
	ctx context.Context,
	id string,
) (*User, error) {
	return r.getOne(ctx, `WHERE id = $1`, id)
}

func (r *PostgresRepository) getOne(
	ctx context.Context,
	where string,
	arg string,
) (*User, error) {
	query := `SELECT id, email, password_hash, name, roles, created_at, updated_at
		FROM users ` + where

	var (
		u     User
		roles string
	)
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Name, &roles, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	u.Roles = splitRoles(roles)

	return &u, nil
}
