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

package featured

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

const (
	featuredColumns = `id, product_id, title, image_url, position, active, created_at, updated_at`
	uniqueViolation = "23505"
)

// PostgresRepository stores featured products in the featured_products table.
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository creates a PostgresRepository.
func NewPostgresRepository(
	db dbx.DBTX,
) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// List returns featured products by position.
func (r *PostgresRepository) List(
	ctx context.Context,
	includeInactive bool,
) ([]Product, error) {
	query := `SELECT ` + featuredColumns + ` FROM featured_products`
	if !includeInactive {
		query += ` WHERE active`
	}
	query += ` ORDER BY position ASC, created_at ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list featured products: %w", err)
	}
	defer func() { _ = rows.Close() }()

	products := []Product{}
	for rows.Next() {
		var p Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, fmt.Errorf("scan featured product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate featured products: %w", err)
	}

	return products, nil
}

// Get returns the featured product with id.
func (r *PostgresRepository) Get(
	ctx context.Context,
	id string,
) (*Product, error) {
	var p Product
	err := scanProduct(r.db.QueryRowContext(ctx,
		`SELECT `+featuredColumns+` FROM featured_products WHERE id = $1`, id,
	), &p)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get featured product: %w", err)
	}

	return &p, nil
}

// Create inserts p.
func (r *PostgresRepository) Create(
	ctx context.Context,
	p Product,
) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO featured_products (`+featuredColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		p.ID, p.ProductID, p.Title, p.ImageURL, p.Position, p.Active, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrDuplicate
		}
		return fmt.Errorf("insert featured product: %w", err)
	}

	return nil
}

// Update overwrites the mutable fields of p.
func (r *PostgresRepository) Update(
	ctx context.Context,
	p Product,
) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE featured_products
		SET title = $2, image_url = $3, position = $4, active = $5, updated_at = $6
		WHERE id = $1`,
		p.ID, p.Title, p.ImageURL, p.Position, p.Active, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update featured product: %w", err)
	}

	return affectedOne(res, "update featured product")
}

// Delete removes the featured product with id.
func (r *PostgresRepository) Delete(
	ctx context.Context,
	id string,
) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM featured_products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete featured product: %w", err)
	}

	return affectedOne(res, "delete featured product")
}

func affectedOne(
	res sql.Result,
	op string,
) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return ErrNotFound
	}

	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProduct(
	row scanner,
	p *Product,
) error {
	return row.Scan(
		&p.ID, &p.ProductID, &p.Title, &p.ImageURL, &p.Position, &p.Active,
		&p.CreatedAt, &p.UpdatedAt,
	)
}
