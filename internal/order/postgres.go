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

package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/retr0h/storefront/internal/dbx"
)

// ensure PostgresRepository implements Repository at compile time.
var _ Repository = (*PostgresRepository)(nil)

const orderColumns = `id, user_id, checkout_session_id, payment_intent_id, email, status, amount_total, currency, created_at, updated_at`

// PostgresRepository stores orders in the orders and order_items tables.
type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository creates a PostgresRepository.
func NewPostgresRepository(
	db *sql.DB,
) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts the order and its items in one transaction.
func (r *PostgresRepository) Create(
	ctx context.Context,
	o Order,
) (bool, error) {
	created := false

	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		res, err := tx.ExecContext(ctx,
			`INSERT INTO orders (`+orderColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			ON CONFLICT (checkout_session_id) DO NOTHING`,
			o.ID, o.UserID, o.CheckoutSessionID, o.PaymentIntentID, o.Email,
			string(o.Status), o.AmountTotal, o.Currency, o.CreatedAt, o.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert order: %w", err)
		}

		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("insert order: %w", err)
		}
		if n == 0 {
			return nil
		}

		for _, item := range o.Items {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO order_items (id, order_id, product_id, variant_id, title, quantity, unit_amount)
				VALUES ($1, $2, $3, $4, $5, $6, $7)`,
				item.ID, o.ID, item.ProductID, item.VariantID, item.Title,
				item.Quantity, item.UnitAmount,
			); err != nil {
				return fmt.Errorf("insert order item: %w", err)
			}
		}
		created = true

		return nil
	})
	if err != nil {
		return false, err
	}

	return created, nil
}

// GetByCheckoutSession returns the order created for a checkout session.
func (r *PostgresRepository) GetByCheckoutSession(
	ctx context.Context,
	checkoutSessionID string,
) (*Order, error) {
	return r.getOne(ctx, "checkout_session_id", checkoutSessionID)
}

// GetByPaymentIntent returns the order paid by a payment intent.
func (r *PostgresRepository) GetByPaymentIntent(
	ctx context.Context,
	paymentIntentID string,
) (*Order, error) {
	return r.getOne(ctx, "payment_intent_id", paymentIntentID)
}

func (r *PostgresRepository) getOne(
	ctx context.Context,
	column string,
	value string,
) (*Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE ` + column + ` = $1`

	o, err := scanOrder(r.db.QueryRowContext(ctx, query, value))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get order: %w", err)
	}

	if o.Items, err = r.items(ctx, o.ID); err != nil {
		return nil, err
	}

	return &o, nil
}

// List returns orders newest first.
func (r *PostgresRepository) List(
	ctx context.Context,
	userID string,
	limit int,
	offset int,
) ([]Order, int, error) {
	where := ``
	args := []any{}
	if userID != "" {
		where = ` WHERE user_id = $1`
		args = append(args, userID)
	}

	var total int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM orders`+where, args...,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count orders: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM orders%s
		ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d`,
		orderColumns, where, len(args)+1, len(args)+2)

	rows, err := r.db.QueryContext(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}
	defer func() { _ = rows.Close() }()

	orders := []Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate orders: %w", err)
	}

	for i := range orders {
		if orders[i].Items, err = r.items(ctx, orders[i].ID); err != nil {
			return nil, 0, err
		}
	}

	return orders, total, nil
}

// UpdateStatus sets the status of the order with id.
func (r *PostgresRepository) UpdateStatus(
	ctx context.Context,
	id string,
	status Status,
) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE orders SET status = $2, updated_at = now() WHERE id = $1`,
		id, string(status),
	)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *PostgresRepository) items(
	ctx context.Context,
	orderID string,
) ([]Item, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, order_id, product_id, variant_id, title, quantity, unit_amount
		FROM order_items WHERE order_id = $1 ORDER BY id`,
		orderID,
	)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer func() { _ = rows.Close() }()

	items := []Item{}
	for rows.Next() {
		var it Item
		if err := rows.Scan(
			&it.ID, &it.OrderID, &it.ProductID, &it.VariantID, &it.Title,
			&it.Quantity, &it.UnitAmount,
		); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order items: %w", err)
	}

	return items, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanOrder(
	row scanner,
) (Order, error) {
	var (
		o      Order
		status string
	)
	err := row.Scan(
		&o.ID, &o.UserID, &o.CheckoutSessionID, &o.PaymentIntentID, &o.Email,
		&status, &o.AmountTotal, &o.Currency, &o.CreatedAt, &o.UpdatedAt,
	)
	o.Status = Status(status)

	return o, err
}
