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

// Package order stores orders created from completed checkouts.
package order

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when no order matches.
var ErrNotFound = errors.New("order not found")

// Status is the payment state of an order.
type Status string

// Order statuses.
const (
	StatusPaid              Status = "paid"
	StatusPartiallyRefunded Status = "partially_refunded"
	StatusRefunded          Status = "refunded"
)

// Item is one line of an order. Amounts are in minor currency units.
type Item struct {
	ID         string `json:"id"`
	OrderID    string `json:"orderId"`
	ProductID  string `json:"productId"`
	VariantID  int64  `json:"variantId"`
	Title      string `json:"title"`
	Quantity   int    `json:"quantity"`
	UnitAmount int64  `json:"unitAmount"`
}

// Order is a paid checkout.
type Order struct {
	ID                string    `json:"id"`
	UserID            string    `json:"userId,omitempty"`
	CheckoutSessionID string    `json:"checkoutSessionId"`
	PaymentIntentID   string    `json:"paymentIntentId,omitempty"`
	Email             string    `json:"email,omitempty"`
	Status            Status    `json:"status"`
	AmountTotal       int64     `json:"amountTotal"`
	Currency          string    `json:"currency"`
	Items             []Item    `json:"items"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// Repository persists orders.
type Repository interface {
	// Create inserts the order and its items atomically. It reports false
	// without error when an order for the same checkout session exists.
	Create(
		ctx context.Context,
		o Order,
	) (bool, error)
	GetByCheckoutSession(
		ctx context.Context,
		checkoutSessionID string,
	) (*Order, error)
	GetByPaymentIntent(
		ctx context.Context,
		paymentIntentID string,
	) (*Order, error)
	// List returns orders newest first and the total count. An empty userID
	// lists every order.
	List(
		ctx context.Context,
		userID string,
		limit int,
		offset int,
	) ([]Order, int, error)
	UpdateStatus(
		ctx context.Context,
		id string,
		status Status,
	) error
}
