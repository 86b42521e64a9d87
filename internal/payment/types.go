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

// Package payment runs Stripe checkout, refunds and webhook processing.
package payment

import (
	"context"

	"github.com/stripe/stripe-go/v76"

	"github.com/retr0h/storefront/internal/audit"
	"github.com/retr0h/storefront/internal/order"
	"github.com/retr0h/storefront/internal/printify"
)

// Stripe event types the service acts on.
const (
	EventCheckoutCompleted = "checkout.session.completed"
	EventChargeRefunded    = "charge.refunded"
)

// DefaultCurrency is used when no currency is configured.
const DefaultCurrency = "usd"

// itemsMetadataKey carries the ordered items on the checkout session.
const itemsMetadataKey = "items"

// maxMetadataValue is Stripe's limit on a metadata value.
const maxMetadataValue = 500

// CheckoutSessions creates Stripe checkout sessions.
type CheckoutSessions interface {
	New(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
}

// Refunds creates Stripe refunds.
type Refunds interface {
	New(params *stripe.RefundParams) (*stripe.Refund, error)
}

// Products looks up catalog prices.
type Products interface {
	GetProduct(ctx context.Context, id string) (*printify.Product, error)
}

// Orders records paid checkouts and refunds.
type Orders interface {
	RecordCheckout(ctx context.Context, o order.Order) (*order.Order, bool, error)
	MarkRefunded(ctx context.Context, paymentIntentID string, full bool) (*order.Order, error)
}

// Recorder records explicit audit events.
type Recorder interface {
	CreateAsync(ctx context.Context, opts audit.Options)
}

// CheckoutItem is one requested line of a checkout.
type CheckoutItem struct {
	ProductID string `json:"productId" validate:"required"`
	VariantID int64  `json:"variantId" validate:"required,gt=0"`
	Quantity  int    `json:"quantity"  validate:"required,gt=0,lte=100"`
}

// CheckoutInput is a checkout request.
type CheckoutInput struct {
	Items []CheckoutItem `json:"items" validate:"required,min=1,max=20,dive"`
}

// CheckoutResult is the created checkout session.
type CheckoutResult struct {
	SessionID string `json:"sessionId"`
	URL       string `json:"url"`
}

// RefundInput is a refund request. A zero Amount refunds the full charge.
type RefundInput struct {
	PaymentIntentID string `json:"paymentIntentId" validate:"required"`
	Amount          int64  `json:"amount"          validate:"gte=0"`
	Reason          string `json:"reason"          validate:"omitempty,oneof=duplicate fraudulent requested_by_customer"`
}

// RefundResult describes a created refund.
type RefundResult struct {
	RefundID        string `json:"refundId"`
	PaymentIntentID string `json:"paymentIntentId"`
	Amount          int64  `json:"amount"`
	Status          string `json:"status"`
}

// lineItem is the priced item stored in checkout metadata.
type lineItem struct {
	ProductID  string `json:"productId"`
	VariantID  int64  `json:"variantId"`
	Quantity   int    `json:"quantity"`
	UnitAmount int64  `json:"unitAmount"`
	Title      string `json:"title"`
}
