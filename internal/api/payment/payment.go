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

// Package payment exposes Stripe checkout, refunds and the webhook over HTTP.
package payment

import (
	"context"
	"log/slog"

	"github.com/retr0h/storefront/internal/api/response"
	paymentsvc "github.com/retr0h/storefront/internal/payment"
	"github.com/retr0h/storefront/internal/user"
)

// SignatureHeader carries the Stripe webhook signature.
const SignatureHeader = "Stripe-Signature"

// maxWebhookBytes bounds the webhook payload read into memory.
const maxWebhookBytes = 64 << 10

// Service runs payments.
type Service interface {
	Checkout(ctx context.Context, userID string, email string, in paymentsvc.CheckoutInput) (*paymentsvc.CheckoutResult, error)
	Refund(ctx context.Context, in paymentsvc.RefundInput) (*paymentsvc.RefundResult, error)
	HandleWebhook(ctx context.Context, payload []byte, signature string) error
}

// Accounts resolves the caller's email for prefilled checkouts.
type Accounts interface {
	Me(ctx context.Context, userID string) (*user.User, error)
}

// Payment implementation of the payment API operations.
type Payment struct {
	Service  Service
	Accounts Accounts

	logger    *slog.Logger
	responder *response.Responder
}

// WebhookAck is returned for every verified webhook.
type WebhookAck struct {
	Received bool `json:"received"`
}

// New factory to create a new instance. accounts may be nil.
func New(
	logger *slog.Logger,
	responder *response.Responder,
	service Service,
	accounts Accounts,
) *Payment {
	return &Payment{
		Service:   service,
		Accounts:  accounts,
		logger:    logger,
		responder: responder,
	}
}
