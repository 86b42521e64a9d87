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
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/retr0h/storefront/internal/apperror"
	"github.com/retr0h/storefront/internal/audit"
)

// Page size bounds for List.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Recorder records explicit audit events.
type Recorder interface {
	CreateAsync(ctx context.Context, opts audit.Options)
}

// Service applies order business rules on top of a Repository.
type Service struct {
	logger   *slog.Logger
	repo     Repository
	recorder Recorder
	now      func() time.Time
}

// NewService creates a Service.
func NewService(
	logger *slog.Logger,
	repo Repository,
	recorder Recorder,
) *Service {
	return &Service{
		logger:   logger,
		repo:     repo,
		recorder: recorder,
		now:      time.Now,
	}
}

// RecordCheckout stores the order for a completed checkout. A replayed
// checkout returns the order stored the first time and false.
func (s *Service) RecordCheckout(
	ctx context.Context,
	o Order,
) (*Order, bool, error) {
	if o.CheckoutSessionID == "" {
		return nil, false, apperror.Validation("checkout session id is required")
	}

	if err := s.assignIDs(&o); err != nil {
		return nil, false, apperror.Internal("", err)
	}
	if o.Status == "" {
		o.Status = StatusPaid
	}
	now := s.now().UTC()
	o.CreatedAt = now
	o.UpdatedAt = now

	created, err := s.repo.Create(ctx, o)
	if err != nil {
		return nil, false, apperror.Internal("", err)
	}

	if !created {
		existing, err := s.repo.GetByCheckoutSession(ctx, o.CheckoutSessionID)
		if err != nil {
			return nil, false, apperror.Internal("", err)
		}
		s.logger.InfoContext(ctx, "checkout already recorded",
			slog.String("order_id", existing.ID),
			slog.String("checkout_session_id", o.CheckoutSessionID),
		)
		return existing, false, nil
	}

	s.recorder.CreateAsync(ctx, audit.Options{
		Action:     audit.ActionCreate,
		EntityType: "Order",
		EntityID:   o.ID,
		UserID:     o.UserID,
		StatusCode: http.StatusCreated,
		NewValues:  o,
	})

	s.logger.InfoContext(ctx, "order created",
		slog.String("order_id", o.ID),
		slog.Int64("amount_total", o.AmountTotal),
		slog.String("currency", o.Currency),
	)

	return &o, true, nil
}

// List returns a page of orders. Without all, only userID's orders are
// listed.
func (s *Service) List(
	ctx context.Context,
	userID string,
	all bool,
	limit int,
	offset int,
) ([]Order, int, error) {
	if !all && userID == "" {
		return nil, 0, apperror.Forbidden("Order listing requires a user")
	}
	if all {
		userID = ""
	}

	switch {
	case limit <= 0:
		limit = DefaultPageSize
	case limit > MaxPageSize:
		limit = MaxPageSize
	}
	offset = max(offset, 0)

	orders, total, err := s.repo.List(ctx, userID, limit, offset)
	if err != nil {
		return nil, 0, apperror.Internal("", err)
	}

	return orders, total, nil
}

// MarkRefunded moves the order paid by paymentIntentID to refunded or
// partially refunded. Repeating the same transition is a no-op.
func (s *Service) MarkRefunded(
	ctx context.Context,
	paymentIntentID string,
	full bool,
) (*Order, error) {
	o, err := s.repo.GetByPaymentIntent(ctx, paymentIntentID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, apperror.NotFound("Order not found")
		}
		return nil, apperror.Internal("", err)
	}

	next := StatusPartiallyRefunded
	if full {
		next = StatusRefunded
	}
	if o.Status == next {
		return o, nil
	}

	prev := o.Status
	if err := s.repo.UpdateStatus(ctx, o.ID, next); err != nil {
		return nil, apperror.Internal("", err)
	}
	o.Status = next

	s.recorder.CreateAsync(ctx, audit.Options{
		Action:     audit.ActionUpdate,
		EntityType: "Order",
		EntityID:   o.ID,
		UserID:     o.UserID,
		StatusCode: http.StatusOK,
		OldValues:  map[string]any{"status": prev},
		NewValues:  map[string]any{"status": next},
	})

	return o, nil
}

func (s *Service) assignIDs(
	o *Order,
) error {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("generate order id: %w", err)
	}
	o.ID = id.String()

	for i := range o.Items {
		itemID, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("generate order item id: %w", err)
		}
		o.Items[i].ID = itemID.String()
		o.Items[i].OrderID = o.ID
	}

	return nil
}
