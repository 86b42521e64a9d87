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

package payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/webhook"

	"github.com/retr0h/storefront/internal/apperror"
	"github.com/retr0h/storefront/internal/audit"
	"github.com/retr0h/storefront/internal/config"
	"github.com/retr0h/storefront/internal/order"
)

// Service implements checkout, refunds and webhook handling.
type Service struct {
	logger         *slog.Logger
	cfg            config.Stripe
	sessions       CheckoutSessions
	refunds        Refunds
	products       Products
	orders         Orders
	recorder       Recorder
	constructEvent func(payload []byte, header string, secret string) (stripe.Event, error)
}

// NewService creates a Service.
func NewService(
	logger *slog.Logger,
	cfg config.Stripe,
	sessions CheckoutSessions,
	refunds Refunds,
	products Products,
	orders Orders,
	recorder Recorder,
) *Service {
	if cfg.Currency == "" {
		cfg.Currency = DefaultCurrency
	}

	return &Service{
		logger:   logger,
		cfg:      cfg,
		sessions: sessions,
		refunds:  refunds,
		products: products,
		orders:   orders,
		recorder: recorder,
		constructEvent: func(payload []byte, header string, secret string) (stripe.Event, error) {
			return webhook.ConstructEventWithOptions(payload, header, secret,
				webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
		},
	}
}

// Checkout prices the requested items from the catalog and opens a Stripe
// checkout session for them. Client-supplied prices are never trusted.
func (s *Service) Checkout(
	ctx context.Context,
	userID string,
	email string,
	in CheckoutInput,
) (*CheckoutResult, error) {
	items := make([]lineItem, 0, len(in.Items))
	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(s.cfg.SuccessURL),
		CancelURL:  stripe.String(s.cfg.CancelURL),
	}
	params.Context = ctx

	for _, req := range in.Items {
		product, err := s.products.GetProduct(ctx, req.ProductID)
		if err != nil {
			if apperror.KindOf(err) == apperror.KindNotFound {
				return nil, apperror.Validation(fmt.Sprintf("Unknown product %s", req.ProductID))
			}
			return nil, err
		}

		variant, ok := product.Variant(int(req.VariantID))
		if !ok || !variant.IsEnabled {
			return nil, apperror.Validation(
				fmt.Sprintf("Variant %d of product %s is not available", req.VariantID, req.ProductID),
			)
		}

		title := product.Title
		if variant.Title != "" {
			title += " - " + variant.Title
		}

		items = append(items, lineItem{
			ProductID:  req.ProductID,
			VariantID:  req.VariantID,
			Quantity:   req.Quantity,
			UnitAmount: variant.Price,
			Title:      title,
		})
		params.LineItems = append(params.LineItems, &stripe.CheckoutSessionLineItemParams{
			Quantity: stripe.Int64(int64(req.Quantity)),
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String(s.cfg.Currency),
				UnitAmount: stripe.Int64(variant.Price),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(title),
				},
			},
		})
	}

	encoded, err := encodeItems(items)
	if err != nil {
		return nil, err
	}
	params.AddMetadata(itemsMetadataKey, encoded)
	if userID != "" {
		params.ClientReferenceID = stripe.String(userID)
	}
	if email != "" {
		params.CustomerEmail = stripe.String(email)
	}

	cs, err := s.sessions.New(params)
	if err != nil {
		return nil, stripeError("create checkout session", err)
	}

	s.logger.InfoContext(ctx, "checkout session created",
		slog.String("checkout_session_id", cs.ID),
		slog.Int("items", len(items)),
	)

	return &CheckoutResult{SessionID: cs.ID, URL: cs.URL}, nil
}

// Refund refunds all or part of a payment.
func (s *Service) Refund(
	ctx context.Context,
	in RefundInput,
) (*RefundResult, error) {
	params := &stripe.RefundParams{
		PaymentIntent: stripe.String(in.PaymentIntentID),
	}
	params.Context = ctx
	if in.Amount > 0 {
		params.Amount = stripe.Int64(in.Amount)
	}
	if in.Reason != "" {
		params.Reason = stripe.String(in.Reason)
	}

	r, err := s.refunds.New(params)
	if err != nil {
		return nil, stripeError("create refund", err)
	}

	result := &RefundResult{
		RefundID:        r.ID,
		PaymentIntentID: in.PaymentIntentID,
		Amount:          r.Amount,
		Status:          string(r.Status),
	}

	s.recorder.CreateAsync(ctx, audit.Options{
		Action:     audit.ActionRefund,
		EntityType: "Payment",
		EntityID:   in.PaymentIntentID,
		StatusCode: http.StatusOK,
		Severity:   audit.SeverityHigh,
		NewValues:  result,
		Metadata:   map[string]any{"reason": in.Reason},
	})

	return result, nil
}

// HandleWebhook verifies a Stripe event and processes it. A bad signature
// is rejected; processing failures of a verified event are logged and never
// returned, so Stripe does not redeliver events the store cannot handle.
func (s *Service) HandleWebhook(
	ctx context.Context,
	payload []byte,
	signature string,
) error {
	event, err := s.constructEvent(payload, signature, s.cfg.WebhookSecret)
	if err != nil {
		s.logger.ErrorContext(ctx, "stripe webhook signature verification failed",
			slog.String("error", err.Error()),
		)
		s.recorder.CreateAsync(ctx, audit.Options{
			Action:     audit.ActionCreate,
			EntityType: "Payment",
			StatusCode: http.StatusBadRequest,
			Status:     audit.StatusFailure,
			Severity:   audit.SeverityCritical,
			Metadata:   map[string]any{"reason": "invalid_signature"},
		})

		return apperror.Wrap(apperror.KindValidation, "Invalid webhook signature", err)
	}

	if err := s.dispatch(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "stripe webhook processing failed",
			slog.String("event_id", event.ID),
			slog.String("event_type", string(event.Type)),
			slog.String("error", err.Error()),
		)
	}

	return nil
}

func (s *Service) dispatch(
	ctx context.Context,
	event stripe.Event,
) error {
	if event.Data == nil {
		return errors.New("event has no data")
	}

	switch string(event.Type) {
	case EventCheckoutCompleted:
		var cs stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &cs); err != nil {
			return fmt.Errorf("decode checkout session: %w", err)
		}
		return s.checkoutCompleted(ctx, &cs)
	case EventChargeRefunded:
		var ch stripe.Charge
		if err := json.Unmarshal(event.Data.Raw, &ch); err != nil {
			return fmt.Errorf("decode charge: %w", err)
		}
		if ch.PaymentIntent == nil || ch.PaymentIntent.ID == "" {
			return errors.New("refunded charge has no payment intent")
		}
		_, err := s.orders.MarkRefunded(ctx, ch.PaymentIntent.ID, ch.Refunded)
		return err
	default:
		s.logger.DebugContext(ctx, "ignoring stripe event",
			slog.String("event_type", string(event.Type)),
		)
		return nil
	}
}

func (s *Service) checkoutCompleted(
	ctx context.Context,
	cs *stripe.CheckoutSession,
) error {
	if cs.PaymentStatus != stripe.CheckoutSessionPaymentStatusPaid {
		s.logger.InfoContext(ctx, "checkout completed without payment",
			slog.String("checkout_session_id", cs.ID),
			slog.String("payment_status", string(cs.PaymentStatus)),
		)
		return nil
	}

	items, err := decodeItems(cs.Metadata[itemsMetadataKey])
	if err != nil {
		return err
	}

	o := order.Order{
		UserID:            cs.ClientReferenceID,
		CheckoutSessionID: cs.ID,
		Email:             cs.CustomerEmail,
		Status:            order.StatusPaid,
		AmountTotal:       cs.AmountTotal,
		Currency:          strings.ToLower(string(cs.Currency)),
	}
	if cs.CustomerDetails != nil && cs.CustomerDetails.Email != "" {
		o.Email = cs.CustomerDetails.Email
	}
	if cs.PaymentIntent != nil {
		o.PaymentIntentID = cs.PaymentIntent.ID
	}
	for _, it := range items {
		o.Items = append(o.Items, order.Item{
			ProductID:  it.ProductID,
			VariantID:  it.VariantID,
			Title:      it.Title,
			Quantity:   it.Quantity,
			UnitAmount: it.UnitAmount,
		})
	}

	_, _, err = s.orders.RecordCheckout(ctx, o)

	return err
}

func encodeItems(
	items []lineItem,
) (string, error) {
	data, err := json.Marshal(items)
	if err != nil {
		return "", apperror.Internal("", fmt.Errorf("encode checkout items: %w", err))
	}
	if len(data) > maxMetadataValue {
		return "", apperror.Validation("Too many items in one checkout")
	}

	return string(data), nil
}

func decodeItems(
	raw string,
) ([]lineItem, error) {
	if raw == "" {
		return nil, nil
	}

	var items []lineItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("decode checkout items: %w", err)
	}

	return items, nil
}

// stripeError maps a Stripe API failure to an application error. Invalid
// requests surface Stripe's message; everything else is an upstream error.
func stripeError(
	op string,
	err error,
) error {
	var se *stripe.Error
	if errors.As(err, &se) && se.Type == stripe.ErrorTypeInvalidRequest {
		return apperror.Wrap(apperror.KindValidation, se.Msg, fmt.Errorf("%s: %w", op, err))
	}

	return apperror.Upstream("Payment provider is unavailable", fmt.Errorf("%s: %w", op, err))
}
