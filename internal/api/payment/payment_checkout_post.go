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
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/retr0h/storefront/internal/api/bind"
	"github.com/retr0h/storefront/internal/api/identity"
	"github.com/retr0h/storefront/internal/apperror"
	paymentsvc "github.com/retr0h/storefront/internal/payment"
)

// PostCheckout creates a Stripe checkout session for the caller's cart.
func (p *Payment) PostCheckout(
	c echo.Context,
) error {
	id, ok := identity.From(c)
	if !ok {
		return apperror.Unauthorized("Bearer token required")
	}

	var in paymentsvc.CheckoutInput
	if ok, err := bind.JSON(c, p.responder, &in); !ok {
		return err
	}

	ctx := c.Request().Context()
	email := ""
	if p.Accounts != nil {
		u, err := p.Accounts.Me(ctx, id.Subject)
		if err != nil {
			p.logger.WarnContext(ctx, "checkout without customer email",
				slog.String("user_id", id.Subject),
				slog.String("error", err.Error()),
			)
		} else {
			email = u.Email
		}
	}

	result, err := p.Service.Checkout(ctx, id.Subject, email, in)
	if err != nil {
		return err
	}

	return p.responder.Success(c, http.StatusCreated, result, "")
}
