// Copyright (c) 2024 John Dewey

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
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/retr0h/storefront/internal/apperror"
)

// PostWebhook verifies and processes a Stripe event. The raw body is needed
// for signature verification, so it is read directly instead of bound.
func (p *Payment) PostWebhook(
	c echo.Context,
) error {
	payload, err := io.ReadAll(io.LimitReader(c.Request().Body, maxWebhookBytes))
	if err != nil {
		return apperror.Wrap(apperror.KindValidation, "Unreadable webhook body", err)
	}

	signature := c.Request().Header.Get(SignatureHeader)
	if err := p.Service.HandleWebhook(c.Request().Context(), payload, signature); err != nil {
		return err
	}

	return p.responder.Success(c, http.StatusOK, WebhookAck{Received: true}, "")
}
