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

package api

import (
	"github.com/labstack/echo/v4"

	"github.com/retr0h/storefront/internal/api/orders"
	"github.com/retr0h/storefront/internal/api/payment"
	"github.com/retr0h/storefront/internal/authtoken"
)

// GetPaymentHandler returns checkout, refund and webhook handlers for
// registration. The webhook is authenticated by its Stripe signature.
func (s *Server) GetPaymentHandler(
	service payment.Service,
	accounts payment.Accounts,
) []func(e *echo.Echo) {
	h := payment.New(s.logger, s.responder, service, accounts)

	return []func(e *echo.Echo){
		func(e *echo.Echo) {
			g := e.Group("/api/payment")
			g.POST("/checkout", h.PostCheckout, s.protected(authtoken.PermOrdersWrite)...)
			g.POST("/refund", h.PostRefund, s.protected(authtoken.PermPaymentsRefund)...)
			g.POST("/webhook", h.PostWebhook)
		},
	}
}

// GetOrdersHandler returns order history handlers for registration.
func (s *Server) GetOrdersHandler(
	service orders.Service,
) []func(e *echo.Echo) {
	h := orders.New(s.logger, s.responder, service)

	return []func(e *echo.Echo){
		func(e *echo.Echo) {
			e.GET("/api/orders", h.GetOrders, s.protected(authtoken.PermOrdersRead)...)
		},
	}
}
