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

// Package orders exposes order history over HTTP.
package orders

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/retr0h/storefront/internal/api/bind"
	"github.com/retr0h/storefront/internal/api/identity"
	"github.com/retr0h/storefront/internal/api/response"
	"github.com/retr0h/storefront/internal/apperror"
	"github.com/retr0h/storefront/internal/authtoken"
	"github.com/retr0h/storefront/internal/order"
)

// Service lists orders.
type Service interface {
	List(ctx context.Context, userID string, all bool, limit int, offset int) ([]order.Order, int, error)
}

// Orders implementation of the order API operations.
type Orders struct {
	Service Service

	logger    *slog.Logger
	responder *response.Responder
}

// List is the payload of GET /api/orders.
type List struct {
	Items      []order.Order `json:"items"`
	TotalItems int           `json:"totalItems"`
}

// New factory to create a new instance.
func New(
	logger *slog.Logger,
	responder *response.Responder,
	service Service,
) *Orders {
	return &Orders{
		Service:   service,
		logger:    logger,
		responder: responder,
	}
}

// GetOrders lists the caller's orders, or every order for callers holding
// orders:read_all.
func (o *Orders) GetOrders(
	c echo.Context,
) error {
	id, ok := identity.From(c)
	if !ok {
		return apperror.Unauthorized("Bearer token required")
	}

	var page bind.Page
	if ok, err := bind.Query(c, o.responder, &page); !ok {
		return err
	}

	all := id.Has(authtoken.PermOrdersReadAll)
	items, total, err := o.Service.List(
		c.Request().Context(),
		id.Subject,
		all,
		page.LimitOr(order.DefaultPageSize),
		page.Offset,
	)
	if err != nil {
		return err
	}

	if items == nil {
		items = []order.Order{}
	}

	return o.responder.Success(c, http.StatusOK, List{Items: items, TotalItems: total}, "")
}
