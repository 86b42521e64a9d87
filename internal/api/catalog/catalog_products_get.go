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

package catalog

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/retr0h/storefront/internal/api/bind"
	"github.com/retr0h/storefront/internal/apperror"
	"github.com/retr0h/storefront/internal/printify"
	"github.com/retr0h/storefront/internal/validation"
)

// GetProducts lists one page of the shop's products.
func (ct *Catalog) GetProducts(
	c echo.Context,
) error {
	var q ProductsQuery
	if ok, err := bind.Query(c, ct.responder, &q); !ok {
		return err
	}

	page, err := ct.Client.ListProducts(c.Request().Context(), q.Page, q.Limit)
	if err != nil {
		return err
	}

	if page.Data == nil {
		page.Data = []printify.Product{}
	}

	return ct.responder.Success(c, http.StatusOK, page, "")
}

// GetProduct returns a single product.
func (ct *Catalog) GetProduct(
	c echo.Context,
) error {
	id := c.Param("id")
	if msg, ok := validation.Var(id, "required,alphanum,max=64"); !ok {
		ct.logger.DebugContext(c.Request().Context(), "rejected product id",
			slog.String("id", id),
			slog.String("reason", msg),
		)
		return apperror.Validation("Invalid product id")
	}

	product, err := ct.Client.GetProduct(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return ct.responder.Success(c, http.StatusOK, product, "")
}
