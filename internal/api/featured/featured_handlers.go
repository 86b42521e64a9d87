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

package featured

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/retr0h/storefront/internal/api/bind"
	"github.com/retr0h/storefront/internal/apperror"
	featuredsvc "github.com/retr0h/storefront/internal/featured"
	"github.com/retr0h/storefront/internal/validation"
)

const notFoundMessage = "Featured product not found"

// GetFeatured lists the active featured products.
func (f *Featured) GetFeatured(
	c echo.Context,
) error {
	products, err := f.Service.List(c.Request().Context())
	if err != nil {
		return err
	}

	return f.responder.Success(c, http.StatusOK, products, "")
}

// PostFeatured features a product.
func (f *Featured) PostFeatured(
	c echo.Context,
) error {
	var in featuredsvc.CreateInput
	if ok, err := bind.JSON(c, f.responder, &in); !ok {
		return err
	}

	p, err := f.Service.Create(c.Request().Context(), in)
	if err != nil {
		return err
	}

	return f.responder.Success(c, http.StatusCreated, p, "Product featured")
}

// PutFeatured changes a featured product.
func (f *Featured) PutFeatured(
	c echo.Context,
) error {
	id, err := productID(c)
	if err != nil {
		return err
	}

	var in featuredsvc.UpdateInput
	if ok, err := bind.JSON(c, f.responder, &in); !ok {
		return err
	}

	p, err := f.Service.Update(c.Request().Context(), id, in)
	if err != nil {
		return err
	}

	return f.responder.Success(c, http.StatusOK, p, "Featured product updated")
}

// DeleteFeatured removes a featured product.
func (f *Featured) DeleteFeatured(
	c echo.Context,
) error {
	id, err := productID(c)
	if err != nil {
		return err
	}

	if err := f.Service.Delete(c.Request().Context(), id); err != nil {
		return err
	}

	return f.responder.Success(c, http.StatusOK, nil, "Featured product removed")
}

// productID returns the :id parameter. Ids that are not UUIDs cannot exist.
func productID(
	c echo.Context,
) (string, error) {
	id := c.Param("id")
	if _, ok := validation.Var(id, "required,uuid"); !ok {
		return "", apperror.NotFound(notFoundMessage)
	}

	return id, nil
}
