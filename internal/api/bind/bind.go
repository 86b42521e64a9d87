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

// Package bind decodes and validates request bodies and query strings.
package bind

import (
	"github.com/labstack/echo/v4"

	"github.com/retr0h/storefront/internal/api/response"
	"github.com/retr0h/storefront/internal/apperror"
	"github.com/retr0h/storefront/internal/validation"
)

// JSON decodes the request body into dst and validates it. When ok is
// false the caller must return err unchanged: either a validation envelope
// has been written or err carries the failure for the error handler.
func JSON(
	c echo.Context,
	r *response.Responder,
	dst any,
) (ok bool, err error) {
	if err := (&echo.DefaultBinder{}).BindBody(c, dst); err != nil {
		return false, apperror.Wrap(apperror.KindValidation, "Malformed request body", err)
	}

	if fields, valid := validation.Fields(dst); !valid {
		return false, r.ValidationError(c, fields, "")
	}

	return true, nil
}

// Query decodes query parameters into dst and validates it, with the same
// contract as JSON.
func Query(
	c echo.Context,
	r *response.Responder,
	dst any,
) (ok bool, err error) {
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, dst); err != nil {
		return false, apperror.Wrap(apperror.KindValidation, "Invalid query parameters", err)
	}

	if fields, valid := validation.Fields(dst); !valid {
		return false, r.ValidationError(c, fields, "")
	}

	return true, nil
}

// Page is the limit/offset pair shared by list endpoints.
type Page struct {
	Limit  int `query:"limit"  json:"limit"  validate:"omitempty,min=1,max=100"`
	Offset int `query:"offset" json:"offset" validate:"omitempty,min=0"`
}

// LimitOr returns the requested limit or def when none was given.
func (p Page) LimitOr(
	def int,
) int {
	if p.Limit == 0 {
		return def
	}

	return p.Limit
}
