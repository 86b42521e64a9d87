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

// Package catalog exposes the Printify product catalog over HTTP.
package catalog

import (
	"log/slog"

	"github.com/retr0h/storefront/internal/api/response"
	"github.com/retr0h/storefront/internal/printify"
)

// Catalog implementation of the product catalog API operations.
type Catalog struct {
	Client printify.Catalog

	logger    *slog.Logger
	responder *response.Responder
}

// ProductsQuery are the listing query parameters.
type ProductsQuery struct {
	Page  int `query:"page"  json:"page"  validate:"omitempty,min=1"`
	Limit int `query:"limit" json:"limit" validate:"omitempty,min=1,max=50"`
}

// New factory to create a new instance.
func New(
	logger *slog.Logger,
	responder *response.Responder,
	client printify.Catalog,
) *Catalog {
	return &Catalog{
		Client:    client,
		logger:    logger,
		responder: responder,
	}
}
