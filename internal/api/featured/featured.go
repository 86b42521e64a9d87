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

// Package featured exposes the curated home page products over HTTP.
package featured

import (
	"context"
	"log/slog"

	"github.com/retr0h/storefront/internal/api/response"
	featuredsvc "github.com/retr0h/storefront/internal/featured"
)

// Service manages featured products.
type Service interface {
	List(ctx context.Context) ([]featuredsvc.Product, error)
	Create(ctx context.Context, in featuredsvc.CreateInput) (*featuredsvc.Product, error)
	Update(ctx context.Context, id string, in featuredsvc.UpdateInput) (*featuredsvc.Product, error)
	Delete(ctx context.Context, id string) error
}

// Featured implementation of the featured product API operations.
type Featured struct {
	Service Service

	logger    *slog.Logger
	responder *response.Responder
}

// New factory to create a new instance.
func New(
	logger *slog.Logger,
	responder *response.Responder,
	service Service,
) *Featured {
	return &Featured{
		Service:   service,
		logger:    logger,
		responder: responder,
	}
}
