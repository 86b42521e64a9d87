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

// Package featured manages the curated list of products shown on the
// storefront home page.
package featured

import (
	"context"
	"errors"
	"time"
)

// Repository errors.
var (
	ErrNotFound  = errors.New("featured product not found")
	ErrDuplicate = errors.New("product already featured")
)

// Product is a featured catalog product.
type Product struct {
	ID        string    `json:"id"`
	ProductID string    `json:"productId"`
	Title     string    `json:"title"`
	ImageURL  string    `json:"imageUrl"`
	Position  int       `json:"position"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateInput is a request to feature a product.
type CreateInput struct {
	ProductID string `json:"productId" validate:"required,max=64"`
	Title     string `json:"title"     validate:"required,max=200"`
	ImageURL  string `json:"imageUrl"  validate:"omitempty,url"`
	Position  int    `json:"position"  validate:"gte=0"`
}

// UpdateInput changes a featured product. Nil fields are left unchanged.
type UpdateInput struct {
	Title    *string `json:"title"    validate:"omitempty,max=200"`
	ImageURL *string `json:"imageUrl" validate:"omitempty,url"`
	Position *int    `json:"position" validate:"omitempty,gte=0"`
	Active   *bool   `json:"active"`
}

// Repository persists featured products.
type Repository interface {
	// List returns products ordered by position. Inactive products are
	// included only when includeInactive is set.
	List(
		ctx context.Context,
		includeInactive bool,
	) ([]Product, error)
	Get(
		ctx context.Context,
		id string,
	) (*Product, error)
	Create(
		ctx context.Context,
		p Product,
	) error
	Update(
		ctx context.Context,
		p Product,
	) error
	Delete(
		ctx context.Context,
		id string,
	) error
}
