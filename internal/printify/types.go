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

package printify

import "context"

// DefaultBaseURL is the Printify REST API root.
const DefaultBaseURL = "https://api.printify.com/v1"

// Catalog is the read-only product catalog the storefront exposes.
type Catalog interface {
	// ListShops returns the shops visible to the API token.
	ListShops(
		ctx context.Context,
	) ([]Shop, error)
	// ListProducts returns one page of products of the configured shop.
	ListProducts(
		ctx context.Context,
		page int,
		limit int,
	) (*ProductPage, error)
	// GetProduct returns a single product of the configured shop.
	GetProduct(
		ctx context.Context,
		id string,
	) (*Product, error)
}

// Shop is a Printify shop.
type Shop struct {
	ID           int    `json:"id"`
	Title        string `json:"title"`
	SalesChannel string `json:"sales_channel"`
}

// Image is a product mockup image.
type Image struct {
	Src        string `json:"src"`
	VariantIDs []int  `json:"variant_ids,omitempty"`
	Position   string `json:"position,omitempty"`
	IsDefault  bool   `json:"is_default"`
}

// Variant is a purchasable product variant. Price is in minor units.
type Variant struct {
	ID          int    `json:"id"`
	SKU         string `json:"sku,omitempty"`
	Title       string `json:"title"`
	Price       int64  `json:"price"`
	IsEnabled   bool   `json:"is_enabled"`
	IsAvailable bool   `json:"is_available"`
}

// Product is a catalog product.
type Product struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Tags        []string  `json:"tags"`
	Images      []Image   `json:"images"`
	Variants    []Variant `json:"variants"`
	Visible     bool      `json:"visible"`
}

// Variant returns the variant with id.
func (p Product) Variant(
	id int,
) (Variant, bool) {
	for _, v := range p.Variants {
		if v.ID == id {
			return v, true
		}
	}

	return Variant{}, false
}

// ProductPage is one page of a product listing.
type ProductPage struct {
	CurrentPage int       `json:"current_page"`
	LastPage    int       `json:"last_page"`
	Total       int       `json:"total"`
	Data        []Product `json:"data"`
}
