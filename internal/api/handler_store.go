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

	"github.com/retr0h/storefront/internal/api/catalog"
	"github.com/retr0h/storefront/internal/api/docs"
	"github.com/retr0h/storefront/internal/api/featured"
	"github.com/retr0h/storefront/internal/authtoken"
	"github.com/retr0h/storefront/internal/printify"
)

// GetCatalogHandler returns product catalog handlers for registration.
func (s *Server) GetCatalogHandler(
	client printify.Catalog,
) []func(e *echo.Echo) {
	h := catalog.New(s.logger, s.responder, client)

	return []func(e *echo.Echo){
		func(e *echo.Echo) {
			g := e.Group("/api/printify")
			g.GET("/shops", h.GetShops, s.protected(authtoken.PermProductsRead)...)
			g.GET("/products", h.GetProducts)
			g.GET("/products/:id", h.GetProduct)
		},
	}
}

// GetFeaturedHandler returns featured product handlers for registration.
func (s *Server) GetFeaturedHandler(
	service featured.Service,
) []func(e *echo.Echo) {
	h := featured.New(s.logger, s.responder, service)
	write := s.protected(authtoken.PermFeaturedWrite)

	return []func(e *echo.Echo){
		func(e *echo.Echo) {
			g := e.Group("/api/featured")
			g.GET("", h.GetFeatured)
			g.POST("", h.PostFeatured, write...)
			g.PUT("/:id", h.PutFeatured, write...)
			g.DELETE("/:id", h.DeleteFeatured, write...)
		},
	}
}

// GetDocsHandler returns documentation handlers for registration.
func (s *Server) GetDocsHandler(
	library docs.Library,
) []func(e *echo.Echo) {
	h := docs.New(s.logger, s.responder, library)

	return []func(e *echo.Echo){
		func(e *echo.Echo) {
			e.GET("/api/docs", h.GetDocs)
			e.GET("/api/docs/:slug", h.GetDoc)
		},
	}
}
