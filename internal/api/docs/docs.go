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

// Package docs serves the documentation library over HTTP.
package docs

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/retr0h/storefront/internal/api/response"
	docstore "github.com/retr0h/storefront/internal/docs"
)

// Library reads documents.
type Library interface {
	List() ([]docstore.Summary, error)
	Get(slug string) (*docstore.Document, error)
}

// Docs implementation of the documentation API operations.
type Docs struct {
	Library Library

	logger    *slog.Logger
	responder *response.Responder
}

// New factory to create a new instance.
func New(
	logger *slog.Logger,
	responder *response.Responder,
	library Library,
) *Docs {
	return &Docs{
		Library:   library,
		logger:    logger,
		responder: responder,
	}
}

// GetDocs lists the available documents.
func (d *Docs) GetDocs(
	c echo.Context,
) error {
	summaries, err := d.Library.List()
	if err != nil {
		return err
	}

	return d.responder.Success(c, http.StatusOK, summaries, "")
}

// GetDoc returns a single document.
func (d *Docs) GetDoc(
	c echo.Context,
) error {
	doc, err := d.Library.Get(c.Param("slug"))
	if err != nil {
		return err
	}

	return d.responder.Success(c, http.StatusOK, doc, "")
}
