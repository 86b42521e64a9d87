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

// Package identity stores the authenticated caller on the echo context.
package identity

import (
	"github.com/labstack/echo/v4"

	"github.com/retr0h/storefront/internal/authtoken"
)

const contextKey = "auth.identity"

// Identity is the caller established by the authentication middleware.
type Identity struct {
	Subject     string
	Roles       []string
	// Permissions is the resolved permission set.
	Permissions map[string]bool
	// Token is the raw bearer token, kept for logout.
	Token string
}

// Has reports whether the identity holds permission.
func (i Identity) Has(
	permission string,
) bool {
	return authtoken.HasPermission(i.Permissions, permission)
}

// Set stores id on c.
func Set(
	c echo.Context,
	id Identity,
) {
	c.Set(contextKey, id)
}

// From returns the identity stored on c.
func From(
	c echo.Context,
) (Identity, bool) {
	id, ok := c.Get(contextKey).(Identity)

	return id, ok
}
