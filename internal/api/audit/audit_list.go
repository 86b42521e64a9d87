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

package audit

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/retr0h/storefront/internal/api/bind"
	auditstore "github.com/retr0h/storefront/internal/audit"
)

const defaultLimit = 20

// GetAuditLogs returns a paginated list of audit records, newest first.
func (a *Audit) GetAuditLogs(
	c echo.Context,
) error {
	var page bind.Page
	if ok, err := bind.Query(c, a.responder, &page); !ok {
		return err
	}

	records, total, err := a.Store.List(c.Request().Context(), page.LimitOr(defaultLimit), page.Offset)
	if err != nil {
		return fmt.Errorf("list audit records: %w", err)
	}

	if records == nil {
		records = []auditstore.Record{}
	}

	return a.responder.Success(c, http.StatusOK, List{Items: records, TotalItems: total}, "")
}
