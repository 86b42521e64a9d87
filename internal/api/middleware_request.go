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
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/retr0h/storefront/internal/requestctx"
)

// HeaderXCorrelationID links requests that belong to one client operation.
const HeaderXCorrelationID = "X-Correlation-ID"

// HeaderXResponseTime reports server-side handling time.
const HeaderXResponseTime = "X-Response-Time"

// maxIDLength bounds client supplied request and correlation ids.
const maxIDLength = 128

// requestContextMiddleware assigns the request and correlation ids, echoes
// them on the response and seeds requestctx for logging and auditing.
// Client ids are honoured when they are printable and short enough.
func requestContextMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()

			requestID := clientID(req.Header.Get(echo.HeaderXRequestID))
			if requestID == "" {
				requestID = uuid.NewString()
			}

			correlationID := clientID(req.Header.Get(HeaderXCorrelationID))
			if correlationID == "" {
				correlationID = requestID
			}

			header := c.Response().Header()
			header.Set(echo.HeaderXRequestID, requestID)
			header.Set(HeaderXCorrelationID, correlationID)

			ctx := requestctx.With(req.Context(), requestctx.Info{
				RequestID:     requestID,
				CorrelationID: correlationID,
				IPAddress:     c.RealIP(),
				UserAgent:     req.UserAgent(),
			})
			c.SetRequest(req.WithContext(ctx))

			return next(c)
		}
	}
}

// responseTimeMiddleware sets X-Response-Time just before headers are written.
func responseTimeMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			c.Response().Before(func() {
				elapsed := float64(time.Since(start).Microseconds()) / 1000
				c.Response().Header().Set(HeaderXResponseTime, fmt.Sprintf("%.2fms", elapsed))
			})

			return next(c)
		}
	}
}

func clientID(
	v string,
) string {
	if v == "" || len(v) > maxIDLength {
		return ""
	}

	for _, r := range v {
		if r < 0x21 || r > 0x7e {
			return ""
		}
	}

	return v
}
