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
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/retr0h/storefront/internal/audit"
	"github.com/retr0h/storefront/internal/config"
	"github.com/retr0h/storefront/internal/telemetry"
)

// maxAuditBody is the largest request body copied into an audit record.
const maxAuditBody = 16 << 10

// actionOverrides name actions that the HTTP method does not express.
var actionOverrides = map[string]audit.Action{
	"/api/auth/login":      audit.ActionLogin,
	"/api/auth/logout":     audit.ActionLogout,
	"/api/auth/logout-all": audit.ActionLogout,
	"/api/payment/refund":  audit.ActionRefund,
}

// summarisedBodies lists paths whose payloads carry third-party personal
// data. Their bodies are never stored; only the named top-level fields are
// copied into the record's metadata, keyed by the mapped name.
var summarisedBodies = map[string]map[string]string{
	"/api/payment/webhook": {"id": "eventId", "type": "eventType"},
}

// auditMiddleware records one audit entry per mutating request once the
// response is complete. Requests whose handler already recorded an explicit
// entry are skipped, as are excluded paths and, unless configured, reads.
// Handler errors are rendered here so the final status is known; the write
// itself is asynchronous.
func auditMiddleware(
	recorder AuditRecorder,
	cfg config.Audit,
) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			path := req.URL.Path

			if audit.IsExcluded(path, cfg.ExcludedPaths) {
				return next(c)
			}

			action, ok := auditAction(req.Method, path)
			if !ok || (action == audit.ActionRead && !cfg.IncludeReads) {
				return next(c)
			}

			body, truncated := captureBody(c)
			var summary map[string]any
			if fields, ok := summarisedBodies[strings.TrimRight(path, "/")]; ok {
				summary = pick(body, fields)
				body = nil
			}
			c.SetRequest(req.WithContext(audit.WithTracker(req.Context())))

			start := time.Now()
			if err := next(c); err != nil {
				c.Error(err)
			}

			ctx := c.Request().Context()
			if audit.Recorded(ctx) {
				return nil
			}

			metadata := map[string]any{
				"method":     req.Method,
				"path":       path,
				"route":      c.Path(),
				"durationMs": time.Since(start).Milliseconds(),
			}
			if truncated {
				metadata["bodyTruncated"] = true
			}
			for k, v := range telemetry.TraceMetadata(ctx) {
				metadata[k] = v
			}
			for k, v := range summary {
				metadata[k] = v
			}

			recorder.CreateAsync(ctx, audit.Options{
				Action:     action,
				EntityType: audit.EntityTypeFromPath(path),
				EntityID:   c.Param("id"),
				NewValues:  body,
				StatusCode: c.Response().Status,
				Metadata:   metadata,
			})

			return nil
		}
	}
}

func auditAction(
	method string,
	path string,
) (audit.Action, bool) {
	if action, ok := actionOverrides[strings.TrimRight(path, "/")]; ok && method == http.MethodPost {
		return action, true
	}

	return audit.ActionFromMethod(method)
}

// captureBody reads a JSON request body for the audit record and restores
// it for the handler. Non-JSON and oversized bodies are not captured.
func captureBody(
	c echo.Context,
) (any, bool) {
	req := c.Request()
	if req.Body == nil || req.ContentLength == 0 {
		return nil, false
	}
	if !strings.HasPrefix(req.Header.Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		return nil, false
	}

	raw, err := io.ReadAll(io.LimitReader(req.Body, maxAuditBody+1))
	rest := req.Body
	req.Body = struct {
		io.Reader
		io.Closer
	}{io.MultiReader(bytes.NewReader(raw), rest), rest}
	if err != nil {
		return nil, false
	}

	if len(raw) > maxAuditBody {
		return nil, true
	}

	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, false
	}

	return v, false
}

// pick keeps the listed top-level fields of a captured JSON object, renamed
// per fields. Anything that is not an object yields an empty map.
func pick(
	body any,
	fields map[string]string,
) map[string]any {
	out := make(map[string]any, len(fields))
	obj, ok := body.(map[string]any)
	if !ok {
		return out
	}

	for from, to := range fields {
		if v, ok := obj[from]; ok {
			out[to] = v
		}
	}

	return out
}
