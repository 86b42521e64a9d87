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

// Package response renders every API reply as a uniform JSON envelope.
package response

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/retr0h/storefront/internal/apperror"
	"github.com/retr0h/storefront/internal/requestctx"
	"github.com/retr0h/storefront/internal/validation"
)

// GenericErrorMessage replaces server error details outside development.
const GenericErrorMessage = "An unexpected error occurred"

// ValidationFailedMessage is the default message for validation errors.
const ValidationFailedMessage = "Validation failed"

// Envelope is the wire shape of every response.
type Envelope struct {
	Success   bool    `json:"success"`
	Data      any     `json:"data"`
	Message   *string `json:"message"`
	Error     *string `json:"error"`
	RequestID string  `json:"requestId"`
}

// Option adjusts a single Success call.
type Option func(*options)

type options struct {
	resourceType *ResourceType
}

// WithResourceType declares the resource type, bypassing inference.
func WithResourceType(
	rt ResourceType,
) Option {
	return func(o *options) {
		o.resourceType = &rt
	}
}

// Responder writes envelopes and logs each reply with request context.
type Responder struct {
	logger      *slog.Logger
	development bool
}

// New creates a Responder. In development, server errors expose the
// underlying error text instead of GenericErrorMessage.
func New(
	logger *slog.Logger,
	development bool,
) *Responder {
	return &Responder{
		logger:      logger,
		development: development,
	}
}

// Success writes a successful envelope. Nil data becomes {} or [] depending
// on the resource type.
func (r *Responder) Success(
	c echo.Context,
	status int,
	data any,
	message string,
	opts ...Option,
) error {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	req := c.Request()
	rt := InferResourceType(req.Method, req.URL.Path, data)
	if o.resourceType != nil {
		rt = *o.resourceType
	}

	env := Envelope{
		Success:   true,
		Data:      Normalize(data, rt),
		Message:   optional(message),
		RequestID: requestID(c),
	}

	r.logger.DebugContext(
		req.Context(),
		"response sent",
		slog.Int("status", status),
		slog.String("method", req.Method),
		slog.String("path", req.URL.Path),
		slog.String("resource_type", rt.String()),
	)

	return c.JSON(status, env)
}

// Error writes a failure envelope for err. The full error is logged; the
// client sees clientMessage, the message carried by an apperror, or a
// generic message for server errors outside development.
func (r *Responder) Error(
	c echo.Context,
	err error,
	clientMessage string,
) error {
	status, carried := classify(err)

	msg := clientMessage
	if msg == "" {
		msg = carried
	}
	if msg == "" {
		switch {
		case status >= http.StatusInternalServerError && r.development && err != nil:
			msg = err.Error()
		case status >= http.StatusInternalServerError:
			msg = GenericErrorMessage
		default:
			msg = http.StatusText(status)
		}
	}
	if msg == "" {
		msg = GenericErrorMessage
	}

	req := c.Request()
	level := slog.LevelWarn
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}

	errText := ""
	if err != nil {
		errText = err.Error()
	}

	r.logger.Log(
		req.Context(),
		level,
		"request failed",
		slog.Int("status", status),
		slog.String("method", req.Method),
		slog.String("path", req.URL.Path),
		slog.String("kind", apperror.KindOf(err).String()),
		slog.String("error", errText),
	)

	return c.JSON(status, Envelope{
		Success:   false,
		Data:      map[string]any{},
		Error:     &msg,
		RequestID: requestID(c),
	})
}

// ValidationError writes a 400 envelope listing field errors under
// data.errors.
func (r *Responder) ValidationError(
	c echo.Context,
	fields []validation.FieldError,
	message string,
) error {
	if message == "" {
		message = ValidationFailedMessage
	}
	if fields == nil {
		fields = []validation.FieldError{}
	}

	req := c.Request()
	r.logger.WarnContext(
		req.Context(),
		"validation failed",
		slog.String("method", req.Method),
		slog.String("path", req.URL.Path),
		slog.Any("fields", fields),
	)

	return c.JSON(http.StatusBadRequest, Envelope{
		Success:   false,
		Data:      map[string]any{"errors": fields},
		Error:     &message,
		RequestID: requestID(c),
	})
}

// Normalize replaces nil data with the empty value for rt.
func Normalize(
	data any,
	rt ResourceType,
) any {
	if !isNil(data) {
		return data
	}

	if rt == Collection {
		return []any{}
	}

	return map[string]any{}
}

// classify returns the status for err and any client-safe message it carries.
func classify(
	err error,
) (int, string) {
	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		return appErr.Kind.Status(), appErr.Message
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		msg := ""
		if he.Message != nil {
			msg = fmt.Sprint(he.Message)
		}
		return he.Code, msg
	}

	return http.StatusInternalServerError, ""
}

func requestID(
	c echo.Context,
) string {
	if id := requestctx.From(c.Request().Context()).RequestID; id != "" {
		return id
	}

	return c.Response().Header().Get(echo.HeaderXRequestID)
}

func optional(
	s string,
) *string {
	if s == "" {
		return nil
	}

	return &s
}
