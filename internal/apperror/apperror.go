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

// Package apperror defines the error kinds services return and their HTTP
// status mapping.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error for transport mapping.
type Kind int

// Error kinds.
const (
	KindInternal Kind = iota
	KindValidation
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
	KindRateLimited
	KindUpstream
	KindUnavailable
)

var kindStatus = map[Kind]int{
	KindInternal:     http.StatusInternalServerError,
	KindValidation:   http.StatusBadRequest,
	KindUnauthorized: http.StatusUnauthorized,
	KindForbidden:    http.StatusForbidden,
	KindNotFound:     http.StatusNotFound,
	KindConflict:     http.StatusConflict,
	KindRateLimited:  http.StatusTooManyRequests,
	KindUpstream:     http.StatusBadGateway,
	KindUnavailable:  http.StatusServiceUnavailable,
}

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindRateLimited:
		return "rate_limited"
	case KindUpstream:
		return "upstream"
	case KindUnavailable:
		return "unavailable"
	default:
		return "internal"
	}
}

// Status returns the HTTP status code for the kind.
func (k Kind) Status() int {
	if status, ok := kindStatus[k]; ok {
		return status
	}

	return http.StatusInternalServerError
}

// Error is a classified error. Message is safe to show to clients; Err is
// the underlying cause and is only ever logged.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err == nil {
		return e.Message
	}

	if e.Message == "" {
		return e.Err.Error()
	}

	return fmt.Sprintf("%s: %s", e.Message, e.Err.Error())
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an Error of the given kind.
func New(
	kind Kind,
	message string,
) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap creates an Error of the given kind wrapping err.
func Wrap(
	kind Kind,
	message string,
	err error,
) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// Validation returns a validation error.
func Validation(message string) *Error { return New(KindValidation, message) }

// Unauthorized returns an authentication error.
func Unauthorized(message string) *Error { return New(KindUnauthorized, message) }

// Forbidden returns an authorization error.
func Forbidden(message string) *Error { return New(KindForbidden, message) }

// NotFound returns a not-found error.
func NotFound(message string) *Error { return New(KindNotFound, message) }

// Conflict returns a conflict error.
func Conflict(message string) *Error { return New(KindConflict, message) }

// RateLimited returns a rate-limit error.
func RateLimited(message string) *Error { return New(KindRateLimited, message) }

// Upstream returns an error for a failed call to an external service.
func Upstream(
	message string,
	err error,
) *Error {
	return Wrap(KindUpstream, message, err)
}

// Unavailable returns an error for an unreachable dependency.
func Unavailable(
	message string,
	err error,
) *Error {
	return Wrap(KindUnavailable, message, err)
}

// Internal wraps an unclassified failure.
func Internal(
	message string,
	err error,
) *Error {
	return Wrap(KindInternal, message, err)
}

// KindOf returns the kind of the first *Error in err's chain, or
// KindInternal when there is none.
func KindOf(
	err error,
) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}

	return KindInternal
}

// StatusOf returns the HTTP status for err.
func StatusOf(
	err error,
) int {
	return KindOf(err).Status()
}

// MessageOf returns the client-safe message carried by err, or "" when err
// carries none.
func MessageOf(
	err error,
) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}

	return ""
}
