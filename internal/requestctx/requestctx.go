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

// Package requestctx carries per-request correlation data through
// context.Context.
package requestctx

import "context"

type contextKey struct{}

// Info describes the request a context belongs to.
type Info struct {
	RequestID     string
	CorrelationID string
	UserID        string
	IPAddress     string
	UserAgent     string
}

// With returns a copy of ctx carrying info.
func With(
	ctx context.Context,
	info Info,
) context.Context {
	return context.WithValue(ctx, contextKey{}, info)
}

// From returns the Info stored in ctx, or the zero Info.
func From(
	ctx context.Context,
) Info {
	if ctx == nil {
		return Info{}
	}

	info, _ := ctx.Value(contextKey{}).(Info)

	return info
}

// WithUserID returns a copy of ctx whose Info has UserID set.
func WithUserID(
	ctx context.Context,
	userID string,
) context.Context {
	info := From(ctx)
	info.UserID = userID

	return With(ctx, info)
}
