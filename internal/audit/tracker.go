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
	"context"
	"sync/atomic"
)

type trackerKey struct{}

// WithTracker returns a context that remembers whether a record was created
// explicitly while handling the request, so the request-level audit can step
// aside.
func WithTracker(
	ctx context.Context,
) context.Context {
	return context.WithValue(ctx, trackerKey{}, &atomic.Bool{})
}

// Recorded reports whether a record was created under ctx's tracker.
func Recorded(
	ctx context.Context,
) bool {
	flag, ok := ctx.Value(trackerKey{}).(*atomic.Bool)

	return ok && flag.Load()
}

func markRecorded(
	ctx context.Context,
) {
	if flag, ok := ctx.Value(trackerKey{}).(*atomic.Bool); ok {
		flag.Store(true)
	}
}
