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

package logging

import (
	"log/slog"

	"github.com/retr0h/storefront/internal/redact"
)

// ReplaceAttr masks sensitive attributes. It is installed on every handler
// the package builds and can be reused by callers building their own.
func ReplaceAttr(
	_ []string,
	a slog.Attr,
) slog.Attr {
	if redact.IsSensitiveKey(a.Key) {
		return slog.String(a.Key, redact.Placeholder)
	}

	if a.Value.Kind() != slog.KindAny {
		return a
	}

	switch v := a.Value.Any().(type) {
	case map[string]any, []any, map[string]string:
		a.Value = slog.AnyValue(redact.Value(v))
	}

	return a
}
