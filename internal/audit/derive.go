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
	"net/http"
	"strings"
	"unicode"
	"unicode/utf8"
)

// UnknownEntity is the entity type for paths with no usable segment.
const UnknownEntity = "Unknown"

// DefaultExcludedPaths are path prefixes that are never audited.
var DefaultExcludedPaths = []string{
	"/api/health",
	"/health",
	"/metrics",
	"/static/",
	"/assets/",
	"/favicon.ico",
}

var staticExtensions = []string{
	".css", ".js", ".map", ".png", ".jpg", ".jpeg", ".gif", ".svg", ".ico",
	".woff", ".woff2", ".ttf",
}

// EntityTypeFromPath names the entity a request path refers to: the first
// segment after an optional /api prefix, singularized and capitalized.
// "/api/products/42" is "Product" and "/api/categories" is "Category".
func EntityTypeFromPath(
	path string,
) string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}

	path = strings.TrimPrefix(path, "/")
	path = strings.TrimPrefix(path, "api/")
	if path == "api" {
		path = ""
	}

	segment, _, _ := strings.Cut(path, "/")
	if segment == "" {
		return UnknownEntity
	}

	return capitalize(singularize(segment))
}

// ActionFromMethod maps an HTTP method to an audit action. The second return
// is false for methods that are never audited.
func ActionFromMethod(
	method string,
) (Action, bool) {
	switch method {
	case http.MethodPost:
		return ActionCreate, true
	case http.MethodPut, http.MethodPatch:
		return ActionUpdate, true
	case http.MethodDelete:
		return ActionDelete, true
	case http.MethodGet:
		return ActionRead, true
	default:
		return "", false
	}
}

// DeriveOutcome maps an HTTP status code to a status and severity.
func DeriveOutcome(
	statusCode int,
) (Status, Severity) {
	switch {
	case statusCode >= http.StatusInternalServerError:
		return StatusFailure, SeverityHigh
	case statusCode >= http.StatusBadRequest:
		return StatusWarning, SeverityMedium
	default:
		return StatusSuccess, SeverityLow
	}
}

// IsExcluded reports whether path is a health, metrics or static asset path,
// or starts with one of the extra prefixes.
func IsExcluded(
	path string,
	extra []string,
) bool {
	for _, prefix := range DefaultExcludedPaths {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}

	for _, prefix := range extra {
		if prefix != "" && strings.HasPrefix(path, prefix) {
			return true
		}
	}

	lower := strings.ToLower(path)
	for _, ext := range staticExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}

	return false
}

func singularize(
	word string,
) string {
	switch {
	case strings.HasSuffix(word, "ies") && len(word) > 3:
		return strings.TrimSuffix(word, "ies") + "y"
	case strings.HasSuffix(word, "s") && len(word) > 1:
		return strings.TrimSuffix(word, "s")
	default:
		return word
	}
}

func capitalize(
	word string,
) string {
	r, size := utf8.DecodeRuneInString(word)
	if r == utf8.RuneError {
		return word
	}

	return string(unicode.ToUpper(r)) + word[size:]
}
