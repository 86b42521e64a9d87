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

package response

import (
	"net/http"
	"reflect"
	"regexp"
	"strings"
)

// ResourceType tells the envelope how to render empty data.
type ResourceType int

const (
	// Single renders empty data as {}.
	Single ResourceType = iota
	// Collection renders empty data as [].
	Collection
)

// String returns the resource type name.
func (r ResourceType) String() string {
	if r == Collection {
		return "collection"
	}

	return "single"
}

var (
	collectionSegmentRe = regexp.MustCompile(`(?i)(s$|list|all|search|find|query)`)
	numericIDRe         = regexp.MustCompile(`^\d+$`)
	uuidRe              = regexp.MustCompile(
		`(?i)^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`,
	)
	objectIDRe = regexp.MustCompile(`(?i)^[0-9a-f]{24}$`)
	longHexRe  = regexp.MustCompile(`(?i)^[0-9a-f]{16,}$`)
)

// InferResourceType guesses whether a response is a collection or a single
// resource.
//
// Data that is already a slice or array is a collection. Otherwise the last
// path segment decides: a GET whose final segment is not an identifier and
// ends in "s" or contains list, all, search, find or query is a collection.
// Everything else is single.
//
// The heuristic is purely lexical. Singular nouns ending in "s" (status,
// address, news) and words containing "all" (install, gallery) are reported
// as collections; handlers returning such resources should pass
// WithResourceType explicitly.
func InferResourceType(
	method string,
	path string,
	data any,
) ResourceType {
	if isList(data) {
		return Collection
	}

	if method != http.MethodGet {
		return Single
	}

	segment := lastSegment(path)
	if segment == "" || IsIDLike(segment) {
		return Single
	}

	if collectionSegmentRe.MatchString(segment) {
		return Collection
	}

	return Single
}

// IsIDLike reports whether a path segment looks like a resource identifier:
// a number, a UUID, a 24 character object id or a long hex string.
func IsIDLike(
	segment string,
) bool {
	return numericIDRe.MatchString(segment) ||
		uuidRe.MatchString(segment) ||
		objectIDRe.MatchString(segment) ||
		longHexRe.MatchString(segment)
}

func lastSegment(
	path string,
) string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}

	path = strings.TrimRight(path, "/")
	if i := strings.LastIndex(path, "/"); i >= 0 {
		return path[i+1:]
	}

	return path
}

func isList(
	data any,
) bool {
	if data == nil {
		return false
	}

	kind := reflect.TypeOf(data).Kind()

	return kind == reflect.Slice || kind == reflect.Array
}

func isNil(
	data any,
) bool {
	if data == nil {
		return true
	}

	v := reflect.ValueOf(data)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface:
		return v.IsNil()
	default:
		return false
	}
}
