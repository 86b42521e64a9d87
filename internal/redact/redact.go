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

// Package redact replaces sensitive values in arbitrary payloads before they
// are logged or persisted.
package redact

import (
	"encoding/json"
	"strings"
)

// Placeholder replaces every sensitive value.
const Placeholder = "[REDACTED]"

// markers match anywhere inside a normalized key.
var markers = []string{
	"password",
	"passwd",
	"secret",
	"token",
	"apikey",
	"creditcard",
	"cardnumber",
	"privatekey",
}

// exactKeys match only the whole normalized key.
var exactKeys = map[string]struct{}{
	"cvv":           {},
	"cvc":           {},
	"ssn":           {},
	"pin":           {},
	"authorization": {},
	"cookie":        {},
}

// IsSensitiveKey reports whether a field name holds sensitive data. Matching
// ignores case, underscores and dashes, so apiKey, api_key and API-KEY are
// all treated alike.
func IsSensitiveKey(
	key string,
) bool {
	normalized := normalize(key)
	if normalized == "" {
		return false
	}

	if _, ok := exactKeys[normalized]; ok {
		return true
	}

	for _, m := range markers {
		if strings.Contains(normalized, m) {
			return true
		}
	}

	return false
}

// Value returns a redacted copy of v. Maps and slices are walked
// recursively; structs and other typed values are first normalized through
// their JSON representation so their json tags decide the key names. The
// input is never modified.
func Value(
	v any,
) any {
	switch t := v.(type) {
	case nil:
		return nil
	case map[string]any:
		return redactMap(t)
	case []any:
		return redactSlice(t)
	case map[string]string:
		out := make(map[string]any, len(t))
		for k, val := range t {
			if IsSensitiveKey(k) {
				out[k] = Placeholder
				continue
			}
			out[k] = val
		}
		return out
	case string, bool, float64, float32, int, int32, int64, uint, uint32, uint64:
		return t
	}

	data, err := json.Marshal(v)
	if err != nil {
		return Placeholder
	}

	var generic any
	if err := json.Unmarshal(data, &generic); err != nil {
		return Placeholder
	}

	return Value(generic)
}

// Map is Value for the common map case.
func Map(
	m map[string]any,
) map[string]any {
	if m == nil {
		return nil
	}

	return redactMap(m)
}

func redactMap(
	m map[string]any,
) map[string]any {
	out := make(map[string]any, len(m))
	for k, val := range m {
		if IsSensitiveKey(k) {
			out[k] = Placeholder
			continue
		}
		out[k] = Value(val)
	}

	return out
}

func redactSlice(
	s []any,
) []any {
	out := make([]any, len(s))
	for i, val := range s {
		out[i] = Value(val)
	}

	return out
}

func normalize(
	key string,
) string {
	key = strings.ToLower(key)
	key = strings.ReplaceAll(key, "_", "")
	key = strings.ReplaceAll(key, "-", "")

	return key
}
