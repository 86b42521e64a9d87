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

package redact_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/retr0h/storefront/internal/redact"
)

type RedactPublicTestSuite struct {
	suite.Suite
}

func (s *RedactPublicTestSuite) TestIsSensitiveKey() {
	tests := []struct {
		key  string
		want bool
	}{
		{key: "password", want: true},
		{key: "newPassword", want: true},
		{key: "password_confirmation", want: true},
		{key: "apiKey", want: true},
		{key: "API-KEY", want: true},
		{key: "creditCard", want: true},
		{key: "card_number", want: true},
		{key: "cvv", want: true},
		{key: "ssn", want: true},
		{key: "Authorization", want: true},
		{key: "refreshToken", want: true},
		{key: "client_secret", want: true},
		{key: "email", want: false},
		{key: "lessons", want: false},
		{key: "title", want: false},
		{key: "", want: false},
	}

	for _, tt := range tests {
		s.Run(tt.key, func() {
			s.Equal(tt.want, redact.IsSensitiveKey(tt.key))
		})
	}
}

func (s *RedactPublicTestSuite) TestValue() {
	type credentials struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	tests := []struct {
		name  string
		input any
		want  any
	}{
		{
			name:  "nil stays nil",
			input: nil,
			want:  nil,
		},
		{
			name:  "scalar passes through",
			input: "hello",
			want:  "hello",
		},
		{
			name: "flat map",
			input: map[string]any{
				"email":    "a@example.com",
				"password": "hunter2",
			},
			want: map[string]any{
				"email":    "a@example.com",
				"password": redact.Placeholder,
			},
		},
		{
			name: "nested map and slice",
			input: map[string]any{
				"user": map[string]any{
					"name":  "ann",
					"token": "abc",
				},
				"cards": []any{
					map[string]any{"cardNumber": "4242", "brand": "visa"},
				},
			},
			want: map[string]any{
				"user": map[string]any{
					"name":  "ann",
					"token": redact.Placeholder,
				},
				"cards": []any{
					map[string]any{"cardNumber": redact.Placeholder, "brand": "visa"},
				},
			},
		},
		{
			name:  "struct uses json names",
			input: credentials{Email: "a@example.com", Password: "hunter2"},
			want: map[string]any{
				"email":    "a@example.com",
				"password": redact.Placeholder,
			},
		},
		{
			name:  "string map",
			input: map[string]string{"secret": "s", "mode": "payment"},
			want:  map[string]any{"secret": redact.Placeholder, "mode": "payment"},
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.Equal(tt.want, redact.Value(tt.input))
		})
	}
}

func (s *RedactPublicTestSuite) TestMapDoesNotModifyInput() {
	input := map[string]any{"password": "hunter2"}

	got := redact.Map(input)

	s.Equal(redact.Placeholder, got["password"])
	s.Equal("hunter2", input["password"])
	s.Nil(redact.Map(nil))
}

func TestRedactPublicTestSuite(t *testing.T) {
	suite.Run(t, new(RedactPublicTestSuite))
}
