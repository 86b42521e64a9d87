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

package response_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/retr0h/storefront/internal/api/response"
)

type InferPublicTestSuite struct {
	suite.Suite
}

func (s *InferPublicTestSuite) TestInferResourceType() {
	tests := []struct {
		name   string
		method string
		path   string
		data   any
		want   response.ResourceType
	}{
		{
			name:   "slice data is always a collection",
			method: http.MethodPost,
			path:   "/api/orders/42",
			data:   []string{"a"},
			want:   response.Collection,
		},
		{
			name:   "array data is a collection",
			method: http.MethodGet,
			path:   "/api/me",
			data:   [2]int{1, 2},
			want:   response.Collection,
		},
		{
			name:   "plural segment on GET",
			method: http.MethodGet,
			path:   "/api/users",
			want:   response.Collection,
		},
		{
			name:   "trailing slash and query are ignored",
			method: http.MethodGet,
			path:   "/api/products/?page=2",
			want:   response.Collection,
		},
		{
			name:   "search segment",
			method: http.MethodGet,
			path:   "/api/products/search",
			want:   response.Collection,
		},
		{
			name:   "numeric id is single",
			method: http.MethodGet,
			path:   "/api/users/42",
			want:   response.Single,
		},
		{
			name:   "uuid id is single",
			method: http.MethodGet,
			path:   "/api/orders/0190a4c2-7b1e-7c3d-9f00-1a2b3c4d5e6f",
			want:   response.Single,
		},
		{
			name:   "object id is single",
			method: http.MethodGet,
			path:   "/api/products/5f1a2b3c4d5e6f7a8b9c0d1e",
			want:   response.Single,
		},
		{
			name:   "plural segment on POST is single",
			method: http.MethodPost,
			path:   "/api/orders",
			want:   response.Single,
		},
		{
			name:   "singular segment",
			method: http.MethodGet,
			path:   "/api/auth/me",
			want:   response.Single,
		},
		{
			name:   "singular noun ending in s is misreported",
			method: http.MethodGet,
			path:   "/api/system/status",
			want:   response.Collection,
		},
		{
			name:   "root path",
			method: http.MethodGet,
			path:   "/",
			want:   response.Single,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			got := response.InferResourceType(tt.method, tt.path, tt.data)
			s.Equal(tt.want, got)
		})
	}
}

func (s *InferPublicTestSuite) TestIsIDLike() {
	tests := []struct {
		name    string
		segment string
		want    bool
	}{
		{name: "numeric", segment: "123", want: true},
		{name: "uuid", segment: "123e4567-e89b-12d3-a456-426614174000", want: true},
		{name: "long hex", segment: "deadbeefcafebabe", want: true},
		{name: "short hex word", segment: "cafe", want: false},
		{name: "word", segment: "orders", want: false},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.Equal(tt.want, response.IsIDLike(tt.segment))
		})
	}
}

func (s *InferPublicTestSuite) TestNormalize() {
	var nilSlice []string
	var nilMap map[string]any

	s.Equal([]any{}, response.Normalize(nil, response.Collection))
	s.Equal(map[string]any{}, response.Normalize(nil, response.Single))
	s.Equal([]any{}, response.Normalize(nilSlice, response.Collection))
	s.Equal(map[string]any{}, response.Normalize(nilMap, response.Single))
	s.Equal("x", response.Normalize("x", response.Single))
}

func TestInferPublicTestSuite(t *testing.T) {
	suite.Run(t, new(InferPublicTestSuite))
}
