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

package apperror_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/retr0h/storefront/internal/apperror"
)

type AppErrorPublicTestSuite struct {
	suite.Suite
}

func (s *AppErrorPublicTestSuite) TestStatusOf() {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantKind   apperror.Kind
	}{
		{
			name:       "validation maps to 400",
			err:        apperror.Validation("bad input"),
			wantStatus: http.StatusBadRequest,
			wantKind:   apperror.KindValidation,
		},
		{
			name:       "unauthorized maps to 401",
			err:        apperror.Unauthorized("no token"),
			wantStatus: http.StatusUnauthorized,
			wantKind:   apperror.KindUnauthorized,
		},
		{
			name:       "forbidden maps to 403",
			err:        apperror.Forbidden("nope"),
			wantStatus: http.StatusForbidden,
			wantKind:   apperror.KindForbidden,
		},
		{
			name:       "not found maps to 404",
			err:        apperror.NotFound("missing"),
			wantStatus: http.StatusNotFound,
			wantKind:   apperror.KindNotFound,
		},
		{
			name:       "conflict maps to 409",
			err:        apperror.Conflict("exists"),
			wantStatus: http.StatusConflict,
			wantKind:   apperror.KindConflict,
		},
		{
			name:       "rate limited maps to 429",
			err:        apperror.RateLimited("slow down"),
			wantStatus: http.StatusTooManyRequests,
			wantKind:   apperror.KindRateLimited,
		},
		{
			name:       "upstream maps to 502",
			err:        apperror.Upstream("printify failed", fmt.Errorf("timeout")),
			wantStatus: http.StatusBadGateway,
			wantKind:   apperror.KindUpstream,
		},
		{
			name:       "unavailable maps to 503",
			err:        apperror.Unavailable("db down", fmt.Errorf("refused")),
			wantStatus: http.StatusServiceUnavailable,
			wantKind:   apperror.KindUnavailable,
		},
		{
			name:       "wrapped app error keeps its kind",
			err:        fmt.Errorf("service: %w", apperror.NotFound("order not found")),
			wantStatus: http.StatusNotFound,
			wantKind:   apperror.KindNotFound,
		},
		{
			name:       "plain error maps to 500",
			err:        fmt.Errorf("boom"),
			wantStatus: http.StatusInternalServerError,
			wantKind:   apperror.KindInternal,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.Equal(tt.wantStatus, apperror.StatusOf(tt.err))
			s.Equal(tt.wantKind, apperror.KindOf(tt.err))
		})
	}
}

func (s *AppErrorPublicTestSuite) TestError() {
	tests := []struct {
		name        string
		err         *apperror.Error
		wantMessage string
		wantError   string
	}{
		{
			name:        "message only",
			err:         apperror.NotFound("product not found"),
			wantMessage: "product not found",
			wantError:   "product not found",
		},
		{
			name:        "message with cause",
			err:         apperror.Upstream("stripe unavailable", fmt.Errorf("dial tcp: refused")),
			wantMessage: "stripe unavailable",
			wantError:   "stripe unavailable: dial tcp: refused",
		},
		{
			name:        "cause only",
			err:         apperror.Wrap(apperror.KindInternal, "", fmt.Errorf("raw")),
			wantMessage: "",
			wantError:   "raw",
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.Equal(tt.wantError, tt.err.Error())
			s.Equal(tt.wantMessage, apperror.MessageOf(tt.err))
		})
	}
}

func (s *AppErrorPublicTestSuite) TestKindString() {
	s.Equal("rate_limited", apperror.KindRateLimited.String())
	s.Equal("internal", apperror.Kind(99).String())
	s.Equal(http.StatusInternalServerError, apperror.Kind(99).Status())
}

func TestAppErrorPublicTestSuite(t *testing.T) {
	suite.Run(t, new(AppErrorPublicTestSuite))
}
