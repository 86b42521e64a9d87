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

package bind_test

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"

	"github.com/retr0h/storefront/internal/api/bind"
	"github.com/retr0h/storefront/internal/api/response"
	"github.com/retr0h/storefront/internal/apperror"
)

type payload struct {
	Email string `json:"email" validate:"required,email"`
}

type BindPublicTestSuite struct {
	suite.Suite

	e         *echo.Echo
	responder *response.Responder
}

func (s *BindPublicTestSuite) SetupTest() {
	s.e = echo.New()
	s.responder = response.New(slog.Default(), false)
}

func (s *BindPublicTestSuite) TestJSON() {
	tests := []struct {
		name       string
		body       string
		wantOK     bool
		wantKind   apperror.Kind
		wantStatus int
	}{
		{
			name:   "valid body",
			body:   `{"email":"ada@example.com"}`,
			wantOK: true,
		},
		{
			name:     "malformed body",
			body:     `{"email":`,
			wantKind: apperror.KindValidation,
		},
		{
			name:       "invalid field writes validation envelope",
			body:       `{"email":"nope"}`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			rec := httptest.NewRecorder()
			c := s.e.NewContext(req, rec)

			var dst payload
			ok, err := bind.JSON(c, s.responder, &dst)

			s.Equal(tt.wantOK, ok)
			switch {
			case tt.wantOK:
				s.NoError(err)
				s.Equal("ada@example.com", dst.Email)
			case tt.wantStatus != 0:
				s.NoError(err)
				s.Equal(tt.wantStatus, rec.Code)

				var env struct {
					Data struct {
						Errors []struct {
							Field string `json:"field"`
						} `json:"errors"`
					} `json:"data"`
				}
				s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &env))
				s.Require().Len(env.Data.Errors, 1)
				s.Equal("email", env.Data.Errors[0].Field)
			default:
				s.Equal(tt.wantKind, apperror.KindOf(err))
			}
		})
	}
}

func (s *BindPublicTestSuite) TestQuery() {
	tests := []struct {
		name       string
		query      string
		wantOK     bool
		wantLimit  int
		wantKind   apperror.Kind
		wantStatus int
	}{
		{
			name:      "defaults when absent",
			query:     "",
			wantOK:    true,
			wantLimit: 20,
		},
		{
			name:      "explicit limit",
			query:     "?limit=5&offset=10",
			wantOK:    true,
			wantLimit: 5,
		},
		{
			name:     "non numeric limit",
			query:    "?limit=abc",
			wantKind: apperror.KindValidation,
		},
		{
			name:       "limit above maximum",
			query:      "?limit=1000",
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			req := httptest.NewRequest(http.MethodGet, "/"+tt.query, nil)
			rec := httptest.NewRecorder()
			c := s.e.NewContext(req, rec)

			var page bind.Page
			ok, err := bind.Query(c, s.responder, &page)

			s.Equal(tt.wantOK, ok)
			switch {
			case tt.wantOK:
				s.NoError(err)
				s.Equal(tt.wantLimit, page.LimitOr(20))
			case tt.wantStatus != 0:
				s.NoError(err)
				s.Equal(tt.wantStatus, rec.Code)
			default:
				s.Equal(tt.wantKind, apperror.KindOf(err))
			}
		})
	}
}

func TestBindPublicTestSuite(t *testing.T) {
	suite.Run(t, new(BindPublicTestSuite))
}
