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

package health_test

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"

	"github.com/retr0h/storefront/internal/api/health"
	"github.com/retr0h/storefront/internal/api/response"
	"github.com/retr0h/storefront/internal/apperror"
)

type HealthReadyGetPublicTestSuite struct {
	suite.Suite

	e *echo.Echo
}

func (s *HealthReadyGetPublicTestSuite) SetupTest() {
	s.e = echo.New()
}

func (s *HealthReadyGetPublicTestSuite) TestGetHealthReady() {
	tests := []struct {
		name     string
		checker  *health.DependencyChecker
		wantCode int
		wantErr  bool
	}{
		{
			name:     "when dependencies are reachable",
			checker:  &health.DependencyChecker{DBCheck: pass, NATSCheck: pass},
			wantCode: http.StatusOK,
		},
		{
			name:    "when the database is down",
			checker: &health.DependencyChecker{DBCheck: fail("conn refused"), NATSCheck: pass},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			h := health.New(
				slog.Default(),
				response.New(slog.Default(), false),
				tt.checker,
				time.Now(),
				"1.2.3",
			)
			req := httptest.NewRequest(http.MethodGet, "/api/health/ready", nil)
			rec := httptest.NewRecorder()

			err := h.GetHealthReady(s.e.NewContext(req, rec))

			if tt.wantErr {
				s.Equal(apperror.KindUnavailable, apperror.KindOf(err))
				s.Equal(http.StatusServiceUnavailable, apperror.StatusOf(err))
				return
			}
			s.NoError(err)
			s.Equal(tt.wantCode, rec.Code)
			s.Contains(rec.Body.String(), `"status":"ready"`)
		})
	}
}

func TestHealthReadyGetPublicTestSuite(t *testing.T) {
	suite.Run(t, new(HealthReadyGetPublicTestSuite))
}
