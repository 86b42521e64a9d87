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

package system_test

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"

	"github.com/retr0h/storefront/internal/api/health"
	"github.com/retr0h/storefront/internal/api/response"
	"github.com/retr0h/storefront/internal/api/system"
)

type fakeHost struct {
	err error
}

func (f fakeHost) Hostname(context.Context) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "shop-01", nil
}

func (f fakeHost) Uptime(context.Context) (time.Duration, error) {
	if f.err != nil {
		return 0, f.err
	}
	return 26*time.Hour + 5*time.Minute, nil
}

func (f fakeHost) LoadAverage(context.Context) (*system.LoadAverage, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &system.LoadAverage{Load1: 0.5, Load5: 0.25, Load15: 0.1}, nil
}

func (f fakeHost) Memory(context.Context) (*system.Memory, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &system.Memory{Total: 1024, Free: 512, Used: 512}, nil
}

func (f fakeHost) Disk(_ context.Context, path string) (*system.Disk, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &system.Disk{Name: path, Total: 100, Used: 40, Free: 60}, nil
}

type SystemStatusGetPublicTestSuite struct {
	suite.Suite

	e *echo.Echo
}

func (s *SystemStatusGetPublicTestSuite) SetupTest() {
	s.e = echo.New()
}

func (s *SystemStatusGetPublicTestSuite) TestGetSystemStatus() {
	tests := []struct {
		name     string
		host     system.HostProvider
		validate func(st system.Status)
	}{
		{
			name: "when every probe succeeds",
			host: fakeHost{},
			validate: func(st system.Status) {
				s.Equal("shop-01", st.Hostname)
				s.Equal("1 day, 2 hours, 5 minutes", st.Uptime)
				s.Require().NotNil(st.LoadAverage)
				s.InDelta(0.5, st.LoadAverage.Load1, 0.0001)
				s.Require().NotNil(st.Memory)
				s.Equal(1024, st.Memory.Total)
				s.Require().Len(st.Disks, 1)
				s.Equal("/", st.Disks[0].Name)
				s.Equal("ok", st.Components["database"].Status)
				s.Equal("error", st.Components["nats"].Status)
			},
		},
		{
			name: "when host probes fail",
			host: fakeHost{err: errors.New("probe failed")},
			validate: func(st system.Status) {
				s.Equal("unknown", st.Hostname)
				s.Empty(st.Uptime)
				s.Nil(st.LoadAverage)
				s.Nil(st.Memory)
				s.Empty(st.Disks)
			},
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			checker := &health.DependencyChecker{
				DBCheck:   func(context.Context) error { return nil },
				NATSCheck: func(context.Context) error { return errors.New("down") },
			}
			h := system.New(
				slog.Default(),
				response.New(slog.Default(), false),
				tt.host,
				checker,
				"1.2.3",
			)

			req := httptest.NewRequest(http.MethodGet, "/api/system/status", nil)
			rec := httptest.NewRecorder()

			s.Require().NoError(h.GetSystemStatus(s.e.NewContext(req, rec)))
			s.Equal(http.StatusOK, rec.Code)

			var env struct {
				Success bool          `json:"success"`
				Data    system.Status `json:"data"`
			}
			s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &env))
			s.True(env.Success)
			s.Equal("1.2.3", env.Data.Version)
			tt.validate(env.Data)
		})
	}
}

func TestSystemStatusGetPublicTestSuite(t *testing.T) {
	suite.Run(t, new(SystemStatusGetPublicTestSuite))
}
