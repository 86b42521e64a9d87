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
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"

	"github.com/retr0h/storefront/internal/api/response"
	"github.com/retr0h/storefront/internal/apperror"
	"github.com/retr0h/storefront/internal/requestctx"
	"github.com/retr0h/storefront/internal/validation"
)

type ResponsePublicTestSuite struct {
	suite.Suite

	logs *bytes.Buffer
	e    *echo.Echo
}

func (s *ResponsePublicTestSuite) SetupTest() {
	s.logs = &bytes.Buffer{}
	s.e = echo.New()
}

func (s *ResponsePublicTestSuite) newResponder(
	development bool,
) *response.Responder {
	logger := slog.New(slog.NewJSONHandler(s.logs, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	return response.New(logger, development)
}

func (s *ResponsePublicTestSuite) newContext(
	method string,
	path string,
) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, path, nil)
	req = req.WithContext(requestctx.With(req.Context(), requestctx.Info{
		RequestID: "req-123",
	}))
	rec := httptest.NewRecorder()

	return s.e.NewContext(req, rec), rec
}

func (s *ResponsePublicTestSuite) decode(
	rec *httptest.ResponseRecorder,
) map[string]any {
	var body map[string]any
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))

	return body
}

func (s *ResponsePublicTestSuite) TestSuccess() {
	tests := []struct {
		name     string
		method   string
		path     string
		data     any
		message  string
		opts     []response.Option
		wantData any
		wantMsg  any
	}{
		{
			name:     "nil data on a collection route renders []",
			method:   http.MethodGet,
			path:     "/api/users",
			wantData: []any{},
			wantMsg:  nil,
		},
		{
			name:     "nil data on a single route renders {}",
			method:   http.MethodGet,
			path:     "/api/users/42",
			wantData: map[string]any{},
			wantMsg:  nil,
		},
		{
			name:     "explicit resource type wins",
			method:   http.MethodGet,
			path:     "/api/system/status",
			opts:     []response.Option{response.WithResourceType(response.Single)},
			wantData: map[string]any{},
			wantMsg:  nil,
		},
		{
			name:     "data and message pass through",
			method:   http.MethodPost,
			path:     "/api/featured",
			data:     map[string]any{"id": "p1"},
			message:  "Created",
			wantData: map[string]any{"id": "p1"},
			wantMsg:  "Created",
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			c, rec := s.newContext(tt.method, tt.path)

			err := s.newResponder(false).
				Success(c, http.StatusOK, tt.data, tt.message, tt.opts...)
			s.Require().NoError(err)

			body := s.decode(rec)
			s.Equal(true, body["success"])
			s.Equal(tt.wantData, body["data"])
			s.Equal(tt.wantMsg, body["message"])
			s.Nil(body["error"])
			s.Equal("req-123", body["requestId"])
		})
	}
}

func (s *ResponsePublicTestSuite) TestError() {
	tests := []struct {
		name          string
		development   bool
		err           error
		clientMessage string
		wantStatus    int
		wantError     string
		wantLevel     string
	}{
		{
			name:       "not found uses carried message",
			err:        apperror.NotFound("User not found"),
			wantStatus: http.StatusNotFound,
			wantError:  "User not found",
			wantLevel:  "WARN",
		},
		{
			name:          "client message overrides carried message",
			err:           apperror.Forbidden("missing orders:write"),
			clientMessage: "Forbidden",
			wantStatus:    http.StatusForbidden,
			wantError:     "Forbidden",
			wantLevel:     "WARN",
		},
		{
			name:       "unclassified error is generic in production",
			err:        errors.New("pq: relation users does not exist"),
			wantStatus: http.StatusInternalServerError,
			wantError:  response.GenericErrorMessage,
			wantLevel:  "ERROR",
		},
		{
			name:        "unclassified error is detailed in development",
			development: true,
			err:         errors.New("pq: relation users does not exist"),
			wantStatus:  http.StatusInternalServerError,
			wantError:   "pq: relation users does not exist",
			wantLevel:   "ERROR",
		},
		{
			name:       "upstream error exposes its safe message",
			err:        apperror.Upstream("Payment provider unavailable", errors.New("dial tcp")),
			wantStatus: http.StatusBadGateway,
			wantError:  "Payment provider unavailable",
			wantLevel:  "ERROR",
		},
		{
			name:       "echo http error keeps its code",
			err:        echo.NewHTTPError(http.StatusMethodNotAllowed, "Method Not Allowed"),
			wantStatus: http.StatusMethodNotAllowed,
			wantError:  "Method Not Allowed",
			wantLevel:  "WARN",
		},
		{
			name:       "non-standard code without message falls back to generic",
			err:        echo.NewHTTPError(499),
			wantStatus: 499,
			wantError:  response.GenericErrorMessage,
			wantLevel:  "WARN",
		},
		{
			name:       "echo http error with an empty message",
			err:        echo.NewHTTPError(http.StatusTeapot, ""),
			wantStatus: http.StatusTeapot,
			wantError:  "I'm a teapot",
			wantLevel:  "WARN",
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.logs.Reset()
			c, rec := s.newContext(http.MethodGet, "/api/users/42")

			err := s.newResponder(tt.development).Error(c, tt.err, tt.clientMessage)
			s.Require().NoError(err)

			s.Equal(tt.wantStatus, rec.Code)
			body := s.decode(rec)
			s.Equal(false, body["success"])
			s.Equal(map[string]any{}, body["data"])
			s.Equal(tt.wantError, body["error"])
			s.Equal("req-123", body["requestId"])

			s.Contains(s.logs.String(), `"level":"`+tt.wantLevel+`"`)
			if tt.err != nil {
				s.Contains(s.logs.String(), tt.err.Error())
			}
		})
	}
}

func (s *ResponsePublicTestSuite) TestValidationError() {
	c, rec := s.newContext(http.MethodPost, "/api/auth/register")
	fields := []validation.FieldError{
		{Field: "email", Message: "must be a valid email address"},
	}

	err := s.newResponder(false).ValidationError(c, fields, "")
	s.Require().NoError(err)

	s.Equal(http.StatusBadRequest, rec.Code)
	body := s.decode(rec)
	s.Equal(false, body["success"])
	s.Equal(response.ValidationFailedMessage, body["error"])
	s.Equal(map[string]any{
		"errors": []any{
			map[string]any{"field": "email", "message": "must be a valid email address"},
		},
	}, body["data"])
}

func (s *ResponsePublicTestSuite) TestRequestIDFallsBackToHeader() {
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	rec := httptest.NewRecorder()
	c := s.e.NewContext(req, rec)
	c.Response().Header().Set(echo.HeaderXRequestID, "hdr-1")

	s.Require().NoError(s.newResponder(false).Success(c, http.StatusOK, nil, ""))

	s.Equal("hdr-1", s.decode(rec)["requestId"])
}

func TestResponsePublicTestSuite(t *testing.T) {
	suite.Run(t, new(ResponsePublicTestSuite))
}
