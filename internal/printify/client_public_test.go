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

package printify_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/retr0h/storefront/internal/apperror"
	"github.com/retr0h/storefront/internal/config"
	"github.com/retr0h/storefront/internal/printify"
)

type ClientPublicTestSuite struct {
	suite.Suite

	ctx   context.Context
	calls atomic.Int32
}

func (s *ClientPublicTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.calls.Store(0)
}

func (s *ClientPublicTestSuite) newClient(
	handler http.HandlerFunc,
) *printify.Client {
	server := httptest.NewServer(handler)
	s.T().Cleanup(server.Close)

	return printify.New(
		slog.Default(),
		config.Printify{
			BaseURL:    server.URL,
			Token:      "pf-token",
			ShopID:     "42",
			MaxRetries: 2,
		},
		printify.WithBackoffBase(time.Millisecond),
	)
}

func (s *ClientPublicTestSuite) TestListShops() {
	client := s.newClient(func(w http.ResponseWriter, r *http.Request) {
		s.Equal("/shops.json", r.URL.Path)
		s.Equal("Bearer pf-token", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`[{"id":42,"title":"Main","sales_channel":"custom"}]`))
	})

	shops, err := client.ListShops(s.ctx)
	s.Require().NoError(err)
	s.Equal([]printify.Shop{{ID: 42, Title: "Main", SalesChannel: "custom"}}, shops)
}

func (s *ClientPublicTestSuite) TestListProducts() {
	client := s.newClient(func(w http.ResponseWriter, r *http.Request) {
		s.Equal("/shops/42/products.json", r.URL.Path)
		s.Equal("2", r.URL.Query().Get("page"))
		s.Equal("10", r.URL.Query().Get("limit"))
		_, _ = w.Write([]byte(`{
			"current_page": 2,
			"last_page": 3,
			"total": 25,
			"data": [{"id": "p1", "title": "Mug", "variants": [{"id": 7, "price": 1500}]}]
		}`))
	})

	page, err := client.ListProducts(s.ctx, 2, 10)
	s.Require().NoError(err)
	s.Equal(25, page.Total)
	s.Require().Len(page.Data, 1)

	v, ok := page.Data[0].Variant(7)
	s.True(ok)
	s.Equal(int64(1500), v.Price)

	_, ok = page.Data[0].Variant(8)
	s.False(ok)
}

func (s *ClientPublicTestSuite) TestGetProduct() {
	tests := []struct {
		name      string
		handler   http.HandlerFunc
		wantErr   bool
		wantKind  apperror.Kind
		wantCalls int32
	}{
		{
			name: "when found",
			handler: func(w http.ResponseWriter, r *http.Request) {
				s.calls.Add(1)
				s.Equal("/shops/42/products/p1.json", r.URL.Path)
				_, _ = w.Write([]byte(`{"id":"p1","title":"Mug"}`))
			},
			wantCalls: 1,
		},
		{
			name: "when transient failures then success retries",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				if s.calls.Add(1) < 3 {
					w.WriteHeader(http.StatusServiceUnavailable)
					return
				}
				_, _ = w.Write([]byte(`{"id":"p1","title":"Mug"}`))
			},
			wantCalls: 3,
		},
		{
			name: "when not found does not retry",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				s.calls.Add(1)
				w.WriteHeader(http.StatusNotFound)
			},
			wantErr:   true,
			wantKind:  apperror.KindNotFound,
			wantCalls: 1,
		},
		{
			name: "when upstream keeps failing gives up",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				s.calls.Add(1)
				w.WriteHeader(http.StatusBadGateway)
			},
			wantErr:   true,
			wantKind:  apperror.KindUpstream,
			wantCalls: 3,
		},
		{
			name: "when client error is upstream error without retry",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				s.calls.Add(1)
				w.WriteHeader(http.StatusUnauthorized)
			},
			wantErr:   true,
			wantKind:  apperror.KindUpstream,
			wantCalls: 1,
		},
		{
			name: "when body is malformed",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				s.calls.Add(1)
				_, _ = w.Write([]byte(`{`))
			},
			wantErr:   true,
			wantKind:  apperror.KindUpstream,
			wantCalls: 1,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.calls.Store(0)
			client := s.newClient(tt.handler)

			got, err := client.GetProduct(s.ctx, "p1")

			s.Equal(tt.wantCalls, s.calls.Load())
			if tt.wantErr {
				s.Require().Error(err)
				s.Equal(tt.wantKind, apperror.KindOf(err))
				return
			}
			s.Require().NoError(err)
			s.Equal("Mug", got.Title)
		})
	}
}

func (s *ClientPublicTestSuite) TestTraceContextForwarded() {
	otel.SetTracerProvider(sdktrace.NewTracerProvider())
	otel.SetTextMapPropagator(propagation.TraceContext{})

	var traceparent string
	client := s.newClient(func(w http.ResponseWriter, r *http.Request) {
		traceparent = r.Header.Get("Traceparent")
		_, _ = w.Write([]byte(`[]`))
	})

	ctx, span := otel.Tracer("test").Start(s.ctx, "list-shops")
	defer span.End()

	_, err := client.ListShops(ctx)
	s.Require().NoError(err)
	s.Contains(traceparent, span.SpanContext().TraceID().String())
}

func TestClientPublicTestSuite(t *testing.T) {
	suite.Run(t, new(ClientPublicTestSuite))
}
