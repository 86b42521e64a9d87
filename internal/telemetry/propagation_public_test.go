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

package telemetry_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"

	"github.com/retr0h/storefront/internal/telemetry"
)

type PropagationPublicTestSuite struct {
	suite.Suite

	ctx context.Context
}

func (s *PropagationPublicTestSuite) SetupTest() {
	s.ctx = context.Background()

	otel.SetTracerProvider(sdktrace.NewTracerProvider())
	otel.SetTextMapPropagator(propagation.TraceContext{})
}

func (s *PropagationPublicTestSuite) TestTraceMetadata() {
	tests := []struct {
		name     string
		setupCtx func() context.Context
		wantNil  bool
	}{
		{
			name: "when a span is active",
			setupCtx: func() context.Context {
				ctx, _ := otel.Tracer("test").Start(s.ctx, "test-span")
				return ctx
			},
		},
		{
			name:     "when no span is active",
			setupCtx: func() context.Context { return s.ctx },
			wantNil:  true,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			ctx := tt.setupCtx()

			got := telemetry.TraceMetadata(ctx)

			if tt.wantNil {
				s.Nil(got)
				return
			}

			s.Require().Contains(got, "traceparent")
			header := http.Header{}
			header.Set("traceparent", got["traceparent"].(string))
			extracted := propagation.TraceContext{}.Extract(context.Background(), propagation.HeaderCarrier(header))
			s.Equal(
				trace.SpanContextFromContext(ctx).TraceID(),
				trace.SpanContextFromContext(extracted).TraceID(),
			)
		})
	}
}

func (s *PropagationPublicTestSuite) TestInjectHeader() {
	ctx, span := otel.Tracer("test").Start(s.ctx, "outbound")
	defer span.End()

	header := http.Header{}
	telemetry.InjectHeader(ctx, header)

	s.NotEmpty(header.Get("Traceparent"))
	s.Contains(header.Get("Traceparent"), span.SpanContext().TraceID().String())
}

func TestPropagationPublicTestSuite(t *testing.T) {
	suite.Run(t, new(PropagationPublicTestSuite))
}
