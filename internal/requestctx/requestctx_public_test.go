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

package requestctx_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/retr0h/storefront/internal/requestctx"
)

type RequestCtxPublicTestSuite struct {
	suite.Suite
}

func (s *RequestCtxPublicTestSuite) TestRoundTrip() {
	ctx := requestctx.With(context.Background(), requestctx.Info{
		RequestID:     "req-1",
		CorrelationID: "corr-1",
		IPAddress:     "10.0.0.1",
	})
	ctx = requestctx.WithUserID(ctx, "user-1")

	info := requestctx.From(ctx)
	s.Equal("req-1", info.RequestID)
	s.Equal("corr-1", info.CorrelationID)
	s.Equal("user-1", info.UserID)
	s.Equal("10.0.0.1", info.IPAddress)
}

func (s *RequestCtxPublicTestSuite) TestEmptyContext() {
	s.Equal(requestctx.Info{}, requestctx.From(context.Background()))
}

func TestRequestCtxPublicTestSuite(t *testing.T) {
	suite.Run(t, new(RequestCtxPublicTestSuite))
}
