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
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/retr0h/storefront/internal/api/health"
)

type CheckerPublicTestSuite struct {
	suite.Suite

	ctx context.Context
}

func (s *CheckerPublicTestSuite) SetupTest() {
	s.ctx = context.Background()
}

func fail(msg string) func(context.Context) error {
	return func(context.Context) error { return errors.New(msg) }
}

func pass(context.Context) error { return nil }

func (s *CheckerPublicTestSuite) TestCheckHealth() {
	tests := []struct {
		name      string
		checker   *health.DependencyChecker
		expectErr bool
		errMsgs   []string
	}{
		{
			name:    "all checks pass",
			checker: &health.DependencyChecker{DBCheck: pass, NATSCheck: pass},
		},
		{
			name:      "database check fails",
			checker:   &health.DependencyChecker{DBCheck: fail("conn refused"), NATSCheck: pass},
			expectErr: true,
			errMsgs:   []string{"database: conn refused"},
		},
		{
			name:      "NATS check fails",
			checker:   &health.DependencyChecker{DBCheck: pass, NATSCheck: fail("disconnected")},
			expectErr: true,
			errMsgs:   []string{"nats: disconnected"},
		},
		{
			name:      "both checks fail",
			checker:   &health.DependencyChecker{DBCheck: fail("conn refused"), NATSCheck: fail("disconnected")},
			expectErr: true,
			errMsgs:   []string{"database: conn refused", "nats: disconnected"},
		},
		{
			name:    "nil checks pass",
			checker: &health.DependencyChecker{},
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			err := tt.checker.CheckHealth(s.ctx)

			if !tt.expectErr {
				s.NoError(err)
				return
			}
			s.Require().Error(err)
			for _, msg := range tt.errMsgs {
				s.Contains(err.Error(), msg)
			}
		})
	}
}

func (s *CheckerPublicTestSuite) TestComponents() {
	checker := &health.DependencyChecker{DBCheck: pass, NATSCheck: fail("disconnected")}

	got := checker.Components(s.ctx)

	s.Equal("ok", got["database"].Status)
	s.Nil(got["database"].Error)
	s.Equal("error", got["nats"].Status)
	s.Require().NotNil(got["nats"].Error)
	s.Equal("nats: disconnected", *got["nats"].Error)
}

func TestCheckerPublicTestSuite(t *testing.T) {
	suite.Run(t, new(CheckerPublicTestSuite))
}
