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

package health

import (
	"context"
	"errors"
	"fmt"
)

// DependencyChecker checks database and NATS connectivity.
type DependencyChecker struct {
	// DBCheck verifies database connectivity.
	DBCheck func(ctx context.Context) error
	// NATSCheck verifies NATS connectivity.
	NATSCheck func(ctx context.Context) error
}

// CheckHealth runs all dependency checks and joins their errors.
func (c *DependencyChecker) CheckHealth(
	ctx context.Context,
) error {
	var errs []error

	if err := c.CheckDB(ctx); err != nil {
		errs = append(errs, err)
	}

	if err := c.CheckNATS(ctx); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// CheckDB runs only the database check.
func (c *DependencyChecker) CheckDB(
	ctx context.Context,
) error {
	if c.DBCheck != nil {
		if err := c.DBCheck(ctx); err != nil {
			return fmt.Errorf("database: %w", err)
		}
	}

	return nil
}

// CheckNATS runs only the NATS check.
func (c *DependencyChecker) CheckNATS(
	ctx context.Context,
) error {
	if c.NATSCheck != nil {
		if err := c.NATSCheck(ctx); err != nil {
			return fmt.Errorf("nats: %w", err)
		}
	}

	return nil
}

// Components reports each dependency as "ok" or "error".
func (c *DependencyChecker) Components(
	ctx context.Context,
) map[string]ComponentHealth {
	return map[string]ComponentHealth{
		"database": component(c.CheckDB(ctx)),
		"nats":     component(c.CheckNATS(ctx)),
	}
}

func component(
	err error,
) ComponentHealth {
	if err == nil {
		return ComponentHealth{Status: "ok"}
	}

	msg := err.Error()

	return ComponentHealth{Status: "error", Error: &msg}
}
