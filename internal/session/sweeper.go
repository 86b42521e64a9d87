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

package session

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// DefaultSweepSchedule runs the sweeper every fifteen minutes.
const DefaultSweepSchedule = "@every 15m"

// Sweeper periodically invalidates expired sessions so that rows do not
// linger as valid until their token is next presented.
type Sweeper struct {
	logger  *slog.Logger
	manager *Manager
	cron    *cron.Cron
}

// NewSweeper schedules manager.PurgeExpired on schedule.
func NewSweeper(
	logger *slog.Logger,
	manager *Manager,
	schedule string,
) (*Sweeper, error) {
	if schedule == "" {
		schedule = DefaultSweepSchedule
	}

	s := &Sweeper{
		logger:  logger,
		manager: manager,
		cron:    cron.New(),
	}

	if _, err := s.cron.AddFunc(schedule, s.Sweep); err != nil {
		return nil, fmt.Errorf("invalid sweep schedule %q: %w", schedule, err)
	}

	return s, nil
}

// Sweep runs one purge pass.
func (s *Sweeper) Sweep() {
	n, err := s.manager.PurgeExpired(context.Background())
	if err != nil {
		s.logger.Error("session sweep failed", slog.String("error", err.Error()))
		return
	}

	if n > 0 {
		s.logger.Info("session sweep invalidated expired sessions", slog.Int64("count", n))
	}
}

// Start begins the schedule.
func (s *Sweeper) Start() {
	s.cron.Start()
}

// Stop halts the schedule and waits for a running sweep or ctx.
func (s *Sweeper) Stop(
	ctx context.Context,
) {
	done := s.cron.Stop()

	select {
	case <-done.Done():
	case <-ctx.Done():
		s.logger.Warn("session sweep still running at shutdown")
	}
}
