// Copyright (c) 2024 John Dewey

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

package system

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// GetSystemStatus get the system status API endpoint.
// Individual host probes that fail are logged and omitted from the payload.
func (s *System) GetSystemStatus(
	c echo.Context,
) error {
	ctx := c.Request().Context()

	status := Status{
		Hostname: "unknown",
		Version:  s.Version,
		Disks:    []Disk{},
	}

	if hostname, err := s.Host.Hostname(ctx); err == nil && hostname != "" {
		status.Hostname = hostname
	} else if err != nil {
		s.warn(c, "hostname", err)
	}

	if uptime, err := s.Host.Uptime(ctx); err == nil {
		status.Uptime = formatDuration(uptime)
	} else {
		s.warn(c, "uptime", err)
	}

	if avg, err := s.Host.LoadAverage(ctx); err == nil {
		status.LoadAverage = avg
	} else {
		s.warn(c, "load", err)
	}

	if m, err := s.Host.Memory(ctx); err == nil {
		status.Memory = m
	} else {
		s.warn(c, "memory", err)
	}

	for _, path := range s.DiskPaths {
		d, err := s.Host.Disk(ctx, path)
		if err != nil {
			s.warn(c, "disk", err)
			continue
		}
		status.Disks = append(status.Disks, *d)
	}

	if s.Components != nil {
		status.Components = s.Components.Components(ctx)
	}

	return s.responder.Success(c, http.StatusOK, status, "")
}

func (s *System) warn(
	c echo.Context,
	probe string,
	err error,
) {
	s.logger.WarnContext(
		c.Request().Context(),
		"host probe failed",
		slog.String("probe", probe),
		slog.String("error", err.Error()),
	)
}

func formatDuration(
	d time.Duration,
) string {
	totalMinutes := int(d.Minutes())
	days := totalMinutes / (24 * 60)
	hours := (totalMinutes % (24 * 60)) / 60
	minutes := totalMinutes % 60

	dayStr := "day"
	if days != 1 {
		dayStr = "days"
	}

	hourStr := "hour"
	if hours != 1 {
		hourStr = "hours"
	}

	minuteStr := "minute"
	if minutes != 1 {
		minuteStr = "minutes"
	}

	return fmt.Sprintf("%d %s, %d %s, %d %s", days, dayStr, hours, hourStr, minutes, minuteStr)
}
