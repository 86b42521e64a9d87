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

package system

import (
	"context"
	"log/slog"
	"time"

	"github.com/retr0h/storefront/internal/api/health"
	"github.com/retr0h/storefront/internal/api/response"
)

// HostProvider reports metrics about the machine the API runs on.
type HostProvider interface {
	Hostname(ctx context.Context) (string, error)
	Uptime(ctx context.Context) (time.Duration, error)
	LoadAverage(ctx context.Context) (*LoadAverage, error)
	Memory(ctx context.Context) (*Memory, error)
	Disk(ctx context.Context, path string) (*Disk, error)
}

// ComponentReporter reports per-dependency health.
type ComponentReporter interface {
	Components(ctx context.Context) map[string]health.ComponentHealth
}

// System implementation of the system status API operations.
type System struct {
	Host       HostProvider
	Components ComponentReporter
	Version    string
	// DiskPaths are the mount points reported under disks.
	DiskPaths []string

	logger    *slog.Logger
	responder *response.Responder
}

type LoadAverage struct {
	Load1  float64 `json:"1min"`
	Load5  float64 `json:"5min"`
	Load15 float64 `json:"15min"`
}

type Memory struct {
	Total int `json:"total"`
	Free  int `json:"free"`
	Used  int `json:"used"`
}

type Disk struct {
	Name  string `json:"name"`
	Total int    `json:"total"`
	Used  int    `json:"used"`
	Free  int    `json:"free"`
}

// Status is the payload of GET /api/system/status.
type Status struct {
	Hostname    string                            `json:"hostname"`
	Version     string                            `json:"version"`
	Uptime      string                            `json:"uptime"`
	LoadAverage *LoadAverage                      `json:"loadAverage,omitempty"`
	Memory      *Memory                           `json:"memory,omitempty"`
	Disks       []Disk                            `json:"disks"`
	Components  map[string]health.ComponentHealth `json:"components"`
}
