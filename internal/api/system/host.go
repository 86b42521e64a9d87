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
	"time"

	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/load"
	"github.com/shirou/gopsutil/v4/mem"
)

// gopsutilProvider implements HostProvider using gopsutil.
type gopsutilProvider struct{}

// NewHostProvider returns a HostProvider backed by gopsutil.
func NewHostProvider() HostProvider {
	return gopsutilProvider{}
}

func (gopsutilProvider) Hostname(
	ctx context.Context,
) (string, error) {
	info, err := host.InfoWithContext(ctx)
	if err != nil {
		return "", err
	}

	return info.Hostname, nil
}

func (gopsutilProvider) Uptime(
	ctx context.Context,
) (time.Duration, error) {
	secs, err := host.UptimeWithContext(ctx)
	if err != nil {
		return 0, err
	}

	return time.Duration(secs) * time.Second, nil
}

func (gopsutilProvider) LoadAverage(
	ctx context.Context,
) (*LoadAverage, error) {
	avg, err := load.AvgWithContext(ctx)
	if err != nil {
		return nil, err
	}

	return &LoadAverage{Load1: avg.Load1, Load5: avg.Load5, Load15: avg.Load15}, nil
}

func (gopsutilProvider) Memory(
	ctx context.Context,
) (*Memory, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return nil, err
	}

	return &Memory{
		Total: uint64ToInt(vm.Total),
		Free:  uint64ToInt(vm.Available),
		Used:  uint64ToInt(vm.Used),
	}, nil
}

func (gopsutilProvider) Disk(
	ctx context.Context,
	path string,
) (*Disk, error) {
	usage, err := disk.UsageWithContext(ctx, path)
	if err != nil {
		return nil, err
	}

	return &Disk{
		Name:  usage.Path,
		Total: uint64ToInt(usage.Total),
		Used:  uint64ToInt(usage.Used),
		Free:  uint64ToInt(usage.Free),
	}, nil
}

// uint64ToInt convert uint64 to int, with overflow protection.
func uint64ToInt(
	value uint64,
) int {
	maxInt := int(^uint(0) >> 1)
	if value > uint64(maxInt) {
		return maxInt
	}
	return int(value)
}
