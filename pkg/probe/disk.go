package probe

import (
	"context"
	"fmt"
	"sort"

	"github.com/shirou/gopsutil/v3/disk"
)

// DiskIO 各块设备读写字节数（未过滤，过滤在采集器中完成）
type DiskIO struct {
	counters func(ctx context.Context, names ...string) (map[string]disk.IOCountersStat, error)
}

func NewDiskIO() *DiskIO {
	return &DiskIO{counters: disk.IOCountersWithContext}
}

func (p *DiskIO) Read(ctx context.Context) (DiskIOStats, error) {
	m, err := p.counters(ctx)
	if err != nil {
		return DiskIOStats{}, fmt.Errorf("%w: disk io counters: %v", ErrIO, err)
	}
	devices := make([]DeviceIOStats, 0, len(m))
	for name, c := range m {
		devices = append(devices, DeviceIOStats{
			Device:       name,
			BytesRead:    c.ReadBytes,
			BytesWritten: c.WriteBytes,
		})
	}
	sort.Slice(devices, func(i, j int) bool { return devices[i].Device < devices[j].Device })
	return DiskIOStats{Devices: devices}, nil
}
