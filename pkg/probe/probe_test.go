package probe

import (
	"context"
	"errors"
	"testing"

	"github.com/jonboulle/clockwork"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/load"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/net"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/host-exporter/pkg/snapshot"
)

var errOS = errors.New("operation not permitted")

func TestMemoryAndSwap(t *testing.T) {
	m := &Memory{virtual: func(context.Context) (*mem.VirtualMemoryStat, error) {
		return &mem.VirtualMemoryStat{Total: 16, Used: 6, Free: 4, Available: 10}, nil
	}}
	stats, err := m.Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, MemoryStats{Total: 16, Used: 6, Free: 4, Available: 10}, stats)

	s := &Swap{swap: func(context.Context) (*mem.SwapMemoryStat, error) {
		return &mem.SwapMemoryStat{Total: 8, Used: 1, Free: 7}, nil
	}}
	sw, err := s.Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, SwapStats{Total: 8, Used: 1, Free: 7}, sw)

	m.virtual = func(context.Context) (*mem.VirtualMemoryStat, error) { return nil, errOS }
	_, err = m.Read(context.Background())
	assert.ErrorIs(t, err, ErrIO)
}

func TestCPULoad(t *testing.T) {
	p := &CPULoad{avg: func(context.Context) (*load.AvgStat, error) {
		return &load.AvgStat{Load1: 0.5, Load5: 1.5, Load15: 2.5}, nil
	}}
	stats, err := p.Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, LoadStats{Load1: 0.5, Load5: 1.5, Load15: 2.5}, stats)

	p.avg = func(context.Context) (*load.AvgStat, error) { return nil, errOS }
	_, err = p.Read(context.Background())
	assert.ErrorIs(t, err, ErrIO)
}

func TestDiskIOSortedByDevice(t *testing.T) {
	p := &DiskIO{counters: func(context.Context, ...string) (map[string]disk.IOCountersStat, error) {
		return map[string]disk.IOCountersStat{
			"sdb":   {Name: "sdb", ReadBytes: 3, WriteBytes: 4},
			"loop0": {Name: "loop0", ReadBytes: 9, WriteBytes: 9},
			"sda":   {Name: "sda", ReadBytes: 1, WriteBytes: 2},
		}, nil
	}}
	stats, err := p.Read(context.Background())
	require.NoError(t, err)
	require.Len(t, stats.Devices, 3)
	assert.Equal(t, "loop0", stats.Devices[0].Device)
	assert.Equal(t, DeviceIOStats{Device: "sda", BytesRead: 1, BytesWritten: 2}, stats.Devices[1])
	assert.Equal(t, "sdb", stats.Devices[2].Device)

	p.counters = func(context.Context, ...string) (map[string]disk.IOCountersStat, error) { return nil, errOS }
	_, err = p.Read(context.Background())
	assert.ErrorIs(t, err, ErrIO)
}

func TestNetworkIO(t *testing.T) {
	p := &NetworkIO{counters: func(_ context.Context, pernic bool) ([]net.IOCountersStat, error) {
		assert.True(t, pernic)
		return []net.IOCountersStat{
			{Name: "lo", BytesSent: 5, BytesRecv: 5, PacketsSent: 1, PacketsRecv: 1},
			{Name: "eth0", BytesSent: 100, BytesRecv: 200, PacketsSent: 10, PacketsRecv: 20},
		}, nil
	}}
	stats, err := p.Read(context.Background())
	require.NoError(t, err)
	require.Len(t, stats.Interfaces, 2)
	assert.Equal(t, InterfaceStats{
		Interface: "eth0", BytesSent: 100, BytesReceived: 200, PacketsSent: 10, PacketsReceived: 20,
	}, stats.Interfaces[0])
	assert.Equal(t, "lo", stats.Interfaces[1].Interface)
}

func TestCPUUsageAndModeShareSnapshot(t *testing.T) {
	calls := 0
	snap := snapshot.NewCPU(snapshot.DefaultMinInterval,
		snapshot.WithClock(clockwork.NewFakeClock()),
		snapshot.WithTimesFunc(func(context.Context) ([]cpu.TimesStat, error) {
			calls++
			return []cpu.TimesStat{{CPU: "cpu0", User: 25, Idle: 75}}, nil
		}))

	usage, err := NewCPUUsage(snap).Read(context.Background())
	require.NoError(t, err)
	modes, err := NewCPUMode(snap).Read(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
	assert.InDelta(t, 0.25, usage.Total, 1e-9)
	require.Len(t, usage.Cores, 1)
	assert.Equal(t, "0", usage.Cores[0].Core)
	assert.InDelta(t, 0.75, modes.Cores[0].Modes["idle"], 1e-9)
}

func TestCPUUsageSnapshotError(t *testing.T) {
	snap := snapshot.NewCPU(0, snapshot.WithTimesFunc(func(context.Context) ([]cpu.TimesStat, error) {
		return nil, errOS
	}))
	_, err := NewCPUUsage(snap).Read(context.Background())
	assert.ErrorIs(t, err, snapshot.ErrSnapshotUnavailable)
}
