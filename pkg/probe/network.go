package probe

import (
	"context"
	"fmt"
	"sort"

	"github.com/shirou/gopsutil/v3/net"
)

// NetworkIO 各网卡收发计数（未过滤）
type NetworkIO struct {
	counters func(ctx context.Context, pernic bool) ([]net.IOCountersStat, error)
}

func NewNetworkIO() *NetworkIO {
	return &NetworkIO{counters: net.IOCountersWithContext}
}

func (p *NetworkIO) Read(ctx context.Context) (NetworkIOStats, error) {
	list, err := p.counters(ctx, true)
	if err != nil {
		return NetworkIOStats{}, fmt.Errorf("%w: network io counters: %v", ErrIO, err)
	}
	ifaces := make([]InterfaceStats, 0, len(list))
	for _, c := range list {
		ifaces = append(ifaces, InterfaceStats{
			Interface:       c.Name,
			BytesSent:       c.BytesSent,
			BytesReceived:   c.BytesRecv,
			PacketsSent:     c.PacketsSent,
			PacketsReceived: c.PacketsRecv,
		})
	}
	sort.Slice(ifaces, func(i, j int) bool { return ifaces[i].Interface < ifaces[j].Interface })
	return NetworkIOStats{Interfaces: ifaces}, nil
}
