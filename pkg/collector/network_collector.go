package collector

import (
	"context"
	"fmt"

	"github.com/host-exporter/pkg/config"
	"github.com/host-exporter/pkg/metrics"
)

const NetworkIOName = "network_io"

// NetworkIOCollector 各网卡收发计数
// watch 列表非空时只采集列出的网卡；否则排除 ignore 列表中的网卡
type NetworkIOCollector struct {
	src     NetworkIOSource
	metrics *metrics.NetworkIOMetrics
	watch   map[string]struct{}
	ignore  map[string]struct{}
}

func NewNetworkIOCollector(cfg config.NetworkConfig, factory *metrics.MetricFactory, src NetworkIOSource) (Collector, error) {
	if !cfg.Enabled {
		return NewNoOp(NetworkIOName), nil
	}
	m, err := factory.NewNetworkIOMetrics()
	if err != nil {
		return nil, err
	}
	return &NetworkIOCollector{
		src:     src,
		metrics: m,
		watch:   toSet(cfg.WatchInterfaces),
		ignore:  toSet(cfg.IgnoreInterfaces),
	}, nil
}

func (c *NetworkIOCollector) Name() string { return NetworkIOName }

func (c *NetworkIOCollector) Families() []string {
	return []string{
		"system_network_transmit_bytes_total",
		"system_network_receive_bytes_total",
		"system_network_transmit_packets_total",
		"system_network_receive_packets_total",
	}
}

func (c *NetworkIOCollector) Collect(ctx context.Context) error {
	stats, err := c.src.Read(ctx)
	if err != nil {
		return fmt.Errorf("collect %s: %w", NetworkIOName, err)
	}
	for _, i := range stats.Interfaces {
		if !c.shouldCollect(i.Interface) {
			continue
		}
		c.metrics.TransmitBytes.Set(float64(i.BytesSent), i.Interface)
		c.metrics.ReceiveBytes.Set(float64(i.BytesReceived), i.Interface)
		c.metrics.TransmitPackets.Set(float64(i.PacketsSent), i.Interface)
		c.metrics.ReceivePackets.Set(float64(i.PacketsReceived), i.Interface)
	}
	return nil
}

func (c *NetworkIOCollector) shouldCollect(name string) bool {
	if len(c.watch) > 0 {
		_, ok := c.watch[name]
		return ok
	}
	_, ignored := c.ignore[name]
	return !ignored
}

func toSet(list []string) map[string]struct{} {
	set := make(map[string]struct{}, len(list))
	for _, s := range list {
		set[s] = struct{}{}
	}
	return set
}
