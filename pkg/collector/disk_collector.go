package collector

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/host-exporter/pkg/config"
	"github.com/host-exporter/pkg/logger"
	"github.com/host-exporter/pkg/metrics"
)

const DiskIOName = "disk_io"

// 虚拟块设备，不反映真实磁盘 IO
var ignoredDevicePrefixes = []string{"loop", "zram"}

// DiskIOCollector 各块设备读写字节数
type DiskIOCollector struct {
	src     DiskIOSource
	metrics *metrics.DiskIOMetrics
}

func NewDiskIOCollector(cfg config.MetricConfig, factory *metrics.MetricFactory, src DiskIOSource) (Collector, error) {
	if !cfg.Enabled {
		return NewNoOp(DiskIOName), nil
	}
	m, err := factory.NewDiskIOMetrics()
	if err != nil {
		return nil, err
	}
	return &DiskIOCollector{src: src, metrics: m}, nil
}

func (c *DiskIOCollector) Name() string { return DiskIOName }

func (c *DiskIOCollector) Families() []string {
	return []string{"system_disk_bytes_read_total", "system_disk_bytes_written_total"}
}

func (c *DiskIOCollector) Collect(ctx context.Context) error {
	stats, err := c.src.Read(ctx)
	if err != nil {
		return fmt.Errorf("collect %s: %w", DiskIOName, err)
	}
	for _, d := range stats.Devices {
		if !shouldCollectDevice(d.Device) {
			continue
		}
		c.metrics.BytesRead.Set(float64(d.BytesRead), d.Device)
		c.metrics.BytesWritten.Set(float64(d.BytesWritten), d.Device)
	}
	logger.Debug("collected disk io", zap.Int("devices", len(stats.Devices)))
	return nil
}

func shouldCollectDevice(name string) bool {
	for _, prefix := range ignoredDevicePrefixes {
		if strings.HasPrefix(name, prefix) {
			return false
		}
	}
	return true
}
