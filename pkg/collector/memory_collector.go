package collector

import (
	"context"
	"fmt"

	"github.com/host-exporter/pkg/config"
	"github.com/host-exporter/pkg/metrics"
)

const (
	MemoryName = "memory"
	SwapName   = "swap"
)

// MemoryCollector 物理内存
type MemoryCollector struct {
	src     MemorySource
	metrics *metrics.MemoryMetrics
}

func NewMemoryCollector(cfg config.MetricConfig, factory *metrics.MetricFactory, src MemorySource) (Collector, error) {
	if !cfg.Enabled {
		return NewNoOp(MemoryName), nil
	}
	m, err := factory.NewMemoryMetrics()
	if err != nil {
		return nil, err
	}
	return &MemoryCollector{src: src, metrics: m}, nil
}

func (c *MemoryCollector) Name() string { return MemoryName }

func (c *MemoryCollector) Families() []string {
	return []string{
		"system_memory_total_bytes",
		"system_memory_used_bytes",
		"system_memory_free_bytes",
		"system_memory_available_bytes",
	}
}

func (c *MemoryCollector) Collect(ctx context.Context) error {
	stats, err := c.src.Read(ctx)
	if err != nil {
		return fmt.Errorf("collect %s: %w", MemoryName, err)
	}
	c.metrics.Total.Set(float64(stats.Total))
	c.metrics.Used.Set(float64(stats.Used))
	c.metrics.Free.Set(float64(stats.Free))
	c.metrics.Available.Set(float64(stats.Available))
	return nil
}

// SwapCollector 交换分区
type SwapCollector struct {
	src     SwapSource
	metrics *metrics.SwapMetrics
}

func NewSwapCollector(cfg config.MetricConfig, factory *metrics.MetricFactory, src SwapSource) (Collector, error) {
	if !cfg.Enabled {
		return NewNoOp(SwapName), nil
	}
	m, err := factory.NewSwapMetrics()
	if err != nil {
		return nil, err
	}
	return &SwapCollector{src: src, metrics: m}, nil
}

func (c *SwapCollector) Name() string { return SwapName }

func (c *SwapCollector) Families() []string {
	return []string{"system_swap_total_bytes", "system_swap_used_bytes", "system_swap_free_bytes"}
}

func (c *SwapCollector) Collect(ctx context.Context) error {
	stats, err := c.src.Read(ctx)
	if err != nil {
		return fmt.Errorf("collect %s: %w", SwapName, err)
	}
	c.metrics.Total.Set(float64(stats.Total))
	c.metrics.Used.Set(float64(stats.Used))
	c.metrics.Free.Set(float64(stats.Free))
	return nil
}
