package collector

import (
	"context"
	"fmt"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/host-exporter/pkg/config"
	"github.com/host-exporter/pkg/logger"
	"github.com/host-exporter/pkg/metrics"
	"github.com/host-exporter/pkg/snapshot"
)

const (
	CPUUsageName     = "cpu_usage"
	CPUModeName      = "cpu_mode"
	CPUFrequencyName = "cpu_frequency"
	CPULoadName      = "cpu_load"
)

// CPUUsageCollector 整体与单核使用率
type CPUUsageCollector struct {
	src     CPUUsageSource
	metrics *metrics.CPUUsageMetrics
}

// NewCPUUsageCollector 禁用时返回 NoOp，不注册任何指标
func NewCPUUsageCollector(cfg config.MetricConfig, factory *metrics.MetricFactory, src CPUUsageSource) (Collector, error) {
	if !cfg.Enabled {
		return NewNoOp(CPUUsageName), nil
	}
	m, err := factory.NewCPUUsageMetrics()
	if err != nil {
		return nil, err
	}
	return &CPUUsageCollector{src: src, metrics: m}, nil
}

func (c *CPUUsageCollector) Name() string { return CPUUsageName }

func (c *CPUUsageCollector) Families() []string {
	return []string{"system_cpu_usage_ratio", "system_cpu_core_usage_ratio"}
}

func (c *CPUUsageCollector) Collect(ctx context.Context) error {
	stats, err := c.src.Read(ctx)
	if err != nil {
		return fmt.Errorf("collect %s: %w", CPUUsageName, err)
	}
	c.metrics.Total.Set(stats.Total)
	for _, core := range stats.Cores {
		c.metrics.Cores.WithLabelValues(core.Core).Set(core.Value)
	}
	logger.Debug("collected cpu usage", zap.Float64("total", stats.Total), zap.Int("cores", len(stats.Cores)))
	return nil
}

// CPUModeCollector 按模式拆分的单核时间占比，与 CPUUsageCollector 共享快照
type CPUModeCollector struct {
	src   CPUModeSource
	ratio *prometheus.GaugeVec
}

func NewCPUModeCollector(cfg config.MetricConfig, factory *metrics.MetricFactory, src CPUModeSource) (Collector, error) {
	if !cfg.Enabled {
		return NewNoOp(CPUModeName), nil
	}
	g, err := factory.NewCPUModeRatio()
	if err != nil {
		return nil, err
	}
	return &CPUModeCollector{src: src, ratio: g}, nil
}

func (c *CPUModeCollector) Name() string       { return CPUModeName }
func (c *CPUModeCollector) Families() []string { return []string{"system_cpu_core_mode_ratio"} }

func (c *CPUModeCollector) Collect(ctx context.Context) error {
	stats, err := c.src.Read(ctx)
	if err != nil {
		return fmt.Errorf("collect %s: %w", CPUModeName, err)
	}
	for _, core := range stats.Cores {
		for _, mode := range snapshot.Modes {
			c.ratio.WithLabelValues(core.Core, mode).Set(core.Modes[mode])
		}
	}
	return nil
}

// CPUFrequencyCollector 单核当前频率
type CPUFrequencyCollector struct {
	src   CPUFrequencySource
	hertz *prometheus.GaugeVec
}

func NewCPUFrequencyCollector(cfg config.MetricConfig, factory *metrics.MetricFactory, src CPUFrequencySource) (Collector, error) {
	if !cfg.Enabled {
		return NewNoOp(CPUFrequencyName), nil
	}
	g, err := factory.NewCPUFrequencyHertz()
	if err != nil {
		return nil, err
	}
	return &CPUFrequencyCollector{src: src, hertz: g}, nil
}

func (c *CPUFrequencyCollector) Name() string       { return CPUFrequencyName }
func (c *CPUFrequencyCollector) Families() []string { return []string{"system_cpu_core_frequency_hertz"} }

func (c *CPUFrequencyCollector) Collect(ctx context.Context) error {
	stats, err := c.src.Read(ctx)
	if err != nil {
		return fmt.Errorf("collect %s: %w", CPUFrequencyName, err)
	}
	for i, hz := range stats.Cores {
		c.hertz.WithLabelValues(strconv.Itoa(i)).Set(float64(hz))
	}
	return nil
}

// CPULoadCollector 平均负载
type CPULoadCollector struct {
	src     CPULoadSource
	metrics *metrics.CPULoadMetrics
}

func NewCPULoadCollector(cfg config.MetricConfig, factory *metrics.MetricFactory, src CPULoadSource) (Collector, error) {
	if !cfg.Enabled {
		return NewNoOp(CPULoadName), nil
	}
	m, err := factory.NewCPULoadMetrics()
	if err != nil {
		return nil, err
	}
	return &CPULoadCollector{src: src, metrics: m}, nil
}

func (c *CPULoadCollector) Name() string { return CPULoadName }

func (c *CPULoadCollector) Families() []string {
	return []string{"system_cpu_load1", "system_cpu_load5", "system_cpu_load15"}
}

func (c *CPULoadCollector) Collect(ctx context.Context) error {
	stats, err := c.src.Read(ctx)
	if err != nil {
		return fmt.Errorf("collect %s: %w", CPULoadName, err)
	}
	c.metrics.Load1.Set(stats.Load1)
	c.metrics.Load5.Set(stats.Load5)
	c.metrics.Load15.Set(stats.Load15)
	logger.Debug("collected cpu load",
		zap.Float64("load1", stats.Load1),
		zap.Float64("load5", stats.Load5),
		zap.Float64("load15", stats.Load15))
	return nil
}
