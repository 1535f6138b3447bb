package registers

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/host-exporter/pkg/collector"
	"github.com/host-exporter/pkg/config"
	"github.com/host-exporter/pkg/logger"
	"github.com/host-exporter/pkg/metrics"
	"github.com/host-exporter/pkg/probe"
	"github.com/host-exporter/pkg/snapshot"
)

// Sources 各指标族的数据源，测试中可整体替换
type Sources struct {
	CPUUsage     collector.CPUUsageSource
	CPUMode      collector.CPUModeSource
	CPUFrequency collector.CPUFrequencySource
	CPULoad      collector.CPULoadSource
	Memory       collector.MemorySource
	Swap         collector.SwapSource
	DiskIO       collector.DiskIOSource
	NetworkIO    collector.NetworkIOSource
}

// DefaultSources 读取本机数据；两个 CPU 指标族共用同一份快照
func DefaultSources(cfg *config.Config) Sources {
	snap := snapshot.NewCPU(cfg.Monitor.MinRefreshInterval)
	return Sources{
		CPUUsage:     probe.NewCPUUsage(snap),
		CPUMode:      probe.NewCPUMode(snap),
		CPUFrequency: probe.NewCPUFrequency(nil, probe.DefaultSysfsRoot),
		CPULoad:      probe.NewCPULoad(),
		Memory:       probe.NewMemory(),
		Swap:         probe.NewSwap(),
		DiskIO:       probe.NewDiskIO(),
		NetworkIO:    probe.NewNetworkIO(),
	}
}

// Assembly InitPromRegistry 的结果
// Registry    Prometheus 注册器，scrape 时 Gather
// Collectors  所有指标族的采集器（禁用的为 NoOp），顺序固定
// Agent       exporter 自身指标，agent 指标族禁用时为 nil
type Assembly struct {
	Registry   *prometheus.Registry
	Collectors []collector.Collector
	Agent      *metrics.AgentMetrics
}

// Module 一个指标族的注册项
type Module struct {
	Enabled bool
	Name    string
	NewFunc func() (collector.Collector, error)
}

// InitPromRegistry 创建注册器（不含 Go 运行时指标）并注册全部指标族，任何注册失败都返回 ErrRegistration
func InitPromRegistry(cfg *config.Config, src Sources) (*Assembly, error) {
	promReg := prometheus.NewRegistry()
	factory := metrics.NewMetricFactory(metrics.NewPromRegistry(promReg))

	if cfg.Monitor.Collectors.Process.Enabled {
		if err := factory.Registry().Register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{})); err != nil {
			return nil, fmt.Errorf("register process collector: %w", err)
		}
	}

	var agent *metrics.AgentMetrics
	if cfg.Monitor.Collectors.Agent.Enabled {
		var err error
		if agent, err = factory.NewAgentMetrics(); err != nil {
			return nil, err
		}
	}

	list, err := RegisterCollectors(cfg, factory, src)
	if err != nil {
		logger.Error("failed to register collectors", zap.Error(err))
		return nil, err
	}

	return &Assembly{Registry: promReg, Collectors: list, Agent: agent}, nil
}

// RegisterCollectors 采集器注册统一入口
// 新增指标族只需在 modules 列表添加一条；禁用的指标族得到 NoOp，列表保持同构
func RegisterCollectors(cfg *config.Config, factory *metrics.MetricFactory, src Sources) ([]collector.Collector, error) {
	c := cfg.Monitor.Collectors
	modules := []Module{
		{
			Enabled: c.CPUUsage.Enabled,
			Name:    collector.CPUUsageName,
			NewFunc: func() (collector.Collector, error) {
				return collector.NewCPUUsageCollector(c.CPUUsage, factory, src.CPUUsage)
			},
		},
		{
			Enabled: c.CPUMode.Enabled,
			Name:    collector.CPUModeName,
			NewFunc: func() (collector.Collector, error) {
				return collector.NewCPUModeCollector(c.CPUMode, factory, src.CPUMode)
			},
		},
		{
			Enabled: c.CPUFrequency.Enabled,
			Name:    collector.CPUFrequencyName,
			NewFunc: func() (collector.Collector, error) {
				return collector.NewCPUFrequencyCollector(c.CPUFrequency, factory, src.CPUFrequency)
			},
		},
		{
			Enabled: c.CPULoad.Enabled,
			Name:    collector.CPULoadName,
			NewFunc: func() (collector.Collector, error) {
				return collector.NewCPULoadCollector(c.CPULoad, factory, src.CPULoad)
			},
		},
		{
			Enabled: c.Memory.Enabled,
			Name:    collector.MemoryName,
			NewFunc: func() (collector.Collector, error) {
				return collector.NewMemoryCollector(c.Memory, factory, src.Memory)
			},
		},
		{
			Enabled: c.Swap.Enabled,
			Name:    collector.SwapName,
			NewFunc: func() (collector.Collector, error) {
				return collector.NewSwapCollector(c.Swap, factory, src.Swap)
			},
		},
		{
			Enabled: c.DiskIO.Enabled,
			Name:    collector.DiskIOName,
			NewFunc: func() (collector.Collector, error) {
				return collector.NewDiskIOCollector(c.DiskIO, factory, src.DiskIO)
			},
		},
		{
			Enabled: c.NetworkIO.Enabled,
			Name:    collector.NetworkIOName,
			NewFunc: func() (collector.Collector, error) {
				return collector.NewNetworkIOCollector(c.NetworkIO, factory, src.NetworkIO)
			},
		},
	}

	registered := make([]collector.Collector, 0, len(modules))
	var enabled []string
	for _, m := range modules {
		coll, err := m.NewFunc()
		if err != nil {
			return nil, fmt.Errorf("collector %s: %w", m.Name, err)
		}
		registered = append(registered, coll)
		if m.Enabled {
			enabled = append(enabled, m.Name)
			logger.Debug("registered collector", zap.String("name", m.Name))
		} else {
			logger.Debug("collector disabled", zap.String("name", m.Name))
		}
	}
	logger.Info("collectors registered", zap.Strings("enabled_collectors", enabled))
	return registered, nil
}
