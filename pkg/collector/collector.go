package collector

import (
	"context"

	"github.com/host-exporter/pkg/probe"
)

// Collector 采集器核心接口：一个采集器对应一个指标族
type Collector interface {
	Name() string                      // 指标族名称（唯一标识，如 cpu_usage）
	Families() []string                // 输出的指标名，scrape 失败时用于剔除
	Collect(ctx context.Context) error // 读取数据源并覆盖指标值
}

// NoOp 被禁用的指标族：不注册任何指标，Collect 立即返回
type NoOp struct {
	name string
}

func NewNoOp(name string) *NoOp {
	return &NoOp{name: name}
}

func (n *NoOp) Name() string                  { return n.name }
func (n *NoOp) Families() []string            { return nil }
func (n *NoOp) Collect(context.Context) error { return nil }

// IsNoOp 编排器据此决定是否跳过工作协程直接执行
func IsNoOp(c Collector) bool {
	_, ok := c.(*NoOp)
	return ok
}

// 数据源接口，由 probe 包实现，测试中替换为桩

type CPUUsageSource interface {
	Read(ctx context.Context) (probe.CPUUsageStats, error)
}

type CPUModeSource interface {
	Read(ctx context.Context) (probe.CPUModeStats, error)
}

type CPUFrequencySource interface {
	Read(ctx context.Context) (probe.FrequencyStats, error)
}

type CPULoadSource interface {
	Read(ctx context.Context) (probe.LoadStats, error)
}

type MemorySource interface {
	Read(ctx context.Context) (probe.MemoryStats, error)
}

type SwapSource interface {
	Read(ctx context.Context) (probe.SwapStats, error)
}

type DiskIOSource interface {
	Read(ctx context.Context) (probe.DiskIOStats, error)
}

type NetworkIOSource interface {
	Read(ctx context.Context) (probe.NetworkIOStats, error)
}
