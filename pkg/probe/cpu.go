package probe

import (
	"context"

	"github.com/host-exporter/pkg/snapshot"
)

// CPUUsage 从共享快照读取整体与单核使用率
type CPUUsage struct {
	snap *snapshot.CPU
}

func NewCPUUsage(snap *snapshot.CPU) *CPUUsage {
	return &CPUUsage{snap: snap}
}

// Read 快照过期时刷新，随后读取；刷新失败返回 snapshot.ErrSnapshotUnavailable
func (p *CPUUsage) Read(ctx context.Context) (CPUUsageStats, error) {
	s, err := p.snap.Load(ctx)
	if err != nil {
		return CPUUsageStats{}, err
	}
	stats := CPUUsageStats{
		Total: s.Total.Usage,
		Cores: make([]CoreRatio, 0, len(s.Cores)),
	}
	for _, c := range s.Cores {
		stats.Cores = append(stats.Cores, CoreRatio{Core: c.Core, Value: c.Usage})
	}
	return stats, nil
}

// CPUMode 与 CPUUsage 共享同一份快照
type CPUMode struct {
	snap *snapshot.CPU
}

func NewCPUMode(snap *snapshot.CPU) *CPUMode {
	return &CPUMode{snap: snap}
}

func (p *CPUMode) Read(ctx context.Context) (CPUModeStats, error) {
	s, err := p.snap.Load(ctx)
	if err != nil {
		return CPUModeStats{}, err
	}
	stats := CPUModeStats{Cores: make([]CoreModes, 0, len(s.Cores))}
	for _, c := range s.Cores {
		stats.Cores = append(stats.Cores, CoreModes{Core: c.Core, Modes: c.Modes})
	}
	return stats, nil
}
