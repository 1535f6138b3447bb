package probe

import (
	"context"
	"fmt"

	"github.com/shirou/gopsutil/v3/load"
)

// CPULoad 系统平均负载
type CPULoad struct {
	avg func(ctx context.Context) (*load.AvgStat, error)
}

func NewCPULoad() *CPULoad {
	return &CPULoad{avg: load.AvgWithContext}
}

func (p *CPULoad) Read(ctx context.Context) (LoadStats, error) {
	a, err := p.avg(ctx)
	if err != nil {
		return LoadStats{}, fmt.Errorf("%w: load average: %v", ErrIO, err)
	}
	return LoadStats{Load1: a.Load1, Load5: a.Load5, Load15: a.Load15}, nil
}
