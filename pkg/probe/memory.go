package probe

import (
	"context"
	"fmt"

	"github.com/shirou/gopsutil/v3/mem"
)

// Memory 物理内存
type Memory struct {
	virtual func(ctx context.Context) (*mem.VirtualMemoryStat, error)
}

func NewMemory() *Memory {
	return &Memory{virtual: mem.VirtualMemoryWithContext}
}

func (p *Memory) Read(ctx context.Context) (MemoryStats, error) {
	v, err := p.virtual(ctx)
	if err != nil {
		return MemoryStats{}, fmt.Errorf("%w: virtual memory: %v", ErrIO, err)
	}
	return MemoryStats{
		Total:     v.Total,
		Used:      v.Used,
		Free:      v.Free,
		Available: v.Available,
	}, nil
}

// Swap 交换分区
type Swap struct {
	swap func(ctx context.Context) (*mem.SwapMemoryStat, error)
}

func NewSwap() *Swap {
	return &Swap{swap: mem.SwapMemoryWithContext}
}

func (p *Swap) Read(ctx context.Context) (SwapStats, error) {
	s, err := p.swap(ctx)
	if err != nil {
		return SwapStats{}, fmt.Errorf("%w: swap memory: %v", ErrIO, err)
	}
	return SwapStats{Total: s.Total, Used: s.Used, Free: s.Free}, nil
}
