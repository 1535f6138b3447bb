package metrics

import "github.com/prometheus/client_golang/prometheus"

// MemoryMetrics 物理内存（字节）
type MemoryMetrics struct {
	Total     prometheus.Gauge
	Used      prometheus.Gauge
	Free      prometheus.Gauge
	Available prometheus.Gauge
}

func (m *MetricFactory) NewMemoryMetrics() (*MemoryMetrics, error) {
	var (
		mm  MemoryMetrics
		err error
	)
	if mm.Total, err = m.newGauge("system_memory_total_bytes", "Total physical memory in bytes"); err != nil {
		return nil, err
	}
	if mm.Used, err = m.newGauge("system_memory_used_bytes", "Used physical memory in bytes"); err != nil {
		return nil, err
	}
	if mm.Free, err = m.newGauge("system_memory_free_bytes", "Free physical memory in bytes"); err != nil {
		return nil, err
	}
	if mm.Available, err = m.newGauge("system_memory_available_bytes", "Physical memory available for new allocations in bytes"); err != nil {
		return nil, err
	}
	return &mm, nil
}

// SwapMetrics 交换分区（字节）
type SwapMetrics struct {
	Total prometheus.Gauge
	Used  prometheus.Gauge
	Free  prometheus.Gauge
}

func (m *MetricFactory) NewSwapMetrics() (*SwapMetrics, error) {
	var (
		sm  SwapMetrics
		err error
	)
	if sm.Total, err = m.newGauge("system_swap_total_bytes", "Total swap space in bytes"); err != nil {
		return nil, err
	}
	if sm.Used, err = m.newGauge("system_swap_used_bytes", "Used swap space in bytes"); err != nil {
		return nil, err
	}
	if sm.Free, err = m.newGauge("system_swap_free_bytes", "Free swap space in bytes"); err != nil {
		return nil, err
	}
	return &sm, nil
}
