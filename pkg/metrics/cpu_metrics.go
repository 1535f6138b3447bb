package metrics

import "github.com/prometheus/client_golang/prometheus"

// CPUUsageMetrics 整体与单核使用率
type CPUUsageMetrics struct {
	Total prometheus.Gauge
	Cores *prometheus.GaugeVec
}

// NewCPUUsageMetrics 指标：system_cpu_usage_ratio / system_cpu_core_usage_ratio{core}
func (m *MetricFactory) NewCPUUsageMetrics() (*CPUUsageMetrics, error) {
	total, err := m.newGauge("system_cpu_usage_ratio", "Overall CPU usage ratio (0-1) since the previous refresh")
	if err != nil {
		return nil, err
	}
	cores, err := m.newGaugeVec("system_cpu_core_usage_ratio", "Per-core CPU usage ratio (0-1) since the previous refresh", "core")
	if err != nil {
		return nil, err
	}
	return &CPUUsageMetrics{Total: total, Cores: cores}, nil
}

// NewCPUModeRatio 按模式（user, system, idle, iowait 等）划分的单核时间占比
func (m *MetricFactory) NewCPUModeRatio() (*prometheus.GaugeVec, error) {
	return m.newGaugeVec("system_cpu_core_mode_ratio", "Per-core share of CPU time spent in each mode (0-1)", "core", "mode")
}

// NewCPUFrequencyHertz 单核当前频率
func (m *MetricFactory) NewCPUFrequencyHertz() (*prometheus.GaugeVec, error) {
	return m.newGaugeVec("system_cpu_core_frequency_hertz", "Current per-core CPU frequency in hertz", "core")
}

// CPULoadMetrics 1/5/15 分钟平均负载
type CPULoadMetrics struct {
	Load1  prometheus.Gauge
	Load5  prometheus.Gauge
	Load15 prometheus.Gauge
}

func (m *MetricFactory) NewCPULoadMetrics() (*CPULoadMetrics, error) {
	var (
		lm  CPULoadMetrics
		err error
	)
	if lm.Load1, err = m.newGauge("system_cpu_load1", "1 minute load average"); err != nil {
		return nil, err
	}
	if lm.Load5, err = m.newGauge("system_cpu_load5", "5 minute load average"); err != nil {
		return nil, err
	}
	if lm.Load15, err = m.newGauge("system_cpu_load15", "15 minute load average"); err != nil {
		return nil, err
	}
	return &lm, nil
}
