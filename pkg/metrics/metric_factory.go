package metrics

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// MetricFactory 指标工厂，统一创建并注册指标（gauge/counter/histogram）。
// 同名指标只能注册一次，第二次返回 ErrRegistration。
type MetricFactory struct {
	reg Registers
}

// NewMetricFactory 创建指标工厂
func NewMetricFactory(reg Registers) *MetricFactory {
	return &MetricFactory{reg: reg}
}

// Registry 返回底层注册器（scrape 时 Gather 使用）
func (m *MetricFactory) Registry() Registers {
	return m.reg
}

// register 注册单个指标，错误中带上指标名方便排查
func register[T prometheus.Collector](m *MetricFactory, name string, c T) (T, error) {
	if err := m.reg.Register(c); err != nil {
		var zero T
		if !errors.Is(err, ErrRegistration) {
			err = fmt.Errorf("%w: %v", ErrRegistration, err)
		}
		return zero, fmt.Errorf("register %s: %w", name, err)
	}
	return c, nil
}

func (m *MetricFactory) newGauge(name, help string) (prometheus.Gauge, error) {
	return register(m, name, prometheus.NewGauge(prometheus.GaugeOpts{Name: name, Help: help}))
}

func (m *MetricFactory) newGaugeVec(name, help string, labels ...string) (*prometheus.GaugeVec, error) {
	return register(m, name, prometheus.NewGaugeVec(prometheus.GaugeOpts{Name: name, Help: help}, labels))
}

func (m *MetricFactory) newCumulativeVec(name, help string, labels ...string) (*CumulativeVec, error) {
	return register(m, name, NewCumulativeVec(name, help, labels...))
}
