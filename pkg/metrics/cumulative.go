package metrics

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// CumulativeVec 暴露操作系统维护的累计计数（磁盘/网卡字节数等）。
// 计数由内核累加，这里只保存最近一次观测到的绝对值，并以 counter 类型输出。
type CumulativeVec struct {
	desc   *prometheus.Desc
	labels int

	mu      sync.Mutex
	samples map[string]cumulativeSample
}

type cumulativeSample struct {
	labelValues []string
	value       float64
}

// NewCumulativeVec 创建累计计数指标；需要通过 Registers 注册后才会输出
func NewCumulativeVec(name, help string, labels ...string) *CumulativeVec {
	return &CumulativeVec{
		desc:    prometheus.NewDesc(name, help, labels, nil),
		labels:  len(labels),
		samples: make(map[string]cumulativeSample),
	}
}

// Set 覆盖某组标签的累计值；标签数量不符时 panic（与 WithLabelValues 行为一致）
func (v *CumulativeVec) Set(value float64, labelValues ...string) {
	if len(labelValues) != v.labels {
		panic(fmt.Sprintf("cumulative vec %s: expected %d label values, got %d", v.desc, v.labels, len(labelValues)))
	}
	key := strings.Join(labelValues, "\xff")
	v.mu.Lock()
	defer v.mu.Unlock()
	v.samples[key] = cumulativeSample{
		labelValues: append([]string(nil), labelValues...),
		value:       value,
	}
}

// Describe 实现 prometheus.Collector
func (v *CumulativeVec) Describe(ch chan<- *prometheus.Desc) {
	ch <- v.desc
}

// Collect 实现 prometheus.Collector，按标签排序输出
func (v *CumulativeVec) Collect(ch chan<- prometheus.Metric) {
	v.mu.Lock()
	keys := make([]string, 0, len(v.samples))
	for k := range v.samples {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	samples := make([]cumulativeSample, 0, len(keys))
	for _, k := range keys {
		samples = append(samples, v.samples[k])
	}
	v.mu.Unlock()

	for _, s := range samples {
		m, err := prometheus.NewConstMetric(v.desc, prometheus.CounterValue, s.value, s.labelValues...)
		if err != nil {
			m = prometheus.NewInvalidMetric(v.desc, err)
		}
		ch <- m
	}
}
