package metrics

import "github.com/prometheus/client_golang/prometheus"

// AgentMetrics exporter 自身指标
type AgentMetrics struct {
	CollectDuration *prometheus.HistogramVec
	CollectErrors   *prometheus.CounterVec
	HTTPDuration    *prometheus.HistogramVec
}

// NewAgentMetrics 创建 exporter 自身监控指标
//
// exporter_collect_duration_seconds{collector}：Histogram，每个采集器单次采集耗时（秒）
// 分桶 0.001s ~ 2.048s，覆盖读取 /proc、/sys 的常见耗时
//
// exporter_collect_errors_total{collector}：Counter，采集失败累计次数，重启后归零
//
// exporter_http_request_duration_seconds{handler,code}：Histogram，HTTP 请求耗时，
// 由 promhttp.InstrumentHandlerDuration 填充
func (m *MetricFactory) NewAgentMetrics() (*AgentMetrics, error) {
	duration, err := register(m, "exporter_collect_duration_seconds", prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "exporter_collect_duration_seconds",
		Help:    "Duration of a single collector run in seconds",
		Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
	}, []string{"collector"}))
	if err != nil {
		return nil, err
	}
	errs, err := register(m, "exporter_collect_errors_total", prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "exporter_collect_errors_total",
		Help: "Total number of failed collector runs",
	}, []string{"collector"}))
	if err != nil {
		return nil, err
	}
	httpDuration, err := register(m, "exporter_http_request_duration_seconds", prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "exporter_http_request_duration_seconds",
		Help:    "Duration of HTTP requests served by the exporter",
		Buckets: prometheus.DefBuckets,
	}, []string{"handler", "code"}))
	if err != nil {
		return nil, err
	}
	return &AgentMetrics{CollectDuration: duration, CollectErrors: errs, HTTPDuration: httpDuration}, nil
}

// ObserveCollect 记录一次采集的耗时与结果
func (a *AgentMetrics) ObserveCollect(collector string, seconds float64, err error) {
	if a == nil {
		return
	}
	a.CollectDuration.WithLabelValues(collector).Observe(seconds)
	if err != nil {
		a.CollectErrors.WithLabelValues(collector).Inc()
	}
}
