// Package scrape 执行一次完整的采集：并发运行采集器、收集注册器、编码为文本格式。
package scrape

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/host-exporter/pkg/collector"
	"github.com/host-exporter/pkg/logger"
)

// ErrScrapeFailed fail_fast 模式下任一采集器失败
var ErrScrapeFailed = errors.New("scrape failed")

const defaultWorkers = 4

// Observer 记录每个采集器的耗时与结果（metrics.AgentMetrics 实现）
type Observer interface {
	ObserveCollect(collector string, seconds float64, err error)
}

// Scraper 持有固定的采集器列表，可被多个 HTTP 请求并发调用
type Scraper struct {
	gatherer   prometheus.Gatherer
	collectors []collector.Collector
	workers    int
	failFast   bool
	observer   Observer
	format     expfmt.Format
}

type Option func(*Scraper)

// WithWorkers 阻塞型采集器的并发上限
func WithWorkers(n int) Option {
	return func(s *Scraper) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithFailFast true 时任一采集器失败则整个 scrape 失败
func WithFailFast(failFast bool) Option {
	return func(s *Scraper) { s.failFast = failFast }
}

// WithObserver 传入 nil 接口值时不记录
func WithObserver(o Observer) Option {
	return func(s *Scraper) { s.observer = o }
}

func New(gatherer prometheus.Gatherer, collectors []collector.Collector, opts ...Option) *Scraper {
	s := &Scraper{
		gatherer:   gatherer,
		collectors: collectors,
		workers:    defaultWorkers,
		format:     expfmt.NewFormat(expfmt.TypeTextPlain),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ContentType /metrics 响应头
func (s *Scraper) ContentType() string {
	return string(s.format)
}

// Scrape 运行所有采集器后编码注册器中的全部指标。
// 请求被取消不会中断已开始的 scrape。
func (s *Scraper) Scrape(ctx context.Context) ([]byte, error) {
	ctx = context.WithoutCancel(ctx)
	start := time.Now()

	failed := s.runCollectors(ctx)
	if len(failed) > 0 && s.failFast {
		errs := make([]error, 0, len(failed))
		for _, c := range s.collectors {
			if err, ok := failed[c.Name()]; ok {
				errs = append(errs, err)
			}
		}
		return nil, fmt.Errorf("%w: %w", ErrScrapeFailed, errors.Join(errs...))
	}

	families, err := s.gatherer.Gather()
	if err != nil {
		if s.failFast || len(families) == 0 {
			return nil, fmt.Errorf("%w: gather: %w", ErrScrapeFailed, err)
		}
		logger.Warn("gather returned partial result", zap.Error(err))
	}
	families = s.dropFailed(families, failed)

	var buf bytes.Buffer
	enc := expfmt.NewEncoder(&buf, s.format)
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return nil, fmt.Errorf("%w: encode %s: %w", ErrScrapeFailed, mf.GetName(), err)
		}
	}

	logger.Debug("scrape finished",
		zap.Int("families", len(families)),
		zap.Int("failed_collectors", len(failed)),
		zap.Duration("elapsed", time.Since(start)))
	return buf.Bytes(), nil
}

// runCollectors NoOp 直接在当前协程执行，其余交给有上限的工作池；返回失败的采集器
func (s *Scraper) runCollectors(ctx context.Context) map[string]error {
	var (
		mu     sync.Mutex
		failed = make(map[string]error)
		g      errgroup.Group
	)
	g.SetLimit(s.workers)

	for _, c := range s.collectors {
		if collector.IsNoOp(c) {
			_ = c.Collect(ctx)
			continue
		}
		g.Go(func() error {
			if err := s.collectOne(ctx, c); err != nil {
				mu.Lock()
				failed[c.Name()] = err
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()
	return failed
}

func (s *Scraper) collectOne(ctx context.Context, c collector.Collector) (err error) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("collector %s panicked: %v", c.Name(), r)
		}
		if s.observer != nil {
			s.observer.ObserveCollect(c.Name(), time.Since(start).Seconds(), err)
		}
		if err != nil {
			logger.Warn("collection failed", zap.String("name", c.Name()), zap.Error(err))
		}
	}()
	return c.Collect(ctx)
}

// dropFailed 剔除失败采集器的指标族，避免输出上一次的旧值
func (s *Scraper) dropFailed(families []*dto.MetricFamily, failed map[string]error) []*dto.MetricFamily {
	if len(failed) == 0 {
		return families
	}
	drop := make(map[string]struct{})
	for _, c := range s.collectors {
		if _, ok := failed[c.Name()]; !ok {
			continue
		}
		for _, name := range c.Families() {
			drop[name] = struct{}{}
		}
	}
	kept := families[:0]
	for _, mf := range families {
		if _, ok := drop[mf.GetName()]; !ok {
			kept = append(kept, mf)
		}
	}
	return kept
}
