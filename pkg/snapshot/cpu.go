// Package snapshot 提供进程内共享、限频刷新的 CPU 计数器快照。
//
// 多个采集器（整体/单核使用率、按模式使用率）读取同一份快照，
// 同一刷新窗口内的所有读者看到完全相同的数据，且不会重复触发系统调用。
package snapshot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/shirou/gopsutil/v3/cpu"
)

// ErrSnapshotUnavailable 快照无法读取（系统调用失败或刷新过程 panic）
var ErrSnapshotUnavailable = errors.New("cpu snapshot unavailable")

// DefaultMinInterval 两次真实刷新之间的最小间隔
const DefaultMinInterval = 200 * time.Millisecond

// Modes 按模式拆分的 CPU 时间，顺序即暴露顺序
var Modes = []string{"user", "nice", "system", "idle", "iowait", "irq", "softirq", "steal"}

// TimesFunc 读取单核 CPU 累计时间（默认 gopsutil cpu.TimesWithContext(ctx, true)）
type TimesFunc func(ctx context.Context) ([]cpu.TimesStat, error)

// CoreUsage 单核（或整体）在两次刷新之间的使用情况
type CoreUsage struct {
	Core  string             // 核心序号，"0"、"1"...
	Usage float64            // 非空闲时间占比 [0,1]
	Modes map[string]float64 // 各模式时间占比 [0,1]
}

// Snapshot 一次刷新得到的只读数据
type Snapshot struct {
	Total       CoreUsage
	Cores       []CoreUsage
	RefreshedAt time.Time
}

// CPU 共享的 CPU 快照缓存，所有访问都经过同一把互斥锁
type CPU struct {
	mu          sync.Mutex
	clock       clockwork.Clock
	minInterval time.Duration
	readTimes   TimesFunc

	prev        []cpu.TimesStat
	current     Snapshot
	refreshedAt time.Time
	refreshes   uint64
}

// Option 快照配置项
type Option func(*CPU)

// WithClock 注入时钟（测试用 clockwork.NewFakeClock）
func WithClock(c clockwork.Clock) Option {
	return func(s *CPU) { s.clock = c }
}

// WithTimesFunc 替换底层读取函数
func WithTimesFunc(f TimesFunc) Option {
	return func(s *CPU) { s.readTimes = f }
}

// NewCPU 创建快照缓存；首次读取时才真正访问系统
func NewCPU(minInterval time.Duration, opts ...Option) *CPU {
	if minInterval < 0 {
		minInterval = DefaultMinInterval
	}
	s := &CPU{
		clock:       clockwork.NewRealClock(),
		minInterval: minInterval,
		readTimes: func(ctx context.Context) ([]cpu.TimesStat, error) {
			return cpu.TimesWithContext(ctx, true)
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RefreshIfStale 距上次刷新超过最小间隔时重新读取系统计数器，否则什么也不做
func (s *CPU) RefreshIfStale(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refreshLocked(ctx)
}

// Read 返回最近一次刷新的数据副本
func (s *CPU) Read() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.clone()
}

// Load 在同一次加锁内完成按需刷新与读取
func (s *CPU) Load(ctx context.Context) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.refreshLocked(ctx); err != nil {
		return Snapshot{}, err
	}
	return s.current.clone(), nil
}

// Refreshes 返回真实刷新次数
func (s *CPU) Refreshes() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refreshes
}

func (s *CPU) stale() bool {
	return s.refreshedAt.IsZero() || s.clock.Since(s.refreshedAt) > s.minInterval
}

func (s *CPU) refreshLocked(ctx context.Context) (err error) {
	if !s.stale() {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: refresh panicked: %v", ErrSnapshotUnavailable, r)
		}
	}()

	times, err := s.readTimes(ctx)
	if err != nil {
		return fmt.Errorf("%w: read cpu times: %v", ErrSnapshotUnavailable, err)
	}
	if len(times) == 0 {
		return fmt.Errorf("%w: no cpu times reported", ErrSnapshotUnavailable)
	}

	now := s.clock.Now()
	s.current = derive(s.prev, times, now)
	s.prev = times
	s.refreshedAt = now
	s.refreshes++
	return nil
}

// derive 按两次读数的差值计算使用率；首次刷新以开机以来的累计值为基准
func derive(prev, cur []cpu.TimesStat, now time.Time) Snapshot {
	snap := Snapshot{
		Cores:       make([]CoreUsage, 0, len(cur)),
		RefreshedAt: now,
	}
	var totalDelta, totalIdle float64
	totalModes := make(map[string]float64, len(Modes))

	// 按内核 CPU 名对齐上一次读数，离线核心不会让后续核心错位
	last := make(map[string]cpu.TimesStat, len(prev))
	for _, p := range prev {
		last[p.CPU] = p
	}

	for _, t := range cur {
		deltas := modeDeltas(last[t.CPU], t)
		// 计数器回绕或核心热插拔时退回累计值
		if sum(deltas) <= 0 {
			deltas = modeDeltas(cpu.TimesStat{}, t)
		}
		all := sum(deltas)

		core := CoreUsage{Core: coreLabel(t.CPU), Modes: make(map[string]float64, len(Modes))}
		for _, mode := range Modes {
			core.Modes[mode] = ratio(deltas[mode], all)
			totalModes[mode] += deltas[mode]
		}
		core.Usage = ratio(all-deltas["idle"], all)
		snap.Cores = append(snap.Cores, core)

		totalDelta += all
		totalIdle += deltas["idle"]
	}

	snap.Total = CoreUsage{Core: "total", Modes: make(map[string]float64, len(Modes))}
	for _, mode := range Modes {
		snap.Total.Modes[mode] = ratio(totalModes[mode], totalDelta)
	}
	snap.Total.Usage = ratio(totalDelta-totalIdle, totalDelta)
	return snap
}

// coreLabel "cpu3" -> "3"，与 /proc/stat 中的内核编号一致
func coreLabel(name string) string {
	return strings.TrimPrefix(name, "cpu")
}

func modeDeltas(last, cur cpu.TimesStat) map[string]float64 {
	return map[string]float64{
		"user":    cur.User - last.User,
		"nice":    cur.Nice - last.Nice,
		"system":  cur.System - last.System,
		"idle":    cur.Idle - last.Idle,
		"iowait":  cur.Iowait - last.Iowait,
		"irq":     cur.Irq - last.Irq,
		"softirq": cur.Softirq - last.Softirq,
		"steal":   cur.Steal - last.Steal,
	}
}

func sum(m map[string]float64) float64 {
	var total float64
	for _, v := range m {
		total += v
	}
	return total
}

// ratio 结果截断到 [0,1]
func ratio(part, whole float64) float64 {
	if whole <= 0 {
		return 0
	}
	r := part / whole
	switch {
	case r < 0:
		return 0
	case r > 1:
		return 1
	}
	return r
}

func (s Snapshot) clone() Snapshot {
	out := Snapshot{
		Total:       s.Total.clone(),
		Cores:       make([]CoreUsage, len(s.Cores)),
		RefreshedAt: s.RefreshedAt,
	}
	for i, c := range s.Cores {
		out.Cores[i] = c.clone()
	}
	return out
}

func (c CoreUsage) clone() CoreUsage {
	out := CoreUsage{Core: c.Core, Usage: c.Usage}
	if c.Modes != nil {
		out.Modes = make(map[string]float64, len(c.Modes))
		for k, v := range c.Modes {
			out.Modes[k] = v
		}
	}
	return out
}
