package snapshot

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTimes 每次调用返回下一组读数，并记录调用次数
type fakeTimes struct {
	calls   atomic.Int64
	samples [][]cpu.TimesStat
	err     error
}

func (f *fakeTimes) read(context.Context) ([]cpu.TimesStat, error) {
	n := f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	i := int(n - 1)
	if i >= len(f.samples) {
		i = len(f.samples) - 1
	}
	return f.samples[i], nil
}

func twoCores(user0, idle0, user1, idle1 float64) []cpu.TimesStat {
	return []cpu.TimesStat{
		{CPU: "cpu0", User: user0, Idle: idle0},
		{CPU: "cpu1", User: user1, Idle: idle1},
	}
}

func TestLoadThrottlesWithinMinInterval(t *testing.T) {
	clock := clockwork.NewFakeClock()
	src := &fakeTimes{samples: [][]cpu.TimesStat{
		twoCores(10, 90, 50, 50),
		twoCores(20, 180, 100, 100),
	}}
	s := NewCPU(200*time.Millisecond, WithClock(clock), WithTimesFunc(src.read))

	first, err := s.Load(context.Background())
	require.NoError(t, err)

	clock.Advance(100 * time.Millisecond)
	second, err := s.Load(context.Background())
	require.NoError(t, err)

	assert.EqualValues(t, 1, src.calls.Load())
	assert.EqualValues(t, 1, s.Refreshes())
	assert.Equal(t, first, second)

	clock.Advance(150 * time.Millisecond)
	_, err = s.Load(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 2, src.calls.Load())
}

func TestLoadDerivesUsageFromDeltas(t *testing.T) {
	clock := clockwork.NewFakeClock()
	src := &fakeTimes{samples: [][]cpu.TimesStat{
		twoCores(10, 90, 50, 50),
		// core0: +30 user +70 idle -> 0.3; core1: +100 user +0 idle -> 1.0
		twoCores(40, 160, 150, 50),
	}}
	s := NewCPU(time.Millisecond, WithClock(clock), WithTimesFunc(src.read))

	snap, err := s.Load(context.Background())
	require.NoError(t, err)
	// 首次刷新使用开机以来的累计值
	assert.InDelta(t, 0.1, snap.Cores[0].Usage, 1e-9)
	assert.InDelta(t, 0.5, snap.Cores[1].Usage, 1e-9)

	clock.Advance(time.Second)
	snap, err = s.Load(context.Background())
	require.NoError(t, err)

	require.Len(t, snap.Cores, 2)
	assert.Equal(t, "0", snap.Cores[0].Core)
	assert.Equal(t, "1", snap.Cores[1].Core)
	assert.InDelta(t, 0.3, snap.Cores[0].Usage, 1e-9)
	assert.InDelta(t, 1.0, snap.Cores[1].Usage, 1e-9)
	assert.InDelta(t, 0.7, snap.Cores[0].Modes["idle"], 1e-9)
	assert.InDelta(t, 0.3, snap.Cores[0].Modes["user"], 1e-9)
	// 整体：busy 130 / total 200
	assert.InDelta(t, 0.65, snap.Total.Usage, 1e-9)
	for _, c := range snap.Cores {
		assert.GreaterOrEqual(t, c.Usage, 0.0)
		assert.LessOrEqual(t, c.Usage, 1.0)
	}
}

func TestConcurrentReadersShareOneRefresh(t *testing.T) {
	clock := clockwork.NewFakeClock()
	src := &fakeTimes{samples: [][]cpu.TimesStat{twoCores(1, 3, 2, 2)}}
	s := NewCPU(time.Second, WithClock(clock), WithTimesFunc(src.read))

	const readers = 32
	results := make([]Snapshot, readers)
	var wg sync.WaitGroup
	for i := 0; i < readers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			snap, err := s.Load(context.Background())
			assert.NoError(t, err)
			results[i] = snap
		}(i)
	}
	wg.Wait()

	assert.EqualValues(t, 1, src.calls.Load())
	for _, r := range results[1:] {
		assert.Equal(t, results[0], r)
	}
}

func TestRefreshErrorIsSnapshotUnavailable(t *testing.T) {
	src := &fakeTimes{err: errors.New("permission denied")}
	s := NewCPU(time.Second, WithTimesFunc(src.read))

	_, err := s.Load(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSnapshotUnavailable)
	assert.Contains(t, err.Error(), "permission denied")

	// 失败不记录刷新时间，下一次继续尝试
	err = s.RefreshIfStale(context.Background())
	assert.ErrorIs(t, err, ErrSnapshotUnavailable)
	assert.EqualValues(t, 2, src.calls.Load())
}

func TestRefreshPanicIsSnapshotUnavailable(t *testing.T) {
	s := NewCPU(time.Second, WithTimesFunc(func(context.Context) ([]cpu.TimesStat, error) {
		panic("boom")
	}))

	_, err := s.Load(context.Background())
	assert.ErrorIs(t, err, ErrSnapshotUnavailable)

	// 锁没有被遗留
	assert.NotPanics(t, func() { _ = s.Read() })
}

func TestEmptyTimesIsSnapshotUnavailable(t *testing.T) {
	s := NewCPU(time.Second, WithTimesFunc(func(context.Context) ([]cpu.TimesStat, error) {
		return nil, nil
	}))
	_, err := s.Load(context.Background())
	assert.ErrorIs(t, err, ErrSnapshotUnavailable)
}

func TestReadReturnsIndependentCopy(t *testing.T) {
	src := &fakeTimes{samples: [][]cpu.TimesStat{twoCores(1, 1, 1, 1)}}
	s := NewCPU(time.Second, WithTimesFunc(src.read))
	require.NoError(t, s.RefreshIfStale(context.Background()))

	snap := s.Read()
	snap.Cores[0].Modes["user"] = 42
	assert.NotEqual(t, 42.0, s.Read().Cores[0].Modes["user"])
}

func TestCoreLabelsFollowKernelNumbering(t *testing.T) {
	clock := clockwork.NewFakeClock()
	src := &fakeTimes{samples: [][]cpu.TimesStat{
		// cpu1 离线，/proc/stat 中缺失
		{
			{CPU: "cpu0", User: 10, Idle: 90},
			{CPU: "cpu2", User: 50, Idle: 50},
		},
		// cpu1 重新上线；cpu2: +20 user +80 idle -> 0.2
		{
			{CPU: "cpu0", User: 20, Idle: 180},
			{CPU: "cpu1", User: 5, Idle: 5},
			{CPU: "cpu2", User: 70, Idle: 130},
		},
	}}
	s := NewCPU(time.Millisecond, WithClock(clock), WithTimesFunc(src.read))

	snap, err := s.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, snap.Cores, 2)
	assert.Equal(t, "0", snap.Cores[0].Core)
	assert.Equal(t, "2", snap.Cores[1].Core)
	assert.InDelta(t, 0.5, snap.Cores[1].Usage, 1e-9)

	clock.Advance(time.Second)
	snap, err = s.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, snap.Cores, 3)
	assert.Equal(t, []string{"0", "1", "2"}, []string{snap.Cores[0].Core, snap.Cores[1].Core, snap.Cores[2].Core})
	// cpu2 仍与自己的上一次读数做差
	assert.InDelta(t, 0.2, snap.Cores[2].Usage, 1e-9)
	// cpu1 没有上一次读数，使用累计值
	assert.InDelta(t, 0.5, snap.Cores[1].Usage, 1e-9)
	assert.InDelta(t, 0.1, snap.Cores[0].Usage, 1e-9)
}
