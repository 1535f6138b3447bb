package registers

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/host-exporter/pkg/collector"
	"github.com/host-exporter/pkg/config"
	"github.com/host-exporter/pkg/metrics"
	"github.com/host-exporter/pkg/probe"
)

type memorySource struct{}

func (memorySource) Read(context.Context) (probe.MemoryStats, error) {
	return probe.MemoryStats{Total: 8, Used: 4, Free: 2, Available: 4}, nil
}

func onlyMemory() *config.Config {
	cfg := config.NewDefaultConfig()
	c := &cfg.Monitor.Collectors
	c.CPUUsage.Enabled = false
	c.CPUMode.Enabled = false
	c.CPUFrequency.Enabled = false
	c.CPULoad.Enabled = false
	c.Swap.Enabled = false
	c.DiskIO.Enabled = false
	c.NetworkIO.Enabled = false
	c.Agent.Enabled = false
	return cfg
}

func TestDisabledFamiliesBecomeNoOp(t *testing.T) {
	a, err := InitPromRegistry(onlyMemory(), Sources{Memory: memorySource{}})
	require.NoError(t, err)

	require.Len(t, a.Collectors, 8)
	assert.Nil(t, a.Agent)

	var active []string
	for _, c := range a.Collectors {
		if !collector.IsNoOp(c) {
			active = append(active, c.Name())
		}
		require.NoError(t, c.Collect(context.Background()))
	}
	assert.Equal(t, []string{collector.MemoryName}, active)

	count, err := testutil.GatherAndCount(a.Registry)
	require.NoError(t, err)
	assert.Equal(t, 4, count)
}

func TestAgentAndProcessFamilies(t *testing.T) {
	cfg := onlyMemory()
	cfg.Monitor.Collectors.Agent.Enabled = true
	cfg.Monitor.Collectors.Process.Enabled = true

	a, err := InitPromRegistry(cfg, Sources{Memory: memorySource{}})
	require.NoError(t, err)
	require.NotNil(t, a.Agent)

	a.Agent.ObserveCollect(collector.MemoryName, 0.001, nil)
	// 进程指标依赖 /proc，这里只关心已注册的指标族
	families, _ := a.Registry.Gather()

	names := make(map[string]bool, len(families))
	for _, mf := range families {
		names[mf.GetName()] = true
	}
	assert.True(t, names["exporter_collect_duration_seconds"])
	assert.True(t, names["system_memory_total_bytes"])
}

func TestDuplicateRegistrationIsFatal(t *testing.T) {
	cfg := onlyMemory()
	factory := metrics.NewMetricFactory(metrics.NewPromRegistry(nil))
	src := Sources{Memory: memorySource{}}

	_, err := RegisterCollectors(cfg, factory, src)
	require.NoError(t, err)

	_, err = RegisterCollectors(cfg, factory, src)
	assert.ErrorIs(t, err, metrics.ErrRegistration)
	assert.Contains(t, err.Error(), collector.MemoryName)
}

func TestDefaultSourcesShareSnapshot(t *testing.T) {
	src := DefaultSources(config.NewDefaultConfig())
	assert.NotNil(t, src.CPUUsage)
	assert.NotNil(t, src.CPUMode)
	assert.NotNil(t, src.NetworkIO)
}
