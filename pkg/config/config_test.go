package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig(t *testing.T) *Config {
	t.Helper()
	cfg := NewDefaultConfig()
	cfg.Server.Addr = "127.0.0.1:9100"
	cfg.Log.Path = t.TempDir()
	return cfg
}

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := validConfig(t)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 200*time.Millisecond, cfg.Monitor.MinRefreshInterval)
	assert.False(t, cfg.Monitor.FailFast)
	assert.True(t, cfg.Monitor.Collectors.CPUUsage.Enabled)
	assert.True(t, cfg.Monitor.Collectors.NetworkIO.Enabled)
	assert.False(t, cfg.Monitor.Collectors.Process.Enabled)
}

func TestValidateRejects(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"bad addr", func(c *Config) { c.Server.Addr = "not-an-address" }},
		{"zero workers", func(c *Config) { c.Monitor.Workers = 0 }},
		{"negative interval", func(c *Config) { c.Monitor.MinRefreshInterval = -time.Second }},
		{"zero interval", func(c *Config) { c.Monitor.MinRefreshInterval = 0 }},
		{"interval too large", func(c *Config) { c.Monitor.MinRefreshInterval = 2 * time.Minute }},
		{"empty interface", func(c *Config) { c.Monitor.Collectors.NetworkIO.WatchInterfaces = []string{""} }},
		{"duplicate interface", func(c *Config) {
			c.Monitor.Collectors.NetworkIO.IgnoreInterfaces = []string{"lo", "lo"}
		}},
		{"interface with slash", func(c *Config) {
			c.Monitor.Collectors.NetworkIO.IgnoreInterfaces = []string{"eth0/1"}
		}},
		{"bad log level", func(c *Config) { c.Log.Level = "verbose" }},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }},
		{"all families disabled", func(c *Config) {
			col := &c.Monitor.Collectors
			for _, m := range []*MetricConfig{&col.CPUUsage, &col.CPUMode, &col.CPUFrequency, &col.CPULoad,
				&col.Memory, &col.Swap, &col.DiskIO} {
				m.Enabled = false
			}
			col.NetworkIO.Enabled = false
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig(t)
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestDisabledNetworkSkipsInterfaceChecks(t *testing.T) {
	cfg := validConfig(t)
	cfg.Monitor.Collectors.NetworkIO = NetworkConfig{Enabled: false, WatchInterfaces: []string{"", ""}}
	assert.NoError(t, cfg.Validate())
}

func TestLogPathMustBeDirectory(t *testing.T) {
	cfg := validConfig(t)
	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))
	cfg.Log.Path = file
	assert.Error(t, cfg.Validate())
}

func newCommand() *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	f := cmd.Flags()
	f.StringP("config", "c", "", "")
	f.String("server.addr", "127.0.0.1:9100", "")
	f.Int("monitor.workers", 4, "")
	f.Bool("monitor.collectors.swap.enabled", true, "")
	f.StringSlice("monitor.collectors.network_io.watch_interfaces", []string{}, "")
	return cmd
}

func TestLoadConfigWithCliFromFile(t *testing.T) {
	logDir := t.TempDir()
	file := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
server:
  addr: "127.0.0.1:9200"
  read_timeout: 5s
monitor:
  min_refresh_interval: 500ms
  workers: 2
  fail_fast: true
  collectors:
    cpu_frequency:
      enabled: false
    network_io:
      ignore_interfaces: ["lo", "docker0"]
log:
  level: debug
  path: ` + logDir + `
`
	require.NoError(t, os.WriteFile(file, []byte(yaml), 0o644))

	cmd := newCommand()
	require.NoError(t, cmd.Flags().Set("config", file))
	require.NoError(t, cmd.Flags().Set("monitor.collectors.swap.enabled", "false"))

	cfg, err := LoadConfigWithCli(cmd)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9200", cfg.Server.Addr)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	// 未配置的字段保留默认值
	assert.Equal(t, 30*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, 500*time.Millisecond, cfg.Monitor.MinRefreshInterval)
	assert.Equal(t, 2, cfg.Monitor.Workers)
	assert.True(t, cfg.Monitor.FailFast)
	assert.False(t, cfg.Monitor.Collectors.CPUFrequency.Enabled)
	assert.True(t, cfg.Monitor.Collectors.CPUUsage.Enabled)
	// 显式设置的 flag 优先于默认值
	assert.False(t, cfg.Monitor.Collectors.Swap.Enabled)
	assert.Equal(t, []string{"lo", "docker0"}, cfg.Monitor.Collectors.NetworkIO.IgnoreInterfaces)
	assert.Empty(t, cfg.Monitor.Collectors.NetworkIO.WatchInterfaces)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, logDir, cfg.Log.Path)
}

func TestLoadConfigWithCliEnvOverride(t *testing.T) {
	t.Setenv("SERVER_ADDR", "127.0.0.1:9300")
	t.Setenv("LOG_PATH", t.TempDir())

	cmd := newCommand()
	cmd.Flags().String("log.path", "./logs", "")

	cfg, err := LoadConfigWithCli(cmd)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9300", cfg.Server.Addr)
}

func TestLoadConfigWithCliMissingFile(t *testing.T) {
	cmd := newCommand()
	require.NoError(t, cmd.Flags().Set("config", filepath.Join(t.TempDir(), "missing.yaml")))
	_, err := LoadConfigWithCli(cmd)
	assert.Error(t, err)
}

func TestLoadConfigWithCliInvalidValue(t *testing.T) {
	t.Setenv("LOG_PATH", t.TempDir())
	cmd := newCommand()
	cmd.Flags().String("log.path", "./logs", "")
	require.NoError(t, cmd.Flags().Set("monitor.workers", "0"))
	_, err := LoadConfigWithCli(cmd)
	assert.Error(t, err)
}

func TestCheckLevelListsAllLevels(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error", "dpanic", "panic", "fatal", "DPanic"} {
		assert.NoError(t, checkLevel(level), level)
	}

	err := checkLevel("trace")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "debug/info/warn/error/dpanic/panic/fatal")
}
