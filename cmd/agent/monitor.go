package agent

import (
	"github.com/spf13/cobra"
)

func initMonitorFlags(root *cobra.Command) {
	f := root.PersistentFlags()
	m := defaultCfg.Monitor
	c := m.Collectors

	f.Duration("monitor.min_refresh_interval", m.MinRefreshInterval, "-> Minimum interval between CPU snapshot refreshes | CPU快照最小刷新间隔")
	f.Int("monitor.workers", m.Workers, "-> Worker goroutines for blocking collectors | 采集工作协程数")
	f.Bool("monitor.fail_fast", m.FailFast, "-> Fail the whole scrape when any collector fails | 任一采集器失败即整体失败")

	prefix := "monitor.collectors."
	f.Bool(prefix+"cpu_usage.enabled", c.CPUUsage.Enabled, "启用 CPU 使用率")
	f.Bool(prefix+"cpu_mode.enabled", c.CPUMode.Enabled, "启用 CPU 分模式占比")
	f.Bool(prefix+"cpu_frequency.enabled", c.CPUFrequency.Enabled, "启用 CPU 频率")
	f.Bool(prefix+"cpu_load.enabled", c.CPULoad.Enabled, "启用平均负载")
	f.Bool(prefix+"memory.enabled", c.Memory.Enabled, "启用内存")
	f.Bool(prefix+"swap.enabled", c.Swap.Enabled, "启用交换分区")
	f.Bool(prefix+"disk_io.enabled", c.DiskIO.Enabled, "启用磁盘 IO")
	f.Bool(prefix+"network_io.enabled", c.NetworkIO.Enabled, "启用网卡 IO")
	f.StringSlice(prefix+"network_io.watch_interfaces", c.NetworkIO.WatchInterfaces, "只采集的网卡")
	f.StringSlice(prefix+"network_io.ignore_interfaces", c.NetworkIO.IgnoreInterfaces, "忽略的网卡")
	f.Bool(prefix+"agent.enabled", c.Agent.Enabled, "启用 exporter 自身指标")
	f.Bool(prefix+"process.enabled", c.Process.Enabled, "启用进程指标")
}
