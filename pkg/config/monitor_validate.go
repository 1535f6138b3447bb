package config

import (
	"errors"
	"fmt"
	"net"
	"strings"
	"time"
)

// maxRefreshInterval 快照刷新间隔上限，超过后 CPU 使用率几乎不再反映当前负载
const maxRefreshInterval = time.Minute

// Validate HTTP服务配置校验
func (h *ServerConfig) Validate() error {
	if err := valid.Struct(h); err != nil {
		return err
	}
	// 	校验Addr格式(必须是 ":port" 或 "ip:port")
	if h.Addr == "" {
		return errors.New("server.addr cannot be empty")
	}
	// 	用net包解析地址，验证格式合法性
	_, err := net.ResolveTCPAddr("tcp", h.Addr)
	if err != nil {
		return fmt.Errorf("server.addr format invalid (expected: :port or ip:port), got %s: %w", h.Addr, err)
	}

	return nil
}

func (m *MonitorConfig) Validate() error {
	if err := valid.Struct(m); err != nil {
		return err
	}
	if m.MinRefreshInterval > maxRefreshInterval {
		return fmt.Errorf("monitor.min_refresh_interval must not exceed %s, got %s", maxRefreshInterval, m.MinRefreshInterval)
	}
	if err := m.Collectors.validate(); err != nil {
		return err
	}
	return nil
}

// 校验至少启用一个指标族，否则没有意义
func (col *CollectorConfig) validate() error {
	if err := valid.Struct(col); err != nil {
		return err
	}
	if !col.anyEnabled() {
		return fmt.Errorf("at least one metric family must be enabled (cpu_usage/cpu_mode/cpu_frequency/cpu_load/memory/swap/disk_io/network_io)")
	}
	if err := col.NetworkIO.Validate(); err != nil {
		return err
	}
	return nil
}

func (col *CollectorConfig) anyEnabled() bool {
	return col.CPUUsage.Enabled || col.CPUMode.Enabled || col.CPUFrequency.Enabled ||
		col.CPULoad.Enabled || col.Memory.Enabled || col.Swap.Enabled ||
		col.DiskIO.Enabled || col.NetworkIO.Enabled
}

// Validate 网卡列表校验
// 不能包含空字符串，不能有空白或路径分隔符，不能重复
// network_io 未启用时不校验
func (n *NetworkConfig) Validate() error {
	if !n.Enabled {
		return nil
	}
	if err := validateInterfaces("watch_interfaces", n.WatchInterfaces); err != nil {
		return err
	}
	return validateInterfaces("ignore_interfaces", n.IgnoreInterfaces)
}

func validateInterfaces(key string, list []string) error {
	seen := map[string]bool{}
	for _, iface := range list {
		if strings.TrimSpace(iface) == "" {
			return fmt.Errorf("network_io.%s cannot contain empty string", key)
		}
		// 通常linux 接口名如 eth0,enp0s3,lo,docker0..
		if strings.ContainsAny(iface, " \t\r\n") {
			return fmt.Errorf("network_io.%s: interface %q contains whitespace", key, iface)
		}
		if strings.ContainsAny(iface, "/\\") {
			return fmt.Errorf("network_io.%s: interface %q must not contain '/' or '\\\\'", key, iface)
		}
		if seen[iface] {
			return fmt.Errorf("network_io.%s duplicated entry: %q", key, iface)
		}
		seen[iface] = true
	}
	return nil
}
