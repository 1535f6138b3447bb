package probe

// CoreRatio 单核比率，Core 为 "0"、"1"...
type CoreRatio struct {
	Core  string
	Value float64
}

// CPUUsageStats 整体与单核使用率
type CPUUsageStats struct {
	Total float64
	Cores []CoreRatio
}

// CoreModes 单核各模式时间占比
type CoreModes struct {
	Core  string
	Modes map[string]float64
}

// CPUModeStats 按模式拆分的单核时间占比
type CPUModeStats struct {
	Cores []CoreModes
}

// FrequencyStats 单核当前频率（Hz），下标即核心序号
type FrequencyStats struct {
	Cores []uint64
}

// LoadStats 系统平均负载
type LoadStats struct {
	Load1  float64
	Load5  float64
	Load15 float64
}

// MemoryStats 物理内存（字节）
type MemoryStats struct {
	Total     uint64
	Used      uint64
	Free      uint64
	Available uint64
}

// SwapStats 交换分区（字节）
type SwapStats struct {
	Total uint64
	Used  uint64
	Free  uint64
}

// DeviceIOStats 单块磁盘自开机以来的读写字节数
type DeviceIOStats struct {
	Device       string
	BytesRead    uint64
	BytesWritten uint64
}

// DiskIOStats 按设备名排序
type DiskIOStats struct {
	Devices []DeviceIOStats
}

// InterfaceStats 单个网卡自开机以来的收发计数
type InterfaceStats struct {
	Interface       string
	BytesSent       uint64
	BytesReceived   uint64
	PacketsSent     uint64
	PacketsReceived uint64
}

// NetworkIOStats 按网卡名排序
type NetworkIOStats struct {
	Interfaces []InterfaceStats
}
