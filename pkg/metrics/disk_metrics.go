package metrics

// DiskIOMetrics 磁盘读写字节数（内核累计值）
type DiskIOMetrics struct {
	BytesRead    *CumulativeVec
	BytesWritten *CumulativeVec
}

func (m *MetricFactory) NewDiskIOMetrics() (*DiskIOMetrics, error) {
	read, err := m.newCumulativeVec("system_disk_bytes_read_total", "Total bytes read from the block device", "device")
	if err != nil {
		return nil, err
	}
	written, err := m.newCumulativeVec("system_disk_bytes_written_total", "Total bytes written to the block device", "device")
	if err != nil {
		return nil, err
	}
	return &DiskIOMetrics{BytesRead: read, BytesWritten: written}, nil
}
