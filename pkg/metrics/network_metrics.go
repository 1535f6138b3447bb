package metrics

// -------------------------- 网络指标 --------------------------

// NetworkIOMetrics 网卡收发计数（内核累计值）
type NetworkIOMetrics struct {
	TransmitBytes   *CumulativeVec
	ReceiveBytes    *CumulativeVec
	TransmitPackets *CumulativeVec
	ReceivePackets  *CumulativeVec
}

func (m *MetricFactory) NewNetworkIOMetrics() (*NetworkIOMetrics, error) {
	var (
		nm  NetworkIOMetrics
		err error
	)
	if nm.TransmitBytes, err = m.newCumulativeVec("system_network_transmit_bytes_total",
		"Total bytes transmitted over the network interface", "interface"); err != nil {
		return nil, err
	}
	if nm.ReceiveBytes, err = m.newCumulativeVec("system_network_receive_bytes_total",
		"Total bytes received over the network interface", "interface"); err != nil {
		return nil, err
	}
	if nm.TransmitPackets, err = m.newCumulativeVec("system_network_transmit_packets_total",
		"Total packets transmitted over the network interface", "interface"); err != nil {
		return nil, err
	}
	if nm.ReceivePackets, err = m.newCumulativeVec("system_network_receive_packets_total",
		"Total packets received over the network interface", "interface"); err != nil {
		return nil, err
	}
	return &nm, nil
}
