package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// -------------------------- 网速指标创建方法 --------------------------

// NewNetworkReceiveRate 接收速率（字节/秒，由相邻两次计数器采样的增量换算）
func (f *MetricFactory) NewNetworkReceiveRate() *prometheus.GaugeVec {
	return promauto.With(f.reg).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "system_network_receive_rate_bytes_per_second",
			Help: "Instantaneous receive throughput derived from consecutive counter samples",
		},
		[]string{"interface"},
	)
}

// NewNetworkTransmitRate 发送速率（字节/秒）
func (f *MetricFactory) NewNetworkTransmitRate() *prometheus.GaugeVec {
	return promauto.With(f.reg).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "system_network_transmit_rate_bytes_per_second",
			Help: "Instantaneous transmit throughput derived from consecutive counter samples",
		},
		[]string{"interface"},
	)
}

// NewNetworkReceiveBytesTotal 接收字节累计（每tick按增量累加）
func (f *MetricFactory) NewNetworkReceiveBytesTotal() *prometheus.CounterVec {
	return promauto.With(f.reg).NewCounterVec(
		prometheus.CounterOpts{
			Name: "system_network_receive_bytes_total",
			Help: "Total bytes received over the network interface",
		},
		[]string{"interface"},
	)
}

// NewNetworkTransmitBytesTotal 发送字节累计（每tick按增量累加）
func (f *MetricFactory) NewNetworkTransmitBytesTotal() *prometheus.CounterVec {
	return promauto.With(f.reg).NewCounterVec(
		prometheus.CounterOpts{
			Name: "system_network_transmit_bytes_total",
			Help: "Total bytes transmitted over the network interface",
		},
		[]string{"interface"},
	)
}
