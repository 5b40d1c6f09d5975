package monitor

import "github.com/prometheus/client_golang/prometheus"

// -------------------------- 网速采集器指标结构体 --------------------------
type NetSpeedCollectorMetrics struct {
	ReceiveRate   *prometheus.GaugeVec   // 接收速率（字节/秒）
	TransmitRate  *prometheus.GaugeVec   // 发送速率（字节/秒）
	ReceiveBytes  *prometheus.CounterVec // 接收字节数（累计增量）
	TransmitBytes *prometheus.CounterVec // 发送字节数（累计增量）
}
