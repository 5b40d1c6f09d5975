package collector

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/netspeed-collector/pkg/config"
	"github.com/netspeed-collector/pkg/logger"
	"github.com/netspeed-collector/pkg/metrics"
	"github.com/netspeed-collector/pkg/monitor"
	"github.com/netspeed-collector/pkg/netspeed"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// DisplaySnapshot 面向展示层的格式化输出快照
// 空字符串表示"当前不可用"（首次采样/读失败/发现失败），不是错误
type DisplaySnapshot struct {
	Interface string `json:"interface,omitempty"`
	Receive   string `json:"receive,omitempty"`
	Transmit  string `json:"transmit,omitempty"`
}

// NetSpeedCollector 网速采集器（实现Collector接口）
// 每个tick对当前网卡的收/发两个方向各做一次计数器采样，
// 更新Prometheus指标并刷新展示快照
type NetSpeedCollector struct {
	name            string
	cfg             *config.MonitorConfig
	source          netspeed.CounterSource
	discoverer      netspeed.InterfaceDiscoverer
	metrics         monitor.NetSpeedCollectorMetrics
	collectErrors   *prometheus.CounterVec
	collectDuration *prometheus.HistogramVec

	rx *netspeed.RateSampler // 接收方向采样器（持有上次计数器状态）
	tx *netspeed.RateSampler // 发送方向采样器

	mu      sync.RWMutex // 保护display快照（HTTP端点并发读取）
	display DisplaySnapshot
}

// NewNetSpeedCollector 创建网速采集器
func NewNetSpeedCollector(cfg *config.MonitorConfig, source netspeed.CounterSource,
	discoverer netspeed.InterfaceDiscoverer, metricFactory metrics.MetricFactory) *NetSpeedCollector {
	return &NetSpeedCollector{
		name:       "netspeed-collector",
		cfg:        cfg,
		source:     source,
		discoverer: discoverer,
		metrics: monitor.NetSpeedCollectorMetrics{
			ReceiveRate:   metricFactory.NewNetworkReceiveRate(),
			TransmitRate:  metricFactory.NewNetworkTransmitRate(),
			ReceiveBytes:  metricFactory.NewNetworkReceiveBytesTotal(),
			TransmitBytes: metricFactory.NewNetworkTransmitBytesTotal(),
		},
		collectErrors:   metricFactory.NewAgentCollectErrorsTotal(),
		collectDuration: metricFactory.NewAgentCollectDurationSeconds(),
	}
}

// Name 返回采集器名称
func (c *NetSpeedCollector) Name() string { return c.name }

// Init 初始化数据以及检查项
func (c *NetSpeedCollector) Init() error {
	logger.Info("netspeed collector initialized",
		zap.String("source", c.source.Name()),
		zap.String("interface", c.cfg.Netspeed.Interface),
		zap.Duration("interval", c.Interval()),
		zap.Uint64("base", c.cfg.Netspeed.Base))
	return nil
}

// Interval 所有采样器共享的进程级采样间隔
func (c *NetSpeedCollector) Interval() time.Duration { return c.cfg.Interval }

// Display 返回当前展示快照（并发安全）
func (c *NetSpeedCollector) Display() DisplaySnapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.display
}

// Collect 执行一次采集tick
// 流程：确定网卡（显式配置或自动发现）→ 收/发各采样一次 → 更新指标与快照
// 发现失败时本tick不读计数器，两个方向全部不可用
func (c *NetSpeedCollector) Collect(ctx context.Context) error {
	start := time.Now()
	defer func() {
		c.collectDuration.WithLabelValues(c.name).Observe(time.Since(start).Seconds())
	}()

	iface, err := c.resolveInterface()
	if err != nil {
		c.collectErrors.WithLabelValues(c.name).Inc()
		c.setDisplay(DisplaySnapshot{})
		return fmt.Errorf("resolve active interface: %w", err)
	}

	// 网卡切换（自动发现换了接口）：旧状态作废，重建采样器
	if c.rx == nil || c.rx.Interface() != iface {
		logger.Debug("netspeed sampler (re)created", zap.String("interface", iface))
		ns := &c.cfg.Netspeed
		c.rx = netspeed.NewRateSampler(iface, netspeed.DirectionReceive, c.source, c.cfg.Interval, ns.Base)
		c.tx = netspeed.NewRateSampler(iface, netspeed.DirectionTransmit, c.source, c.cfg.Interval, ns.Base)
	}

	snapshot := DisplaySnapshot{Interface: iface}
	var firstErr error

	// 收/发方向相互独立：单方向读失败不影响另一方向
	rxRes, err := c.rx.Sample()
	if err != nil {
		c.collectErrors.WithLabelValues(c.name).Inc()
		logger.Warn("receive counter sample failed", zap.String("interface", iface), zap.Error(err))
		firstErr = err
	} else if rxRes.OK {
		c.metrics.ReceiveRate.WithLabelValues(iface).Set(float64(rxRes.Rate))
		c.metrics.ReceiveBytes.WithLabelValues(iface).Add(float64(rxRes.Delta))
		snapshot.Receive = rxRes.Human
	}

	txRes, err := c.tx.Sample()
	if err != nil {
		c.collectErrors.WithLabelValues(c.name).Inc()
		logger.Warn("transmit counter sample failed", zap.String("interface", iface), zap.Error(err))
		if firstErr == nil {
			firstErr = err
		}
	} else if txRes.OK {
		c.metrics.TransmitRate.WithLabelValues(iface).Set(float64(txRes.Rate))
		c.metrics.TransmitBytes.WithLabelValues(iface).Add(float64(txRes.Delta))
		snapshot.Transmit = txRes.Human
	}

	c.setDisplay(snapshot)

	logger.Debug("collected netspeed metrics",
		zap.String("interface", iface),
		zap.String("rx", snapshot.Receive),
		zap.String("tx", snapshot.Transmit))
	return firstErr
}

// resolveInterface 确定本tick采样的网卡：配置优先，否则自动发现
func (c *NetSpeedCollector) resolveInterface() (string, error) {
	if c.cfg.Netspeed.Interface != "" {
		return c.cfg.Netspeed.Interface, nil
	}
	return c.discoverer.ActiveInterface()
}

func (c *NetSpeedCollector) setDisplay(s DisplaySnapshot) {
	c.mu.Lock()
	c.display = s
	c.mu.Unlock()
}

func (c *NetSpeedCollector) Close() error {
	return nil
}
