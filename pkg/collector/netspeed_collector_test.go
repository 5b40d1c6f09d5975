package collector_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/netspeed-collector/pkg/collector"
	"github.com/netspeed-collector/pkg/config"
	"github.com/netspeed-collector/pkg/logger"
	"github.com/netspeed-collector/pkg/metrics"
	"github.com/netspeed-collector/pkg/netspeed"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "netspeed-collector-test")
	if err != nil {
		panic(err)
	}
	if _, err := logger.InitLogger(&config.ZapLogConfig{Level: "error", Path: dir, MaxSize: 10, MaxAge: 1}); err != nil {
		panic(err)
	}
	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

// fakeSource 按方向返回递增序列，可注入单次失败
type fakeSource struct {
	rx, tx  []uint64
	rxIdx   int
	txIdx   int
	failRx  bool
	calls   int
}

func (s *fakeSource) Name() string { return "fake" }

func (s *fakeSource) Counter(iface string, direction netspeed.Direction) (uint64, error) {
	s.calls++
	switch direction {
	case netspeed.DirectionReceive:
		if s.failRx {
			return 0, fmt.Errorf("rx read failed")
		}
		v := s.rx[s.rxIdx]
		s.rxIdx++
		return v, nil
	case netspeed.DirectionTransmit:
		v := s.tx[s.txIdx]
		s.txIdx++
		return v, nil
	}
	return 0, fmt.Errorf("unknown direction %q", direction)
}

// fakeDiscoverer 返回固定接口名或失败
type fakeDiscoverer struct {
	name string
	err  error
}

func (d *fakeDiscoverer) ActiveInterface() (string, error) {
	return d.name, d.err
}

func newFactory() metrics.MetricFactory {
	return *metrics.NewMetricFactory(metrics.NewPromRegistry(prometheus.NewRegistry()))
}

func TestNetSpeedCollectorTicks(t *testing.T) {
	source := &fakeSource{
		rx: []uint64{500000, 1550000},
		tx: []uint64{1000, 513000},
	}
	cfg := &config.MonitorConfig{
		Interval: time.Second,
		Netspeed: config.NetspeedConfig{Interface: "eth0", Base: 1024},
	}
	c := collector.NewNetSpeedCollector(cfg, source, &fakeDiscoverer{name: "ignored"}, newFactory())
	require.NoError(t, c.Init())
	assert.Equal(t, "netspeed-collector", c.Name())

	// 首个tick：建立基准，两个方向都不可用
	require.NoError(t, c.Collect(context.Background()))
	snap := c.Display()
	assert.Equal(t, "eth0", snap.Interface)
	assert.Empty(t, snap.Receive)
	assert.Empty(t, snap.Transmit)

	// 第二个tick：rx 1050000 B/s = "1.0M"，tx 512000 B/s = "500.0K"
	require.NoError(t, c.Collect(context.Background()))
	snap = c.Display()
	assert.Equal(t, "1.0M", snap.Receive)
	assert.Equal(t, "500.0K", snap.Transmit)

	require.NoError(t, c.Close())
}

// 发现失败：本tick不读计数器，展示快照清空
func TestNetSpeedCollectorDiscoveryFailure(t *testing.T) {
	source := &fakeSource{}
	cfg := &config.MonitorConfig{
		Interval: time.Second,
		Netspeed: config.NetspeedConfig{Interface: "", Base: 1024},
	}
	discoverer := &fakeDiscoverer{err: fmt.Errorf("no up broadcast-capable interface found")}
	c := collector.NewNetSpeedCollector(cfg, source, discoverer, newFactory())

	err := c.Collect(context.Background())
	assert.Error(t, err)
	assert.Zero(t, source.calls, "counter must not be read when discovery fails")

	snap := c.Display()
	assert.Empty(t, snap.Interface)
	assert.Empty(t, snap.Receive)
	assert.Empty(t, snap.Transmit)
}

// 单方向读失败不影响另一方向；失败方向的历史基准保留
func TestNetSpeedCollectorPartialFailure(t *testing.T) {
	source := &fakeSource{
		rx: []uint64{500000, 1550000},
		tx: []uint64{1000, 2024, 3048},
	}
	cfg := &config.MonitorConfig{
		Interval: time.Second,
		Netspeed: config.NetspeedConfig{Interface: "eth0", Base: 1024},
	}
	c := collector.NewNetSpeedCollector(cfg, source, &fakeDiscoverer{}, newFactory())

	require.NoError(t, c.Collect(context.Background()))

	// 第二个tick：rx失败，tx正常
	source.failRx = true
	err := c.Collect(context.Background())
	assert.Error(t, err)
	snap := c.Display()
	assert.Empty(t, snap.Receive)
	assert.Equal(t, "1.0K", snap.Transmit)

	// rx恢复：增量相对最后一次成功采样，跨两个间隔（继承行为）
	source.failRx = false
	require.NoError(t, c.Collect(context.Background()))
	snap = c.Display()
	assert.Equal(t, "1.0M", snap.Receive)
	assert.Equal(t, "1.0K", snap.Transmit)
}

// 自动发现切换网卡：采样器重建，新网卡首个tick速率不可用
func TestNetSpeedCollectorInterfaceSwitch(t *testing.T) {
	source := &fakeSource{
		rx: []uint64{100, 200, 300},
		tx: []uint64{100, 200, 300},
	}
	cfg := &config.MonitorConfig{
		Interval: time.Second,
		Netspeed: config.NetspeedConfig{Interface: "", Base: 1024},
	}
	discoverer := &fakeDiscoverer{name: "eth0"}
	c := collector.NewNetSpeedCollector(cfg, source, discoverer, newFactory())

	require.NoError(t, c.Collect(context.Background()))
	require.NoError(t, c.Collect(context.Background()))
	snap := c.Display()
	assert.Equal(t, "eth0", snap.Interface)
	assert.NotEmpty(t, snap.Receive)

	// 网卡切换后旧状态作废
	discoverer.name = "wlan0"
	require.NoError(t, c.Collect(context.Background()))
	snap = c.Display()
	assert.Equal(t, "wlan0", snap.Interface)
	assert.Empty(t, snap.Receive)
	assert.Empty(t, snap.Transmit)
}
