package netspeed

import (
	"fmt"
	"testing"

	psnet "github.com/shirou/gopsutil/v3/net"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIfListSourceCounter(t *testing.T) {
	source := &IfListSource{counters: func(pernic bool) ([]psnet.IOCountersStat, error) {
		return []psnet.IOCountersStat{
			{Name: "lo", BytesRecv: 1, BytesSent: 2},
			{Name: "eth0", BytesRecv: 1000, BytesSent: 2000},
			// 同名条目累加（多地址族的同一接口）
			{Name: "eth0", BytesRecv: 50, BytesSent: 60},
		}, nil
	}}

	rx, err := source.Counter("eth0", DirectionReceive)
	require.NoError(t, err)
	assert.Equal(t, uint64(1050), rx)

	tx, err := source.Counter("eth0", DirectionTransmit)
	require.NoError(t, err)
	assert.Equal(t, uint64(2060), tx)
}

func TestIfListSourceErrors(t *testing.T) {
	// 列表查询本身失败
	failing := &IfListSource{counters: func(pernic bool) ([]psnet.IOCountersStat, error) {
		return nil, fmt.Errorf("netlink failed")
	}}
	_, err := failing.Counter("eth0", DirectionReceive)
	assert.Error(t, err)

	// 网卡不在列表中
	empty := &IfListSource{counters: func(pernic bool) ([]psnet.IOCountersStat, error) {
		return []psnet.IOCountersStat{{Name: "lo"}}, nil
	}}
	_, err = empty.Counter("eth0", DirectionReceive)
	assert.Error(t, err)
}

func TestIfListDiscoverer(t *testing.T) {
	discoverer := &IfListDiscoverer{interfaces: func() (psnet.InterfaceStatList, error) {
		return psnet.InterfaceStatList{
			{Name: "lo", Flags: []string{"up", "loopback"}},
			{Name: "eth0", Flags: []string{"up", "broadcast", "multicast"}},
			{Name: "wlan0", Flags: []string{"broadcast"}},
		}, nil
	}}

	name, err := discoverer.ActiveInterface()
	require.NoError(t, err)
	assert.Equal(t, "eth0", name)
}

// 没有 up+broadcast 接口时发现失败（调用方此时不读计数器）
func TestIfListDiscovererNoneActive(t *testing.T) {
	discoverer := &IfListDiscoverer{interfaces: func() (psnet.InterfaceStatList, error) {
		return psnet.InterfaceStatList{
			{Name: "lo", Flags: []string{"up", "loopback"}},
			{Name: "eth0", Flags: []string{"broadcast"}}, // down
		}, nil
	}}

	_, err := discoverer.ActiveInterface()
	assert.Error(t, err)
}
