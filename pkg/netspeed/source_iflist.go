package netspeed

import (
	"fmt"

	psnet "github.com/shirou/gopsutil/v3/net"
)

// ifCounters 接口列表查询函数（可注入fake，默认gopsutil按网卡拆分统计）
type ifCounters func(pernic bool) ([]psnet.IOCountersStat, error)

// IfListSource 接口列表数据源
// 遍历带统计信息的网卡列表取累计字节数（getifaddrs一族平台的采集方式），
// 同名条目累加
type IfListSource struct {
	counters ifCounters
}

// NewIfListSource 创建接口列表数据源
func NewIfListSource() *IfListSource {
	return &IfListSource{counters: psnet.IOCounters}
}

func (s *IfListSource) Name() string { return "iflist" }

// Counter 读取单方向累计字节数
func (s *IfListSource) Counter(iface string, direction Direction) (uint64, error) {
	stats, err := s.counters(true)
	if err != nil {
		return 0, fmt.Errorf("list interface counters: %w", err)
	}

	var total uint64
	found := false
	for _, stat := range stats {
		if stat.Name != iface {
			continue
		}
		found = true
		switch direction {
		case DirectionReceive:
			total += stat.BytesRecv
		case DirectionTransmit:
			total += stat.BytesSent
		default:
			return 0, fmt.Errorf("unknown direction %q", direction)
		}
	}
	if !found {
		return 0, fmt.Errorf("interface %q not found in counter list", iface)
	}
	return total, nil
}
