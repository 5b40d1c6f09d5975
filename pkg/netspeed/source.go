package netspeed

import (
	"fmt"
	"os"

	"github.com/netspeed-collector/pkg/config"
)

// CounterSource 计数器数据源（按平台/配置选择实现）
// 契约：返回指定网卡单方向的累计字节数，读不到/解析失败返回error
// 单次失败不重试，调用方保留上一次有效采样
type CounterSource interface {
	Name() string
	Counter(iface string, direction Direction) (uint64, error)
}

// NewCounterSource 按配置创建计数器数据源
// auto 模式做运行时能力探测：sysfs 统计树存在则走 sysfs 文件读取，
// 否则回退到 gopsutil 接口列表遍历（BSD/Windows 等无 sysfs 的平台）
func NewCounterSource(cfg *config.NetspeedConfig) (CounterSource, error) {
	switch cfg.Source {
	case "sysfs":
		return NewSysfsSource(cfg.SysfsRoot), nil
	case "iflist":
		return NewIfListSource(), nil
	case "auto":
		if stat, err := os.Stat(cfg.SysfsRoot); err == nil && stat.IsDir() {
			return NewSysfsSource(cfg.SysfsRoot), nil
		}
		return NewIfListSource(), nil
	default:
		return nil, fmt.Errorf("unknown counter source %q", cfg.Source)
	}
}
