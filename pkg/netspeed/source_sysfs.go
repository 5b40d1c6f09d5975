package netspeed

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// SysfsSource 虚拟文件系统数据源
// 读取 <root>/<iface>/statistics/{rx_bytes,tx_bytes}（Linux内核暴露的累计计数器）
// root 可配置，便于测试时指向临时目录
type SysfsSource struct {
	root string
}

// NewSysfsSource 创建sysfs数据源
func NewSysfsSource(root string) *SysfsSource {
	return &SysfsSource{root: root}
}

func (s *SysfsSource) Name() string { return "sysfs" }

// Counter 读取单方向累计字节数
func (s *SysfsSource) Counter(iface string, direction Direction) (uint64, error) {
	var stat string
	switch direction {
	case DirectionReceive:
		stat = "rx_bytes"
	case DirectionTransmit:
		stat = "tx_bytes"
	default:
		return 0, fmt.Errorf("unknown direction %q", direction)
	}

	path := filepath.Join(s.root, iface, "statistics", stat)
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", path, err)
	}

	value, err := strconv.ParseUint(strings.TrimSpace(string(raw)), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", path, err)
	}
	return value, nil
}
