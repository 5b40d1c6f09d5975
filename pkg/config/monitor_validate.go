package config

import (
	"errors"
	"fmt"
	"net"
	"strings"
	"time"
)

// Validate HTTP服务配置校验
func (h *ServerConfig) Validate() error {
	if err := valid.Struct(h); err != nil {
		return err
	}
	// 	校验Addr格式(必须是 ":port" 或 "ip:port")
	if h.Addr == "" {
		return errors.New("[ERROR] HTTP.Addr cannot be empty")
	}
	// 	用net包解析地址，验证格式合法性
	_, err := net.ResolveTCPAddr("tcp", h.Addr)
	if err != nil {
		return fmt.Errorf("[ERROR] HTTP.Addr format invalid (expected: :port or ip:port), got %s: %w", h.Addr, err)
	}

	return nil
}

// Validate 采集配置校验
func (m *MonitorConfig) Validate() error {
	if err := valid.Struct(m); err != nil {
		return err
	}
	// 	校验采样间隔（最小100ms，最大1小时，避免过频/过久）
	if m.Interval < 100*time.Millisecond || m.Interval > 3600*time.Second {
		return fmt.Errorf("monitor.interval must be between 100ms and 3600s, got %s", m.Interval)
	}
	if err := m.Netspeed.Validate(); err != nil {
		return err
	}
	return nil
}

// Validate 网速采集器校验
// 网卡名允许为空（触发自动发现），非空时要求格式合法：
// 不能有空白字符、不能包含路径分隔符（接口名会拼进 sysfs 路径）
func (n *NetspeedConfig) Validate() error {
	if err := valid.Struct(n); err != nil {
		return err
	}

	iface := n.Interface
	if iface != "" {
		if strings.TrimSpace(iface) != iface || strings.ContainsAny(iface, " \t\r\n") {
			return fmt.Errorf("netspeed.interface %q contains whitespace", iface)
		}
		// 通常linux 接口名如 eth0,enp0s3,lo,docker0..
		if strings.ContainsAny(iface, "/\\") {
			return fmt.Errorf("netspeed.interface %q must not contain '/' or '\\'", iface)
		}
		if iface == "." || iface == ".." {
			return fmt.Errorf("netspeed.interface %q is not a valid interface name", iface)
		}
	}

	switch n.Source {
	case "auto", "sysfs", "iflist":
	default:
		return fmt.Errorf("netspeed.source must be one of auto/sysfs/iflist, got %q", n.Source)
	}

	if n.Base != 1000 && n.Base != 1024 {
		return fmt.Errorf("netspeed.base must be 1000 or 1024, got %d", n.Base)
	}

	if strings.TrimSpace(n.SysfsRoot) == "" {
		return errors.New("netspeed.sysfs_root cannot be empty")
	}
	return nil
}
