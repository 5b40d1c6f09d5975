package netspeed

import (
	"fmt"
	"os/exec"
	"strings"

	psnet "github.com/shirou/gopsutil/v3/net"
)

// InterfaceDiscoverer 活动网卡发现（未显式配置网卡时使用）
// 契约：返回第一个管理状态up且支持广播的接口名，找不到返回error
// 发现失败时本轮不读计数器，收发速率直接不可用
type InterfaceDiscoverer interface {
	ActiveInterface() (string, error)
}

// CommandRunner 执行外部命令并返回标准输出（可注入fake替换真实进程调用）
type CommandRunner func(name string, args ...string) ([]byte, error)

func defaultRunner(name string, args ...string) ([]byte, error) {
	return exec.Command(name, args...).Output()
}

// ExecDiscoverer 外部进程发现器
// 调用 ip(8) 列出up状态链路，取第一个带BROADCAST标志的接口
type ExecDiscoverer struct {
	run CommandRunner
}

// NewExecDiscoverer 创建外部进程发现器（run为nil时使用真实exec）
func NewExecDiscoverer(run CommandRunner) *ExecDiscoverer {
	if run == nil {
		run = defaultRunner
	}
	return &ExecDiscoverer{run: run}
}

// ActiveInterface 解析 `ip -o link show up` 的单行输出
// 行格式："2: eth0: <BROADCAST,MULTICAST,UP,LOWER_UP> mtu 1500 ..."
func (d *ExecDiscoverer) ActiveInterface() (string, error) {
	out, err := d.run("ip", "-o", "link", "show", "up")
	if err != nil {
		return "", fmt.Errorf("run ip link: %w", err)
	}

	for _, line := range strings.Split(string(out), "\n") {
		if !strings.Contains(line, "BROADCAST") {
			continue
		}
		parts := strings.SplitN(line, ": ", 3)
		if len(parts) < 2 {
			continue
		}
		name := strings.TrimSpace(parts[1])
		// veth等接口名带 "@if5" 后缀，去掉
		if at := strings.IndexByte(name, '@'); at >= 0 {
			name = name[:at]
		}
		if name != "" {
			return name, nil
		}
	}
	return "", fmt.Errorf("no up broadcast-capable interface found")
}

// IfListDiscoverer 进程内发现器
// 通过gopsutil遍历接口列表找up+broadcast的网卡，无需外部命令
type IfListDiscoverer struct {
	interfaces func() (psnet.InterfaceStatList, error)
}

// NewIfListDiscoverer 创建进程内发现器
func NewIfListDiscoverer() *IfListDiscoverer {
	return &IfListDiscoverer{interfaces: psnet.Interfaces}
}

func (d *IfListDiscoverer) ActiveInterface() (string, error) {
	list, err := d.interfaces()
	if err != nil {
		return "", fmt.Errorf("list interfaces: %w", err)
	}
	for _, iface := range list {
		up, broadcast := false, false
		for _, flag := range iface.Flags {
			switch flag {
			case "up":
				up = true
			case "broadcast":
				broadcast = true
			}
		}
		if up && broadcast {
			return iface.Name, nil
		}
	}
	return "", fmt.Errorf("no up broadcast-capable interface found")
}

// fallbackDiscoverer 先走外部进程，失败回退进程内遍历
type fallbackDiscoverer struct {
	primary   InterfaceDiscoverer
	secondary InterfaceDiscoverer
}

// NewAutoDiscoverer 创建默认发现器链（ip命令优先，gopsutil兜底）
func NewAutoDiscoverer() InterfaceDiscoverer {
	return &fallbackDiscoverer{
		primary:   NewExecDiscoverer(nil),
		secondary: NewIfListDiscoverer(),
	}
}

func (d *fallbackDiscoverer) ActiveInterface() (string, error) {
	name, err := d.primary.ActiveInterface()
	if err == nil {
		return name, nil
	}
	return d.secondary.ActiveInterface()
}
