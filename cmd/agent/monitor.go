package agent

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func initMonitorFlags(root *cobra.Command) {
	f := root.PersistentFlags()

	f.Duration("monitor.interval", defaultCfg.Monitor.Interval, "采样间隔（进程内共享）")

	f.String("monitor.netspeed.interface", defaultCfg.Monitor.Netspeed.Interface, "-> Network interface to sample (网卡名称，留空自动发现)")
	f.String("monitor.netspeed.source", defaultCfg.Monitor.Netspeed.Source, "-> Counter source [auto,sysfs,iflist] | 计数器数据源")
	f.String("monitor.netspeed.sysfs_root", defaultCfg.Monitor.Netspeed.SysfsRoot, "sysfs网络统计根路径")
	f.Uint64("monitor.netspeed.base", defaultCfg.Monitor.Netspeed.Base, "-> Human format base [1000,1024] | 格式化进制")

	err := viper.BindPFlags(f)
	if err != nil {
		return
	}
}
