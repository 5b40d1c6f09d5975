package netspeed

import "time"

// ComputeRate 由前后两次计数器采样和采样间隔计算字节/秒速率
// previous==0 为未采样哨兵，返回不可用
// 计数器回绕（网卡重置等导致 current < previous）时减法下溢，不做特殊处理
func ComputeRate(previous, current uint64, interval time.Duration) (uint64, bool) {
	if previous == 0 {
		return 0, false
	}
	intervalMs := uint64(interval.Milliseconds())
	if intervalMs == 0 {
		return 0, false
	}
	return (current - previous) * 1000 / intervalMs, true
}
