package netspeed

import "fmt"

// 单位后缀表：B→K→M→G→…，每上升一级除以一次进制
var humanPrefixes = []string{"B", "K", "M", "G", "T", "P", "E", "Z", "Y"}

// FmtHuman 将字节速率缩放到显示值小于base的最大单位，保留一位小数
// 纯函数，base 取 1024（二进制单位）或 1000（十进制单位）
func FmtHuman(num uint64, base uint64) string {
	scaled := float64(num)
	i := 0
	for scaled >= float64(base) && i < len(humanPrefixes)-1 {
		scaled /= float64(base)
		i++
	}
	return fmt.Sprintf("%.1f%s", scaled, humanPrefixes[i])
}
