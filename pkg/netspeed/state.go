package netspeed

// Direction 计数器方向（接收/发送）
type Direction string

const (
	DirectionReceive  Direction = "receive"
	DirectionTransmit Direction = "transmit"
)

// SamplerState 单个(网卡,方向)的上一次计数器采样
// 0 为未采样哨兵值；读失败不修改该值，下一次成功读取仍可与最后一次
// 有效值计算增量（增量跨度会超过一个采样间隔，不做修正）
type SamplerState struct {
	prev uint64
}

// Previous 返回上一次成功采样的计数器值（0表示尚无采样）
func (s *SamplerState) Previous() uint64 {
	return s.prev
}

// Update 记录本次成功采样的计数器值
func (s *SamplerState) Update(current uint64) {
	s.prev = current
}

// HaveSample 是否已有历史采样（两态：NoSampleYet / HaveSample）
func (s *SamplerState) HaveSample() bool {
	return s.prev != 0
}

// Reset 重置为未采样状态
func (s *SamplerState) Reset() {
	s.prev = 0
}
