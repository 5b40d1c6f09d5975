package netspeed

import (
	"fmt"
	"time"
)

// SampleResult 单次采样结果
type SampleResult struct {
	Counter uint64 // 本次读到的累计计数器
	Delta   uint64 // 与上次成功采样的增量（OK为false时无效）
	Rate    uint64 // 字节/秒
	Human   string // 人类可读速率（如"1.0M"）
	OK      bool   // 是否得到有效速率（首次采样为false）
}

// RateSampler 单个(网卡,方向)的速率采样器
// 状态显式持有而非包级变量，调用方每个tick调用一次Sample
// 单线程使用；并发调用需外部加锁
type RateSampler struct {
	iface     string
	direction Direction
	source    CounterSource
	interval  time.Duration
	base      uint64
	state     SamplerState
}

// NewRateSampler 创建速率采样器
func NewRateSampler(iface string, direction Direction, source CounterSource, interval time.Duration, base uint64) *RateSampler {
	return &RateSampler{
		iface:     iface,
		direction: direction,
		source:    source,
		interval:  interval,
		base:      base,
	}
}

func (s *RateSampler) Interface() string    { return s.iface }
func (s *RateSampler) Direction() Direction { return s.direction }

// HaveSample 是否已有历史采样
func (s *RateSampler) HaveSample() bool { return s.state.HaveSample() }

// Sample 执行一次采样：读计数器→计算增量速率→格式化
// 读失败时返回error且不修改历史采样，本轮速率不可用；
// 首次成功采样仅记录计数器，OK为false（无增量可算）
func (s *RateSampler) Sample() (SampleResult, error) {
	current, err := s.source.Counter(s.iface, s.direction)
	if err != nil {
		return SampleResult{}, fmt.Errorf("sample %s %s counter: %w", s.iface, s.direction, err)
	}

	previous := s.state.Previous()
	s.state.Update(current)

	rate, ok := ComputeRate(previous, current, s.interval)
	if !ok {
		return SampleResult{Counter: current}, nil
	}

	return SampleResult{
		Counter: current,
		Delta:   current - previous,
		Rate:    rate,
		Human:   FmtHuman(rate, s.base),
		OK:      true,
	}, nil
}
