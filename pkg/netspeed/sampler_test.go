package netspeed_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/netspeed-collector/pkg/netspeed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedSource 按预设脚本逐次返回计数器值或错误
type scriptedSource struct {
	script []func() (uint64, error)
	calls  int
}

func (s *scriptedSource) Name() string { return "scripted" }

func (s *scriptedSource) Counter(iface string, direction netspeed.Direction) (uint64, error) {
	if s.calls >= len(s.script) {
		return 0, fmt.Errorf("unexpected extra read (call %d)", s.calls)
	}
	fn := s.script[s.calls]
	s.calls++
	return fn()
}

func value(v uint64) func() (uint64, error) {
	return func() (uint64, error) { return v, nil }
}

func failure() (uint64, error) {
	return 0, fmt.Errorf("read failed")
}

func TestRateSamplerFirstSampleUnavailable(t *testing.T) {
	source := &scriptedSource{script: []func() (uint64, error){value(500000), value(1550000)}}
	sampler := netspeed.NewRateSampler("eth0", netspeed.DirectionReceive, source, time.Second, 1024)

	assert.False(t, sampler.HaveSample())

	// 首次采样：只建立基准，速率不可用
	res, err := sampler.Sample()
	require.NoError(t, err)
	assert.False(t, res.OK)
	assert.Equal(t, uint64(500000), res.Counter)
	assert.True(t, sampler.HaveSample())

	// 第二次采样：增量1050000字节/1000ms ⇒ 1050000 B/s ⇒ "1.0M"
	res, err = sampler.Sample()
	require.NoError(t, err)
	assert.True(t, res.OK)
	assert.Equal(t, uint64(1050000), res.Delta)
	assert.Equal(t, uint64(1050000), res.Rate)
	assert.Equal(t, "1.0M", res.Human)
}

// 读失败不修改历史采样：下一次成功读取与最后一次有效值算增量
// （增量跨度超过一个采样间隔，继承行为，不做修正）
func TestRateSamplerReadFailureKeepsState(t *testing.T) {
	source := &scriptedSource{script: []func() (uint64, error){
		value(1000),
		failure,
		value(5096),
	}}
	sampler := netspeed.NewRateSampler("eth0", netspeed.DirectionTransmit, source, time.Second, 1024)

	res, err := sampler.Sample()
	require.NoError(t, err)
	assert.False(t, res.OK)

	// 失败tick：error返回，速率不可用，历史基准保留
	_, err = sampler.Sample()
	require.Error(t, err)
	assert.True(t, sampler.HaveSample())

	// 恢复后：增量相对最后一次成功采样（1000），跨两个间隔
	res, err = sampler.Sample()
	require.NoError(t, err)
	assert.True(t, res.OK)
	assert.Equal(t, uint64(4096), res.Delta)
	assert.Equal(t, uint64(4096), res.Rate)
	assert.Equal(t, "4.0K", res.Human)
}

func TestRateSamplerHalfSecondInterval(t *testing.T) {
	source := &scriptedSource{script: []func() (uint64, error){value(1000), value(1512)}}
	sampler := netspeed.NewRateSampler("wlan0", netspeed.DirectionReceive, source, 500*time.Millisecond, 1024)

	_, err := sampler.Sample()
	require.NoError(t, err)

	res, err := sampler.Sample()
	require.NoError(t, err)
	assert.True(t, res.OK)
	// 512字节/500ms ⇒ 1024 B/s
	assert.Equal(t, uint64(1024), res.Rate)
	assert.Equal(t, "1.0K", res.Human)
}

func TestSamplerState(t *testing.T) {
	var state netspeed.SamplerState
	assert.False(t, state.HaveSample())
	assert.Equal(t, uint64(0), state.Previous())

	state.Update(42)
	assert.True(t, state.HaveSample())
	assert.Equal(t, uint64(42), state.Previous())

	state.Reset()
	assert.False(t, state.HaveSample())
}
