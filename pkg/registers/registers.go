package registers

import (
	"context"
	"fmt"

	"github.com/netspeed-collector/pkg/collector"
	"github.com/netspeed-collector/pkg/config"
	"github.com/netspeed-collector/pkg/logger"
	"github.com/netspeed-collector/pkg/metrics"
	"github.com/netspeed-collector/pkg/netspeed"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Module 采集器注册项（开关控制 + 构造函数）
type Module struct {
	Enabled bool
	Name    string
	NewFunc func() (Collector, error)
}

// InitPromRegistry 初始化指标注册器并启动采集Agent
// 返回值
// promReg	*prometheus.Registry       Prometheus 指标注册器，可用于 HTTP endpoint 暴露 metrics 或做单元测试
// agent	Agent	                   采集器管理器，后台周期性调用已注册的采集器进行指标采集
// netspeed	*collector.NetSpeedCollector 网速采集器实例，展示层读取格式化快照用
// error	初始化成功时返回 nil，如果初始化或注册失败则返回具体错误
func InitPromRegistry(ctx context.Context, enableProcess bool, cfg *config.Config) (*prometheus.Registry, Agent, *collector.NetSpeedCollector, error) {
	// 初始化Prometheus指标注册器（禁用Go指标）
	promReg := prometheus.NewRegistry()
	// 仅注册进程指标（可选），不注册Go指标
	if enableProcess {
		promReg.MustRegister(prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}))
	}

	// 初始化工厂包装成自己的 Registry
	metricFactory := metrics.NewMetricFactory(metrics.NewPromRegistry(promReg))

	// 初始化采集器Agent（依赖接口，tick间隔为进程级共享配置）
	agent := NewRegistry(cfg.Monitor.Interval)

	// 注册采集器（统一入口，扩展仅需添加注册代码）
	registered, err := RegisterCollectors(agent, cfg, *metricFactory)
	if err != nil {
		logger.Error("failed to register collectors", zap.Error(err))
		return nil, nil, nil, err
	}

	agent.Start(ctx)

	var netspeedCollector *collector.NetSpeedCollector
	for _, c := range registered {
		if ns, ok := c.(*collector.NetSpeedCollector); ok {
			netspeedCollector = ns
		}
	}

	logger.Debug("collectors registered and started",
		zap.Int("count", len(registered)),
		zap.Duration("interval", cfg.Monitor.Interval))

	return promReg, agent, netspeedCollector, nil
}

// RegisterCollectors 采集器注册统一入口（扩展仅需修改此函数）
// 新增采集器只需在 modules 列表添加一条，不必写重复的 if/else。
func RegisterCollectors(agent Agent, cfg *config.Config, metricFactory metrics.MetricFactory) ([]Collector, error) {

	modules := []Module{
		{
			Enabled: true,
			Name:    "netspeed",
			NewFunc: func() (Collector, error) {
				source, err := netspeed.NewCounterSource(&cfg.Monitor.Netspeed)
				if err != nil {
					return nil, fmt.Errorf("create counter source: %w", err)
				}
				discoverer := netspeed.NewAutoDiscoverer()
				return collector.NewNetSpeedCollector(&cfg.Monitor, source, discoverer, metricFactory), nil
			},
		},
	}

	var registered []Collector
	for _, m := range modules {
		if !m.Enabled {
			logger.Debug("collector disabled", zap.String("name", m.Name))
			continue
		}
		c, err := m.NewFunc()
		if err != nil {
			return nil, fmt.Errorf("create collector %s: %w", m.Name, err)
		}
		agent.Register(c)
		registered = append(registered, c)
		logger.Debug("registered collector", zap.String("name", m.Name))
	}
	if len(registered) == 0 {
		return nil, fmt.Errorf("no collectors enabled; check your MonitorConfig")
	}

	// 日志输出所有已启用的采集器（便于排查配置）
	var names []string
	for _, m := range registered {
		names = append(names, m.Name())
	}
	logger.Debug("all enabled collectors registered", zap.Strings("enabled_collectors", names))

	return registered, nil
}
