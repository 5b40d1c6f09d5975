// Package server 提供HTTP服务器核心功能，包含Prometheus指标暴露、健康检查端点、
// 网速展示快照端点、优雅关闭机制及系统信号监听能力。
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/netspeed-collector/pkg/collector"
	"github.com/netspeed-collector/pkg/config"
	"github.com/netspeed-collector/pkg/logger"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// DisplayProvider 展示快照提供方（网速采集器实现）
type DisplayProvider interface {
	Display() collector.DisplaySnapshot
}

// HTTPServer HTTP服务实例，封装监听地址、HTTP服务器核心对象和Prometheus指标注册器
// 核心能力：暴露/metrics指标端点、/health健康检查端点、/status网速快照端点、优雅启动/关闭
type HTTPServer struct {
	addr     string               // 监听地址（格式：ip:port）
	server   *http.Server         // 底层HTTP服务器对象
	registry *prometheus.Registry // Prometheus指标注册器（注入自定义指标）
}

// statusWriter 包装http.ResponseWriter，用于捕获HTTP响应状态码
// 解决原生ResponseWriter无法直接获取返回状态码的问题
type statusWriter struct {
	http.ResponseWriter     // 嵌入原生ResponseWriter，继承其所有方法
	status              int // 记录响应状态码，默认200 OK
}

// WriteHeader 重写http.ResponseWriter的WriteHeader方法，记录响应状态码
func (w *statusWriter) WriteHeader(statusCode int) {
	w.status = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

// httpShutdownTimeout 优雅关闭超时时间，避免关闭流程无限阻塞
const httpShutdownTimeout = 5 * time.Second

// NewHTTPServer 创建HTTP服务实例（依赖注入模式）
// 核心初始化：
//  1. 注册/metrics端点：暴露Prometheus指标（含自定义指标）
//  2. 注册/health端点：提供服务健康检查（返回200 OK）
//  3. 注册/status端点：返回当前网速展示快照JSON（空字段=当前不可用）
//  4. 超时参数来自配置（读/写/空闲超时）
func NewHTTPServer(cfg *config.ServerConfig, registry *prometheus.Registry, display DisplayProvider) *HTTPServer {
	mux := http.NewServeMux()

	// logRequest 请求日志记录辅助函数
	// 功能：记录请求方法、URL、客户端地址、响应状态码、处理耗时
	logRequest := func(r *http.Request, msg string, statusCode int, start time.Time) {
		logger.Info(
			msg,
			zap.String("method", r.Method),
			zap.String("url", r.URL.String()),
			zap.String("remote", r.RemoteAddr),
			zap.Int("status", statusCode),
			zap.Duration("duration", time.Since(start)),
		)
	}

	// /metrics 端点：暴露Prometheus指标（含自定义注册器中的指标）
	mux.Handle("/metrics", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := &statusWriter{ResponseWriter: w, status: 200}

		promhttp.HandlerFor(registry, promhttp.HandlerOpts{
			ErrorLog: zap.NewStdLog(logger.GetGlobalLogger()), // 复用全局日志器
		}).ServeHTTP(ww, r)

		logRequest(r, "metrics request received", ww.status, start)
	}))

	// /health 端点：服务健康检查（无依赖检查，直接返回200 OK）
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := &statusWriter{ResponseWriter: w, status: 200}

		ww.WriteHeader(http.StatusOK)
		_, _ = ww.Write([]byte("OK"))

		logRequest(r, "health check received", ww.status, start)
	})

	// /status 端点：展示框架消费的格式化网速快照
	// receive/transmit 字段缺失表示"当前不可用"（首采样/读失败），不是错误
	mux.HandleFunc("/status", func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := &statusWriter{ResponseWriter: w, status: 200}

		ww.Header().Set("Content-Type", "application/json")
		snapshot := collector.DisplaySnapshot{}
		if display != nil {
			snapshot = display.Display()
		}
		if err := json.NewEncoder(ww).Encode(snapshot); err != nil {
			logger.Error("encode status snapshot failed", zap.Error(err))
		}

		logRequest(r, "status request received", ww.status, start)
	})

	return &HTTPServer{
		addr:     cfg.Addr,
		registry: registry,
		server: &http.Server{
			Addr:         cfg.Addr,
			Handler:      mux,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
			IdleTimeout:  cfg.IdleTimeout,
		},
	}
}

// Start 启动HTTP服务（非阻塞模式）
// 服务启动后会持续运行，直到调用Shutdown方法；
// 非正常关闭（非http.ErrServerClosed）会触发Fatal日志
func (s *HTTPServer) Start() error {
	logger.Info(
		"starting HTTP server",
		zap.String("listen_addr", s.addr),
		zap.Duration("read_timeout", s.server.ReadTimeout),
		zap.Duration("write_timeout", s.server.WriteTimeout),
		zap.Duration("idle_timeout", s.server.IdleTimeout),
	)

	// 子goroutine中启动服务（避免阻塞主流程）
	go func() {
		if err := s.server.ListenAndServe(); err != nil {
			// 区分正常关闭和异常错误
			if !errors.Is(err, http.ErrServerClosed) {
				logger.Fatal(
					"HTTP server failed to listen",
					zap.Error(err),
					zap.String("listen_addr", s.addr),
				)
			} else {
				logger.Info(
					"HTTP server stopped listening",
					zap.String("listen_addr", s.addr),
				)
			}
		}
	}()
	return nil
}

// Shutdown 优雅关闭HTTP服务
// 停止接收新请求，等待现有请求在超时时间内处理完成（超时错误会被忽略）
func (s *HTTPServer) Shutdown() error {
	logger.Info("starting graceful shutdown of HTTP server", zap.String("listen_addr", s.addr))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), httpShutdownTimeout)
	defer cancel()

	if err := s.server.Shutdown(shutdownCtx); err != nil {
		// 忽略超时错误（超时视为关闭完成）
		if errors.Is(shutdownCtx.Err(), context.DeadlineExceeded) {
			return nil
		}
		logger.Error("HTTP server shutdown failed", zap.Error(err), zap.String("listen_addr", s.addr))
		return err
	}
	logger.Info("HTTP server shutdown successfully", zap.String("listen_addr", s.addr))
	return nil
}

// WaitForShutdown 监听系统退出信号（SIGINT/SIGTERM），触发优雅关闭流程
// shutdownFunc 为自定义关闭函数（如HTTP服务关闭、采集器停止等），不能为nil
func WaitForShutdown(shutdownFunc func() error) {
	// 容错：检查关闭函数是否为空
	if shutdownFunc == nil {
		logger.Error("shutdownFunc is nil, cannot execute shutdown")
		return
	}

	// 注册信号监听通道（缓冲大小1，避免信号丢失）
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	logger.Info("service is running, waiting for shutdown signal (SIGINT/SIGTERM)...")

	// 阻塞等待信号（程序核心运行阶段）
	sig := <-sigChan
	logger.Info("received shutdown signal", zap.String("signal", sig.String()))

	// 执行关闭逻辑（带超时控制）
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// 异步执行关闭函数（避免阻塞信号处理）
	shutdownErrChan := make(chan error, 1)
	go func() {
		logger.Info("starting graceful shutdown...")
		shutdownErrChan <- shutdownFunc()
		close(shutdownErrChan)
	}()

	// 等待关闭完成或超时
	select {
	case err := <-shutdownErrChan:
		if err != nil {
			logger.Error("graceful shutdown failed", zap.Error(err))
		} else {
			logger.Info("graceful shutdown completed successfully")
		}
	case <-ctx.Done():
		logger.Error("graceful shutdown timed out", zap.Error(ctx.Err()))
	}

	// 日志同步：确保缓存日志写入输出（忽略stdout无效句柄错误）
	if err := logger.Sync(); err != nil {
		if err.Error() != "sync /dev/stdout: bad file descriptor" {
			logger.Warn("logger sync failed", zap.Error(err))
		}
	}

	logger.Info("shutdown workflow finished, program exiting")
}
