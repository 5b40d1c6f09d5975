package agent

import (
	"context"
	"fmt"
	"os"

	"github.com/netspeed-collector/internal/server"
	"github.com/netspeed-collector/pkg/config"
	"github.com/netspeed-collector/pkg/logger"
	"github.com/netspeed-collector/pkg/registers"
	"github.com/netspeed-collector/pkg/util"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	cfgFile   string
	GlobalCfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "netspeed-collector",
	Short: "Status-bar network throughput sampler (rx/tx rates from kernel counters) with Prometheus",
	RunE: func(cmd *cobra.Command, args []string) error {
		var err error
		GlobalCfg, err = config.LoadConfigWithCli(cmd)
		if err != nil {
			// 统一输出错误到 stderr，不返回给 cobra
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			fmt.Fprintf(os.Stderr, "请检查配置文件路径或使用 -c 参数指定\n")
			os.Exit(1)
		}
		if err := runServer(cmd.Context(), GlobalCfg); err != nil {
			fmt.Fprintf(os.Stderr, "服务启动失败: %v\n", err)
			os.Exit(1)
		}
		return nil
	},
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "configs/config.yaml", "配置文件路径")
	// 注册分组 flag
	initServerFlags(rootCmd)
	initMonitorFlags(rootCmd)
	initLogFlags(rootCmd)
}

func runServer(ctx context.Context, cfg *config.Config) error {

	// 初始化banner
	util.PrintBanner("netspeed", "ColorBlue")

	// 初始化日志
	if _, err := logger.InitLogger(&cfg.Log); err != nil {
		return fmt.Errorf("日志初始化失败: %w", err)
	}
	// 程序退出时刷盘
	defer logger.Sync()

	logger.Info("log initialization successful",
		zap.String("path", cfg.Log.Path),
		zap.String("level", cfg.Log.Level),
		zap.String("format", cfg.Log.Format))

	const enableProcess = true
	// init Registry + 采集Agent（内含网速采集器）
	registry, agent, netspeedCollector, err := registers.InitPromRegistry(ctx, enableProcess, cfg)
	if err != nil {
		return fmt.Errorf("初始化采集器失败: %w", err)
	}

	httpServer := server.NewHTTPServer(&cfg.Server, registry, netspeedCollector)
	if err := httpServer.Start(); err != nil {
		return fmt.Errorf("start HTTP server failed: %w", err)
	}

	server.WaitForShutdown(func() error {
		// 关闭顺序：HTTP服务 → 采集器
		if err := httpServer.Shutdown(); err != nil {
			return fmt.Errorf("shutdown HTTP server failed: %w", err)
		}
		if err := agent.Shutdown(context.Background()); err != nil {
			return fmt.Errorf("shutdown collector agent failed: %w", err)
		}

		logger.Info("all services shutdown successfully")
		return nil
	})
	return nil
}
