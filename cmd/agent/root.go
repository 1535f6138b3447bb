package agent

import (
	"context"
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/host-exporter/cmd/server"
	"github.com/host-exporter/pkg/config"
	"github.com/host-exporter/pkg/logger"
	"github.com/host-exporter/pkg/registers"
	"github.com/host-exporter/pkg/scrape"
	"github.com/host-exporter/pkg/signal"
	"github.com/host-exporter/pkg/util"
)

const projectName = "host-exporter"

var cfgFile string

var rootCmd = &cobra.Command{
	Use:          projectName,
	Short:        "Host metrics exporter (CPU/memory/disk/network) for Prometheus",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfigWithCli(cmd)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			fmt.Fprintf(os.Stderr, "请检查配置文件路径或使用 -c 参数指定\n")
			return err
		}
		return runServer(cmd.Context(), cfg)
	},
}

// Execute 启动入口，任何启动错误（含指标注册失败）退出码为 1
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "配置文件路径（如 configs/config.yaml）")
	// 注册分组 flag
	initServerFlags(rootCmd)
	initMonitorFlags(rootCmd)
	initLogFlags(rootCmd)
}

func runServer(ctx context.Context, cfg *config.Config) error {
	util.PrintBanner(os.Stdout, projectName, "ColorBlue")

	zl, err := logger.InitLogger(&cfg.Log)
	if err != nil {
		return fmt.Errorf("日志初始化失败: %w", err)
	}
	defer logger.Sync()

	logger.SetDefaultCollector("main")
	logger.Info("log initialization successful",
		zap.String("path", cfg.Log.Path),
		zap.String("level", cfg.Log.Level),
		zap.String("format", cfg.Log.Format))

	asm, err := registers.InitPromRegistry(cfg, registers.DefaultSources(cfg))
	if err != nil {
		return fmt.Errorf("init prometheus registry: %w", err)
	}

	opts := []scrape.Option{
		scrape.WithWorkers(cfg.Monitor.Workers),
		scrape.WithFailFast(cfg.Monitor.FailFast),
	}
	var httpDuration *prometheus.HistogramVec
	if asm.Agent != nil {
		opts = append(opts, scrape.WithObserver(asm.Agent))
		httpDuration = asm.Agent.HTTPDuration
	}
	scraper := scrape.New(asm.Registry, asm.Collectors, opts...)

	httpServer := server.NewHTTPServer(&cfg.Server, zl, scraper, httpDuration)
	if err := httpServer.Start(); err != nil {
		return fmt.Errorf("start HTTP server failed: %w", err)
	}

	signal.WaitForShutdown(ctx, zl, httpServer.Shutdown)
	return nil
}
