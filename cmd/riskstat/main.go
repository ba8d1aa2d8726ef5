package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"backtest-risk/internal/app"
	"backtest-risk/internal/config"
	"backtest-risk/internal/log"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "配置文件路径，默认使用 configs/config.yaml")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	logger, err := log.NewLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer func(logger *zap.Logger) {
		_ = logger.Sync()
	}(logger)

	riskApp := app.New(cfg, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	result, err := riskApp.Run(ctx)
	if err != nil {
		logger.Error("风险统计运行异常", zap.Error(err))
		os.Exit(1)
	}

	fmt.Println(result.Summary)

	snapshot, err := json.MarshalIndent(result.Snapshot, "", "  ")
	if err != nil {
		logger.Error("序列化快照失败", zap.Error(err))
		os.Exit(1)
	}
	fmt.Println(string(snapshot))
}
