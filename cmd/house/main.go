// Package main is the entry point for the house viewer.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/Faultbox/house-viewer/internal/config"
	"github.com/Faultbox/house-viewer/internal/logger"
	"github.com/Faultbox/house-viewer/internal/viewer"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}

	if config.SaveRequested() {
		os.Exit(saveConfig(cfg))
	}

	// run returns before exiting so deferred cleanup always happens.
	code := run(cfg)
	logger.Sync()
	os.Exit(code)
}

func run(cfg *config.Config) int {
	logger.Info("=== House Viewer ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	v, err := viewer.New(cfg)
	if err != nil {
		logger.Error("failed to create viewer", zap.Error(err))
		return 1
	}
	defer v.Close()

	if err := v.Run(ctx); err != nil {
		logger.Error("viewer error", zap.Error(err))
		return 1
	}

	logger.Info("viewer closed normally")
	return 0
}

func saveConfig(cfg *config.Config) int {
	defer logger.Sync()

	path, err := cfg.Save()
	if err != nil {
		logger.Error("failed to save config", zap.Error(err))
		return 1
	}
	logger.Info("Config saved", zap.String("path", path))
	return 0
}
