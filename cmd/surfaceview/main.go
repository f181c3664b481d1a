// Package main is the entry point for the surface viewer.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/surfaceview/internal/app"
	"github.com/Faultbox/surfaceview/internal/config"
	"github.com/Faultbox/surfaceview/internal/logger"
	"github.com/Faultbox/surfaceview/internal/viewer"
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
	defer logger.Sync()

	logger.Info("=== surfaceview ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if config.SaveRequested() {
		path, err := cfg.Save()
		if err != nil {
			logger.Error("failed to save config", zap.Error(err))
			os.Exit(1)
		}
		logger.Info("config saved", zap.String("path", path))
	}

	// An explicitly configured tool that does not run is fatal at startup.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	_, err = app.ResolveTools(ctx, cfg.Tools)
	cancel()
	if err != nil {
		logger.Error("tool configuration error", zap.Error(err))
		os.Exit(1)
	}

	scene, err := app.NewScene(cfg)
	if err != nil {
		logger.Error("failed to build scene", zap.Error(err))
		os.Exit(1)
	}

	if cfg.Render.Headless {
		res, err := app.RenderHeadless(scene, cfg.Graphics.Width, cfg.Graphics.Height, cfg.Render.Frames, cfg.Render.Output)
		if err != nil {
			logger.Error("headless render failed", zap.Error(err))
			os.Exit(1)
		}
		fmt.Println(res.Path)
		return
	}

	v, err := viewer.New(cfg, scene)
	if err != nil {
		logger.Error("failed to create viewer", zap.Error(err))
		os.Exit(1)
	}
	defer v.Close()

	if err := v.Run(); err != nil {
		logger.Error("viewer error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("viewer closed normally")
}
