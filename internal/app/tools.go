package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/surfaceview/internal/config"
	"github.com/Faultbox/surfaceview/internal/logger"
	"github.com/Faultbox/surfaceview/internal/tools"
)

// ResolveTools builds the tool registry from the configuration and resolves
// both binaries. An explicitly configured binary that fails to run is
// returned as tools.ErrBinaryNotExecutable.
func ResolveTools(ctx context.Context, cfg config.ToolsConfig, opts ...tools.Option) (*tools.Registry, error) {
	reg := tools.NewRegistry(opts...)

	overrides := map[string]string{}
	if cfg.FFmpeg != "" {
		overrides[tools.FFmpeg] = cfg.FFmpeg
	}
	if cfg.ImageMagick != "" {
		overrides[tools.ImageMagick] = cfg.ImageMagick
	}
	reg.Change(overrides)

	if cfg.SettingsFile != "" {
		if err := reg.ChangeFromFile(cfg.SettingsFile); err != nil {
			return nil, err
		}
	}

	if err := reg.Detect(ctx); err != nil {
		return nil, fmt.Errorf("resolving tools: %w", err)
	}

	for _, name := range []string{tools.FFmpeg, tools.ImageMagick} {
		v, _ := reg.Get(name)
		if v == tools.Unset {
			logger.Warn("tool not found", zap.String("setting", name))
			continue
		}
		logger.Info("tool found", zap.String("setting", name), zap.String("binary", v))
	}
	return reg, nil
}
