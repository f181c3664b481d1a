// Command toolprobe reports whether the ffmpeg and ImageMagick binaries
// configured for surfaceview can be found and run.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/Faultbox/surfaceview/internal/app"
	"github.com/Faultbox/surfaceview/internal/config"
	"github.com/Faultbox/surfaceview/internal/logger"
	"github.com/Faultbox/surfaceview/internal/tools"
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

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	reg, err := app.ResolveTools(ctx, cfg.Tools)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		if errors.Is(err, tools.ErrBinaryNotExecutable) {
			os.Exit(2)
		}
		os.Exit(1)
	}

	for _, t := range []struct {
		setting string
		label   string
	}{
		{tools.FFmpeg, "ffmpeg"},
		{tools.ImageMagick, "ImageMagick"},
	} {
		if reg.Found(ctx, t.setting) {
			path, _ := reg.Get(t.setting)
			fmt.Printf("surfaceview: %s successfully found (%s).\n", t.label, path)
			continue
		}
		fmt.Printf("surfaceview: can't find or access %s.\n", t.label)
	}
}
