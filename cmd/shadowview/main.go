// shadowview displays a YAML scene with stencil shadows.
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-shadows/internal/config"
	"github.com/Faultbox/midgard-shadows/internal/engine/scene"
	"github.com/Faultbox/midgard-shadows/internal/logger"
	"github.com/Faultbox/midgard-shadows/internal/viewer"
)

var (
	flagWidth    = flag.Int("width", 1280, "Window width")
	flagHeight   = flag.Int("height", 720, "Window height")
	flagTwoSided = flag.Bool("two-sided", false, "Draw volumes in one pass with two-sided stencil")
	flagNoVSync  = flag.Bool("no-vsync", false, "Disable VSync")
	flagShotDir  = flag.String("snapshot-dir", "screenshots", "Directory for F12 snapshots")
)

func main() {
	config.ParseFlags()
	args := config.Args()
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "Usage: shadowview [flags] <scene.yaml>")
		flag.PrintDefaults()
		os.Exit(1)
	}

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

	logger.Info("=== Shadow Volume Viewer ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	opts, err := cfg.ShadowOptions()
	if err != nil {
		logger.Error("invalid shadow options", zap.Error(err))
		os.Exit(1)
	}
	opts.Logger = logger.Named("shadow")

	sc, err := scene.Load(args[0])
	if err != nil {
		logger.Error("failed to load scene", zap.String("path", args[0]), zap.Error(err))
		os.Exit(1)
	}

	v, err := viewer.New(viewer.Config{
		Title:       "shadowview - " + sc.Name,
		Width:       *flagWidth,
		Height:      *flagHeight,
		VSync:       !*flagNoVSync,
		TwoSided:    *flagTwoSided,
		Shadow:      opts,
		SnapshotDir: *flagShotDir,
	}, sc)
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
