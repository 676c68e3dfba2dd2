// shadowvol builds stencil shadow volumes for a YAML scene.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-shadows/internal/config"
	"github.com/Faultbox/midgard-shadows/internal/logger"
)

func main() {
	config.ParseFlags()
	args := config.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}

	command := args[0]
	args = args[1:]
	if command == "help" || command == "-h" || command == "--help" {
		printUsage()
		return
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

	opts, err := cfg.ShadowOptions()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	opts.Logger = logger.Named("shadow")
	logger.Debug("shadow options",
		zap.Stringer("method", opts.Method),
		zap.Float32("infinity", opts.Infinity),
		zap.Bool("no_zpass_caps", opts.NoZPassCaps),
		zap.Int("max_lights", opts.MaxLights),
	)

	switch command {
	case "info":
		err = cmdInfo(os.Stdout, args, opts)
	case "build":
		err = cmdBuild(os.Stdout, args, opts)
	case "export":
		err = cmdExport(os.Stdout, args, opts)
	case "config":
		err = cmdConfig(os.Stdout, args, cfg)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		logger.Error("command failed", zap.String("command", command), zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		logger.Sync()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`shadowvol - stencil shadow volume builder

Usage:
  shadowvol [flags] <command> [options]

Commands:
  info <scene.yaml>                 Show mesh, adjacency and light information
  build [-frames N] <scene.yaml>    Build volumes and print per-light counts
  export <scene.yaml> <out>         Write volumes as .obj or .svol
  config [path]                     Save the effective config

Flags:
  -config <path>     Config file (default ./shadowvol.yaml)
  -method <m>        zfail or zpass
  -infinity <d>      Extrusion distance
  -no-zpass-caps     Omit caps on zpass volumes
  -max-lights <n>    Lights considered per frame
  -debug             Debug logging
  -log-file <path>   Also log to a rotating file

Examples:
  shadowvol info scenes/cube.yaml
  shadowvol -method zpass build -frames 100 scenes/sphere.yaml
  shadowvol export scenes/cube.yaml cube_volume.obj`)
}
