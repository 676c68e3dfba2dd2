package config

import "flag"

var (
	flagConfig      = flag.String("config", "", "Path to config file")
	flagDebug       = flag.Bool("debug", false, "Enable debug logging")
	flagMethod      = flag.String("method", "", "Shadow method: zfail or zpass")
	flagInfinity    = flag.Float64("infinity", 0, "Shadow volume extrusion distance")
	flagNoZPassCaps = flag.Bool("no-zpass-caps", false, "Omit near/far caps for zpass volumes")
	flagMaxLights   = flag.Int("max-lights", 0, "Maximum lights considered per frame")
	flagLogFile     = flag.String("log-file", "", "Write logs to this file")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// Args returns the non-flag command-line arguments.
func Args() []string {
	return flag.Args()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagMethod != "" {
		cfg.Shadow.Method = *flagMethod
	}
	if *flagInfinity > 0 {
		cfg.Shadow.Infinity = float32(*flagInfinity)
	}
	if *flagNoZPassCaps {
		cfg.Shadow.CapZPass = false
	}
	if *flagMaxLights > 0 {
		cfg.Shadow.MaxLights = *flagMaxLights
	}
	if *flagLogFile != "" {
		cfg.Logging.LogFile = *flagLogFile
	}
}
