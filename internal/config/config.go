// Package config handles shadow tool configuration loading and management.
package config

import (
	"errors"
	"fmt"
)

// Shadow method names accepted in config files and flags.
const (
	MethodZFail = "zfail"
	MethodZPass = "zpass"
)

// ErrInvalidConfig is returned by Validate for unusable settings.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds all settings.
type Config struct {
	Shadow  ShadowConfig  `yaml:"shadow"`
	Logging LoggingConfig `yaml:"logging"`
}

// ShadowConfig holds shadow volume construction settings.
type ShadowConfig struct {
	Method    string  `yaml:"method"`     // zfail or zpass
	Infinity  float32 `yaml:"infinity"`   // extrusion distance
	CapZPass  bool    `yaml:"cap_zpass"`  // emit caps for zpass volumes too
	MaxLights int     `yaml:"max_lights"` // lights considered per frame
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Shadow: ShadowConfig{
			Method:    MethodZFail,
			Infinity:  10000,
			CapZPass:  true,
			MaxLights: 8,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate checks that the config can drive volume construction.
func (c *Config) Validate() error {
	switch c.Shadow.Method {
	case MethodZFail, MethodZPass:
	default:
		return fmt.Errorf("%w: unknown shadow method %q", ErrInvalidConfig, c.Shadow.Method)
	}
	if c.Shadow.Infinity <= 0 {
		return fmt.Errorf("%w: infinity must be positive, got %v", ErrInvalidConfig, c.Shadow.Infinity)
	}
	if c.Shadow.MaxLights <= 0 {
		return fmt.Errorf("%w: max_lights must be positive, got %d", ErrInvalidConfig, c.Shadow.MaxLights)
	}
	return nil
}
