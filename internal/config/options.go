package config

import (
	"github.com/Faultbox/midgard-shadows/internal/engine/shadow"
)

// ShadowOptions converts the shadow settings into node options.
// The logger is left unset so nodes use the global one.
func (c *Config) ShadowOptions() (shadow.Options, error) {
	method, err := shadow.ParseMethod(c.Shadow.Method)
	if err != nil {
		return shadow.Options{}, err
	}
	return shadow.Options{
		Method:      method,
		Infinity:    c.Shadow.Infinity,
		NoZPassCaps: !c.Shadow.CapZPass,
		MaxLights:   c.Shadow.MaxLights,
	}, nil
}
