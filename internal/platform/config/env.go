// Package config loads process configuration from files and the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EnvPrefix namespaces every environment variable read by eventline.
const EnvPrefix = "EVENTLINE_"

// ParseEnv loads configuration from EVENTLINE_-prefixed environment
// variables. Fields whose variable is unset keep their current value.
func ParseEnv(target any) error {
	if err := env.ParseWithOptions(target, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
