// Package config loads process configuration from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EnvPrefix namespaces every variable read by campuslife binaries.
const EnvPrefix = "CAMPUSLIFE_"

// ParseEnv loads configuration from environment variables into target.
//
// Targets use `env` struct tags with fully qualified names
// (for example CAMPUSLIFE_SAVE_DIR) and `envDefault` for fallbacks.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
