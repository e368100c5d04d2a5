package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// FromEnv reads RUN_WITH_SECRETS_* settings from environment. A nil map
// reads the process environment. Unset variables stay zero.
func FromEnv(environment map[string]string) (Settings, error) {
	var s Settings
	err := env.ParseWithOptions(&s, env.Options{
		Prefix:      EnvPrefix,
		Environment: environment,
	})
	if err != nil {
		return Settings{}, fmt.Errorf("error getting env settings: %w", err)
	}
	return s, nil
}
