package config

import (
	"github.com/run-with-secrets/run-with-secrets/internal/core/domain/process"
	"github.com/run-with-secrets/run-with-secrets/internal/core/domain/secrets"
)

// EnvPrefix is prepended to every settings variable read from the environment
const EnvPrefix = "RUN_WITH_SECRETS_"

// Settings controls a single run. Values come from defaults, then the
// RUN_WITH_SECRETS_* environment, then explicitly set flags.
type Settings struct {
	// Prefix names the child's variables as {PREFIX}_{KEY}
	Prefix string `env:"PREFIX"`
	// User is the user[:group] to drop to before running the command
	User string `env:"USER"`
	// Verbose is the log verbosity; 0 warnings only, 1 info, 2 or more debug
	Verbose int `env:"VERBOSE"`
	// Shell runs the command line with -c
	Shell string `env:"SHELL"`
}

// Defaults returns the settings used when nothing else is configured
func Defaults() Settings {
	return Settings{
		Prefix: secrets.DefaultPrefix,
		Shell:  process.DefaultShell,
	}
}
