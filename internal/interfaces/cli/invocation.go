package cli

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUsage marks command-line mistakes. They are reported before any file
// is read and exit with status 2.
var ErrUsage = errors.New("usage error")

// Invocation is the positional part of the command line
type Invocation struct {
	// Configs are the secrets files, in the order given
	Configs []string
	// Command is everything after the -- separator
	Command []string
}

// ParseInvocation splits args at dashAt, the number of positional
// arguments that preceded the -- separator, or -1 when it was absent.
func ParseInvocation(args []string, dashAt int) (Invocation, error) {
	if dashAt < 0 {
		return Invocation{}, fmt.Errorf("%w: -- separator is required before the command", ErrUsage)
	}
	if dashAt > len(args) {
		return Invocation{}, fmt.Errorf("%w: separator position %d out of range", ErrUsage, dashAt)
	}

	configs := args[:dashAt]
	command := args[dashAt:]

	if len(configs) == 0 {
		return Invocation{}, fmt.Errorf("%w: at least one config file is required", ErrUsage)
	}
	for _, c := range configs {
		if c == "" {
			return Invocation{}, fmt.Errorf("%w: config path cannot be empty", ErrUsage)
		}
	}
	if strings.TrimSpace(strings.Join(command, " ")) == "" {
		return Invocation{}, fmt.Errorf("%w: command is required after -- separator", ErrUsage)
	}

	return Invocation{
		Configs: append([]string(nil), configs...),
		Command: append([]string(nil), command...),
	}, nil
}
