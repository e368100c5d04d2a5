package process

import (
	"fmt"
	"path/filepath"
	"strings"
)

// DefaultShell interprets the command line
const DefaultShell = "/bin/sh"

// Command is a command line to be run by a shell. The tokens given after
// the separator are joined with single spaces and handed to the shell as
// one string, so pipes, redirection and expansion of the passed
// environment all work.
type Command struct {
	shell  string
	tokens []string
}

// NewCommand creates a Command value object run by DefaultShell
func NewCommand(tokens []string) (Command, error) {
	return NewCommandWithShell(DefaultShell, tokens)
}

// NewCommandWithShell creates a Command run by the given shell
func NewCommandWithShell(shell string, tokens []string) (Command, error) {
	if len(tokens) == 0 {
		return Command{}, fmt.Errorf("command cannot be empty")
	}
	if shell == "" {
		shell = DefaultShell
	}

	return Command{
		shell:  shell,
		tokens: append([]string(nil), tokens...), // Copy slice
	}, nil
}

// Shell returns the shell executable
func (c Command) Shell() string {
	return c.shell
}

// Tokens returns a copy of the original tokens
func (c Command) Tokens() []string {
	return append([]string(nil), c.tokens...)
}

// Line returns the command line passed to the shell
func (c Command) Line() string {
	return strings.Join(c.tokens, " ")
}

// Args returns the shell arguments, excluding the shell itself
func (c Command) Args() []string {
	return []string{"-c", c.Line()}
}

// String returns a string representation of the command
func (c Command) String() string {
	return fmt.Sprintf("%s -c %q", c.shell, c.Line())
}

// IsValid validates the command structure
func (c Command) IsValid() error {
	if strings.TrimSpace(c.Line()) == "" {
		return fmt.Errorf("command cannot be empty")
	}
	if !filepath.IsAbs(c.shell) {
		return fmt.Errorf("shell must be an absolute path: %s", c.shell)
	}
	return nil
}
