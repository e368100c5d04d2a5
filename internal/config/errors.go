package config

import "errors"

// Validation errors returned by Settings.Validate
var (
	// ErrEmptyPrefix indicates the resolved prefix is empty
	ErrEmptyPrefix = errors.New("prefix cannot be empty")
	// ErrInvalidPrefix indicates a prefix that cannot appear in a variable name
	ErrInvalidPrefix = errors.New("prefix cannot contain '=' or NUL")
	// ErrInvalidShell indicates a shell that is not an absolute path
	ErrInvalidShell = errors.New("shell must be an absolute path")
)
