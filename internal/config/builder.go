package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"dario.cat/mergo"
)

// Builder layers settings sources. Later layers override earlier ones;
// zero fields in a layer leave the value below untouched.
type Builder struct {
	layers []Settings
	err    error
}

// NewBuilder starts from Defaults
func NewBuilder() *Builder {
	return &Builder{layers: []Settings{Defaults()}}
}

// WithEnv adds the RUN_WITH_SECRETS_* environment as a layer
func (b *Builder) WithEnv(environment map[string]string) *Builder {
	s, err := FromEnv(environment)
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}
	b.layers = append(b.layers, s)
	return b
}

// With adds an explicit layer, typically the flags that were set
func (b *Builder) With(s Settings) *Builder {
	b.layers = append(b.layers, s)
	return b
}

// Build merges the layers and validates the result
func (b *Builder) Build() (Settings, error) {
	if b.err != nil {
		return Settings{}, fmt.Errorf("error occurred during building settings: %w", b.err)
	}

	var out Settings
	for _, layer := range b.layers {
		if err := mergo.Merge(&out, layer, mergo.WithOverride); err != nil {
			return Settings{}, fmt.Errorf("error merging settings: %w", err)
		}
	}

	return out, out.Validate()
}

// Validate checks the merged settings
func (s Settings) Validate() error {
	if s.Prefix == "" {
		return ErrEmptyPrefix
	}
	if strings.ContainsAny(s.Prefix, "=\x00") {
		return fmt.Errorf("%w: %q", ErrInvalidPrefix, s.Prefix)
	}
	if !filepath.IsAbs(s.Shell) {
		return fmt.Errorf("%w: %q", ErrInvalidShell, s.Shell)
	}
	return nil
}
