package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	s := Defaults()

	assert.Equal(t, "SECRET", s.Prefix)
	assert.Equal(t, "/bin/sh", s.Shell)
	assert.Empty(t, s.User)
	assert.Zero(t, s.Verbose)
	assert.NoError(t, s.Validate())
}

func TestFromEnv(t *testing.T) {
	s, err := FromEnv(map[string]string{
		"RUN_WITH_SECRETS_PREFIX":  "APP",
		"RUN_WITH_SECRETS_USER":    "svc:staff",
		"RUN_WITH_SECRETS_VERBOSE": "2",
		"RUN_WITH_SECRETS_SHELL":   "/bin/bash",
		"PREFIX":                   "ignored",
		"USER":                     "ignored",
	})
	require.NoError(t, err)

	assert.Equal(t, Settings{Prefix: "APP", User: "svc:staff", Verbose: 2, Shell: "/bin/bash"}, s)
}

func TestFromEnv_Unset(t *testing.T) {
	s, err := FromEnv(map[string]string{})
	require.NoError(t, err)
	assert.Equal(t, Settings{}, s)
}

func TestFromEnv_BadVerbose(t *testing.T) {
	_, err := FromEnv(map[string]string{"RUN_WITH_SECRETS_VERBOSE": "loud"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error getting env settings")
}

func TestBuilder_Layering(t *testing.T) {
	tests := []struct {
		name     string
		env      map[string]string
		flags    Settings
		expected Settings
	}{
		{
			name:     "defaults only",
			env:      map[string]string{},
			expected: Settings{Prefix: "SECRET", Shell: "/bin/sh"},
		},
		{
			name:     "environment over defaults",
			env:      map[string]string{"RUN_WITH_SECRETS_PREFIX": "APP", "RUN_WITH_SECRETS_USER": "svc"},
			expected: Settings{Prefix: "APP", User: "svc", Shell: "/bin/sh"},
		},
		{
			name:     "flags over environment",
			env:      map[string]string{"RUN_WITH_SECRETS_PREFIX": "APP", "RUN_WITH_SECRETS_VERBOSE": "1"},
			flags:    Settings{Prefix: "CLI", Verbose: 2},
			expected: Settings{Prefix: "CLI", Verbose: 2, Shell: "/bin/sh"},
		},
		{
			name:     "unset flags keep environment",
			env:      map[string]string{"RUN_WITH_SECRETS_USER": "svc"},
			flags:    Settings{Verbose: 1},
			expected: Settings{Prefix: "SECRET", User: "svc", Verbose: 1, Shell: "/bin/sh"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewBuilder().WithEnv(tt.env).With(tt.flags).Build()
			require.NoError(t, err)
			assert.Equal(t, tt.expected, s)
		})
	}
}

func TestBuilder_EnvErrorSurfaces(t *testing.T) {
	_, err := NewBuilder().WithEnv(map[string]string{"RUN_WITH_SECRETS_VERBOSE": "x"}).Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "building settings")
}

func TestSettings_Validate(t *testing.T) {
	tests := []struct {
		name        string
		settings    Settings
		expectedErr error
	}{
		{name: "empty prefix", settings: Settings{Shell: "/bin/sh"}, expectedErr: ErrEmptyPrefix},
		{name: "equals in prefix", settings: Settings{Prefix: "A=B", Shell: "/bin/sh"}, expectedErr: ErrInvalidPrefix},
		{name: "nul in prefix", settings: Settings{Prefix: "A\x00", Shell: "/bin/sh"}, expectedErr: ErrInvalidPrefix},
		{name: "relative shell", settings: Settings{Prefix: "SECRET", Shell: "sh"}, expectedErr: ErrInvalidShell},
		{name: "valid", settings: Settings{Prefix: "app", Shell: "/bin/sh"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.settings.Validate()
			if tt.expectedErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.expectedErr)
		})
	}
}
