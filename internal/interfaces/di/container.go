package di

import (
	"fmt"
	"io"
	"os"

	"github.com/run-with-secrets/run-with-secrets/internal/application/services"
	"github.com/run-with-secrets/run-with-secrets/internal/config"
	configports "github.com/run-with-secrets/run-with-secrets/internal/core/ports/config"
	identityports "github.com/run-with-secrets/run-with-secrets/internal/core/ports/identity"
	procp "github.com/run-with-secrets/run-with-secrets/internal/core/ports/process"
	configinfra "github.com/run-with-secrets/run-with-secrets/internal/infrastructure/config"
	identityinfra "github.com/run-with-secrets/run-with-secrets/internal/infrastructure/identity"
	processinfra "github.com/run-with-secrets/run-with-secrets/internal/infrastructure/process"
	"github.com/run-with-secrets/run-with-secrets/internal/logging"
)

// Options overrides the container's I/O and adapters. Zero fields use the
// process's standard streams and the OS adapters.
type Options struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Environment is read for RUN_WITH_SECRETS_* settings; nil reads the
	// process environment
	Environment map[string]string

	Loader   configports.Loader
	Resolver identityports.Resolver
	Executor procp.Executor
}

func (o Options) withDefaults() Options {
	if o.Stdin == nil {
		o.Stdin = os.Stdin
	}
	if o.Stdout == nil {
		o.Stdout = os.Stdout
	}
	if o.Stderr == nil {
		o.Stderr = os.Stderr
	}
	return o
}

// Container holds all application dependencies
type Container struct {
	Settings config.Settings

	// Infrastructure
	Loader   configports.Loader
	Resolver identityports.Resolver
	Executor procp.Executor

	// Application services
	EnvironmentService *services.EnvironmentService
	PrivilegeService   *services.PrivilegeService
	LaunchService      *services.LaunchService

	// Output
	Logger   *logging.Logger
	Reporter *logging.ConsoleReporter
}

// NewContainer creates and configures the dependency injection container
func NewContainer(settings config.Settings, opts Options) (*Container, error) {
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	opts = opts.withDefaults()

	c := &Container{
		Settings: settings,
		Logger:   logging.New(opts.Stderr, settings.Verbose),
		Reporter: logging.NewConsoleReporter(opts.Stderr),
	}

	c.initializeComponents(opts)

	c.Logger.Debug().
		Str("prefix", settings.Prefix).
		Str("shell", settings.Shell).
		Bool("demote", settings.User != "").
		Msg("container initialized")

	return c, nil
}

// initializeComponents wires adapters into services
func (c *Container) initializeComponents(opts Options) {
	c.Loader = opts.Loader
	if c.Loader == nil {
		c.Loader = configinfra.NewFileLoader(c.Settings.Prefix, c.Logger)
	}

	c.Resolver = opts.Resolver
	if c.Resolver == nil {
		c.Resolver = identityinfra.NewOSResolver()
	}

	c.Executor = opts.Executor
	if c.Executor == nil {
		c.Executor = processinfra.NewExecutorWithOptions(c.Logger, opts.Stdin, opts.Stdout, opts.Stderr)
	}

	c.EnvironmentService = services.NewEnvironmentService(c.Loader, c.Reporter, c.Logger)
	c.PrivilegeService = services.NewPrivilegeService(c.Resolver, c.Logger)
	c.LaunchService = services.NewLaunchService(c.Executor, c.Logger)
}
