package cli

import (
	"context"
	"fmt"

	"github.com/run-with-secrets/run-with-secrets/internal/application/services"
	"github.com/run-with-secrets/run-with-secrets/internal/config"
	"github.com/run-with-secrets/run-with-secrets/internal/core/domain/identity"
	"github.com/run-with-secrets/run-with-secrets/internal/core/domain/process"
	"github.com/run-with-secrets/run-with-secrets/internal/interfaces/di"
)

// run loads the secrets, resolves the target identity and launches the
// command, returning the command's exit status.
func run(ctx context.Context, settings config.Settings, inv Invocation, opts di.Options) (int, error) {
	if settings.User != "" {
		if _, err := identity.ParseSpec(settings.User); err != nil {
			return 0, fmt.Errorf("%w: %w", ErrUsage, err)
		}
	}

	command, err := process.NewCommandWithShell(settings.Shell, inv.Command)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrUsage, err)
	}

	container, err := di.NewContainer(settings, opts)
	if err != nil {
		return 0, fmt.Errorf("failed to initialize: %w", err)
	}

	env, err := container.EnvironmentService.Build(ctx, inv.Configs)
	if err != nil {
		return 0, err
	}

	demotion, err := container.PrivilegeService.Prepare(settings.User)
	if err != nil {
		return 0, err
	}

	result, err := container.LaunchService.Launch(ctx, services.LaunchRequest{
		Environment: env,
		Command:     command,
		Demotion:    demotion,
	})
	if err != nil {
		return 0, err
	}

	return result.ExitCode, nil
}
