package services

import (
	"context"
	"errors"
	"fmt"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/run-with-secrets/run-with-secrets/internal/core/domain/identity"
	"github.com/run-with-secrets/run-with-secrets/internal/core/domain/process"
	"github.com/run-with-secrets/run-with-secrets/internal/core/testfixtures"
	procp "github.com/run-with-secrets/run-with-secrets/internal/core/ports/process"
	"github.com/run-with-secrets/run-with-secrets/internal/mock"
)

func launchRequest(t *testing.T, d *identity.Demotion) LaunchRequest {
	t.Helper()
	cmd, err := process.NewCommand([]string{"echo", "$SECRET_TOKEN"})
	require.NoError(t, err)
	return LaunchRequest{
		Environment: testfixtures.NewSnapshotBuilder().
			From("b.json").WithKey("token", "configB").
			From("a.yaml").WithKey("host", "db").
			Build(),
		Command:  cmd,
		Demotion: d,
	}
}

func TestLaunchService_PropagatesExitCode(t *testing.T) {
	ctrl := gomock.NewController(t)
	executor := mock.NewMockExecutor(ctrl)
	proc := mock.NewMockProcess(ctrl)
	ctx := context.Background()
	req := launchRequest(t, nil)

	executor.EXPECT().Execute(ctx, procp.LaunchSpec{
		Command: req.Command,
		Env:     []string{"SECRET_HOST=db", "SECRET_TOKEN=configB"},
	}).Return(proc, nil)
	proc.EXPECT().Wait().Return(3, nil)
	proc.EXPECT().PID().Return(4242).AnyTimes()

	result, err := NewLaunchService(executor, nil).Launch(ctx, req)
	require.NoError(t, err)

	assert.Equal(t, 3, result.ExitCode)
	assert.Equal(t, []process.State{
		process.StateIdle,
		process.StateSpawning,
		process.StateExecuting,
		process.StateExited,
	}, result.History)
}

func TestLaunchService_DemotionPassesThrough(t *testing.T) {
	ctrl := gomock.NewController(t)
	executor := mock.NewMockExecutor(ctrl)
	proc := mock.NewMockProcess(ctrl)
	req := launchRequest(t, testfixtures.NewDemotionBuilder().AsUser("app", 1000).InGroup("staff", 50).Build())

	executor.EXPECT().Execute(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, spec procp.LaunchSpec) (procp.Process, error) {
			require.NotNil(t, spec.Demotion)
			assert.Equal(t, uint32(1000), spec.Demotion.UID())
			return proc, nil
		})
	proc.EXPECT().Wait().Return(0, nil)
	proc.EXPECT().PID().Return(4242).AnyTimes()

	result, err := NewLaunchService(executor, nil).Launch(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 0, result.ExitCode)
	assert.Contains(t, result.History, process.StateDemoting)
}

func TestLaunchService_PrivilegeDropRefused(t *testing.T) {
	ctrl := gomock.NewController(t)
	executor := mock.NewMockExecutor(ctrl)
	req := launchRequest(t, testfixtures.NewDemotionBuilder().Build())

	refused := fmt.Errorf("%w: %w", process.ErrPrivilegeDrop, syscall.EPERM)
	executor.EXPECT().Execute(gomock.Any(), gomock.Any()).Return(nil, refused)

	result, err := NewLaunchService(executor, nil).Launch(context.Background(), req)
	require.Error(t, err)

	assert.True(t, errors.Is(err, process.ErrPrivilegeDrop))
	assert.Equal(t, "unable to change user. are you running as root?", err.Error())
	assert.Equal(t, -1, result.ExitCode)
	assert.NotContains(t, result.History, process.StateExecuting)
	assert.Equal(t, process.StateFailed, result.History[len(result.History)-1])
}

func TestLaunchService_StartFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	executor := mock.NewMockExecutor(ctrl)
	startErr := errors.New("failed to start command: no such file")
	executor.EXPECT().Execute(gomock.Any(), gomock.Any()).Return(nil, startErr)

	result, err := NewLaunchService(executor, nil).Launch(context.Background(), launchRequest(t, nil))
	assert.ErrorIs(t, err, startErr)
	assert.NotErrorIs(t, err, process.ErrPrivilegeDrop)
	assert.Equal(t, []process.State{process.StateIdle, process.StateSpawning, process.StateFailed}, result.History)
}

func TestLaunchService_InvalidCommandNeverStarts(t *testing.T) {
	ctrl := gomock.NewController(t)
	executor := mock.NewMockExecutor(ctrl)

	cmd, err := process.NewCommand([]string{" ", ""})
	require.NoError(t, err)

	result, err := NewLaunchService(executor, nil).Launch(context.Background(), LaunchRequest{Command: cmd})
	require.Error(t, err)
	assert.Equal(t, []process.State{process.StateIdle}, result.History)
}

func TestLaunchService_EmptyEnvironmentIsNotNil(t *testing.T) {
	ctrl := gomock.NewController(t)
	executor := mock.NewMockExecutor(ctrl)
	proc := mock.NewMockProcess(ctrl)

	cmd, err := process.NewCommand([]string{"true"})
	require.NoError(t, err)

	executor.EXPECT().Execute(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, spec procp.LaunchSpec) (procp.Process, error) {
			assert.NotNil(t, spec.Env)
			assert.Empty(t, spec.Env)
			return proc, nil
		})
	proc.EXPECT().Wait().Return(0, nil)
	proc.EXPECT().PID().Return(1).AnyTimes()

	_, err = NewLaunchService(executor, nil).Launch(context.Background(), LaunchRequest{Command: cmd})
	require.NoError(t, err)
}
