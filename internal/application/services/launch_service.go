package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/run-with-secrets/run-with-secrets/internal/core/domain/identity"
	"github.com/run-with-secrets/run-with-secrets/internal/core/domain/process"
	"github.com/run-with-secrets/run-with-secrets/internal/core/domain/secrets"
	procp "github.com/run-with-secrets/run-with-secrets/internal/core/ports/process"
	"github.com/run-with-secrets/run-with-secrets/internal/logging"
)

// LaunchRequest describes one launch
type LaunchRequest struct {
	Environment secrets.Snapshot
	Command     process.Command
	Demotion    *identity.Demotion
}

// LaunchResult reports how a launch ended
type LaunchResult struct {
	ExitCode int
	History  []process.State
}

// LaunchService runs the command with the merged environment
type LaunchService struct {
	executor procp.Executor
	logger   *logging.Logger
}

// NewLaunchService creates a new launch service
func NewLaunchService(executor procp.Executor, logger *logging.Logger) *LaunchService {
	if logger == nil {
		logger = logging.Nop()
	}
	return &LaunchService{
		executor: executor,
		logger:   logger,
	}
}

// Launch starts the command and blocks until it exits.
//
// If the OS refuses the privilege drop the launch fails with
// process.ErrPrivilegeDrop and the command never runs; there is no retry
// under the invoking identity.
func (s *LaunchService) Launch(ctx context.Context, req LaunchRequest) (LaunchResult, error) {
	lc := process.NewLifecycle()

	if err := req.Command.IsValid(); err != nil {
		return LaunchResult{ExitCode: -1, History: lc.History()}, fmt.Errorf("invalid command: %w", err)
	}

	s.transition(lc, process.StateSpawning)
	if req.Demotion != nil {
		s.transition(lc, process.StateDemoting)
	}

	proc, err := s.executor.Execute(ctx, procp.LaunchSpec{
		Command:  req.Command,
		Env:      req.Environment.Environ(),
		Demotion: req.Demotion,
	})
	if err != nil {
		s.transition(lc, process.StateFailed)
		if errors.Is(err, process.ErrPrivilegeDrop) {
			s.logger.Debug().Err(err).Msg("privilege drop refused")
			return LaunchResult{ExitCode: -1, History: lc.History()}, process.ErrPrivilegeDrop
		}
		return LaunchResult{ExitCode: -1, History: lc.History()}, err
	}

	s.transition(lc, process.StateExecuting)
	code, err := proc.Wait()
	if err != nil {
		s.transition(lc, process.StateFailed)
		return LaunchResult{ExitCode: code, History: lc.History()}, err
	}

	s.transition(lc, process.StateExited)
	s.logger.Info().Int("pid", proc.PID()).Int("exit_code", code).Msg("command exited")

	return LaunchResult{ExitCode: code, History: lc.History()}, nil
}

func (s *LaunchService) transition(lc *process.Lifecycle, to process.State) {
	from := lc.State()
	if err := lc.Transition(to); err != nil {
		// Transitions are driven by Launch alone; an invalid one is a bug.
		panic(err)
	}
	s.logger.Debug().Stringer("from", from).Stringer("to", to).Msg("launch state")
}
