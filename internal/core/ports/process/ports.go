package procports

import (
	"context"

	"github.com/run-with-secrets/run-with-secrets/internal/core/domain/identity"
	"github.com/run-with-secrets/run-with-secrets/internal/core/domain/process"
)

//go:generate mockgen -source=ports.go -destination=../../../mock/process_executor_mock.go -package=mock

// LaunchSpec is everything an executor needs to start the child
type LaunchSpec struct {
	Command process.Command
	// Env is the complete environment of the child. Nothing is inherited.
	Env []string
	// Demotion is applied to the child before the command runs, if set.
	Demotion *identity.Demotion
}

// Executor starts child processes
type Executor interface {
	// Execute starts the child and returns a Process handle. A refused
	// identity change is reported as process.ErrPrivilegeDrop.
	Execute(ctx context.Context, spec LaunchSpec) (Process, error)
}

// Process represents a started child
type Process interface {
	// PID returns the process ID
	PID() int

	// Wait blocks until the child exits and returns its exit code
	Wait() (int, error)
}
