//go:build unix

package process

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"golang.org/x/sys/unix"

	"github.com/run-with-secrets/run-with-secrets/internal/core/domain/process"
	procp "github.com/run-with-secrets/run-with-secrets/internal/core/ports/process"
	"github.com/run-with-secrets/run-with-secrets/internal/logging"
)

// Executor implements the process executor port on unix systems
type Executor struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	logger *logging.Logger
}

// NewExecutor creates an executor whose children share this process's
// standard streams
func NewExecutor(logger *logging.Logger) *Executor {
	return NewExecutorWithOptions(logger, os.Stdin, os.Stdout, os.Stderr)
}

// NewExecutorWithOptions creates an executor with custom standard streams
func NewExecutorWithOptions(logger *logging.Logger, stdin io.Reader, stdout, stderr io.Writer) *Executor {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Executor{
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
		logger: logger,
	}
}

// Execute starts the shell with exactly spec.Env as its environment.
//
// A demotion is applied by the kernel in the forked child before the shell
// is executed: setgid first, then setuid. The parent keeps its identity.
// The context is only checked before starting; a running child is not
// cancelled with it.
//
// While the child runs, SIGINT is held back from this process so that a
// terminal interrupt, which reaches the whole foreground group, leaves the
// child's own exit status to be reported. Wait restores the default.
func (e *Executor) Execute(ctx context.Context, spec procp.LaunchSpec) (procp.Process, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cmd := spec.Command
	execCmd := exec.Command(cmd.Shell(), cmd.Args()...)

	// A nil Env would make the child inherit ours.
	execCmd.Env = append(make([]string, 0, len(spec.Env)), spec.Env...)
	execCmd.Stdin = e.stdin
	execCmd.Stdout = e.stdout
	execCmd.Stderr = e.stderr

	if spec.Demotion != nil {
		execCmd.SysProcAttr = &syscall.SysProcAttr{
			Credential: credentialFor(*spec.Demotion),
		}
		e.logger.Debug().
			Stringer("demotion", spec.Demotion).
			Msg("child will drop privileges before exec")
	}

	// Notify rather than Ignore: an ignored disposition survives exec and the
	// child would inherit it.
	interrupts := make(chan os.Signal, 1)
	signal.Notify(interrupts, os.Interrupt)

	if err := execCmd.Start(); err != nil {
		signal.Stop(interrupts)
		if spec.Demotion != nil && errors.Is(err, unix.EPERM) {
			return nil, fmt.Errorf("%w: %w", process.ErrPrivilegeDrop, err)
		}
		return nil, fmt.Errorf("failed to start command: %w", err)
	}

	e.logger.Debug().
		Int("pid", execCmd.Process.Pid).
		Int("env", len(execCmd.Env)).
		Msg("started command")

	return &processImpl{cmd: execCmd, interrupts: interrupts}, nil
}

// processImpl implements the Process interface
type processImpl struct {
	cmd *exec.Cmd
	// interrupts holds SIGINT back until Wait returns
	interrupts chan os.Signal
}

// PID returns the process ID
func (p *processImpl) PID() int {
	if p.cmd == nil || p.cmd.Process == nil {
		return -1
	}
	return p.cmd.Process.Pid
}

// Wait waits for the process to complete and returns its exit code. A
// child killed by a signal reports process.ExitCodeForSignal.
func (p *processImpl) Wait() (int, error) {
	err := p.cmd.Wait()
	if p.interrupts != nil {
		signal.Stop(p.interrupts)
		p.interrupts = nil
	}
	if err == nil {
		return 0, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if status, ok := exitErr.Sys().(syscall.WaitStatus); ok && status.Signaled() {
			return process.ExitCodeForSignal(int(status.Signal())), nil
		}
		return exitErr.ExitCode(), nil
	}

	return -1, fmt.Errorf("failed waiting for command: %w", err)
}

var _ procp.Executor = (*Executor)(nil)
