//go:build !unix

package process

import (
	"context"
	"errors"
	"io"
	"os"

	procp "github.com/run-with-secrets/run-with-secrets/internal/core/ports/process"
	"github.com/run-with-secrets/run-with-secrets/internal/logging"
)

// ErrUnsupportedPlatform is returned on systems without a POSIX shell and
// uid/gid credentials.
var ErrUnsupportedPlatform = errors.New("launching commands is only supported on unix systems")

// Executor reports ErrUnsupportedPlatform for every launch
type Executor struct{}

// NewExecutor creates an executor
func NewExecutor(logger *logging.Logger) *Executor {
	return NewExecutorWithOptions(logger, os.Stdin, os.Stdout, os.Stderr)
}

// NewExecutorWithOptions creates an executor
func NewExecutorWithOptions(*logging.Logger, io.Reader, io.Writer, io.Writer) *Executor {
	return &Executor{}
}

// Execute always fails on this platform
func (e *Executor) Execute(context.Context, procp.LaunchSpec) (procp.Process, error) {
	return nil, ErrUnsupportedPlatform
}

var _ procp.Executor = (*Executor)(nil)
