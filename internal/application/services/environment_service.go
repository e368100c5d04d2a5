package services

import (
	"context"
	"errors"

	"github.com/run-with-secrets/run-with-secrets/internal/core/domain/secrets"
	configports "github.com/run-with-secrets/run-with-secrets/internal/core/ports/config"
	"github.com/run-with-secrets/run-with-secrets/internal/logging"
)

// EnvironmentService folds secrets files into the child's environment
type EnvironmentService struct {
	loader      configports.Loader
	diagnostics Diagnostics
	logger      *logging.Logger
}

// NewEnvironmentService creates a new environment service
func NewEnvironmentService(loader configports.Loader, diagnostics Diagnostics, logger *logging.Logger) *EnvironmentService {
	if logger == nil {
		logger = logging.Nop()
	}
	return &EnvironmentService{
		loader:      loader,
		diagnostics: diagnostics,
		logger:      logger,
	}
}

// Build loads paths one at a time, in order, and merges them so that a
// later file wins over an earlier one. Before a file's entries are
// applied, every name it overwrites is reported once, naming that file.
//
// Unreadable files are reported and skipped. A malformed file aborts the
// build.
func (s *EnvironmentService) Build(ctx context.Context, paths []string) (secrets.Snapshot, error) {
	env := make(secrets.Snapshot)

	for _, path := range paths {
		additions, err := s.loader.Load(ctx, path)
		if err != nil {
			if errors.Is(err, configports.ErrConfigUnavailable) {
				s.diagnostics.Warnf("%v", err)
				continue
			}
			return nil, err
		}
		if len(additions) == 0 {
			continue
		}

		for _, name := range env.Overlaps(additions) {
			s.diagnostics.Warnf("duplicate key found. using %q from %s", name, path)
		}

		env.Merge(additions)
	}

	s.logger.Info().
		Int("files", len(paths)).
		Int("variables", len(env)).
		Msg("built secrets environment")

	return env, nil
}
