package configinfra

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/run-with-secrets/run-with-secrets/internal/core/domain/secrets"
	configports "github.com/run-with-secrets/run-with-secrets/internal/core/ports/config"
	"github.com/run-with-secrets/run-with-secrets/internal/logging"
)

// FileLoader reads YAML or JSON secrets files. The format is inferred from
// the content; JSON documents are parsed as YAML.
type FileLoader struct {
	prefix   string
	logger   *logging.Logger
	readFile func(name string) ([]byte, error)
}

// NewFileLoader creates a loader that names variables {PREFIX}_{KEY}
func NewFileLoader(prefix string, logger *logging.Logger) *FileLoader {
	if logger == nil {
		logger = logging.Nop()
	}
	return &FileLoader{
		prefix:   strings.ToUpper(prefix),
		logger:   logger,
		readFile: os.ReadFile,
	}
}

// Load reads path and returns one entry per top-level key.
//
// A file that cannot be read yields configports.ErrConfigUnavailable; a
// file that cannot be parsed, or whose top level is not a mapping, yields
// configports.ErrConfigMalformed.
func (l *FileLoader) Load(ctx context.Context, path string) (secrets.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := l.readFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", configports.ErrConfigUnavailable, err)
	}

	doc, err := parseDocument(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", configports.ErrConfigMalformed, path, err)
	}

	snap := make(secrets.Snapshot, len(doc.Pairs()))
	for _, pair := range doc.Pairs() {
		name := secrets.VariableName(l.prefix, pair.Key)
		snap[name] = secrets.Entry{
			Name:       name,
			Key:        pair.Key,
			Value:      pair.Value.String(),
			SourcePath: path,
		}
	}

	l.logger.Debug().
		Str("path", path).
		Int("keys", len(snap)).
		Msg("loaded secrets file")

	return snap, nil
}

var _ configports.Loader = (*FileLoader)(nil)
