package configports

import (
	"context"
	"errors"

	"github.com/run-with-secrets/run-with-secrets/internal/core/domain/secrets"
)

//go:generate mockgen -source=ports.go -destination=../../../mock/config_loader_mock.go -package=mock

var (
	// ErrConfigUnavailable indicates a secrets file could not be opened or
	// read. The file contributes nothing; the run continues.
	ErrConfigUnavailable = errors.New("config unavailable")
	// ErrConfigMalformed indicates a secrets file was read but could not be
	// parsed. The run is aborted.
	ErrConfigMalformed = errors.New("config malformed")
)

// Loader reads one secrets file and returns its prefixed entries
type Loader interface {
	// Load returns one entry per top-level key of the file at path.
	// Errors wrap ErrConfigUnavailable or ErrConfigMalformed.
	Load(ctx context.Context, path string) (secrets.Snapshot, error)
}
