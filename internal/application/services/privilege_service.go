package services

import (
	"fmt"

	"github.com/run-with-secrets/run-with-secrets/internal/core/domain/identity"
	identityports "github.com/run-with-secrets/run-with-secrets/internal/core/ports/identity"
	"github.com/run-with-secrets/run-with-secrets/internal/logging"
)

// PrivilegeService turns a user[:group] specification into a demotion
type PrivilegeService struct {
	resolver identityports.Resolver
	logger   *logging.Logger
}

// NewPrivilegeService creates a new privilege service
func NewPrivilegeService(resolver identityports.Resolver, logger *logging.Logger) *PrivilegeService {
	if logger == nil {
		logger = logging.Nop()
	}
	return &PrivilegeService{
		resolver: resolver,
		logger:   logger,
	}
}

// Prepare resolves spec eagerly so that unknown names fail before anything
// is spawned. An empty spec means no demotion and returns nil.
func (s *PrivilegeService) Prepare(spec string) (*identity.Demotion, error) {
	if spec == "" {
		return nil, nil
	}

	parsed, err := identity.ParseSpec(spec)
	if err != nil {
		return nil, err
	}

	uid, err := s.resolver.LookupUser(parsed.User)
	if err != nil {
		return nil, fmt.Errorf("resolve user %q: %w", parsed.User, err)
	}
	demotion := identity.NewDemotion(parsed, uid)

	if parsed.HasGroup() {
		gid, err := s.resolver.LookupGroup(parsed.Group)
		if err != nil {
			return nil, fmt.Errorf("resolve group %q: %w", parsed.Group, err)
		}
		demotion = demotion.WithGroup(gid)
	}

	s.logger.Info().
		Stringer("demotion", demotion).
		Msg("resolved privilege drop")

	return &demotion, nil
}
