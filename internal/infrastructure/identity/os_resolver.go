package identityinfra

import (
	"errors"
	"fmt"
	"os/user"
	"strconv"

	"github.com/run-with-secrets/run-with-secrets/internal/core/domain/identity"
	identityports "github.com/run-with-secrets/run-with-secrets/internal/core/ports/identity"
)

// OSResolver resolves names through the system user and group databases.
// A name that is not found but is numeric is retried as an id.
type OSResolver struct {
	lookupUser    func(name string) (*user.User, error)
	lookupUserID  func(uid string) (*user.User, error)
	lookupGroup   func(name string) (*user.Group, error)
	lookupGroupID func(gid string) (*user.Group, error)
}

// NewOSResolver creates a resolver backed by os/user
func NewOSResolver() *OSResolver {
	return &OSResolver{
		lookupUser:    user.Lookup,
		lookupUserID:  user.LookupId,
		lookupGroup:   user.LookupGroup,
		lookupGroupID: user.LookupGroupId,
	}
}

// LookupUser returns the uid of the named user
func (r *OSResolver) LookupUser(name string) (uint32, error) {
	u, err := r.lookupUser(name)
	if err != nil && isNumeric(name) {
		u, err = r.lookupUserID(name)
	}
	if err != nil {
		var unknownName user.UnknownUserError
		var unknownID user.UnknownUserIdError
		if errors.As(err, &unknownName) || errors.As(err, &unknownID) {
			return 0, fmt.Errorf("%w: %s", identity.ErrUnknownUser, name)
		}
		return 0, fmt.Errorf("lookup user %q: %w", name, err)
	}

	return parseID(u.Uid, "uid")
}

// LookupGroup returns the gid of the named group
func (r *OSResolver) LookupGroup(name string) (uint32, error) {
	g, err := r.lookupGroup(name)
	if err != nil && isNumeric(name) {
		g, err = r.lookupGroupID(name)
	}
	if err != nil {
		var unknownName user.UnknownGroupError
		var unknownID user.UnknownGroupIdError
		if errors.As(err, &unknownName) || errors.As(err, &unknownID) {
			return 0, fmt.Errorf("%w: %s", identity.ErrUnknownGroup, name)
		}
		return 0, fmt.Errorf("lookup group %q: %w", name, err)
	}

	return parseID(g.Gid, "gid")
}

func parseID(s, what string) (uint32, error) {
	id, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("user database returned an invalid %s %q", what, s)
	}
	return uint32(id), nil
}

func isNumeric(s string) bool {
	_, err := strconv.ParseUint(s, 10, 32)
	return err == nil
}

var _ identityports.Resolver = (*OSResolver)(nil)
