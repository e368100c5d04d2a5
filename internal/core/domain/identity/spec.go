// Package identity models the user and group a launched command is demoted to.
package identity

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidSpec indicates a malformed user[:group] specification.
	ErrInvalidSpec = errors.New("invalid user specification")
	// ErrUnknownUser indicates the user database has no such user.
	ErrUnknownUser = errors.New("unknown user")
	// ErrUnknownGroup indicates the group database has no such group.
	ErrUnknownGroup = errors.New("unknown group")
)

// Spec is a parsed user[:group] specification
type Spec struct {
	User  string
	Group string
}

// ParseSpec parses "user" or "user:group"
func ParseSpec(s string) (Spec, error) {
	username, groupname, hasGroup := strings.Cut(s, ":")
	if username == "" {
		return Spec{}, fmt.Errorf("%w %q: user name is empty", ErrInvalidSpec, s)
	}
	if !hasGroup {
		return Spec{User: username}, nil
	}
	if groupname == "" {
		return Spec{}, fmt.Errorf("%w %q: group name is empty", ErrInvalidSpec, s)
	}
	if strings.Contains(groupname, ":") {
		return Spec{}, fmt.Errorf("%w %q: expected user[:group]", ErrInvalidSpec, s)
	}
	return Spec{User: username, Group: groupname}, nil
}

// HasGroup reports whether a group was given
func (s Spec) HasGroup() bool {
	return s.Group != ""
}

// String returns the specification in user[:group] form
func (s Spec) String() string {
	if s.HasGroup() {
		return s.User + ":" + s.Group
	}
	return s.User
}
