package identityinfra

import (
	"errors"
	"os"
	"os/user"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/run-with-secrets/run-with-secrets/internal/core/domain/identity"
)

func TestOSResolver_CurrentUser(t *testing.T) {
	current, err := user.Current()
	if err != nil {
		t.Skipf("current user not in user database: %v", err)
	}

	r := NewOSResolver()

	uid, err := r.LookupUser(current.Username)
	require.NoError(t, err)
	assert.Equal(t, uint32(os.Getuid()), uid)

	byID, err := r.LookupUser(current.Uid)
	require.NoError(t, err)
	assert.Equal(t, uid, byID)
}

func TestOSResolver_CurrentGroup(t *testing.T) {
	group, err := user.LookupGroupId(strconv.Itoa(os.Getgid()))
	if err != nil {
		t.Skipf("current group not in group database: %v", err)
	}

	gid, err := NewOSResolver().LookupGroup(group.Name)
	require.NoError(t, err)
	assert.Equal(t, uint32(os.Getgid()), gid)
}

func TestOSResolver_Unknown(t *testing.T) {
	r := NewOSResolver()

	_, err := r.LookupUser("no-such-user-rws")
	assert.ErrorIs(t, err, identity.ErrUnknownUser)

	_, err = r.LookupGroup("no-such-group-rws")
	assert.ErrorIs(t, err, identity.ErrUnknownGroup)
}

func TestOSResolver_NumericFallback(t *testing.T) {
	r := &OSResolver{
		lookupUser: func(name string) (*user.User, error) {
			return nil, user.UnknownUserError(name)
		},
		lookupUserID: func(uid string) (*user.User, error) {
			return &user.User{Uid: uid, Gid: "100", Username: "svc"}, nil
		},
		lookupGroup: func(name string) (*user.Group, error) {
			return nil, user.UnknownGroupError(name)
		},
		lookupGroupID: func(gid string) (*user.Group, error) {
			return nil, user.UnknownGroupIdError(gid)
		},
	}

	uid, err := r.LookupUser("1500")
	require.NoError(t, err)
	assert.Equal(t, uint32(1500), uid)

	_, err = r.LookupUser("svc-missing")
	assert.ErrorIs(t, err, identity.ErrUnknownUser)

	_, err = r.LookupGroup("4242")
	assert.ErrorIs(t, err, identity.ErrUnknownGroup)
}

func TestOSResolver_DatabaseFailure(t *testing.T) {
	dbErr := errors.New("nss unavailable")
	r := &OSResolver{
		lookupUser: func(string) (*user.User, error) { return nil, dbErr },
		lookupGroup: func(string) (*user.Group, error) {
			return &user.Group{Gid: "not-a-number"}, nil
		},
	}

	_, err := r.LookupUser("svc")
	assert.ErrorIs(t, err, dbErr)
	assert.NotErrorIs(t, err, identity.ErrUnknownUser)

	_, err = r.LookupGroup("staff")
	assert.ErrorContains(t, err, "invalid gid")
}
