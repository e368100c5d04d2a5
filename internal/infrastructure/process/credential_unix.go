//go:build unix

package process

import (
	"syscall"

	"golang.org/x/sys/unix"

	"github.com/run-with-secrets/run-with-secrets/internal/core/domain/identity"
)

// credentialFor builds the credential the child switches to from the
// demotion's steps. Without a setgid step the child keeps our gid.
// Supplementary groups are left alone.
func credentialFor(d identity.Demotion) *syscall.Credential {
	cred := &syscall.Credential{
		Uid:         uint32(unix.Getuid()),
		Gid:         uint32(unix.Getgid()),
		NoSetGroups: true,
	}
	for _, step := range d.Steps() {
		switch step.Op {
		case identity.OpSetGID:
			cred.Gid = step.ID
		case identity.OpSetUID:
			cred.Uid = step.ID
		}
	}
	return cred
}
