package identity

import "fmt"

// Operation is one identity change applied to the child before it runs
type Operation string

const (
	OpSetGID Operation = "setgid"
	OpSetUID Operation = "setuid"
)

// Step is an operation together with the numeric id it sets
type Step struct {
	Op Operation
	ID uint32
}

// String renders the step as a call, e.g. setuid(1000)
func (s Step) String() string {
	return fmt.Sprintf("%s(%d)", s.Op, s.ID)
}

// Demotion is a resolved privilege drop. It is inert until an executor
// applies it to a child between fork and exec.
type Demotion struct {
	spec     Spec
	uid      uint32
	gid      uint32
	hasGroup bool
}

// NewDemotion creates a demotion to uid that leaves the group unchanged
func NewDemotion(spec Spec, uid uint32) Demotion {
	return Demotion{spec: spec, uid: uid}
}

// WithGroup returns a copy of d that also changes the group to gid
func (d Demotion) WithGroup(gid uint32) Demotion {
	d.gid = gid
	d.hasGroup = true
	return d
}

// Spec returns the specification the demotion was resolved from
func (d Demotion) Spec() Spec {
	return d.spec
}

// UID returns the user id the child runs as
func (d Demotion) UID() uint32 {
	return d.uid
}

// GID returns the group id and whether one was resolved
func (d Demotion) GID() (uint32, bool) {
	return d.gid, d.hasGroup
}

// Steps returns the operations in the order they must run. The group
// changes first: once the user id is dropped the process may no longer
// be allowed to change its group.
func (d Demotion) Steps() []Step {
	steps := make([]Step, 0, 2)
	if d.hasGroup {
		steps = append(steps, Step{Op: OpSetGID, ID: d.gid})
	}
	return append(steps, Step{Op: OpSetUID, ID: d.uid})
}

// String describes the demotion for logs
func (d Demotion) String() string {
	if d.hasGroup {
		return fmt.Sprintf("%s (uid=%d gid=%d)", d.spec, d.uid, d.gid)
	}
	return fmt.Sprintf("%s (uid=%d)", d.spec, d.uid)
}
