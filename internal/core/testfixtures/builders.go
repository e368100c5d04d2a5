package testfixtures

import (
	"github.com/run-with-secrets/run-with-secrets/internal/core/domain/identity"
	"github.com/run-with-secrets/run-with-secrets/internal/core/domain/secrets"
)

// SnapshotBuilder provides a builder pattern for creating test snapshots
type SnapshotBuilder struct {
	prefix  string
	source  string
	entries []secrets.Entry
}

// NewSnapshotBuilder creates a new SnapshotBuilder with sensible defaults
func NewSnapshotBuilder() *SnapshotBuilder {
	return &SnapshotBuilder{
		prefix: secrets.DefaultPrefix,
		source: "secrets.yaml",
	}
}

// WithPrefix sets the prefix used for keys added afterwards
func (b *SnapshotBuilder) WithPrefix(prefix string) *SnapshotBuilder {
	b.prefix = prefix
	return b
}

// From sets the source path recorded for keys added afterwards
func (b *SnapshotBuilder) From(path string) *SnapshotBuilder {
	b.source = path
	return b
}

// WithKey adds a document key and its rendered value
func (b *SnapshotBuilder) WithKey(key, value string) *SnapshotBuilder {
	b.entries = append(b.entries, secrets.Entry{
		Name:       secrets.VariableName(b.prefix, key),
		Key:        key,
		Value:      value,
		SourcePath: b.source,
	})
	return b
}

// Build creates the snapshot
func (b *SnapshotBuilder) Build() secrets.Snapshot {
	snap := make(secrets.Snapshot, len(b.entries))
	for _, e := range b.entries {
		snap[e.Name] = e
	}
	return snap
}

// DemotionBuilder provides a builder pattern for creating test demotions
type DemotionBuilder struct {
	spec     identity.Spec
	uid      uint32
	gid      uint32
	hasGroup bool
}

// NewDemotionBuilder creates a builder for the nobody user
func NewDemotionBuilder() *DemotionBuilder {
	return &DemotionBuilder{
		spec: identity.Spec{User: "nobody"},
		uid:  65534,
	}
}

// AsUser sets the user name and uid
func (b *DemotionBuilder) AsUser(name string, uid uint32) *DemotionBuilder {
	b.spec.User = name
	b.uid = uid
	return b
}

// InGroup sets the group name and gid
func (b *DemotionBuilder) InGroup(name string, gid uint32) *DemotionBuilder {
	b.spec.Group = name
	b.gid = gid
	b.hasGroup = true
	return b
}

// Build creates the demotion
func (b *DemotionBuilder) Build() *identity.Demotion {
	d := identity.NewDemotion(b.spec, b.uid)
	if b.hasGroup {
		d = d.WithGroup(b.gid)
	}
	return &d
}
