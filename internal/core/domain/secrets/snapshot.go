package secrets

import (
	"sort"
	"strings"
)

// DefaultPrefix is prepended to every variable name unless configured otherwise
const DefaultPrefix = "SECRET"

// Entry is a single environment variable with the file it came from
type Entry struct {
	Name       string
	Key        string
	Value      string
	SourcePath string
}

// String renders the entry as NAME=value
func (e Entry) String() string {
	return e.Name + "=" + e.Value
}

// VariableName derives the environment variable name for a document key
func VariableName(prefix, key string) string {
	return strings.ToUpper(prefix) + "_" + strings.ToUpper(key)
}

// Snapshot is a set of entries keyed by variable name. A snapshot holds
// either the contribution of one file or the merged environment.
type Snapshot map[string]Entry

// Names returns the variable names in sorted order
func (s Snapshot) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Overlaps returns, sorted, the names other would overwrite if merged into s
func (s Snapshot) Overlaps(other Snapshot) []string {
	var names []string
	for name := range other {
		if _, ok := s[name]; ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Merge applies other on top of s; entries in other win
func (s Snapshot) Merge(other Snapshot) {
	for name, e := range other {
		s[name] = e
	}
}

// Environ renders the snapshot as sorted NAME=value pairs. The result is
// never nil so it can be handed to a child as a complete environment.
func (s Snapshot) Environ() []string {
	env := make([]string, 0, len(s))
	for _, name := range s.Names() {
		env = append(env, s[name].String())
	}
	return env
}
