package services

import (
	"fmt"
	"sync"
)

// recordingDiagnostics captures diagnostics for assertions
type recordingDiagnostics struct {
	mu       sync.Mutex
	warnings []string
	errors   []string
}

func (r *recordingDiagnostics) Warnf(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.warnings = append(r.warnings, fmt.Sprintf(format, args...))
}

func (r *recordingDiagnostics) Errorf(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors = append(r.errors, fmt.Sprintf(format, args...))
}
