package services

// Diagnostics receives user-facing messages. Implementations prefix each
// line with its severity.
type Diagnostics interface {
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}
