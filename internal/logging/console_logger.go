package logging

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// ConsoleReporter prints user-facing diagnostics. Each line starts with a
// severity prefix; the prefix is coloured only when w is a terminal.
type ConsoleReporter struct {
	mu       sync.Mutex
	out      io.Writer
	warnTag  lipgloss.Style
	errorTag lipgloss.Style
	usageTag lipgloss.Style
}

// NewConsoleReporter creates a reporter writing to w
func NewConsoleReporter(w io.Writer) *ConsoleReporter {
	renderer := lipgloss.NewRenderer(w)
	return &ConsoleReporter{
		out:      w,
		warnTag:  renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
		errorTag: renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
		usageTag: renderer.NewStyle().Faint(true),
	}
}

// Warnf prints a non-fatal diagnostic
func (r *ConsoleReporter) Warnf(format string, args ...any) {
	r.print(r.warnTag.Render("warning:"), format, args...)
}

// Errorf prints a fatal diagnostic
func (r *ConsoleReporter) Errorf(format string, args ...any) {
	r.print(r.errorTag.Render("error:"), format, args...)
}

// Usage prints the synopsis shown after a usage error
func (r *ConsoleReporter) Usage(synopsis string) {
	r.print(r.usageTag.Render("usage:"), "%s", synopsis)
}

func (r *ConsoleReporter) print(tag, format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintf(r.out, "%s %s\n", tag, fmt.Sprintf(format, args...))
}
