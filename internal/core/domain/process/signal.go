package process

// SignalExitBase is added to a signal number to form the exit status of a
// command killed by that signal
const SignalExitBase = 128

// ExitCodeForSignal returns the status a POSIX shell reports for a command
// terminated by signal sig
func ExitCodeForSignal(sig int) int {
	return SignalExitBase + sig
}
