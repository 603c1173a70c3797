package logging

import (
	"fmt"
	"io"
	"os"
	"sync"
)

var (
	mu  sync.Mutex
	out io.Writer = os.Stderr
)

// SetOutput redirects debug and trace lines to w and returns the previous writer.
// Lines go to stderr by default so they never mix with captured command output.
func SetOutput(w io.Writer) io.Writer {
	mu.Lock()
	defer mu.Unlock()
	prev := out
	out = w
	return prev
}

func write(prefix, format string, args ...any) {
	message := fmt.Sprintf(format, args...)
	mu.Lock()
	defer mu.Unlock()
	_, _ = fmt.Fprintf(out, "%s: %s\n", prefix, message)
}

// Debug prints a debug message with the DEBUG prefix if verbosity level is greater than 0.
// This is a convenience function to standardize debug output across the codebase.
//
// Usage:
//
//	logging.Debug(verbosity, "running %s: %s", mechanism, command)
//	logging.Debug(verbosity, "No config file at %s, using defaults", path)
func Debug(verbosity int, format string, args ...any) {
	if verbosity > 0 {
		write("DEBUG", format, args...)
	}
}

// Trace prints a trace message with the TRACE prefix if verbosity level is greater than 1.
// Trace messages are more verbose than debug messages and typically include raw data dumps.
//
// Usage:
//
//	logging.Trace(verbosity, "Raw output:\n%s", output)
func Trace(verbosity int, format string, args ...any) {
	if verbosity > 1 {
		write("TRACE", format, args...)
	}
}
