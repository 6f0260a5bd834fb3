// Package logger provides the console logging of sipgen.
// Debug, Info and Section output is only printed with --verbose, so users
// can follow how a SIP is assembled. Warnings report recoverable problems
// in the inputs and are always printed.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
)

var (
	mu       sync.RWMutex
	verbose  bool
	output   io.Writer = os.Stderr
	warnings int
)

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the output writer for logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		fmt.Fprintf(output, "[DEBUG] "+format+"\n", args...)
	}
}

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		fmt.Fprintf(output, "\n=== %s ===\n", name)
	}
}

// Info prints an informational message if verbose mode is enabled.
func Info(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		fmt.Fprintf(output, "[INFO] "+format+"\n", args...)
	}
}

// Warn prints a warning message regardless of verbose mode.
func Warn(format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	warnings++
	fmt.Fprintf(output, "[WARN] "+format+"\n", args...)
}

// Warnings returns the number of warnings printed since the last
// ResetWarnings.
func Warnings() int {
	mu.RLock()
	defer mu.RUnlock()
	return warnings
}

// ResetWarnings clears the warning count.
func ResetWarnings() {
	mu.Lock()
	defer mu.Unlock()
	warnings = 0
}
