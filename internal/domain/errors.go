package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Fatal precondition failures. Anything wrapping one of these aborts the run
// before any work is attempted.
var (
	ErrSourceMissing     = errors.New("source directory does not exist")
	ErrDistMissing       = errors.New("distribution directory does not exist")
	ErrExecutableMissing = errors.New("interpreter executable not found")
	ErrInvalidConfig     = errors.New("invalid configuration")
)

// ProcessError reports a subprocess that ran but exited non-zero.
type ProcessError struct {
	Path     string
	Args     []string
	ExitCode int
	Stdout   string
	Stderr   string
}

func (e *ProcessError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "command failed with exit code %d", e.ExitCode)
	b.WriteString("\nstdout: " + e.Stdout)
	b.WriteString("\nstderr: " + e.Stderr)
	return b.String()
}
