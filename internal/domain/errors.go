package domain

import (
	"fmt"
	"strings"
)

// ConfigurationError reports settings that make a dump impossible to build.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "configuration error: " + e.Reason
}

// ProcessError reports a dump process that could not start or exited non-zero.
// ExitCode is -1 when the process never ran.
type ProcessError struct {
	Command  string
	ExitCode int
	Stdout   string
	Stderr   string
	Err      error
}

func (e *ProcessError) Error() string {
	msg := fmt.Sprintf("process %q failed with exit code %d", e.Command, e.ExitCode)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		msg += ", stderr: " + stderr
	}
	return msg
}

func (e *ProcessError) Unwrap() error {
	return e.Err
}
