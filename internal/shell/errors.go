// Package shell runs the external programs forge drives: project
// generators and package managers.
package shell

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for external commands.
var (
	// ErrCommandFailed indicates a command ran and exited non-zero.
	ErrCommandFailed = errors.New("command failed")

	// ErrCommandNotFound indicates the executable is not on PATH.
	ErrCommandNotFound = errors.New("command not found")

	// ErrUnsupportedPackageManager indicates an unknown package manager name.
	ErrUnsupportedPackageManager = errors.New("unsupported package manager")
)

// CommandError describes a command that exited non-zero.
type CommandError struct {
	Command  string
	Args     []string
	Dir      string
	ExitCode int
	// Stderr holds the tail of the command's standard error.
	Stderr string
}

// Error implements the error interface.
func (e *CommandError) Error() string {
	msg := fmt.Sprintf("%s %s: exit status %d", e.Command, strings.Join(e.Args, " "), e.ExitCode)
	if tail := strings.TrimSpace(e.Stderr); tail != "" {
		msg += ": " + lastLine(tail)
	}
	return msg
}

// Unwrap lets errors.Is match ErrCommandFailed.
func (e *CommandError) Unwrap() error {
	return ErrCommandFailed
}

func lastLine(s string) string {
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		return s[i+1:]
	}
	return s
}
