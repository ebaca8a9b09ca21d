// Copyright 2026 The Framewright Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"errors"
	"fmt"
)

// Exit codes shared by every command.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// ExitError signals a non-zero exit without printing an extra error
// message. The command has already written its own output, as
// "library check" does when it finds errors.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// ExitCode returns the exit code.
func (e *ExitError) ExitCode() int {
	return e.Code
}

// UsageError is a command-line mistake: an unknown command or flag, a
// missing required value, or an input path that does not exist. It
// exits with [ExitUsage].
type UsageError struct {
	Err error
}

// Usagef builds a [*UsageError] from a format string.
func Usagef(format string, args ...any) error {
	return &UsageError{Err: fmt.Errorf(format, args...)}
}

func (e *UsageError) Error() string {
	return e.Err.Error()
}

func (e *UsageError) Unwrap() error {
	return e.Err
}

// ExitCode returns [ExitUsage].
func (e *UsageError) ExitCode() int {
	return ExitUsage
}

// ExitCode maps an error returned by [Command.Execute] to a process
// exit status: nil is 0, errors carrying an ExitCode method use it,
// anything else is 1.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var coded interface{ ExitCode() int }
	if errors.As(err, &coded) {
		return coded.ExitCode()
	}
	return ExitFailure
}

// Silent reports whether err only carries an exit code, so main
// should not print it.
func Silent(err error) bool {
	var exitErr *ExitError
	return errors.As(err, &exitErr)
}
