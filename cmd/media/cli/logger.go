// Copyright 2026 The Framewright Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"
)

// LogParams adds --verbose and --quiet to a params struct.
type LogParams struct {
	Verbose bool `json:"-" flag:"verbose,v" desc:"log debug detail, including every resolved asset"`
	Quiet   bool `json:"-" flag:"quiet,q" desc:"log errors only"`
}

// Level returns the slog level the flags select. --quiet wins over
// --verbose.
func (p LogParams) Level() slog.Level {
	switch {
	case p.Quiet:
		return slog.LevelError
	case p.Verbose:
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}

// NewCommandLogger creates the logger for CLI command operations. On a
// terminal it uses slog.TextHandler for people; when stderr is piped
// or redirected it uses slog.JSONHandler so CI can parse the warning
// stream. Callers scope it with With("command", ...).
func NewCommandLogger(level slog.Level) *slog.Logger {
	return newLogger(os.Stderr, term.IsTerminal(int(os.Stderr.Fd())), level)
}

func newLogger(output io.Writer, text bool, level slog.Level) *slog.Logger {
	options := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if text {
		handler = slog.NewTextHandler(output, options)
	} else {
		handler = slog.NewJSONHandler(output, options)
	}
	return slog.New(handler)
}
