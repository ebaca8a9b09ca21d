// Copyright 2026 The Framewright Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"errors"
	"io"
	"log/slog"
	"os"

	"github.com/framewright/media/cmd/media/cli"
	"github.com/framewright/media/lib/config"
	"github.com/framewright/media/lib/manifest"
	"github.com/framewright/media/lib/resolve"
	"github.com/framewright/media/lib/tui"
)

// configParams are the flags every command that touches asset roots
// accepts. They override the config file and environment.
type configParams struct {
	cli.LogParams
	ConfigPath   string `json:"-" flag:"config" desc:"YAML config file (default $MEDIA_CONFIG)"`
	LibraryRoot  string `json:"-" flag:"library-root" desc:"library root holding images/, audio/ and licenses/"`
	FallbackRoot string `json:"-" flag:"fallback-root" desc:"fallback root holding one directory per asset type"`
	Timestamp    string `json:"-" flag:"timestamp" desc:"sentinel timestamp: epoch, manifest, or an RFC 3339 value"`
}

// environment is everything a command needs after configuration.
type environment struct {
	config *config.Config
	roots  resolve.Roots
	policy resolve.TimestampPolicy
	logger *slog.Logger
}

// load layers flags over the config file and environment. Bad
// configuration is a usage error.
func (p configParams) load(command string, overrides config.Overrides) (*environment, error) {
	cfg, err := config.Load(p.ConfigPath)
	if err != nil {
		return nil, &cli.UsageError{Err: err}
	}
	overrides.LibraryRoot = p.LibraryRoot
	overrides.FallbackRoot = p.FallbackRoot
	overrides.Timestamp = p.Timestamp
	cfg.Override(overrides)
	if err := cfg.Validate(); err != nil {
		return nil, &cli.UsageError{Err: err}
	}

	roots, err := cfg.Roots()
	if err != nil {
		return nil, err
	}
	policy, err := cfg.TimestampPolicy()
	if err != nil {
		return nil, &cli.UsageError{Err: err}
	}

	logger := cli.NewCommandLogger(p.Level()).With("command", command)
	if cfg.Source != "" {
		logger.Debug("config loaded", "path", cfg.Source)
	}
	return &environment{config: cfg, roots: roots, policy: policy, logger: logger}, nil
}

// inputError turns a missing input file into a usage error and leaves
// every other error alone.
func inputError(err error) error {
	if errors.Is(err, manifest.ErrNotFound) {
		return &cli.UsageError{Err: err}
	}
	return err
}

// newRenderer colours output only when it goes straight to a terminal.
func newRenderer(output io.Writer) *tui.Renderer {
	file, ok := output.(*os.File)
	return tui.NewRenderer(output, ok && tui.ColorEnabled(file))
}
