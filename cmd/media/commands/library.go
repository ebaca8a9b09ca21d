// Copyright 2026 The Framewright Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"io"

	"github.com/spf13/pflag"

	"github.com/framewright/media/cmd/media/cli"
	"github.com/framewright/media/lib/config"
	"github.com/framewright/media/lib/library"
)

type libraryCheckParams struct {
	configParams
	cli.JSONOutput
}

func libraryCommand() *cli.Command {
	return &cli.Command{
		Name:    "library",
		Summary: "Inspect the local asset roots",
		Subcommands: []*cli.Command{
			libraryCheckCommand(),
		},
	}
}

func libraryCheckCommand() *cli.Command {
	var params libraryCheckParams

	command := &cli.Command{
		Name:    "check",
		Summary: "Audit the library and fallback roots",
		Description: `Check that the library root has images/, audio/ and licenses/, that the
fallback root has one directory per asset type, that every library
asset has a parseable license record, and that no license record is
orphaned. Files with unlisted extensions and files that map to the same
asset id are reported as warnings.

Nothing is modified. Exits 1 when any error is found.`,
		Usage: "media library check [--library-root <dir>] [--fallback-root <dir>] [--json]",
		Examples: []cli.Example{
			{
				Description: "Audit the configured roots",
				Command:     "media library check",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("check", &params)
		},
	}
	command.Run = func(args []string) error {
		if len(args) > 0 {
			return cli.Usagef("check takes no positional arguments, got %q", args[0])
		}
		return runLibraryCheck(params, command.Output())
	}
	return command
}

func runLibraryCheck(params libraryCheckParams, stdout io.Writer) error {
	env, err := params.load("library/check", config.Overrides{})
	if err != nil {
		return err
	}

	findings := library.CheckLayout(env.roots)
	env.logger.Debug("layout checked",
		"library_root", env.roots.Library,
		"fallback_root", env.roots.Fallback,
		"findings", len(findings),
	)

	if done, err := params.EmitJSON(stdout, findings); done {
		if err == nil && library.HasErrors(findings) {
			return &cli.ExitError{Code: cli.ExitFailure}
		}
		return err
	}

	renderer := newRenderer(stdout)
	if len(findings) == 0 {
		_, err := fmt.Fprintln(stdout, renderer.OK("OK: library layout is clean"))
		return err
	}
	if _, err := io.WriteString(stdout, renderer.Findings(findings)); err != nil {
		return err
	}
	if library.HasErrors(findings) {
		return &cli.ExitError{Code: cli.ExitFailure}
	}
	return nil
}
