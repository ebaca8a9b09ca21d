// Copyright 2026 The Framewright Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the media CLI command tree.
package commands

import "github.com/framewright/media/cmd/media/cli"

// Root builds the complete command tree.
func Root() *cli.Command {
	return &cli.Command{
		Name: "media",
		Description: `media: deterministic asset resolution for production runs.

Resolve the asset references of an AssetManifest.json against local
library and fallback roots, substitute placeholders for anything
missing, and prove that the result is reproducible.`,
		Subcommands: []*cli.Command{
			resolveCommand(),
			verifyCommand(),
			libraryCommand(),
			inspectCommand(),
			menuCommand(),
			versionCommand(),
		},
	}
}
