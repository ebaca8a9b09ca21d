// Copyright 2026 The Framewright Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"io"

	"github.com/spf13/pflag"

	"github.com/framewright/media/cmd/media/cli"
	"github.com/framewright/media/lib/config"
	"github.com/framewright/media/lib/manifest"
	"github.com/framewright/media/lib/resolve"
	"github.com/framewright/media/lib/verify"
)

type resolveParams struct {
	configParams
	cli.JSONOutput
	Input  string `json:"-" flag:"in,i" alias:"input" desc:"input AssetManifest.json"`
	Output string `json:"-" flag:"out,o" alias:"output" desc:"output AssetManifest.media.json (parent directories are created)"`
	Strict bool   `json:"-" flag:"strict" desc:"fail without writing if any asset resolves to a placeholder"`
}

// resolveSummary is the --json output of "media resolve".
type resolveSummary struct {
	ManifestID   string            `json:"manifest_id"`
	Items        int               `json:"items"`
	Placeholders int               `json:"placeholders"`
	Warnings     []resolve.Warning `json:"warnings"`
	OutputPath   string            `json:"output_path"`
	Digest       string            `json:"digest"`
}

func resolveCommand() *cli.Command {
	var params resolveParams

	command := &cli.Command{
		Name:    "resolve",
		Summary: "Resolve an asset manifest into a media manifest",
		Description: `Resolve every asset reference in an AssetManifest.json against the
library root, then the fallback root, and write AssetManifest.media.json.

References that match no local file become placeholders and are
reported as warnings. With --strict, any placeholder fails the command
and nothing is written.`,
		Usage: "media resolve --in <AssetManifest.json> --out <AssetManifest.media.json> [--strict] [--json]",
		Examples: []cli.Example{
			{
				Description: "Resolve a run directory's manifest",
				Command:     "media resolve --in runs/7/AssetManifest.json --out runs/7/AssetManifest.media.json",
			},
			{
				Description: "Fail if anything would be a placeholder",
				Command:     "media resolve -i AssetManifest.json -o out/AssetManifest.media.json --strict",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("resolve", &params)
		},
	}
	command.Run = func(args []string) error {
		if len(args) > 0 {
			return cli.Usagef("resolve takes no positional arguments, got %q", args[0])
		}
		return runResolve(params, command.Output())
	}
	return command
}

func runResolve(params resolveParams, stdout io.Writer) error {
	if params.Input == "" {
		return cli.Usagef("--in is required")
	}
	if params.Output == "" {
		return cli.Usagef("--out is required")
	}

	env, err := params.load("resolve", config.Overrides{Strict: params.Strict})
	if err != nil {
		return err
	}

	input, err := manifest.ReadFile(params.Input)
	if err != nil {
		return inputError(err)
	}

	result, err := resolve.ResolveManifest(input, env.roots, resolve.Options{
		Strict:    env.config.Strict,
		Timestamp: env.policy,
		Logger:    env.logger,
	})
	if err != nil {
		return err
	}

	written, err := verify.WriteDocument(params.Output, result.Manifest)
	if err != nil {
		return err
	}

	summary := resolveSummary{
		ManifestID:   result.Manifest.ManifestID,
		Items:        len(result.Manifest.Items),
		Placeholders: result.Manifest.PlaceholderCount(),
		Warnings:     result.Warnings,
		OutputPath:   params.Output,
		Digest:       written.String(),
	}
	if summary.Warnings == nil {
		summary.Warnings = []resolve.Warning{}
	}
	if done, err := params.EmitJSON(stdout, summary); done {
		return err
	}

	_, err = fmt.Fprintf(stdout, "OK: %d assets; %d placeholders → %s\n",
		summary.Items, summary.Placeholders, summary.OutputPath)
	return err
}
