// Copyright 2026 The Framewright Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"io"

	"github.com/spf13/pflag"

	"github.com/framewright/media/cmd/media/cli"
	"github.com/framewright/media/lib/config"
	"github.com/framewright/media/lib/resolve"
	"github.com/framewright/media/lib/verify"
)

type verifyParams struct {
	configParams
	cli.JSONOutput
	RunDir string `json:"-" flag:"run-dir" desc:"run directory holding AssetManifest.json (default $RUN_DIR)"`
	Strict bool   `json:"-" flag:"strict" desc:"fail if any asset resolves to a placeholder"`
}

// verifySummary is the --json output of "media verify".
type verifySummary struct {
	*verify.Report
	Digest string `json:"digest"`
}

func verifyCommand() *cli.Command {
	var params verifyParams

	command := &cli.Command{
		Name:    "verify",
		Summary: "Prove resolution is deterministic for a run directory",
		Description: `Resolve the run directory's AssetManifest.json twice with the same roots
and timestamp policy and require byte-identical output. On success the
document is written to AssetManifest.media.json in the run directory.

A mismatch prints the differing items and exits 1 without writing.`,
		Usage: "media verify [--run-dir <dir>] [--strict] [--json]",
		Examples: []cli.Example{
			{
				Description: "Verify a run directory",
				Command:     "media verify --run-dir runs/7",
			},
			{
				Description: "Verify using RUN_DIR and reject placeholders",
				Command:     "RUN_DIR=runs/7 media verify --strict",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("verify", &params)
		},
	}
	command.Run = func(args []string) error {
		if len(args) > 0 {
			return cli.Usagef("verify takes no positional arguments, got %q", args[0])
		}
		return runVerify(params, command.Output())
	}
	return command
}

func runVerify(params verifyParams, stdout io.Writer) error {
	env, err := params.load("verify", config.Overrides{RunDir: params.RunDir, Strict: params.Strict})
	if err != nil {
		return err
	}
	runDir, err := env.config.RequireRunDir()
	if err != nil {
		return &cli.UsageError{Err: err}
	}

	verifier := &verify.Verifier{
		Roots:     env.roots,
		Timestamp: env.policy,
		Logger:    env.logger.With("run_dir", runDir),
	}
	report, err := verifier.Verify(runDir, env.config.Strict)
	if err != nil {
		return inputError(err)
	}

	if report.Warnings == nil {
		report.Warnings = []resolve.Warning{}
	}
	if done, err := params.EmitJSON(stdout, verifySummary{Report: report, Digest: report.Digest.String()}); done {
		return err
	}

	renderer := newRenderer(stdout)
	_, err = fmt.Fprintf(stdout, "%s\n%s\n",
		renderer.OK(fmt.Sprintf("OK: %d assets; %d placeholders", report.Items, report.Placeholders)),
		renderer.OK(fmt.Sprintf("OK: media verified (%s)", report.Digest.Short())))
	return err
}
