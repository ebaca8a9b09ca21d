// Copyright 2026 The Framewright Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/framewright/media/cmd/media/cli"
	"github.com/framewright/media/lib/digest"
	"github.com/framewright/media/lib/library"
	"github.com/framewright/media/lib/schema/media"
)

type inspectParams struct {
	cli.JSONOutput
	URIWidth int  `json:"-" flag:"uri-width" default:"60" desc:"truncate URIs to this many columns (0 = never)"`
	Hash     bool `json:"-" flag:"hash" desc:"print a content digest for every resolved file"`
}

func inspectCommand() *cli.Command {
	var params inspectParams

	command := &cli.Command{
		Name:    "inspect",
		Summary: "Show a media manifest as a table",
		Description: `Read an AssetManifest.media.json, check it against the item invariants,
and print one row per item. With --json the document is printed as
is, syntax-highlighted when stdout is a terminal. With --hash each
resolved file is hashed so two runs can be compared by content.`,
		Usage: "media inspect <AssetManifest.media.json> [--json] [--uri-width N] [--hash]",
		Examples: []cli.Example{
			{
				Description: "List the items of a run",
				Command:     "media inspect runs/7/AssetManifest.media.json",
			},
			{
				Description: "Include content digests of the resolved files",
				Command:     "media inspect --hash runs/7/AssetManifest.media.json",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("inspect", &params)
		},
	}
	command.Run = func(args []string) error {
		if len(args) != 1 {
			return cli.Usagef("inspect takes exactly one file argument")
		}
		return runInspect(params, args[0], command.Output())
	}
	return command
}

func runInspect(params inspectParams, path string, stdout io.Writer) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cli.Usagef("media manifest %s does not exist", path)
		}
		return err
	}
	document, err := media.Decode(data)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if err := document.Validate(); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	renderer := newRenderer(stdout)
	if params.OutputJSON {
		_, err := io.WriteString(stdout, renderer.HighlightJSON(data))
		return err
	}

	if _, err := fmt.Fprintf(stdout, "%s\n%s\n", renderer.ItemsTable(document.Items, params.URIWidth), renderer.Summary(document)); err != nil {
		return err
	}
	if !params.Hash {
		return nil
	}
	for _, item := range document.Items {
		if item.IsPlaceholder {
			continue
		}
		if _, err := fmt.Fprintf(stdout, "%-12s  %s/%s\n", fileDigest(item.URI), item.AssetType, item.AssetID); err != nil {
			return err
		}
	}
	return nil
}

// fileDigest returns the short content digest of the file behind uri,
// or a marker when the file can no longer be read.
func fileDigest(uri string) string {
	path, err := library.FilePath(uri)
	if err != nil {
		return "invalid-uri"
	}
	sum, err := digest.File(path)
	if err != nil {
		return "unreadable"
	}
	return sum.Short()
}
