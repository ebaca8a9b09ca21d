// Copyright 2026 The Framewright Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/framewright/media/cmd/media/cli"
	"github.com/framewright/media/lib/version"
)

func versionCommand() *cli.Command {
	var params cli.JSONOutput

	command := &cli.Command{
		Name:    "version",
		Summary: "Print version information",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("version", &params)
		},
	}
	command.Run = func(args []string) error {
		info := version.Current()
		if done, err := params.EmitJSON(command.Output(), info); done {
			return err
		}
		_, err := fmt.Fprintf(command.Output(), "media %s\n", info.Full())
		return err
	}
	return command
}
