// Copyright 2026 The Framewright Authors
// SPDX-License-Identifier: Apache-2.0

// Command media resolves asset manifests against local asset roots.
//
// Exit status: 0 on success; 1 for resolver or validation errors,
// strict-mode placeholders, determinism mismatches, and failed library
// checks; 2 for bad arguments and missing input files.
package main

import (
	"fmt"
	"os"

	"github.com/framewright/media/cmd/media/cli"
	"github.com/framewright/media/cmd/media/commands"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	err := commands.Root().Execute(args)
	if err != nil && !cli.Silent(err) {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
	}
	return cli.ExitCode(err)
}
