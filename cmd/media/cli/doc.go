// Copyright 2026 The Framewright Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli provides the command-line framework for the media CLI.
//
// The central type is [Command]: a named command with optional nested
// [Command.Subcommands], a [pflag.FlagSet] factory, and a Run
// function. Commands are assembled into a tree in cmd/media/commands
// and dispatched via [Command.Execute], which handles flag parsing,
// subcommand routing, and structured help output with examples.
//
// Flags are declared as tagged params structs and bound by
// [FlagsFromParams]. An unknown command or flag gets a Levenshtein
// suggestion (distance at most 3).
//
// Exit status is decided in one place, [ExitCode]: usage problems are
// 2, every other failure is 1, and an [*ExitError] carries its own
// code for commands that already printed their result.
package cli
