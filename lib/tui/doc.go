// Copyright 2026 The Framewright Authors
// SPDX-License-Identifier: Apache-2.0

// Package tui renders resolver output for terminals: the item table
// shown by "media inspect", layout findings from "media library
// check", and highlighted JSON.
//
// Every renderer is bound to a colour decision made once by the
// caller. Piped output gets the ASCII profile, so tables stay readable
// in logs and tests compare plain text.
package tui
