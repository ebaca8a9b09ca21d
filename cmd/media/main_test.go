// Copyright 2026 The Framewright Authors
// SPDX-License-Identifier: Apache-2.0

package main

import "testing"

func TestRunExitCodes(t *testing.T) {
	tests := []struct {
		args []string
		want int
	}{
		{[]string{"version"}, 0},
		{[]string{"--help"}, 0},
		{[]string{"no-such-command"}, 2},
		{[]string{"resolve"}, 2},
		{[]string{"inspect", "/nonexistent/AssetManifest.media.json"}, 2},
	}
	for _, test := range tests {
		if got := run(test.args); got != test.want {
			t.Errorf("run(%v) = %d, want %d", test.args, got, test.want)
		}
	}
}
