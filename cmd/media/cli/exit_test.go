// Copyright 2026 The Framewright Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitOK},
		{"plain", errors.New("boom"), ExitFailure},
		{"usage", Usagef("missing --in"), ExitUsage},
		{"wrapped usage", fmt.Errorf("resolve: %w", Usagef("missing --in")), ExitUsage},
		{"exit error", &ExitError{Code: 1}, 1},
		{"exit error 3", &ExitError{Code: 3}, 3},
	}
	for _, test := range tests {
		if got := ExitCode(test.err); got != test.want {
			t.Errorf("%s: ExitCode = %d, want %d", test.name, got, test.want)
		}
	}
}

func TestSilent(t *testing.T) {
	if !Silent(&ExitError{Code: 1}) {
		t.Error("ExitError should be silent")
	}
	if Silent(Usagef("bad flag")) || Silent(errors.New("boom")) {
		t.Error("other errors must be printed")
	}
}

func TestUsageErrorUnwraps(t *testing.T) {
	sentinel := errors.New("not found")
	err := &UsageError{Err: fmt.Errorf("input: %w", sentinel)}
	if !errors.Is(err, sentinel) {
		t.Error("UsageError should unwrap to its cause")
	}
}

func TestNewLogger(t *testing.T) {
	var output bytes.Buffer
	logger := newLogger(&output, false, slog.LevelWarn)
	logger.Info("hidden")
	logger.Warn("license_file_missing", "asset_id", "char-hero")

	text := output.String()
	if strings.Contains(text, "hidden") {
		t.Error("info record written below warn level")
	}
	if !strings.Contains(text, `"msg":"license_file_missing"`) || !strings.Contains(text, `"asset_id":"char-hero"`) {
		t.Errorf("JSON handler output = %s", text)
	}
}

func TestEmitJSON(t *testing.T) {
	var output bytes.Buffer
	params := JSONOutput{}

	done, err := params.EmitJSON(&output, []string{"a"})
	if done || err != nil || output.Len() != 0 {
		t.Fatalf("EmitJSON without --json = %v, %v, wrote %q", done, err, output.String())
	}

	params.OutputJSON = true
	var nothing []string
	done, err = params.EmitJSON(&output, nothing)
	if !done || err != nil {
		t.Fatalf("EmitJSON = %v, %v", done, err)
	}
	if output.String() != "[]\n" {
		t.Errorf("nil slice encoded as %q, want []", output.String())
	}

	output.Reset()
	if err := WriteJSON(&output, map[string]string{"uri": "a&b<c>"}); err != nil {
		t.Fatal(err)
	}
	if output.String() != "{\n  \"uri\": \"a&b<c>\"\n}\n" {
		t.Errorf("WriteJSON = %q", output.String())
	}
}
