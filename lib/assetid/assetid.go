// Copyright 2026 The Framewright Authors
// SPDX-License-Identifier: Apache-2.0

// Package assetid canonicalizes asset identifiers for library lookup.
//
// Manifests are written by hand and by upstream tools, so the same
// asset shows up as "Char_Hero", "char hero" and "char-hero". Every
// lookup goes through [Normalize] so those spellings all find the same
// file. Normalization is idempotent: a normalized id is a fixed point.
package assetid

import (
	"strings"
	"unicode/utf8"
)

// MaxDerivedLength caps the length, in bytes, of ids synthesized by
// [Derive].
const MaxDerivedLength = 64

// Unknown is the id assigned to manifest entries that carry no string
// values at all.
const Unknown = "unknown"

// Normalize returns the canonical lookup form of raw: surrounding
// whitespace trimmed, lowercased, and every space and underscore
// replaced by a hyphen. Normalize never fails.
func Normalize(raw string) string {
	trimmed := strings.TrimSpace(raw)
	lowered := strings.ToLower(trimmed)
	return strings.Map(func(r rune) rune {
		if r == ' ' || r == '_' {
			return '-'
		}
		return r
	}, lowered)
}

// Derive synthesizes an id for a manifest entry that has none of its
// section's id fields. The entry's non-empty string values are joined
// with hyphens in document order and the result is truncated to
// [MaxDerivedLength] bytes without splitting a UTF-8 sequence. Returns
// [Unknown] when values holds no non-empty strings.
func Derive(values []string) string {
	var parts []string
	for _, value := range values {
		if value != "" {
			parts = append(parts, value)
		}
	}
	if len(parts) == 0 {
		return Unknown
	}

	joined := strings.Join(parts, "-")
	if len(joined) <= MaxDerivedLength {
		return joined
	}
	cut := MaxDerivedLength
	for cut > 0 && !utf8.RuneStart(joined[cut]) {
		cut--
	}
	return joined[:cut]
}
