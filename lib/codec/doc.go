// Copyright 2026 The Framewright Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides the canonical binary encoding used to
// fingerprint resolved items.
//
// The output document itself is JSON (see media.Encode). Fingerprints
// are computed over CBOR instead so that they depend only on field
// values, not on indentation or escaping choices of a JSON encoder.
// Core Deterministic Encoding guarantees that the same value always
// produces the same bytes, which is what makes per-item digests
// comparable across runs.
//
// Consumers import this package rather than fxamacker/cbor directly.
package codec
