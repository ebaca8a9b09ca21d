// Copyright 2026 The Framewright Authors
// SPDX-License-Identifier: Apache-2.0

// Package digest computes BLAKE3 keyed digests for resolver outputs.
//
// Three domains are used, each with its own key: items (CBOR encoding
// of one resolved item), manifests (the encoded output document) and
// files (raw bytes on disk). The determinism verifier compares item
// digests to pinpoint which items diverged between two runs, and
// reports the manifest digest of the document it wrote.
package digest
