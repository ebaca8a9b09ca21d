// Copyright 2026 The Framewright Authors
// SPDX-License-Identifier: Apache-2.0

// Package media defines the data model shared by the resolver, the
// verifier and the CLI: asset references read from an input manifest,
// resolved items written to the output document, their license and
// provenance records, and the license-type enumeration.
//
// The output document (AssetManifest.media.json) is compared byte for
// byte by the determinism verifier, so [Encode] is the only sanctioned
// way to serialize it. Struct field order is the wire field order.
//
// Every resolved item satisfies:
//
//   - IsPlaceholder is true exactly when URI starts with placeholder://
//   - URI is file:// or placeholder://, never a remote scheme
//   - License is populated; unresolved items carry NOASSERTION
package media
