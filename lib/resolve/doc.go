// Copyright 2026 The Framewright Authors
// SPDX-License-Identifier: Apache-2.0

// Package resolve turns asset references into resolved items.
//
// For each reference the engine normalizes the id, then walks an
// ordered list of [library.Tier] values (library root first, fallback
// root second) and stops at the first hit:
//
//   - library hit: the license comes from the library's record; a
//     missing or malformed record degrades to NOASSERTION
//   - fallback hit: the license is derived from the manifest's
//     declared license type
//   - no hit: a placeholder is emitted
//
// Rights problems and misses are [Warning] values collected on the
// [Result]; they never stop a run. The output is a pure function of
// the manifest, the contents of both roots and the [TimestampPolicy].
// No clock is read and every directory listing is sorted before use.
//
// [ResolveManifest] is single-threaded and performs only reads.
package resolve
