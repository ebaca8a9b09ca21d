// Copyright 2026 The Framewright Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for building asset
// libraries, fallback trees and run directories on disk.
//
// [NewRoots] creates an empty library root and fallback root under
// t.TempDir(), with every expected subdirectory in place.
// [WriteLibraryAsset], [WriteFallbackAsset] and [WriteLicense] populate
// them; [WriteManifest] writes an AssetManifest.json into a run
// directory.
//
// File contents are fixed bytes, never timestamps or random data, so
// fixtures are reproducible across runs.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
//
// This package only depends on lib/schema/media, so any package's
// in-package tests can use it without import cycles.
package testutil
