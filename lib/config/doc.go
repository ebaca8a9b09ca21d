// Copyright 2026 The Framewright Authors
// SPDX-License-Identifier: Apache-2.0

// Package config loads resolver configuration.
//
// Values come from four layers, each overriding the one before:
//
//  1. [Default]: both roots at ./data/local_assets, epoch timestamps
//  2. an optional YAML file named by --config or MEDIA_CONFIG
//  3. environment variables (MEDIA_LIBRARY_ROOT, MEDIA_FALLBACK_ROOT,
//     RUN_DIR, MEDIA_TIMESTAMP, MEDIA_STRICT; LOCAL_ASSETS_ROOT is
//     accepted as an older name for the fallback root)
//  4. command-line flags, via [Config.Override]
//
// There is no config file discovery. Path values in the file may use
// ${VAR} and ${VAR:-default} and are resolved relative to the file.
//
// The engine itself never reads configuration: commands turn a
// [Config] into explicit roots and a timestamp policy and pass those
// down.
package config
