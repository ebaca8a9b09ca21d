// Copyright 2026 The Framewright Authors
// SPDX-License-Identifier: Apache-2.0

// Package version reports build and schema versions for the media
// binary.
//
// Build fields are injected with -ldflags, for example:
//
//	go build -ldflags "-X github.com/framewright/media/lib/version.GitCommit=$(git rev-parse --short HEAD)"
//
// When they are not injected, [Current] falls back to the VCS settings
// the Go toolchain embeds in the binary.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/framewright/media/lib/schema/media"
)

// Set via -ldflags at build time.
var (
	GitCommit = "unknown"
	GitDirty  = "false"
	BuildTime = "unknown"
	Version   = "0.1.0-dev"
)

// Info is the version report printed by "media version".
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Dirty     bool   `json:"dirty"`
	BuildTime string `json:"build_time"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`

	// Schemas maps each emitted schema id to its version. Consumers
	// compare these, not the binary version, to decide compatibility.
	Schemas map[string]string `json:"schemas"`
}

// Current returns the version of the running binary.
func Current() Info {
	info := Info{
		Version:   Version,
		Commit:    GitCommit,
		Dirty:     GitDirty == "true",
		BuildTime: BuildTime,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
		Schemas: map[string]string{
			media.ManifestSchemaID:      media.ManifestSchemaVersion,
			media.ResolvedAssetSchemaID: media.ResolvedAssetSchemaVersion,
		},
	}
	if info.Commit == "unknown" {
		fillFromBuildInfo(&info)
	}
	return info
}

func fillFromBuildInfo(info *Info) {
	build, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	for _, setting := range build.Settings {
		switch setting.Key {
		case "vcs.revision":
			if len(setting.Value) > 12 {
				info.Commit = setting.Value[:12]
			} else {
				info.Commit = setting.Value
			}
		case "vcs.modified":
			info.Dirty = setting.Value == "true"
		case "vcs.time":
			if info.BuildTime == "unknown" {
				info.BuildTime = setting.Value
			}
		}
	}
}

// String returns the one-line form used by --version.
func (i Info) String() string {
	dirty := ""
	if i.Dirty {
		dirty = "-dirty"
	}
	return fmt.Sprintf("%s (%s%s, %s)", i.Version, i.Commit, dirty, i.BuildTime)
}

// Full adds toolchain, platform, and schema versions.
func (i Info) Full() string {
	return fmt.Sprintf("%s\n  Go: %s\n  Platform: %s\n  Schemas: %s %s, %s %s",
		i.String(), i.GoVersion, i.Platform,
		media.ManifestSchemaID, i.Schemas[media.ManifestSchemaID],
		media.ResolvedAssetSchemaID, i.Schemas[media.ResolvedAssetSchemaID])
}
