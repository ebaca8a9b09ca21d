// Copyright 2026 The Framewright Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/framewright/media/lib/schema/media"
)

// Directory names mirrored from lib/library. Kept as literals here so
// that library's own tests can import this package.
var (
	libraryDirs  = []string{"images", "audio", "licenses"}
	fallbackDirs = map[media.AssetType]string{
		media.Character:  "characters",
		media.Background: "backgrounds",
		media.Prop:       "props",
		media.VO:         "vo",
		media.SFX:        "sfx",
		media.Music:      "music",
	}
)

// Roots is a pair of temporary roots created by [NewRoots].
type Roots struct {
	Library  string
	Fallback string
}

// NewRoots creates separate library and fallback roots with every
// expected subdirectory, all empty.
func NewRoots(t *testing.T) Roots {
	t.Helper()
	base := t.TempDir()
	roots := Roots{
		Library:  filepath.Join(base, "library"),
		Fallback: filepath.Join(base, "fallback"),
	}
	for _, name := range libraryDirs {
		MkdirAll(t, filepath.Join(roots.Library, name))
	}
	for _, assetType := range media.AllAssetTypes() {
		MkdirAll(t, filepath.Join(roots.Fallback, fallbackDirs[assetType]))
	}
	return roots
}

// MkdirAll creates directory and any missing parents.
func MkdirAll(t *testing.T, directory string) {
	t.Helper()
	if err := os.MkdirAll(directory, 0o755); err != nil {
		t.Fatalf("creating %s: %v", directory, err)
	}
}

// WriteFile writes data to path, creating parent directories.
func WriteFile(t *testing.T, path string, data []byte) string {
	t.Helper()
	MkdirAll(t, filepath.Dir(path))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	return path
}

// WriteLibraryAsset writes <libraryRoot>/images/<fileName> or
// <libraryRoot>/audio/<fileName> depending on assetType, and returns
// the path.
func WriteLibraryAsset(t *testing.T, libraryRoot string, assetType media.AssetType, fileName string) string {
	t.Helper()
	directory := "audio"
	if assetType.Medium() == media.Image {
		directory = "images"
	}
	return WriteFile(t, filepath.Join(libraryRoot, directory, fileName), []byte("asset:"+fileName))
}

// WriteFallbackAsset writes <fallbackRoot>/<type dir>/<fileName> and
// returns the path.
func WriteFallbackAsset(t *testing.T, fallbackRoot string, assetType media.AssetType, fileName string) string {
	t.Helper()
	directory, ok := fallbackDirs[assetType]
	if !ok {
		t.Fatalf("no fallback directory for asset type %q", assetType)
	}
	return WriteFile(t, filepath.Join(fallbackRoot, directory, fileName), []byte("asset:"+fileName))
}

// WriteLicense writes <libraryRoot>/licenses/<id>.license.json with
// the given record and returns the path.
func WriteLicense(t *testing.T, libraryRoot, id string, license media.AssetLicense) string {
	t.Helper()
	data, err := json.Marshal(license)
	if err != nil {
		t.Fatalf("encoding license for %s: %v", id, err)
	}
	return WriteFile(t, filepath.Join(libraryRoot, "licenses", id+".license.json"), data)
}

// CC0 is the license record most fixtures use.
func CC0() media.AssetLicense {
	return media.AssetLicense{SPDXID: "CC0"}
}

// Manifest is a convenience builder for input manifests. Section
// values are written verbatim.
type Manifest struct {
	ManifestID     string           `json:"manifest_id"`
	ProjectID      string           `json:"project_id,omitempty"`
	GeneratedAt    string           `json:"generated_at,omitempty"`
	CharacterPacks []map[string]any `json:"character_packs,omitempty"`
	Backgrounds    []map[string]any `json:"backgrounds,omitempty"`
	Props          []map[string]any `json:"props,omitempty"`
	VOItems        []map[string]any `json:"vo_items,omitempty"`
	SFXItems       []map[string]any `json:"sfx_items,omitempty"`
	MusicItems     []map[string]any `json:"music_items,omitempty"`
}

// WriteManifest writes manifest as <runDir>/AssetManifest.json and
// returns the path. A missing ManifestID defaults to "test-manifest".
func WriteManifest(t *testing.T, runDir string, manifest Manifest) string {
	t.Helper()
	if manifest.ManifestID == "" {
		manifest.ManifestID = "test-manifest"
	}
	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		t.Fatalf("encoding manifest: %v", err)
	}
	return WriteFile(t, filepath.Join(runDir, media.InputFileName), data)
}

// ReadFile returns the contents of path.
func ReadFile(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return data
}
