// Copyright 2026 The Framewright Authors
// SPDX-License-Identifier: Apache-2.0

package library

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/framewright/media/lib/assetid"
	"github.com/framewright/media/lib/schema/media"
)

// Library-root directories. All image assets share one directory, as
// do all audio assets; the license records live beside them.
const (
	ImagesDir   = "images"
	AudioDir    = "audio"
	LicensesDir = "licenses"
)

// fallbackDirs maps each asset type to its fallback-root directory.
var fallbackDirs = map[media.AssetType]string{
	media.Character:  "characters",
	media.Background: "backgrounds",
	media.Prop:       "props",
	media.VO:         "vo",
	media.SFX:        "sfx",
	media.Music:      "music",
}

// Extension preference, best first. Candidates with any other
// extension still match but rank after every preferred one.
var (
	imageExtensions = []string{"png", "jpg", "webp", "gif"}
	audioExtensions = []string{"wav", "mp3", "ogg"}
)

// Roots holds the two configured search roots.
type Roots struct {
	Library  string
	Fallback string
}

// Absolute returns a copy of roots with both paths made absolute and
// cleaned, so that file:// URIs do not depend on how the roots were
// spelled.
func (roots Roots) Absolute() (Roots, error) {
	library, err := filepath.Abs(roots.Library)
	if err != nil {
		return Roots{}, fmt.Errorf("library root %q: %w", roots.Library, err)
	}
	fallback, err := filepath.Abs(roots.Fallback)
	if err != nil {
		return Roots{}, fmt.Errorf("fallback root %q: %w", roots.Fallback, err)
	}
	return Roots{Library: library, Fallback: fallback}, nil
}

// Lookup searches one root for the file backing a normalized asset id.
// It returns "" with a nil error when nothing matches.
type Lookup func(id string, assetType media.AssetType, root string) (string, error)

// Tier is one step of the ordered search: a root and the strategy used
// to search it.
type Tier struct {
	Name   media.SourceRoot
	Root   string
	Lookup Lookup
}

// DefaultTiers returns the library tier followed by the fallback tier.
// The first tier with a hit wins.
func DefaultTiers(roots Roots) []Tier {
	return []Tier{
		{Name: media.RootLibrary, Root: roots.Library, Lookup: FindInLibrary},
		{Name: media.RootFallback, Root: roots.Fallback, Lookup: FindInFallback},
	}
}

// LibraryDir returns the library-root directory searched for assetType.
func LibraryDir(assetType media.AssetType, libraryRoot string) string {
	if assetType.Medium() == media.Image {
		return filepath.Join(libraryRoot, ImagesDir)
	}
	return filepath.Join(libraryRoot, AudioDir)
}

// FallbackDir returns the fallback-root directory searched for
// assetType, or "" for an unknown type.
func FallbackDir(assetType media.AssetType, fallbackRoot string) string {
	name, ok := fallbackDirs[assetType]
	if !ok {
		return ""
	}
	return filepath.Join(fallbackRoot, name)
}

// FallbackDirNames returns the fallback directory names in asset-type
// order.
func FallbackDirNames() []string {
	names := make([]string, 0, len(fallbackDirs))
	for _, assetType := range media.AllAssetTypes() {
		names = append(names, fallbackDirs[assetType])
	}
	return names
}

// FindInLibrary searches images/ or audio/ under libraryRoot for the
// best file whose normalized stem equals id.
func FindInLibrary(id string, assetType media.AssetType, libraryRoot string) (string, error) {
	return findBest(LibraryDir(assetType, libraryRoot), id, assetType)
}

// FindInFallback searches the type-specific directory under
// fallbackRoot for the best file whose normalized stem equals id.
func FindInFallback(id string, assetType media.AssetType, fallbackRoot string) (string, error) {
	directory := FallbackDir(assetType, fallbackRoot)
	if directory == "" {
		return "", fmt.Errorf("no fallback directory for asset type %q", assetType)
	}
	return findBest(directory, id, assetType)
}

// Candidate is a file that matches an asset id, with its rank in the
// extension preference order.
type Candidate struct {
	Path string
	Name string
	Rank int
}

// Candidates returns every regular file in directory whose normalized
// stem equals id, best first. Ordering is by extension rank, then by
// file name, and never depends on directory enumeration order. A
// missing directory yields no candidates.
func Candidates(directory, id string, assetType media.AssetType) ([]Candidate, error) {
	entries, err := os.ReadDir(directory)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		// The *fs.PathError already names the directory.
		return nil, fmt.Errorf("listing asset directory: %w", err)
	}

	preference := Preference(assetType)
	var candidates []Candidate
	for _, entry := range entries {
		name := entry.Name()
		if StemID(name) != id {
			continue
		}
		path := filepath.Join(directory, name)
		if !isRegular(path, entry) {
			continue
		}
		candidates = append(candidates, Candidate{
			Path: path,
			Name: name,
			Rank: rank(preference, name),
		})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Rank != candidates[j].Rank {
			return candidates[i].Rank < candidates[j].Rank
		}
		return candidates[i].Name < candidates[j].Name
	})
	return candidates, nil
}

func findBest(directory, id string, assetType media.AssetType) (string, error) {
	candidates, err := Candidates(directory, id, assetType)
	if err != nil {
		return "", err
	}
	if len(candidates) == 0 {
		return "", nil
	}
	return candidates[0].Path, nil
}

// Preference returns the extension preference list for assetType,
// best first, without leading dots.
func Preference(assetType media.AssetType) []string {
	if assetType.Medium() == media.Image {
		return imageExtensions
	}
	return audioExtensions
}

// Preferred reports whether name has an extension from assetType's
// preference list.
func Preferred(name string, assetType media.AssetType) bool {
	preference := Preference(assetType)
	return rank(preference, name) < len(preference)
}

// StemID returns the normalized asset id a file name maps to: the
// name without its final extension, normalized.
func StemID(name string) string {
	return assetid.Normalize(strings.TrimSuffix(name, filepath.Ext(name)))
}

// FileURI converts an absolute path into a file:// URI.
func FileURI(path string) string {
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(path)}).String()
}

// FilePath is the inverse of [FileURI].
func FilePath(uri string) (string, error) {
	parsed, err := url.Parse(uri)
	if err != nil {
		return "", err
	}
	if parsed.Scheme != "file" {
		return "", fmt.Errorf("%q is not a file uri", uri)
	}
	return filepath.FromSlash(parsed.Path), nil
}

func rank(preference []string, name string) int {
	extension := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	for i, candidate := range preference {
		if extension == candidate {
			return i
		}
	}
	return len(preference)
}

// isRegular reports whether path is a regular file, following
// symlinks. A symlink that cannot be followed, dangling or looping, is
// not a candidate.
func isRegular(path string, entry fs.DirEntry) bool {
	if entry.Type().IsRegular() {
		return true
	}
	if entry.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}
