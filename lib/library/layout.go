// Copyright 2026 The Framewright Authors
// SPDX-License-Identifier: Apache-2.0

package library

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/framewright/media/lib/schema/media"
)

// Severity grades a layout finding.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Finding is one problem reported by [CheckLayout].
type Finding struct {
	Severity Severity `json:"severity"`
	Path     string   `json:"path"`
	Message  string   `json:"message"`
}

// HasErrors reports whether any finding has error severity.
func HasErrors(findings []Finding) bool {
	for _, finding := range findings {
		if finding.Severity == SeverityError {
			return true
		}
	}
	return false
}

// CheckLayout audits both roots without modifying them:
//
//   - the library root has images/, audio/ and licenses/
//   - the fallback root has one directory per asset type
//   - every library asset has a parseable license record
//   - every license record belongs to a library asset
//   - asset files use a preferred extension
//   - no two files in one directory map to the same asset id
//
// Findings are sorted by path, then message.
func CheckLayout(roots Roots) []Finding {
	var findings []Finding
	add := func(severity Severity, path, format string, args ...any) {
		findings = append(findings, Finding{Severity: severity, Path: path, Message: fmt.Sprintf(format, args...)})
	}

	libraryIDs := make(map[string]bool)
	if requireDir(roots.Library, "library root", add) {
		for _, directory := range []struct {
			name      string
			assetType media.AssetType
		}{
			{ImagesDir, media.Character},
			{AudioDir, media.VO},
		} {
			path := filepath.Join(roots.Library, directory.name)
			if !requireDir(path, "library "+directory.name+" directory", add) {
				continue
			}
			for _, id := range checkAssetDir(path, directory.assetType, add) {
				libraryIDs[id] = true
			}
		}

		licensesPath := filepath.Join(roots.Library, LicensesDir)
		if requireDir(licensesPath, "library licenses directory", add) {
			checkLicenses(roots.Library, licensesPath, libraryIDs, add)
		}
	}

	if requireDir(roots.Fallback, "fallback root", add) {
		for _, assetType := range media.AllAssetTypes() {
			path := FallbackDir(assetType, roots.Fallback)
			if requireDir(path, "fallback "+string(assetType)+" directory", add) {
				checkAssetDir(path, assetType, add)
			}
		}
	}

	sort.SliceStable(findings, func(i, j int) bool {
		if findings[i].Path != findings[j].Path {
			return findings[i].Path < findings[j].Path
		}
		return findings[i].Message < findings[j].Message
	})
	return findings
}

type addFunc func(severity Severity, path, format string, args ...any)

func requireDir(path, what string, add addFunc) bool {
	info, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		add(SeverityError, path, "%s is missing", what)
		return false
	case err != nil:
		add(SeverityError, path, "%s: %v", what, err)
		return false
	case !info.IsDir():
		add(SeverityError, path, "%s is not a directory", what)
		return false
	}
	return true
}

// checkAssetDir reports extension and duplicate-id findings for one
// asset directory and returns the asset ids it holds, sorted.
func checkAssetDir(directory string, assetType media.AssetType, add addFunc) []string {
	entries, err := os.ReadDir(directory)
	if err != nil {
		add(SeverityError, directory, "listing directory: %v", err)
		return nil
	}

	byID := make(map[string][]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !Preferred(name, assetType) {
			add(SeverityWarning, filepath.Join(directory, name),
				"extension not in preference list %s; ranked last", strings.Join(Preference(assetType), " > "))
		}
		id := StemID(name)
		byID[id] = append(byID[id], name)
	}

	ids := make([]string, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		if len(byID[id]) < 2 {
			continue
		}
		candidates, err := Candidates(directory, id, assetType)
		if err != nil || len(candidates) == 0 {
			continue
		}
		names := make([]string, len(candidates))
		for i, candidate := range candidates {
			names[i] = candidate.Name
		}
		add(SeverityWarning, filepath.Join(directory, candidates[0].Name),
			"%d files map to asset id %q (%s); this one wins", len(candidates), id, strings.Join(names, ", "))
	}
	return ids
}

func checkLicenses(libraryRoot, licensesPath string, libraryIDs map[string]bool, add addFunc) {
	assetIDs := make([]string, 0, len(libraryIDs))
	for id := range libraryIDs {
		assetIDs = append(assetIDs, id)
	}
	sort.Strings(assetIDs)

	for _, id := range assetIDs {
		_, err := LoadLicense(id, libraryRoot)
		switch {
		case err == nil:
		case errors.Is(err, ErrLicenseNotFound):
			add(SeverityError, LicensePath(id, libraryRoot), "library asset %q has no license record", id)
		default:
			add(SeverityError, LicensePath(id, libraryRoot), "%v", unwrapPath(err))
		}
	}

	entries, err := os.ReadDir(licensesPath)
	if err != nil {
		add(SeverityError, licensesPath, "listing directory: %v", err)
		return
	}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, LicenseSuffix) {
			continue
		}
		id := strings.TrimSuffix(name, LicenseSuffix)
		if !libraryIDs[id] {
			add(SeverityError, filepath.Join(licensesPath, name), "license record has no matching library asset")
		}
	}
}

// unwrapPath drops the "<path>: " prefix LoadLicense adds, since the
// finding already carries the path.
func unwrapPath(err error) error {
	if inner := errors.Unwrap(err); inner != nil {
		return inner
	}
	return err
}
