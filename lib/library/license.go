// Copyright 2026 The Framewright Authors
// SPDX-License-Identifier: Apache-2.0

package library

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/tidwall/jsonc"

	"github.com/framewright/media/lib/schema/media"
)

// LicenseSuffix is appended to an asset id to name its license record.
const LicenseSuffix = ".license.json"

var (
	// ErrLicenseNotFound is returned by [LoadLicense] when the asset
	// has no license record.
	ErrLicenseNotFound = errors.New("license record not found")

	// ErrLicenseMalformed is wrapped by the error [LoadLicense]
	// returns when the record exists but is unusable.
	ErrLicenseMalformed = errors.New("license record malformed")
)

// licenseRecord mirrors the on-disk record. Pointers distinguish an
// absent member from a zero value.
type licenseRecord struct {
	SPDXID              *string `json:"spdx_id"`
	AttributionRequired *bool   `json:"attribution_required"`
	Text                *string `json:"text"`
}

// LicensePath returns the path of the license record for id.
func LicensePath(id, libraryRoot string) string {
	return filepath.Join(libraryRoot, LicensesDir, id+LicenseSuffix)
}

// LoadLicense reads licenses/<id>.license.json under libraryRoot. The
// record may contain comments and trailing commas. spdx_id is required
// and must be non-empty; attribution_required defaults to false and
// text to "".
func LoadLicense(id, libraryRoot string) (media.AssetLicense, error) {
	path := LicensePath(id, libraryRoot)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return media.AssetLicense{}, fmt.Errorf("%s: %w", path, ErrLicenseNotFound)
		}
		return media.AssetLicense{}, fmt.Errorf("reading %s: %w", path, err)
	}

	license, err := ParseLicense(data)
	if err != nil {
		return media.AssetLicense{}, fmt.Errorf("%s: %w", path, err)
	}
	return license, nil
}

// ParseLicense decodes a license record.
func ParseLicense(data []byte) (media.AssetLicense, error) {
	var record licenseRecord
	if err := json.Unmarshal(jsonc.ToJSON(data), &record); err != nil {
		return media.AssetLicense{}, fmt.Errorf("%w: %v", ErrLicenseMalformed, err)
	}
	if record.SPDXID == nil || *record.SPDXID == "" {
		return media.AssetLicense{}, fmt.Errorf("%w: spdx_id is required", ErrLicenseMalformed)
	}

	license := media.AssetLicense{SPDXID: *record.SPDXID}
	if record.AttributionRequired != nil {
		license.AttributionRequired = *record.AttributionRequired
	}
	if record.Text != nil {
		license.Text = *record.Text
	}
	return license, nil
}
