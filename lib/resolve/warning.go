// Copyright 2026 The Framewright Authors
// SPDX-License-Identifier: Apache-2.0

package resolve

import (
	"log/slog"

	"github.com/framewright/media/lib/schema/media"
)

// WarningCode classifies a soft failure.
type WarningCode string

const (
	// WarningNotFound: neither root holds the asset; a placeholder was
	// emitted.
	WarningNotFound WarningCode = "local_asset_not_found"

	// WarningLicenseFileMissing: a library asset has no license record;
	// a NOASSERTION license was attached.
	WarningLicenseFileMissing WarningCode = "license_file_missing"

	// WarningLicenseFileMalformed: a library asset's license record
	// could not be read or parsed.
	WarningLicenseFileMalformed WarningCode = "license_file_malformed"

	// WarningUnknownLicenseType: the manifest declared a license type
	// outside the enumeration.
	WarningUnknownLicenseType WarningCode = "unknown_license_type"

	// WarningLicenseTypeMissing: a fallback asset was found but the
	// manifest declared no license type for it.
	WarningLicenseTypeMissing WarningCode = "license_type_missing"

	// WarningLookupFailed: a root could not be searched. The tier is
	// treated as a miss.
	WarningLookupFailed WarningCode = "lookup_failed"
)

// Warning is a soft failure recorded against a run. Warnings never
// stop resolution and never appear in the output document.
type Warning struct {
	Code      WarningCode     `json:"code"`
	AssetID   string          `json:"asset_id"`
	AssetType media.AssetType `json:"asset_type"`

	// Path is the file or directory involved, when there is one.
	Path string `json:"path,omitempty"`

	Message string `json:"message"`
}

// Log emits the warning at warn level with the code as the message.
func (w Warning) Log(logger *slog.Logger) {
	if logger == nil {
		return
	}
	attributes := []any{"asset_id", w.AssetID, "asset_type", string(w.AssetType)}
	if w.Path != "" {
		attributes = append(attributes, "path", w.Path)
	}
	attributes = append(attributes, "detail", w.Message)
	logger.Warn(string(w.Code), attributes...)
}
