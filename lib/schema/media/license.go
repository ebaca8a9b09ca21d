// Copyright 2026 The Framewright Authors
// SPDX-License-Identifier: Apache-2.0

package media

import "sort"

// LicenseType is a rights category declared by manifest authors. It
// answers "may we ship this" rather than "under which license text",
// which is what the SPDX id on [AssetLicense] answers.
type LicenseType string

const (
	LicenseProprietaryCleared LicenseType = "proprietary_cleared"
	LicenseCC0                LicenseType = "CC0"
	LicenseCommercialLicensed LicenseType = "commercial_licensed"
	LicenseGeneratedLocal     LicenseType = "generated_local"
	LicensePlaceholder        LicenseType = "placeholder"
)

// LicenseTypeUnknown is recorded in metadata when a fallback asset
// was found but its manifest entry declared no license type. It is
// deliberately not a member of the enumeration.
const LicenseTypeUnknown = "unknown"

// DefaultLibraryLicenseType is recorded for library assets whose
// manifest entry declared no license type.
const DefaultLibraryLicenseType = LicenseCC0

// Valid reports whether t is in the license-type enumeration. The
// comparison is exact: "cc0" is not "CC0".
func (t LicenseType) Valid() bool {
	switch t {
	case LicenseProprietaryCleared, LicenseCC0, LicenseCommercialLicensed,
		LicenseGeneratedLocal, LicensePlaceholder:
		return true
	}
	return false
}

// AllowedLicenseTypes returns the enumeration sorted lexically, for
// stable error and warning messages.
func AllowedLicenseTypes() []LicenseType {
	allowed := []LicenseType{
		LicenseProprietaryCleared,
		LicenseCC0,
		LicenseCommercialLicensed,
		LicenseGeneratedLocal,
		LicensePlaceholder,
	}
	sort.Slice(allowed, func(i, j int) bool { return allowed[i] < allowed[j] })
	return allowed
}
