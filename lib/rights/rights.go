// Copyright 2026 The Framewright Authors
// SPDX-License-Identifier: Apache-2.0

// Package rights checks declared license types against the allowed
// enumeration. A failed check is a warning, never a block: callers
// record the returned [Violation] and keep resolving.
package rights

import (
	"fmt"
	"strings"

	"github.com/framewright/media/lib/schema/media"
)

// Violation describes a license type that did not pass the check.
type Violation struct {
	// LicenseType is the declared value, "" when nothing was declared.
	LicenseType string
	Missing     bool
}

func (v *Violation) Error() string {
	if v.Missing {
		return "license_type not declared; allowed: " + allowedList()
	}
	return fmt.Sprintf("unknown license_type %q; allowed: %s", v.LicenseType, allowedList())
}

// Check returns nil when licenseType is in the enumeration and a
// *Violation otherwise. An empty licenseType is reported as missing.
func Check(licenseType string) *Violation {
	if licenseType == "" {
		return &Violation{Missing: true}
	}
	if media.LicenseType(licenseType).Valid() {
		return nil
	}
	return &Violation{LicenseType: licenseType}
}

func allowedList() string {
	allowed := media.AllowedLicenseTypes()
	names := make([]string, len(allowed))
	for i, licenseType := range allowed {
		names[i] = string(licenseType)
	}
	return strings.Join(names, ", ")
}
