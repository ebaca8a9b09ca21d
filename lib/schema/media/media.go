// Copyright 2026 The Framewright Authors
// SPDX-License-Identifier: Apache-2.0

package media

import (
	"errors"
	"fmt"
	"strings"
)

// Provenance stamped on every resolved item by the local resolver.
const (
	ResolvedAssetSchemaID      = "urn:media:resolved-asset"
	ResolvedAssetSchemaVersion = "1.0.0"
	ResolverProducer           = "media/resolvers/local"
)

// Envelope constants for the output document.
const (
	ManifestSchemaID      = "AssetManifest.media"
	ManifestSchemaVersion = "1.0.0"
	ManifestProducer      = "media/resolve"

	// InputSchemaID is the schema_id an input manifest may declare.
	// Manifests that omit schema_id are accepted.
	InputSchemaID = "AssetManifest"
)

// File names inside a run directory.
const (
	InputFileName  = "AssetManifest.json"
	OutputFileName = "AssetManifest.media.json"
)

// URI schemes. Resolved files use file://, unresolved assets use
// placeholder://. Nothing else is allowed in an output document.
const (
	FileScheme        = "file://"
	PlaceholderScheme = "placeholder://"
)

// NoAssertion is the SPDX sentinel carried by placeholder licenses and
// by degraded licenses attached when a license record is missing.
const NoAssertion = "NOASSERTION"

// Provider tags recorded in AssetMetadata.ProviderOrModel.
const (
	ProviderLocalLibrary = "local_library"
	ProviderPlaceholder  = "placeholder_stub_v0"
)

// AssetType classifies an asset reference. The type selects which
// directories are searched and which extension preference applies.
type AssetType string

const (
	Character  AssetType = "character"
	Background AssetType = "background"
	Prop       AssetType = "prop"
	VO         AssetType = "vo"
	SFX        AssetType = "sfx"
	Music      AssetType = "music"
)

// Medium groups asset types by the kind of file that backs them.
type Medium string

const (
	Image Medium = "image"
	Audio Medium = "audio"
)

// AllAssetTypes lists every asset type in manifest section order.
func AllAssetTypes() []AssetType {
	return []AssetType{Character, Background, Prop, VO, SFX, Music}
}

// Valid reports whether t is one of the known asset types.
func (t AssetType) Valid() bool {
	switch t {
	case Character, Background, Prop, VO, SFX, Music:
		return true
	}
	return false
}

// Medium returns Image for character, background and prop assets and
// Audio for everything else.
func (t AssetType) Medium() Medium {
	switch t {
	case Character, Background, Prop:
		return Image
	default:
		return Audio
	}
}

// AssetReference is one asset request extracted from an input
// manifest entry.
type AssetReference struct {
	AssetID   string
	AssetType AssetType

	// DeclaredLicenseType is the entry's license_type, or "" when the
	// entry did not declare one.
	DeclaredLicenseType string
}

// AssetLicense is the license record attached to every resolved item.
// It is never absent: unresolved assets carry a NOASSERTION license.
type AssetLicense struct {
	SPDXID              string `json:"spdx_id"`
	AttributionRequired bool   `json:"attribution_required"`
	Text                string `json:"text"`
}

// PlaceholderLicense returns the license attached to placeholders and
// to assets whose license record could not be loaded.
func PlaceholderLicense() AssetLicense {
	return AssetLicense{SPDXID: NoAssertion}
}

// SourceType tags where a resolved item came from.
type SourceType string

const (
	SourceLocal       SourceType = "local"
	SourcePlaceholder SourceType = "placeholder"
)

// SourceRoot names which configured root satisfied a local lookup.
type SourceRoot string

const (
	RootLibrary  SourceRoot = "library"
	RootFallback SourceRoot = "fallback"
)

// AssetSource records the provenance of a resolved item.
type AssetSource struct {
	Type SourceType `json:"type"`

	// Root is set for local items only.
	Root SourceRoot `json:"root,omitempty"`
}

// AssetMetadata carries rights and provenance annotations.
type AssetMetadata struct {
	// LicenseType is the rights category (see [LicenseType]). It is a
	// label distinct from the SPDX id on the license record.
	LicenseType string `json:"license_type"`

	// Attribution is the text downstream consumers must display, set
	// when the license requires attribution.
	Attribution string `json:"attribution"`

	// PurchaseRecord references a purchase or clearance record for
	// commercially licensed material. The local resolver leaves it
	// empty.
	PurchaseRecord string `json:"purchase_record"`

	ProviderOrModel string `json:"provider_or_model"`

	// RetrievalDate is the run's sentinel timestamp, never the wall
	// clock.
	RetrievalDate string `json:"retrieval_date"`
}

// ResolvedAsset is one item of the output document. Field order here
// is the serialized field order.
type ResolvedAsset struct {
	SchemaID      string        `json:"schema_id"`
	SchemaVersion string        `json:"schema_version"`
	Producer      string        `json:"producer"`
	AssetID       string        `json:"asset_id"`
	AssetType     AssetType     `json:"asset_type"`
	URI           string        `json:"uri"`
	IsPlaceholder bool          `json:"is_placeholder"`
	Source        AssetSource   `json:"source"`
	License       AssetLicense  `json:"license"`
	Metadata      AssetMetadata `json:"metadata"`
}

// Validate checks the structural invariants of a resolved item:
// placeholder flag and URI scheme agree, the URI is local, the asset
// type is known, and the license carries an SPDX id.
func (a *ResolvedAsset) Validate() error {
	var errs []error

	if a.AssetID == "" {
		errs = append(errs, errors.New("asset_id is required"))
	}
	if !a.AssetType.Valid() {
		errs = append(errs, fmt.Errorf("unknown asset_type %q", a.AssetType))
	}
	if err := ValidateURI(a.URI); err != nil {
		errs = append(errs, err)
	}
	if a.IsPlaceholder != strings.HasPrefix(a.URI, PlaceholderScheme) {
		errs = append(errs, fmt.Errorf("is_placeholder=%t disagrees with uri %q", a.IsPlaceholder, a.URI))
	}
	wantSource := SourceLocal
	if a.IsPlaceholder {
		wantSource = SourcePlaceholder
	}
	if a.Source.Type != wantSource {
		errs = append(errs, fmt.Errorf("source.type %q, want %q", a.Source.Type, wantSource))
	}
	if a.License.SPDXID == "" {
		errs = append(errs, errors.New("license.spdx_id is required"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("asset %q: %w", a.AssetID, errors.Join(errs...))
	}
	return nil
}

// ValidateURI rejects any URI that is not file:// or placeholder://.
// Remote schemes are reported explicitly since they indicate an
// attempt to resolve over the network.
func ValidateURI(uri string) error {
	lower := strings.ToLower(uri)
	switch {
	case strings.HasPrefix(lower, "http://"), strings.HasPrefix(lower, "https://"):
		return fmt.Errorf("remote uri not allowed: %s", uri)
	case strings.HasPrefix(uri, FileScheme), strings.HasPrefix(uri, PlaceholderScheme):
		return nil
	default:
		return fmt.Errorf("unsupported uri scheme: %q", uri)
	}
}

// PlaceholderURI returns the placeholder URI for an asset.
func PlaceholderURI(assetType AssetType, assetID string) string {
	return PlaceholderScheme + string(assetType) + "/" + assetID
}

// MediaManifest is the output document written next to the input
// manifest as AssetManifest.media.json.
type MediaManifest struct {
	SchemaID      string          `json:"schema_id"`
	SchemaVersion string          `json:"schema_version"`
	ManifestID    string          `json:"manifest_id"`
	ProjectID     string          `json:"project_id"`
	Producer      string          `json:"producer"`
	GeneratedAt   string          `json:"generated_at"`
	Items         []ResolvedAsset `json:"items"`
}

// Validate checks the envelope and every item.
func (m *MediaManifest) Validate() error {
	var errs []error
	if m.SchemaID != ManifestSchemaID {
		errs = append(errs, fmt.Errorf("schema_id %q, want %q", m.SchemaID, ManifestSchemaID))
	}
	if m.ManifestID == "" {
		errs = append(errs, errors.New("manifest_id is required"))
	}
	for i := range m.Items {
		if err := m.Items[i].Validate(); err != nil {
			errs = append(errs, fmt.Errorf("items[%d]: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

// PlaceholderCount returns the number of placeholder items.
func (m *MediaManifest) PlaceholderCount() int {
	count := 0
	for i := range m.Items {
		if m.Items[i].IsPlaceholder {
			count++
		}
	}
	return count
}
