// Copyright 2026 The Framewright Authors
// SPDX-License-Identifier: Apache-2.0

package resolve

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/framewright/media/lib/assetid"
	"github.com/framewright/media/lib/library"
	"github.com/framewright/media/lib/rights"
	"github.com/framewright/media/lib/schema/media"
)

// Roots is the pair of search roots threaded through every call.
type Roots = library.Roots

// Options controls a manifest-level run.
type Options struct {
	// Strict turns any placeholder into a [*StrictError].
	Strict bool

	// Timestamp picks the run's sentinel timestamp. The zero value is
	// the epoch policy.
	Timestamp TimestampPolicy

	// Tiers overrides the search order. Nil means
	// library.DefaultTiers over the run's roots.
	Tiers []library.Tier

	// Logger receives warnings as they accrue. Nil disables logging.
	Logger *slog.Logger
}

// Resolution is the outcome for one asset reference.
type Resolution struct {
	Asset    media.ResolvedAsset
	Warnings []Warning
}

// Result is the outcome of a manifest-level run.
type Result struct {
	Manifest *media.MediaManifest

	// Warnings holds every soft failure in the order it arose.
	Warnings []Warning
}

// Placeholders returns the placeholder items in manifest order.
func (r *Result) Placeholders() []media.ResolvedAsset {
	var placeholders []media.ResolvedAsset
	for _, item := range r.Manifest.Items {
		if item.IsPlaceholder {
			placeholders = append(placeholders, item)
		}
	}
	return placeholders
}

// Resolve resolves one reference against the default tiers over
// roots. timestamp is the run's sentinel.
func Resolve(reference media.AssetReference, roots Roots, timestamp string) Resolution {
	return resolveReference(reference, library.DefaultTiers(roots), timestamp)
}

// ResolveManifest resolves every reference of manifest in order and
// assembles the output document. Warnings are collected on the result.
//
// The only errors are a nil or structurally invalid manifest, an
// output item that fails validation, and, in strict mode, a
// [*StrictError]. A StrictError is returned together with the full
// result so callers can report every offending item.
func ResolveManifest(manifest *media.AssetManifest, roots Roots, options Options) (*Result, error) {
	if manifest == nil {
		return nil, errors.New("resolve: nil manifest")
	}
	if manifest.ManifestID == "" {
		return nil, errors.New("resolve: manifest_id is required")
	}

	tiers := options.Tiers
	if tiers == nil {
		tiers = library.DefaultTiers(roots)
	}
	timestamp := options.Timestamp.Sentinel(manifest)

	result := &Result{
		Manifest: &media.MediaManifest{
			SchemaID:      media.ManifestSchemaID,
			SchemaVersion: media.ManifestSchemaVersion,
			ManifestID:    manifest.ManifestID,
			ProjectID:     manifest.ProjectID,
			Producer:      media.ManifestProducer,
			GeneratedAt:   timestamp,
			Items:         make([]media.ResolvedAsset, 0, len(manifest.References)),
		},
	}

	for index, reference := range manifest.References {
		if !reference.AssetType.Valid() {
			return nil, fmt.Errorf("resolve: reference %d: unknown asset_type %q", index, reference.AssetType)
		}
		resolution := resolveReference(reference, tiers, timestamp)
		if err := resolution.Asset.Validate(); err != nil {
			return nil, fmt.Errorf("resolve: item %d: %w", index, err)
		}
		for _, warning := range resolution.Warnings {
			warning.Log(options.Logger)
		}
		if options.Logger != nil {
			options.Logger.Debug("asset resolved",
				"asset_id", resolution.Asset.AssetID,
				"asset_type", string(resolution.Asset.AssetType),
				"uri", resolution.Asset.URI,
			)
		}
		result.Manifest.Items = append(result.Manifest.Items, resolution.Asset)
		result.Warnings = append(result.Warnings, resolution.Warnings...)
	}

	if options.Strict {
		if placeholders := result.Placeholders(); len(placeholders) > 0 {
			names := make([]string, len(placeholders))
			for i, placeholder := range placeholders {
				names[i] = string(placeholder.AssetType) + "/" + placeholder.AssetID
			}
			return result, &StrictError{Placeholders: names}
		}
	}
	return result, nil
}

// resolveReference runs the per-asset algorithm: normalize, try each
// tier in order, and fall back to a placeholder.
func resolveReference(reference media.AssetReference, tiers []library.Tier, timestamp string) Resolution {
	id := assetid.Normalize(reference.AssetID)
	var warnings []Warning
	warn := func(code WarningCode, path, format string, args ...any) {
		warnings = append(warnings, Warning{
			Code:      code,
			AssetID:   id,
			AssetType: reference.AssetType,
			Path:      path,
			Message:   fmt.Sprintf(format, args...),
		})
	}

	for _, tier := range tiers {
		path, err := tier.Lookup(id, reference.AssetType, tier.Root)
		if err != nil {
			warn(WarningLookupFailed, tier.Root, "%s root: %v", tier.Name, err)
			continue
		}
		if path == "" {
			continue
		}
		absolute, err := filepath.Abs(path)
		if err != nil {
			warn(WarningLookupFailed, path, "%s root: %v", tier.Name, err)
			continue
		}

		asset := localAsset(reference, tier.Name, absolute, timestamp)
		if tier.Name == media.RootLibrary {
			attachLibraryRights(&asset, reference, id, tier.Root, warn)
		} else {
			attachDeclaredRights(&asset, reference, warn)
		}
		return Resolution{Asset: asset, Warnings: warnings}
	}

	warn(WarningNotFound, "", "no file for %q in any root", id)
	return Resolution{Asset: MakePlaceholder(id, reference.AssetType, timestamp), Warnings: warnings}
}

type warnFunc func(code WarningCode, path, format string, args ...any)

// localAsset builds a found item without rights information. The
// manifest's own spelling of the id is kept.
func localAsset(reference media.AssetReference, root media.SourceRoot, path, timestamp string) media.ResolvedAsset {
	return media.ResolvedAsset{
		SchemaID:      media.ResolvedAssetSchemaID,
		SchemaVersion: media.ResolvedAssetSchemaVersion,
		Producer:      media.ResolverProducer,
		AssetID:       reference.AssetID,
		AssetType:     reference.AssetType,
		URI:           library.FileURI(path),
		Source:        media.AssetSource{Type: media.SourceLocal, Root: root},
		Metadata: media.AssetMetadata{
			ProviderOrModel: media.ProviderLocalLibrary,
			RetrievalDate:   timestamp,
		},
	}
}

// attachLibraryRights takes the license from the library's record. A
// missing or unusable record degrades to NOASSERTION with a warning.
// The metadata label is the declared type, or CC0 when none was
// declared.
func attachLibraryRights(asset *media.ResolvedAsset, reference media.AssetReference, id, libraryRoot string, warn warnFunc) {
	license, err := library.LoadLicense(id, libraryRoot)
	switch {
	case err == nil:
		asset.License = license
	case errors.Is(err, library.ErrLicenseNotFound):
		asset.License = media.PlaceholderLicense()
		warn(WarningLicenseFileMissing, library.LicensePath(id, libraryRoot),
			"library asset has no license record; attached %s", media.NoAssertion)
	default:
		asset.License = media.PlaceholderLicense()
		warn(WarningLicenseFileMalformed, library.LicensePath(id, libraryRoot),
			"%v; attached %s", err, media.NoAssertion)
	}
	if asset.License.AttributionRequired {
		asset.Metadata.Attribution = asset.License.Text
		if asset.Metadata.Attribution == "" {
			asset.Metadata.Attribution = asset.License.SPDXID
		}
	}

	if reference.DeclaredLicenseType == "" {
		asset.Metadata.LicenseType = string(media.DefaultLibraryLicenseType)
		return
	}
	asset.Metadata.LicenseType = reference.DeclaredLicenseType
	if violation := rights.Check(reference.DeclaredLicenseType); violation != nil {
		warn(WarningUnknownLicenseType, "", "%v", violation)
	}
}

// attachDeclaredRights derives the license of a fallback hit from the
// manifest's declared type, since the fallback root has no records.
func attachDeclaredRights(asset *media.ResolvedAsset, reference media.AssetReference, warn warnFunc) {
	declared := reference.DeclaredLicenseType
	violation := rights.Check(declared)
	switch {
	case violation == nil:
		asset.License = media.AssetLicense{SPDXID: declared}
		asset.Metadata.LicenseType = declared
	case violation.Missing:
		asset.License = media.PlaceholderLicense()
		asset.Metadata.LicenseType = media.LicenseTypeUnknown
		warn(WarningLicenseTypeMissing, "", "%v", violation)
	default:
		asset.License = media.PlaceholderLicense()
		asset.Metadata.LicenseType = declared
		warn(WarningUnknownLicenseType, "", "%v", violation)
	}
}
