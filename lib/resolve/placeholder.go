// Copyright 2026 The Framewright Authors
// SPDX-License-Identifier: Apache-2.0

package resolve

import "github.com/framewright/media/lib/schema/media"

// MakePlaceholder builds the stand-in for an asset that neither root
// holds. The result depends only on its arguments.
func MakePlaceholder(assetID string, assetType media.AssetType, timestamp string) media.ResolvedAsset {
	return media.ResolvedAsset{
		SchemaID:      media.ResolvedAssetSchemaID,
		SchemaVersion: media.ResolvedAssetSchemaVersion,
		Producer:      media.ResolverProducer,
		AssetID:       assetID,
		AssetType:     assetType,
		URI:           media.PlaceholderURI(assetType, assetID),
		IsPlaceholder: true,
		Source:        media.AssetSource{Type: media.SourcePlaceholder},
		License:       media.PlaceholderLicense(),
		Metadata: media.AssetMetadata{
			LicenseType:     string(media.LicensePlaceholder),
			ProviderOrModel: media.ProviderPlaceholder,
			RetrievalDate:   timestamp,
		},
	}
}
