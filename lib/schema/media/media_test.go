// Copyright 2026 The Framewright Authors
// SPDX-License-Identifier: Apache-2.0

package media

import (
	"bytes"
	"strings"
	"testing"
)

func validLocalAsset() ResolvedAsset {
	return ResolvedAsset{
		SchemaID:      ResolvedAssetSchemaID,
		SchemaVersion: ResolvedAssetSchemaVersion,
		Producer:      ResolverProducer,
		AssetID:       "char-hero",
		AssetType:     Character,
		URI:           "file:///library/images/char-hero.png",
		Source:        AssetSource{Type: SourceLocal, Root: RootLibrary},
		License:       AssetLicense{SPDXID: "CC0"},
		Metadata: AssetMetadata{
			LicenseType:     string(LicenseCC0),
			ProviderOrModel: ProviderLocalLibrary,
			RetrievalDate:   "1970-01-01T00:00:00Z",
		},
	}
}

func TestAssetTypeMedium(t *testing.T) {
	tests := []struct {
		assetType AssetType
		want      Medium
	}{
		{Character, Image},
		{Background, Image},
		{Prop, Image},
		{VO, Audio},
		{SFX, Audio},
		{Music, Audio},
	}
	for _, test := range tests {
		if got := test.assetType.Medium(); got != test.want {
			t.Errorf("%s.Medium() = %s, want %s", test.assetType, got, test.want)
		}
		if !test.assetType.Valid() {
			t.Errorf("%s.Valid() = false, want true", test.assetType)
		}
	}
	if AssetType("texture").Valid() {
		t.Error("texture.Valid() = true, want false")
	}
}

func TestLicenseTypeValid(t *testing.T) {
	for _, licenseType := range AllowedLicenseTypes() {
		if !licenseType.Valid() {
			t.Errorf("%q.Valid() = false, want true", licenseType)
		}
	}
	for _, invalid := range []LicenseType{"", "cc0", "MIT", "NOASSERTION", LicenseTypeUnknown} {
		if invalid.Valid() {
			t.Errorf("%q.Valid() = true, want false", invalid)
		}
	}
}

func TestAllowedLicenseTypesSorted(t *testing.T) {
	allowed := AllowedLicenseTypes()
	if len(allowed) != 5 {
		t.Fatalf("len(AllowedLicenseTypes()) = %d, want 5", len(allowed))
	}
	for i := 1; i < len(allowed); i++ {
		if allowed[i-1] >= allowed[i] {
			t.Errorf("AllowedLicenseTypes not sorted at %d: %q >= %q", i, allowed[i-1], allowed[i])
		}
	}
}

func TestResolvedAssetValidate(t *testing.T) {
	asset := validLocalAsset()
	if err := asset.Validate(); err != nil {
		t.Fatalf("Validate(valid local asset): %v", err)
	}

	placeholder := validLocalAsset()
	placeholder.URI = PlaceholderURI(Character, "char-hero")
	placeholder.IsPlaceholder = true
	placeholder.Source = AssetSource{Type: SourcePlaceholder}
	placeholder.License = PlaceholderLicense()
	if err := placeholder.Validate(); err != nil {
		t.Fatalf("Validate(valid placeholder): %v", err)
	}

	tests := []struct {
		name    string
		mutate  func(*ResolvedAsset)
		wantErr string
	}{
		{"flag without scheme", func(a *ResolvedAsset) { a.IsPlaceholder = true }, "disagrees with uri"},
		{"scheme without flag", func(a *ResolvedAsset) { a.URI = "placeholder://character/x" }, "disagrees with uri"},
		{"remote http", func(a *ResolvedAsset) { a.URI = "http://cdn.example/hero.png" }, "remote uri not allowed"},
		{"remote https", func(a *ResolvedAsset) { a.URI = "HTTPS://cdn.example/hero.png" }, "remote uri not allowed"},
		{"unknown scheme", func(a *ResolvedAsset) { a.URI = "s3://bucket/hero.png" }, "unsupported uri scheme"},
		{"empty license", func(a *ResolvedAsset) { a.License = AssetLicense{} }, "license.spdx_id is required"},
		{"bad type", func(a *ResolvedAsset) { a.AssetType = "texture" }, "unknown asset_type"},
		{"wrong source", func(a *ResolvedAsset) { a.Source.Type = SourcePlaceholder }, "source.type"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			asset := validLocalAsset()
			test.mutate(&asset)
			err := asset.Validate()
			if err == nil {
				t.Fatal("Validate succeeded, want error")
			}
			if !strings.Contains(err.Error(), test.wantErr) {
				t.Errorf("Validate error = %q, want substring %q", err, test.wantErr)
			}
		})
	}
}

func TestEncodeCanonical(t *testing.T) {
	document := &MediaManifest{
		SchemaID:      ManifestSchemaID,
		SchemaVersion: ManifestSchemaVersion,
		ManifestID:    "ep01",
		ProjectID:     "pilot",
		Producer:      ManifestProducer,
		GeneratedAt:   "1970-01-01T00:00:00Z",
		Items:         []ResolvedAsset{validLocalAsset()},
	}

	first, err := Encode(document)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	second, err := Encode(document)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Error("Encode is not deterministic")
	}
	if !bytes.HasSuffix(first, []byte("}\n")) {
		t.Errorf("Encode output does not end with a single newline: %q", first[len(first)-5:])
	}
	if !bytes.HasPrefix(first, []byte("{\n  \"schema_id\": \"AssetManifest.media\",\n")) {
		t.Errorf("unexpected document prefix:\n%s", first)
	}
	// The file:// path must not be HTML-escaped or reordered.
	if !bytes.Contains(first, []byte(`"uri": "file:///library/images/char-hero.png"`)) {
		t.Errorf("uri not serialized verbatim:\n%s", first)
	}

	decoded, err := Decode(first)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if err := decoded.Validate(); err != nil {
		t.Errorf("Validate(decoded): %v", err)
	}
}

func TestEncodeEmptyItems(t *testing.T) {
	data, err := Encode(&MediaManifest{SchemaID: ManifestSchemaID, ManifestID: "empty"})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !bytes.Contains(data, []byte(`"items": []`)) {
		t.Errorf("nil items not encoded as []:\n%s", data)
	}
}

func TestPlaceholderCount(t *testing.T) {
	placeholder := validLocalAsset()
	placeholder.IsPlaceholder = true
	document := &MediaManifest{Items: []ResolvedAsset{validLocalAsset(), placeholder, placeholder}}
	if got := document.PlaceholderCount(); got != 2 {
		t.Errorf("PlaceholderCount() = %d, want 2", got)
	}
}
