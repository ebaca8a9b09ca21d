// Copyright 2026 The Framewright Authors
// SPDX-License-Identifier: Apache-2.0

package resolve

import (
	"bytes"
	"errors"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/framewright/media/lib/library"
	"github.com/framewright/media/lib/schema/media"
	"github.com/framewright/media/lib/testutil"
)

func heroManifest() *media.AssetManifest {
	return &media.AssetManifest{
		ManifestID: "test-manifest",
		ProjectID:  "proj-001",
		References: []media.AssetReference{
			{AssetID: "char-hero", AssetType: media.Character, DeclaredLicenseType: "proprietary_cleared"},
		},
	}
}

func TestScenarioLibraryHit(t *testing.T) {
	fixture := testutil.NewRoots(t)
	testutil.WriteLibraryAsset(t, fixture.Library, media.Character, "char-hero.png")
	testutil.WriteLicense(t, fixture.Library, "char-hero", media.AssetLicense{SPDXID: "CC0", AttributionRequired: false, Text: ""})

	result, err := ResolveManifest(heroManifest(), Roots(fixture), Options{})
	if err != nil {
		t.Fatalf("ResolveManifest: %v", err)
	}
	if len(result.Manifest.Items) != 1 {
		t.Fatalf("got %d items, want 1", len(result.Manifest.Items))
	}
	item := result.Manifest.Items[0]
	if !strings.HasSuffix(item.URI, "char-hero.png") || !strings.HasPrefix(item.URI, "file://") {
		t.Errorf("uri = %q, want file:// ending in char-hero.png", item.URI)
	}
	if item.IsPlaceholder {
		t.Error("is_placeholder = true, want false")
	}
	if item.License.SPDXID != "CC0" {
		t.Errorf("license.spdx_id = %q, want CC0", item.License.SPDXID)
	}
	if item.Metadata.LicenseType != "proprietary_cleared" {
		t.Errorf("metadata.license_type = %q, want proprietary_cleared", item.Metadata.LicenseType)
	}
	if item.Source != (media.AssetSource{Type: media.SourceLocal, Root: media.RootLibrary}) {
		t.Errorf("source = %+v", item.Source)
	}
	if item.Metadata.ProviderOrModel != media.ProviderLocalLibrary {
		t.Errorf("provider_or_model = %q", item.Metadata.ProviderOrModel)
	}
	if len(result.Warnings) != 0 {
		t.Errorf("warnings = %+v, want none", result.Warnings)
	}
}

func TestScenarioEmptyRoots(t *testing.T) {
	fixture := testutil.NewRoots(t)

	result, err := ResolveManifest(heroManifest(), Roots(fixture), Options{})
	if err != nil {
		t.Fatalf("ResolveManifest: %v", err)
	}
	item := result.Manifest.Items[0]
	if item.URI != "placeholder://character/char-hero" {
		t.Errorf("uri = %q, want placeholder://character/char-hero", item.URI)
	}
	if !item.IsPlaceholder {
		t.Error("is_placeholder = false, want true")
	}
	if item.License.SPDXID != media.NoAssertion {
		t.Errorf("license.spdx_id = %q, want %s", item.License.SPDXID, media.NoAssertion)
	}
	if item.Metadata.LicenseType != "placeholder" || item.Metadata.ProviderOrModel != media.ProviderPlaceholder {
		t.Errorf("metadata = %+v", item.Metadata)
	}
	if len(result.Warnings) != 1 || result.Warnings[0].Code != WarningNotFound {
		t.Errorf("warnings = %+v, want one %s", result.Warnings, WarningNotFound)
	}
}

func TestExtensionPreference(t *testing.T) {
	fixture := testutil.NewRoots(t)
	testutil.WriteLibraryAsset(t, fixture.Library, media.Character, "hero.jpg")
	testutil.WriteLibraryAsset(t, fixture.Library, media.Character, "hero.png")
	testutil.WriteLicense(t, fixture.Library, "hero", testutil.CC0())

	resolution := Resolve(media.AssetReference{AssetID: "hero", AssetType: media.Character}, Roots(fixture), Epoch)
	if !strings.HasSuffix(resolution.Asset.URI, ".png") {
		t.Errorf("uri = %q, want .png", resolution.Asset.URI)
	}
}

func TestFallbackPrecedence(t *testing.T) {
	fixture := testutil.NewRoots(t)
	libraryPath := testutil.WriteLibraryAsset(t, fixture.Library, media.Background, "forest.jpg")
	testutil.WriteLicense(t, fixture.Library, "forest", testutil.CC0())
	// The fallback copy has a better extension; the library still wins.
	testutil.WriteFallbackAsset(t, fixture.Fallback, media.Background, "forest.png")

	resolution := Resolve(media.AssetReference{AssetID: "forest", AssetType: media.Background}, Roots(fixture), Epoch)
	if resolution.Asset.URI != library.FileURI(libraryPath) {
		t.Errorf("uri = %q, want library file %q", resolution.Asset.URI, library.FileURI(libraryPath))
	}
	if resolution.Asset.Source.Root != media.RootLibrary {
		t.Errorf("source.root = %q, want library", resolution.Asset.Source.Root)
	}
}

func TestFallbackHitLicensing(t *testing.T) {
	tests := []struct {
		name            string
		declared        string
		wantSPDX        string
		wantLicenseType string
		wantWarning     WarningCode
	}{
		{"valid declared", "generated_local", "generated_local", "generated_local", ""},
		{"invalid declared", "MIT", media.NoAssertion, "MIT", WarningUnknownLicenseType},
		{"absent declared", "", media.NoAssertion, media.LicenseTypeUnknown, WarningLicenseTypeMissing},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			fixture := testutil.NewRoots(t)
			testutil.WriteFallbackAsset(t, fixture.Fallback, media.SFX, "door.ogg")

			reference := media.AssetReference{AssetID: "Door", AssetType: media.SFX, DeclaredLicenseType: test.declared}
			resolution := Resolve(reference, Roots(fixture), Epoch)
			asset := resolution.Asset

			if asset.IsPlaceholder {
				t.Fatal("fallback hit resolved as placeholder")
			}
			if asset.AssetID != "Door" {
				t.Errorf("asset_id = %q, want manifest spelling %q", asset.AssetID, "Door")
			}
			if asset.Source.Root != media.RootFallback {
				t.Errorf("source.root = %q, want fallback", asset.Source.Root)
			}
			if asset.License.SPDXID != test.wantSPDX {
				t.Errorf("license.spdx_id = %q, want %q", asset.License.SPDXID, test.wantSPDX)
			}
			if asset.Metadata.LicenseType != test.wantLicenseType {
				t.Errorf("metadata.license_type = %q, want %q", asset.Metadata.LicenseType, test.wantLicenseType)
			}
			if test.wantWarning == "" {
				if len(resolution.Warnings) != 0 {
					t.Errorf("warnings = %+v, want none", resolution.Warnings)
				}
				return
			}
			if len(resolution.Warnings) != 1 || resolution.Warnings[0].Code != test.wantWarning {
				t.Errorf("warnings = %+v, want one %s", resolution.Warnings, test.wantWarning)
			}
		})
	}
}

func TestLibraryHitLicenseDegrades(t *testing.T) {
	t.Run("missing record", func(t *testing.T) {
		fixture := testutil.NewRoots(t)
		testutil.WriteLibraryAsset(t, fixture.Library, media.Music, "theme.wav")

		resolution := Resolve(media.AssetReference{AssetID: "theme", AssetType: media.Music}, Roots(fixture), Epoch)
		if resolution.Asset.IsPlaceholder {
			t.Fatal("library hit without license became a placeholder")
		}
		if resolution.Asset.License != media.PlaceholderLicense() {
			t.Errorf("license = %+v, want NOASSERTION", resolution.Asset.License)
		}
		if resolution.Asset.Metadata.LicenseType != "CC0" {
			t.Errorf("metadata.license_type = %q, want CC0 default", resolution.Asset.Metadata.LicenseType)
		}
		if len(resolution.Warnings) != 1 || resolution.Warnings[0].Code != WarningLicenseFileMissing {
			t.Errorf("warnings = %+v, want %s", resolution.Warnings, WarningLicenseFileMissing)
		}
	})

	t.Run("malformed record", func(t *testing.T) {
		fixture := testutil.NewRoots(t)
		testutil.WriteLibraryAsset(t, fixture.Library, media.Music, "theme.wav")
		testutil.WriteFile(t, library.LicensePath("theme", fixture.Library), []byte("{"))

		resolution := Resolve(media.AssetReference{AssetID: "theme", AssetType: media.Music}, Roots(fixture), Epoch)
		if len(resolution.Warnings) != 1 || resolution.Warnings[0].Code != WarningLicenseFileMalformed {
			t.Errorf("warnings = %+v, want %s", resolution.Warnings, WarningLicenseFileMalformed)
		}
		if resolution.Asset.License.SPDXID != media.NoAssertion {
			t.Errorf("license.spdx_id = %q", resolution.Asset.License.SPDXID)
		}
	})

	t.Run("unknown declared type", func(t *testing.T) {
		fixture := testutil.NewRoots(t)
		testutil.WriteLibraryAsset(t, fixture.Library, media.Music, "theme.wav")
		testutil.WriteLicense(t, fixture.Library, "theme", testutil.CC0())

		reference := media.AssetReference{AssetID: "theme", AssetType: media.Music, DeclaredLicenseType: "royalty_free"}
		resolution := Resolve(reference, Roots(fixture), Epoch)
		if resolution.Asset.License.SPDXID != "CC0" {
			t.Errorf("license.spdx_id = %q, want record's CC0", resolution.Asset.License.SPDXID)
		}
		if resolution.Asset.Metadata.LicenseType != "royalty_free" {
			t.Errorf("metadata.license_type = %q", resolution.Asset.Metadata.LicenseType)
		}
		if len(resolution.Warnings) != 1 || resolution.Warnings[0].Code != WarningUnknownLicenseType {
			t.Errorf("warnings = %+v, want %s", resolution.Warnings, WarningUnknownLicenseType)
		}
	})
}

func TestAttribution(t *testing.T) {
	fixture := testutil.NewRoots(t)
	testutil.WriteLibraryAsset(t, fixture.Library, media.Prop, "lamp.png")
	testutil.WriteLicense(t, fixture.Library, "lamp", media.AssetLicense{
		SPDXID: "CC-BY-4.0", AttributionRequired: true, Text: "Lamp by R. Ito",
	})

	resolution := Resolve(media.AssetReference{AssetID: "lamp", AssetType: media.Prop}, Roots(fixture), Epoch)
	if resolution.Asset.Metadata.Attribution != "Lamp by R. Ito" {
		t.Errorf("attribution = %q", resolution.Asset.Metadata.Attribution)
	}
}

func TestPlaceholderUsesNormalizedID(t *testing.T) {
	fixture := testutil.NewRoots(t)
	resolution := Resolve(media.AssetReference{AssetID: "Old_Castle", AssetType: media.Background}, Roots(fixture), Epoch)
	if resolution.Asset.URI != "placeholder://background/old-castle" {
		t.Errorf("uri = %q", resolution.Asset.URI)
	}
	if resolution.Asset.AssetID != "old-castle" {
		t.Errorf("asset_id = %q, want normalized", resolution.Asset.AssetID)
	}
}

func TestMakePlaceholderPure(t *testing.T) {
	first := MakePlaceholder("x", media.VO, Epoch)
	second := MakePlaceholder("x", media.VO, Epoch)
	if first != second {
		t.Errorf("MakePlaceholder not pure: %+v vs %+v", first, second)
	}
	if err := first.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestStrictMode(t *testing.T) {
	fixture := testutil.NewRoots(t)
	testutil.WriteLibraryAsset(t, fixture.Library, media.Character, "char-hero.png")
	testutil.WriteLicense(t, fixture.Library, "char-hero", testutil.CC0())
	manifest := heroManifest()
	manifest.References = append(manifest.References,
		media.AssetReference{AssetID: "ghost", AssetType: media.VO},
		media.AssetReference{AssetID: "phantom", AssetType: media.Music},
	)

	result, err := ResolveManifest(manifest, Roots(fixture), Options{Strict: true})
	if !errors.Is(err, ErrPlaceholderInStrictMode) {
		t.Fatalf("ResolveManifest(strict) = %v, want ErrPlaceholderInStrictMode", err)
	}
	var strictErr *StrictError
	if !errors.As(err, &strictErr) {
		t.Fatalf("error is %T, want *StrictError", err)
	}
	if got := strings.Join(strictErr.Placeholders, ","); got != "vo/ghost,music/phantom" {
		t.Errorf("Placeholders = %s", got)
	}
	// All items are still computed for diagnostics.
	if result == nil || len(result.Manifest.Items) != 3 {
		t.Fatalf("strict result = %+v, want 3 items", result)
	}

	result, err = ResolveManifest(manifest, Roots(fixture), Options{})
	if err != nil {
		t.Fatalf("ResolveManifest(non-strict): %v", err)
	}
	if !result.Manifest.Items[1].IsPlaceholder || !result.Manifest.Items[2].IsPlaceholder {
		t.Error("non-strict run did not mark missing items as placeholders")
	}
	if len(result.Placeholders()) != 2 {
		t.Errorf("Placeholders() = %d, want 2", len(result.Placeholders()))
	}
}

func TestStrictModeAllResolved(t *testing.T) {
	fixture := testutil.NewRoots(t)
	testutil.WriteLibraryAsset(t, fixture.Library, media.Character, "char-hero.png")

	// A missing license record warns but does not trip strict mode.
	result, err := ResolveManifest(heroManifest(), Roots(fixture), Options{Strict: true})
	if err != nil {
		t.Fatalf("ResolveManifest(strict): %v", err)
	}
	if len(result.Warnings) != 1 {
		t.Errorf("warnings = %+v, want license_file_missing", result.Warnings)
	}
}

func TestOrderAndCountPreserved(t *testing.T) {
	fixture := testutil.NewRoots(t)
	testutil.WriteFallbackAsset(t, fixture.Fallback, media.Music, "b.mp3")
	manifest := &media.AssetManifest{
		ManifestID: "m",
		References: []media.AssetReference{
			{AssetID: "c", AssetType: media.Character},
			{AssetID: "b", AssetType: media.Music, DeclaredLicenseType: "CC0"},
			{AssetID: "a", AssetType: media.Background},
			{AssetID: "c", AssetType: media.Character},
		},
	}

	result, err := ResolveManifest(manifest, Roots(fixture), Options{})
	if err != nil {
		t.Fatalf("ResolveManifest: %v", err)
	}
	var ids []string
	for _, item := range result.Manifest.Items {
		ids = append(ids, item.AssetID)
	}
	if got := strings.Join(ids, ","); got != "c,b,a,c" {
		t.Errorf("item order = %s, want c,b,a,c", got)
	}
}

func TestDeterministicEncoding(t *testing.T) {
	fixture := testutil.NewRoots(t)
	testutil.WriteLibraryAsset(t, fixture.Library, media.Character, "char-hero.png")
	testutil.WriteLibraryAsset(t, fixture.Library, media.Character, "char-hero.jpg")
	testutil.WriteLicense(t, fixture.Library, "char-hero", testutil.CC0())
	testutil.WriteFallbackAsset(t, fixture.Fallback, media.VO, "line-1.wav")
	manifest := heroManifest()
	manifest.References = append(manifest.References,
		media.AssetReference{AssetID: "line_1", AssetType: media.VO, DeclaredLicenseType: "generated_local"},
		media.AssetReference{AssetID: "missing", AssetType: media.SFX},
	)

	var encoded [][]byte
	for range 2 {
		result, err := ResolveManifest(manifest, Roots(fixture), Options{})
		if err != nil {
			t.Fatalf("ResolveManifest: %v", err)
		}
		data, err := media.Encode(result.Manifest)
		if err != nil {
			t.Fatalf("Encode: %v", err)
		}
		encoded = append(encoded, data)
	}
	if !bytes.Equal(encoded[0], encoded[1]) {
		t.Errorf("two runs differ:\n%s\n---\n%s", encoded[0], encoded[1])
	}
}

func TestTimestampPolicy(t *testing.T) {
	fixture := testutil.NewRoots(t)
	manifest := heroManifest()
	manifest.GeneratedAt = "2026-03-01T12:00:00Z"

	fixed, err := FixedPolicy("2025-01-02T03:04:05Z")
	if err != nil {
		t.Fatalf("FixedPolicy: %v", err)
	}

	tests := []struct {
		name   string
		policy TimestampPolicy
		want   string
	}{
		{"zero value", TimestampPolicy{}, Epoch},
		{"epoch", EpochPolicy(), Epoch},
		{"manifest", ManifestPolicy(), "2026-03-01T12:00:00Z"},
		{"fixed", fixed, "2025-01-02T03:04:05Z"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result, err := ResolveManifest(manifest, Roots(fixture), Options{Timestamp: test.policy})
			if err != nil {
				t.Fatalf("ResolveManifest: %v", err)
			}
			if result.Manifest.GeneratedAt != test.want {
				t.Errorf("generated_at = %q, want %q", result.Manifest.GeneratedAt, test.want)
			}
			if got := result.Manifest.Items[0].Metadata.RetrievalDate; got != test.want {
				t.Errorf("retrieval_date = %q, want %q", got, test.want)
			}
		})
	}

	manifest.GeneratedAt = ""
	result, err := ResolveManifest(manifest, Roots(fixture), Options{Timestamp: ManifestPolicy()})
	if err != nil {
		t.Fatalf("ResolveManifest: %v", err)
	}
	if result.Manifest.GeneratedAt != Epoch {
		t.Errorf("manifest policy without generated_at = %q, want epoch", result.Manifest.GeneratedAt)
	}
}

func TestParseTimestampPolicy(t *testing.T) {
	for _, value := range []string{"", "epoch", "manifest", "2024-06-01T00:00:00+02:00"} {
		policy, err := ParseTimestampPolicy(value)
		if err != nil {
			t.Errorf("ParseTimestampPolicy(%q): %v", value, err)
			continue
		}
		want := value
		if value == "" {
			want = PolicyEpoch
		}
		if policy.String() != want {
			t.Errorf("ParseTimestampPolicy(%q).String() = %q", value, policy.String())
		}
	}
	for _, value := range []string{"now", "2024-06-01", "yesterday"} {
		if _, err := ParseTimestampPolicy(value); err == nil {
			t.Errorf("ParseTimestampPolicy(%q) succeeded, want error", value)
		}
	}
}

func TestEnvelope(t *testing.T) {
	result, err := ResolveManifest(&media.AssetManifest{ManifestID: "ep01", ProjectID: "pilot"}, Roots(testutil.NewRoots(t)), Options{})
	if err != nil {
		t.Fatalf("ResolveManifest: %v", err)
	}
	document := result.Manifest
	if document.SchemaID != "AssetManifest.media" || document.SchemaVersion != "1.0.0" {
		t.Errorf("schema = %s@%s", document.SchemaID, document.SchemaVersion)
	}
	if document.ManifestID != "ep01" || document.ProjectID != "pilot" {
		t.Errorf("ids = %s/%s", document.ManifestID, document.ProjectID)
	}
	if document.Items == nil || len(document.Items) != 0 {
		t.Errorf("items = %#v, want empty non-nil", document.Items)
	}
}

func TestResolveManifestInvalidInput(t *testing.T) {
	roots := Roots(testutil.NewRoots(t))
	if _, err := ResolveManifest(nil, roots, Options{}); err == nil {
		t.Error("nil manifest accepted")
	}
	if _, err := ResolveManifest(&media.AssetManifest{}, roots, Options{}); err == nil {
		t.Error("manifest without id accepted")
	}
	bad := &media.AssetManifest{ManifestID: "m", References: []media.AssetReference{{AssetID: "x", AssetType: "texture"}}}
	if _, err := ResolveManifest(bad, roots, Options{}); err == nil {
		t.Error("unknown asset type accepted")
	}
}

func TestCustomTiersAndLookupFailure(t *testing.T) {
	fixture := testutil.NewRoots(t)
	found := testutil.WriteFallbackAsset(t, fixture.Fallback, media.Prop, "sword.png")

	failing := library.Tier{
		Name: media.RootLibrary,
		Root: "/unreadable",
		Lookup: func(string, media.AssetType, string) (string, error) {
			return "", errors.New("permission denied")
		},
	}
	tiers := []library.Tier{failing, {Name: media.RootFallback, Root: fixture.Fallback, Lookup: library.FindInFallback}}
	manifest := &media.AssetManifest{
		ManifestID: "m",
		References: []media.AssetReference{{AssetID: "sword", AssetType: media.Prop, DeclaredLicenseType: "CC0"}},
	}

	result, err := ResolveManifest(manifest, Roots(fixture), Options{Tiers: tiers})
	if err != nil {
		t.Fatalf("ResolveManifest: %v", err)
	}
	if result.Manifest.Items[0].URI != library.FileURI(found) {
		t.Errorf("uri = %q, want fallback file", result.Manifest.Items[0].URI)
	}
	if len(result.Warnings) != 1 || result.Warnings[0].Code != WarningLookupFailed {
		t.Errorf("warnings = %+v, want one lookup_failed", result.Warnings)
	}
}

func TestRelativeRootsProduceAbsoluteURIs(t *testing.T) {
	fixture := testutil.NewRoots(t)
	testutil.WriteFallbackAsset(t, fixture.Fallback, media.VO, "line.wav")
	t.Chdir(filepath.Dir(fixture.Fallback))

	roots := Roots{Library: "library", Fallback: "fallback"}
	resolution := Resolve(media.AssetReference{AssetID: "line", AssetType: media.VO, DeclaredLicenseType: "CC0"}, roots, Epoch)
	want := library.FileURI(filepath.Join(fixture.Fallback, "vo", "line.wav"))
	if resolution.Asset.URI != want {
		t.Errorf("uri = %q, want %q", resolution.Asset.URI, want)
	}
}

func TestWarningsLogged(t *testing.T) {
	var buffer bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buffer, &slog.HandlerOptions{Level: slog.LevelWarn}))

	_, err := ResolveManifest(heroManifest(), Roots(testutil.NewRoots(t)), Options{Logger: logger})
	if err != nil {
		t.Fatalf("ResolveManifest: %v", err)
	}
	output := buffer.String()
	if !strings.Contains(output, `"msg":"local_asset_not_found"`) || !strings.Contains(output, `"asset_id":"char-hero"`) {
		t.Errorf("log output = %s", output)
	}
}
