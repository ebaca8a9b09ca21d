// Copyright 2026 The Framewright Authors
// SPDX-License-Identifier: Apache-2.0

// Package manifest reads input AssetManifest documents and extracts
// the asset references the resolver works on.
//
// Manifests are authored as JSON, optionally with // comments and
// trailing commas (JSONC). Asset-bearing sections are processed in a
// fixed order and entries within a section keep their document order,
// so the reference list is a pure function of the document bytes.
//
// The typical flow:
//
//  1. ReadFile or Parse: JSONC bytes → media.AssetManifest
//  2. resolve.ResolveManifest: references → output document
package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/tidwall/jsonc"

	"github.com/framewright/media/lib/assetid"
	"github.com/framewright/media/lib/schema/media"
)

// Section describes one asset-bearing array of the input manifest.
type Section struct {
	// Name is the JSON key of the array.
	Name string

	// AssetType is assigned to every reference taken from the array.
	AssetType media.AssetType

	// IDFields are consulted in order; the first string value that
	// is not blank is the asset id. Entries with none of them get an
	// id from [assetid.Derive].
	IDFields []string
}

// Sections lists the asset-bearing sections in processing order.
var Sections = []Section{
	{Name: "character_packs", AssetType: media.Character, IDFields: []string{"pack_id", "asset_id", "character_id"}},
	{Name: "backgrounds", AssetType: media.Background, IDFields: []string{"bg_id", "asset_id"}},
	{Name: "props", AssetType: media.Prop, IDFields: []string{"prop_id", "asset_id"}},
	{Name: "vo_items", AssetType: media.VO, IDFields: []string{"item_id", "asset_id"}},
	{Name: "sfx_items", AssetType: media.SFX, IDFields: []string{"item_id", "sfx_id", "asset_id"}},
	{Name: "music_items", AssetType: media.Music, IDFields: []string{"item_id", "track_id", "asset_id"}},
}

// LicenseTypeField is the entry key holding the declared license type.
const LicenseTypeField = "license_type"

// document mirrors the envelope of an input manifest. Sections are
// held raw and decoded entry by entry to preserve key order.
type document struct {
	SchemaID      string `json:"schema_id"`
	SchemaVersion string `json:"schema_version"`
	ManifestID    string `json:"manifest_id"`
	ProjectID     string `json:"project_id"`
	ShotlistRef   string `json:"shotlist_ref"`
	GeneratedAt   string `json:"generated_at"`
}

// Parse strips JSONC comments and trailing commas from data, then
// decodes the envelope and every asset-bearing section.
func Parse(data []byte) (*media.AssetManifest, error) {
	stripped := jsonc.ToJSON(data)

	var envelope document
	if err := json.Unmarshal(stripped, &envelope); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}
	if envelope.SchemaID != "" && envelope.SchemaID != media.InputSchemaID {
		return nil, fmt.Errorf("schema_id %q, want %q", envelope.SchemaID, media.InputSchemaID)
	}
	if envelope.ManifestID == "" {
		return nil, errors.New("manifest_id is required")
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(stripped, &raw); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}

	result := &media.AssetManifest{
		SchemaID:      envelope.SchemaID,
		SchemaVersion: envelope.SchemaVersion,
		ManifestID:    envelope.ManifestID,
		ProjectID:     envelope.ProjectID,
		ShotlistRef:   envelope.ShotlistRef,
		GeneratedAt:   envelope.GeneratedAt,
	}

	for _, section := range Sections {
		sectionData, ok := raw[section.Name]
		if !ok || string(sectionData) == "null" {
			continue
		}
		var entries []Entry
		if err := json.Unmarshal(sectionData, &entries); err != nil {
			return nil, fmt.Errorf("section %s: %w", section.Name, err)
		}
		for _, entry := range entries {
			result.References = append(result.References, section.Reference(entry))
		}
	}

	return result, nil
}

// Reference builds the asset reference for one entry of the section.
func (s Section) Reference(entry Entry) media.AssetReference {
	assetID := ""
	for _, field := range s.IDFields {
		if value := entry.String(field); assetid.Normalize(value) != "" {
			assetID = value
			break
		}
	}
	if assetID == "" {
		assetID = assetid.Derive(entry.Strings())
	}
	if assetid.Normalize(assetID) == "" {
		assetID = assetid.Unknown
	}
	return media.AssetReference{
		AssetID:             assetID,
		AssetType:           s.AssetType,
		DeclaredLicenseType: entry.String(LicenseTypeField),
	}
}

// ReadFile reads and parses the manifest at path. A missing file
// yields an error matching [ErrNotFound]; every other failure is an
// [*InputError].
func ReadFile(path string) (*media.AssetManifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &InputError{Path: path, Err: ErrNotFound}
		}
		return nil, &InputError{Path: path, Err: err}
	}

	result, err := Parse(data)
	if err != nil {
		return nil, &InputError{Path: path, Err: err}
	}
	return result, nil
}
