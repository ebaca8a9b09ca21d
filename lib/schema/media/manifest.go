// Copyright 2026 The Framewright Authors
// SPDX-License-Identifier: Apache-2.0

package media

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// AssetManifest is the parsed input manifest: its envelope fields plus
// the asset references extracted from every asset-bearing section, in
// section order then entry order.
type AssetManifest struct {
	SchemaID      string
	SchemaVersion string
	ManifestID    string
	ProjectID     string
	ShotlistRef   string

	// GeneratedAt is the input document's own timestamp, if any. It is
	// only consulted by the "manifest" timestamp policy.
	GeneratedAt string

	References []AssetReference
}

// Encode serializes an output document in its canonical form:
// two-space indented JSON with a trailing newline and no HTML
// escaping. Identical documents always encode to identical bytes.
// A nil Items slice is encoded as [].
func Encode(m *MediaManifest) ([]byte, error) {
	if m == nil {
		return nil, fmt.Errorf("encoding media manifest: nil document")
	}
	document := *m
	if document.Items == nil {
		document.Items = []ResolvedAsset{}
	}

	var buffer bytes.Buffer
	encoder := json.NewEncoder(&buffer)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(&document); err != nil {
		return nil, fmt.Errorf("encoding media manifest %q: %w", m.ManifestID, err)
	}
	return buffer.Bytes(), nil
}

// Decode parses an output document previously produced by [Encode].
func Decode(data []byte) (*MediaManifest, error) {
	var document MediaManifest
	if err := json.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("decoding media manifest: %w", err)
	}
	return &document, nil
}
