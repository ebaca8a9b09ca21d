// Copyright 2026 The Framewright Authors
// SPDX-License-Identifier: Apache-2.0

package verify

import (
	"errors"
	"fmt"
	"strings"

	"github.com/framewright/media/lib/codec"
	"github.com/framewright/media/lib/digest"
	"github.com/framewright/media/lib/schema/media"
)

// ErrNondeterministic is wrapped by [*DeterminismError].
var ErrNondeterministic = errors.New("resolver output is not deterministic")

// Divergence describes one item position where the runs disagree.
type Divergence struct {
	Index int

	// First and Second are nil when the item is absent from that run.
	First  *media.ResolvedAsset
	Second *media.ResolvedAsset

	FirstDigest  digest.Digest
	SecondDigest digest.Digest

	// FirstDiagnostic and SecondDiagnostic are the CBOR diagnostic
	// notation of the bytes each digest covers.
	FirstDiagnostic  string
	SecondDiagnostic string
}

// DeterminismError reports two runs over the same inputs that produced
// different documents.
type DeterminismError struct {
	// Envelope lists differing envelope fields, "name: first → second".
	Envelope []string

	Items []Divergence
}

func (e *DeterminismError) Unwrap() error {
	return ErrNondeterministic
}

// Error renders a diff: "-" lines are run 1, "+" lines are run 2.
func (e *DeterminismError) Error() string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "%v: %d envelope field(s) and %d item(s) differ",
		ErrNondeterministic, len(e.Envelope), len(e.Items))
	for _, field := range e.Envelope {
		fmt.Fprintf(&builder, "\n  envelope %s", field)
	}
	for _, divergence := range e.Items {
		fmt.Fprintf(&builder, "\n  items[%d]:", divergence.Index)
		builder.WriteString(describeItem("-", divergence.First, divergence.FirstDigest, divergence.FirstDiagnostic))
		builder.WriteString(describeItem("+", divergence.Second, divergence.SecondDigest, divergence.SecondDiagnostic))
	}
	return builder.String()
}

func describeItem(marker string, item *media.ResolvedAsset, itemDigest digest.Digest, diagnostic string) string {
	if item == nil {
		return fmt.Sprintf("\n  %s (absent)", marker)
	}
	line := fmt.Sprintf("\n  %s %s/%s %s [%s]", marker, item.AssetType, item.AssetID, item.URI, itemDigest.Short())
	if diagnostic != "" {
		line += "\n      " + diagnostic
	}
	return line
}

// Compare builds the [*DeterminismError] for two documents whose
// encodings differ. Items are matched by position and compared by
// item digest, so a difference in any field is caught.
func Compare(first, second *media.MediaManifest) *DeterminismError {
	result := &DeterminismError{}

	envelope := []struct {
		name          string
		first, second string
	}{
		{"schema_id", first.SchemaID, second.SchemaID},
		{"schema_version", first.SchemaVersion, second.SchemaVersion},
		{"manifest_id", first.ManifestID, second.ManifestID},
		{"project_id", first.ProjectID, second.ProjectID},
		{"producer", first.Producer, second.Producer},
		{"generated_at", first.GeneratedAt, second.GeneratedAt},
	}
	for _, field := range envelope {
		if field.first != field.second {
			result.Envelope = append(result.Envelope, fmt.Sprintf("%s: %q → %q", field.name, field.first, field.second))
		}
	}

	count := max(len(first.Items), len(second.Items))
	for index := range count {
		divergence := Divergence{Index: index}
		if index < len(first.Items) {
			divergence.First = &first.Items[index]
			divergence.FirstDigest, divergence.FirstDiagnostic = fingerprint(first.Items[index])
		}
		if index < len(second.Items) {
			divergence.Second = &second.Items[index]
			divergence.SecondDigest, divergence.SecondDiagnostic = fingerprint(second.Items[index])
		}
		if divergence.First != nil && divergence.Second != nil && divergence.FirstDigest == divergence.SecondDigest {
			continue
		}
		result.Items = append(result.Items, divergence)
	}
	return result
}

// fingerprint returns an item's digest and the diagnostic notation of
// its encoding. An item that cannot be encoded gets the zero digest and
// no diagnostic; the divergence is still reported by position.
func fingerprint(item media.ResolvedAsset) (digest.Digest, string) {
	itemDigest, err := digest.Item(item)
	if err != nil {
		return digest.Digest{}, ""
	}
	encoded, err := codec.Marshal(item)
	if err != nil {
		return itemDigest, ""
	}
	diagnostic, err := codec.Diagnose(encoded)
	if err != nil {
		return itemDigest, ""
	}
	return itemDigest, diagnostic
}
