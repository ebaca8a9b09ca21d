// Copyright 2026 The Framewright Authors
// SPDX-License-Identifier: Apache-2.0

// Package verify proves the resolver's purity on a real run directory.
//
// [Verifier.Verify] reads AssetManifest.json from the run directory,
// resolves it twice in sequence with identical roots and policy, and
// requires the two encoded documents to be byte-identical. Only then
// is strict mode applied and AssetManifest.media.json written. When
// any step fails nothing is written.
package verify

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/framewright/media/lib/digest"
	"github.com/framewright/media/lib/manifest"
	"github.com/framewright/media/lib/resolve"
	"github.com/framewright/media/lib/schema/media"
)

// Verifier runs the determinism check.
type Verifier struct {
	Roots     resolve.Roots
	Timestamp resolve.TimestampPolicy

	// Logger receives progress and warnings. Nil disables logging.
	Logger *slog.Logger

	// run substitutes the engine in tests. Nil means
	// resolve.ResolveManifest.
	run func(*media.AssetManifest, resolve.Roots, resolve.Options) (*resolve.Result, error)
}

// Report summarizes a successful verification.
type Report struct {
	ManifestID   string `json:"manifest_id"`
	Items        int    `json:"items"`
	Placeholders int    `json:"placeholders"`

	// Warnings are the soft failures of the first run.
	Warnings []resolve.Warning `json:"warnings"`

	// Digest is the manifest-domain digest of the written document.
	Digest digest.Digest `json:"-"`

	OutputPath string `json:"output_path"`
}

// Verify runs the check against runDir. Errors:
//
//   - manifest.ErrNotFound / *manifest.InputError: unreadable input
//   - *DeterminismError: the two runs differ
//   - *resolve.StrictError: strict is set and placeholders remain
func (v *Verifier) Verify(runDir string, strict bool) (*Report, error) {
	inputPath := filepath.Join(runDir, media.InputFileName)
	input, err := manifest.ReadFile(inputPath)
	if err != nil {
		return nil, err
	}

	roots, err := v.Roots.Absolute()
	if err != nil {
		return nil, err
	}
	options := resolve.Options{Timestamp: v.Timestamp}

	first, firstBytes, err := v.runOnce(input, roots, options)
	if err != nil {
		return nil, fmt.Errorf("run 1: %w", err)
	}
	second, secondBytes, err := v.runOnce(input, roots, options)
	if err != nil {
		return nil, fmt.Errorf("run 2: %w", err)
	}

	if !bytes.Equal(firstBytes, secondBytes) {
		return nil, Compare(first.Manifest, second.Manifest)
	}
	if v.Logger != nil {
		v.Logger.Debug("runs identical", "manifest_id", input.ManifestID, "bytes", len(firstBytes))
	}

	for _, warning := range first.Warnings {
		warning.Log(v.Logger)
	}

	if strict {
		if placeholders := first.Placeholders(); len(placeholders) > 0 {
			names := make([]string, len(placeholders))
			for i, placeholder := range placeholders {
				names[i] = string(placeholder.AssetType) + "/" + placeholder.AssetID
			}
			return nil, &resolve.StrictError{Placeholders: names}
		}
	}

	outputPath := filepath.Join(runDir, media.OutputFileName)
	if err := writeFileAtomic(outputPath, firstBytes); err != nil {
		return nil, err
	}

	return &Report{
		ManifestID:   input.ManifestID,
		Items:        len(first.Manifest.Items),
		Placeholders: first.Manifest.PlaceholderCount(),
		Warnings:     first.Warnings,
		Digest:       digest.Manifest(firstBytes),
		OutputPath:   outputPath,
	}, nil
}

// runOnce resolves without strict mode, so both runs always produce a
// document to compare, and encodes the result.
func (v *Verifier) runOnce(input *media.AssetManifest, roots resolve.Roots, options resolve.Options) (*resolve.Result, []byte, error) {
	run := v.run
	if run == nil {
		run = resolve.ResolveManifest
	}
	result, err := run(input, roots, options)
	if err != nil {
		return nil, nil, err
	}
	if result == nil || result.Manifest == nil {
		return nil, nil, errors.New("resolver returned no document")
	}
	encoded, err := media.Encode(result.Manifest)
	if err != nil {
		return nil, nil, err
	}
	return result, encoded, nil
}

// writeFileAtomic writes data to a temporary file beside path and
// renames it into place, so readers never see a partial document.
func writeFileAtomic(path string, data []byte) error {
	directory := filepath.Dir(path)
	temporary, err := os.CreateTemp(directory, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("creating temporary file in %s: %w", directory, err)
	}
	temporaryPath := temporary.Name()
	defer os.Remove(temporaryPath)

	if _, err := temporary.Write(data); err != nil {
		temporary.Close()
		return fmt.Errorf("writing %s: %w", temporaryPath, err)
	}
	if err := temporary.Chmod(0o644); err != nil {
		temporary.Close()
		return fmt.Errorf("chmod %s: %w", temporaryPath, err)
	}
	if err := temporary.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", temporaryPath, err)
	}
	if err := os.Rename(temporaryPath, path); err != nil {
		return fmt.Errorf("renaming into %s: %w", path, err)
	}
	return nil
}

// WriteDocument encodes document and writes it to path atomically,
// creating parent directories. The resolve command uses it so that
// both entry points produce identical files.
func WriteDocument(path string, document *media.MediaManifest) (digest.Digest, error) {
	encoded, err := media.Encode(document)
	if err != nil {
		return digest.Digest{}, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return digest.Digest{}, fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
	}
	if err := writeFileAtomic(path, encoded); err != nil {
		return digest.Digest{}, err
	}
	return digest.Manifest(encoded), nil
}
