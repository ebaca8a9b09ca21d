// Copyright 2026 The Framewright Authors
// SPDX-License-Identifier: Apache-2.0

package digest

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/zeebo/blake3"

	"github.com/framewright/media/lib/codec"
	"github.com/framewright/media/lib/schema/media"
)

// Digest is a 32-byte BLAKE3 keyed hash.
type Digest [32]byte

// domainKey is a 32-byte BLAKE3 key. Each domain hashes with its own
// key, so identical bytes in different roles never share a digest.
type domainKey [32]byte

// Domain keys are the ASCII domain name, zero-padded to 32 bytes.
// Changing one invalidates every digest in that domain.
var (
	itemDomainKey     = newDomainKey("framewright.media.item")
	manifestDomainKey = newDomainKey("framewright.media.manifest")
	fileDomainKey     = newDomainKey("framewright.media.file")
)

func newDomainKey(name string) domainKey {
	if len(name) > len(domainKey{}) {
		panic("digest: domain name longer than 32 bytes: " + name)
	}
	var key domainKey
	copy(key[:], name)
	return key
}

// Item returns the item-domain digest of a resolved item's Core
// Deterministic CBOR encoding. Equal items always have equal digests,
// independent of JSON formatting.
func Item(item media.ResolvedAsset) (Digest, error) {
	data, err := codec.Marshal(item)
	if err != nil {
		return Digest{}, fmt.Errorf("encoding item %q: %w", item.AssetID, err)
	}
	return keyedHash(itemDomainKey, data), nil
}

// Manifest returns the manifest-domain digest of an encoded output
// document, as produced by media.Encode.
func Manifest(encoded []byte) Digest {
	return keyedHash(manifestDomainKey, encoded)
}

// File streams the file at path through the file-domain hash. Memory
// use is constant regardless of file size.
func File(path string) (Digest, error) {
	file, err := os.Open(path)
	if err != nil {
		return Digest{}, fmt.Errorf("opening %s for hashing: %w", path, err)
	}
	defer file.Close()

	hasher := newHasher(fileDomainKey)
	if _, err := io.Copy(hasher, file); err != nil {
		return Digest{}, fmt.Errorf("hashing %s: %w", path, err)
	}
	var result Digest
	copy(result[:], hasher.Sum(nil))
	return result, nil
}

// String returns the hex encoding. This is the form printed by the CLI
// and written to reports.
func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// Short returns the first 12 hex characters, for tables and log lines.
func (d Digest) Short() string {
	return hex.EncodeToString(d[:6])
}

func newHasher(key domainKey) *blake3.Hasher {
	// NewKeyed only fails for a key that is not 32 bytes, which the
	// domainKey type rules out.
	hasher, err := blake3.NewKeyed(key[:])
	if err != nil {
		panic("digest: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	return hasher
}

func keyedHash(key domainKey, data []byte) Digest {
	hasher := newHasher(key)
	hasher.Write(data)
	var result Digest
	copy(result[:], hasher.Sum(nil))
	return result
}
