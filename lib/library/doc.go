// Copyright 2026 The Framewright Authors
// SPDX-License-Identifier: Apache-2.0

// Package library looks up asset files and license records under the
// two configured roots.
//
// The library root is the curated store:
//
//	<library>/images/<id>.<ext>        character, background, prop
//	<library>/audio/<id>.<ext>         vo, sfx, music
//	<library>/licenses/<id>.license.json
//
// The fallback root is split by asset type (characters/, backgrounds/,
// props/, vo/, sfx/, music/) and carries no license records; rights
// for fallback hits come from the manifest's declared license type.
//
// A file matches an id when its name minus the final extension
// normalizes to that id. When several files match, the one with the
// most preferred extension wins (images: png > jpg > webp > gif;
// audio: wav > mp3 > ogg), unlisted extensions rank last, and equal
// ranks are broken by file name. Candidate lists are always sorted, so
// the choice never depends on directory enumeration order.
//
// Nothing in this package writes to either root.
package library
