// Copyright 2026 The Framewright Authors
// SPDX-License-Identifier: Apache-2.0

package resolve

import (
	"fmt"
	"time"

	"github.com/framewright/media/lib/schema/media"
)

// Epoch is the default sentinel timestamp written to generated_at and
// to every item's retrieval_date.
const Epoch = "1970-01-01T00:00:00Z"

// Timestamp policy names accepted by [ParseTimestampPolicy].
const (
	PolicyEpoch    = "epoch"
	PolicyManifest = "manifest"
)

type policyKind int

const (
	kindEpoch policyKind = iota
	kindManifest
	kindFixed
)

// TimestampPolicy decides the sentinel timestamp of a run. The engine
// never reads a clock: the sentinel is either the epoch constant, the
// input manifest's own generated_at, or a fixed value from
// configuration. The zero value is the epoch policy.
type TimestampPolicy struct {
	kind  policyKind
	fixed string
}

// EpochPolicy returns the default policy.
func EpochPolicy() TimestampPolicy {
	return TimestampPolicy{kind: kindEpoch}
}

// ManifestPolicy echoes the input manifest's generated_at, falling
// back to [Epoch] when the manifest has none.
func ManifestPolicy() TimestampPolicy {
	return TimestampPolicy{kind: kindManifest}
}

// FixedPolicy always yields value, which must be RFC 3339.
func FixedPolicy(value string) (TimestampPolicy, error) {
	if _, err := time.Parse(time.RFC3339, value); err != nil {
		return TimestampPolicy{}, fmt.Errorf("timestamp %q is not RFC 3339: %w", value, err)
	}
	return TimestampPolicy{kind: kindFixed, fixed: value}, nil
}

// ParseTimestampPolicy accepts "epoch" (or ""), "manifest", or an RFC
// 3339 timestamp.
func ParseTimestampPolicy(value string) (TimestampPolicy, error) {
	switch value {
	case "", PolicyEpoch:
		return EpochPolicy(), nil
	case PolicyManifest:
		return ManifestPolicy(), nil
	default:
		policy, err := FixedPolicy(value)
		if err != nil {
			return TimestampPolicy{}, fmt.Errorf("timestamp policy must be %q, %q or an RFC 3339 timestamp: %w",
				PolicyEpoch, PolicyManifest, err)
		}
		return policy, nil
	}
}

// Sentinel returns the timestamp for a run over manifest.
func (p TimestampPolicy) Sentinel(manifest *media.AssetManifest) string {
	switch p.kind {
	case kindManifest:
		if manifest != nil && manifest.GeneratedAt != "" {
			return manifest.GeneratedAt
		}
		return Epoch
	case kindFixed:
		return p.fixed
	default:
		return Epoch
	}
}

// String returns the policy in the form ParseTimestampPolicy accepts.
func (p TimestampPolicy) String() string {
	switch p.kind {
	case kindManifest:
		return PolicyManifest
	case kindFixed:
		return p.fixed
	default:
		return PolicyEpoch
	}
}
