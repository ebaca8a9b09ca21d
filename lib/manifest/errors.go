// Copyright 2026 The Framewright Authors
// SPDX-License-Identifier: Apache-2.0

package manifest

import "errors"

// ErrNotFound is wrapped by the error [ReadFile] returns when the
// manifest file does not exist. The CLI reports it as a usage error.
var ErrNotFound = errors.New("manifest not found")

// InputError reports a manifest that could not be read or is not a
// valid AssetManifest. It is a hard failure: nothing is resolved.
type InputError struct {
	Path string
	Err  error
}

func (e *InputError) Error() string {
	return "input manifest " + e.Path + ": " + e.Err.Error()
}

func (e *InputError) Unwrap() error {
	return e.Err
}
