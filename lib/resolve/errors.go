// Copyright 2026 The Framewright Authors
// SPDX-License-Identifier: Apache-2.0

package resolve

import (
	"errors"
	"fmt"
	"strings"
)

// ErrPlaceholderInStrictMode is wrapped by [*StrictError].
var ErrPlaceholderInStrictMode = errors.New("placeholder in strict mode")

// StrictError reports that strict resolution produced placeholders.
// It is raised only after every item has been resolved, and the
// caller still receives the complete result alongside it.
type StrictError struct {
	// Placeholders lists "<asset_type>/<asset_id>" for each
	// placeholder, in manifest order.
	Placeholders []string
}

func (e *StrictError) Error() string {
	noun := "placeholders"
	if len(e.Placeholders) == 1 {
		noun = "placeholder"
	}
	return fmt.Sprintf("strict mode: %d %s: %s", len(e.Placeholders), noun, strings.Join(e.Placeholders, ", "))
}

func (e *StrictError) Unwrap() error {
	return ErrPlaceholderInStrictMode
}
