// Copyright 2026 The Framewright Authors
// SPDX-License-Identifier: Apache-2.0

package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Entry is one object of an asset-bearing section. It keeps the
// object's members in document order, which [assetid.Derive] depends
// on; a plain map would lose it.
type Entry struct {
	fields []field
}

type field struct {
	key string

	// text is the member's value when it is a JSON string.
	text     string
	isString bool
}

// UnmarshalJSON walks the object's tokens, recording each member in
// order. Non-string values are kept as keys only.
func (e *Entry) UnmarshalJSON(data []byte) error {
	decoder := json.NewDecoder(bytes.NewReader(data))
	token, err := decoder.Token()
	if err != nil {
		return err
	}
	if delim, ok := token.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("entry must be an object, got %s", describe(data))
	}

	e.fields = e.fields[:0]
	for decoder.More() {
		keyToken, err := decoder.Token()
		if err != nil {
			return err
		}
		key, ok := keyToken.(string)
		if !ok {
			return errors.New("entry key is not a string")
		}

		var value json.RawMessage
		if err := decoder.Decode(&value); err != nil {
			return fmt.Errorf("entry member %q: %w", key, err)
		}

		member := field{key: key}
		if len(value) > 0 && value[0] == '"' {
			if err := json.Unmarshal(value, &member.text); err != nil {
				return fmt.Errorf("entry member %q: %w", key, err)
			}
			member.isString = true
		}
		e.fields = append(e.fields, member)
	}

	if _, err := decoder.Token(); err != nil {
		return err
	}
	return nil
}

// String returns the string value of key, or "" when the key is
// absent or not a string. With duplicate keys the last one wins, as
// encoding/json does for maps.
func (e Entry) String(key string) string {
	value := ""
	for _, member := range e.fields {
		if member.key == key {
			if member.isString {
				value = member.text
			} else {
				value = ""
			}
		}
	}
	return value
}

// Strings returns every string value in document order.
func (e Entry) Strings() []string {
	var values []string
	for _, member := range e.fields {
		if member.isString {
			values = append(values, member.text)
		}
	}
	return values
}

func describe(data []byte) string {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return "empty value"
	}
	switch trimmed[0] {
	case '[':
		return "array"
	case '"':
		return "string"
	case 'n':
		return "null"
	case 't', 'f':
		return "boolean"
	default:
		return "number"
	}
}
