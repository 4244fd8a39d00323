// Copyright (c) 2026 Mediatrack. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package uuid provides time-ordered unique identifiers and parsing helpers.

It wraps the google/uuid library to generate Version 7 values, which are
sortable by creation time and friendly to PostgreSQL B-tree indexes.
*/
package uuid

import (
	"fmt"

	"github.com/google/uuid"
)

// # Generators

// New generates a new UUIDv7 string.
func New() string {

	// Create a new version 7 UUID (time-sortable)
	id, err := uuid.NewV7()

	// entropy failure is an unrecoverable system-level error
	if err != nil {
		panic("uuidv7: failed to generate UUID: " + err.Error())
	}

	return id.String()
}

// # Parsing

// Valid reports whether s is a well-formed UUID of any version.
func Valid(s string) bool {
	return uuid.Validate(s) == nil
}

// Normalize parses every id and returns them in canonical lowercase form.
// The first malformed id aborts the conversion.
func Normalize(ids []string) ([]string, error) {
	result := make([]string, 0, len(ids))
	for _, raw := range ids {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("uuid: invalid id %q: %w", raw, err)
		}
		result = append(result, parsed.String())
	}
	return result, nil
}
