// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwellhq.com

// Package uuidv7 wraps google/uuid to generate time-ordered UUIDv7 values.
//
// # Why UUIDv7?
//
// It is the identifier type for operational rows (staff accounts, sessions)
// and request correlation. Because it is time-sortable, it keeps B-tree
// indexes in PostgreSQL append-friendly, avoiding the fragmentation common
// with random UUIDv4. Content entities use ObjectIDs instead; see
// pkg/objectid.
package uuidv7

import "github.com/google/uuid"

// New generates a new UUIDv7 string.
//
// # Safety
//
// It panics only if the OS random source is unavailable (extremely rare).
// OS entropy failure is an unrecoverable system-level error.
func New() string {
	id, err := uuid.NewV7()
	if err != nil {
		panic("uuidv7: failed to generate UUID: " + err.Error())
	}

	return id.String()
}

// Must generates a new UUIDv7 or panics.
//
// Alias for [New] kept for readability at initialization call sites.
func Must() string {
	return New()
}
