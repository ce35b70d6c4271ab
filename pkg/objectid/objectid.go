// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwellhq.com

/*
Package objectid wraps the Mongo-style ObjectID as the identifier type for
content entities (collections, posts).

ObjectIDs are 24 hexadecimal characters encoding a creation timestamp plus
random entropy. They were chosen over UUIDs for content rows because they are
half the storage width, naturally time-sortable, and remain compatible with
exports from systems that already use the format.
*/
package objectid

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// New generates a fresh ObjectID in canonical 24-hex string form.
func New() string {
	return primitive.NewObjectID().Hex()
}

// IsValid reports whether s is a well-formed 24-hex ObjectID string.
func IsValid(s string) bool {
	_, err := primitive.ObjectIDFromHex(strings.ToLower(s))
	return err == nil
}

// Normalize lowercases a well-formed ObjectID string.
//
// The second return value is false when s is not a valid ObjectID.
func Normalize(s string) (string, bool) {
	id, err := primitive.ObjectIDFromHex(strings.ToLower(s))
	if err != nil {
		return "", false
	}
	return id.Hex(), true
}
