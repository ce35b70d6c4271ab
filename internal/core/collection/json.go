// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwellhq.com

package collection

import (
	"encoding/json"
	"time"

	"github.com/inkwellhq/inkwell/pkg/slice"
)

// PostRef is the minimal serialized form of a member post. Whatever extra
// attributes were passed into AddPost, only the identifier survives
// serialization.
type PostRef struct {
	ID string `json:"id"`
}

// collectionJSON is the stable wire/storage shape of a collection: a flat
// ten-key record with underscored field names and posts as ordered
// identifier refs. Optional text fields serialize as null when unset.
type collectionJSON struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Slug         string    `json:"slug"`
	Description  *string   `json:"description"`
	Type         Type      `json:"type"`
	Filter       *string   `json:"filter"`
	FeatureImage *string   `json:"feature_image"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Posts        []PostRef `json:"posts"`
}

// MarshalJSON implements [json.Marshaler].
func (c *Collection) MarshalJSON() ([]byte, error) {
	return json.Marshal(collectionJSON{
		ID:           c.id,
		Title:        c.title,
		Slug:         c.slug,
		Description:  nullable(c.description),
		Type:         c.collectionType,
		Filter:       nullable(c.filter),
		FeatureImage: nullable(c.featureImage),
		CreatedAt:    c.createdAt,
		UpdatedAt:    c.updatedAt,
		Posts: slice.Map(c.posts, func(id string) PostRef {
			return PostRef{ID: id}
		}),
	})
}

// nullable maps the empty string onto a JSON null.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
