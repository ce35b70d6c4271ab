// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwellhq.com

package collection

import "time"

// Record is the flat row shape a store reads and writes. It mirrors the
// serialized form one-to-one, plus the two persistence-only flags.
type Record struct {
	ID           string
	Title        string
	Slug         string
	Description  string
	Type         Type
	Filter       string
	FeatureImage string
	PostIDs      []string
	Deletable    bool
	Deleted      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// FromRecord rebuilds an entity from a stored row. Rows were validated on the
// way in, so no validation runs here; stores are the only intended caller.
func FromRecord(record Record) *Collection {
	posts := make([]string, len(record.PostIDs))
	copy(posts, record.PostIDs)

	return &Collection{
		id:             record.ID,
		title:          record.Title,
		slug:           record.Slug,
		description:    record.Description,
		collectionType: record.Type,
		filter:         record.Filter,
		featureImage:   record.FeatureImage,
		posts:          posts,
		deletable:      record.Deletable,
		deleted:        record.Deleted,
		createdAt:      record.CreatedAt,
		updatedAt:      record.UpdatedAt,
	}
}

// ToRecord flattens the entity for persistence.
func (c *Collection) ToRecord() Record {
	return Record{
		ID:           c.id,
		Title:        c.title,
		Slug:         c.slug,
		Description:  c.description,
		Type:         c.collectionType,
		Filter:       c.filter,
		FeatureImage: c.featureImage,
		PostIDs:      c.Posts(),
		Deletable:    c.deletable,
		Deleted:      c.deleted,
		CreatedAt:    c.createdAt,
		UpdatedAt:    c.updatedAt,
	}
}
