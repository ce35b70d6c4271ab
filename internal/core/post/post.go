// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwellhq.com

/*
Package post manages the publishing lifecycle of posts.

It handles drafting, publishing, and removal, and keeps the collection
domain informed: every post change is offered back to the automatic
collections so their membership tracks the catalogue.

# Core Responsibility

  - Content: Defines the [Post] entity and its lifecycle states.
  - Publishing: Manages the draft -> published transition and timestamps.
  - Propagation: Feeds post changes into collection membership sync.
*/
package post

import "time"

// # Post Enums

// Status describes where a post sits in the publishing lifecycle.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
)

// # Core Entities

// Post represents a single piece of published or draft content.
type Post struct {
	ID           string     `json:"id"` // ObjectID hex
	Title        string     `json:"title"`
	Slug         string     `json:"slug"`
	Status       Status     `json:"status"`
	Featured     bool       `json:"featured"`
	FeatureImage *string    `json:"feature_image,omitempty"`
	PublishedAt  *time.Time `json:"published_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	DeletedAt    *time.Time `json:"-"`
}

// Attributes flattens the post into the attribute set collection filters
// evaluate against. Keys mirror the serialized field names.
func (post *Post) Attributes() map[string]any {
	attributes := map[string]any{
		"id":       post.ID,
		"title":    post.Title,
		"slug":     post.Slug,
		"status":   string(post.Status),
		"featured": post.Featured,
	}

	if post.PublishedAt != nil {
		attributes["published_at"] = *post.PublishedAt
	}
	attributes["created_at"] = post.CreatedAt
	attributes["updated_at"] = post.UpdatedAt

	return attributes
}

// # Search & Filtering

// Filter holds parameters for searching and listing posts.
type Filter struct {
	Query    string  `json:"q"`
	Status   *Status `json:"status"`
	Featured *bool   `json:"featured"`
}

// # Field Identifiers

const (
	FieldTitle    = "title"
	FieldSlug     = "slug"
	FieldStatus   = "status"
	FieldFeatured = "featured"
)
