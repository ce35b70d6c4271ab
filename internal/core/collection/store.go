// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwellhq.com

package collection

import "context"

// # Collection Data Access

// Filter narrows collection listings.
type Filter struct {
	// Query matches against the title, case-insensitively.
	Query string

	// Type restricts results to manual or automatic collections.
	Type *Type

	// IncludeDeleted widens the listing to soft-deleted collections.
	IncludeDeleted bool
}

// Repository defines the data access contract for collections and their
// ordered post membership. Implementations persist the entity as one
// collection row plus one membership row per post, and hydrate it back
// through [FromRecord].
type Repository interface {

	/*
		List returns a filtered, paginated slice of collections and the total count.

		Parameters:
		  - context: context.Context
		  - filter: Filter (Title search, type, deleted visibility)
		  - limit: int
		  - offset: int

		Returns:
		  - []*Collection: Slice of matching collections, membership included
		  - int: Total record count
		  - error: Database retrieval failures
	*/
	List(context context.Context, filter Filter, limit, offset int) ([]*Collection, int, error)

	/*
		FindByID retrieves a collection by its 24-hex identifier.

		Parameters:
		  - context: context.Context
		  - id: string (ObjectID hex)

		Returns:
		  - *Collection: Hydrated entity with ordered membership
		  - error: ErrNotFound if missing or deleted
	*/
	FindByID(context context.Context, id string) (*Collection, error)

	/*
		FindBySlug retrieves a collection by its human-readable identifier.

		Parameters:
		  - context: context.Context
		  - slug: string

		Returns:
		  - *Collection: Hydrated entity with ordered membership
		  - error: ErrNotFound if missing or deleted
	*/
	FindBySlug(context context.Context, slug string) (*Collection, error)

	/*
		ListAutomatic returns every live automatic collection. Used by the
		post-change hooks to re-evaluate membership.

		Parameters:
		  - context: context.Context

		Returns:
		  - []*Collection: All automatic, non-deleted collections
		  - error: Database retrieval failures
	*/
	ListAutomatic(context context.Context) ([]*Collection, error)

	/*
		SlugExists reports whether any live collection already uses the slug.

		Parameters:
		  - context: context.Context
		  - slug: string

		Returns:
		  - bool: True when the slug is taken
		  - error: Database retrieval failures
	*/
	SlugExists(context context.Context, slug string) (bool, error)

	/*
		Create persists a new collection and its membership atomically.

		Parameters:
		  - context: context.Context
		  - c: *Collection

		Returns:
		  - error: ErrConflict on a slug collision, other persistence failures
	*/
	Create(context context.Context, c *Collection) error

	/*
		Update rewrites the collection row and replaces its membership
		atomically. The stored order always mirrors the entity's order.

		Parameters:
		  - context: context.Context
		  - c: *Collection

		Returns:
		  - error: ErrNotFound if missing, other persistence failures
	*/
	Update(context context.Context, c *Collection) error

	/*
		RemovePostEverywhere deletes a post's membership rows across all
		collections in one statement. Used when a post is destroyed.

		Parameters:
		  - context: context.Context
		  - postID: string

		Returns:
		  - []string: IDs of the collections that contained the post
		  - error: Persistence failures
	*/
	RemovePostEverywhere(context context.Context, postID string) ([]string, error)
}
