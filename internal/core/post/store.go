// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwellhq.com

package post

import "context"

// # Post Data Access

// Repository defines the data access contract for posts.
type Repository interface {

	/*
		List returns a filtered, paginated slice of posts and the total count.

		Parameters:
		  - context: context.Context
		  - filter: Filter (Title search, status, featured)
		  - limit: int
		  - offset: int

		Returns:
		  - []*Post: Slice of matching posts
		  - int: Total record count
		  - error: Database retrieval failures
	*/
	List(context context.Context, filter Filter, limit, offset int) ([]*Post, int, error)

	/*
		ListLive returns every non-deleted post. Used to build the candidate
		set for automatic collection population.

		Parameters:
		  - context: context.Context

		Returns:
		  - []*Post: All live posts, oldest first
		  - error: Database retrieval failures
	*/
	ListLive(context context.Context) ([]*Post, error)

	/*
		FindByID retrieves a post by its 24-hex identifier.

		Parameters:
		  - context: context.Context
		  - id: string (ObjectID hex)

		Returns:
		  - *Post: Hydrated entity
		  - error: ErrNotFound if missing or deleted
	*/
	FindByID(context context.Context, id string) (*Post, error)

	/*
		FindBySlug retrieves a post by its human-readable identifier.

		Parameters:
		  - context: context.Context
		  - slug: string

		Returns:
		  - *Post: Hydrated entity
		  - error: ErrNotFound if missing
	*/
	FindBySlug(context context.Context, slug string) (*Post, error)

	/*
		SlugExists reports whether any live post already uses the slug.

		Parameters:
		  - context: context.Context
		  - slug: string

		Returns:
		  - bool: True when the slug is taken
		  - error: Database retrieval failures
	*/
	SlugExists(context context.Context, slug string) (bool, error)

	/*
		Create persists a new post.

		Parameters:
		  - context: context.Context
		  - post: *Post

		Returns:
		  - error: Conflict on slug collision, other persistence failures
	*/
	Create(context context.Context, post *Post) error

	/*
		Update modifies an existing post's fields.

		Parameters:
		  - context: context.Context
		  - post: *Post

		Returns:
		  - error: ErrNotFound if missing, other persistence failures
	*/
	Update(context context.Context, post *Post) error

	/*
		SoftDelete marks a post as deleted.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - error: ErrNotFound if missing, other persistence failures
	*/
	SoftDelete(context context.Context, id string) error
}
