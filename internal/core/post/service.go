// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwellhq.com

package post

import (
	"context"
	"log/slog"
	"time"

	"github.com/inkwellhq/inkwell/internal/core/collection"
	"github.com/inkwellhq/inkwell/internal/platform/validate"
	"github.com/inkwellhq/inkwell/pkg/objectid"
	"github.com/inkwellhq/inkwell/pkg/slug"
)

// maxSlugAttempts bounds the suffix search when deduplicating slugs.
const maxSlugAttempts = 100

// CollectionSyncer receives post lifecycle events so automatic collection
// membership tracks the catalogue. The collection service implements it.
type CollectionSyncer interface {
	SyncPostChanged(context context.Context, item collection.Item) error
	SyncPostDeleted(context context.Context, postID string) error
}

// # Service Layer

// Service orchestrates business rules for posts and propagates changes to
// the collection domain.
type Service struct {
	repo   Repository
	syncer CollectionSyncer
	logger *slog.Logger
}

// NewService constructs a new post [Service]. The collection syncer is
// attached after construction to break the mutual dependency between the
// two services.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// AttachCollections wires the collection syncer. Must be called before the
// service handles requests; a nil syncer disables propagation.
func (service *Service) AttachCollections(syncer CollectionSyncer) {
	service.syncer = syncer
}

// ListItems implements collection.PostSource over the live catalogue.
func (service *Service) ListItems(context context.Context) ([]collection.Item, error) {
	posts, err := service.repo.ListLive(context)
	if err != nil {
		return nil, err
	}

	items := make([]collection.Item, 0, len(posts))
	for _, post := range posts {
		items = append(items, collection.Item{ID: post.ID, Attributes: post.Attributes()})
	}
	return items, nil
}

// # Post Management

/*
ListPosts retrieves a paginated and filtered list of posts.

Parameters:
  - context: context.Context
  - filter: Filter
  - limit, offset: int

Returns:
  - []*Post: List of posts
  - int: Total matching count
  - error: Retrieval errors
*/
func (service *Service) ListPosts(context context.Context, filter Filter, limit, offset int) ([]*Post, int, error) {
	return service.repo.List(context, filter, limit, offset)
}

/*
GetPost retrieves a post by its ObjectID or slug identifier.

Parameters:
  - context: context.Context
  - identifier: string

Returns:
  - *Post: Hydrated post entity
  - error: ErrNotFound if missing
*/
func (service *Service) GetPost(context context.Context, identifier string) (*Post, error) {
	if objectid.IsValid(identifier) {
		return service.repo.FindByID(context, identifier)
	}
	return service.repo.FindBySlug(context, identifier)
}

/*
CreatePost validates and persists a new post, then offers it to the
automatic collections.

Parameters:
  - context: context.Context
  - post: *Post

Returns:
  - error: Validation or persistence failures
*/
func (service *Service) CreatePost(context context.Context, post *Post) error {
	validator := &validate.Validator{}
	validator.Required(FieldTitle, post.Title).MaxLen(FieldTitle, post.Title, 255)
	if err := validator.Err(); err != nil {
		return err
	}

	post.ID = objectid.New()
	if post.Status == "" {
		post.Status = StatusDraft
	}
	if post.Status == StatusPublished && post.PublishedAt == nil {
		now := time.Now().UTC()
		post.PublishedAt = &now
	}

	assigned, err := service.assignSlug(context, post)
	if err != nil {
		return err
	}
	post.Slug = assigned

	if err := service.repo.Create(context, post); err != nil {
		return err
	}

	service.logger.Info("post_created",
		slog.String("post_id", post.ID),
		slog.String("slug", post.Slug),
		slog.String("status", string(post.Status)),
	)

	return service.propagateChange(context, post)
}

/*
UpdatePost modifies an existing post and re-syncs collection membership.

Parameters:
  - context: context.Context
  - post: *Post (ID plus the full field set to store)

Returns:
  - error: Validation, ErrNotFound, or persistence failures
*/
func (service *Service) UpdatePost(context context.Context, post *Post) error {
	validator := &validate.Validator{}
	validator.Required(FieldTitle, post.Title).MaxLen(FieldTitle, post.Title, 255)
	if err := validator.Err(); err != nil {
		return err
	}

	if post.Status == StatusPublished && post.PublishedAt == nil {
		now := time.Now().UTC()
		post.PublishedAt = &now
	}

	if err := service.repo.Update(context, post); err != nil {
		return err
	}

	service.logger.Info("post_updated", slog.String("post_id", post.ID))

	return service.propagateChange(context, post)
}

/*
PublishPost transitions a draft to published and stamps the publish time.

Parameters:
  - context: context.Context
  - id: string (ObjectID hex)

Returns:
  - *Post: The published entity
  - error: ErrNotFound or persistence failures
*/
func (service *Service) PublishPost(context context.Context, id string) (*Post, error) {
	post, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	if post.Status != StatusPublished {
		post.Status = StatusPublished
		now := time.Now().UTC()
		post.PublishedAt = &now

		if err := service.repo.Update(context, post); err != nil {
			return nil, err
		}

		service.logger.Info("post_published", slog.String("post_id", post.ID))

		if err := service.propagateChange(context, post); err != nil {
			return nil, err
		}
	}

	return post, nil
}

/*
DeletePost soft-deletes a post and strips it from every collection.

Parameters:
  - context: context.Context
  - id: string (ObjectID hex)

Returns:
  - error: ErrNotFound or persistence failures
*/
func (service *Service) DeletePost(context context.Context, id string) error {
	if err := service.repo.SoftDelete(context, id); err != nil {
		return err
	}

	service.logger.Info("post_deleted", slog.String("post_id", id))

	if service.syncer == nil {
		return nil
	}
	return service.syncer.SyncPostDeleted(context, id)
}

// # Internal Helpers

// propagateChange offers the post's current attributes to the automatic
// collections.
func (service *Service) propagateChange(context context.Context, post *Post) error {
	if service.syncer == nil {
		return nil
	}
	return service.syncer.SyncPostChanged(context, collection.Item{
		ID:         post.ID,
		Attributes: post.Attributes(),
	})
}

// assignSlug resolves the final slug for a new post, deduplicating with
// numeric suffixes against the live set.
func (service *Service) assignSlug(context context.Context, post *Post) (string, error) {
	base := post.Slug
	if base == "" {
		base = post.Title
	}
	base = slug.From(base)

	for attempt := 1; attempt <= maxSlugAttempts; attempt++ {
		candidate := slug.Candidate(base, attempt)

		taken, err := service.repo.SlugExists(context, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}

	return "", collection.ErrSlugNotUnique
}
