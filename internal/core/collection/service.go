// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwellhq.com

package collection

import (
	"context"
	"log/slog"
	"strings"

	"github.com/inkwellhq/inkwell/internal/platform/apperr"
	"github.com/inkwellhq/inkwell/pkg/objectid"
	"github.com/inkwellhq/inkwell/pkg/slug"
)

// maxSlugAttempts bounds the suffix search when deduplicating slugs.
const maxSlugAttempts = 100

// PostSource supplies the candidate items an automatic collection evaluates
// when its membership must be built from scratch. The post domain implements
// it over the published catalogue.
type PostSource interface {
	ListItems(context context.Context) ([]Item, error)
}

// # Service Layer

// Service orchestrates business rules for collections: slug assignment,
// automatic membership population, and persistence.
type Service struct {
	repo      Repository
	posts     PostSource
	evaluator Evaluator
	logger    *slog.Logger
}

// NewService constructs a new collection [Service].
func NewService(repo Repository, posts PostSource, evaluator Evaluator, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		posts:     posts,
		evaluator: evaluator,
		logger:    logger,
	}
}

// slugUniqueness adapts the repository into the entity's [SlugChecker]
// capability.
type slugUniqueness struct {
	repo Repository
}

func (checker slugUniqueness) IsUniqueSlug(context context.Context, candidate string) (bool, error) {
	exists, err := checker.repo.SlugExists(context, candidate)
	return !exists, err
}

// # Collection Management

/*
ListCollections retrieves a paginated and filtered list of collections.

Parameters:
  - context: context.Context
  - filter: Filter
  - limit, offset: int

Returns:
  - []*Collection: List of collections
  - int: Total matching count
  - error: Retrieval errors
*/
func (service *Service) ListCollections(context context.Context, filter Filter, limit, offset int) ([]*Collection, int, error) {
	return service.repo.List(context, filter, limit, offset)
}

/*
GetCollection retrieves a collection by its ObjectID or slug identifier.

Parameters:
  - context: context.Context
  - identifier: string

Returns:
  - *Collection: Hydrated collection entity
  - error: ErrNotFound if missing
*/
func (service *Service) GetCollection(context context.Context, identifier string) (*Collection, error) {

	// Discriminator: ID vs Slug
	// ObjectIDs are exactly 24 hex characters; everything else is a slug.
	if objectid.IsValid(identifier) {
		return service.repo.FindByID(context, identifier)
	}

	return service.repo.FindBySlug(context, identifier)
}

/*
CreateCollection validates, slugs, populates, and persists a new collection.

Description: The slug defaults to a normalized form of the title and is
deduplicated with numeric suffixes against the live set. Automatic
collections are populated by evaluating the filter against every candidate
item before the first write.

Parameters:
  - context: context.Context
  - input: Input

Returns:
  - *Collection: The persisted entity
  - error: Validation, slug, or persistence failures
*/
func (service *Service) CreateCollection(context context.Context, input Input) (*Collection, error) {
	c, err := New(input)
	if err != nil {
		return nil, err
	}

	assigned, err := service.assignSlug(context, c)
	if err != nil {
		return nil, err
	}
	c.slug = assigned

	if c.Type() == TypeAutomatic {
		if err := service.populateAutomatic(context, c); err != nil {
			return nil, err
		}
	}

	if err := service.repo.Create(context, c); err != nil {
		return nil, err
	}

	service.logger.Info("collection_created",
		slog.String("collection_id", c.ID()),
		slog.String("slug", c.Slug()),
		slog.String("type", string(c.Type())),
	)

	return c, nil
}

/*
UpdateCollection applies a partial edit and persists the result.

Description: The edit is atomic at the entity level. When the resulting
state is automatic and the filter or type changed, membership is rebuilt
from the candidate set before persisting.

Parameters:
  - context: context.Context
  - id: string (ObjectID hex)
  - input: EditInput

Returns:
  - *Collection: The updated entity
  - error: ErrNotFound, validation, slug, or persistence failures
*/
func (service *Service) UpdateCollection(context context.Context, id string, input EditInput) (*Collection, error) {
	c, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	previousType := c.Type()
	previousFilter := c.Filter()

	if err := c.Edit(context, input, slugUniqueness{repo: service.repo}); err != nil {
		return nil, err
	}

	rulesChanged := c.Type() != previousType || c.Filter() != previousFilter
	if c.Type() == TypeAutomatic && rulesChanged {
		c.posts = c.posts[:0]
		if err := service.populateAutomatic(context, c); err != nil {
			return nil, err
		}
	}

	if err := service.repo.Update(context, c); err != nil {
		return nil, err
	}

	service.logger.Info("collection_updated", slog.String("collection_id", c.ID()))

	return c, nil
}

/*
DeleteCollection soft-deletes a collection.

Description: Collections flagged non-deletable (the built-ins) refuse the
transition with a Forbidden error.

Parameters:
  - context: context.Context
  - id: string (ObjectID hex)

Returns:
  - error: ErrNotFound, Forbidden for protected collections
*/
func (service *Service) DeleteCollection(context context.Context, id string) error {
	c, err := service.repo.FindByID(context, id)
	if err != nil {
		return err
	}

	if !c.MarkDeleted() {
		return apperr.Forbidden("Collection cannot be deleted")
	}

	if err := service.repo.Update(context, c); err != nil {
		return err
	}

	service.logger.Info("collection_deleted", slog.String("collection_id", c.ID()))

	return nil
}

// # Membership Management

/*
AddPost adds (or repositions) a post in a collection and persists the result.

Parameters:
  - context: context.Context
  - collectionID: string (ObjectID hex)
  - item: Item (Identifier plus filterable attributes)
  - position: *int (Manual collections only; nil appends)

Returns:
  - *Collection: The updated entity
  - bool: Whether the post is a member after the call
  - error: ErrNotFound, filter evaluation, or persistence failures
*/
func (service *Service) AddPost(context context.Context, collectionID string, item Item, position *int) (*Collection, bool, error) {
	c, err := service.repo.FindByID(context, collectionID)
	if err != nil {
		return nil, false, err
	}

	added, err := c.AddPost(context, item, position, service.evaluator)
	if err != nil {
		return nil, false, err
	}
	if !added {
		return c, false, nil
	}

	if err := service.repo.Update(context, c); err != nil {
		return nil, false, err
	}

	service.logger.Info("collection_post_added",
		slog.String("collection_id", c.ID()),
		slog.String("post_id", item.ID),
	)

	return c, true, nil
}

/*
RemovePost removes a post from a collection and persists the result.

Description: Removing a post that is not a member is a no-op, not an error.

Parameters:
  - context: context.Context
  - collectionID: string (ObjectID hex)
  - postID: string

Returns:
  - *Collection: The updated entity
  - error: ErrNotFound or persistence failures
*/
func (service *Service) RemovePost(context context.Context, collectionID, postID string) (*Collection, error) {
	c, err := service.repo.FindByID(context, collectionID)
	if err != nil {
		return nil, err
	}

	if !c.IncludesPost(postID) {
		return c, nil
	}

	c.RemovePost(postID)

	if err := service.repo.Update(context, c); err != nil {
		return nil, err
	}

	service.logger.Info("collection_post_removed",
		slog.String("collection_id", c.ID()),
		slog.String("post_id", postID),
	)

	return c, nil
}

// # Post Change Hooks

/*
SyncPostChanged re-evaluates every automatic collection against a post that
was created or edited, adding and removing the membership as the filter
dictates. Manual collections are never touched.

Parameters:
  - context: context.Context
  - item: Item (Post identifier plus current attributes)

Returns:
  - error: Retrieval, evaluation, or persistence failures
*/
func (service *Service) SyncPostChanged(context context.Context, item Item) error {
	automatics, err := service.repo.ListAutomatic(context)
	if err != nil {
		return err
	}

	for _, c := range automatics {
		matches, err := c.PostMatchesFilter(service.evaluator, item)
		if err != nil {
			return err
		}

		member := c.IncludesPost(item.ID)
		switch {
		case matches && !member:
			if _, err := c.AddPost(context, item, nil, service.evaluator); err != nil {
				return err
			}
		case !matches && member:
			c.RemovePost(item.ID)
		default:
			continue
		}

		if err := service.repo.Update(context, c); err != nil {
			return err
		}

		service.logger.Info("collection_membership_synced",
			slog.String("collection_id", c.ID()),
			slog.String("post_id", item.ID),
			slog.Bool("member", matches),
		)
	}

	return nil
}

/*
SyncPostDeleted strips a destroyed post from every collection, manual and
automatic alike.

Parameters:
  - context: context.Context
  - postID: string

Returns:
  - error: Persistence failures
*/
func (service *Service) SyncPostDeleted(context context.Context, postID string) error {
	affected, err := service.repo.RemovePostEverywhere(context, postID)
	if err != nil {
		return err
	}

	if len(affected) > 0 {
		service.logger.Info("collection_post_purged",
			slog.String("post_id", postID),
			slog.Int("collections", len(affected)),
		)
	}

	return nil
}

// # Internal Helpers

// assignSlug resolves the final slug for a new collection: normalize the
// requested slug (or the title when absent), then probe numbered candidates
// until a free one turns up.
func (service *Service) assignSlug(context context.Context, c *Collection) (string, error) {
	base := strings.TrimSpace(c.Slug())
	if base == "" {
		base = c.Title()
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

	return "", ErrSlugNotUnique
}

// populateAutomatic rebuilds membership by running the filter over every
// candidate item. Ordering follows the source listing.
func (service *Service) populateAutomatic(context context.Context, c *Collection) error {
	items, err := service.posts.ListItems(context)
	if err != nil {
		return err
	}

	for _, item := range items {
		if _, err := c.AddPost(context, item, nil, service.evaluator); err != nil {
			return err
		}
	}

	return nil
}
