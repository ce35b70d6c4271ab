// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwellhq.com

/*
Package collection implements the core content-collection entity.

A Collection is a named, ordered set of posts. It is either manual
(membership is an explicit, operator-ordered list) or automatic (membership
is derived by evaluating a filter predicate against each candidate post).

# Architecture

The entity is a self-contained value object with no I/O. It depends on two
injected, stateless capabilities, both modeled as single-method interfaces
passed into the operations that need them:

  - [SlugChecker] reports whether a candidate slug is free.
  - [Evaluator] reports whether a post's attributes satisfy a filter
    expression (see pkg/filter for the built-in implementation).

All mutation goes through the declared operations; no field is writable from
outside the package. Callers serialize concurrent edits to the same instance.
*/
package collection

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/inkwellhq/inkwell/pkg/objectid"
	"github.com/inkwellhq/inkwell/pkg/pointer"
)

// Type discriminates manual and automatic collections.
type Type string

const (
	// TypeManual collections have explicitly managed, operator-ordered membership.
	TypeManual Type = "manual"

	// TypeAutomatic collections derive membership from their filter expression.
	TypeAutomatic Type = "automatic"
)

// Global field names for validation and identity mapping
const (
	FieldTitle        = "title"
	FieldSlug         = "slug"
	FieldDescription  = "description"
	FieldType         = "type"
	FieldFilter       = "filter"
	FieldFeatureImage = "feature_image"
	FieldPosts        = "posts"
)

// # Injected Capabilities

// SlugChecker reports whether a candidate slug is available.
//
// The check is external (it spans every stored collection), so the entity
// only consumes it through this narrow contract.
type SlugChecker interface {
	IsUniqueSlug(ctx context.Context, slug string) (bool, error)
}

// Evaluator evaluates a filter expression against a post's attribute set.
type Evaluator interface {
	Matches(expression string, attributes map[string]any) (bool, error)
}

// Item is the minimal view of a post as seen by a collection: its identifier
// plus whatever attributes an automatic filter may inspect. The collection
// stores only the identifier; it never aliases the post itself.
type Item struct {
	ID         string
	Attributes map[string]any
}

// # Entity

// Collection is the collection entity. The zero value is not usable;
// construct instances through [New].
type Collection struct {
	id             string
	title          string
	slug           string
	description    string
	collectionType Type
	filter         string
	featureImage   string
	posts          []string
	deletable      bool
	deleted        bool
	createdAt      time.Time
	updatedAt      time.Time
}

// Input is the loosely-typed field bag accepted by [New]. Every field is
// optional except Title.
//
// ID, CreatedAt, and UpdatedAt are deliberately untyped: API payloads and
// storage rows hand them over as strings, while in-process callers pass
// native values. [New] validates the shape either way.
type Input struct {
	// ID is the 24-hex ObjectID, as a string or [primitive.ObjectID].
	// Generated when absent.
	ID any

	// Title is required and non-empty.
	Title string

	Slug         string
	Description  string
	Type         Type
	Filter       string
	FeatureImage string

	// Posts seeds membership; only the item identifiers are retained.
	Posts []Item

	// Deletable defaults to true. It is fixed for the entity's lifetime.
	Deletable *bool

	// CreatedAt and UpdatedAt accept a time.Time, *time.Time, or an
	// RFC 3339 / YYYY-MM-DD string. They default to the current time.
	CreatedAt any
	UpdatedAt any
}

// EditInput carries a partial update for [Collection.Edit]. Nil fields are
// left unchanged; a pointer to the empty string clears the field.
type EditInput struct {
	Title        *string
	Slug         *string
	Description  *string
	Type         *Type
	Filter       *string
	FeatureImage *string
}

// New constructs a validated Collection.
//
// Validation order (failing fast on the first violation): title presence,
// identifier shape, timestamp shapes, then the automatic/filter invariant.
// Slug uniqueness is NOT checked here — construction is pure; the service
// layer consults the checker before persisting (see Service.CreateCollection
// for the documented policy).
func New(input Input) (*Collection, error) {
	// 1. Title
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrTitleRequired
	}

	// 2. Identifier
	id, err := resolveID(input.ID)
	if err != nil {
		return nil, err
	}

	// 3. Timestamps
	now := time.Now().UTC()
	createdAt, err := resolveTime(input.CreatedAt, now, ErrInvalidCreatedAt)
	if err != nil {
		return nil, err
	}
	updatedAt, err := resolveTime(input.UpdatedAt, now, ErrInvalidUpdatedAt)
	if err != nil {
		return nil, err
	}

	// 4. Type + automatic/filter invariant
	collectionType := input.Type
	if collectionType == "" {
		collectionType = TypeManual
	}
	if collectionType != TypeManual && collectionType != TypeAutomatic {
		return nil, ErrInvalidType
	}
	if collectionType == TypeAutomatic && strings.TrimSpace(input.Filter) == "" {
		return nil, ErrAutomaticNoFilter
	}

	// Membership seed keeps only identifiers, first occurrence wins.
	posts := make([]string, 0, len(input.Posts))
	for _, item := range input.Posts {
		if item.ID != "" && !contains(posts, item.ID) {
			posts = append(posts, item.ID)
		}
	}

	return &Collection{
		id:             id,
		title:          input.Title,
		slug:           input.Slug,
		description:    input.Description,
		collectionType: collectionType,
		filter:         input.Filter,
		featureImage:   input.FeatureImage,
		posts:          posts,
		deletable:      pointer.Fallback(input.Deletable, true),
		deleted:        false,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}, nil
}

// # Accessors

func (c *Collection) ID() string           { return c.id }
func (c *Collection) Title() string        { return c.title }
func (c *Collection) Slug() string         { return c.slug }
func (c *Collection) Description() string  { return c.description }
func (c *Collection) Type() Type           { return c.collectionType }
func (c *Collection) Filter() string       { return c.filter }
func (c *Collection) FeatureImage() string { return c.featureImage }
func (c *Collection) Deletable() bool      { return c.deletable }
func (c *Collection) Deleted() bool        { return c.deleted }
func (c *Collection) CreatedAt() time.Time { return c.createdAt }
func (c *Collection) UpdatedAt() time.Time { return c.updatedAt }

// Posts returns a copy of the ordered post identifiers. The entity owns the
// underlying list; callers must not rely on aliasing.
func (c *Collection) Posts() []string {
	out := make([]string, len(c.posts))
	copy(out, c.posts)
	return out
}

// IncludesPost reports whether the post identifier is currently a member.
func (c *Collection) IncludesPost(postID string) bool {
	return contains(c.posts, postID)
}

// # Mutations

// SetSlug changes the collection slug after consulting the uniqueness checker.
//
// Setting the current slug is a no-op and never invokes the checker, so
// callers may pass a checker that would reject reuse of the current value.
func (c *Collection) SetSlug(ctx context.Context, newSlug string, checker SlugChecker) error {
	if newSlug == c.slug {
		return nil
	}

	if err := ensureSlugAvailable(ctx, newSlug, checker); err != nil {
		return err
	}

	c.slug = newSlug
	c.touch()
	return nil
}

// Edit applies a partial update atomically: the automatic/filter invariant is
// re-validated against the resulting state (not the delta), and a slug change
// is uniqueness-checked, before any field is committed. On failure the
// collection is left exactly as it was.
func (c *Collection) Edit(ctx context.Context, input EditInput, checker SlugChecker) error {
	nextType := pointer.Fallback(input.Type, c.collectionType)
	if nextType != TypeManual && nextType != TypeAutomatic {
		return ErrInvalidType
	}

	nextFilter := pointer.Fallback(input.Filter, c.filter)
	if nextType == TypeAutomatic && strings.TrimSpace(nextFilter) == "" {
		return ErrAutomaticNoFilter
	}

	// Slug routes through the same uniqueness logic as SetSlug; same-value
	// edits skip the checker entirely.
	slugChanged := input.Slug != nil && *input.Slug != c.slug
	if slugChanged {
		if err := ensureSlugAvailable(ctx, *input.Slug, checker); err != nil {
			return err
		}
	}

	// Commit point — no failure paths below.
	c.title = pointer.Fallback(input.Title, c.title)
	c.description = pointer.Fallback(input.Description, c.description)
	c.collectionType = nextType
	c.filter = nextFilter
	c.featureImage = pointer.Fallback(input.FeatureImage, c.featureImage)
	if slugChanged {
		c.slug = *input.Slug
	}

	c.touch()
	return nil
}

// AddPost adds (or moves) a post in the collection.
//
// For automatic collections the position is ignored and membership is gated
// by the filter: the evaluator decides, and a non-match is a normal false
// result, not an error. For manual collections membership is unconditional;
// an existing entry is first removed, making AddPost double as a move
// primitive. eval may be nil for manual collections.
//
// Position resolution for manual collections (after the removal step):
// nil appends, a non-negative value is clamped to the end, a negative value
// counts back from the end and is clamped to the start.
func (c *Collection) AddPost(ctx context.Context, item Item, position *int, eval Evaluator) (bool, error) {
	if c.collectionType == TypeAutomatic {
		matched, err := eval.Matches(c.filter, item.Attributes)
		if err != nil {
			return false, err
		}
		if !matched {
			return false, nil
		}

		if !contains(c.posts, item.ID) {
			c.posts = append(c.posts, item.ID)
			c.touch()
		}
		return true, nil
	}

	// Manual: remove an existing entry before resolving the insertion index.
	c.removeID(item.ID)

	index := len(c.posts)
	if position != nil {
		index = *position
		if index < 0 {
			index = len(c.posts) + index
			if index < 0 {
				index = 0
			}
		} else if index > len(c.posts) {
			index = len(c.posts)
		}
	}

	c.posts = append(c.posts, "")
	copy(c.posts[index+1:], c.posts[index:])
	c.posts[index] = item.ID

	c.touch()
	return true, nil
}

// RemovePost removes the first entry matching postID. Absent IDs are a
// silent no-op; updatedAt is refreshed only when a removal occurred.
func (c *Collection) RemovePost(postID string) {
	if c.removeID(postID) {
		c.touch()
	}
}

// PostMatchesFilter evaluates the collection's filter against an item's
// attributes without mutating membership. It is used internally by [AddPost]
// for automatic collections and exposed so callers can decide whether an
// externally-edited post belongs, without re-adding it.
//
// Collections without a filter match nothing.
func (c *Collection) PostMatchesFilter(eval Evaluator, item Item) (bool, error) {
	if strings.TrimSpace(c.filter) == "" {
		return false, nil
	}
	return eval.Matches(c.filter, item.Attributes)
}

// MarkDeleted requests the one-way transition to the deleted state.
//
// The transition is honored only when the collection is deletable; otherwise
// the request is silently discarded. The return value reports whether the
// collection is now deleted. This is a guarded field, not a validated
// operation — no error is ever raised.
func (c *Collection) MarkDeleted() bool {
	if !c.deletable {
		return false
	}
	if !c.deleted {
		c.deleted = true
		c.touch()
	}
	return true
}

// touch refreshes the modification timestamp after a successful mutation.
func (c *Collection) touch() {
	c.updatedAt = time.Now().UTC()
}

// removeID removes the first occurrence of postID, reporting whether it was present.
func (c *Collection) removeID(postID string) bool {
	for i, id := range c.posts {
		if id == postID {
			c.posts = append(c.posts[:i], c.posts[i+1:]...)
			return true
		}
	}
	return false
}

func contains(ids []string, id string) bool {
	for _, existing := range ids {
		if existing == id {
			return true
		}
	}
	return false
}

// ensureSlugAvailable consults the checker and maps a conflict onto
// [ErrSlugNotUnique].
func ensureSlugAvailable(ctx context.Context, slug string, checker SlugChecker) error {
	unique, err := checker.IsUniqueSlug(ctx, slug)
	if err != nil {
		return err
	}
	if !unique {
		return ErrSlugNotUnique
	}
	return nil
}

// # Input resolution

// resolveID accepts a 24-hex string or a native ObjectID; anything else is
// rejected. A nil value generates a fresh identifier.
func resolveID(raw any) (string, error) {
	switch value := raw.(type) {
	case nil:
		return objectid.New(), nil
	case string:
		if value == "" {
			return objectid.New(), nil
		}
		normalized, ok := objectid.Normalize(value)
		if !ok {
			return "", ErrInvalidID
		}
		return normalized, nil
	case primitive.ObjectID:
		return value.Hex(), nil
	default:
		return "", ErrInvalidID
	}
}

// resolveTime accepts a time.Time, *time.Time, or a date string, defaulting
// absent values to fallback.
func resolveTime(raw any, fallback time.Time, invalid error) (time.Time, error) {
	switch value := raw.(type) {
	case nil:
		return fallback, nil
	case time.Time:
		return value.UTC(), nil
	case *time.Time:
		if value == nil {
			return fallback, nil
		}
		return value.UTC(), nil
	case string:
		if value == "" {
			return fallback, nil
		}
		if t, err := time.Parse(time.RFC3339, value); err == nil {
			return t.UTC(), nil
		}
		if t, err := time.Parse("2006-01-02", value); err == nil {
			return t.UTC(), nil
		}
		return time.Time{}, invalid
	default:
		return time.Time{}, invalid
	}
}
