// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwellhq.com

package collection_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/inkwellhq/inkwell/internal/core/collection"
	"github.com/inkwellhq/inkwell/internal/platform/apperr"
	"github.com/inkwellhq/inkwell/pkg/filter"
	"github.com/inkwellhq/inkwell/pkg/objectid"
	"github.com/inkwellhq/inkwell/pkg/pointer"
)

// slugCheckerFunc adapts a plain function into a collection.SlugChecker.
type slugCheckerFunc func(ctx context.Context, slug string) (bool, error)

func (f slugCheckerFunc) IsUniqueSlug(ctx context.Context, slug string) (bool, error) {
	return f(ctx, slug)
}

func alwaysUnique(context.Context, string) (bool, error) { return true, nil }
func neverUnique(context.Context, string) (bool, error)  { return false, nil }

// explodingChecker fails the test if it is ever consulted.
func explodingChecker(t *testing.T) slugCheckerFunc {
	return func(context.Context, string) (bool, error) {
		t.Fatal("slug checker must not be called")
		return false, nil
	}
}

func mustNew(t *testing.T, input collection.Input) *collection.Collection {
	t.Helper()
	c, err := collection.New(input)
	require.NoError(t, err)
	return c
}

/*
TestNew_Defaults verifies the defaults applied when only a title is given:
generated identifier, manual type, deletable, empty membership, fresh
timestamps.
*/
func TestNew_Defaults(t *testing.T) {
	before := time.Now().UTC()
	c := mustNew(t, collection.Input{Title: "Reading List"})

	assert.True(t, objectid.IsValid(c.ID()))
	assert.Equal(t, "Reading List", c.Title())
	assert.Equal(t, collection.TypeManual, c.Type())
	assert.Empty(t, c.Filter())
	assert.Empty(t, c.Posts())
	assert.True(t, c.Deletable())
	assert.False(t, c.Deleted())
	assert.False(t, c.CreatedAt().Before(before))
	assert.False(t, c.UpdatedAt().Before(before))
}

/*
TestNew_TitleRequired checks that a missing or blank title is rejected with
the exact contract message.
*/
func TestNew_TitleRequired(t *testing.T) {
	for _, title := range []string{"", "   "} {
		_, err := collection.New(collection.Input{Title: title})
		require.Error(t, err)

		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "Title required", ae.Message)
	}
}

/*
TestNew_Identifier exercises identifier resolution: accepted shapes, rejected
shapes, and normalization of uppercase hex.
*/
func TestNew_Identifier(t *testing.T) {
	native := primitive.NewObjectID()

	tests := []struct {
		name    string
		id      any
		wantID  string
		wantErr bool
	}{
		{"absent_generates", nil, "", false},
		{"empty_string_generates", "", "", false},
		{"valid_hex", "665f2e9c8b3a4d5e6f708192", "665f2e9c8b3a4d5e6f708192", false},
		{"uppercase_normalized", "665F2E9C8B3A4D5E6F708192", "665f2e9c8b3a4d5e6f708192", false},
		{"native_object_id", native, native.Hex(), false},
		{"too_short", "abc123", "", true},
		{"non_hex", "zzzf2e9c8b3a4d5e6f708192", "", true},
		{"wrong_type", 12345, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := collection.New(collection.Input{Title: "T", ID: tt.id})

			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, "Invalid ID provided for Collection", apperr.As(err).Message)
				return
			}

			require.NoError(t, err)
			if tt.wantID != "" {
				assert.Equal(t, tt.wantID, c.ID())
			} else {
				assert.True(t, objectid.IsValid(c.ID()))
			}
		})
	}
}

/*
TestNew_Timestamps covers the accepted timestamp shapes and the per-field
rejection messages.
*/
func TestNew_Timestamps(t *testing.T) {
	fixed := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

	t.Run("native_time", func(t *testing.T) {
		c := mustNew(t, collection.Input{Title: "T", CreatedAt: fixed, UpdatedAt: &fixed})
		assert.Equal(t, fixed, c.CreatedAt())
		assert.Equal(t, fixed, c.UpdatedAt())
	})

	t.Run("string_forms", func(t *testing.T) {
		c := mustNew(t, collection.Input{
			Title:     "T",
			CreatedAt: "2026-03-14T09:26:53Z",
			UpdatedAt: "2026-03-14",
		})
		assert.Equal(t, fixed, c.CreatedAt())
		assert.Equal(t, time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC), c.UpdatedAt())
	})

	t.Run("invalid_created_at", func(t *testing.T) {
		_, err := collection.New(collection.Input{Title: "T", CreatedAt: "soon"})
		require.Error(t, err)
		assert.Equal(t, "Invalid date provided for created_at", apperr.As(err).Message)
	})

	t.Run("invalid_updated_at", func(t *testing.T) {
		_, err := collection.New(collection.Input{Title: "T", UpdatedAt: 17})
		require.Error(t, err)
		assert.Equal(t, "Invalid date provided for updated_at", apperr.As(err).Message)
	})
}

/*
TestNew_AutomaticRequiresFilter asserts both the primary message and the
secondary context string of the automatic/filter invariant.
*/
func TestNew_AutomaticRequiresFilter(t *testing.T) {
	_, err := collection.New(collection.Input{Title: "Featured", Type: collection.TypeAutomatic})
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "Invalid filter provided for automatic Collection", ae.Message)
	assert.Equal(t, "Automatic type of collection should always have a filter value", ae.Context)

	// With a filter the same input is fine.
	c := mustNew(t, collection.Input{
		Title:  "Featured",
		Type:   collection.TypeAutomatic,
		Filter: "featured:true",
	})
	assert.Equal(t, collection.TypeAutomatic, c.Type())
}

/*
TestNew_InvalidType rejects types outside the manual/automatic pair.
*/
func TestNew_InvalidType(t *testing.T) {
	_, err := collection.New(collection.Input{Title: "T", Type: "smart"})
	require.Error(t, err)
	assert.Equal(t, "Invalid type provided for Collection", apperr.As(err).Message)
}

/*
TestNew_PostsSeed checks that seeded membership keeps identifiers only,
in order, with duplicates dropped.
*/
func TestNew_PostsSeed(t *testing.T) {
	c := mustNew(t, collection.Input{
		Title: "T",
		Posts: []collection.Item{
			{ID: "p1", Attributes: map[string]any{"featured": true}},
			{ID: "p2"},
			{ID: "p1"},
			{ID: ""},
		},
	})

	assert.Equal(t, []string{"p1", "p2"}, c.Posts())
	assert.True(t, c.IncludesPost("p2"))
	assert.False(t, c.IncludesPost("p3"))
}

/*
TestMarshalJSON pins the serialized record: exactly ten underscored keys,
posts as ordered identifier refs, and null for unset optional fields.
*/
func TestMarshalJSON(t *testing.T) {
	c := mustNew(t, collection.Input{
		ID:        "665f2e9c8b3a4d5e6f708192",
		Title:     "Reading List",
		Slug:      "reading-list",
		CreatedAt: "2026-03-14T09:26:53Z",
		UpdatedAt: "2026-03-14T09:26:53Z",
		Posts:     []collection.Item{{ID: "p1"}, {ID: "p2"}},
	})

	raw, err := json.Marshal(c)
	require.NoError(t, err)

	var record map[string]any
	require.NoError(t, json.Unmarshal(raw, &record))

	assert.Len(t, record, 10)
	for _, key := range []string{
		"id", "title", "slug", "description", "type", "filter",
		"feature_image", "created_at", "updated_at", "posts",
	} {
		assert.Contains(t, record, key)
	}

	assert.Equal(t, "665f2e9c8b3a4d5e6f708192", record["id"])
	assert.Equal(t, "manual", record["type"])
	assert.Nil(t, record["description"])
	assert.Nil(t, record["filter"])
	assert.Nil(t, record["feature_image"])
	assert.Equal(t,
		[]any{map[string]any{"id": "p1"}, map[string]any{"id": "p2"}},
		record["posts"])
}

/*
TestSetSlug covers the three slug paths: a same-value no-op that must not
consult the checker, a successful change, and a conflict.
*/
func TestSetSlug(t *testing.T) {
	ctx := context.Background()

	t.Run("same_value_skips_checker", func(t *testing.T) {
		c := mustNew(t, collection.Input{Title: "T", Slug: "reading"})
		updated := c.UpdatedAt()

		require.NoError(t, c.SetSlug(ctx, "reading", explodingChecker(t)))
		assert.Equal(t, "reading", c.Slug())
		assert.Equal(t, updated, c.UpdatedAt())
	})

	t.Run("unique_slug_accepted", func(t *testing.T) {
		c := mustNew(t, collection.Input{Title: "T", Slug: "reading"})

		require.NoError(t, c.SetSlug(ctx, "watching", slugCheckerFunc(alwaysUnique)))
		assert.Equal(t, "watching", c.Slug())
	})

	t.Run("conflict_leaves_slug_unchanged", func(t *testing.T) {
		c := mustNew(t, collection.Input{Title: "T", Slug: "reading"})

		err := c.SetSlug(ctx, "taken", slugCheckerFunc(neverUnique))
		require.Error(t, err)
		assert.Equal(t, "Slug is already in use", apperr.As(err).Message)
		assert.Equal(t, "reading", c.Slug())
	})
}

/*
TestEdit checks partial-update semantics: nil fields untouched, invariant
re-validation against the resulting state, and atomic rejection.
*/
func TestEdit(t *testing.T) {
	ctx := context.Background()
	checker := slugCheckerFunc(alwaysUnique)

	t.Run("partial_update", func(t *testing.T) {
		c := mustNew(t, collection.Input{Title: "T", Slug: "t", Description: "old"})

		err := c.Edit(ctx, collection.EditInput{Title: pointer.To("Renamed")}, checker)
		require.NoError(t, err)
		assert.Equal(t, "Renamed", c.Title())
		assert.Equal(t, "old", c.Description())
		assert.Equal(t, "t", c.Slug())
	})

	t.Run("clear_filter_on_automatic_rejected", func(t *testing.T) {
		c := mustNew(t, collection.Input{
			Title:  "Featured",
			Type:   collection.TypeAutomatic,
			Filter: "featured:true",
		})

		err := c.Edit(ctx, collection.EditInput{
			Title:  pointer.To("Renamed"),
			Filter: pointer.To(""),
		}, checker)
		require.Error(t, err)
		assert.Equal(t, "Invalid filter provided for automatic Collection", apperr.As(err).Message)

		// Atomic: nothing from the rejected edit landed.
		assert.Equal(t, "Featured", c.Title())
		assert.Equal(t, "featured:true", c.Filter())
	})

	t.Run("switch_to_automatic_needs_filter", func(t *testing.T) {
		c := mustNew(t, collection.Input{Title: "T"})

		err := c.Edit(ctx, collection.EditInput{Type: pointer.To(collection.TypeAutomatic)}, checker)
		require.Error(t, err)
		assert.Equal(t, collection.TypeManual, c.Type())

		err = c.Edit(ctx, collection.EditInput{
			Type:   pointer.To(collection.TypeAutomatic),
			Filter: pointer.To("status:published"),
		}, checker)
		require.NoError(t, err)
		assert.Equal(t, collection.TypeAutomatic, c.Type())
		assert.Equal(t, "status:published", c.Filter())
	})

	t.Run("same_slug_skips_checker", func(t *testing.T) {
		c := mustNew(t, collection.Input{Title: "T", Slug: "keep"})

		err := c.Edit(ctx, collection.EditInput{Slug: pointer.To("keep")}, explodingChecker(t))
		require.NoError(t, err)
		assert.Equal(t, "keep", c.Slug())
	})

	t.Run("slug_conflict_rejects_whole_edit", func(t *testing.T) {
		c := mustNew(t, collection.Input{Title: "T", Slug: "keep"})

		err := c.Edit(ctx, collection.EditInput{
			Title: pointer.To("Renamed"),
			Slug:  pointer.To("taken"),
		}, slugCheckerFunc(neverUnique))
		require.Error(t, err)
		assert.Equal(t, "T", c.Title())
		assert.Equal(t, "keep", c.Slug())
	})
}

/*
TestAddPost_ManualOrdering walks a manual collection through appends,
positioned inserts, clamping, and the move-by-re-add behavior.
*/
func TestAddPost_ManualOrdering(t *testing.T) {
	ctx := context.Background()
	c := mustNew(t, collection.Input{Title: "Ordered"})

	add := func(id string, position *int) {
		t.Helper()
		added, err := c.AddPost(ctx, collection.Item{ID: id}, position, nil)
		require.NoError(t, err)
		require.True(t, added)
	}

	add("p0", nil)           // [p0]
	add("p1", nil)           // [p0 p1]
	add("p2", pointer.To(1)) // [p0 p2 p1]
	add("p3", pointer.To(0)) // [p3 p0 p2 p1]
	assert.Equal(t, []string{"p3", "p0", "p2", "p1"}, c.Posts())

	// Oversized index clamps to an append.
	add("p4", pointer.To(99))
	assert.Equal(t, []string{"p3", "p0", "p2", "p1", "p4"}, c.Posts())

	// Negative index counts from the end; re-adding moves the entry.
	add("p3", pointer.To(-1))
	assert.Equal(t, []string{"p0", "p2", "p1", "p3", "p4"}, c.Posts())

	// A large negative index clamps to the front.
	add("p4", pointer.To(-99))
	assert.Equal(t, []string{"p4", "p0", "p2", "p1", "p3"}, c.Posts())
}

/*
TestAddPost_Automatic gates membership through the filter evaluator and
ignores positions entirely.
*/
func TestAddPost_Automatic(t *testing.T) {
	ctx := context.Background()
	eval := filter.Matcher{}

	c := mustNew(t, collection.Input{
		Title:  "Featured",
		Type:   collection.TypeAutomatic,
		Filter: "featured:true",
	})

	added, err := c.AddPost(ctx, collection.Item{
		ID:         "p1",
		Attributes: map[string]any{"featured": true},
	}, nil, eval)
	require.NoError(t, err)
	assert.True(t, added)
	assert.Equal(t, []string{"p1"}, c.Posts())

	// Non-matching posts are declined without error.
	added, err = c.AddPost(ctx, collection.Item{
		ID:         "p2",
		Attributes: map[string]any{"featured": false},
	}, nil, eval)
	require.NoError(t, err)
	assert.False(t, added)
	assert.Equal(t, []string{"p1"}, c.Posts())

	// Re-adding a matching member is idempotent; position is ignored.
	added, err = c.AddPost(ctx, collection.Item{
		ID:         "p1",
		Attributes: map[string]any{"featured": true},
	}, pointer.To(0), eval)
	require.NoError(t, err)
	assert.True(t, added)
	assert.Equal(t, []string{"p1"}, c.Posts())
}

/*
TestRemovePost removes present members and silently ignores absent ones.
*/
func TestRemovePost(t *testing.T) {
	c := mustNew(t, collection.Input{
		Title: "T",
		Posts: []collection.Item{{ID: "p1"}, {ID: "p2"}},
	})
	c.RemovePost("p1")
	assert.Equal(t, []string{"p2"}, c.Posts())

	// Absent ID: membership and timestamp stay put.
	mark := c.UpdatedAt()
	c.RemovePost("ghost")
	assert.Equal(t, []string{"p2"}, c.Posts())
	assert.Equal(t, mark, c.UpdatedAt())
}

/*
TestPostMatchesFilter evaluates without mutating, and treats a filterless
collection as matching nothing.
*/
func TestPostMatchesFilter(t *testing.T) {
	eval := filter.Matcher{}

	automatic := mustNew(t, collection.Input{
		Title:  "Featured",
		Type:   collection.TypeAutomatic,
		Filter: "featured:true",
	})

	matched, err := automatic.PostMatchesFilter(eval, collection.Item{
		ID:         "p1",
		Attributes: map[string]any{"featured": true},
	})
	require.NoError(t, err)
	assert.True(t, matched)
	assert.Empty(t, automatic.Posts())

	manual := mustNew(t, collection.Input{Title: "Plain"})
	matched, err = manual.PostMatchesFilter(eval, collection.Item{ID: "p1"})
	require.NoError(t, err)
	assert.False(t, matched)
}

/*
TestMarkDeleted verifies the deletable guard and the idempotent one-way
transition.
*/
func TestMarkDeleted(t *testing.T) {
	t.Run("deletable", func(t *testing.T) {
		c := mustNew(t, collection.Input{Title: "T"})

		assert.True(t, c.MarkDeleted())
		assert.True(t, c.Deleted())

		// Second call is a no-op that still reports the deleted state.
		assert.True(t, c.MarkDeleted())
		assert.True(t, c.Deleted())
	})

	t.Run("protected", func(t *testing.T) {
		c := mustNew(t, collection.Input{Title: "Latest", Deletable: pointer.To(false)})

		assert.False(t, c.MarkDeleted())
		assert.False(t, c.Deleted())
	})
}
