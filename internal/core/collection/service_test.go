// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwellhq.com

package collection_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwellhq/inkwell/internal/core/collection"
	"github.com/inkwellhq/inkwell/internal/platform/apperr"
	"github.com/inkwellhq/inkwell/internal/platform/dberr"
	"github.com/inkwellhq/inkwell/pkg/filter"
	"github.com/inkwellhq/inkwell/pkg/pointer"
)

// fakeRepository is an in-memory Repository for service tests.
type fakeRepository struct {
	collections map[string]*collection.Collection
	updates     int
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{collections: map[string]*collection.Collection{}}
}

func (repo *fakeRepository) List(_ context.Context, _ collection.Filter, _, _ int) ([]*collection.Collection, int, error) {
	var out []*collection.Collection
	for _, c := range repo.collections {
		if !c.Deleted() {
			out = append(out, c)
		}
	}
	return out, len(out), nil
}

func (repo *fakeRepository) FindByID(_ context.Context, id string) (*collection.Collection, error) {
	c, ok := repo.collections[id]
	if !ok || c.Deleted() {
		return nil, dberr.ErrNotFound
	}
	return c, nil
}

func (repo *fakeRepository) FindBySlug(_ context.Context, slug string) (*collection.Collection, error) {
	for _, c := range repo.collections {
		if c.Slug() == slug && !c.Deleted() {
			return c, nil
		}
	}
	return nil, dberr.ErrNotFound
}

func (repo *fakeRepository) ListAutomatic(_ context.Context) ([]*collection.Collection, error) {
	var out []*collection.Collection
	for _, c := range repo.collections {
		if c.Type() == collection.TypeAutomatic && !c.Deleted() {
			out = append(out, c)
		}
	}
	return out, nil
}

func (repo *fakeRepository) SlugExists(_ context.Context, slug string) (bool, error) {
	for _, c := range repo.collections {
		if c.Slug() == slug && !c.Deleted() {
			return true, nil
		}
	}
	return false, nil
}

func (repo *fakeRepository) Create(_ context.Context, c *collection.Collection) error {
	repo.collections[c.ID()] = c
	return nil
}

func (repo *fakeRepository) Update(_ context.Context, c *collection.Collection) error {
	if _, ok := repo.collections[c.ID()]; !ok {
		return dberr.ErrNotFound
	}
	repo.collections[c.ID()] = c
	repo.updates++
	return nil
}

func (repo *fakeRepository) RemovePostEverywhere(_ context.Context, postID string) ([]string, error) {
	var affected []string
	for _, c := range repo.collections {
		if c.IncludesPost(postID) {
			c.RemovePost(postID)
			affected = append(affected, c.ID())
		}
	}
	return affected, nil
}

// fakePostSource serves a fixed catalogue of candidate items.
type fakePostSource struct {
	items []collection.Item
}

func (source *fakePostSource) ListItems(context.Context) ([]collection.Item, error) {
	return source.items, nil
}

func newTestService(repo collection.Repository, posts collection.PostSource) *collection.Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return collection.NewService(repo, posts, filter.Matcher{}, logger)
}

/*
TestService_CreateCollection covers slug generation from the title, numeric
suffix deduplication, and automatic membership population at create time.
*/
func TestService_CreateCollection(t *testing.T) {
	ctx := context.Background()

	t.Run("slug_from_title", func(t *testing.T) {
		repo := newFakeRepository()
		service := newTestService(repo, &fakePostSource{})

		c, err := service.CreateCollection(ctx, collection.Input{Title: "Weekly Roundup"})
		require.NoError(t, err)
		assert.Equal(t, "weekly-roundup", c.Slug())

		stored, err := repo.FindByID(ctx, c.ID())
		require.NoError(t, err)
		assert.Equal(t, c.ID(), stored.ID())
	})

	t.Run("slug_suffix_on_conflict", func(t *testing.T) {
		repo := newFakeRepository()
		service := newTestService(repo, &fakePostSource{})

		first, err := service.CreateCollection(ctx, collection.Input{Title: "Reading List"})
		require.NoError(t, err)
		assert.Equal(t, "reading-list", first.Slug())

		second, err := service.CreateCollection(ctx, collection.Input{Title: "Reading List"})
		require.NoError(t, err)
		assert.Equal(t, "reading-list-2", second.Slug())
	})

	t.Run("automatic_populated_from_catalogue", func(t *testing.T) {
		repo := newFakeRepository()
		source := &fakePostSource{items: []collection.Item{
			{ID: "p1", Attributes: map[string]any{"featured": true}},
			{ID: "p2", Attributes: map[string]any{"featured": false}},
			{ID: "p3", Attributes: map[string]any{"featured": true}},
		}}
		service := newTestService(repo, source)

		c, err := service.CreateCollection(ctx, collection.Input{
			Title:  "Featured",
			Type:   collection.TypeAutomatic,
			Filter: "featured:true",
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"p1", "p3"}, c.Posts())
	})

	t.Run("validation_bubbles_up", func(t *testing.T) {
		repo := newFakeRepository()
		service := newTestService(repo, &fakePostSource{})

		_, err := service.CreateCollection(ctx, collection.Input{Title: ""})
		require.Error(t, err)
		assert.Equal(t, "Title required", apperr.As(err).Message)
	})
}

/*
TestService_GetCollection resolves both identifier shapes against the store.
*/
func TestService_GetCollection(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepository()
	service := newTestService(repo, &fakePostSource{})

	created, err := service.CreateCollection(ctx, collection.Input{Title: "Essays"})
	require.NoError(t, err)

	byID, err := service.GetCollection(ctx, created.ID())
	require.NoError(t, err)
	assert.Equal(t, created.ID(), byID.ID())

	bySlug, err := service.GetCollection(ctx, "essays")
	require.NoError(t, err)
	assert.Equal(t, created.ID(), bySlug.ID())

	_, err = service.GetCollection(ctx, "missing-slug")
	require.Error(t, err)
}

/*
TestService_UpdateCollection checks persistence of edits and the membership
rebuild when an automatic collection's filter changes.
*/
func TestService_UpdateCollection(t *testing.T) {
	ctx := context.Background()

	t.Run("filter_change_rebuilds_membership", func(t *testing.T) {
		repo := newFakeRepository()
		source := &fakePostSource{items: []collection.Item{
			{ID: "p1", Attributes: map[string]any{"featured": true, "status": "published"}},
			{ID: "p2", Attributes: map[string]any{"featured": false, "status": "published"}},
		}}
		service := newTestService(repo, source)

		c, err := service.CreateCollection(ctx, collection.Input{
			Title:  "Dynamic",
			Type:   collection.TypeAutomatic,
			Filter: "featured:true",
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"p1"}, c.Posts())

		updated, err := service.UpdateCollection(ctx, c.ID(), collection.EditInput{
			Filter: pointer.To("status:published"),
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"p1", "p2"}, updated.Posts())
	})

	t.Run("rejected_edit_changes_nothing", func(t *testing.T) {
		repo := newFakeRepository()
		service := newTestService(repo, &fakePostSource{})

		c, err := service.CreateCollection(ctx, collection.Input{
			Title:  "Dynamic",
			Type:   collection.TypeAutomatic,
			Filter: "featured:true",
		})
		require.NoError(t, err)

		_, err = service.UpdateCollection(ctx, c.ID(), collection.EditInput{
			Filter: pointer.To(""),
		})
		require.Error(t, err)

		stored, err := repo.FindByID(ctx, c.ID())
		require.NoError(t, err)
		assert.Equal(t, "featured:true", stored.Filter())
	})
}

/*
TestService_DeleteCollection verifies soft deletion and the protected
collection guard.
*/
func TestService_DeleteCollection(t *testing.T) {
	ctx := context.Background()

	t.Run("deletable", func(t *testing.T) {
		repo := newFakeRepository()
		service := newTestService(repo, &fakePostSource{})

		c, err := service.CreateCollection(ctx, collection.Input{Title: "Temp"})
		require.NoError(t, err)

		require.NoError(t, service.DeleteCollection(ctx, c.ID()))

		_, err = service.GetCollection(ctx, c.ID())
		require.Error(t, err)
	})

	t.Run("protected", func(t *testing.T) {
		repo := newFakeRepository()
		service := newTestService(repo, &fakePostSource{})

		c, err := service.CreateCollection(ctx, collection.Input{
			Title:     "Latest",
			Deletable: pointer.To(false),
		})
		require.NoError(t, err)

		err = service.DeleteCollection(ctx, c.ID())
		require.Error(t, err)
		assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)

		// Still retrievable.
		_, err = service.GetCollection(ctx, c.ID())
		require.NoError(t, err)
	})
}

/*
TestService_Membership exercises AddPost and RemovePost through the service,
including the automatic filter gate.
*/
func TestService_Membership(t *testing.T) {
	ctx := context.Background()

	t.Run("manual_add_and_remove", func(t *testing.T) {
		repo := newFakeRepository()
		service := newTestService(repo, &fakePostSource{})

		c, err := service.CreateCollection(ctx, collection.Input{Title: "Picks"})
		require.NoError(t, err)

		_, added, err := service.AddPost(ctx, c.ID(), collection.Item{ID: "p1"}, nil)
		require.NoError(t, err)
		assert.True(t, added)

		updated, added, err := service.AddPost(ctx, c.ID(), collection.Item{ID: "p2"}, pointer.To(0))
		require.NoError(t, err)
		assert.True(t, added)
		assert.Equal(t, []string{"p2", "p1"}, updated.Posts())

		afterRemove, err := service.RemovePost(ctx, c.ID(), "p2")
		require.NoError(t, err)
		assert.Equal(t, []string{"p1"}, afterRemove.Posts())
	})

	t.Run("automatic_filter_gate", func(t *testing.T) {
		repo := newFakeRepository()
		service := newTestService(repo, &fakePostSource{})

		c, err := service.CreateCollection(ctx, collection.Input{
			Title:  "Featured",
			Type:   collection.TypeAutomatic,
			Filter: "featured:true",
		})
		require.NoError(t, err)

		_, added, err := service.AddPost(ctx, c.ID(), collection.Item{
			ID:         "p1",
			Attributes: map[string]any{"featured": false},
		}, nil)
		require.NoError(t, err)
		assert.False(t, added)

		_, added, err = service.AddPost(ctx, c.ID(), collection.Item{
			ID:         "p1",
			Attributes: map[string]any{"featured": true},
		}, nil)
		require.NoError(t, err)
		assert.True(t, added)
	})
}

/*
TestService_SyncPostChanged re-evaluates automatic membership after a post
edit, both directions, leaving manual collections alone.
*/
func TestService_SyncPostChanged(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepository()
	service := newTestService(repo, &fakePostSource{})

	automatic, err := service.CreateCollection(ctx, collection.Input{
		Title:  "Featured",
		Type:   collection.TypeAutomatic,
		Filter: "featured:true",
	})
	require.NoError(t, err)

	manual, err := service.CreateCollection(ctx, collection.Input{Title: "Picks"})
	require.NoError(t, err)
	_, _, err = service.AddPost(ctx, manual.ID(), collection.Item{ID: "p1"}, nil)
	require.NoError(t, err)

	// Post becomes featured: joins the automatic collection.
	err = service.SyncPostChanged(ctx, collection.Item{
		ID:         "p1",
		Attributes: map[string]any{"featured": true},
	})
	require.NoError(t, err)

	stored, err := repo.FindByID(ctx, automatic.ID())
	require.NoError(t, err)
	assert.True(t, stored.IncludesPost("p1"))

	// Post loses the flag: leaves the automatic collection, stays manual.
	err = service.SyncPostChanged(ctx, collection.Item{
		ID:         "p1",
		Attributes: map[string]any{"featured": false},
	})
	require.NoError(t, err)

	stored, err = repo.FindByID(ctx, automatic.ID())
	require.NoError(t, err)
	assert.False(t, stored.IncludesPost("p1"))

	storedManual, err := repo.FindByID(ctx, manual.ID())
	require.NoError(t, err)
	assert.True(t, storedManual.IncludesPost("p1"))
}

/*
TestService_SyncPostDeleted strips a destroyed post from every collection.
*/
func TestService_SyncPostDeleted(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepository()
	service := newTestService(repo, &fakePostSource{})

	first, err := service.CreateCollection(ctx, collection.Input{
		Title: "One",
		Posts: []collection.Item{{ID: "p1"}, {ID: "p2"}},
	})
	require.NoError(t, err)

	second, err := service.CreateCollection(ctx, collection.Input{
		Title: "Two",
		Posts: []collection.Item{{ID: "p1"}},
	})
	require.NoError(t, err)

	require.NoError(t, service.SyncPostDeleted(ctx, "p1"))

	stored, err := repo.FindByID(ctx, first.ID())
	require.NoError(t, err)
	assert.Equal(t, []string{"p2"}, stored.Posts())

	stored, err = repo.FindByID(ctx, second.ID())
	require.NoError(t, err)
	assert.Empty(t, stored.Posts())
}
