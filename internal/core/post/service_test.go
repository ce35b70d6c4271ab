// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwellhq.com

package post_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwellhq/inkwell/internal/core/collection"
	"github.com/inkwellhq/inkwell/internal/core/post"
	"github.com/inkwellhq/inkwell/internal/platform/dberr"
	"github.com/inkwellhq/inkwell/pkg/objectid"
)

// fakeRepository is an in-memory Repository for service tests.
type fakeRepository struct {
	posts map[string]*post.Post
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{posts: map[string]*post.Post{}}
}

func (repo *fakeRepository) List(_ context.Context, _ post.Filter, _, _ int) ([]*post.Post, int, error) {
	var out []*post.Post
	for _, p := range repo.posts {
		if p.DeletedAt == nil {
			out = append(out, p)
		}
	}
	return out, len(out), nil
}

func (repo *fakeRepository) ListLive(_ context.Context) ([]*post.Post, error) {
	var out []*post.Post
	for _, p := range repo.posts {
		if p.DeletedAt == nil {
			out = append(out, p)
		}
	}
	return out, nil
}

func (repo *fakeRepository) FindByID(_ context.Context, id string) (*post.Post, error) {
	p, ok := repo.posts[id]
	if !ok || p.DeletedAt != nil {
		return nil, dberr.ErrNotFound
	}
	return p, nil
}

func (repo *fakeRepository) FindBySlug(_ context.Context, slug string) (*post.Post, error) {
	for _, p := range repo.posts {
		if p.Slug == slug && p.DeletedAt == nil {
			return p, nil
		}
	}
	return nil, dberr.ErrNotFound
}

func (repo *fakeRepository) SlugExists(_ context.Context, slug string) (bool, error) {
	for _, p := range repo.posts {
		if p.Slug == slug && p.DeletedAt == nil {
			return true, nil
		}
	}
	return false, nil
}

func (repo *fakeRepository) Create(_ context.Context, p *post.Post) error {
	repo.posts[p.ID] = p
	return nil
}

func (repo *fakeRepository) Update(_ context.Context, p *post.Post) error {
	if _, ok := repo.posts[p.ID]; !ok {
		return dberr.ErrNotFound
	}
	repo.posts[p.ID] = p
	return nil
}

func (repo *fakeRepository) SoftDelete(_ context.Context, id string) error {
	p, ok := repo.posts[id]
	if !ok {
		return dberr.ErrNotFound
	}
	now := p.CreatedAt
	p.DeletedAt = &now
	return nil
}

// recordingSyncer captures propagated lifecycle events.
type recordingSyncer struct {
	changed []collection.Item
	deleted []string
}

func (syncer *recordingSyncer) SyncPostChanged(_ context.Context, item collection.Item) error {
	syncer.changed = append(syncer.changed, item)
	return nil
}

func (syncer *recordingSyncer) SyncPostDeleted(_ context.Context, postID string) error {
	syncer.deleted = append(syncer.deleted, postID)
	return nil
}

func newTestService(repo post.Repository) (*post.Service, *recordingSyncer) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := post.NewService(repo, logger)
	syncer := &recordingSyncer{}
	service.AttachCollections(syncer)
	return service, syncer
}

/*
TestService_CreatePost covers defaults, slug deduplication, and the change
event offered to the collection domain.
*/
func TestService_CreatePost(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults_and_propagation", func(t *testing.T) {
		repo := newFakeRepository()
		service, syncer := newTestService(repo)

		p := &post.Post{Title: "Hello World", Featured: true}
		require.NoError(t, service.CreatePost(ctx, p))

		assert.True(t, objectid.IsValid(p.ID))
		assert.Equal(t, "hello-world", p.Slug)
		assert.Equal(t, post.StatusDraft, p.Status)
		assert.Nil(t, p.PublishedAt)

		require.Len(t, syncer.changed, 1)
		assert.Equal(t, p.ID, syncer.changed[0].ID)
		assert.Equal(t, true, syncer.changed[0].Attributes["featured"])
		assert.Equal(t, "draft", syncer.changed[0].Attributes["status"])
	})

	t.Run("published_gets_timestamp", func(t *testing.T) {
		repo := newFakeRepository()
		service, _ := newTestService(repo)

		p := &post.Post{Title: "Launch", Status: post.StatusPublished}
		require.NoError(t, service.CreatePost(ctx, p))
		require.NotNil(t, p.PublishedAt)
	})

	t.Run("slug_suffix_on_conflict", func(t *testing.T) {
		repo := newFakeRepository()
		service, _ := newTestService(repo)

		first := &post.Post{Title: "Weekly Notes"}
		require.NoError(t, service.CreatePost(ctx, first))

		second := &post.Post{Title: "Weekly Notes"}
		require.NoError(t, service.CreatePost(ctx, second))
		assert.Equal(t, "weekly-notes-2", second.Slug)
	})

	t.Run("title_required", func(t *testing.T) {
		repo := newFakeRepository()
		service, _ := newTestService(repo)

		err := service.CreatePost(ctx, &post.Post{})
		require.Error(t, err)
	})
}

/*
TestService_PublishPost transitions a draft and propagates the change; a
second publish is a no-op with no extra event.
*/
func TestService_PublishPost(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepository()
	service, syncer := newTestService(repo)

	draft := &post.Post{Title: "Draft"}
	require.NoError(t, service.CreatePost(ctx, draft))
	eventsAfterCreate := len(syncer.changed)

	published, err := service.PublishPost(ctx, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, post.StatusPublished, published.Status)
	require.NotNil(t, published.PublishedAt)
	assert.Len(t, syncer.changed, eventsAfterCreate+1)

	// Already published: nothing changes, nothing propagates.
	_, err = service.PublishPost(ctx, draft.ID)
	require.NoError(t, err)
	assert.Len(t, syncer.changed, eventsAfterCreate+1)
}

/*
TestService_DeletePost soft-deletes and emits the purge event.
*/
func TestService_DeletePost(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepository()
	service, syncer := newTestService(repo)

	p := &post.Post{Title: "Ephemeral"}
	require.NoError(t, service.CreatePost(ctx, p))

	require.NoError(t, service.DeletePost(ctx, p.ID))
	assert.Equal(t, []string{p.ID}, syncer.deleted)

	_, err := service.GetPost(ctx, p.ID)
	require.Error(t, err)
}

/*
TestService_ListItems exposes the live catalogue as collection items.
*/
func TestService_ListItems(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepository()
	service, _ := newTestService(repo)

	p := &post.Post{Title: "Candidate", Featured: true}
	require.NoError(t, service.CreatePost(ctx, p))

	items, err := service.ListItems(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, p.ID, items[0].ID)
	assert.Equal(t, true, items[0].Attributes["featured"])
}
