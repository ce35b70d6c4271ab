// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwellhq.com

package post

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/inkwellhq/inkwell/internal/platform/database/schema"
	"github.com/inkwellhq/inkwell/internal/platform/dberr"
)

// # PostgreSQL Repository

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed post store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// postColumns is the shared SELECT list for entity hydration.
var postColumns = fmt.Sprintf(
	"%s, %s, %s, %s, %s, %s, %s, %s, %s",
	schema.CorePost.ID,
	schema.CorePost.Title,
	schema.CorePost.Slug,
	schema.CorePost.Status,
	schema.CorePost.Featured,
	schema.CorePost.FeatureImage,
	schema.CorePost.PublishedAt,
	schema.CorePost.CreatedAt,
	schema.CorePost.UpdatedAt,
)

func scanPost(row interface{ Scan(dest ...any) error }, extra ...any) (*Post, error) {
	post := &Post{}
	dest := []any{
		&post.ID, &post.Title, &post.Slug, &post.Status, &post.Featured,
		&post.FeatureImage, &post.PublishedAt, &post.CreatedAt, &post.UpdatedAt,
	}
	dest = append(dest, extra...)

	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return post, nil
}

// # Retrieval

/*
List returns a filtered and paginated list of posts.

Description: Uses ILIKE for title search and COUNT(*) OVER() for total
metadata.

Parameters:
  - context: context.Context
  - filter: Filter
  - limit: int
  - offset: int

Returns:
  - []*Post: Slice of matching posts
  - int: Total record count
  - error: Database retrieval failures
*/
func (repository *PostgresRepository) List(context context.Context, filter Filter, limit, offset int) ([]*Post, int, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total
		FROM %s
		WHERE %s IS NULL
	`, postColumns, schema.CorePost.Table, schema.CorePost.DeletedAt))

	args := []any{}
	argID := 1

	if filter.Query != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND %s ILIKE $%d", schema.CorePost.Title, argID))
		args = append(args, "%"+filter.Query+"%")
		argID++
	}

	if filter.Status != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND %s = $%d", schema.CorePost.Status, argID))
		args = append(args, string(*filter.Status))
		argID++
	}

	if filter.Featured != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND %s = $%d", schema.CorePost.Featured, argID))
		args = append(args, *filter.Featured)
		argID++
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY %s DESC LIMIT $%d OFFSET $%d",
		schema.CorePost.CreatedAt, argID, argID+1))
	args = append(args, limit, offset)

	rows, err := repository.db.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_posts")
	}
	defer rows.Close()

	var posts []*Post
	var total int
	for rows.Next() {
		post, err := scanPost(rows, &total)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_post")
		}
		posts = append(posts, post)
	}

	return posts, total, nil
}

/*
ListLive returns every non-deleted post, oldest first.

Parameters:
  - context: context.Context

Returns:
  - []*Post: All live posts
  - error: Database retrieval failures
*/
func (repository *PostgresRepository) ListLive(context context.Context) ([]*Post, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE %s IS NULL
		ORDER BY %s ASC
	`, postColumns, schema.CorePost.Table, schema.CorePost.DeletedAt, schema.CorePost.CreatedAt)

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_live_posts")
	}
	defer rows.Close()

	var posts []*Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_post")
		}
		posts = append(posts, post)
	}

	return posts, nil
}

/*
FindByID retrieves a single post record by its primary key.

Parameters:
  - context: context.Context
  - id: string (ObjectID hex)

Returns:
  - *Post: Hydrated entity
  - error: ErrNotFound if missing or deleted
*/
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Post, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE %s = $1 AND %s IS NULL
	`, postColumns, schema.CorePost.Table, schema.CorePost.ID, schema.CorePost.DeletedAt)

	post, err := scanPost(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "get_post_by_id")
	}
	return post, nil
}

/*
FindBySlug retrieves a post by its unique URL slug.

Parameters:
  - context: context.Context
  - slug: string

Returns:
  - *Post: Hydrated entity
  - error: ErrNotFound if missing
*/
func (repository *PostgresRepository) FindBySlug(context context.Context, slug string) (*Post, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE %s = $1 AND %s IS NULL
	`, postColumns, schema.CorePost.Table, schema.CorePost.Slug, schema.CorePost.DeletedAt)

	post, err := scanPost(repository.db.QueryRow(context, query, slug))
	if err != nil {
		return nil, dberr.Wrap(err, "get_post_by_slug")
	}
	return post, nil
}

/*
SlugExists reports whether any live post already uses the slug.

Parameters:
  - context: context.Context
  - slug: string

Returns:
  - bool: True when the slug is taken
  - error: Database retrieval failures
*/
func (repository *PostgresRepository) SlugExists(context context.Context, slug string) (bool, error) {
	query := fmt.Sprintf(`
		SELECT EXISTS (
			SELECT 1 FROM %s WHERE %s = $1 AND %s IS NULL
		)
	`, schema.CorePost.Table, schema.CorePost.Slug, schema.CorePost.DeletedAt)

	var exists bool
	if err := repository.db.QueryRow(context, query, slug).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "post_slug_exists")
	}
	return exists, nil
}

// # Mutation

/*
Create inserts a new post record.

Parameters:
  - context: context.Context
  - post: *Post

Returns:
  - error: Conflict on slug collision, other persistence failures
*/
func (repository *PostgresRepository) Create(context context.Context, post *Post) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (
			%s, %s, %s, %s, %s, %s, %s, %s, %s
		) VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING %s, %s
	`, schema.CorePost.Table,
		schema.CorePost.ID, schema.CorePost.Title, schema.CorePost.Slug,
		schema.CorePost.Status, schema.CorePost.Featured, schema.CorePost.FeatureImage,
		schema.CorePost.PublishedAt, schema.CorePost.CreatedAt, schema.CorePost.UpdatedAt,
		schema.CorePost.CreatedAt, schema.CorePost.UpdatedAt)

	err := repository.db.QueryRow(context, query,
		post.ID, post.Title, post.Slug, string(post.Status), post.Featured,
		post.FeatureImage, post.PublishedAt,
	).Scan(&post.CreatedAt, &post.UpdatedAt)

	return dberr.Wrap(err, "create_post")
}

/*
Update modifies post metadata fields.

Parameters:
  - context: context.Context
  - post: *Post

Returns:
  - error: ErrNotFound if missing, other persistence failures
*/
func (repository *PostgresRepository) Update(context context.Context, post *Post) error {
	query := fmt.Sprintf(`
		UPDATE %s SET
			%s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = NOW()
		WHERE %s = $1 AND %s IS NULL
		RETURNING %s
	`, schema.CorePost.Table,
		schema.CorePost.Title, schema.CorePost.Slug, schema.CorePost.Status,
		schema.CorePost.Featured, schema.CorePost.FeatureImage, schema.CorePost.PublishedAt,
		schema.CorePost.UpdatedAt,
		schema.CorePost.ID, schema.CorePost.DeletedAt,
		schema.CorePost.UpdatedAt)

	err := repository.db.QueryRow(context, query,
		post.ID, post.Title, post.Slug, string(post.Status), post.Featured,
		post.FeatureImage, post.PublishedAt,
	).Scan(&post.UpdatedAt)

	return dberr.Wrap(err, "update_post")
}

/*
SoftDelete flags a post as deleted.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: ErrNotFound if missing, other persistence failures
*/
func (repository *PostgresRepository) SoftDelete(context context.Context, id string) error {
	query := fmt.Sprintf(`
		UPDATE %s SET %s = NOW()
		WHERE %s = $1 AND %s IS NULL
	`, schema.CorePost.Table, schema.CorePost.DeletedAt,
		schema.CorePost.ID, schema.CorePost.DeletedAt)

	result, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_post")
	}
	if result.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
