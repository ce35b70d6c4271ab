// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwellhq.com

package collection

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/inkwellhq/inkwell/internal/platform/database/schema"
	"github.com/inkwellhq/inkwell/internal/platform/dberr"
)

// # PostgreSQL Repository

// PostgresRepository implements [Repository] using pgx.
//
// A collection is stored as one row in core.collection plus one row per
// member in core.collectionpost, ordered by sortorder. Reads hydrate the
// membership with a lateral array aggregate so listing stays a single
// round-trip.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed collection store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// collectionColumns is the shared SELECT list for entity hydration.
// postids is supplied by the membership lateral join.
var collectionColumns = fmt.Sprintf(
	"c.%s, c.%s, c.%s, c.%s, c.%s, c.%s, c.%s, c.%s, c.%s, c.%s, c.%s, COALESCE(p.postids, '{}')",
	schema.CoreCollection.ID,
	schema.CoreCollection.Title,
	schema.CoreCollection.Slug,
	schema.CoreCollection.Description,
	schema.CoreCollection.Type,
	schema.CoreCollection.Filter,
	schema.CoreCollection.FeatureImage,
	schema.CoreCollection.Deletable,
	schema.CoreCollection.Deleted,
	schema.CoreCollection.CreatedAt,
	schema.CoreCollection.UpdatedAt,
)

var membershipJoin = fmt.Sprintf(`
	LEFT JOIN LATERAL (
		SELECT array_agg(cp.%s ORDER BY cp.%s) AS postids
		FROM %s cp
		WHERE cp.%s = c.%s
	) p ON TRUE`,
	schema.CoreCollectionPost.PostID,
	schema.CoreCollectionPost.SortOrder,
	schema.CoreCollectionPost.Table,
	schema.CoreCollectionPost.CollectionID,
	schema.CoreCollection.ID,
)

// scanner abstracts pgx.Row and pgx.Rows for shared hydration.
type scanner interface {
	Scan(dest ...any) error
}

// scanCollection hydrates one entity from the shared column list, with
// optional extra destinations (the window-function total).
func scanCollection(row scanner, extra ...any) (*Collection, error) {
	var record Record
	var description, filter, featureImage *string

	dest := []any{
		&record.ID, &record.Title, &record.Slug, &description,
		&record.Type, &filter, &featureImage,
		&record.Deletable, &record.Deleted,
		&record.CreatedAt, &record.UpdatedAt, &record.PostIDs,
	}
	dest = append(dest, extra...)

	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	if description != nil {
		record.Description = *description
	}
	if filter != nil {
		record.Filter = *filter
	}
	if featureImage != nil {
		record.FeatureImage = *featureImage
	}

	return FromRecord(record), nil
}

// nullableText maps the empty string onto SQL NULL.
func nullableText(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// # Retrieval

/*
List returns a filtered and paginated list of collections.

Description: Uses ILIKE for title search and COUNT(*) OVER() for total
metadata; membership arrives through the lateral membership aggregate.

Parameters:
  - context: context.Context
  - filter: Filter
  - limit: int
  - offset: int

Returns:
  - []*Collection: Slice of matching collections
  - int: Total record count
  - error: Database retrieval failures
*/
func (repository *PostgresRepository) List(context context.Context, filter Filter, limit, offset int) ([]*Collection, int, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total
		FROM %s c
		%s
		WHERE TRUE
	`, collectionColumns, schema.CoreCollection.Table, membershipJoin))

	args := []any{}
	argID := 1

	if !filter.IncludeDeleted {
		queryBuilder.WriteString(fmt.Sprintf(" AND c.%s = FALSE", schema.CoreCollection.Deleted))
	}

	if filter.Query != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND c.%s ILIKE $%d", schema.CoreCollection.Title, argID))
		args = append(args, "%"+filter.Query+"%")
		argID++
	}

	if filter.Type != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND c.%s = $%d", schema.CoreCollection.Type, argID))
		args = append(args, string(*filter.Type))
		argID++
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY c.%s ASC LIMIT $%d OFFSET $%d",
		schema.CoreCollection.CreatedAt, argID, argID+1))
	args = append(args, limit, offset)

	rows, err := repository.db.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_collections")
	}
	defer rows.Close()

	var collections []*Collection
	var total int
	for rows.Next() {
		c, err := scanCollection(rows, &total)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_collection")
		}
		collections = append(collections, c)
	}

	return collections, total, nil
}

/*
FindByID retrieves a single collection by its primary key.

Parameters:
  - context: context.Context
  - id: string (ObjectID hex)

Returns:
  - *Collection: Hydrated entity
  - error: ErrNotFound if missing or deleted
*/
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Collection, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s c %s
		WHERE c.%s = $1 AND c.%s = FALSE
	`, collectionColumns, schema.CoreCollection.Table, membershipJoin,
		schema.CoreCollection.ID, schema.CoreCollection.Deleted)

	c, err := scanCollection(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "get_collection_by_id")
	}
	return c, nil
}

/*
FindBySlug retrieves a collection by its unique URL slug.

Parameters:
  - context: context.Context
  - slug: string

Returns:
  - *Collection: Hydrated entity
  - error: ErrNotFound if missing or deleted
*/
func (repository *PostgresRepository) FindBySlug(context context.Context, slug string) (*Collection, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s c %s
		WHERE c.%s = $1 AND c.%s = FALSE
	`, collectionColumns, schema.CoreCollection.Table, membershipJoin,
		schema.CoreCollection.Slug, schema.CoreCollection.Deleted)

	c, err := scanCollection(repository.db.QueryRow(context, query, slug))
	if err != nil {
		return nil, dberr.Wrap(err, "get_collection_by_slug")
	}
	return c, nil
}

/*
ListAutomatic returns every live automatic collection with membership.

Parameters:
  - context: context.Context

Returns:
  - []*Collection: All automatic, non-deleted collections
  - error: Database retrieval failures
*/
func (repository *PostgresRepository) ListAutomatic(context context.Context) ([]*Collection, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s c %s
		WHERE c.%s = $1 AND c.%s = FALSE
		ORDER BY c.%s ASC
	`, collectionColumns, schema.CoreCollection.Table, membershipJoin,
		schema.CoreCollection.Type, schema.CoreCollection.Deleted,
		schema.CoreCollection.CreatedAt)

	rows, err := repository.db.Query(context, query, string(TypeAutomatic))
	if err != nil {
		return nil, dberr.Wrap(err, "list_automatic_collections")
	}
	defer rows.Close()

	var collections []*Collection
	for rows.Next() {
		c, err := scanCollection(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_collection")
		}
		collections = append(collections, c)
	}

	return collections, nil
}

/*
SlugExists reports whether any live collection already uses the slug.

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
			SELECT 1 FROM %s WHERE %s = $1 AND %s = FALSE
		)
	`, schema.CoreCollection.Table, schema.CoreCollection.Slug, schema.CoreCollection.Deleted)

	var exists bool
	if err := repository.db.QueryRow(context, query, slug).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "collection_slug_exists")
	}
	return exists, nil
}

// # Mutation

/*
Create persists a new collection and its membership atomically.

Description: Inserts the collection row, then one membership row per post
with sortorder mirroring the entity's order. The partial unique index on
slug surfaces as [ErrSlugNotUnique].

Parameters:
  - context: context.Context
  - c: *Collection

Returns:
  - error: ErrSlugNotUnique on slug collision, other persistence failures
*/
func (repository *PostgresRepository) Create(context context.Context, c *Collection) error {
	record := c.ToRecord()

	transaction, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_create_collection_tx")
	}
	defer transaction.Rollback(context)

	insertQuery := fmt.Sprintf(`
		INSERT INTO %s (
			%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, schema.CoreCollection.Table,
		schema.CoreCollection.ID, schema.CoreCollection.Title, schema.CoreCollection.Slug,
		schema.CoreCollection.Description, schema.CoreCollection.Type, schema.CoreCollection.Filter,
		schema.CoreCollection.FeatureImage, schema.CoreCollection.Deletable, schema.CoreCollection.Deleted,
		schema.CoreCollection.CreatedAt, schema.CoreCollection.UpdatedAt)

	_, err = transaction.Exec(context, insertQuery,
		record.ID, record.Title, record.Slug,
		nullableText(record.Description), string(record.Type), nullableText(record.Filter),
		nullableText(record.FeatureImage), record.Deletable, record.Deleted,
		record.CreatedAt, record.UpdatedAt,
	)
	if err != nil {
		return wrapSlugConflict(err, "create_collection")
	}

	if err := insertMembership(context, transaction, record.ID, record.PostIDs); err != nil {
		return err
	}

	return transaction.Commit(context)
}

/*
Update rewrites the collection row and replaces its membership atomically.

Parameters:
  - context: context.Context
  - c: *Collection

Returns:
  - error: ErrNotFound if missing, ErrSlugNotUnique on slug collision
*/
func (repository *PostgresRepository) Update(context context.Context, c *Collection) error {
	record := c.ToRecord()

	transaction, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_update_collection_tx")
	}
	defer transaction.Rollback(context)

	updateQuery := fmt.Sprintf(`
		UPDATE %s SET
			%s = $2, %s = $3, %s = $4, %s = $5, %s = $6,
			%s = $7, %s = $8, %s = $9
		WHERE %s = $1
	`, schema.CoreCollection.Table,
		schema.CoreCollection.Title, schema.CoreCollection.Slug, schema.CoreCollection.Description,
		schema.CoreCollection.Type, schema.CoreCollection.Filter,
		schema.CoreCollection.FeatureImage, schema.CoreCollection.Deleted, schema.CoreCollection.UpdatedAt,
		schema.CoreCollection.ID)

	result, err := transaction.Exec(context, updateQuery,
		record.ID, record.Title, record.Slug, nullableText(record.Description),
		string(record.Type), nullableText(record.Filter),
		nullableText(record.FeatureImage), record.Deleted, record.UpdatedAt,
	)
	if err != nil {
		return wrapSlugConflict(err, "update_collection")
	}
	if result.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	// Replace membership wholesale; the entity's order is authoritative.
	deleteQuery := fmt.Sprintf("DELETE FROM %s WHERE %s = $1",
		schema.CoreCollectionPost.Table, schema.CoreCollectionPost.CollectionID)
	if _, err := transaction.Exec(context, deleteQuery, record.ID); err != nil {
		return dberr.Wrap(err, "clear_collection_membership")
	}

	if err := insertMembership(context, transaction, record.ID, record.PostIDs); err != nil {
		return err
	}

	return transaction.Commit(context)
}

/*
RemovePostEverywhere deletes a post's membership rows across all collections.

Parameters:
  - context: context.Context
  - postID: string

Returns:
  - []string: IDs of the collections that contained the post
  - error: Persistence failures
*/
func (repository *PostgresRepository) RemovePostEverywhere(context context.Context, postID string) ([]string, error) {
	query := fmt.Sprintf(`
		DELETE FROM %s WHERE %s = $1 RETURNING %s
	`, schema.CoreCollectionPost.Table, schema.CoreCollectionPost.PostID,
		schema.CoreCollectionPost.CollectionID)

	rows, err := repository.db.Query(context, query, postID)
	if err != nil {
		return nil, dberr.Wrap(err, "remove_post_everywhere")
	}
	defer rows.Close()

	var collectionIDs []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, dberr.Wrap(err, "scan_collection_id")
		}
		collectionIDs = append(collectionIDs, id)
	}

	return collectionIDs, nil
}

// membershipExecutor is the slice of pgx.Tx that insertMembership needs.
type membershipExecutor interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// insertMembership writes one ordered row per member post.
func insertMembership(context context.Context, tx membershipExecutor, collectionID string, postIDs []string) error {
	if len(postIDs) == 0 {
		return nil
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, NOW())
	`, schema.CoreCollectionPost.Table,
		schema.CoreCollectionPost.CollectionID, schema.CoreCollectionPost.PostID,
		schema.CoreCollectionPost.SortOrder, schema.CoreCollectionPost.AddedAt)

	for position, postID := range postIDs {
		if _, err := tx.Exec(context, query, collectionID, postID, position); err != nil {
			return dberr.Wrap(err, "insert_collection_membership")
		}
	}

	return nil
}

// wrapSlugConflict maps a slug unique violation onto the contract error and
// defers everything else to dberr.
func wrapSlugConflict(err error, action string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return ErrSlugNotUnique
	}
	return dberr.Wrap(err, action)
}
