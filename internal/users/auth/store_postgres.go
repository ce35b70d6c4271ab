// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwellhq.com

package auth

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/inkwellhq/inkwell/internal/platform/database/schema"
	"github.com/inkwellhq/inkwell/internal/platform/dberr"
)

// # PostgreSQL Repositories

// PostgresUserRepository implements [UserRepository] using pgx.
type PostgresUserRepository struct {
	db *pgxpool.Pool
}

// NewPostgresUserRepository constructs a PostgreSQL backed account store.
func NewPostgresUserRepository(db *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

// userColumns is the shared SELECT list for account hydration.
var userColumns = fmt.Sprintf(
	"%s, %s, %s, %s, %s, %s, %s",
	schema.UsersAccount.ID,
	schema.UsersAccount.Name,
	schema.UsersAccount.Email,
	schema.UsersAccount.PasswordHash,
	schema.UsersAccount.Role,
	schema.UsersAccount.CreatedAt,
	schema.UsersAccount.UpdatedAt,
)

func scanUser(row interface{ Scan(dest ...any) error }) (*User, error) {
	user := &User{}
	err := row.Scan(
		&user.ID, &user.Name, &user.Email, &user.PasswordHash,
		&user.Role, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

/*
FindByID retrieves an account by its primary key.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *User: Hydrated entity
  - error: ErrNotFound if missing
*/
func (repository *PostgresUserRepository) FindByID(context context.Context, id string) (*User, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1",
		userColumns, schema.UsersAccount.Table, schema.UsersAccount.ID)

	user, err := scanUser(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "get_user_by_id")
	}
	return user, nil
}

/*
FindByEmail retrieves an account by its email address.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - *User: Hydrated entity
  - error: ErrNotFound if missing
*/
func (repository *PostgresUserRepository) FindByEmail(context context.Context, email string) (*User, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE LOWER(%s) = LOWER($1)",
		userColumns, schema.UsersAccount.Table, schema.UsersAccount.Email)

	user, err := scanUser(repository.db.QueryRow(context, query, email))
	if err != nil {
		return nil, dberr.Wrap(err, "get_user_by_email")
	}
	return user, nil
}

/*
Create inserts a new staff account.

Parameters:
  - context: context.Context
  - user: *User

Returns:
  - error: Conflict on duplicate email, other persistence failures
*/
func (repository *PostgresUserRepository) Create(context context.Context, user *User) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING %s, %s
	`, schema.UsersAccount.Table,
		schema.UsersAccount.ID, schema.UsersAccount.Name, schema.UsersAccount.Email,
		schema.UsersAccount.PasswordHash, schema.UsersAccount.Role,
		schema.UsersAccount.CreatedAt, schema.UsersAccount.UpdatedAt,
		schema.UsersAccount.CreatedAt, schema.UsersAccount.UpdatedAt)

	err := repository.db.QueryRow(context, query,
		user.ID, user.Name, user.Email, user.PasswordHash, string(user.Role),
	).Scan(&user.CreatedAt, &user.UpdatedAt)

	return dberr.Wrap(err, "create_user")
}

/*
Update modifies mutable profile fields.

Parameters:
  - context: context.Context
  - user: *User

Returns:
  - error: ErrNotFound if missing, other persistence failures
*/
func (repository *PostgresUserRepository) Update(context context.Context, user *User) error {
	query := fmt.Sprintf(`
		UPDATE %s SET %s = $2, %s = $3, %s = NOW()
		WHERE %s = $1
		RETURNING %s
	`, schema.UsersAccount.Table,
		schema.UsersAccount.Name, schema.UsersAccount.Role, schema.UsersAccount.UpdatedAt,
		schema.UsersAccount.ID, schema.UsersAccount.UpdatedAt)

	err := repository.db.QueryRow(context, query, user.ID, user.Name, string(user.Role)).Scan(&user.UpdatedAt)
	return dberr.Wrap(err, "update_user")
}

/*
UpdatePassword replaces only the password hash.

Parameters:
  - context: context.Context
  - userID: string
  - newHash: string

Returns:
  - error: Persistence failures
*/
func (repository *PostgresUserRepository) UpdatePassword(context context.Context, userID, newHash string) error {
	query := fmt.Sprintf(`
		UPDATE %s SET %s = $2, %s = NOW() WHERE %s = $1
	`, schema.UsersAccount.Table,
		schema.UsersAccount.PasswordHash, schema.UsersAccount.UpdatedAt, schema.UsersAccount.ID)

	result, err := repository.db.Exec(context, query, userID, newHash)
	if err != nil {
		return dberr.Wrap(err, "update_user_password")
	}
	if result.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

// # Session Repository

// PostgresSessionRepository implements [SessionRepository] using pgx.
type PostgresSessionRepository struct {
	db *pgxpool.Pool
}

// NewPostgresSessionRepository constructs a PostgreSQL backed session store.
func NewPostgresSessionRepository(db *pgxpool.Pool) *PostgresSessionRepository {
	return &PostgresSessionRepository{db: db}
}

/*
Create persists a new tracking session.

Parameters:
  - context: context.Context
  - session: *Session

Returns:
  - error: Persistence failures
*/
func (repository *PostgresSessionRepository) Create(context context.Context, session *Session) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, FALSE, NOW())
		RETURNING %s
	`, schema.UsersSession.Table,
		schema.UsersSession.ID, schema.UsersSession.UserID, schema.UsersSession.TokenHash,
		schema.UsersSession.UserAgent, schema.UsersSession.IPAddress, schema.UsersSession.ExpiresAt,
		schema.UsersSession.IsRevoked, schema.UsersSession.CreatedAt,
		schema.UsersSession.CreatedAt)

	err := repository.db.QueryRow(context, query,
		session.ID, session.UserID, session.TokenHash,
		session.UserAgent, session.IPAddress, session.ExpiresAt,
	).Scan(&session.CreatedAt)

	return dberr.Wrap(err, "create_session")
}

/*
FindByTokenHash returns the live session matching the token hash.

Description: Revoked and expired sessions are filtered at the query level,
so a hit here is always a usable session.

Parameters:
  - context: context.Context
  - tokenHash: string

Returns:
  - *Session: Hydrated entity
  - error: ErrNotFound if absent, revoked, or expired
*/
func (repository *PostgresSessionRepository) FindByTokenHash(context context.Context, tokenHash string) (*Session, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1 AND %s = FALSE AND %s > NOW()
	`,
		schema.UsersSession.ID, schema.UsersSession.UserID, schema.UsersSession.TokenHash,
		schema.UsersSession.UserAgent, schema.UsersSession.IPAddress, schema.UsersSession.ExpiresAt,
		schema.UsersSession.IsRevoked, schema.UsersSession.CreatedAt,
		schema.UsersSession.Table,
		schema.UsersSession.TokenHash, schema.UsersSession.IsRevoked, schema.UsersSession.ExpiresAt)

	session := &Session{}
	err := repository.db.QueryRow(context, query, tokenHash).Scan(
		&session.ID, &session.UserID, &session.TokenHash,
		&session.UserAgent, &session.IPAddress, &session.ExpiresAt,
		&session.IsRevoked, &session.CreatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_session_by_token_hash")
	}
	return session, nil
}

/*
Revoke invalidates a single session.

Parameters:
  - context: context.Context
  - sessionID: string

Returns:
  - error: Persistence failures
*/
func (repository *PostgresSessionRepository) Revoke(context context.Context, sessionID string) error {
	query := fmt.Sprintf("UPDATE %s SET %s = TRUE WHERE %s = $1",
		schema.UsersSession.Table, schema.UsersSession.IsRevoked, schema.UsersSession.ID)

	_, err := repository.db.Exec(context, query, sessionID)
	return dberr.Wrap(err, "revoke_session")
}

/*
RevokeAll invalidates every session belonging to the user.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - error: Persistence failures
*/
func (repository *PostgresSessionRepository) RevokeAll(context context.Context, userID string) error {
	query := fmt.Sprintf("UPDATE %s SET %s = TRUE WHERE %s = $1",
		schema.UsersSession.Table, schema.UsersSession.IsRevoked, schema.UsersSession.UserID)

	_, err := repository.db.Exec(context, query, userID)
	return dberr.Wrap(err, "revoke_all_sessions")
}

/*
RevokeOthers invalidates all of the user's sessions except the current one.

Parameters:
  - context: context.Context
  - userID: string
  - currentSessionID: string

Returns:
  - error: Persistence failures
*/
func (repository *PostgresSessionRepository) RevokeOthers(context context.Context, userID, currentSessionID string) error {
	query := fmt.Sprintf("UPDATE %s SET %s = TRUE WHERE %s = $1 AND %s <> $2",
		schema.UsersSession.Table, schema.UsersSession.IsRevoked,
		schema.UsersSession.UserID, schema.UsersSession.ID)

	_, err := repository.db.Exec(context, query, userID, currentSessionID)
	return dberr.Wrap(err, "revoke_other_sessions")
}

/*
DeleteExpired physically removes dead sessions. Intended for a periodic
maintenance job.

Parameters:
  - context: context.Context

Returns:
  - error: Persistence failures
*/
func (repository *PostgresSessionRepository) DeleteExpired(context context.Context) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE %s <= NOW()",
		schema.UsersSession.Table, schema.UsersSession.ExpiresAt)

	_, err := repository.db.Exec(context, query)
	return dberr.Wrap(err, "delete_expired_sessions")
}
