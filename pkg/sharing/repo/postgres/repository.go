package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tendant/simple-sharing/pkg/sharing"
)

// DBTX is an interface that allows us to use either a database connection or a transaction
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// Repository implements sharing.Repository using PostgreSQL
type Repository struct {
	db DBTX
}

// New creates a new PostgreSQL repository
func New(db DBTX) sharing.Repository {
	return &Repository{db: db}
}

// NewWithPool creates a new PostgreSQL repository with connection pool
func NewWithPool(pool *pgxpool.Pool) sharing.Repository {
	return &Repository{db: pool}
}

// Error handling helper
func (r *Repository) handlePostgresError(operation string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return sharing.ErrDuplicateRecord
		case "23503": // foreign_key_violation
			return fmt.Errorf("referenced record not found")
		case "23502": // not_null_violation
			return fmt.Errorf("required field %s is missing", pgErr.ColumnName)
		case "42P01": // undefined_table
			return fmt.Errorf("table does not exist - database migration required")
		default:
			return fmt.Errorf("database error in %s: %s (code: %s)", operation, pgErr.Message, pgErr.Code)
		}
	}

	return fmt.Errorf("database error in %s: %w", operation, err)
}

// Account operations

func (r *Repository) UpsertAccount(ctx context.Context, account *sharing.Account) error {
	query := `
		INSERT INTO account (
			id, name, email, image, social_platform, social_id, social_name,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id)
		DO UPDATE SET
			name = $2, email = $3, image = $4, social_platform = $5,
			social_id = $6, social_name = $7, updated_at = $9`

	_, err := r.db.Exec(ctx, query,
		account.ID, account.Name, account.Email, account.Image,
		account.SocialPlatform, account.SocialID, account.SocialName,
		account.CreatedAt, account.UpdatedAt)

	if err != nil {
		return r.handlePostgresError("upsert account", err)
	}

	return nil
}

func (r *Repository) GetAccountByName(ctx context.Context, name string) (*sharing.Account, error) {
	return r.getAccount(ctx, "name = $1", name)
}

func (r *Repository) GetAccountByEmail(ctx context.Context, email string) (*sharing.Account, error) {
	return r.getAccount(ctx, "email = $1", email)
}

func (r *Repository) getAccount(ctx context.Context, where string, arg interface{}) (*sharing.Account, error) {
	query := `
		SELECT id, name, email, image, social_platform, social_id, social_name,
		       created_at, updated_at
		FROM account WHERE ` + where

	var account sharing.Account
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&account.ID, &account.Name, &account.Email, &account.Image,
		&account.SocialPlatform, &account.SocialID, &account.SocialName,
		&account.CreatedAt, &account.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, sharing.ErrAccountNotFound
		}
		return nil, r.handlePostgresError("get account", err)
	}

	return &account, nil
}

func (r *Repository) CountAccountsByNamePrefix(ctx context.Context, prefix string) (int64, error) {
	query := `SELECT count(*) FROM account WHERE name LIKE $1 || '%'`

	var count int64
	if err := r.db.QueryRow(ctx, query, prefix).Scan(&count); err != nil {
		return 0, r.handlePostgresError("count accounts by name prefix", err)
	}

	return count, nil
}

// Token operations

func (r *Repository) UpsertToken(ctx context.Context, token *sharing.Token) error {
	query := `
		INSERT INTO token (
			id, "value", active, created_by, created_for, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id)
		DO UPDATE SET
			"value" = $2, active = $3, created_by = $4, created_for = $5,
			updated_at = $7`

	_, err := r.db.Exec(ctx, query,
		token.ID, token.Value, token.Active, token.CreatedBy, token.CreatedFor,
		token.CreatedAt, token.UpdatedAt)

	if err != nil {
		return r.handlePostgresError("upsert token", err)
	}

	return nil
}

func (r *Repository) GetToken(ctx context.Context, id uuid.UUID) (*sharing.Token, error) {
	query := `
		SELECT id, "value", active, created_by, created_for, created_at, updated_at
		FROM token WHERE id = $1`

	var token sharing.Token
	err := r.db.QueryRow(ctx, query, id).Scan(
		&token.ID, &token.Value, &token.Active, &token.CreatedBy,
		&token.CreatedFor, &token.CreatedAt, &token.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, sharing.ErrTokenNotFound
		}
		return nil, r.handlePostgresError("get token", err)
	}

	return &token, nil
}

func (r *Repository) ListTokensByRecipient(ctx context.Context, recipientID uuid.UUID) ([]*sharing.Token, error) {
	query := `
		SELECT id, "value", active, created_by, created_for, created_at, updated_at
		FROM token WHERE created_for = $1
		ORDER BY created_at`

	rows, err := r.db.Query(ctx, query, recipientID)
	if err != nil {
		return nil, r.handlePostgresError("list tokens by recipient", err)
	}
	defer rows.Close()

	var tokens []*sharing.Token
	for rows.Next() {
		var token sharing.Token
		if err := rows.Scan(
			&token.ID, &token.Value, &token.Active, &token.CreatedBy,
			&token.CreatedFor, &token.CreatedAt, &token.UpdatedAt); err != nil {
			return nil, r.handlePostgresError("scan token", err)
		}
		tokens = append(tokens, &token)
	}
	if err := rows.Err(); err != nil {
		return nil, r.handlePostgresError("list tokens by recipient", err)
	}

	return tokens, nil
}
