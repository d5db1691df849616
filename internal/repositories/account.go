package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-accounts/internal/logger"
	"github.com/sbilibin2017/gw-accounts/internal/models"
)

// ErrUniqueViolation is returned when an insert loses the race against a
// concurrent registration and the database unique constraint fires. The
// wrapped message carries the constraint name so callers can attribute the
// failure to a field.
var ErrUniqueViolation = errors.New("unique constraint violation")

const pgUniqueViolationCode = "23505"

type AccountReadRepository struct {
	db *sqlx.DB
}

func NewAccountReadRepository(db *sqlx.DB) *AccountReadRepository {
	return &AccountReadRepository{db: db}
}

// GetByUsernameOrEmail returns the account matching the given username
// and/or email, or nil when no such account exists.
func (r *AccountReadRepository) GetByUsernameOrEmail(ctx context.Context, username, email *string) (*models.AccountDB, error) {
	const query = `
		SELECT account_id, username, email, password_hash, profile_picture, is_active, created_at, updated_at
		FROM accounts
		WHERE ($1::VARCHAR IS NULL OR username = $1)
		  AND ($2::VARCHAR IS NULL OR email = $2)
		LIMIT 1
	`

	var account models.AccountDB
	err := r.db.GetContext(ctx, &account, query, username, email)

	// Log with query in single line
	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{username, email},
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &account, nil
}

// GetByID returns the account with the given id, or nil when it is unknown.
func (r *AccountReadRepository) GetByID(ctx context.Context, accountID uuid.UUID) (*models.AccountDB, error) {
	const query = `
		SELECT account_id, username, email, password_hash, profile_picture, is_active, created_at, updated_at
		FROM accounts
		WHERE account_id = $1
	`

	var account models.AccountDB
	err := r.db.GetContext(ctx, &account, query, accountID)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{accountID},
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &account, nil
}

type AccountWriteRepository struct {
	db *sqlx.DB
}

func NewAccountWriteRepository(db *sqlx.DB) *AccountWriteRepository {
	return &AccountWriteRepository{db: db}
}

// Save inserts a new account. A unique-constraint conflict is reported as
// ErrUniqueViolation so callers can fold a lost registration race into the
// same error path as a failed pre-check. Accounts are never updated through
// this repository.
func (r *AccountWriteRepository) Save(ctx context.Context, account *models.AccountDB) error {
	const query = `
		INSERT INTO accounts (account_id, username, email, password_hash, profile_picture, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
	`
	args := []any{
		account.AccountID,
		account.Username,
		account.Email,
		account.PasswordHash,
		account.ProfilePicture,
		account.IsActive,
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	// Log with query in single line; the password hash is not logged
	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{account.AccountID, account.Username, account.Email},
		"result", rowsAffected,
		"error", err,
	)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolationCode {
		return fmt.Errorf("%w: %s", ErrUniqueViolation, pgErr.ConstraintName)
	}

	return err
}
