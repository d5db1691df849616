package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-accounts/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDBWithMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return sqlx.NewDb(db, "pgx"), mock
}

func TestAccountWriteRepository_Save_MapsUniqueViolation(t *testing.T) {
	db, mock := newDBWithMock(t)
	repo := NewAccountWriteRepository(db)

	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "accounts_email_key"}
	mock.ExpectExec("INSERT INTO accounts").WillReturnError(pgErr)

	err := repo.Save(context.Background(), &models.AccountDB{AccountID: uuid.New()})
	assert.ErrorIs(t, err, ErrUniqueViolation)
	assert.Contains(t, err.Error(), "accounts_email_key")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountWriteRepository_Save_PassesThroughOtherErrors(t *testing.T) {
	db, mock := newDBWithMock(t)
	repo := NewAccountWriteRepository(db)

	dbErr := errors.New("connection reset")
	mock.ExpectExec("INSERT INTO accounts").WillReturnError(dbErr)

	err := repo.Save(context.Background(), &models.AccountDB{AccountID: uuid.New()})
	assert.ErrorIs(t, err, dbErr)
	assert.NotErrorIs(t, err, ErrUniqueViolation)
}

func TestAccountReadRepository_GetByUsernameOrEmail_DBError(t *testing.T) {
	db, mock := newDBWithMock(t)
	repo := NewAccountReadRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM accounts").WillReturnError(errors.New("db down"))

	username := "alice"
	account, err := repo.GetByUsernameOrEmail(context.Background(), &username, nil)
	assert.Error(t, err)
	assert.Nil(t, account)
}

func TestAccountReadRepository_GetByID_DBError(t *testing.T) {
	db, mock := newDBWithMock(t)
	repo := NewAccountReadRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM accounts").WillReturnError(errors.New("db down"))

	account, err := repo.GetByID(context.Background(), uuid.New())
	assert.Error(t, err)
	assert.Nil(t, account)
}
