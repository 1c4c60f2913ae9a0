package repository

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"phonebook/internal/model"
)

func TestUserRepository_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewUserRepository(mock)

	now := time.Now()
	user := &model.User{Login: "vasya", PasswordHash: "hashed", CreatedAt: now, UpdatedAt: now}

	mock.ExpectQuery("INSERT INTO users").
		WithArgs("vasya", "hashed", now, now).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(1))

	err = repo.Create(context.Background(), user)

	assert.NoError(t, err)
	assert.Equal(t, 1, user.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Create_DuplicateLogin(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewUserRepository(mock)

	now := time.Now()
	user := &model.User{Login: "vasya", PasswordHash: "hashed", CreatedAt: now, UpdatedAt: now}

	mock.ExpectQuery("INSERT INTO users").
		WithArgs("vasya", "hashed", now, now).
		WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation})

	err = repo.Create(context.Background(), user)

	assert.ErrorIs(t, err, ErrDuplicateLogin)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindByLogin(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewUserRepository(mock)

	now := time.Now()
	mock.ExpectQuery("SELECT id, login, password_hash, created_at, updated_at FROM users WHERE login").
		WithArgs("vasya").
		WillReturnRows(pgxmock.NewRows([]string{"id", "login", "password_hash", "created_at", "updated_at"}).
			AddRow(1, "vasya", "hashed", now, now))

	user, err := repo.FindByLogin(context.Background(), "vasya")

	assert.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, 1, user.ID)
	assert.Equal(t, "vasya", user.Login)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindByLogin_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewUserRepository(mock)

	mock.ExpectQuery("SELECT id, login, password_hash, created_at, updated_at FROM users WHERE login").
		WithArgs("nobody").
		WillReturnError(pgx.ErrNoRows)

	user, err := repo.FindByLogin(context.Background(), "nobody")

	assert.NoError(t, err)
	assert.Nil(t, user)
	assert.NoError(t, mock.ExpectationsWereMet())
}
