package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrDuplicateLogin is returned when an insert hits the unique
	// constraint on users.login.
	ErrDuplicateLogin = errors.New("login already exists")

	// ErrContactNotFound is returned when a contact id is absent from the
	// given owner's set.
	ErrContactNotFound = errors.New("contact not found for owner")
)

// DB is the subset of pgxpool.Pool the repositories need. pgxmock implements
// the same interface, which keeps repository tests off a live database.
type DB interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}
