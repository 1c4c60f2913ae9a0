package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"phonebook/internal/model"
)

// UserRepository defines operations for user data
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByLogin(ctx context.Context, login string) (*model.User, error)
	FindByID(ctx context.Context, id int) (*model.User, error)
}

type userRepository struct {
	db DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db DB) UserRepository {
	return &userRepository{db: db}
}

// Create inserts a new user. A unique-constraint violation on login is
// reported as ErrDuplicateLogin so concurrent duplicate registrations cannot
// both succeed.
func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	sql := `INSERT INTO users (login, password_hash, created_at, updated_at)
            VALUES ($1, $2, $3, $4) RETURNING id`
	err := r.db.QueryRow(ctx, sql, user.Login, user.PasswordHash, user.CreatedAt, user.UpdatedAt).Scan(&user.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrDuplicateLogin
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindByLogin retrieves a user by login. A missing user is returned as
// (nil, nil); the service layer decides what absence means.
func (r *userRepository) FindByLogin(ctx context.Context, login string) (*model.User, error) {
	user := &model.User{}
	sql := `SELECT id, login, password_hash, created_at, updated_at FROM users WHERE login = $1`
	err := r.db.QueryRow(ctx, sql, login).Scan(&user.ID, &user.Login, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find user by login: %w", err)
	}
	return user, nil
}

// FindByID retrieves a user by id
func (r *userRepository) FindByID(ctx context.Context, id int) (*model.User, error) {
	user := &model.User{}
	sql := `SELECT id, login, password_hash, created_at, updated_at FROM users WHERE id = $1`
	err := r.db.QueryRow(ctx, sql, id).Scan(&user.ID, &user.Login, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find user by ID: %w", err)
	}
	return user, nil
}
