package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"phonebook/internal/model"
	"phonebook/internal/repository"
	"phonebook/internal/utils"
)

var (
	// ErrLoginTaken is a field-level registration failure on "login"
	ErrLoginTaken = errors.New("user with this login has already created")

	// ErrInvalidCredentials covers both an unknown login and a password
	// mismatch; callers must not be able to tell them apart.
	ErrInvalidCredentials = errors.New("incorrect login or password")

	// ErrUserNotFound means a token carried a login that no longer resolves
	// to a user (e.g. the account was deleted after the token was issued).
	ErrUserNotFound = errors.New("user not found")
)

// AuthService handles registration, the credential login path and the
// bearer-token request path of authentication.
type AuthService interface {
	Register(ctx context.Context, login, password string) (string, error)
	Login(ctx context.Context, login, password string) (string, error)
	UserByLogin(ctx context.Context, login string) (*model.User, error)
}

type authService struct {
	userRepo repository.UserRepository
	jwtUtil  *utils.JWTUtil
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repository.UserRepository, jwtUtil *utils.JWTUtil) AuthService {
	return &authService{
		userRepo: userRepo,
		jwtUtil:  jwtUtil,
	}
}

// Register creates a new account and returns a token for it. Login uniqueness
// is checked before the insert for the common case; the store's unique
// constraint closes the race between concurrent duplicate registrations, and
// its violation surfaces as the same ErrLoginTaken.
func (s *authService) Register(ctx context.Context, login, password string) (string, error) {
	existing, err := s.userRepo.FindByLogin(ctx, login)
	if err != nil {
		return "", fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return "", ErrLoginTaken
	}

	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := &model.User{
		Login:        login,
		PasswordHash: hashedPassword,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateLogin) {
			return "", ErrLoginTaken
		}
		return "", fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.jwtUtil.GenerateToken(user.Login)
	if err != nil {
		return "", fmt.Errorf("user created, but failed to generate token: %w", err)
	}
	return token, nil
}

// Login authenticates a credential pair and returns a token. An unknown
// login and a wrong password produce the same error.
func (s *authService) Login(ctx context.Context, login, password string) (string, error) {
	user, err := s.userRepo.FindByLogin(ctx, login)
	if err != nil {
		return "", fmt.Errorf("error finding user by login: %w", err)
	}
	if user == nil {
		return "", ErrInvalidCredentials
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return "", ErrInvalidCredentials
	}

	token, err := s.jwtUtil.GenerateToken(user.Login)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return token, nil
}

// UserByLogin resolves a verified token login into a user. Returns
// ErrUserNotFound when the account no longer exists.
func (s *authService) UserByLogin(ctx context.Context, login string) (*model.User, error) {
	user, err := s.userRepo.FindByLogin(ctx, login)
	if err != nil {
		return nil, fmt.Errorf("error finding user by login: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}
