package model

import "time"

// User represents a registered account. The password is stored only as a
// bcrypt hash and is never exposed in JSON responses.
type User struct {
	ID           int       `json:"id"`
	Login        string    `json:"login"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// AuthRequest is the request body for both /login and /register
type AuthRequest struct {
	Login    string `json:"login" binding:"required,min=2,max=100"`
	Password string `json:"password" binding:"required"`
}

// ErrorResponse is the error body shape shared by every endpoint.
// Timestamp is epoch milliseconds.
type ErrorResponse struct {
	Message   string `json:"message"`
	Timestamp int64  `json:"timestamp"`
}
