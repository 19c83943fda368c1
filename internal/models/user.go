package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a system user. A judge's username is its judge id.
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	Email        string    `json:"email" db:"email"`
	Name         string    `json:"name" db:"name"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         string    `json:"role" db:"role"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// UserRole represents available user roles
type UserRole string

const (
	RoleAdmin UserRole = "admin"
	RoleJudge UserRole = "judge"
)

// IsAdmin returns true if user has admin role
func (u *User) IsAdmin() bool {
	return u.Role == string(RoleAdmin)
}

// IsJudge returns true if user has judge role
func (u *User) IsJudge() bool {
	return u.Role == string(RoleJudge)
}

// LoginRequest represents a login request
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// CreateUserRequest represents a user creation request
type CreateUserRequest struct {
	Username string   `json:"username" binding:"required,min=3,max=64"`
	Email    string   `json:"email" binding:"omitempty,email"`
	Name     string   `json:"name"`
	Password string   `json:"password" binding:"required,min=6"`
	Role     UserRole `json:"role" binding:"required,oneof=admin judge"`
}

// LoginResponse represents a login response
type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	Role        string    `json:"role"`
	Username    string    `json:"username"`
	ExpiresAt   time.Time `json:"expires_at"`
}
