package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/innovatefest/hackathon-api/internal/errors"
	"github.com/innovatefest/hackathon-api/internal/models"
)

// userRepository implements UserRepository
type userRepository struct {
	db dbExecutor
}

// NewUserRepository creates a new user repository
func NewUserRepository(db dbExecutor) UserRepository {
	return &userRepository{db: db}
}

// GetByID retrieves a user by ID
func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	query := r.db.Rebind(`
		SELECT id, username, email, name, password_hash, role, created_at, updated_at
		FROM users WHERE id = ?
	`)

	user := &models.User{}
	if err := r.db.GetContext(ctx, user, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("user not found", nil)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// GetByUsername retrieves a user by username
func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query := r.db.Rebind(`
		SELECT id, username, email, name, password_hash, role, created_at, updated_at
		FROM users WHERE username = ?
	`)

	user := &models.User{}
	if err := r.db.GetContext(ctx, user, query, username); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound(fmt.Sprintf("user %s not found", username), nil)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// Create creates a new user
func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}

	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	query := r.db.Rebind(`
		INSERT INTO users (id, username, email, name, password_hash, role, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.Username, user.Email, user.Name, user.PasswordHash,
		user.Role, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.Conflict(fmt.Sprintf("username %s is taken", user.Username), nil)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}
