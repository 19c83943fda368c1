package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/innovatefest/hackathon-api/internal/auth"
	apperrors "github.com/innovatefest/hackathon-api/internal/errors"
	"github.com/innovatefest/hackathon-api/internal/logger"
	"github.com/innovatefest/hackathon-api/internal/models"
	"github.com/innovatefest/hackathon-api/internal/repository"
)

// authService implements AuthService
type authService struct {
	repos      *repository.Repositories
	jwtService *auth.JWTService
	logger     logger.Logger
}

func newAuthService(repos *repository.Repositories, jwtService *auth.JWTService, log logger.Logger) AuthService {
	return &authService{
		repos:      repos,
		jwtService: jwtService,
		logger:     log,
	}
}

// Login authenticates a user and returns a token
func (s *authService) Login(ctx context.Context, username, password string) (*models.LoginResponse, error) {
	user, err := s.repos.User.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.Unauthorized("invalid credentials", nil)
		}
		return nil, apperrors.DatabaseError("failed to look up user", err).WithOperation("Login")
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		s.logger.Warn("Failed login", "username", user.Username)
		return nil, apperrors.Unauthorized("invalid credentials", nil)
	}

	token, expiresAt, err := s.jwtService.GenerateToken(user)
	if err != nil {
		return nil, apperrors.InternalError("failed to generate token", err)
	}

	return &models.LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		Role:        user.Role,
		Username:    user.Username,
		ExpiresAt:   expiresAt,
	}, nil
}

// CreateUser creates an admin or judge account
func (s *authService) CreateUser(ctx context.Context, req *models.CreateUserRequest) (*models.User, error) {
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError("failed to hash password", err)
	}

	user := &models.User{
		Username:     strings.TrimSpace(req.Username),
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: hash,
		Role:         string(req.Role),
	}
	if err := s.repos.User.Create(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, err
		}
		return nil, apperrors.DatabaseError("failed to create user", err).WithOperation("CreateUser")
	}

	s.logger.Info("User created", "username", user.Username, "role", user.Role)
	return user, nil
}

// EnsureAdmin creates the bootstrap admin account unless the username is
// empty or already taken. An existing account is left untouched.
func (s *authService) EnsureAdmin(ctx context.Context, username, password, email string) error {
	return s.ensureUser(ctx, models.RoleAdmin, "Administrator", username, password, email)
}

// EnsureJudge creates the bootstrap judge account the same way
func (s *authService) EnsureJudge(ctx context.Context, username, password, email string) error {
	return s.ensureUser(ctx, models.RoleJudge, "Judge", username, password, email)
}

func (s *authService) ensureUser(ctx context.Context, role models.UserRole, name, username, password, email string) error {
	if username == "" || password == "" {
		return nil
	}

	_, err := s.repos.User.GetByUsername(ctx, username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("failed to look up %s: %w", role, err)
	}

	_, err = s.CreateUser(ctx, &models.CreateUserRequest{
		Username: username,
		Email:    email,
		Name:     name,
		Password: password,
		Role:     role,
	})
	if err != nil && !errors.Is(err, apperrors.ErrConflict) {
		return err
	}
	return nil
}
