package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/innovatefest/hackathon-api/internal/models"
)

// TeamRepository defines the interface for team data access. Teams are
// returned with their members loaded.
type TeamRepository interface {
	Create(ctx context.Context, team *models.Team) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Team, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Team, error)
	NameExists(ctx context.Context, name string) (bool, error)
	Search(ctx context.Context, query string, limit int) ([]models.Team, error)
	Update(ctx context.Context, team *models.Team) error
	ListByJudge(ctx context.Context, judgeID string) ([]models.Team, error)
}

// ScoreRepository defines the interface for score data access
type ScoreRepository interface {
	Create(ctx context.Context, score *models.Score) error
	ListByTeam(ctx context.Context, teamID uuid.UUID) ([]models.Score, error)
	Leaderboard(ctx context.Context) ([]models.LeaderboardEntry, error)
}

// AssignmentRepository defines the interface for judge assignments
type AssignmentRepository interface {
	Assign(ctx context.Context, judgeID string, teamID uuid.UUID) (bool, error)
}

// CertificateRepository defines the interface for certificate data access
type CertificateRepository interface {
	Create(ctx context.Context, cert *models.Certificate) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Certificate, error)
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
}

// StatsRepository computes dashboard aggregates
type StatsRepository interface {
	Dashboard(ctx context.Context) (*models.DashboardStats, error)
}

// TransactionManager defines the interface for database transaction management
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(repos *Repositories) error) error
}

// Repositories groups all repository interfaces
type Repositories struct {
	Team        TeamRepository
	Score       ScoreRepository
	Assignment  AssignmentRepository
	Certificate CertificateRepository
	User        UserRepository
	Stats       StatsRepository
	Tx          TransactionManager
}
