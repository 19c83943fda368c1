package services

import (
	"context"
	"io"

	"github.com/jmoiron/sqlx"

	"github.com/innovatefest/hackathon-api/internal/auth"
	"github.com/innovatefest/hackathon-api/internal/logger"
	"github.com/innovatefest/hackathon-api/internal/models"
	"github.com/innovatefest/hackathon-api/internal/repository"
	"github.com/innovatefest/hackathon-api/internal/roster"
	"github.com/innovatefest/hackathon-api/internal/scoring"
	"github.com/innovatefest/hackathon-api/pkg/config"
)

// Services contains all application services
type Services struct {
	Roster       RosterService
	Teams        TeamService
	Scoring      ScoringService
	Certificates CertificateService
	Dashboard    DashboardService
	Auth         AuthService
}

// RosterService imports team rosters
type RosterService interface {
	Import(ctx context.Context, data []byte, filename string) (*models.ImportReport, error)
}

// TeamService defines the interface for the team directory and results
type TeamService interface {
	Search(ctx context.Context, query string) ([]models.Team, error)
	Get(ctx context.Context, id string) (*models.Team, error)
	Update(ctx context.Context, id string, patch models.TeamPatch) (*models.Team, error)
	Leaderboard(ctx context.Context) ([]models.LeaderboardEntry, error)
	ExportLeaderboard(ctx context.Context, w io.Writer) error
}

// ScoringService defines the interface for judging
type ScoringService interface {
	Rubric() *scoring.Rubric
	SubmitScore(ctx context.Context, teamID, judgeID string, criteria map[string]float64, comments string) (*models.Score, error)
	ListAssignedTeams(ctx context.Context, judgeID string) ([]models.Team, error)
	AssignTeams(ctx context.Context, judgeID string, teamIDs []string) (int, error)
}

// CertificateService issues and verifies certificates
type CertificateService interface {
	Generate(ctx context.Context, teamIDs []string, category string) ([]models.Certificate, error)
	Verify(ctx context.Context, certificateID string) (*models.CertificateView, error)
}

// DashboardService computes dashboard statistics
type DashboardService interface {
	Stats(ctx context.Context) (*models.DashboardStats, error)
}

// AuthService defines the interface for authentication business logic
type AuthService interface {
	Login(ctx context.Context, username, password string) (*models.LoginResponse, error)
	CreateUser(ctx context.Context, req *models.CreateUserRequest) (*models.User, error)
	EnsureAdmin(ctx context.Context, username, password, email string) error
	EnsureJudge(ctx context.Context, username, password, email string) error
}

// Dependencies are the collaborators shared by the services
type Dependencies struct {
	Config  *config.Config
	JWT     *auth.JWTService
	Genders *roster.GenderScheme
	Logger  logger.Logger
}

// NewServices creates a new Services instance with all dependencies
func NewServices(db *sqlx.DB, deps Dependencies) *Services {
	return NewServicesWithRepositories(repository.NewRepositories(db), deps)
}

// NewServicesWithRepositories wires the services over existing repositories
func NewServicesWithRepositories(repos *repository.Repositories, deps Dependencies) *Services {
	log := deps.Logger
	if log == nil {
		log = logger.NewNop()
	}
	cfg := deps.Config

	return &Services{
		Roster:       newRosterService(repos, roster.NewValidator(deps.Genders), cfg.MaxImportRows, log),
		Teams:        newTeamService(repos, log),
		Scoring:      newScoringService(repos, scoring.DefaultRubric(), log),
		Certificates: newCertificateService(repos, cfg.EventName, log),
		Dashboard:    newDashboardService(repos),
		Auth:         newAuthService(repos, deps.JWT, log),
	}
}
