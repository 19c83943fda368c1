package services

import (
	"context"

	apperrors "github.com/innovatefest/hackathon-api/internal/errors"
	"github.com/innovatefest/hackathon-api/internal/models"
	"github.com/innovatefest/hackathon-api/internal/repository"
)

// Judging progress labels
const (
	JudgingNotStarted = "Not Started"
	JudgingInProgress = "In Progress"
	JudgingCompleted  = "Completed"
)

type dashboardService struct {
	repos *repository.Repositories
}

func newDashboardService(repos *repository.Repositories) DashboardService {
	return &dashboardService{repos: repos}
}

func (s *dashboardService) Stats(ctx context.Context) (*models.DashboardStats, error) {
	stats, err := s.repos.Stats.Dashboard(ctx)
	if err != nil {
		return nil, apperrors.DatabaseError("failed to compute dashboard stats", err).WithOperation("Stats")
	}
	stats.JudgingStatus = judgingStatus(stats.ScoredTeams, stats.TotalTeams)
	return stats, nil
}

func judgingStatus(scored, total int) string {
	switch {
	case scored == 0:
		return JudgingNotStarted
	case scored >= total:
		return JudgingCompleted
	default:
		return JudgingInProgress
	}
}
