package repository

import (
	"context"
	"fmt"

	"github.com/innovatefest/hackathon-api/internal/models"
)

// statsRepository implements StatsRepository
type statsRepository struct {
	db dbExecutor
}

// NewStatsRepository creates a new stats repository
func NewStatsRepository(db dbExecutor) StatsRepository {
	return &statsRepository{db: db}
}

// Dashboard computes the dashboard counters and the teams-per-track
// histogram. Teams without a track are not bucketed.
func (r *statsRepository) Dashboard(ctx context.Context) (*models.DashboardStats, error) {
	stats := &models.DashboardStats{}

	counts := []struct {
		dest  *int
		query string
	}{
		{&stats.TotalTeams, `SELECT COUNT(*) FROM teams`},
		{&stats.TotalParticipants, `SELECT COUNT(*) FROM members`},
		{&stats.SubmittedProjects, `SELECT COUNT(*) FROM teams WHERE github_link <> ''`},
		{&stats.ScoredTeams, `SELECT COUNT(DISTINCT team_id) FROM scores`},
		{&stats.CertificatesIssued, `SELECT COUNT(*) FROM certificates`},
	}
	for _, c := range counts {
		if err := r.db.GetContext(ctx, c.dest, c.query); err != nil {
			return nil, fmt.Errorf("failed to compute dashboard stats: %w", err)
		}
	}

	stats.TeamsPerTrack = []models.TrackCount{}
	query := `
		SELECT track, COUNT(*) AS count
		FROM teams
		WHERE track <> ''
		GROUP BY track
		ORDER BY count DESC, track
	`
	if err := r.db.SelectContext(ctx, &stats.TeamsPerTrack, query); err != nil {
		return nil, fmt.Errorf("failed to compute teams per track: %w", err)
	}

	return stats, nil
}
