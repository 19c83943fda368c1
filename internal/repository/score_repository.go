package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/innovatefest/hackathon-api/internal/errors"
	"github.com/innovatefest/hackathon-api/internal/models"
)

// scoreRepository implements ScoreRepository
type scoreRepository struct {
	db dbExecutor
}

// NewScoreRepository creates a new score repository
func NewScoreRepository(db dbExecutor) ScoreRepository {
	return &scoreRepository{db: db}
}

// Create inserts a score. The (team, judge) primary key makes a second
// score for the same pair fail with AlreadyScored.
func (r *scoreRepository) Create(ctx context.Context, score *models.Score) error {
	if score.ID == uuid.Nil {
		score.ID = uuid.New()
	}
	if score.SubmittedAt.IsZero() {
		score.SubmittedAt = time.Now().UTC()
	}

	query := r.db.Rebind(`
		INSERT INTO scores (id, team_id, judge_id, criteria, total, comments, submitted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	_, err := r.db.ExecContext(ctx, query,
		score.ID, score.TeamID, score.JudgeID, score.Criteria,
		score.TotalScore, score.Comments, score.SubmittedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.AlreadyScored(score.TeamID.String(), score.JudgeID)
		}
		return fmt.Errorf("failed to create score: %w", err)
	}
	return nil
}

// ListByTeam returns every score of a team in submission order
func (r *scoreRepository) ListByTeam(ctx context.Context, teamID uuid.UUID) ([]models.Score, error) {
	query := r.db.Rebind(`
		SELECT id, team_id, judge_id, criteria, total, comments, submitted_at
		FROM scores WHERE team_id = ?
		ORDER BY submitted_at, judge_id
	`)

	scores := []models.Score{}
	if err := r.db.SelectContext(ctx, &scores, query, teamID); err != nil {
		return nil, fmt.Errorf("failed to list scores: %w", err)
	}
	return scores, nil
}

// Leaderboard aggregates scores per team. Teams without scores are
// included with zero judges.
func (r *scoreRepository) Leaderboard(ctx context.Context) ([]models.LeaderboardEntry, error) {
	query := `
		SELECT t.id AS team_id, t.name AS team_name, t.track,
			COUNT(s.judge_id) AS judge_count,
			COALESCE(SUM(s.total), 0) AS total_score
		FROM teams t
		LEFT JOIN scores s ON s.team_id = t.id
		GROUP BY t.id, t.name, t.track
	`

	entries := []models.LeaderboardEntry{}
	if err := r.db.SelectContext(ctx, &entries, query); err != nil {
		return nil, fmt.Errorf("failed to compute leaderboard: %w", err)
	}
	for i := range entries {
		if entries[i].JudgeCount > 0 {
			entries[i].AverageScore = float64(entries[i].TotalScore) / float64(entries[i].JudgeCount)
		}
	}
	return entries, nil
}
