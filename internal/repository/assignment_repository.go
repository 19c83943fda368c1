package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// assignmentRepository implements AssignmentRepository
type assignmentRepository struct {
	db dbExecutor
}

// NewAssignmentRepository creates a new judge assignment repository
func NewAssignmentRepository(db dbExecutor) AssignmentRepository {
	return &assignmentRepository{db: db}
}

// Assign links a team to a judge. It reports false when the pair
// already existed.
func (r *assignmentRepository) Assign(ctx context.Context, judgeID string, teamID uuid.UUID) (bool, error) {
	query := r.db.Rebind(`
		INSERT INTO judge_assignments (judge_id, team_id, assigned_at)
		VALUES (?, ?, ?)
		ON CONFLICT (judge_id, team_id) DO NOTHING
	`)
	result, err := r.db.ExecContext(ctx, query, judgeID, teamID, time.Now().UTC())
	if err != nil {
		return false, fmt.Errorf("failed to assign team: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rowsAffected > 0, nil
}
