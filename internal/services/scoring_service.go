package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/innovatefest/hackathon-api/internal/errors"
	"github.com/innovatefest/hackathon-api/internal/logger"
	"github.com/innovatefest/hackathon-api/internal/metrics"
	"github.com/innovatefest/hackathon-api/internal/models"
	"github.com/innovatefest/hackathon-api/internal/repository"
	"github.com/innovatefest/hackathon-api/internal/scoring"
)

// scoringService implements ScoringService
type scoringService struct {
	repos  *repository.Repositories
	rubric *scoring.Rubric
	logger logger.Logger
}

func newScoringService(repos *repository.Repositories, rubric *scoring.Rubric, log logger.Logger) ScoringService {
	return &scoringService{
		repos:  repos,
		rubric: rubric,
		logger: log,
	}
}

// Rubric returns the criteria judges score against
func (s *scoringService) Rubric() *scoring.Rubric {
	return s.rubric
}

// SubmitScore records one judge's evaluation of one team. A second
// submission for the same pair fails with AlreadyScored; the storage key
// decides, so concurrent submissions cannot both succeed.
func (s *scoringService) SubmitScore(ctx context.Context, teamID, judgeID string, values map[string]float64, comments string) (*models.Score, error) {
	score, err := s.submit(ctx, teamID, judgeID, values, comments)
	if err != nil {
		metrics.ScoresSubmittedTotal.WithLabelValues(strings.ToLower(apperrors.Code(err))).Inc()
		return nil, err
	}

	metrics.ScoresSubmittedTotal.WithLabelValues("accepted").Inc()
	metrics.ScoreTotalHistogram.Observe(float64(score.TotalScore))
	s.logger.Info("Score submitted",
		"team_id", score.TeamID.String(),
		"judge_id", score.JudgeID,
		"total", score.TotalScore,
	)
	return score, nil
}

func (s *scoringService) submit(ctx context.Context, teamID, judgeID string, values map[string]float64, comments string) (*models.Score, error) {
	id, err := uuid.Parse(teamID)
	if err != nil {
		return nil, apperrors.TeamNotFound(teamID)
	}

	criteria, total, err := s.rubric.Evaluate(values)
	if err != nil {
		return nil, err
	}

	if _, err := s.repos.Team.GetByID(ctx, id); err != nil {
		return nil, err
	}
	if err := s.requireJudge(ctx, judgeID); err != nil {
		return nil, err
	}

	score := &models.Score{
		ID:          uuid.New(),
		TeamID:      id,
		JudgeID:     judgeID,
		Criteria:    criteria,
		TotalScore:  total,
		Comments:    strings.TrimSpace(comments),
		SubmittedAt: time.Now().UTC(),
	}
	if err := s.repos.Score.Create(ctx, score); err != nil {
		if errors.Is(err, apperrors.ErrAlreadyScored) {
			return nil, err
		}
		return nil, apperrors.DatabaseError("failed to store score", err).WithOperation("SubmitScore")
	}
	return score, nil
}

// ListAssignedTeams returns the judge's teams with hasScored set
func (s *scoringService) ListAssignedTeams(ctx context.Context, judgeID string) ([]models.Team, error) {
	if err := s.requireJudge(ctx, judgeID); err != nil {
		return nil, err
	}

	teams, err := s.repos.Team.ListByJudge(ctx, judgeID)
	if err != nil {
		return nil, apperrors.DatabaseError("failed to list assigned teams", err).WithOperation("ListAssignedTeams")
	}
	if teams == nil {
		teams = []models.Team{}
	}
	return teams, nil
}

// AssignTeams assigns every team to the judge and returns how many
// assignments are new. All ids are resolved before anything is written.
func (s *scoringService) AssignTeams(ctx context.Context, judgeID string, teamIDs []string) (int, error) {
	if len(teamIDs) == 0 {
		return 0, apperrors.EmptySelection()
	}
	if err := s.requireJudge(ctx, judgeID); err != nil {
		return 0, err
	}

	ids, err := resolveTeams(ctx, s.repos.Team, teamIDs)
	if err != nil {
		return 0, err
	}

	assigned := 0
	err = s.repos.Tx.WithTransaction(ctx, func(tx *repository.Repositories) error {
		for _, t := range ids {
			created, err := tx.Assignment.Assign(ctx, judgeID, t.ID)
			if err != nil {
				return err
			}
			if created {
				assigned++
			}
		}
		return nil
	})
	if err != nil {
		return 0, apperrors.DatabaseError("failed to assign teams", err).WithOperation("AssignTeams")
	}

	s.logger.Info("Teams assigned", "judge_id", judgeID, "requested", len(ids), "assigned", assigned)
	return assigned, nil
}

// requireJudge fails with JudgeNotFound unless judgeID names a judge account
func (s *scoringService) requireJudge(ctx context.Context, judgeID string) error {
	user, err := s.repos.User.GetByUsername(ctx, judgeID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.JudgeNotFound(judgeID)
		}
		return apperrors.DatabaseError("failed to look up judge", err).WithOperation("requireJudge")
	}
	if !user.IsJudge() {
		return apperrors.JudgeNotFound(judgeID)
	}
	return nil
}

// resolveTeams parses and loads the requested teams, collapsing repeated
// ids and keeping first-occurrence order. Any id that does not resolve
// fails the whole call with UnknownTeam.
func resolveTeams(ctx context.Context, teams repository.TeamRepository, teamIDs []string) ([]models.Team, error) {
	seen := make(map[uuid.UUID]struct{}, len(teamIDs))
	ids := make([]uuid.UUID, 0, len(teamIDs))
	for _, raw := range teamIDs {
		id, err := uuid.Parse(strings.TrimSpace(raw))
		if err != nil {
			return nil, apperrors.UnknownTeam(raw)
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	found, err := teams.GetByIDs(ctx, ids)
	if err != nil {
		return nil, apperrors.DatabaseError("failed to load teams", err).WithOperation("resolveTeams")
	}
	byID := make(map[uuid.UUID]models.Team, len(found))
	for _, t := range found {
		byID[t.ID] = t
	}

	ordered := make([]models.Team, 0, len(ids))
	for _, id := range ids {
		t, ok := byID[id]
		if !ok {
			return nil, apperrors.UnknownTeam(id.String())
		}
		ordered = append(ordered, t)
	}
	return ordered, nil
}
