package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	apperrors "github.com/innovatefest/hackathon-api/internal/errors"
	"github.com/innovatefest/hackathon-api/internal/logger"
	"github.com/innovatefest/hackathon-api/internal/models"
	"github.com/innovatefest/hackathon-api/internal/repository"
)

// SearchLimit caps the number of teams a search returns
const SearchLimit = 100

// teamService implements TeamService
type teamService struct {
	repos    *repository.Repositories
	validate *validator.Validate
	logger   logger.Logger
}

func newTeamService(repos *repository.Repositories, log logger.Logger) TeamService {
	return &teamService{
		repos:    repos,
		validate: validator.New(),
		logger:   log,
	}
}

// Search matches q against team names, member names and member emails
func (s *teamService) Search(ctx context.Context, query string) ([]models.Team, error) {
	teams, err := s.repos.Team.Search(ctx, strings.TrimSpace(query), SearchLimit)
	if err != nil {
		return nil, apperrors.DatabaseError("failed to search teams", err).WithOperation("Search")
	}
	if teams == nil {
		teams = []models.Team{}
	}
	return teams, nil
}

// Get returns a team with its members and every score it has received
func (s *teamService) Get(ctx context.Context, id string) (*models.Team, error) {
	teamID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperrors.TeamNotFound(id)
	}

	team, err := s.repos.Team.GetByID(ctx, teamID)
	if err != nil {
		return nil, err
	}

	scores, err := s.repos.Score.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, apperrors.DatabaseError("failed to load scores", err).WithOperation("Get")
	}
	if scores == nil {
		scores = []models.Score{}
	}
	team.Scores = scores
	return team, nil
}

// Update applies the editable fields of patch to the team
func (s *teamService) Update(ctx context.Context, id string, patch models.TeamPatch) (*models.Team, error) {
	if err := s.validate.Struct(patch); err != nil {
		return nil, apperrors.ValidationError(describeValidation(err), err)
	}

	teamID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperrors.TeamNotFound(id)
	}

	var team *models.Team
	err = s.repos.Tx.WithTransaction(ctx, func(tx *repository.Repositories) error {
		var err error
		team, err = tx.Team.GetByID(ctx, teamID)
		if err != nil {
			return err
		}
		patch.Apply(team)
		return tx.Team.Update(ctx, team)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Team updated", "team_id", team.ID.String(), "team", team.Name)
	return team, nil
}

// Leaderboard returns every team ordered by average score, best first.
// Ties are broken by team name.
func (s *teamService) Leaderboard(ctx context.Context) ([]models.LeaderboardEntry, error) {
	entries, err := s.repos.Score.Leaderboard(ctx)
	if err != nil {
		return nil, apperrors.DatabaseError("failed to build leaderboard", err).WithOperation("Leaderboard")
	}
	if entries == nil {
		entries = []models.LeaderboardEntry{}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].AverageScore != entries[j].AverageScore {
			return entries[i].AverageScore > entries[j].AverageScore
		}
		return entries[i].TeamName < entries[j].TeamName
	})
	return entries, nil
}

// ExportLeaderboard writes the leaderboard as CSV
func (s *teamService) ExportLeaderboard(ctx context.Context, w io.Writer) error {
	entries, err := s.Leaderboard(ctx)
	if err != nil {
		return err
	}

	writer := csv.NewWriter(w)

	headers := []string{"team_id", "team_name", "track", "judge_count", "total_score", "average_score"}
	if err := writer.Write(headers); err != nil {
		return err
	}

	for _, e := range entries {
		row := []string{
			e.TeamID.String(),
			e.TeamName,
			e.Track,
			strconv.Itoa(e.JudgeCount),
			strconv.Itoa(e.TotalScore),
			strconv.FormatFloat(e.AverageScore, 'f', 2, 64),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// describeValidation turns validator errors into a single readable message
func describeValidation(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}
	parts := make([]string, len(verrs))
	for i, fe := range verrs {
		switch fe.Tag() {
		case "http_url":
			parts[i] = fmt.Sprintf("%s must be an absolute http(s) URL", fe.Field())
		case "max":
			parts[i] = fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
		default:
			parts[i] = fmt.Sprintf("%s is invalid", fe.Field())
		}
	}
	return strings.Join(parts, "; ")
}
