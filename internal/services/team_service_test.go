package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/innovatefest/hackathon-api/internal/errors"
	"github.com/innovatefest/hackathon-api/internal/models"
)

func strPtr(s string) *string { return &s }

func TestSearch(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	f.importTeams(t, "Alpha", "Beta", "Gamma Rays")

	tests := []struct {
		query    string
		expected []string
	}{
		{"", []string{"Alpha", "Beta", "Gamma Rays"}},
		{"  ", []string{"Alpha", "Beta", "Gamma Rays"}},
		{"ALPHA", []string{"Alpha"}},
		{"beta member 3", []string{"Beta"}},
		{"gammarays.m2@", []string{"Gamma Rays"}},
		{"example.com", []string{"Alpha", "Beta", "Gamma Rays"}},
		{"nobody", nil},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			teams, err := f.svc.Teams.Search(ctx, tt.query)
			require.NoError(t, err)
			require.NotNil(t, teams)
			names := make([]string, len(teams))
			for i, team := range teams {
				names[i] = team.Name
			}
			if tt.expected == nil {
				assert.Empty(t, names)
			} else {
				assert.Equal(t, tt.expected, names)
			}
		})
	}
}

func TestGetTeam(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	ids := f.importTeams(t, "Alpha")

	team, err := f.svc.Teams.Get(ctx, ids["Alpha"].String())
	require.NoError(t, err)
	assert.Len(t, team.Members, models.TeamSize)
	assert.NotNil(t, team.Scores)
	require.NotNil(t, team.Lead())
	assert.Equal(t, "Alpha Member 1", team.Lead().Name)

	_, err = f.svc.Teams.Get(ctx, uuid.NewString())
	assert.ErrorIs(t, err, apperrors.ErrTeamNotFound)

	_, err = f.svc.Teams.Get(ctx, "nope")
	assert.ErrorIs(t, err, apperrors.ErrTeamNotFound)
}

func TestUpdateTeam(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	ids := f.importTeams(t, "Alpha")
	id := ids["Alpha"].String()

	team, err := f.svc.Teams.Update(ctx, id, models.TeamPatch{
		GithubLink: strPtr("https://github.com/alpha/project"),
		Track:      strPtr("Health"),
	})
	require.NoError(t, err)
	assert.Equal(t, "https://github.com/alpha/project", team.GithubLink)
	assert.Equal(t, "Health", team.Track)
	assert.Equal(t, "Alpha problem", team.ProblemStatement, "unset fields are kept")

	stored, err := f.svc.Teams.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Health", stored.Track)

	_, err = f.svc.Teams.Update(ctx, id, models.TeamPatch{GithubLink: strPtr("github.com/alpha")})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = f.svc.Teams.Update(ctx, id, models.TeamPatch{VideoLink: strPtr("ftp://videos.example/alpha")})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	cleared, err := f.svc.Teams.Update(ctx, id, models.TeamPatch{GithubLink: strPtr("")})
	require.NoError(t, err)
	assert.Empty(t, cleared.GithubLink)

	_, err = f.svc.Teams.Update(ctx, uuid.NewString(), models.TeamPatch{Track: strPtr("AI")})
	assert.ErrorIs(t, err, apperrors.ErrTeamNotFound)
}

func TestLeaderboardAndExport(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	ids := f.importTeams(t, "Alpha", "Beta", "Gamma")
	f.addJudge(t, "judge1")
	f.addJudge(t, "judge2")

	low := sampleScores()
	low["impact"] = 0
	_, err := f.svc.Scoring.SubmitScore(ctx, ids["Alpha"].String(), "judge1", low, "")
	require.NoError(t, err)
	_, err = f.svc.Scoring.SubmitScore(ctx, ids["Beta"].String(), "judge1", sampleScores(), "")
	require.NoError(t, err)
	_, err = f.svc.Scoring.SubmitScore(ctx, ids["Beta"].String(), "judge2", low, "")
	require.NoError(t, err)

	board, err := f.svc.Teams.Leaderboard(ctx)
	require.NoError(t, err)
	require.Len(t, board, 3)

	assert.Equal(t, "Beta", board[0].TeamName)
	assert.Equal(t, 2, board[0].JudgeCount)
	assert.Equal(t, 68, board[0].TotalScore)
	assert.InDelta(t, 34.0, board[0].AverageScore, 0.001)
	assert.Equal(t, "Alpha", board[1].TeamName)
	assert.Equal(t, "Gamma", board[2].TeamName)
	assert.Zero(t, board[2].JudgeCount)

	var buf bytes.Buffer
	require.NoError(t, f.svc.Teams.ExportLeaderboard(ctx, &buf))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, []string{"team_id", "team_name", "track", "judge_count", "total_score", "average_score"}, records[0])
	assert.Equal(t, []string{ids["Beta"].String(), "Beta", "AI", "2", "68", "34.00"}, records[1])
	assert.Equal(t, "0.00", records[3][5])
}
