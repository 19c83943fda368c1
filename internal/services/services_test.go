package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/innovatefest/hackathon-api/internal/auth"
	"github.com/innovatefest/hackathon-api/internal/database/databasetest"
	"github.com/innovatefest/hackathon-api/internal/logger"
	"github.com/innovatefest/hackathon-api/internal/models"
	"github.com/innovatefest/hackathon-api/internal/repository"
	"github.com/innovatefest/hackathon-api/internal/roster/rostertest"
	"github.com/innovatefest/hackathon-api/pkg/config"
)

const testEvent = "InnovateFest 2025"

type fixture struct {
	svc   *Services
	repos *repository.Repositories
}

func setup(t *testing.T) *fixture {
	t.Helper()
	db := databasetest.New(t)
	repos := repository.NewRepositories(db.DB)
	cfg := &config.Config{EventName: testEvent, MaxImportRows: 100}
	svc := NewServicesWithRepositories(repos, Dependencies{
		Config: cfg,
		JWT:    auth.NewJWTService("test-secret", time.Hour),
		Logger: logger.NewNop(),
	})
	return &fixture{svc: svc, repos: repos}
}

// importTeams imports valid teams and returns their ids by name
func (f *fixture) importTeams(t *testing.T, names ...string) map[string]uuid.UUID {
	t.Helper()
	teams := make([]rostertest.Team, len(names))
	for i, n := range names {
		teams[i] = rostertest.Valid(n)
	}
	report, err := f.svc.Roster.Import(context.Background(), rostertest.CSV(teams...), "teams.csv")
	require.NoError(t, err)
	require.Empty(t, report.Errors)

	found, err := f.svc.Teams.Search(context.Background(), "")
	require.NoError(t, err)
	ids := make(map[string]uuid.UUID, len(found))
	for _, team := range found {
		ids[team.Name] = team.ID
	}
	return ids
}

// addJudge stores a judge account without hashing a real password
func (f *fixture) addJudge(t *testing.T, username string) {
	t.Helper()
	user := &models.User{Username: username, PasswordHash: "unused", Role: string(models.RoleJudge)}
	require.NoError(t, f.repos.User.Create(context.Background(), user))
}

func (f *fixture) certificateCount(t *testing.T) int {
	t.Helper()
	stats, err := f.repos.Stats.Dashboard(context.Background())
	require.NoError(t, err)
	return stats.CertificatesIssued
}

func sampleScores() map[string]float64 {
	return map[string]float64{
		"innovation":   8,
		"technical":    7,
		"feasibility":  9,
		"presentation": 6,
		"impact":       8,
	}
}
