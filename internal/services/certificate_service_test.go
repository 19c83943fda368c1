package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/innovatefest/hackathon-api/internal/errors"
	"github.com/innovatefest/hackathon-api/internal/logger"
	"github.com/innovatefest/hackathon-api/internal/models"
)

func TestGenerateParticipationCertificates(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	ids := f.importTeams(t, "Alpha", "Beta")

	certs, err := f.svc.Certificates.Generate(ctx, []string{ids["Alpha"].String(), ids["Beta"].String()}, "participation")
	require.NoError(t, err)
	require.Len(t, certs, 12)

	unique := make(map[uuid.UUID]struct{}, len(certs))
	for _, c := range certs {
		unique[c.ID] = struct{}{}
		assert.Equal(t, uuid.Version(4), c.ID.Version())
		assert.Equal(t, models.CategoryParticipation, c.Category)
		assert.Equal(t, testEvent, c.EventName)

		view, err := f.svc.Certificates.Verify(ctx, c.ID.String())
		require.NoError(t, err)
		assert.Equal(t, c.ParticipantName, view.ParticipantName)
		assert.Equal(t, c.TeamName, view.TeamName)
	}
	assert.Len(t, unique, 12)
	assert.Equal(t, 12, f.certificateCount(t))
}

func TestGenerateCollapsesDuplicateIDs(t *testing.T) {
	f := setup(t)
	ids := f.importTeams(t, "Alpha")
	alpha := ids["Alpha"].String()

	certs, err := f.svc.Certificates.Generate(context.Background(), []string{alpha, alpha}, models.CategoryFirstPlace)
	require.NoError(t, err)
	assert.Len(t, certs, 6)
}

func TestGenerateRejections(t *testing.T) {
	f := setup(t)
	ids := f.importTeams(t, "Alpha")
	alpha := ids["Alpha"].String()

	tests := []struct {
		name     string
		teamIDs  []string
		category string
		expected error
	}{
		{"empty selection", nil, models.CategoryParticipation, apperrors.ErrEmptySelection},
		{"empty selection beats bad category", []string{}, "Best Haircut", apperrors.ErrEmptySelection},
		{"unknown category", []string{alpha}, "Best Haircut", apperrors.ErrUnknownCategory},
		{"unknown team", []string{alpha, uuid.NewString()}, models.CategoryParticipation, apperrors.ErrUnknownTeam},
		{"malformed team id", []string{"42"}, models.CategoryParticipation, apperrors.ErrUnknownTeam},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			certs, err := f.svc.Certificates.Generate(context.Background(), tt.teamIDs, tt.category)
			assert.ErrorIs(t, err, tt.expected)
			assert.Empty(t, certs)
		})
	}
	assert.Zero(t, f.certificateCount(t))
}

func TestGenerateRollsBackOnCollision(t *testing.T) {
	f := setup(t)
	ids := f.importTeams(t, "Alpha")

	svc := newCertificateService(f.repos, testEvent, logger.NewNop())
	fixed := uuid.New()
	svc.newID = func() (uuid.UUID, error) { return fixed, nil }

	certs, err := svc.Generate(context.Background(), []string{ids["Alpha"].String()}, models.CategoryParticipation)
	assert.ErrorIs(t, err, apperrors.ErrCertificateCollision)
	assert.Nil(t, certs)
	assert.Zero(t, f.certificateCount(t), "no certificate of the batch survives")
}

func TestGenerateCollisionWithEarlierBatch(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	ids := f.importTeams(t, "Alpha", "Beta")

	first, err := f.svc.Certificates.Generate(ctx, []string{ids["Alpha"].String()}, models.CategoryParticipation)
	require.NoError(t, err)

	svc := newCertificateService(f.repos, testEvent, logger.NewNop())
	svc.newID = func() (uuid.UUID, error) { return first[0].ID, nil }

	_, err = svc.Generate(ctx, []string{ids["Beta"].String()}, models.CategoryParticipation)
	assert.ErrorIs(t, err, apperrors.ErrCertificateCollision)
	assert.Equal(t, 6, f.certificateCount(t))
}

func TestVerifyViewHasNoContactDetails(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	ids := f.importTeams(t, "Alpha")

	certs, err := f.svc.Certificates.Generate(ctx, []string{ids["Alpha"].String()}, models.CategoryInnovation)
	require.NoError(t, err)

	view, err := f.svc.Certificates.Verify(ctx, certs[0].ID.String())
	require.NoError(t, err)

	body, err := json.Marshal(view)
	require.NoError(t, err)
	assert.NotContains(t, string(body), "@")
	assert.NotContains(t, string(body), ids["Alpha"].String())

	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &fields))
	assert.ElementsMatch(t,
		[]string{"certificateId", "participantName", "teamName", "certificateType", "eventName", "issuedAt"},
		keys(fields))
}

func TestVerifyUnknown(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.svc.Certificates.Verify(ctx, uuid.NewString())
	assert.ErrorIs(t, err, apperrors.ErrCertificateNotFound)

	_, err = f.svc.Certificates.Verify(ctx, "garbage")
	assert.ErrorIs(t, err, apperrors.ErrCertificateNotFound)
}

func keys(m map[string]interface{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
