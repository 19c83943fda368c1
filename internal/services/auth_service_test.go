package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/innovatefest/hackathon-api/internal/errors"
	"github.com/innovatefest/hackathon-api/internal/models"
)

func TestCreateUserAndLogin(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	user, err := f.svc.Auth.CreateUser(ctx, &models.CreateUserRequest{
		Username: "judge1",
		Password: "s3cret!",
		Role:     models.RoleJudge,
	})
	require.NoError(t, err)
	assert.True(t, user.IsJudge())
	assert.NotEqual(t, "s3cret!", user.PasswordHash)

	resp, err := f.svc.Auth.Login(ctx, "judge1", "s3cret!")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, "judge", resp.Role)

	_, err = f.svc.Auth.Login(ctx, "judge1", "wrong")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

	_, err = f.svc.Auth.Login(ctx, "nobody", "s3cret!")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

	_, err = f.svc.Auth.CreateUser(ctx, &models.CreateUserRequest{
		Username: "judge1",
		Password: "another",
		Role:     models.RoleJudge,
	})
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestEnsureAdmin(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	require.NoError(t, f.svc.Auth.EnsureAdmin(ctx, "", "", ""))
	_, err := f.repos.User.GetByUsername(ctx, "admin")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	require.NoError(t, f.svc.Auth.EnsureAdmin(ctx, "admin", "bootstrap", "admin@example.com"))
	require.NoError(t, f.svc.Auth.EnsureAdmin(ctx, "admin", "different", "admin@example.com"))

	admin, err := f.repos.User.GetByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.True(t, admin.IsAdmin())

	_, err = f.svc.Auth.Login(ctx, "admin", "bootstrap")
	assert.NoError(t, err, "existing admin keeps its password")
}

func TestEnsureJudge(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	require.NoError(t, f.svc.Auth.EnsureJudge(ctx, "judge1", "", ""))
	_, err := f.repos.User.GetByUsername(ctx, "judge1")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	require.NoError(t, f.svc.Auth.EnsureJudge(ctx, "judge1", "judge123", "judge1@example.com"))
	require.NoError(t, f.svc.Auth.EnsureJudge(ctx, "judge1", "other", ""))

	judge, err := f.repos.User.GetByUsername(ctx, "judge1")
	require.NoError(t, err)
	assert.True(t, judge.IsJudge())

	resp, err := f.svc.Auth.Login(ctx, "judge1", "judge123")
	require.NoError(t, err)
	assert.Equal(t, "judge", resp.Role)
}
