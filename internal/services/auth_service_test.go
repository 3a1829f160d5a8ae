package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Manohar-jami/Job-Portal-Api/internal/apperrors"
	"github.com/Manohar-jami/Job-Portal-Api/internal/dtos"
	"github.com/Manohar-jami/Job-Portal-Api/internal/models"
)

func TestRegisterRejectsDuplicateUsername(t *testing.T) {
	f := newFixture(t, true)
	f.register(t, "carl", models.RoleCandidate)

	_, err := f.auth.Register(context.Background(), &dtos.RegisterRequest{
		Username: "carl", Email: "other@example.com", Password: "secret", Role: "recruiter",
	})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.KindValidation))

	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Contains(t, appErr.Fields, "username")
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	f := newFixture(t, true)
	_, err := f.auth.Register(context.Background(), &dtos.RegisterRequest{
		Username: "adam", Email: "adam@example.com", Password: "secret", Role: "admin",
	})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.KindValidation))
}

func TestRegisterStoresHashNotPassword(t *testing.T) {
	f := newFixture(t, true)
	user, err := f.auth.Register(context.Background(), &dtos.RegisterRequest{
		Username: "carl", Email: "carl@example.com", Password: "secret", Role: "candidate",
	})
	require.NoError(t, err)
	assert.NotEqual(t, "secret", user.PasswordHash)
	assert.Equal(t, models.RoleCandidate, user.Role)
}

func TestLoginAndAuthenticate(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()
	rita := f.register(t, "rita", models.RoleRecruiter)

	_, err := f.auth.Login(ctx, &dtos.LoginRequest{Username: "rita", Password: "wrong"})
	assert.True(t, apperrors.Is(err, apperrors.KindUnauthorized))
	_, err = f.auth.Login(ctx, &dtos.LoginRequest{Username: "nobody", Password: "x"})
	assert.True(t, apperrors.Is(err, apperrors.KindUnauthorized))

	pair, err := f.auth.Login(ctx, &dtos.LoginRequest{Username: "rita", Password: "pass-rita"})
	require.NoError(t, err)
	require.NotEmpty(t, pair.Access)
	require.NotEmpty(t, pair.Refresh)

	principal, err := f.auth.Authenticate(ctx, pair.Access)
	require.NoError(t, err)
	assert.Equal(t, rita.UserID, principal.UserID)
	assert.Equal(t, models.RoleRecruiter, principal.Role)

	// A refresh token is not an access token.
	_, err = f.auth.Authenticate(ctx, pair.Refresh)
	assert.True(t, apperrors.Is(err, apperrors.KindUnauthorized))

	access, err := f.auth.RefreshAccess(ctx, pair.Refresh)
	require.NoError(t, err)
	_, err = f.auth.Authenticate(ctx, access)
	require.NoError(t, err)

	_, err = f.auth.RefreshAccess(ctx, pair.Access)
	assert.True(t, apperrors.Is(err, apperrors.KindUnauthorized))
	_, err = f.auth.RefreshAccess(ctx, "garbage")
	assert.True(t, apperrors.Is(err, apperrors.KindUnauthorized))
}
