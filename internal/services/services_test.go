package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Manohar-jami/Job-Portal-Api/internal/auth"
	"github.com/Manohar-jami/Job-Portal-Api/internal/dtos"
	"github.com/Manohar-jami/Job-Portal-Api/internal/models"
	"github.com/Manohar-jami/Job-Portal-Api/internal/repository"
)

type fixture struct {
	store *repository.Store
	auth  *AuthService
	jobs  *JobService
	apps  *ApplicationService
}

func newFixture(t *testing.T, enforceOwnership bool) *fixture {
	t.Helper()
	store := repository.NewMemoryStore()
	return &fixture{
		store: store,
		auth:  NewAuthService(store.Users, auth.NewTokenIssuer("test-secret", 5*time.Minute, time.Hour)),
		jobs:  NewJobService(store.Jobs),
		apps:  NewApplicationService(store.Applications, store.Jobs, enforceOwnership),
	}
}

func (f *fixture) register(t *testing.T, username string, role models.Role) auth.Principal {
	t.Helper()
	user, err := f.auth.Register(context.Background(), &dtos.RegisterRequest{
		Username: username,
		Email:    username + "@example.com",
		Password: "pass-" + username,
		Role:     string(role),
	})
	require.NoError(t, err)
	return auth.Principal{UserID: user.ID, Username: user.Username, Role: user.Role}
}

func (f *fixture) postJob(t *testing.T, owner auth.Principal, title string) *models.Job {
	t.Helper()
	job, err := f.jobs.CreateJob(context.Background(), owner, &dtos.JobCreationRequest{
		Title:       title,
		Description: "Build things",
		Company:     "Acme",
		Location:    "Remote",
	})
	require.NoError(t, err)
	return job
}
