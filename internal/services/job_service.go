package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Manohar-jami/Job-Portal-Api/internal/apperrors"
	"github.com/Manohar-jami/Job-Portal-Api/internal/auth"
	"github.com/Manohar-jami/Job-Portal-Api/internal/dtos"
	"github.com/Manohar-jami/Job-Portal-Api/internal/metrics"
	"github.com/Manohar-jami/Job-Portal-Api/internal/models"
	"github.com/Manohar-jami/Job-Portal-Api/internal/repository"
)

type JobService struct {
	Jobs repository.JobRepository
}

func NewJobService(jobs repository.JobRepository) *JobService {
	return &JobService{
		Jobs: jobs,
	}
}

// AuthorizePosting fails with Forbidden unless caller is a recruiter.
func (s *JobService) AuthorizePosting(caller auth.Principal) error {
	return requireRole(caller, models.RoleRecruiter, "Only recruiters can post jobs.")
}

func (s *JobService) CreateJob(ctx context.Context, caller auth.Principal, req *dtos.JobCreationRequest) (*models.Job, error) {
	if err := s.AuthorizePosting(caller); err != nil {
		return nil, err
	}
	job := &models.Job{
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		Company:     strings.TrimSpace(req.Company),
		Location:    strings.TrimSpace(req.Location),
		Salary:      req.Salary,
		PostedByID:  caller.UserID,
	}
	if err := s.Jobs.Create(ctx, job); err != nil {
		return nil, apperrors.Internal("failed to create job", err)
	}
	metrics.JobsPosted.Inc()
	zerolog.Ctx(ctx).Info().Uint("job_id", job.ID).Uint("posted_by", caller.UserID).Msg("job created")
	return job, nil
}

// ListJobs returns every job newest first, narrowed to case-insensitive title
// matches when search is set.
func (s *JobService) ListJobs(ctx context.Context, search string) ([]models.Job, error) {
	jobs, err := s.Jobs.List(ctx, repository.JobFilter{TitleContains: search})
	if err != nil {
		return nil, apperrors.Internal("failed to list jobs", err)
	}
	return jobs, nil
}

// requireRole is the precondition every role-gated operation starts with.
func requireRole(caller auth.Principal, want models.Role, message string) error {
	switch caller.Role {
	case models.RoleCandidate, models.RoleRecruiter:
		if caller.Role == want {
			return nil
		}
		return apperrors.Forbidden(message)
	default:
		return apperrors.Forbidden(message)
	}
}
