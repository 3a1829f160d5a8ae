package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/Manohar-jami/Job-Portal-Api/internal/apperrors"
	"github.com/Manohar-jami/Job-Portal-Api/internal/auth"
	"github.com/Manohar-jami/Job-Portal-Api/internal/metrics"
	"github.com/Manohar-jami/Job-Portal-Api/internal/models"
	"github.com/Manohar-jami/Job-Portal-Api/internal/repository"
)

const (
	msgJobNotFound          = "Job not found"
	msgJobNotFoundOrNotYour = "Job not found or not posted by you"
	msgApplicationNotFound  = "Application not found"
	msgAlreadyApplied       = "You already applied to this job"
	msgBadStatus            = "Status must be 'accepted' or 'rejected'"
)

type ApplicationService struct {
	Applications repository.ApplicationRepository
	Jobs         repository.JobRepository

	// EnforceJobOwnership limits status updates to the recruiter who posted
	// the job. When false any recruiter may decide any application.
	EnforceJobOwnership bool
}

func NewApplicationService(apps repository.ApplicationRepository, jobs repository.JobRepository, enforceOwnership bool) *ApplicationService {
	return &ApplicationService{
		Applications:        apps,
		Jobs:                jobs,
		EnforceJobOwnership: enforceOwnership,
	}
}

// Apply records a candidate's application with status "applied".
func (s *ApplicationService) Apply(ctx context.Context, caller auth.Principal, jobID uint) (*models.Application, error) {
	if err := requireRole(caller, models.RoleCandidate, "Only candidates can apply."); err != nil {
		return nil, err
	}
	job, err := s.getJob(ctx, jobID, msgJobNotFound)
	if err != nil {
		return nil, err
	}

	exists, err := s.Applications.Exists(ctx, job.ID, caller.UserID)
	if err != nil {
		return nil, apperrors.Internal("failed to apply", err)
	}
	if exists {
		return nil, apperrors.Validation(msgAlreadyApplied, nil)
	}

	app := &models.Application{
		JobID:       job.ID,
		CandidateID: caller.UserID,
		Status:      models.StatusApplied,
	}
	if err := s.Applications.Create(ctx, app); err != nil {
		// A concurrent identical request won the insert.
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.Validation(msgAlreadyApplied, nil)
		}
		return nil, apperrors.Internal("failed to apply", err)
	}
	metrics.ApplicationsSubmitted.Inc()

	zerolog.Ctx(ctx).Info().
		Uint("application_id", app.ID).
		Uint("job_id", job.ID).
		Uint("candidate_id", caller.UserID).
		Msg("application created")
	return app, nil
}

func (s *ApplicationService) ListMine(ctx context.Context, caller auth.Principal) ([]models.Application, error) {
	apps, err := s.Applications.ListByCandidate(ctx, caller.UserID)
	if err != nil {
		return nil, apperrors.Internal("failed to list applications", err)
	}
	return apps, nil
}

// ListApplicants returns the applications for a job the caller posted. A
// missing job and someone else's job look the same to the caller.
func (s *ApplicationService) ListApplicants(ctx context.Context, caller auth.Principal, jobID uint) ([]models.Application, error) {
	if err := requireRole(caller, models.RoleRecruiter, "Only recruiters can view applicants"); err != nil {
		return nil, err
	}
	job, err := s.getJob(ctx, jobID, msgJobNotFoundOrNotYour)
	if err != nil {
		return nil, err
	}
	if job.PostedByID != caller.UserID {
		return nil, apperrors.NotFound(msgJobNotFoundOrNotYour)
	}
	apps, err := s.Applications.ListByJob(ctx, job.ID)
	if err != nil {
		return nil, apperrors.Internal("failed to list applicants", err)
	}
	return apps, nil
}

// UpdateStatus moves an application to accepted or rejected. The source
// status is not checked, so a decision can be revised.
func (s *ApplicationService) UpdateStatus(ctx context.Context, caller auth.Principal, appID uint, status string) (*models.Application, error) {
	if err := requireRole(caller, models.RoleRecruiter, "Only recruiters can update status"); err != nil {
		return nil, err
	}
	app, err := s.Applications.GetByID(ctx, appID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound(msgApplicationNotFound)
		}
		return nil, apperrors.Internal("failed to load application", err)
	}
	if s.EnforceJobOwnership {
		job, err := s.getJob(ctx, app.JobID, msgApplicationNotFound)
		if err != nil {
			return nil, err
		}
		if job.PostedByID != caller.UserID {
			return nil, apperrors.NotFound(msgApplicationNotFound)
		}
	}

	next, ok := models.ParseDecision(status)
	if !ok {
		return nil, apperrors.Validation(msgBadStatus, map[string]string{"status": msgBadStatus})
	}

	if err := s.Applications.UpdateStatus(ctx, app.ID, next); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound(msgApplicationNotFound)
		}
		return nil, apperrors.Internal("failed to update application", err)
	}
	previous := app.Status
	app.Status = next
	metrics.ApplicationDecisions.WithLabelValues(string(next)).Inc()

	zerolog.Ctx(ctx).Info().
		Uint("application_id", app.ID).
		Str("from", string(previous)).
		Str("to", string(next)).
		Uint("recruiter_id", caller.UserID).
		Msg("application status changed")
	return app, nil
}

func (s *ApplicationService) getJob(ctx context.Context, id uint, notFoundMsg string) (*models.Job, error) {
	job, err := s.Jobs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound(notFoundMsg)
		}
		return nil, apperrors.Internal("failed to load job", err)
	}
	return job, nil
}
