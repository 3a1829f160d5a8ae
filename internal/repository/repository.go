// Package repository holds the stores behind the identity, job and
// application services. Each store has a gorm implementation backed by
// Postgres and an in-memory one with the same uniqueness rules.
package repository

import (
	"context"
	"errors"

	"github.com/Manohar-jami/Job-Portal-Api/internal/models"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

// JobFilter narrows a listing. An empty TitleContains matches every job.
type JobFilter struct {
	TitleContains string
}

type JobRepository interface {
	Create(ctx context.Context, job *models.Job) error
	GetByID(ctx context.Context, id uint) (*models.Job, error)
	// List returns jobs newest first.
	List(ctx context.Context, filter JobFilter) ([]models.Job, error)
}

type ApplicationRepository interface {
	// Create returns ErrDuplicate when the candidate already applied to the job.
	Create(ctx context.Context, app *models.Application) error
	GetByID(ctx context.Context, id uint) (*models.Application, error)
	Exists(ctx context.Context, jobID, candidateID uint) (bool, error)
	ListByCandidate(ctx context.Context, candidateID uint) ([]models.Application, error)
	ListByJob(ctx context.Context, jobID uint) ([]models.Application, error)
	UpdateStatus(ctx context.Context, id uint, status models.ApplicationStatus) error
}

// Store bundles the three repositories so callers can swap backends at once.
type Store struct {
	Users        UserRepository
	Jobs         JobRepository
	Applications ApplicationRepository
}
