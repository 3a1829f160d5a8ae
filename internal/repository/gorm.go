package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/Manohar-jami/Job-Portal-Api/internal/models"
)

// SQLSTATE unique_violation.
const uniqueViolation = "23505"

// NewGormStore wires the three gorm repositories onto one connection.
func NewGormStore(db *gorm.DB) *Store {
	return &Store{
		Users:        NewGormUserRepository(db),
		Jobs:         NewGormJobRepository(db),
		Applications: NewGormApplicationRepository(db),
	}
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

type GormUserRepository struct {
	DB *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{DB: db}
}

func (r *GormUserRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.DB.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *GormUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user %d: %w", id, err)
	}
	return &user, nil
}

func (r *GormUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := r.DB.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user %q: %w", username, err)
	}
	return &user, nil
}

type GormJobRepository struct {
	DB *gorm.DB
}

func NewGormJobRepository(db *gorm.DB) *GormJobRepository {
	return &GormJobRepository{DB: db}
}

func (r *GormJobRepository) Create(ctx context.Context, job *models.Job) error {
	if err := r.DB.WithContext(ctx).Omit("PostedBy").Create(job).Error; err != nil {
		return fmt.Errorf("create job: %w", err)
	}
	return nil
}

func (r *GormJobRepository) GetByID(ctx context.Context, id uint) (*models.Job, error) {
	var job models.Job
	if err := r.DB.WithContext(ctx).First(&job, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get job %d: %w", id, err)
	}
	return &job, nil
}

func (r *GormJobRepository) List(ctx context.Context, filter JobFilter) ([]models.Job, error) {
	q := r.DB.WithContext(ctx).Model(&models.Job{})
	if filter.TitleContains != "" {
		q = q.Where("LOWER(title) LIKE ?", "%"+escapeLike(strings.ToLower(filter.TitleContains))+"%")
	}
	jobs := []models.Job{}
	if err := q.Order("created_at DESC").Order("id DESC").Find(&jobs).Error; err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	return jobs, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes the search text match literally inside a LIKE pattern.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

type GormApplicationRepository struct {
	DB *gorm.DB
}

func NewGormApplicationRepository(db *gorm.DB) *GormApplicationRepository {
	return &GormApplicationRepository{DB: db}
}

func (r *GormApplicationRepository) Create(ctx context.Context, app *models.Application) error {
	if err := r.DB.WithContext(ctx).Omit("Job", "Candidate").Create(app).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("create application: %w", err)
	}
	return nil
}

func (r *GormApplicationRepository) GetByID(ctx context.Context, id uint) (*models.Application, error) {
	var app models.Application
	if err := r.DB.WithContext(ctx).First(&app, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get application %d: %w", id, err)
	}
	return &app, nil
}

func (r *GormApplicationRepository) Exists(ctx context.Context, jobID, candidateID uint) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&models.Application{}).
		Where("job_id = ? AND candidate_id = ?", jobID, candidateID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check application: %w", err)
	}
	return count > 0, nil
}

func (r *GormApplicationRepository) ListByCandidate(ctx context.Context, candidateID uint) ([]models.Application, error) {
	apps := []models.Application{}
	if err := r.DB.WithContext(ctx).Where("candidate_id = ?", candidateID).Find(&apps).Error; err != nil {
		return nil, fmt.Errorf("list applications for candidate %d: %w", candidateID, err)
	}
	return apps, nil
}

func (r *GormApplicationRepository) ListByJob(ctx context.Context, jobID uint) ([]models.Application, error) {
	apps := []models.Application{}
	if err := r.DB.WithContext(ctx).Where("job_id = ?", jobID).Find(&apps).Error; err != nil {
		return nil, fmt.Errorf("list applications for job %d: %w", jobID, err)
	}
	return apps, nil
}

func (r *GormApplicationRepository) UpdateStatus(ctx context.Context, id uint, status models.ApplicationStatus) error {
	res := r.DB.WithContext(ctx).Model(&models.Application{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return fmt.Errorf("update application %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
