package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Manohar-jami/Job-Portal-Api/internal/models"
)

// NewMemoryStore returns in-memory repositories sharing one clock. Creation
// timestamps are strictly increasing so ordering matches insertion order.
func NewMemoryStore() *Store {
	clock := &monotonicClock{}
	return &Store{
		Users:        &MemoryUserRepository{clock: clock, byID: map[uint]models.User{}},
		Jobs:         &MemoryJobRepository{clock: clock, byID: map[uint]models.Job{}},
		Applications: &MemoryApplicationRepository{clock: clock, byID: map[uint]models.Application{}, pairs: map[[2]uint]uint{}},
	}
}

type monotonicClock struct {
	mu   sync.Mutex
	last time.Time
}

func (c *monotonicClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := time.Now().UTC()
	if !now.After(c.last) {
		now = c.last.Add(time.Microsecond)
	}
	c.last = now
	return now
}

type MemoryUserRepository struct {
	mu     sync.RWMutex
	clock  *monotonicClock
	nextID uint
	byID   map[uint]models.User
}

func (r *MemoryUserRepository) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byID {
		if existing.Username == user.Username {
			return ErrDuplicate
		}
	}
	r.nextID++
	user.ID = r.nextID
	user.CreatedAt = r.clock.Now()
	r.byID[user.ID] = *user
	return nil
}

func (r *MemoryUserRepository) GetByID(_ context.Context, id uint) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &user, nil
}

func (r *MemoryUserRepository) GetByUsername(_ context.Context, username string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, user := range r.byID {
		if user.Username == username {
			return &user, nil
		}
	}
	return nil, ErrNotFound
}

type MemoryJobRepository struct {
	mu     sync.RWMutex
	clock  *monotonicClock
	nextID uint
	byID   map[uint]models.Job
}

func (r *MemoryJobRepository) Create(_ context.Context, job *models.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	job.ID = r.nextID
	job.CreatedAt = r.clock.Now()
	r.byID[job.ID] = *job
	return nil
}

func (r *MemoryJobRepository) GetByID(_ context.Context, id uint) (*models.Job, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	job, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &job, nil
}

func (r *MemoryJobRepository) List(_ context.Context, filter JobFilter) ([]models.Job, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	needle := strings.ToLower(filter.TitleContains)
	jobs := []models.Job{}
	for _, job := range r.byID {
		if needle != "" && !strings.Contains(strings.ToLower(job.Title), needle) {
			continue
		}
		jobs = append(jobs, job)
	}
	sort.Slice(jobs, func(i, j int) bool {
		if jobs[i].CreatedAt.Equal(jobs[j].CreatedAt) {
			return jobs[i].ID > jobs[j].ID
		}
		return jobs[i].CreatedAt.After(jobs[j].CreatedAt)
	})
	return jobs, nil
}

type MemoryApplicationRepository struct {
	mu     sync.RWMutex
	clock  *monotonicClock
	nextID uint
	byID   map[uint]models.Application
	pairs  map[[2]uint]uint
}

func (r *MemoryApplicationRepository) Create(_ context.Context, app *models.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := [2]uint{app.JobID, app.CandidateID}
	if _, ok := r.pairs[key]; ok {
		return ErrDuplicate
	}
	r.nextID++
	app.ID = r.nextID
	app.AppliedAt = r.clock.Now()
	r.byID[app.ID] = *app
	r.pairs[key] = app.ID
	return nil
}

func (r *MemoryApplicationRepository) GetByID(_ context.Context, id uint) (*models.Application, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	app, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &app, nil
}

func (r *MemoryApplicationRepository) Exists(_ context.Context, jobID, candidateID uint) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.pairs[[2]uint{jobID, candidateID}]
	return ok, nil
}

func (r *MemoryApplicationRepository) ListByCandidate(_ context.Context, candidateID uint) ([]models.Application, error) {
	return r.filter(func(app models.Application) bool { return app.CandidateID == candidateID }), nil
}

func (r *MemoryApplicationRepository) ListByJob(_ context.Context, jobID uint) ([]models.Application, error) {
	return r.filter(func(app models.Application) bool { return app.JobID == jobID }), nil
}

// filter returns matches in id order, the natural order of the table.
func (r *MemoryApplicationRepository) filter(keep func(models.Application) bool) []models.Application {
	r.mu.RLock()
	defer r.mu.RUnlock()
	apps := []models.Application{}
	for _, app := range r.byID {
		if keep(app) {
			apps = append(apps, app)
		}
	}
	sort.Slice(apps, func(i, j int) bool { return apps[i].ID < apps[j].ID })
	return apps
}

func (r *MemoryApplicationRepository) UpdateStatus(_ context.Context, id uint, status models.ApplicationStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	app, ok := r.byID[id]
	if !ok {
		return ErrNotFound
	}
	app.Status = status
	r.byID[id] = app
	return nil
}
