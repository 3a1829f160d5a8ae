package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Manohar-jami/Job-Portal-Api/internal/models"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func TestGormApplicationCreateDuplicate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewGormApplicationRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "applications"`)).
		WillReturnError(&pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"})

	err := repo.Create(context.Background(), &models.Application{JobID: 1, CandidateID: 2, Status: models.StatusApplied})
	assert.ErrorIs(t, err, ErrDuplicate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormApplicationCreate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewGormApplicationRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "applications"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))

	app := &models.Application{JobID: 1, CandidateID: 2, Status: models.StatusApplied}
	require.NoError(t, repo.Create(context.Background(), app))
	assert.Equal(t, uint(5), app.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormJobListEscapesSearch(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewGormJobRepository(db)

	rows := sqlmock.NewRows([]string{"id", "title", "description", "company", "location", "posted_by_id"}).
		AddRow(2, "Back_End Lead", "d", "Acme", "Remote", 1)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "jobs" WHERE LOWER(title) LIKE $1 ORDER BY created_at DESC,id DESC`)).
		WithArgs(`%back\_end%`).
		WillReturnRows(rows)

	jobs, err := repo.List(context.Background(), JobFilter{TitleContains: "Back_End"})
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "Back_End Lead", jobs[0].Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormApplicationGetByIDNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewGormApplicationRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "applications" WHERE "applications"."id" = $1`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetByID(context.Background(), 9)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormApplicationUpdateStatusMissing(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewGormApplicationRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "applications" SET "status"=$1 WHERE id = $2`)).
		WithArgs(sqlmock.AnyArg(), 7).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateStatus(context.Background(), 7, models.StatusAccepted)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormUserCreateDuplicateUsername(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewGormUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "users"`)).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "idx_users_username"})

	err := repo.Create(context.Background(), &models.User{Username: "carl", PasswordHash: "x", Role: models.RoleCandidate})
	assert.ErrorIs(t, err, ErrDuplicate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormApplicationExists(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewGormApplicationRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "applications" WHERE job_id = $1 AND candidate_id = $2`)).
		WithArgs(3, 4).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "applications" WHERE job_id = $1 AND candidate_id = $2`)).
		WithArgs(3, 5).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	exists, err := repo.Exists(context.Background(), 3, 4)
	require.NoError(t, err)
	assert.True(t, exists)
	exists, err = repo.Exists(context.Background(), 3, 5)
	require.NoError(t, err)
	assert.False(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormApplicationListings(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewGormApplicationRepository(db)
	columns := []string{"id", "job_id", "candidate_id", "status"}

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "applications" WHERE candidate_id = $1`)).
		WithArgs(4).
		WillReturnRows(sqlmock.NewRows(columns).AddRow(1, 3, 4, "applied").AddRow(2, 6, 4, "accepted"))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "applications" WHERE job_id = $1`)).
		WithArgs(9).
		WillReturnRows(sqlmock.NewRows(columns))

	mine, err := repo.ListByCandidate(context.Background(), 4)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, uint(6), mine[1].JobID)
	assert.Equal(t, models.StatusAccepted, mine[1].Status)

	// An empty listing is an empty slice, so it renders as [].
	byJob, err := repo.ListByJob(context.Background(), 9)
	require.NoError(t, err)
	assert.NotNil(t, byJob)
	assert.Empty(t, byJob)
	assert.NoError(t, mock.ExpectationsWereMet())
}
