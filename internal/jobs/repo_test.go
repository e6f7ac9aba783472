package jobs

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/kaamsetu/gigwork-backend/pkg/db/models"
	"github.com/kaamsetu/gigwork-backend/pkg/enums"
)

func setupJobsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	require.NoError(t, err)

	jobs := `
CREATE TABLE IF NOT EXISTS jobs (
  id TEXT PRIMARY KEY,
  created_by TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'open',
  title TEXT NOT NULL,
  description TEXT NOT NULL,
  category TEXT NOT NULL DEFAULT '{}',
  budget NUMERIC NOT NULL,
  address_line TEXT NOT NULL,
  pincode TEXT NOT NULL,
  location TEXT,
  start_date DATETIME NOT NULL,
  end_date DATETIME,
  urgency TEXT NOT NULL DEFAULT 'normal',
  shift_preference TEXT NOT NULL DEFAULT 'flexible',
  notes TEXT NOT NULL DEFAULT '',
  hired_worker TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	bids := `
CREATE TABLE IF NOT EXISTS job_bids (
  id TEXT PRIMARY KEY,
  job_id TEXT NOT NULL,
  worker_id TEXT NOT NULL,
  amount NUMERIC NOT NULL,
  status TEXT NOT NULL DEFAULT 'active',
  created_at DATETIME
);`
	require.NoError(t, db.Exec(jobs).Error)
	require.NoError(t, db.Exec(bids).Error)
	return db
}

func seedJob(t *testing.T, db *gorm.DB, mutate func(*models.Job)) *models.Job {
	t.Helper()
	job := &models.Job{
		ID:              uuid.New(),
		CreatedBy:       uuid.New(),
		Status:          enums.JobStatusOpen,
		Title:           "Fix leaking kitchen tap",
		Description:     "The kitchen tap has been leaking for a week and needs a washer replacement by a plumber.",
		Category:        pq.StringArray{"plumbing"},
		Budget:          decimal.NewFromInt(500),
		AddressLine:     "Bandra West, Mumbai",
		Pincode:         "400050",
		StartDate:       time.Now().UTC(),
		Urgency:         enums.UrgencyNormal,
		ShiftPreference: enums.ShiftFlexible,
	}
	if mutate != nil {
		mutate(job)
	}
	require.NoError(t, db.Create(job).Error)
	return job
}

func TestRepoSearchFilters(t *testing.T) {
	db := setupJobsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	plumbing := seedJob(t, db, nil)
	seedJob(t, db, func(j *models.Job) {
		j.Category = pq.StringArray{"tutoring"}
		j.Budget = decimal.NewFromInt(900)
		j.AddressLine = "Andheri East, Mumbai"
	})
	seedJob(t, db, func(j *models.Job) {
		j.Status = enums.JobStatusCompleted
	})

	min := decimal.NewFromInt(300)
	max := decimal.NewFromInt(600)
	found, err := repo.Search(ctx, SearchCriteria{
		Status:     "open",
		Categories: []string{"plumbing", "cleaning"},
		BudgetMin:  &min,
		BudgetMax:  &max,
	}, 20)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, plumbing.ID, found[0].ID)

	found, err = repo.Search(ctx, SearchCriteria{Status: "open", Location: "mumbai"}, 20)
	require.NoError(t, err)
	assert.Len(t, found, 2)
}

func TestRepoSearchCapsAndOrders(t *testing.T) {
	db := setupJobsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	base := time.Now().UTC().Add(-time.Hour)
	for i := 0; i < 25; i++ {
		created := base.Add(time.Duration(i) * time.Minute)
		seedJob(t, db, func(j *models.Job) {
			j.CreatedAt = created
			j.UpdatedAt = created
		})
	}

	found, err := repo.Search(ctx, SearchCriteria{Status: "open"}, 20)
	require.NoError(t, err)
	require.Len(t, found, 20)
	for i := 1; i < len(found); i++ {
		assert.False(t, found[i-1].CreatedAt.Before(found[i].CreatedAt), "results must be newest-first")
	}

	// category listing is uncapped
	all, err := repo.ListByCategory(ctx, "plumbing")
	require.NoError(t, err)
	assert.Len(t, all, 25)
}

func TestRepoListByCategoryOpenOnly(t *testing.T) {
	db := setupJobsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	open := seedJob(t, db, nil)
	seedJob(t, db, func(j *models.Job) {
		j.Status = enums.JobStatusOngoing
	})
	seedJob(t, db, func(j *models.Job) {
		j.Category = pq.StringArray{"tutoring"}
	})

	found, err := repo.ListByCategory(ctx, "plumbing")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, open.ID, found[0].ID)
}

func TestRepoAcceptBidTransition(t *testing.T) {
	db := setupJobsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	job := seedJob(t, db, nil)
	winner := &models.JobBid{
		ID:       uuid.New(),
		JobID:    job.ID,
		WorkerID: uuid.New(),
		Amount:   decimal.NewFromInt(450),
		Status:   enums.BidStatusActive,
	}
	loser := &models.JobBid{
		ID:       uuid.New(),
		JobID:    job.ID,
		WorkerID: uuid.New(),
		Amount:   decimal.NewFromInt(400),
		Status:   enums.BidStatusActive,
	}
	require.NoError(t, repo.InsertBid(ctx, winner))
	require.NoError(t, repo.InsertBid(ctx, loser))

	require.NoError(t, repo.AcceptBid(ctx, job.ID, winner.ID, winner.WorkerID))

	updated, err := repo.FindByID(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.JobStatusOngoing, updated.Status)
	require.NotNil(t, updated.HiredWorker)
	assert.Equal(t, winner.WorkerID, *updated.HiredWorker)

	bids, err := repo.ListBids(ctx, job.ID)
	require.NoError(t, err)
	statuses := map[uuid.UUID]enums.BidStatus{}
	for _, b := range bids {
		statuses[b.ID] = b.Status
	}
	assert.Equal(t, enums.BidStatusAccepted, statuses[winner.ID])
	assert.Equal(t, enums.BidStatusRejected, statuses[loser.ID])

	// a second accept loses the open-status guard
	err = repo.AcceptBid(ctx, job.ID, loser.ID, loser.WorkerID)
	assert.ErrorIs(t, err, ErrJobNotOpen)
}

func TestRepoCompleteJobGuard(t *testing.T) {
	db := setupJobsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	job := seedJob(t, db, nil)

	err := repo.CompleteJob(ctx, job.ID, job.CreatedBy)
	assert.ErrorIs(t, err, ErrJobNotOngoing, "open jobs cannot be completed")

	worker := uuid.New()
	require.NoError(t, db.Model(&models.Job{}).Where("id = ?", job.ID).Updates(map[string]any{
		"status":       enums.JobStatusOngoing,
		"hired_worker": worker,
	}).Error)

	require.NoError(t, repo.CompleteJob(ctx, job.ID, job.CreatedBy))

	updated, err := repo.FindByID(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.JobStatusCompleted, updated.Status)

	err = repo.CompleteJob(ctx, job.ID, job.CreatedBy)
	assert.ErrorIs(t, err, ErrJobNotOngoing)
}
