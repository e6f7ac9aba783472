package jobs

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/kaamsetu/gigwork-backend/pkg/db/models"
	"github.com/kaamsetu/gigwork-backend/pkg/enums"
)

var (
	// ErrJobNotOpen is returned when a guarded transition finds the job no
	// longer open (already hired or completed, possibly by a concurrent accept).
	ErrJobNotOpen = errors.New("job is not open")
	// ErrJobNotOngoing is returned when completion finds the job not in the
	// ongoing state.
	ErrJobNotOngoing = errors.New("job is not ongoing")
)

// Repository exposes job and bid persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a jobs repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) isPostgres() bool {
	return r.db.Dialector.Name() == "postgres"
}

// Create inserts a new job.
func (r *Repository) Create(ctx context.Context, job *models.Job) error {
	return r.db.WithContext(ctx).Create(job).Error
}

// FindByID loads a job by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Job, error) {
	var job models.Job
	if err := r.db.WithContext(ctx).First(&job, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &job, nil
}

// Search returns matching jobs newest-first, capped at limit. Category
// matching is any-of against the job's category list; the overlap operator
// is only available on Postgres, so other dialects (sqlite in tests) filter
// the small candidate set in memory.
func (r *Repository) Search(ctx context.Context, criteria SearchCriteria, limit int) ([]models.Job, error) {
	q := r.db.WithContext(ctx).Model(&models.Job{})

	if criteria.Status != "" {
		q = q.Where("status = ?", criteria.Status)
	}
	if criteria.Urgency != "" {
		q = q.Where("urgency = ?", criteria.Urgency)
	}
	if criteria.BudgetMin != nil {
		q = q.Where("budget >= ?", criteria.BudgetMin)
	}
	if criteria.BudgetMax != nil {
		q = q.Where("budget <= ?", criteria.BudgetMax)
	}
	if criteria.Location != "" {
		if r.isPostgres() {
			q = q.Where("address_line ILIKE ?", "%"+criteria.Location+"%")
		} else {
			q = q.Where("LOWER(address_line) LIKE ?", "%"+strings.ToLower(criteria.Location)+"%")
		}
	}

	pushedCategories := false
	if len(criteria.Categories) > 0 && r.isPostgres() {
		q = q.Where("category && ?", pq.Array(criteria.Categories))
		pushedCategories = true
	}

	q = q.Order("created_at DESC")
	if limit > 0 && (pushedCategories || len(criteria.Categories) == 0) {
		q = q.Limit(limit)
	}

	var jobs []models.Job
	if err := q.Find(&jobs).Error; err != nil {
		return nil, err
	}

	if len(criteria.Categories) > 0 && !pushedCategories {
		jobs = filterByAnyCategory(jobs, criteria.Categories)
		if limit > 0 && len(jobs) > limit {
			jobs = jobs[:limit]
		}
	}
	return jobs, nil
}

// ListByCategory returns open jobs whose category list contains the value,
// newest-first and uncapped.
func (r *Repository) ListByCategory(ctx context.Context, category string) ([]models.Job, error) {
	q := r.db.WithContext(ctx).
		Model(&models.Job{}).
		Where("status = ?", enums.JobStatusOpen).
		Order("created_at DESC")

	if r.isPostgres() {
		q = q.Where("? = ANY(category)", category)
		var jobs []models.Job
		if err := q.Find(&jobs).Error; err != nil {
			return nil, err
		}
		return jobs, nil
	}

	var jobs []models.Job
	if err := q.Find(&jobs).Error; err != nil {
		return nil, err
	}
	return filterByAnyCategory(jobs, []string{category}), nil
}

// InsertBid appends a bid to the job's bid list.
func (r *Repository) InsertBid(ctx context.Context, bid *models.JobBid) error {
	return r.db.WithContext(ctx).Create(bid).Error
}

// ListBids returns a job's bids, oldest-first.
func (r *Repository) ListBids(ctx context.Context, jobID uuid.UUID) ([]models.JobBid, error) {
	var bids []models.JobBid
	err := r.db.WithContext(ctx).
		Where("job_id = ?", jobID).
		Order("created_at ASC").
		Find(&bids).Error
	if err != nil {
		return nil, err
	}
	return bids, nil
}

// FindBid loads a single bid.
func (r *Repository) FindBid(ctx context.Context, id uuid.UUID) (*models.JobBid, error) {
	var bid models.JobBid
	if err := r.db.WithContext(ctx).First(&bid, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &bid, nil
}

// AcceptBid performs the hire transition in one transaction. The update is
// guarded by status = 'open' so concurrent accepts conflict on the guard
// instead of overwriting each other; the losing caller gets ErrJobNotOpen.
func (r *Repository) AcceptBid(ctx context.Context, jobID, bidID, workerID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Job{}).
			Where("id = ? AND status = ?", jobID, enums.JobStatusOpen).
			Updates(map[string]any{
				"status":       enums.JobStatusOngoing,
				"hired_worker": workerID,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrJobNotOpen
		}

		if err := tx.Model(&models.JobBid{}).
			Where("id = ?", bidID).
			Update("status", enums.BidStatusAccepted).Error; err != nil {
			return err
		}

		return tx.Model(&models.JobBid{}).
			Where("job_id = ? AND id <> ? AND status = ?", jobID, bidID, enums.BidStatusActive).
			Update("status", enums.BidStatusRejected).Error
	})
}

// CompleteJob marks an ongoing job completed. Guarded by status = 'ongoing'.
func (r *Repository) CompleteJob(ctx context.Context, jobID, ownerID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Model(&models.Job{}).
		Where("id = ? AND created_by = ? AND status = ?", jobID, ownerID, enums.JobStatusOngoing).
		Update("status", enums.JobStatusCompleted)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrJobNotOngoing
	}
	return nil
}

func filterByAnyCategory(jobs []models.Job, wanted []string) []models.Job {
	want := make(map[string]struct{}, len(wanted))
	for _, c := range wanted {
		want[strings.ToLower(strings.TrimSpace(c))] = struct{}{}
	}
	out := jobs[:0]
	for _, job := range jobs {
		for _, c := range job.Category {
			if _, ok := want[strings.ToLower(c)]; ok {
				out = append(out, job)
				break
			}
		}
	}
	return out
}
