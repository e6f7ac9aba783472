package profiles

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kaamsetu/gigwork-backend/pkg/db/models"
)

// Repository exposes worker profile persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a profiles repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByAccountID loads the worker profile attached to the account.
func (r *Repository) FindByAccountID(ctx context.Context, accountID uuid.UUID) (*models.WorkerProfile, error) {
	var profile models.WorkerProfile
	if err := r.db.WithContext(ctx).Where("account_id = ?", accountID).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// Save persists the profile, inserting it on first write. Runs on tx when
// provided so the account merge commits atomically with it.
func (r *Repository) Save(ctx context.Context, tx *gorm.DB, profile *models.WorkerProfile) error {
	conn := r.db
	if tx != nil {
		conn = tx
	}
	return conn.WithContext(ctx).Save(profile).Error
}
