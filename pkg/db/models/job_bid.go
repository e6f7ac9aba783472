package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kaamsetu/gigwork-backend/pkg/enums"
)

// JobBid is an append-only offer on a job. Rows are never rewritten in place
// except for the status flip made by the acceptance transaction.
type JobBid struct {
	ID        uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	JobID     uuid.UUID       `gorm:"column:job_id;type:uuid;not null;index:job_bids_job_id_idx"`
	WorkerID  uuid.UUID       `gorm:"column:worker_id;type:uuid;not null;index:job_bids_worker_id_idx"`
	Amount    decimal.Decimal `gorm:"column:amount;type:numeric(12,2);not null"`
	Status    enums.BidStatus `gorm:"column:status;type:text;not null;default:'active'"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime"`
}
