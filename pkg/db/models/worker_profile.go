package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	dbtypes "github.com/kaamsetu/gigwork-backend/pkg/db/types"
	"github.com/kaamsetu/gigwork-backend/pkg/enums"
)

// WorkerProfile holds worker-only attributes, one row per worker account.
// The row is created lazily on the first profile update.
type WorkerProfile struct {
	ID                 uuid.UUID                `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	AccountID          uuid.UUID                `gorm:"column:account_id;type:uuid;not null;uniqueIndex:worker_profiles_account_id_key"`
	Skills             pq.StringArray           `gorm:"column:skills;type:text[];not null;default:ARRAY[]::text[]"`
	VerificationStatus enums.VerificationStatus `gorm:"column:verification_status;type:text;not null;default:'pending'"`
	Status             enums.WorkerStatus       `gorm:"column:status;type:text;not null;default:'open'"`
	Experience         enums.ExperienceLevel    `gorm:"column:experience;type:text;not null;default:'fresher'"`
	HourlyRate         decimal.Decimal          `gorm:"column:hourly_rate;type:numeric(12,2);not null;default:0"`
	Availability       pq.StringArray           `gorm:"column:availability;type:text[];not null;default:ARRAY[]::text[]"`
	CompletedJobs      dbtypes.UUIDArray        `gorm:"column:completed_jobs;type:uuid[];not null;default:ARRAY[]::uuid[]"`
	OngoingJobs        dbtypes.UUIDArray        `gorm:"column:ongoing_jobs;type:uuid[];not null;default:ARRAY[]::uuid[]"`
	CreatedAt          time.Time                `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time                `gorm:"column:updated_at;autoUpdateTime"`
}
