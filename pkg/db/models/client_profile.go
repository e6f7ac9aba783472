package models

import (
	"time"

	"github.com/google/uuid"

	dbtypes "github.com/kaamsetu/gigwork-backend/pkg/db/types"
	"github.com/kaamsetu/gigwork-backend/pkg/enums"
)

// ClientProfile tracks the hiring side of an account.
type ClientProfile struct {
	ID                 uuid.UUID                `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	AccountID          uuid.UUID                `gorm:"column:account_id;type:uuid;not null;uniqueIndex:client_profiles_account_id_key"`
	VerificationStatus enums.VerificationStatus `gorm:"column:verification_status;type:text;not null;default:'pending'"`
	CompletedJobs      dbtypes.UUIDArray        `gorm:"column:completed_jobs;type:uuid[];not null;default:ARRAY[]::uuid[]"`
	CompletedAt        *time.Time               `gorm:"column:completed_at"`
	ActiveJobs         dbtypes.UUIDArray        `gorm:"column:active_jobs;type:uuid[];not null;default:ARRAY[]::uuid[]"`
	CreatedAt          time.Time                `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time                `gorm:"column:updated_at;autoUpdateTime"`
}
