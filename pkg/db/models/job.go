package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/kaamsetu/gigwork-backend/pkg/enums"
	"github.com/kaamsetu/gigwork-backend/pkg/types"
)

// Job is a posted listing. Ownership never changes after creation and the
// status only moves open -> ongoing -> completed.
type Job struct {
	ID              uuid.UUID             `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	CreatedBy       uuid.UUID             `gorm:"column:created_by;type:uuid;not null;index:jobs_created_by_idx"`
	Status          enums.JobStatus       `gorm:"column:status;type:text;not null;default:'open';index:jobs_status_idx"`
	Title           string                `gorm:"column:title;not null"`
	Description     string                `gorm:"column:description;not null"`
	Category        pq.StringArray        `gorm:"column:category;type:text[];not null;default:ARRAY[]::text[]"`
	Budget          decimal.Decimal       `gorm:"column:budget;type:numeric(12,2);not null"`
	AddressLine     string                `gorm:"column:address_line;not null"`
	Pincode         string                `gorm:"column:pincode;not null"`
	Location        *types.GeoPoint       `gorm:"column:location;type:geography(Point,4326)"`
	StartDate       time.Time             `gorm:"column:start_date;not null"`
	EndDate         *time.Time            `gorm:"column:end_date"`
	Urgency         enums.Urgency         `gorm:"column:urgency;type:text;not null;default:'normal'"`
	ShiftPreference enums.ShiftPreference `gorm:"column:shift_preference;type:text;not null;default:'flexible'"`
	Notes           string                `gorm:"column:notes"`
	HiredWorker     *uuid.UUID            `gorm:"column:hired_worker;type:uuid"`
	CreatedAt       time.Time             `gorm:"column:created_at;autoCreateTime;index:jobs_created_at_idx,sort:desc"`
	UpdatedAt       time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}
