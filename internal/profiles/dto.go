package profiles

import (
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kaamsetu/gigwork-backend/internal/accounts"
	"github.com/kaamsetu/gigwork-backend/pkg/db/models"
	"github.com/kaamsetu/gigwork-backend/pkg/enums"
)

// LocationPatch carries replacement coordinates in caller order.
type LocationPatch struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// AddressPatch updates address sub-fields individually. Absent fields keep
// their current value, the address is never overwritten wholesale.
type AddressPatch struct {
	Line     *string        `json:"address"`
	Pincode  *string        `json:"pincode"`
	Location *LocationPatch `json:"location"`
}

// UpdateWorkerProfileRequest is an explicit patch: every field is optional
// and absence means "leave unchanged".
type UpdateWorkerProfileRequest struct {
	Name    *string       `json:"name"`
	Address *AddressPatch `json:"address"`

	Skills             *[]string        `json:"skills"`
	Status             *string          `json:"status"`
	VerificationStatus *string          `json:"verification_status"`
	Experience         *string          `json:"experience"`
	HourlyRate         *decimal.Decimal `json:"hourly_rate"`
	Availability       *[]string        `json:"availability"`
	CompletedJobs      *[]uuid.UUID     `json:"completed_jobs"`
	OngoingJobs        *[]uuid.UUID     `json:"ongoing_jobs"`
}

// ImageUpload is an optional profile photo attached to the update.
type ImageUpload struct {
	Filename string
	Body     io.Reader
}

// WorkerProfileDTO is the transport shape of a worker profile.
type WorkerProfileDTO struct {
	ID                 uuid.UUID                `json:"id"`
	AccountID          uuid.UUID                `json:"account_id"`
	Skills             []string                 `json:"skills"`
	VerificationStatus enums.VerificationStatus `json:"verification_status"`
	Status             enums.WorkerStatus       `json:"status"`
	Experience         enums.ExperienceLevel    `json:"experience"`
	HourlyRate         decimal.Decimal          `json:"hourly_rate"`
	Availability       []string                 `json:"availability"`
	CompletedJobs      []uuid.UUID              `json:"completed_jobs"`
	OngoingJobs        []uuid.UUID              `json:"ongoing_jobs"`
	CreatedAt          time.Time                `json:"created_at"`
	UpdatedAt          time.Time                `json:"updated_at"`
}

// UpdateWorkerProfileResponse pairs the merged account with its profile.
type UpdateWorkerProfileResponse struct {
	Account *accounts.AccountDTO `json:"account"`
	Profile *WorkerProfileDTO    `json:"profile"`
}

// ProfileCompleteResponse is the verbatim completion flag.
type ProfileCompleteResponse struct {
	AccountID       uuid.UUID `json:"account_id"`
	ProfileComplete bool      `json:"profile_complete"`
}

func profileFromModel(p *models.WorkerProfile) *WorkerProfileDTO {
	if p == nil {
		return nil
	}

	return &WorkerProfileDTO{
		ID:                 p.ID,
		AccountID:          p.AccountID,
		Skills:             append([]string(nil), p.Skills...),
		VerificationStatus: p.VerificationStatus,
		Status:             p.Status,
		Experience:         p.Experience,
		HourlyRate:         p.HourlyRate,
		Availability:       append([]string(nil), p.Availability...),
		CompletedJobs:      append([]uuid.UUID(nil), p.CompletedJobs...),
		OngoingJobs:        append([]uuid.UUID(nil), p.OngoingJobs...),
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
}
