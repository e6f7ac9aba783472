package jobs

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kaamsetu/gigwork-backend/internal/accounts"
	"github.com/kaamsetu/gigwork-backend/pkg/db/models"
	"github.com/kaamsetu/gigwork-backend/pkg/enums"
	"github.com/kaamsetu/gigwork-backend/pkg/types"
)

// CategoryList accepts either a single string or a list of strings and
// always normalizes to a list.
type CategoryList []string

func (c *CategoryList) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*c = CategoryList(list)
		return nil
	}
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*c = CategoryList{single}
		return nil
	}
	return fmt.Errorf("category must be a string or a list of strings")
}

// LocationInput carries optional coordinates in caller order, latitude first.
type LocationInput struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// CreateJobRequest is the job-creation payload. Field-level problems are
// collected and returned together, not first-failure.
type CreateJobRequest struct {
	Title           string           `json:"title"`
	Category        CategoryList     `json:"category"`
	Description     string           `json:"description"`
	Budget          *decimal.Decimal `json:"budget"`
	AddressLine     string           `json:"address"`
	Pincode         string           `json:"pincode"`
	Location        *LocationInput   `json:"location"`
	StartDate       string           `json:"start_date"`
	EndDate         string           `json:"end_date"`
	Urgency         string           `json:"urgency"`
	ShiftPreference string           `json:"shift_preference"`
	Notes           string           `json:"notes"`
}

// SearchCriteria captures the supported /job/search query parameters.
type SearchCriteria struct {
	Categories []string
	Location   string
	BudgetMin  *decimal.Decimal
	BudgetMax  *decimal.Decimal
	Urgency    string
	Status     string
}

// JobDTO is the full job projection returned to the owner and on detail.
type JobDTO struct {
	ID              uuid.UUID             `json:"id"`
	CreatedBy       uuid.UUID             `json:"created_by"`
	Status          enums.JobStatus       `json:"status"`
	Title           string                `json:"title"`
	Description     string                `json:"description"`
	Category        []string              `json:"category"`
	Budget          decimal.Decimal       `json:"budget"`
	AddressLine     string                `json:"address"`
	Pincode         string                `json:"pincode"`
	Location        *types.GeoPoint       `json:"location,omitempty"`
	StartDate       time.Time             `json:"start_date"`
	EndDate         *time.Time            `json:"end_date,omitempty"`
	Urgency         enums.Urgency         `json:"urgency"`
	ShiftPreference enums.ShiftPreference `json:"shift_preference"`
	Notes           string                `json:"notes,omitempty"`
	HiredWorker     *uuid.UUID            `json:"hired_worker,omitempty"`
	CreatedAt       time.Time             `json:"created_at"`
	UpdatedAt       time.Time             `json:"updated_at"`
}

// ListedJobDTO is the search projection with bid and hire fields stripped.
type ListedJobDTO struct {
	ID              uuid.UUID             `json:"id"`
	Status          enums.JobStatus       `json:"status"`
	Title           string                `json:"title"`
	Description     string                `json:"description"`
	Category        []string              `json:"category"`
	Budget          decimal.Decimal       `json:"budget"`
	AddressLine     string                `json:"address"`
	Pincode         string                `json:"pincode"`
	Location        *types.GeoPoint       `json:"location,omitempty"`
	StartDate       time.Time             `json:"start_date"`
	EndDate         *time.Time            `json:"end_date,omitempty"`
	Urgency         enums.Urgency         `json:"urgency"`
	ShiftPreference enums.ShiftPreference `json:"shift_preference"`
	CreatedAt       time.Time             `json:"created_at"`
}

// JobDetailResponse pairs the job with the restricted owner projection.
type JobDetailResponse struct {
	Job   *JobDTO            `json:"job"`
	Owner *accounts.OwnerDTO `json:"owner"`
	Bids  []BidDTO           `json:"bids"`
}

// PlaceBidRequest is a worker's offer on an open job.
type PlaceBidRequest struct {
	Amount *decimal.Decimal `json:"amount" validate:"required"`
}

// BidDTO is the transport shape of a bid.
type BidDTO struct {
	ID        uuid.UUID       `json:"id"`
	JobID     uuid.UUID       `json:"job_id"`
	WorkerID  uuid.UUID       `json:"worker_id"`
	Amount    decimal.Decimal `json:"amount"`
	Status    enums.BidStatus `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
}

func FromModel(j *models.Job) *JobDTO {
	if j == nil {
		return nil
	}

	return &JobDTO{
		ID:              j.ID,
		CreatedBy:       j.CreatedBy,
		Status:          j.Status,
		Title:           j.Title,
		Description:     j.Description,
		Category:        append([]string(nil), j.Category...),
		Budget:          j.Budget,
		AddressLine:     j.AddressLine,
		Pincode:         j.Pincode,
		Location:        j.Location,
		StartDate:       j.StartDate,
		EndDate:         j.EndDate,
		Urgency:         j.Urgency,
		ShiftPreference: j.ShiftPreference,
		Notes:           j.Notes,
		HiredWorker:     j.HiredWorker,
		CreatedAt:       j.CreatedAt,
		UpdatedAt:       j.UpdatedAt,
	}
}

// ListedFromModel strips bid and hire data from the projection.
func ListedFromModel(j *models.Job) ListedJobDTO {
	return ListedJobDTO{
		ID:              j.ID,
		Status:          j.Status,
		Title:           j.Title,
		Description:     j.Description,
		Category:        append([]string(nil), j.Category...),
		Budget:          j.Budget,
		AddressLine:     j.AddressLine,
		Pincode:         j.Pincode,
		Location:        j.Location,
		StartDate:       j.StartDate,
		EndDate:         j.EndDate,
		Urgency:         j.Urgency,
		ShiftPreference: j.ShiftPreference,
		CreatedAt:       j.CreatedAt,
	}
}

func bidFromModel(b *models.JobBid) BidDTO {
	return BidDTO{
		ID:        b.ID,
		JobID:     b.JobID,
		WorkerID:  b.WorkerID,
		Amount:    b.Amount,
		Status:    b.Status,
		CreatedAt: b.CreatedAt,
	}
}

// BidsFromModels maps a bid slice into transport shapes.
func BidsFromModels(bids []models.JobBid) []BidDTO {
	out := make([]BidDTO, 0, len(bids))
	for i := range bids {
		out = append(out, bidFromModel(&bids[i]))
	}
	return out
}
