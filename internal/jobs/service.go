package jobs

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/kaamsetu/gigwork-backend/internal/accounts"
	"github.com/kaamsetu/gigwork-backend/pkg/db/models"
	"github.com/kaamsetu/gigwork-backend/pkg/enums"
	pkgerrors "github.com/kaamsetu/gigwork-backend/pkg/errors"
	"github.com/kaamsetu/gigwork-backend/pkg/types"
)

// searchPageSize is the fixed cap on search results. Category listings are
// uncapped.
const searchPageSize = 20

const minDescriptionLen = 50

var dateLayouts = []string{time.RFC3339, "2006-01-02"}

// Service defines the behavior needed by the job controllers.
type Service interface {
	Create(ctx context.Context, ownerID uuid.UUID, req CreateJobRequest) (*JobDTO, error)
	Search(ctx context.Context, criteria SearchCriteria) ([]ListedJobDTO, error)
	ByCategory(ctx context.Context, category string) ([]ListedJobDTO, error)
	Detail(ctx context.Context, rawID string) (*JobDetailResponse, error)
	PlaceBid(ctx context.Context, workerID uuid.UUID, rawJobID string, req PlaceBidRequest) (*BidDTO, error)
	AcceptBid(ctx context.Context, actorID uuid.UUID, rawJobID, rawBidID string) (*JobDTO, error)
	Complete(ctx context.Context, actorID uuid.UUID, rawJobID string) (*JobDTO, error)
}

type jobRepository interface {
	Create(ctx context.Context, job *models.Job) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Job, error)
	Search(ctx context.Context, criteria SearchCriteria, limit int) ([]models.Job, error)
	ListByCategory(ctx context.Context, category string) ([]models.Job, error)
	InsertBid(ctx context.Context, bid *models.JobBid) error
	ListBids(ctx context.Context, jobID uuid.UUID) ([]models.JobBid, error)
	FindBid(ctx context.Context, id uuid.UUID) (*models.JobBid, error)
	AcceptBid(ctx context.Context, jobID, bidID, workerID uuid.UUID) error
	CompleteJob(ctx context.Context, jobID, ownerID uuid.UUID) error
}

type ownerLookup interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Account, error)
}

type service struct {
	jobs   jobRepository
	owners ownerLookup
}

// ServiceParams bundles the dependencies required to build a jobs service.
type ServiceParams struct {
	JobRepo     jobRepository
	AccountRepo ownerLookup
}

// NewService constructs a jobs service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.JobRepo == nil {
		return nil, fmt.Errorf("job repository is required")
	}
	if params.AccountRepo == nil {
		return nil, fmt.Errorf("account repository is required")
	}
	return &service{jobs: params.JobRepo, owners: params.AccountRepo}, nil
}

func (s *service) Create(ctx context.Context, ownerID uuid.UUID, req CreateJobRequest) (*JobDTO, error) {
	job, fieldErrors := buildJob(ownerID, req)
	if len(fieldErrors) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "job validation failed").
			WithDetails(fieldErrors)
	}

	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create job")
	}
	return FromModel(job), nil
}

// buildJob validates every field and collects all violations before giving up.
func buildJob(ownerID uuid.UUID, req CreateJobRequest) (*models.Job, map[string]string) {
	fieldErrors := map[string]string{}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		fieldErrors["title"] = "title is required"
	}

	categories := normalizeCategories(req.Category)
	if len(categories) == 0 {
		fieldErrors["category"] = "at least one category is required"
	}

	description := strings.TrimSpace(req.Description)
	if len(description) < minDescriptionLen {
		fieldErrors["description"] = fmt.Sprintf("description must be at least %d characters", minDescriptionLen)
	}

	var budget decimal.Decimal
	switch {
	case req.Budget == nil:
		fieldErrors["budget"] = "budget is required"
	case req.Budget.IsNegative():
		fieldErrors["budget"] = "budget must not be negative"
	default:
		budget = *req.Budget
	}

	addressLine := strings.TrimSpace(req.AddressLine)
	if addressLine == "" {
		fieldErrors["address"] = "address is required"
	}
	pincode := strings.TrimSpace(req.Pincode)
	if pincode == "" {
		fieldErrors["pincode"] = "pincode is required"
	}

	var location *types.GeoPoint
	if req.Location != nil {
		point := types.GeoPoint{Lng: req.Location.Lng, Lat: req.Location.Lat}
		if !point.IsFinite() || !point.InRange() {
			fieldErrors["location"] = "coordinates must be finite and in range"
		} else {
			location = &point
		}
	}

	var startDate time.Time
	if strings.TrimSpace(req.StartDate) == "" {
		fieldErrors["start_date"] = "start date is required"
	} else if parsed, err := parseDate(req.StartDate); err != nil {
		fieldErrors["start_date"] = "start date must be a valid date"
	} else {
		startDate = parsed
	}

	var endDate *time.Time
	if strings.TrimSpace(req.EndDate) != "" {
		if parsed, err := parseDate(req.EndDate); err != nil {
			fieldErrors["end_date"] = "end date must be a valid date"
		} else {
			endDate = &parsed
		}
	}

	urgency := enums.UrgencyNormal
	if strings.TrimSpace(req.Urgency) != "" {
		parsed, err := enums.ParseUrgency(req.Urgency)
		if err != nil {
			fieldErrors["urgency"] = err.Error()
		} else {
			urgency = parsed
		}
	}

	shift := enums.ShiftFlexible
	if strings.TrimSpace(req.ShiftPreference) != "" {
		parsed, err := enums.ParseShiftPreference(req.ShiftPreference)
		if err != nil {
			fieldErrors["shift_preference"] = err.Error()
		} else {
			shift = parsed
		}
	}

	if len(fieldErrors) > 0 {
		return nil, fieldErrors
	}

	return &models.Job{
		CreatedBy:       ownerID,
		Status:          enums.JobStatusOpen,
		Title:           title,
		Description:     description,
		Category:        categories,
		Budget:          budget,
		AddressLine:     addressLine,
		Pincode:         pincode,
		Location:        location,
		StartDate:       startDate,
		EndDate:         endDate,
		Urgency:         urgency,
		ShiftPreference: shift,
		Notes:           strings.TrimSpace(req.Notes),
	}, nil
}

func (s *service) Search(ctx context.Context, criteria SearchCriteria) ([]ListedJobDTO, error) {
	if criteria.Status == "" {
		criteria.Status = enums.JobStatusOpen.String()
	} else if _, err := enums.ParseJobStatus(criteria.Status); err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid status filter")
	}
	if criteria.Urgency != "" {
		if _, err := enums.ParseUrgency(criteria.Urgency); err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid urgency filter")
		}
	}
	if criteria.BudgetMin != nil && criteria.BudgetMax != nil && criteria.BudgetMin.GreaterThan(*criteria.BudgetMax) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "budget_min must not exceed budget_max")
	}
	criteria.Categories = normalizeCategories(criteria.Categories)

	found, err := s.jobs.Search(ctx, criteria, searchPageSize)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "search jobs")
	}
	return listedFromModels(found), nil
}

func (s *service) ByCategory(ctx context.Context, category string) ([]ListedJobDTO, error) {
	category = strings.ToLower(strings.TrimSpace(category))
	if category == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category is required")
	}

	found, err := s.jobs.ListByCategory(ctx, category)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list jobs by category")
	}
	return listedFromModels(found), nil
}

func (s *service) Detail(ctx context.Context, rawID string) (*JobDetailResponse, error) {
	id, err := parseID(rawID, "job id")
	if err != nil {
		return nil, err
	}

	job, err := s.findJob(ctx, id)
	if err != nil {
		return nil, err
	}

	owner, err := s.owners.FindByID(ctx, job.CreatedBy)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load job owner")
	}

	bids, err := s.jobs.ListBids(ctx, job.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list job bids")
	}

	return &JobDetailResponse{
		Job:   FromModel(job),
		Owner: accounts.OwnerFromModel(owner),
		Bids:  BidsFromModels(bids),
	}, nil
}

func (s *service) PlaceBid(ctx context.Context, workerID uuid.UUID, rawJobID string, req PlaceBidRequest) (*BidDTO, error) {
	jobID, err := parseID(rawJobID, "job id")
	if err != nil {
		return nil, err
	}
	if req.Amount == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "bid amount is required")
	}
	if req.Amount.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "bid amount must not be negative")
	}

	job, err := s.findJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.CreatedBy == workerID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "cannot bid on your own job")
	}
	if job.Status != enums.JobStatusOpen {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "job is no longer open for bids")
	}

	bid := &models.JobBid{
		JobID:    job.ID,
		WorkerID: workerID,
		Amount:   *req.Amount,
		Status:   enums.BidStatusActive,
	}
	if err := s.jobs.InsertBid(ctx, bid); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "insert bid")
	}

	dto := bidFromModel(bid)
	return &dto, nil
}

func (s *service) AcceptBid(ctx context.Context, actorID uuid.UUID, rawJobID, rawBidID string) (*JobDTO, error) {
	jobID, err := parseID(rawJobID, "job id")
	if err != nil {
		return nil, err
	}
	bidID, err := parseID(rawBidID, "bid id")
	if err != nil {
		return nil, err
	}

	job, err := s.findJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.CreatedBy != actorID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "only the job owner can accept a bid")
	}

	bid, err := s.jobs.FindBid(ctx, bidID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "bid not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load bid")
	}
	if bid.JobID != job.ID {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "bid does not belong to this job")
	}

	if err := s.jobs.AcceptBid(ctx, job.ID, bid.ID, bid.WorkerID); err != nil {
		if errors.Is(err, ErrJobNotOpen) {
			return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "job is no longer open")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "accept bid")
	}

	updated, err := s.findJob(ctx, job.ID)
	if err != nil {
		return nil, err
	}
	return FromModel(updated), nil
}

func (s *service) Complete(ctx context.Context, actorID uuid.UUID, rawJobID string) (*JobDTO, error) {
	jobID, err := parseID(rawJobID, "job id")
	if err != nil {
		return nil, err
	}

	job, err := s.findJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.CreatedBy != actorID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "only the job owner can complete the job")
	}

	if err := s.jobs.CompleteJob(ctx, job.ID, actorID); err != nil {
		if errors.Is(err, ErrJobNotOngoing) {
			return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "job is not ongoing")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "complete job")
	}

	updated, err := s.findJob(ctx, job.ID)
	if err != nil {
		return nil, err
	}
	return FromModel(updated), nil
}

func (s *service) findJob(ctx context.Context, id uuid.UUID) (*models.Job, error) {
	job, err := s.jobs.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "job not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load job")
	}
	return job, nil
}

func parseID(raw, label string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid "+label)
	}
	return id, nil
}

func normalizeCategories(values []string) []string {
	out := make([]string, 0, len(values))
	seen := map[string]struct{}{}
	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(v))
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func listedFromModels(jobs []models.Job) []ListedJobDTO {
	out := make([]ListedJobDTO, 0, len(jobs))
	for i := range jobs {
		out = append(out, ListedFromModel(&jobs[i]))
	}
	return out
}

func parseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", value)
}
