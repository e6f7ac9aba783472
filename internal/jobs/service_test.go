package jobs

import (
	"context"
	"encoding/json"
	"sort"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/kaamsetu/gigwork-backend/pkg/db/models"
	"github.com/kaamsetu/gigwork-backend/pkg/enums"
	pkgerrors "github.com/kaamsetu/gigwork-backend/pkg/errors"
)

func buildJobsService(t *testing.T) (Service, *stubJobRepo, *stubOwnerLookup) {
	t.Helper()
	repo := newStubJobRepo()
	owners := &stubOwnerLookup{accounts: map[uuid.UUID]*models.Account{}}
	svc, err := NewService(ServiceParams{JobRepo: repo, AccountRepo: owners})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return svc, repo, owners
}

func validCreateRequest() CreateJobRequest {
	budget := decimal.NewFromInt(500)
	return CreateJobRequest{
		Title:       "Fix leaking kitchen tap",
		Category:    CategoryList{"Plumbing"},
		Description: "The kitchen tap has been leaking for a week and needs a washer replacement by an experienced plumber.",
		Budget:      &budget,
		AddressLine: "Bandra West, Mumbai",
		Pincode:     "400050",
		Location:    &LocationInput{Lat: 19.07, Lng: 72.87},
		StartDate:   "2026-09-05",
	}
}

func TestCreateJobNormalizesCategoryAndCoordinates(t *testing.T) {
	svc, _, _ := buildJobsService(t)

	job, err := svc.Create(context.Background(), uuid.New(), validCreateRequest())
	if err != nil {
		t.Fatalf("create job: %v", err)
	}
	if len(job.Category) != 1 || job.Category[0] != "plumbing" {
		t.Fatalf("expected normalized category list, got %v", job.Category)
	}
	if job.Location == nil || job.Location.Lng != 72.87 || job.Location.Lat != 19.07 {
		t.Fatalf("coordinates not stored [lng,lat]: %+v", job.Location)
	}
	if job.Status != enums.JobStatusOpen {
		t.Fatalf("new jobs must start open, got %s", job.Status)
	}
	if job.Urgency != enums.UrgencyNormal || job.ShiftPreference != enums.ShiftFlexible {
		t.Fatalf("defaults not applied: %s/%s", job.Urgency, job.ShiftPreference)
	}
}

func TestCategoryListAcceptsScalarAndList(t *testing.T) {
	var scalar CategoryList
	if err := json.Unmarshal([]byte(`"plumbing"`), &scalar); err != nil {
		t.Fatalf("unmarshal scalar: %v", err)
	}
	var list CategoryList
	if err := json.Unmarshal([]byte(`["plumbing"]`), &list); err != nil {
		t.Fatalf("unmarshal list: %v", err)
	}
	if len(scalar) != 1 || len(list) != 1 || scalar[0] != list[0] {
		t.Fatalf("scalar and single-element list must normalize identically: %v vs %v", scalar, list)
	}
	if err := json.Unmarshal([]byte(`42`), &scalar); err == nil {
		t.Fatal("expected error for non-string category")
	}
}

func TestCreateJobCollectsAllViolations(t *testing.T) {
	svc, _, _ := buildJobsService(t)

	_, err := svc.Create(context.Background(), uuid.New(), CreateJobRequest{
		Description: "too short",
		Urgency:     "instant",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}

	details, ok := typed.Details().(map[string]string)
	if !ok {
		t.Fatalf("expected field error map, got %T", typed.Details())
	}

	var fields []string
	for field := range details {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	want := []string{"address", "budget", "category", "description", "pincode", "start_date", "title", "urgency"}
	if len(fields) != len(want) {
		t.Fatalf("expected fields %v, got %v", want, fields)
	}
	for i := range want {
		if fields[i] != want[i] {
			t.Fatalf("expected fields %v, got %v", want, fields)
		}
	}
}

func TestCreateJobZeroBudgetIsValid(t *testing.T) {
	svc, _, _ := buildJobsService(t)

	req := validCreateRequest()
	zero := decimal.Zero
	req.Budget = &zero
	if _, err := svc.Create(context.Background(), uuid.New(), req); err != nil {
		t.Fatalf("zero budget must be valid: %v", err)
	}
}

func TestSearchDefaultsToOpenStatus(t *testing.T) {
	svc, repo, _ := buildJobsService(t)

	if _, err := svc.Search(context.Background(), SearchCriteria{}); err != nil {
		t.Fatalf("search: %v", err)
	}
	if repo.lastCriteria.Status != "open" {
		t.Fatalf("expected default open status, got %q", repo.lastCriteria.Status)
	}
	if repo.lastLimit != 20 {
		t.Fatalf("expected page cap 20, got %d", repo.lastLimit)
	}
}

func TestSearchRejectsInvalidFilters(t *testing.T) {
	svc, _, _ := buildJobsService(t)

	if _, err := svc.Search(context.Background(), SearchCriteria{Status: "paused"}); pkgerrors.As(err) == nil {
		t.Fatal("expected validation error for bad status")
	}
	min := decimal.NewFromInt(600)
	max := decimal.NewFromInt(300)
	if _, err := svc.Search(context.Background(), SearchCriteria{BudgetMin: &min, BudgetMax: &max}); pkgerrors.As(err) == nil {
		t.Fatal("expected validation error for inverted budget range")
	}
}

func TestDetailIdentifierErrors(t *testing.T) {
	svc, _, _ := buildJobsService(t)
	ctx := context.Background()

	_, err := svc.Detail(ctx, "abc")
	assertJobCode(t, err, pkgerrors.CodeValidation)

	_, err = svc.Detail(ctx, uuid.NewString())
	assertJobCode(t, err, pkgerrors.CodeNotFound)
}

func TestDetailReturnsOwnerProjection(t *testing.T) {
	svc, repo, owners := buildJobsService(t)
	ctx := context.Background()

	owner := uuid.New()
	owners.accounts[owner] = &models.Account{
		ID:    owner,
		Name:  "Ravi Kumar",
		Email: "ravi@example.com",
		Phone: "9000000001",
		Role:  enums.RoleClient,
	}
	job, err := svc.Create(ctx, owner, validCreateRequest())
	if err != nil {
		t.Fatalf("create job: %v", err)
	}
	repo.bids[job.ID] = []models.JobBid{{ID: uuid.New(), JobID: job.ID, WorkerID: uuid.New(), Amount: decimal.NewFromInt(450), Status: enums.BidStatusActive}}

	detail, err := svc.Detail(ctx, job.ID.String())
	if err != nil {
		t.Fatalf("detail: %v", err)
	}
	if detail.Owner == nil || detail.Owner.Name != "Ravi Kumar" {
		t.Fatalf("expected owner projection, got %+v", detail.Owner)
	}
	if len(detail.Bids) != 1 {
		t.Fatalf("expected one bid, got %d", len(detail.Bids))
	}
}

func TestPlaceBidRules(t *testing.T) {
	svc, _, _ := buildJobsService(t)
	ctx := context.Background()

	owner := uuid.New()
	job, err := svc.Create(ctx, owner, validCreateRequest())
	if err != nil {
		t.Fatalf("create job: %v", err)
	}

	amount := decimal.NewFromInt(450)

	_, err = svc.PlaceBid(ctx, owner, job.ID.String(), PlaceBidRequest{Amount: &amount})
	assertJobCode(t, err, pkgerrors.CodeForbidden)

	_, err = svc.PlaceBid(ctx, uuid.New(), job.ID.String(), PlaceBidRequest{})
	assertJobCode(t, err, pkgerrors.CodeValidation)

	bid, err := svc.PlaceBid(ctx, uuid.New(), job.ID.String(), PlaceBidRequest{Amount: &amount})
	if err != nil {
		t.Fatalf("place bid: %v", err)
	}
	if bid.Status != enums.BidStatusActive {
		t.Fatalf("new bids must be active, got %s", bid.Status)
	}
}

func TestAcceptBidAndComplete(t *testing.T) {
	svc, _, _ := buildJobsService(t)
	ctx := context.Background()

	owner := uuid.New()
	worker := uuid.New()
	job, err := svc.Create(ctx, owner, validCreateRequest())
	if err != nil {
		t.Fatalf("create job: %v", err)
	}
	amount := decimal.NewFromInt(450)
	bid, err := svc.PlaceBid(ctx, worker, job.ID.String(), PlaceBidRequest{Amount: &amount})
	if err != nil {
		t.Fatalf("place bid: %v", err)
	}

	_, err = svc.AcceptBid(ctx, uuid.New(), job.ID.String(), bid.ID.String())
	assertJobCode(t, err, pkgerrors.CodeForbidden)

	accepted, err := svc.AcceptBid(ctx, owner, job.ID.String(), bid.ID.String())
	if err != nil {
		t.Fatalf("accept bid: %v", err)
	}
	if accepted.Status != enums.JobStatusOngoing {
		t.Fatalf("expected ongoing job, got %s", accepted.Status)
	}
	if accepted.HiredWorker == nil || *accepted.HiredWorker != worker {
		t.Fatalf("expected hired worker %s, got %v", worker, accepted.HiredWorker)
	}

	// a second accept hits the open-status guard
	_, err = svc.AcceptBid(ctx, owner, job.ID.String(), bid.ID.String())
	assertJobCode(t, err, pkgerrors.CodeStateConflict)

	_, err = svc.Complete(ctx, worker, job.ID.String())
	assertJobCode(t, err, pkgerrors.CodeForbidden)

	completed, err := svc.Complete(ctx, owner, job.ID.String())
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if completed.Status != enums.JobStatusCompleted {
		t.Fatalf("expected completed job, got %s", completed.Status)
	}

	_, err = svc.Complete(ctx, owner, job.ID.String())
	assertJobCode(t, err, pkgerrors.CodeStateConflict)
}

func assertJobCode(t *testing.T, err error, want pkgerrors.Code) {
	t.Helper()
	typed := pkgerrors.As(err)
	if typed == nil {
		t.Fatalf("expected typed error with code %s, got %v", want, err)
	}
	if typed.Code() != want {
		t.Fatalf("expected code %s, got %s (%v)", want, typed.Code(), err)
	}
}

type stubJobRepo struct {
	jobs         map[uuid.UUID]*models.Job
	bids         map[uuid.UUID][]models.JobBid
	lastCriteria SearchCriteria
	lastLimit    int
}

func newStubJobRepo() *stubJobRepo {
	return &stubJobRepo{
		jobs: map[uuid.UUID]*models.Job{},
		bids: map[uuid.UUID][]models.JobBid{},
	}
}

func (r *stubJobRepo) Create(_ context.Context, job *models.Job) error {
	job.ID = uuid.New()
	r.jobs[job.ID] = job
	return nil
}

func (r *stubJobRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Job, error) {
	if job, ok := r.jobs[id]; ok {
		copied := *job
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubJobRepo) Search(_ context.Context, criteria SearchCriteria, limit int) ([]models.Job, error) {
	r.lastCriteria = criteria
	r.lastLimit = limit
	return nil, nil
}

func (r *stubJobRepo) ListByCategory(_ context.Context, _ string) ([]models.Job, error) {
	return nil, nil
}

func (r *stubJobRepo) InsertBid(_ context.Context, bid *models.JobBid) error {
	bid.ID = uuid.New()
	r.bids[bid.JobID] = append(r.bids[bid.JobID], *bid)
	return nil
}

func (r *stubJobRepo) ListBids(_ context.Context, jobID uuid.UUID) ([]models.JobBid, error) {
	return r.bids[jobID], nil
}

func (r *stubJobRepo) FindBid(_ context.Context, id uuid.UUID) (*models.JobBid, error) {
	for _, bids := range r.bids {
		for i := range bids {
			if bids[i].ID == id {
				copied := bids[i]
				return &copied, nil
			}
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubJobRepo) AcceptBid(_ context.Context, jobID, bidID, workerID uuid.UUID) error {
	job, ok := r.jobs[jobID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if job.Status != enums.JobStatusOpen {
		return ErrJobNotOpen
	}
	job.Status = enums.JobStatusOngoing
	hired := workerID
	job.HiredWorker = &hired
	bids := r.bids[jobID]
	for i := range bids {
		if bids[i].ID == bidID {
			bids[i].Status = enums.BidStatusAccepted
		} else if bids[i].Status == enums.BidStatusActive {
			bids[i].Status = enums.BidStatusRejected
		}
	}
	return nil
}

func (r *stubJobRepo) CompleteJob(_ context.Context, jobID, ownerID uuid.UUID) error {
	job, ok := r.jobs[jobID]
	if !ok || job.CreatedBy != ownerID || job.Status != enums.JobStatusOngoing {
		return ErrJobNotOngoing
	}
	job.Status = enums.JobStatusCompleted
	return nil
}

type stubOwnerLookup struct {
	accounts map[uuid.UUID]*models.Account
}

func (l *stubOwnerLookup) FindByID(_ context.Context, id uuid.UUID) (*models.Account, error) {
	if account, ok := l.accounts[id]; ok {
		return account, nil
	}
	return nil, gorm.ErrRecordNotFound
}
