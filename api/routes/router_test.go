package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/kaamsetu/gigwork-backend/internal/auth"
	"github.com/kaamsetu/gigwork-backend/internal/jobs"
	"github.com/kaamsetu/gigwork-backend/internal/profiles"
	pkgAuth "github.com/kaamsetu/gigwork-backend/pkg/auth"
	"github.com/kaamsetu/gigwork-backend/pkg/config"
	"github.com/kaamsetu/gigwork-backend/pkg/enums"
	"github.com/kaamsetu/gigwork-backend/pkg/logger"
	"github.com/kaamsetu/gigwork-backend/pkg/metrics"
	"github.com/kaamsetu/gigwork-backend/pkg/redis"
)

type stubAuthService struct{}

func (stubAuthService) Signup(ctx context.Context, req auth.SignupRequest) (*auth.SignupResponse, error) {
	return &auth.SignupResponse{}, nil
}

func (stubAuthService) Login(ctx context.Context, req auth.LoginRequest) (*auth.LoginResponse, error) {
	return &auth.LoginResponse{AccessToken: "token"}, nil
}

type stubJobService struct{}

func (stubJobService) Create(ctx context.Context, ownerID uuid.UUID, req jobs.CreateJobRequest) (*jobs.JobDTO, error) {
	return &jobs.JobDTO{}, nil
}

func (stubJobService) Search(ctx context.Context, criteria jobs.SearchCriteria) ([]jobs.ListedJobDTO, error) {
	return []jobs.ListedJobDTO{}, nil
}

func (stubJobService) ByCategory(ctx context.Context, category string) ([]jobs.ListedJobDTO, error) {
	return []jobs.ListedJobDTO{}, nil
}

func (stubJobService) Detail(ctx context.Context, rawID string) (*jobs.JobDetailResponse, error) {
	return &jobs.JobDetailResponse{}, nil
}

func (stubJobService) PlaceBid(ctx context.Context, workerID uuid.UUID, rawJobID string, req jobs.PlaceBidRequest) (*jobs.BidDTO, error) {
	return &jobs.BidDTO{}, nil
}

func (stubJobService) AcceptBid(ctx context.Context, actorID uuid.UUID, rawJobID, rawBidID string) (*jobs.JobDTO, error) {
	return &jobs.JobDTO{}, nil
}

func (stubJobService) Complete(ctx context.Context, actorID uuid.UUID, rawJobID string) (*jobs.JobDTO, error) {
	return &jobs.JobDTO{}, nil
}

type stubProfileService struct{}

func (stubProfileService) UpdateWorkerProfile(ctx context.Context, accountID uuid.UUID, req profiles.UpdateWorkerProfileRequest, image *profiles.ImageUpload) (*profiles.UpdateWorkerProfileResponse, error) {
	return &profiles.UpdateWorkerProfileResponse{}, nil
}

func (stubProfileService) IsProfileComplete(ctx context.Context, rawAccountID string) (*profiles.ProfileCompleteResponse, error) {
	return &profiles.ProfileCompleteResponse{}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "0"},
		JWT: config.JWTConfig{
			Secret:            "secret",
			Issuer:            "gigwork",
			ExpirationMinutes: 60,
		},
	}
}

func newTestRouter(cfg *config.Config) http.Handler {
	logg := logger.New(logger.Options{ServiceName: "test-routing", Level: logger.ParseLevel("debug"), Output: io.Discard})
	return NewRouter(
		cfg,
		logg,
		(*metrics.HTTPMetrics)(nil),
		nil,
		(*redis.Client)(nil),
		nil,
		stubAuthService{},
		stubJobService{},
		stubProfileService{},
	)
}

func buildToken(t *testing.T, cfg *config.Config, role enums.Role) string {
	t.Helper()
	token, err := pkgAuth.MintAccessToken(cfg.JWT, time.Now(), pkgAuth.AccessTokenPayload{
		AccountID: uuid.New(),
		Role:      role,
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestPublicRoutesNeedNoToken(t *testing.T) {
	router := newTestRouter(testConfig())

	for _, path := range []string{
		"/ping",
		"/health/live",
		"/job/search",
		"/job/category/plumbing",
		"/job/" + uuid.NewString(),
		"/user/" + uuid.NewString() + "/profile-complete",
	} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != http.StatusOK {
			t.Fatalf("expected 200 for %s got %d", path, resp.Code)
		}
	}
}

func TestJobCreateRejectsMissingJWT(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodPost, "/job/create", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token got %d", resp.Code)
	}
}

func TestJobCreateRequiresClientRole(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)

	worker := httptest.NewRequest(http.MethodPost, "/job/create", nil)
	worker.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.RoleWorker))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, worker)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for worker got %d", resp.Code)
	}
}

func TestBidPlaceRequiresWorkerRole(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)
	path := "/job/" + uuid.NewString() + "/bids"

	client := httptest.NewRequest(http.MethodPost, path, nil)
	client.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.RoleClient))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, client)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for client got %d", resp.Code)
	}
}

func TestWorkerProfileUpdateRequiresWorkerRole(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)

	client := httptest.NewRequest(http.MethodPost, "/user/worker/updateProfile", nil)
	client.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.RoleClient))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, client)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for client got %d", resp.Code)
	}
}

func TestPrivatePingSucceedsWithJWT(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)

	req := httptest.NewRequest(http.MethodGet, "/user/ping", nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.RoleWorker))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}
