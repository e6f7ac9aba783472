package profiles

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kaamsetu/gigwork-backend/internal/accounts"
	"github.com/kaamsetu/gigwork-backend/pkg/db/models"
	dbtypes "github.com/kaamsetu/gigwork-backend/pkg/db/types"
	"github.com/kaamsetu/gigwork-backend/pkg/enums"
	pkgerrors "github.com/kaamsetu/gigwork-backend/pkg/errors"
	"github.com/kaamsetu/gigwork-backend/pkg/storage/cloudinary"
	"github.com/kaamsetu/gigwork-backend/pkg/types"
)

// Service defines the behavior needed by the profile controllers.
type Service interface {
	UpdateWorkerProfile(ctx context.Context, accountID uuid.UUID, req UpdateWorkerProfileRequest, image *ImageUpload) (*UpdateWorkerProfileResponse, error)
	IsProfileComplete(ctx context.Context, rawAccountID string) (*ProfileCompleteResponse, error)
}

type accountRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Account, error)
	Save(ctx context.Context, tx *gorm.DB, account *models.Account) error
}

type profileRepository interface {
	FindByAccountID(ctx context.Context, accountID uuid.UUID) (*models.WorkerProfile, error)
	Save(ctx context.Context, tx *gorm.DB, profile *models.WorkerProfile) error
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type service struct {
	accounts accountRepository
	profiles profileRepository
	tx       txRunner
	uploader cloudinary.ImageUploader
}

// ServiceParams bundles the dependencies required to build a profiles service.
type ServiceParams struct {
	AccountRepo accountRepository
	ProfileRepo profileRepository
	Tx          txRunner
	Uploader    cloudinary.ImageUploader
}

// NewService constructs a profiles service. Uploader may be nil when no
// image store is configured; updates carrying a photo then fail cleanly.
func NewService(params ServiceParams) (Service, error) {
	if params.AccountRepo == nil {
		return nil, fmt.Errorf("account repository is required")
	}
	if params.ProfileRepo == nil {
		return nil, fmt.Errorf("profile repository is required")
	}
	if params.Tx == nil {
		return nil, fmt.Errorf("transaction runner is required")
	}
	return &service{
		accounts: params.AccountRepo,
		profiles: params.ProfileRepo,
		tx:       params.Tx,
		uploader: params.Uploader,
	}, nil
}

func (s *service) UpdateWorkerProfile(ctx context.Context, accountID uuid.UUID, req UpdateWorkerProfileRequest, image *ImageUpload) (*UpdateWorkerProfileResponse, error) {
	account, err := s.accounts.FindByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "account not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load account")
	}

	profile, err := s.profiles.FindByAccountID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load worker profile")
		}
		// first write creates the profile with its defaults
		profile = &models.WorkerProfile{
			AccountID:          accountID,
			Skills:             []string{},
			VerificationStatus: enums.VerificationPending,
			Status:             enums.WorkerStatusOpen,
			Experience:         enums.ExperienceFresher,
			Availability:       []string{},
			CompletedJobs:      dbtypes.UUIDArray{},
			OngoingJobs:        dbtypes.UUIDArray{},
		}
	}

	if err := applyAccountPatch(account, req); err != nil {
		return nil, err
	}
	if err := applyProfilePatch(profile, req); err != nil {
		return nil, err
	}

	if image != nil {
		url, err := s.uploadImage(ctx, accountID, image)
		if err != nil {
			return nil, err
		}
		account.ProfileImage = url
	}

	account.ProfileComplete = true

	// one transaction covers both writes so a failure cannot leave the
	// account and profile halves disagreeing
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.accounts.Save(ctx, tx, account); err != nil {
			return err
		}
		return s.profiles.Save(ctx, tx, profile)
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "persist profile update")
	}

	return &UpdateWorkerProfileResponse{
		Account: accounts.FromModel(account),
		Profile: profileFromModel(profile),
	}, nil
}

func (s *service) IsProfileComplete(ctx context.Context, rawAccountID string) (*ProfileCompleteResponse, error) {
	id, err := uuid.Parse(strings.TrimSpace(rawAccountID))
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid account id")
	}

	account, err := s.accounts.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "account not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load account")
	}

	return &ProfileCompleteResponse{
		AccountID:       account.ID,
		ProfileComplete: account.ProfileComplete,
	}, nil
}

func (s *service) uploadImage(ctx context.Context, accountID uuid.UUID, image *ImageUpload) (string, error) {
	if s.uploader == nil {
		return "", pkgerrors.New(pkgerrors.CodeDependency, "image store is not configured")
	}
	publicID := accountID.String()
	if ext := filepath.Ext(image.Filename); ext != "" {
		publicID += "-" + strings.TrimPrefix(ext, ".")
	}
	url, err := s.uploader.UploadImage(ctx, publicID, image.Body)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "upload profile image")
	}
	return url, nil
}

func applyAccountPatch(account *models.Account, req UpdateWorkerProfileRequest) error {
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, "name must not be empty")
		}
		account.Name = name
	}

	if req.Address == nil {
		return nil
	}

	// address sub-fields default from the existing record when omitted
	if req.Address.Line != nil {
		account.AddressLine = strings.TrimSpace(*req.Address.Line)
	}
	if req.Address.Pincode != nil {
		account.Pincode = strings.TrimSpace(*req.Address.Pincode)
	}
	if req.Address.Location != nil {
		point := types.GeoPoint{Lng: req.Address.Location.Lng, Lat: req.Address.Location.Lat}
		if !point.IsFinite() || !point.InRange() {
			return pkgerrors.New(pkgerrors.CodeValidation, "invalid address").
				WithDetails(map[string]string{"location": "coordinates must be finite and in range"})
		}
		account.Location = point
	}
	return nil
}

func applyProfilePatch(profile *models.WorkerProfile, req UpdateWorkerProfileRequest) error {
	if req.Skills != nil {
		if problems := enums.ValidateSkills(*req.Skills); len(problems) > 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "invalid skills").
				WithDetails(map[string][]string{"skills": problems})
		}
		profile.Skills = append([]string(nil), *req.Skills...)
	}
	if req.Status != nil {
		status, err := enums.ParseWorkerStatus(*req.Status)
		if err != nil {
			return pkgerrors.New(pkgerrors.CodeValidation, err.Error())
		}
		profile.Status = status
	}
	if req.VerificationStatus != nil {
		vs, err := enums.ParseVerificationStatus(*req.VerificationStatus)
		if err != nil {
			return pkgerrors.New(pkgerrors.CodeValidation, err.Error())
		}
		profile.VerificationStatus = vs
	}
	if req.Experience != nil {
		exp, err := enums.ParseExperienceLevel(*req.Experience)
		if err != nil {
			return pkgerrors.New(pkgerrors.CodeValidation, err.Error())
		}
		profile.Experience = exp
	}
	if req.HourlyRate != nil {
		if req.HourlyRate.IsNegative() {
			return pkgerrors.New(pkgerrors.CodeValidation, "hourly rate must not be negative")
		}
		profile.HourlyRate = *req.HourlyRate
	}
	if req.Availability != nil {
		profile.Availability = append([]string(nil), *req.Availability...)
	}
	if req.CompletedJobs != nil {
		profile.CompletedJobs = dbtypes.UUIDArray(append([]uuid.UUID(nil), *req.CompletedJobs...))
	}
	if req.OngoingJobs != nil {
		profile.OngoingJobs = dbtypes.UUIDArray(append([]uuid.UUID(nil), *req.OngoingJobs...))
	}
	return nil
}
