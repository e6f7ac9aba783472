package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/kaamsetu/gigwork-backend/internal/accounts"
	pkgAuth "github.com/kaamsetu/gigwork-backend/pkg/auth"
	"github.com/kaamsetu/gigwork-backend/pkg/config"
	"github.com/kaamsetu/gigwork-backend/pkg/db"
	"github.com/kaamsetu/gigwork-backend/pkg/db/models"
	"github.com/kaamsetu/gigwork-backend/pkg/enums"
	pkgerrors "github.com/kaamsetu/gigwork-backend/pkg/errors"
	"github.com/kaamsetu/gigwork-backend/pkg/security"
	"github.com/kaamsetu/gigwork-backend/pkg/types"
)

const (
	invalidCredentialsMessage = "invalid credentials"
	duplicateIdentityMessage  = "email or phone already registered"
)

// Service defines the behavior needed by the auth controller.
type Service interface {
	Signup(ctx context.Context, req SignupRequest) (*SignupResponse, error)
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
}

type accountRepository interface {
	Create(ctx context.Context, dto accounts.CreateAccountDTO) (*models.Account, error)
	FindByEmail(ctx context.Context, email string) (*models.Account, error)
	FindByPhone(ctx context.Context, phone string) (*models.Account, error)
	IdentityExists(ctx context.Context, email, phone string) (bool, error)
}

type service struct {
	accounts accountRepository
	jwtCfg   config.JWTConfig
	pwCfg    config.PasswordConfig
}

// ServiceParams bundles the dependencies required to build an auth service.
type ServiceParams struct {
	AccountRepo    accountRepository
	JWTConfig      config.JWTConfig
	PasswordConfig config.PasswordConfig
}

// NewService constructs an auth service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.AccountRepo == nil {
		return nil, fmt.Errorf("account repository is required")
	}
	return &service{
		accounts: params.AccountRepo,
		jwtCfg:   params.JWTConfig,
		pwCfg:    params.PasswordConfig,
	}, nil
}

func (s *service) Signup(ctx context.Context, req SignupRequest) (*SignupResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	phone := strings.TrimSpace(req.Phone)

	location, err := locationFromInput(req.Address.Location)
	if err != nil {
		return nil, err
	}

	role := enums.RoleWorker
	if strings.TrimSpace(req.Role) != "" {
		parsed, err := enums.ParseRole(req.Role)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid role").
				WithDetails(map[string]string{"role": err.Error()})
		}
		role = parsed
	}

	exists, err := s.accounts.IdentityExists(ctx, email, phone)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check identity")
	}
	if exists {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, duplicateIdentityMessage)
	}

	hash, err := security.HashPassword(req.Password, s.pwCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	account, err := s.accounts.Create(ctx, accounts.CreateAccountDTO{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		Phone:        phone,
		PasswordHash: hash,
		Role:         role,
		AddressLine:  strings.TrimSpace(req.Address.Line),
		Pincode:      strings.TrimSpace(req.Address.Pincode),
		Location:     location,
	})
	if err != nil {
		// the unique indexes are the last line of defense against a signup race
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, duplicateIdentityMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create account")
	}

	return &SignupResponse{Account: accounts.FromModel(account)}, nil
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	phone := strings.TrimSpace(req.Phone)

	// the auth path checks sequentially instead of aggregating
	if email == "" && phone == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email or phone is required")
	}
	if req.Password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "password is required")
	}

	var (
		account *models.Account
		err     error
	)
	if email != "" {
		account, err = s.accounts.FindByEmail(ctx, email)
	} else {
		account, err = s.accounts.FindByPhone(ctx, phone)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "account not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup account")
	}

	valid, err := security.VerifyPassword(req.Password, account.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !valid {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}

	token, err := pkgAuth.MintAccessToken(s.jwtCfg, time.Now().UTC(), pkgAuth.AccessTokenPayload{
		AccountID:    account.ID,
		Role:         account.Role,
		Name:         account.Name,
		Email:        account.Email,
		Phone:        account.Phone,
		ProfileImage: account.ProfileImage,
		Address: pkgAuth.TokenAddress{
			Line:     account.AddressLine,
			Pincode:  account.Pincode,
			Location: account.Location,
		},
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint jwt")
	}

	return &LoginResponse{
		AccessToken: token,
		Account:     accounts.FromModel(account),
	}, nil
}

func locationFromInput(input *LocationInput) (types.GeoPoint, error) {
	if input == nil {
		return types.GeoPoint{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid address").
			WithDetails(map[string]string{"location": "coordinates are required"})
	}
	point := types.GeoPoint{Lng: input.Lng, Lat: input.Lat}
	if !point.IsFinite() || !point.InRange() {
		return types.GeoPoint{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid address").
			WithDetails(map[string]string{"location": "coordinates must be finite and in range"})
	}
	return point, nil
}
