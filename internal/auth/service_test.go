package auth

import (
	"context"
	"math"
	"strings"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kaamsetu/gigwork-backend/internal/accounts"
	pkgAuth "github.com/kaamsetu/gigwork-backend/pkg/auth"
	"github.com/kaamsetu/gigwork-backend/pkg/config"
	"github.com/kaamsetu/gigwork-backend/pkg/db/models"
	"github.com/kaamsetu/gigwork-backend/pkg/enums"
	pkgerrors "github.com/kaamsetu/gigwork-backend/pkg/errors"
)

func testConfigs() (config.JWTConfig, config.PasswordConfig) {
	jwtCfg := config.JWTConfig{
		Secret:            "secret",
		Issuer:            "gigwork",
		ExpirationMinutes: 7 * 24 * 60,
	}
	pwCfg := config.PasswordConfig{
		ArgonMemoryKB:    8 * 1024,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	}
	return jwtCfg, pwCfg
}

func buildTestService(t *testing.T) (Service, *stubAccountRepo) {
	t.Helper()
	repo := newStubAccountRepo()
	jwtCfg, pwCfg := testConfigs()
	svc, err := NewService(ServiceParams{
		AccountRepo:    repo,
		JWTConfig:      jwtCfg,
		PasswordConfig: pwCfg,
	})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return svc, repo
}

func signupRequest() SignupRequest {
	return SignupRequest{
		Name:     "Asha Verma",
		Email:    "Asha@Example.com",
		Phone:    "9876543210",
		Password: "long-enough-secret",
		Address: AddressInput{
			Line:     "Linking Road, Bandra West",
			Pincode:  "400050",
			Location: &LocationInput{Lat: 19.07, Lng: 72.87},
		},
	}
}

func TestSignupThenLoginRoundTrip(t *testing.T) {
	svc, _ := buildTestService(t)
	ctx := context.Background()

	created, err := svc.Signup(ctx, signupRequest())
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if created.Account.Email != "asha@example.com" {
		t.Fatalf("expected lowercased email, got %q", created.Account.Email)
	}
	if created.Account.Role != enums.RoleWorker {
		t.Fatalf("expected default worker role, got %s", created.Account.Role)
	}
	if created.Account.Address.Location.Lng != 72.87 || created.Account.Address.Location.Lat != 19.07 {
		t.Fatalf("coordinates not stored [lng,lat]: %+v", created.Account.Address.Location)
	}
	if created.Account.ProfileImage == "" {
		t.Fatalf("expected default avatar to be applied")
	}

	resp, err := svc.Login(ctx, LoginRequest{
		Email:    "asha@example.com",
		Password: "long-enough-secret",
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	jwtCfg, _ := testConfigs()
	claims, err := pkgAuth.ParseAccessToken(jwtCfg, resp.AccessToken)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}
	if claims.AccountID != created.Account.ID {
		t.Fatalf("token carries wrong account id")
	}
	if claims.Address.Location.Lng != 72.87 {
		t.Fatalf("token address location not preserved: %+v", claims.Address.Location)
	}
}

func TestLoginByPhone(t *testing.T) {
	svc, _ := buildTestService(t)
	ctx := context.Background()

	if _, err := svc.Signup(ctx, signupRequest()); err != nil {
		t.Fatalf("signup: %v", err)
	}
	if _, err := svc.Login(ctx, LoginRequest{
		Phone:    "9876543210",
		Password: "long-enough-secret",
	}); err != nil {
		t.Fatalf("login by phone: %v", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := buildTestService(t)
	ctx := context.Background()

	if _, err := svc.Signup(ctx, signupRequest()); err != nil {
		t.Fatalf("signup: %v", err)
	}

	_, err := svc.Login(ctx, LoginRequest{
		Email:    "asha@example.com",
		Password: "not-the-password",
	})
	assertCode(t, err, pkgerrors.CodeUnauthorized)
}

func TestLoginUnknownAccount(t *testing.T) {
	svc, _ := buildTestService(t)
	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	assertCode(t, err, pkgerrors.CodeNotFound)
}

func TestLoginMissingIdentifier(t *testing.T) {
	svc, _ := buildTestService(t)
	_, err := svc.Login(context.Background(), LoginRequest{Password: "whatever"})
	assertCode(t, err, pkgerrors.CodeValidation)
}

func TestLoginMissingPassword(t *testing.T) {
	svc, _ := buildTestService(t)
	_, err := svc.Login(context.Background(), LoginRequest{Email: "asha@example.com"})
	assertCode(t, err, pkgerrors.CodeValidation)
}

func TestSignupDuplicateIdentity(t *testing.T) {
	svc, _ := buildTestService(t)
	ctx := context.Background()

	if _, err := svc.Signup(ctx, signupRequest()); err != nil {
		t.Fatalf("signup: %v", err)
	}

	dup := signupRequest()
	dup.Phone = "9000000000" // same email
	_, err := svc.Signup(ctx, dup)
	assertCode(t, err, pkgerrors.CodeConflict)

	dup = signupRequest()
	dup.Email = "other@example.com" // same phone
	_, err = svc.Signup(ctx, dup)
	assertCode(t, err, pkgerrors.CodeConflict)
}

func TestSignupRejectsNonFiniteCoordinates(t *testing.T) {
	svc, _ := buildTestService(t)

	req := signupRequest()
	req.Address.Location = &LocationInput{Lat: math.NaN(), Lng: 72.87}
	_, err := svc.Signup(context.Background(), req)
	assertCode(t, err, pkgerrors.CodeValidation)

	req = signupRequest()
	req.Address.Location = nil
	_, err = svc.Signup(context.Background(), req)
	assertCode(t, err, pkgerrors.CodeValidation)
}

func assertCode(t *testing.T, err error, want pkgerrors.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", want)
	}
	typed := pkgerrors.As(err)
	if typed == nil {
		t.Fatalf("expected typed error, got %v", err)
	}
	if typed.Code() != want {
		t.Fatalf("expected code %s, got %s (%v)", want, typed.Code(), err)
	}
}

type stubAccountRepo struct {
	byEmail map[string]*models.Account
	byPhone map[string]*models.Account
}

func newStubAccountRepo() *stubAccountRepo {
	return &stubAccountRepo{
		byEmail: map[string]*models.Account{},
		byPhone: map[string]*models.Account{},
	}
}

func (r *stubAccountRepo) Create(_ context.Context, dto accounts.CreateAccountDTO) (*models.Account, error) {
	account := dto.ToModel()
	account.ID = uuid.New()
	r.byEmail[strings.ToLower(account.Email)] = account
	r.byPhone[account.Phone] = account
	return account, nil
}

func (r *stubAccountRepo) FindByEmail(_ context.Context, email string) (*models.Account, error) {
	if account, ok := r.byEmail[email]; ok {
		return account, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubAccountRepo) FindByPhone(_ context.Context, phone string) (*models.Account, error) {
	if account, ok := r.byPhone[phone]; ok {
		return account, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubAccountRepo) IdentityExists(_ context.Context, email, phone string) (bool, error) {
	_, emailTaken := r.byEmail[email]
	_, phoneTaken := r.byPhone[phone]
	return emailTaken || phoneTaken, nil
}
