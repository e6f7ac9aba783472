package auth

import (
	"github.com/kaamsetu/gigwork-backend/internal/accounts"
)

// LocationInput carries coordinates the way callers write them, latitude
// first. Storage is [lng,lat], the service swaps the order exactly once.
type LocationInput struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// AddressInput is the address block accepted on signup.
type AddressInput struct {
	Line     string         `json:"address" validate:"required"`
	Pincode  string         `json:"pincode" validate:"required,len=6,numeric"`
	Location *LocationInput `json:"location"`
}

// SignupRequest captures the payload sent to the signup endpoint.
type SignupRequest struct {
	Name     string       `json:"name" validate:"required"`
	Email    string       `json:"email" validate:"required,email"`
	Phone    string       `json:"phone" validate:"required,len=10,numeric"`
	Role     string       `json:"role" validate:"omitempty,oneof=worker client admin"`
	Password string       `json:"password" validate:"required,min=8"`
	Address  AddressInput `json:"address" validate:"required"`
}

// SignupResponse returns the sanitized account created by signup.
type SignupResponse struct {
	Account *accounts.AccountDTO `json:"account"`
}

// LoginRequest carries exactly one identifier (email or phone) plus the password.
type LoginRequest struct {
	Email    string `json:"email" validate:"omitempty,email"`
	Phone    string `json:"phone" validate:"omitempty,len=10,numeric"`
	Password string `json:"password"`
}

// LoginResponse contains the access token and account produced by a successful login.
type LoginResponse struct {
	AccessToken string               `json:"access_token"`
	Account     *accounts.AccountDTO `json:"account"`
}
