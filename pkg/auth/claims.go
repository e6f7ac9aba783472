package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/kaamsetu/gigwork-backend/pkg/enums"
	"github.com/kaamsetu/gigwork-backend/pkg/types"
)

// TokenAddress is the denormalized address copy carried inside the token.
type TokenAddress struct {
	Line     string         `json:"address"`
	Pincode  string         `json:"pincode"`
	Location types.GeoPoint `json:"location"`
}

// AccessTokenPayload captures the data available when minting a token. The
// token is a capability: whoever holds it acts as the account, and no
// revocation list is consulted.
type AccessTokenPayload struct {
	AccountID    uuid.UUID
	Role         enums.Role
	Name         string
	Email        string
	Phone        string
	ProfileImage string
	Address      TokenAddress
}

// AccessTokenClaims is the typed JWT issued to clients.
type AccessTokenClaims struct {
	AccountID    uuid.UUID    `json:"account_id"`
	Role         enums.Role   `json:"role"`
	Name         string       `json:"name"`
	Email        string       `json:"email"`
	Phone        string       `json:"phone"`
	ProfileImage string       `json:"profile_image,omitempty"`
	Address      TokenAddress `json:"address"`
	jwt.RegisteredClaims
}
