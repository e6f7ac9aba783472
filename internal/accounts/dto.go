package accounts

import (
	"time"

	"github.com/google/uuid"

	"github.com/kaamsetu/gigwork-backend/pkg/db/models"
	"github.com/kaamsetu/gigwork-backend/pkg/enums"
	"github.com/kaamsetu/gigwork-backend/pkg/types"
)

// AddressDTO groups the address fields every account carries.
type AddressDTO struct {
	Line     string         `json:"address"`
	Pincode  string         `json:"pincode"`
	Location types.GeoPoint `json:"location"`
}

// AccountDTO is the transport shape that omits the credential digest.
type AccountDTO struct {
	ID              uuid.UUID  `json:"id"`
	Name            string     `json:"name"`
	Email           string     `json:"email"`
	Phone           string     `json:"phone"`
	Role            enums.Role `json:"role"`
	Address         AddressDTO `json:"address"`
	ProfileImage    string     `json:"profile_image"`
	ProfileComplete bool       `json:"profile_complete"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// OwnerDTO is the restricted projection of a job owner exposed on job detail.
type OwnerDTO struct {
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	Phone        string     `json:"phone"`
	Role         enums.Role `json:"role"`
	ProfileImage string     `json:"profile_image"`
	Address      AddressDTO `json:"address"`
}

// CreateAccountDTO holds the data required by the repo to persist a new account.
type CreateAccountDTO struct {
	Name         string
	Email        string
	Phone        string
	PasswordHash string
	Role         enums.Role
	AddressLine  string
	Pincode      string
	Location     types.GeoPoint
	ProfileImage string
}

func FromModel(a *models.Account) *AccountDTO {
	if a == nil {
		return nil
	}

	return &AccountDTO{
		ID:              a.ID,
		Name:            a.Name,
		Email:           a.Email,
		Phone:           a.Phone,
		Role:            a.Role,
		Address:         addressFromModel(a),
		ProfileImage:    a.ProfileImage,
		ProfileComplete: a.ProfileComplete,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

// OwnerFromModel builds the restricted owner projection.
func OwnerFromModel(a *models.Account) *OwnerDTO {
	if a == nil {
		return nil
	}

	return &OwnerDTO{
		Name:         a.Name,
		Email:        a.Email,
		Phone:        a.Phone,
		Role:         a.Role,
		ProfileImage: a.ProfileImage,
		Address:      addressFromModel(a),
	}
}

func addressFromModel(a *models.Account) AddressDTO {
	return AddressDTO{
		Line:     a.AddressLine,
		Pincode:  a.Pincode,
		Location: a.Location,
	}
}

func (c CreateAccountDTO) ToModel() *models.Account {
	role := c.Role
	if !role.IsValid() {
		role = enums.RoleWorker
	}
	image := c.ProfileImage
	if image == "" {
		image = models.DefaultProfileImage
	}

	return &models.Account{
		Name:         c.Name,
		Email:        c.Email,
		Phone:        c.Phone,
		PasswordHash: c.PasswordHash,
		Role:         role,
		AddressLine:  c.AddressLine,
		Pincode:      c.Pincode,
		Location:     c.Location,
		ProfileImage: image,
	}
}
