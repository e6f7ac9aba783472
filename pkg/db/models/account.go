package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/kaamsetu/gigwork-backend/pkg/enums"
	"github.com/kaamsetu/gigwork-backend/pkg/types"
)

// DefaultProfileImage is used when signup carries no photo.
const DefaultProfileImage = "https://res.cloudinary.com/gigwork/image/upload/defaults/avatar.png"

// Account is the canonical identity entity. Accounts are never deleted.
type Account struct {
	ID              uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name            string         `gorm:"column:name;not null"`
	Email           string         `gorm:"type:text;not null;uniqueIndex:accounts_email_key"`
	Phone           string         `gorm:"type:text;not null;uniqueIndex:accounts_phone_key"`
	PasswordHash    string         `gorm:"column:password_hash;not null"`
	Role            enums.Role     `gorm:"column:role;type:text;not null;default:'worker'"`
	AddressLine     string         `gorm:"column:address_line;not null"`
	Pincode         string         `gorm:"column:pincode;not null"`
	Location        types.GeoPoint `gorm:"column:location;type:geography(Point,4326);not null"`
	ProfileImage    string         `gorm:"column:profile_image;not null"`
	ProfileComplete bool           `gorm:"column:profile_complete;not null;default:false"`
	CreatedAt       time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
