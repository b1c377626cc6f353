package models

import (
	"time"

	"gorm.io/gorm"
)

// Profile roles
const (
	RoleUser       = "user"
	RoleAdmin      = "admin"
	RoleTechnician = "technician"
)

// Profile represents an authenticated user's profile. Exactly one profile
// exists per Auth0 subject; it is created on first login and only the owner
// may change the contact fields.
type Profile struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Auth0ID   string         `gorm:"uniqueIndex;not null" json:"auth0_id"` // Auth0 user ID (from 'sub' claim)
	FullName  string         `gorm:"not null" json:"full_name"`
	Email     string         `gorm:"uniqueIndex;not null" json:"email"`
	Phone     *string        `json:"phone"`
	Address   *string        `json:"address"`
	Role      string         `gorm:"not null;default:'user'" json:"role"` // "user", "admin" or "technician"
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Profile model
func (Profile) TableName() string {
	return "profiles"
}

// IsAdmin reports whether the profile has the admin role.
func (p *Profile) IsAdmin() bool {
	return p.Role == RoleAdmin
}
