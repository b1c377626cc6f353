package models

import (
	"time"

	"gorm.io/gorm"
)

// Service represents a bookable repair offering managed by admins.
type Service struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	Name            string         `gorm:"not null" json:"name"`
	Description     string         `json:"description"`
	Price           float64        `gorm:"not null;check:price >= 0" json:"price"`
	DurationMinutes *int           `json:"duration_minutes"` // nullable, estimated duration
	Icon            *string        `json:"icon"`             // nullable, icon reference for the storefront
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Service model
func (Service) TableName() string {
	return "services"
}
