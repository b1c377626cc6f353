package models

import "time"

// Testimonial is read-only editorial content shown on the storefront. No
// flow in the API mutates testimonials; rows are seeded directly in the
// database.
type Testimonial struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Role      string    `gorm:"not null" json:"role"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Rating    int       `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
	AvatarURL *string   `json:"avatar_url"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for the Testimonial model
func (Testimonial) TableName() string {
	return "testimonials"
}
