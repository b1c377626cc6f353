package models

import (
	"time"

	"gorm.io/gorm"
)

// Consultation triage states. No transition rules are enforced; admins set
// any state at any time.
const (
	ConsultationStatusNew        = "new"
	ConsultationStatusInProgress = "in_progress"
	ConsultationStatusResolved   = "resolved"
)

// ConsultationStatuses lists the triage states.
var ConsultationStatuses = []string{
	ConsultationStatusNew,
	ConsultationStatusInProgress,
	ConsultationStatusResolved,
}

// Consultation is a contact-form submission. Visitors (anonymous or
// authenticated) create them; admins read and triage them.
type Consultation struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"not null" json:"name"`
	Email     string         `gorm:"not null" json:"email"`
	Phone     *string        `json:"phone"`
	Message   string         `gorm:"type:text;not null" json:"message"`
	Status    string         `gorm:"not null;default:'new'" json:"status"` // "new", "in_progress" or "resolved"
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Consultation model
func (Consultation) TableName() string {
	return "consultations"
}

// IsValidConsultationStatus reports whether s is an enumerated triage state.
func IsValidConsultationStatus(s string) bool {
	for _, v := range ConsultationStatuses {
		if v == s {
			return true
		}
	}
	return false
}
