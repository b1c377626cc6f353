package models

import (
	"time"

	"gorm.io/gorm"
)

// Booking states (the commercial track of a reservation).
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Repair workflow states (the technical track, independent of the booking
// status). There is deliberately no transition validation: staff may move a
// reservation to any state, including backwards, to correct mistakes.
const (
	RepairStatusRegistered = "registered"
	RepairStatusReceived   = "received"
	RepairStatusDiagnosing = "diagnosing"
	RepairStatusRepairing  = "repairing"
	RepairStatusReady      = "ready"
	RepairStatusPickedUp   = "picked_up"
	RepairStatusCancelled  = "cancelled"
)

// Statuses lists the booking states in workflow order.
var Statuses = []string{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
	StatusCancelled,
}

// RepairStatuses lists the repair workflow states in workflow order.
var RepairStatuses = []string{
	RepairStatusRegistered,
	RepairStatusReceived,
	RepairStatusDiagnosing,
	RepairStatusRepairing,
	RepairStatusReady,
	RepairStatusPickedUp,
	RepairStatusCancelled,
}

// TimeSlots is the fixed set of bookable hourly slots (no 12:00, lunch break).
var TimeSlots = []string{
	"09:00",
	"10:00",
	"11:00",
	"13:00",
	"14:00",
	"15:00",
	"16:00",
}

// Reservation represents a customer's booking of a Service for a future
// date/time slot. It carries two independent status tracks: the booking
// status and the repair workflow status.
type Reservation struct {
	ID                 uint           `gorm:"primaryKey" json:"id"`
	UserID             uint           `gorm:"not null;index" json:"user_id"`
	User               Profile        `gorm:"foreignKey:UserID" json:"user"`
	ServiceID          uint           `gorm:"not null;index" json:"service_id"`
	Service            Service        `gorm:"foreignKey:ServiceID" json:"service"`
	BookingDate        string         `gorm:"not null;index" json:"booking_date"` // ISO calendar date, YYYY-MM-DD
	BookingTime        *string        `json:"booking_time"`                       // nullable, one of TimeSlots
	DeviceInfo         *string        `json:"device_info"`
	ProblemDescription *string        `json:"problem_description"`
	Status             string         `gorm:"not null;default:'pending'" json:"status"`
	RepairStatus       string         `gorm:"not null;default:'registered'" json:"repair_status"`
	AdminNotes         *string        `json:"admin_notes"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Reservation model
func (Reservation) TableName() string {
	return "reservations"
}

// IsValidStatus reports whether s is an enumerated booking status.
func IsValidStatus(s string) bool {
	for _, v := range Statuses {
		if v == s {
			return true
		}
	}
	return false
}

// IsValidRepairStatus reports whether s is an enumerated repair status.
func IsValidRepairStatus(s string) bool {
	for _, v := range RepairStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// IsValidTimeSlot reports whether t is one of the bookable hourly slots.
func IsValidTimeSlot(t string) bool {
	for _, v := range TimeSlots {
		if v == t {
			return true
		}
	}
	return false
}
