package utils

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/teknocare/teknocare-api/models"
)

var (
	emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	// Digit-only phone for profile updates, 10-15 digits.
	profilePhoneRegex = regexp.MustCompile(`^[0-9]{10,15}$`)
	// Loose international phone for the contact form.
	contactPhoneRegex = regexp.MustCompile(`^[+]?[0-9\s\-()]{8,20}$`)
	timeSlotRegex     = regexp.MustCompile(`^([0-1][0-9]|2[0-3]):[0-5][0-9]$`)
)

// FieldError is a single field-level validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors is an ordered list of field errors. Only the first error
// per field is recorded, matching what the forms surface to the user.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return "validation failed"
	}
	parts := make([]string, len(v))
	for i, fe := range v {
		parts[i] = fmt.Sprintf("%s: %s", fe.Field, fe.Message)
	}
	return strings.Join(parts, "; ")
}

// add appends an error for field unless one is already recorded.
func (v *ValidationErrors) add(field, message string) {
	for _, fe := range *v {
		if fe.Field == field {
			return
		}
	}
	*v = append(*v, FieldError{Field: field, Message: message})
}

// BookingInput is the customer booking form.
type BookingInput struct {
	ServiceID          uint
	BookingDate        string
	BookingTime        string
	DeviceInfo         string
	ProblemDescription string
}

// ValidateBooking checks the booking form against a fixed clock. The booking
// date must be strictly after the day of submission (no same-day bookings)
// and the time slot must be one of the published hourly slots.
func ValidateBooking(input BookingInput, now time.Time) ValidationErrors {
	var errs ValidationErrors

	if input.ServiceID == 0 {
		errs.add("service_id", "Service is required")
	}

	if input.BookingDate == "" {
		errs.add("booking_date", "Booking date is required")
	} else if date, err := time.Parse("2006-01-02", input.BookingDate); err != nil {
		errs.add("booking_date", "Booking date must be a valid date (YYYY-MM-DD)")
	} else {
		tomorrow := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)
		if date.Before(tomorrow) {
			errs.add("booking_date", "Booking date must be tomorrow or later")
		}
	}

	if input.BookingTime != "" {
		if !timeSlotRegex.MatchString(input.BookingTime) {
			errs.add("booking_time", "Booking time must be in HH:MM format")
		} else if !models.IsValidTimeSlot(input.BookingTime) {
			errs.add("booking_time", "Booking time must be one of the available slots")
		}
	}

	if input.DeviceInfo != "" {
		if len(input.DeviceInfo) < 3 {
			errs.add("device_info", "Device info must be at least 3 characters")
		} else if len(input.DeviceInfo) > 200 {
			errs.add("device_info", "Device info must be at most 200 characters")
		}
	}

	if input.ProblemDescription != "" {
		if len(input.ProblemDescription) < 10 {
			errs.add("problem_description", "Problem description must be at least 10 characters")
		} else if len(input.ProblemDescription) > 1000 {
			errs.add("problem_description", "Problem description must be at most 1000 characters")
		}
	}

	return errs
}

// ProfileUpdateInput is the profile settings form.
type ProfileUpdateInput struct {
	FullName string
	Phone    string
	Address  string
}

// ValidateProfileUpdate checks the profile settings form.
func ValidateProfileUpdate(input ProfileUpdateInput) ValidationErrors {
	var errs ValidationErrors

	if len(input.FullName) < 2 {
		errs.add("full_name", "Full name must be at least 2 characters")
	} else if len(input.FullName) > 100 {
		errs.add("full_name", "Full name must be at most 100 characters")
	}

	if input.Phone != "" && !profilePhoneRegex.MatchString(input.Phone) {
		errs.add("phone", "Phone must be 10-15 digits")
	}

	if len(input.Address) > 500 {
		errs.add("address", "Address must be at most 500 characters")
	}

	return errs
}

// ContactInput is the public contact form.
type ContactInput struct {
	Name    string
	Email   string
	Phone   string
	Message string
}

// ValidateContact checks the contact form.
func ValidateContact(input ContactInput) ValidationErrors {
	var errs ValidationErrors

	if len(input.Name) < 2 {
		errs.add("name", "Name must be at least 2 characters")
	} else if len(input.Name) > 100 {
		errs.add("name", "Name must be at most 100 characters")
	}

	if input.Email == "" {
		errs.add("email", "Email is required")
	} else if !emailRegex.MatchString(input.Email) {
		errs.add("email", "Email format is invalid")
	}

	if input.Phone != "" && !contactPhoneRegex.MatchString(input.Phone) {
		errs.add("phone", "Phone number format is invalid")
	}

	if len(input.Message) < 10 {
		errs.add("message", "Message must be at least 10 characters")
	} else if len(input.Message) > 2000 {
		errs.add("message", "Message must be at most 2000 characters")
	}

	return errs
}

// ServiceInput is the admin service form.
type ServiceInput struct {
	Name            string
	Description     string
	Price           float64
	DurationMinutes *int
}

// ValidateService checks the admin service form.
func ValidateService(input ServiceInput) ValidationErrors {
	var errs ValidationErrors

	if len(input.Name) < 3 {
		errs.add("name", "Name must be at least 3 characters")
	} else if len(input.Name) > 100 {
		errs.add("name", "Name must be at most 100 characters")
	}

	if len(input.Description) > 500 {
		errs.add("description", "Description must be at most 500 characters")
	}

	if input.Price < 0 {
		errs.add("price", "Price must not be negative")
	} else if input.Price > 100000000 {
		errs.add("price", "Price is too large")
	}

	if input.DurationMinutes != nil {
		if *input.DurationMinutes < 15 {
			errs.add("duration_minutes", "Duration must be at least 15 minutes")
		} else if *input.DurationMinutes > 480 {
			errs.add("duration_minutes", "Duration must be at most 8 hours")
		}
	}

	return errs
}

// ProductInput is the admin product form.
type ProductInput struct {
	Name        string
	Description string
	Price       float64
	Stock       int
	Category    string
}

// ValidateProduct checks the admin product form. The category list itself is
// checked by the caller against the fixed catalog.
func ValidateProduct(input ProductInput) ValidationErrors {
	var errs ValidationErrors

	if len(input.Name) < 3 {
		errs.add("name", "Name must be at least 3 characters")
	} else if len(input.Name) > 100 {
		errs.add("name", "Name must be at most 100 characters")
	}

	if len(input.Description) > 500 {
		errs.add("description", "Description must be at most 500 characters")
	}

	if input.Price < 0 {
		errs.add("price", "Price must not be negative")
	} else if input.Price > 100000000 {
		errs.add("price", "Price is too large")
	}

	if input.Stock < 0 {
		errs.add("stock", "Stock must not be negative")
	} else if input.Stock > 10000 {
		errs.add("stock", "Stock is too large")
	}

	if input.Category == "" {
		errs.add("category", "Category is required")
	} else if len(input.Category) > 50 {
		errs.add("category", "Category must be at most 50 characters")
	}

	return errs
}
