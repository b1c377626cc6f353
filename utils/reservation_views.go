package utils

import (
	"sort"

	"github.com/teknocare/teknocare-api/models"
)

// CalendarVisibleLimit is how many reservations a calendar day cell shows
// before collapsing the rest into an overflow count.
const CalendarVisibleLimit = 3

// CalendarDay is one day bucket of the admin calendar month grid.
type CalendarDay struct {
	Date         string               `json:"date"` // YYYY-MM-DD
	Reservations []models.Reservation `json:"reservations"`
	Total        int                  `json:"total"`
	Overflow     int                  `json:"overflow"` // reservations beyond the visible limit
}

// ActiveReservations returns the reservations still in the workshop: repair
// status is neither cancelled, completed nor picked up.
func ActiveReservations(reservations []models.Reservation) []models.Reservation {
	active := make([]models.Reservation, 0, len(reservations))
	for _, r := range reservations {
		// "completed" is a legacy repair status written by an earlier schema;
		// rows carrying it still count as finished.
		switch r.RepairStatus {
		case models.RepairStatusCancelled, "completed", models.RepairStatusPickedUp:
			continue
		}
		active = append(active, r)
	}
	return active
}

// HistoryReservations returns the finished reservations: those whose repair
// status reached completed/picked_up, followed by those whose booking status
// is cancelled. A reservation matching both conditions appears twice; callers
// wanting a deduplicated list must do so themselves.
func HistoryReservations(reservations []models.Reservation) []models.Reservation {
	history := make([]models.Reservation, 0, len(reservations))
	for _, r := range reservations {
		if r.RepairStatus == "completed" || r.RepairStatus == models.RepairStatusPickedUp {
			history = append(history, r)
		}
	}
	for _, r := range reservations {
		if r.Status == models.StatusCancelled {
			history = append(history, r)
		}
	}
	return history
}

// CountByRepairStatus counts reservations per repair status. Every
// enumerated status is present in the result, zero when unused, so the admin
// summary tiles always render the full set.
func CountByRepairStatus(reservations []models.Reservation) map[string]int {
	counts := make(map[string]int, len(models.RepairStatuses))
	for _, s := range models.RepairStatuses {
		counts[s] = 0
	}
	for _, r := range reservations {
		counts[r.RepairStatus]++
	}
	return counts
}

// BuildCalendarDays partitions reservations into per-day buckets for the
// month grid, ordered by date. Each bucket shows at most CalendarVisibleLimit
// reservations; the remainder is reported as an overflow count.
func BuildCalendarDays(reservations []models.Reservation) []CalendarDay {
	byDate := make(map[string][]models.Reservation)
	for _, r := range reservations {
		byDate[r.BookingDate] = append(byDate[r.BookingDate], r)
	}

	dates := make([]string, 0, len(byDate))
	for date := range byDate {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	days := make([]CalendarDay, 0, len(dates))
	for _, date := range dates {
		dayReservations := byDate[date]
		visible := dayReservations
		overflow := 0
		if len(dayReservations) > CalendarVisibleLimit {
			visible = dayReservations[:CalendarVisibleLimit]
			overflow = len(dayReservations) - CalendarVisibleLimit
		}
		days = append(days, CalendarDay{
			Date:         date,
			Reservations: visible,
			Total:        len(dayReservations),
			Overflow:     overflow,
		})
	}
	return days
}
