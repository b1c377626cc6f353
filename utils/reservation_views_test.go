package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/teknocare/teknocare-api/models"
)

func reservation(id uint, date, status, repairStatus string) models.Reservation {
	return models.Reservation{
		ID:           id,
		BookingDate:  date,
		Status:       status,
		RepairStatus: repairStatus,
	}
}

func TestActiveReservations(t *testing.T) {
	input := []models.Reservation{
		reservation(1, "2026-09-01", models.StatusConfirmed, models.RepairStatusRegistered),
		reservation(2, "2026-09-02", models.StatusConfirmed, models.RepairStatusRepairing),
		reservation(3, "2026-09-03", models.StatusCompleted, models.RepairStatusPickedUp),
		reservation(4, "2026-09-04", models.StatusCancelled, models.RepairStatusCancelled),
		// Rows written by the earlier schema carry "completed" as a repair
		// status; they count as finished
		reservation(5, "2026-09-05", models.StatusCompleted, "completed"),
	}

	active := ActiveReservations(input)

	assert.Len(t, active, 2)
	assert.Equal(t, uint(1), active[0].ID)
	assert.Equal(t, uint(2), active[1].ID)
}

func TestHistoryReservations(t *testing.T) {
	input := []models.Reservation{
		reservation(1, "2026-09-01", models.StatusConfirmed, models.RepairStatusRegistered),
		reservation(2, "2026-09-02", models.StatusCompleted, models.RepairStatusPickedUp),
		reservation(3, "2026-09-03", models.StatusCancelled, models.RepairStatusCancelled),
		reservation(4, "2026-09-04", models.StatusCompleted, "completed"),
	}

	history := HistoryReservations(input)

	// Finished rows first, then cancelled rows
	assert.Len(t, history, 3)
	assert.Equal(t, uint(2), history[0].ID)
	assert.Equal(t, uint(4), history[1].ID)
	assert.Equal(t, uint(3), history[2].ID)
}

func TestHistoryReservations_DoubleEntry(t *testing.T) {
	// A reservation that is both picked up and cancelled shows up in both
	// passes; the view does not deduplicate
	input := []models.Reservation{
		reservation(1, "2026-09-01", models.StatusCancelled, models.RepairStatusPickedUp),
	}

	history := HistoryReservations(input)

	assert.Len(t, history, 2)
	assert.Equal(t, uint(1), history[0].ID)
	assert.Equal(t, uint(1), history[1].ID)
}

func TestCountByRepairStatus(t *testing.T) {
	input := []models.Reservation{
		reservation(1, "2026-09-01", models.StatusPending, models.RepairStatusRegistered),
		reservation(2, "2026-09-02", models.StatusConfirmed, models.RepairStatusReceived),
		reservation(3, "2026-09-03", models.StatusConfirmed, models.RepairStatusRepairing),
		reservation(4, "2026-09-04", models.StatusConfirmed, models.RepairStatusRepairing),
		reservation(5, "2026-09-05", models.StatusConfirmed, models.RepairStatusReady),
		reservation(6, "2026-09-06", models.StatusCompleted, models.RepairStatusPickedUp),
		reservation(7, "2026-09-07", models.StatusCancelled, models.RepairStatusCancelled),
	}

	counts := CountByRepairStatus(input)

	assert.Equal(t, map[string]int{
		"registered": 1,
		"received":   1,
		"diagnosing": 0,
		"repairing":  2,
		"ready":      1,
		"picked_up":  1,
		"cancelled":  1,
	}, counts)
}

func TestCountByRepairStatus_Empty(t *testing.T) {
	counts := CountByRepairStatus(nil)

	// Every enumerated status is present even with no reservations
	assert.Len(t, counts, len(models.RepairStatuses))
	for _, status := range models.RepairStatuses {
		assert.Equal(t, 0, counts[status])
	}
}

func TestBuildCalendarDays(t *testing.T) {
	input := []models.Reservation{
		reservation(1, "2026-09-10", models.StatusConfirmed, models.RepairStatusRegistered),
		reservation(2, "2026-09-10", models.StatusConfirmed, models.RepairStatusRegistered),
		reservation(3, "2026-09-10", models.StatusConfirmed, models.RepairStatusRegistered),
		reservation(4, "2026-09-10", models.StatusConfirmed, models.RepairStatusRegistered),
		reservation(5, "2026-09-10", models.StatusConfirmed, models.RepairStatusRegistered),
		reservation(6, "2026-09-02", models.StatusPending, models.RepairStatusRegistered),
	}

	days := BuildCalendarDays(input)

	// Ordered by date
	assert.Len(t, days, 2)
	assert.Equal(t, "2026-09-02", days[0].Date)
	assert.Equal(t, "2026-09-10", days[1].Date)

	// The quiet day has no overflow
	assert.Equal(t, 1, days[0].Total)
	assert.Equal(t, 0, days[0].Overflow)
	assert.Len(t, days[0].Reservations, 1)

	// The busy day collapses to the visible limit
	assert.Equal(t, 5, days[1].Total)
	assert.Equal(t, 2, days[1].Overflow)
	assert.Len(t, days[1].Reservations, CalendarVisibleLimit)
}

func TestBuildCalendarDays_Empty(t *testing.T) {
	assert.Empty(t, BuildCalendarDays(nil))
}
