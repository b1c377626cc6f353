package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/teknocare/teknocare-api/config"
	"github.com/teknocare/teknocare-api/models"
	"github.com/teknocare/teknocare-api/utils"
)

// CreateReservationRequest represents the request body for creating a reservation
type CreateReservationRequest struct {
	ServiceID          uint   `json:"service_id"`
	BookingDate        string `json:"booking_date"`
	BookingTime        string `json:"booking_time"`
	DeviceInfo         string `json:"device_info"`
	ProblemDescription string `json:"problem_description"`
}

// UpdateStatusRequest represents the request body for updating a booking status
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateRepairStatusRequest represents the request body for updating a repair status
type UpdateRepairStatusRequest struct {
	RepairStatus string `json:"repair_status" binding:"required"`
}

// UpdateNotesRequest represents the request body for updating admin notes
type UpdateNotesRequest struct {
	AdminNotes string `json:"admin_notes"`
}

// CreateReservation handles POST /api/v1/reservations - books a service slot
func CreateReservation(c *gin.Context) {
	profile, ok := currentProfile(c)
	if !ok {
		return
	}

	// Parse request body
	var req CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	// Validate the booking form before touching the database
	if errs := utils.ValidateBooking(utils.BookingInput{
		ServiceID:          req.ServiceID,
		BookingDate:        req.BookingDate,
		BookingTime:        req.BookingTime,
		DeviceInfo:         req.DeviceInfo,
		ProblemDescription: req.ProblemDescription,
	}, time.Now()); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": errs,
			},
		})
		return
	}

	// The booked service must exist
	db := config.GetDB()
	var service models.Service
	if err := db.First(&service, req.ServiceID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "SERVICE_NOT_FOUND",
				"message": "Service not found",
			},
		})
		return
	}

	// Fast-path conflict check: one non-cancelled reservation per user, date
	// and slot. The partial unique index is the real guarantee; a concurrent
	// insert is caught below as a duplicate-key error.
	if req.BookingTime != "" {
		var count int64
		if err := db.Model(&models.Reservation{}).
			Where("user_id = ? AND booking_date = ? AND booking_time = ? AND status <> ?",
				profile.ID, req.BookingDate, req.BookingTime, models.StatusCancelled).
			Count(&count).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATABASE_ERROR",
					"message": "Failed to check slot availability",
				},
			})
			return
		}
		if count > 0 {
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "SLOT_ALREADY_BOOKED",
					"message": "You already have a reservation for this date and time",
				},
			})
			return
		}
	}

	reservation := models.Reservation{
		UserID:       profile.ID,
		ServiceID:    req.ServiceID,
		BookingDate:  req.BookingDate,
		Status:       models.StatusPending,
		RepairStatus: models.RepairStatusRegistered,
	}
	if req.BookingTime != "" {
		reservation.BookingTime = &req.BookingTime
	}
	if req.DeviceInfo != "" {
		reservation.DeviceInfo = &req.DeviceInfo
	}
	if req.ProblemDescription != "" {
		reservation.ProblemDescription = &req.ProblemDescription
	}

	if err := db.Create(&reservation).Error; err != nil {
		if isDuplicateKeyError(err) {
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "SLOT_ALREADY_BOOKED",
					"message": "You already have a reservation for this date and time",
				},
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create reservation",
			},
		})
		return
	}

	// Load relationships to return complete data
	if err := db.Preload("User").Preload("Service").First(&reservation, reservation.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load reservation details",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    reservation,
	})
}

// ListMyReservations handles GET /api/v1/reservations - lists the caller's reservations
func ListMyReservations(c *gin.Context) {
	profile, ok := currentProfile(c)
	if !ok {
		return
	}

	db := config.GetDB()
	var reservations []models.Reservation
	if err := db.Preload("Service").
		Where("user_id = ?", profile.ID).
		Order("created_at DESC").
		Find(&reservations).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load reservations",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    reservations,
	})
}

// CancelReservation handles PUT /api/v1/reservations/:id/cancel - owner cancels a booking
func CancelReservation(c *gin.Context) {
	profile, ok := currentProfile(c)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid reservation ID",
			},
		})
		return
	}

	db := config.GetDB()
	var reservation models.Reservation
	if err := db.First(&reservation, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "RESERVATION_NOT_FOUND",
				"message": "Reservation not found",
			},
		})
		return
	}

	// Only the owner may cancel
	if reservation.UserID != profile.ID {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "You can only cancel your own reservations",
			},
		})
		return
	}

	if reservation.Status == models.StatusCompleted || reservation.Status == models.StatusCancelled {
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_STATE",
				"message": "Reservation can no longer be cancelled",
			},
		})
		return
	}

	// Cancelling closes both tracks at once
	if err := db.Model(&reservation).Updates(map[string]interface{}{
		"status":        models.StatusCancelled,
		"repair_status": models.RepairStatusCancelled,
	}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to cancel reservation",
			},
		})
		return
	}

	if err := db.Preload("Service").First(&reservation, reservation.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load reservation details",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    reservation,
	})
}

// ListAllReservations handles GET /api/v1/admin/reservations - admin list with filters
func ListAllReservations(c *gin.Context) {
	if _, ok := requireAdmin(c); !ok {
		return
	}

	db := config.GetDB()
	query := db.Model(&models.Reservation{}).
		Joins("JOIN profiles ON profiles.id = reservations.user_id").
		Joins("JOIN services ON services.id = reservations.service_id").
		Preload("User").Preload("Service")

	// Free-text search over customer name, email, service name and device info
	if search := c.Query("search"); search != "" {
		pattern := "%" + search + "%"
		query = query.Where(
			"LOWER(profiles.full_name) LIKE LOWER(?) OR LOWER(profiles.email) LIKE LOWER(?) OR LOWER(services.name) LIKE LOWER(?) OR LOWER(reservations.device_info) LIKE LOWER(?)",
			pattern, pattern, pattern, pattern,
		)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("reservations.status = ?", status)
	}
	if repairStatus := c.Query("repair_status"); repairStatus != "" {
		query = query.Where("reservations.repair_status = ?", repairStatus)
	}
	// booking_date is an ISO date string, so lexical comparison is date order
	if startDate := c.Query("start_date"); startDate != "" {
		query = query.Where("reservations.booking_date >= ?", startDate)
	}
	if endDate := c.Query("end_date"); endDate != "" {
		query = query.Where("reservations.booking_date <= ?", endDate)
	}

	var reservations []models.Reservation
	if err := query.Order("reservations.created_at DESC").Find(&reservations).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load reservations",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    reservations,
	})
}

// UpdateReservationStatus handles PUT /api/v1/admin/reservations/:id/status
func UpdateReservationStatus(c *gin.Context) {
	if _, ok := requireAdmin(c); !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil || !models.IsValidStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Status must be one of: pending, confirmed, completed, cancelled",
			},
		})
		return
	}

	db := config.GetDB()
	var reservation models.Reservation
	if err := db.First(&reservation, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "RESERVATION_NOT_FOUND",
				"message": "Reservation not found",
			},
		})
		return
	}

	// Staff may set any status over any current status, including backwards,
	// to correct mistakes.
	if err := db.Model(&reservation).Update("status", req.Status).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update reservation status",
			},
		})
		return
	}

	if err := db.Preload("User").Preload("Service").First(&reservation, reservation.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load reservation details",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    reservation,
	})
}

// UpdateRepairStatus handles PUT /api/v1/admin/reservations/:id/repair-status
func UpdateRepairStatus(c *gin.Context) {
	if _, ok := requireAdmin(c); !ok {
		return
	}

	var req UpdateRepairStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil || !models.IsValidRepairStatus(req.RepairStatus) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Repair status must be one of: registered, received, diagnosing, repairing, ready, picked_up, cancelled",
			},
		})
		return
	}

	db := config.GetDB()
	var reservation models.Reservation
	if err := db.First(&reservation, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "RESERVATION_NOT_FOUND",
				"message": "Reservation not found",
			},
		})
		return
	}

	if err := db.Model(&reservation).Update("repair_status", req.RepairStatus).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update repair status",
			},
		})
		return
	}

	if err := db.Preload("User").Preload("Service").First(&reservation, reservation.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load reservation details",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    reservation,
	})
}

// UpdateAdminNotes handles PUT /api/v1/admin/reservations/:id/notes
func UpdateAdminNotes(c *gin.Context) {
	if _, ok := requireAdmin(c); !ok {
		return
	}

	var req UpdateNotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	db := config.GetDB()
	var reservation models.Reservation
	if err := db.First(&reservation, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "RESERVATION_NOT_FOUND",
				"message": "Reservation not found",
			},
		})
		return
	}

	// Notes are overwritten unconditionally, never appended
	if err := db.Model(&reservation).Update("admin_notes", req.AdminNotes).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update notes",
			},
		})
		return
	}

	if err := db.Preload("User").Preload("Service").First(&reservation, reservation.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load reservation details",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    reservation,
	})
}
