package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/teknocare/teknocare-api/config"
	"github.com/teknocare/teknocare-api/models"
	"github.com/teknocare/teknocare-api/utils"
)

// GetAdminDashboard handles GET /api/v1/admin/dashboard - entity totals,
// repair workflow tile counts and the most recent activity
func GetAdminDashboard(c *gin.Context) {
	if _, ok := requireAdmin(c); !ok {
		return
	}

	db := config.GetDB()

	var reservationCount, productCount, serviceCount, profileCount int64
	counts := []struct {
		model interface{}
		dest  *int64
	}{
		{&models.Reservation{}, &reservationCount},
		{&models.Product{}, &productCount},
		{&models.Service{}, &serviceCount},
		{&models.Profile{}, &profileCount},
	}
	for _, count := range counts {
		if err := db.Model(count.model).Count(count.dest).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATABASE_ERROR",
					"message": "Failed to load dashboard counts",
				},
			})
			return
		}
	}

	// Tile counts always cover the full repair workflow, zeros included
	var allReservations []models.Reservation
	if err := db.Find(&allReservations).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load reservations",
			},
		})
		return
	}
	repairStatusCounts := utils.CountByRepairStatus(allReservations)

	var recentReservations []models.Reservation
	if err := db.Preload("User").Preload("Service").
		Order("created_at DESC").
		Limit(5).
		Find(&recentReservations).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load recent reservations",
			},
		})
		return
	}

	var recentConsultations []models.Consultation
	if err := db.Order("created_at DESC").
		Limit(5).
		Find(&recentConsultations).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load recent consultations",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"totals": gin.H{
				"reservations": reservationCount,
				"products":     productCount,
				"services":     serviceCount,
				"profiles":     profileCount,
			},
			"repair_status_counts": repairStatusCounts,
			"recent_reservations":  recentReservations,
			"recent_consultations": recentConsultations,
		},
	})
}

// GetAdminCalendar handles GET /api/v1/admin/calendar?month=YYYY-MM - the
// month grid of reservations, bucketed per day with an overflow summary
func GetAdminCalendar(c *gin.Context) {
	if _, ok := requireAdmin(c); !ok {
		return
	}

	month := c.Query("month")
	start, err := time.Parse("2006-01", month)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Month must be in YYYY-MM format",
			},
		})
		return
	}

	// booking_date is an ISO date string; [first of month, first of next)
	startDate := start.Format("2006-01-02")
	endDate := start.AddDate(0, 1, 0).Format("2006-01-02")

	db := config.GetDB()
	var reservations []models.Reservation
	if err := db.Preload("User").Preload("Service").
		Where("booking_date >= ? AND booking_date < ?", startDate, endDate).
		Order("booking_date ASC, booking_time ASC").
		Find(&reservations).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load calendar reservations",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"month": month,
			"days":  utils.BuildCalendarDays(reservations),
		},
	})
}
