package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/teknocare/teknocare-api/config"
	"github.com/teknocare/teknocare-api/models"
	"github.com/teknocare/teknocare-api/utils"
)

// CreateConsultationRequest represents the public contact form body
type CreateConsultationRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// UpdateConsultationStatusRequest represents the admin triage body
type UpdateConsultationStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// CreateConsultation handles POST /api/v1/consultations - public contact form,
// no authentication required
func CreateConsultation(c *gin.Context) {
	var req CreateConsultationRequest
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

	if errs := utils.ValidateContact(utils.ContactInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Message: req.Message,
	}); len(errs) > 0 {
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

	consultation := models.Consultation{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
		Status:  models.ConsultationStatusNew,
	}
	if req.Phone != "" {
		consultation.Phone = &req.Phone
	}

	db := config.GetDB()
	if err := db.Create(&consultation).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to submit consultation request",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    consultation,
	})
}

// ListConsultations handles GET /api/v1/admin/consultations - admin inbox,
// optionally filtered by triage status
func ListConsultations(c *gin.Context) {
	if _, ok := requireAdmin(c); !ok {
		return
	}

	db := config.GetDB()
	query := db.Order("created_at DESC")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var consultations []models.Consultation
	if err := query.Find(&consultations).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load consultations",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    consultations,
	})
}

// UpdateConsultationStatus handles PUT /api/v1/admin/consultations/:id/status
func UpdateConsultationStatus(c *gin.Context) {
	if _, ok := requireAdmin(c); !ok {
		return
	}

	var req UpdateConsultationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil || !models.IsValidConsultationStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Status must be one of: new, in_progress, resolved",
			},
		})
		return
	}

	db := config.GetDB()
	var consultation models.Consultation
	if err := db.First(&consultation, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "CONSULTATION_NOT_FOUND",
				"message": "Consultation not found",
			},
		})
		return
	}

	if err := db.Model(&consultation).Update("status", req.Status).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update consultation status",
			},
		})
		return
	}

	if err := db.First(&consultation, consultation.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load consultation details",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    consultation,
	})
}
