package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/teknocare/teknocare-api/config"
	"github.com/teknocare/teknocare-api/models"
)

// ListTestimonials handles GET /api/v1/testimonials - public feed of active
// testimonials, newest first
func ListTestimonials(c *gin.Context) {
	db := config.GetDB()
	var testimonials []models.Testimonial
	if err := db.Where("is_active = ?", true).
		Order("created_at DESC").
		Find(&testimonials).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load testimonials",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    testimonials,
	})
}
