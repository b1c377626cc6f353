package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/teknocare/teknocare-api/config"
	"github.com/teknocare/teknocare-api/middleware"
	"github.com/teknocare/teknocare-api/models"
)

// currentProfile loads the caller's profile row using the Auth0 subject from
// the validated token. On failure it writes the error response and returns
// ok=false; handlers should simply return.
func currentProfile(c *gin.Context) (*models.Profile, bool) {
	auth0ID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UNAUTHORIZED",
				"message": "Could not extract user information",
			},
		})
		return nil, false
	}

	db := config.GetDB()
	var profile models.Profile
	if err := db.Where("auth0_id = ?", auth0ID).First(&profile).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "PROFILE_NOT_FOUND",
				"message": "Profile not found. Please create a profile first.",
			},
		})
		return nil, false
	}

	return &profile, true
}

// requireAdmin loads the caller's profile and rejects non-admins. Role checks
// always read the profiles table, never token claims.
func requireAdmin(c *gin.Context) (*models.Profile, bool) {
	profile, ok := currentProfile(c)
	if !ok {
		return nil, false
	}

	if !profile.IsAdmin() {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "Administrator access required",
			},
		})
		return nil, false
	}

	return profile, true
}

// isDuplicateKeyError reports whether err is a unique-constraint violation.
// Substring matching keeps the check identical on PostgreSQL and SQLite.
func isDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique")
}
