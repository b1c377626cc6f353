package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/teknocare/teknocare-api/config"
	"github.com/teknocare/teknocare-api/middleware"
	"github.com/teknocare/teknocare-api/models"
	"github.com/teknocare/teknocare-api/services"
	"github.com/teknocare/teknocare-api/utils"
)

// UpdateProfileRequest represents the request body for updating a profile
type UpdateProfileRequest struct {
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

// CreateProfile handles POST /api/v1/profiles - creates a profile from Auth0 userinfo
// This endpoint requires authentication and fetches user data from Auth0's /userinfo endpoint
func CreateProfile(c *gin.Context) {
	// Get the Auth0 user ID from the validated JWT
	auth0ID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UNAUTHORIZED",
				"message": "Could not extract user ID from token",
			},
		})
		return
	}

	// Get the access token to call Auth0's /userinfo endpoint
	accessToken, err := middleware.GetAccessToken(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "MISSING_TOKEN",
				"message": "Access token not found",
			},
		})
		return
	}

	// Fetch user info from Auth0
	cfg := config.GetConfig()
	auth0Service := services.NewAuth0Service(cfg)
	userInfo, err := auth0Service.GetUserInfo(accessToken)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "AUTH0_ERROR",
				"message": "Failed to fetch user information from Auth0",
			},
		})
		return
	}

	// Validate that required fields are present
	if userInfo.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "MISSING_EMAIL",
				"message": "Email not provided by Auth0",
			},
		})
		return
	}

	if userInfo.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "MISSING_NAME",
				"message": "Name not provided by Auth0",
			},
		})
		return
	}

	// The role claim only seeds the profile; unknown values fall back to user
	role := models.RoleUser
	if claims, err := middleware.GetClaims(c); err == nil {
		if customClaims, ok := claims.CustomClaims.(*middleware.CustomClaims); ok {
			switch customClaims.Role {
			case models.RoleAdmin, models.RoleTechnician, models.RoleUser:
				role = customClaims.Role
			}
		}
	}

	profile := models.Profile{
		Auth0ID:  auth0ID,
		FullName: userInfo.Name,
		Email:    userInfo.Email,
		Role:     role,
	}

	db := config.GetDB()
	if err := db.Create(&profile).Error; err != nil {
		if isDuplicateKeyError(err) {
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "PROFILE_EXISTS",
					"message": "A profile with this Auth0 ID or email already exists",
				},
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create profile",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    profile,
	})
}

// GetMyProfile handles GET /api/v1/profiles/me - gets current user's profile
func GetMyProfile(c *gin.Context) {
	profile, ok := currentProfile(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    profile,
	})
}

// UpdateMyProfile handles PUT /api/v1/profiles/me - updates current user's profile
func UpdateMyProfile(c *gin.Context) {
	profile, ok := currentProfile(c)
	if !ok {
		return
	}

	// Parse request body
	var req UpdateProfileRequest
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

	if errs := utils.ValidateProfileUpdate(utils.ProfileUpdateInput{
		FullName: req.FullName,
		Phone:    req.Phone,
		Address:  req.Address,
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

	// The settings form always sends the full set of fields; blanking phone or
	// address clears the column.
	updates := map[string]interface{}{
		"full_name": req.FullName,
	}
	if req.Phone != "" {
		updates["phone"] = req.Phone
	} else {
		updates["phone"] = nil
	}
	if req.Address != "" {
		updates["address"] = req.Address
	} else {
		updates["address"] = nil
	}

	db := config.GetDB()
	if err := db.Model(profile).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update profile",
			},
		})
		return
	}

	// Fetch updated profile to return
	var updated models.Profile
	if err := db.First(&updated, profile.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch updated profile",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    updated,
	})
}

// GetMyDashboard handles GET /api/v1/profiles/me/dashboard - the customer dashboard:
// the profile plus the caller's reservations split into active and history views
func GetMyDashboard(c *gin.Context) {
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
		"data": gin.H{
			"profile":              profile,
			"active_reservations":  utils.ActiveReservations(reservations),
			"history_reservations": utils.HistoryReservations(reservations),
		},
	})
}
