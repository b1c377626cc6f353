package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/teknocare/teknocare-api/config"
	"github.com/teknocare/teknocare-api/middleware"
	"github.com/teknocare/teknocare-api/models"
	"github.com/teknocare/teknocare-api/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	return router
}

// setupMockAuth0Server creates a mock HTTP server that simulates Auth0's /userinfo endpoint
func setupMockAuth0Server(userInfoMap map[string]*services.Auth0UserInfo) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/userinfo" {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		// Extract token from Authorization header
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" || len(authHeader) < 7 {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		token := authHeader[7:] // Remove "Bearer " prefix

		// Look up user info by token
		userInfo, exists := userInfoMap[token]
		if !exists {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(userInfo)
	}))
}

// mockAuthMiddleware simulates the Auth0 JWT middleware for testing
// It sets up the context exactly as the real EnsureValidToken middleware does
func mockAuthMiddleware(auth0ID, role, accessToken string) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Set the user_id (Auth0 ID from 'sub' claim)
		c.Set("user_id", auth0ID)

		// Set the access token for calling /userinfo
		c.Set("access_token", accessToken)

		// Create custom claims matching the real structure
		customClaims := &middleware.CustomClaims{
			Role: role,
		}

		// Create a proper ValidatedClaims structure, matching what the real
		// JWT middleware creates
		mockClaims := &validator.ValidatedClaims{
			CustomClaims: customClaims,
		}

		c.Set("validated_claims", mockClaims)

		c.Next()
	}
}

// seedProfile inserts a profile row for handler tests
func seedProfile(t *testing.T, db *gorm.DB, auth0ID, name, email, role string) models.Profile {
	t.Helper()
	profile := models.Profile{
		Auth0ID:  auth0ID,
		FullName: name,
		Email:    email,
		Role:     role,
	}
	if err := db.Create(&profile).Error; err != nil {
		t.Fatalf("Failed to seed profile: %v", err)
	}
	return profile
}

func TestCreateProfile(t *testing.T) {
	// Setup
	db := setupTestDB(t)
	config.SetDB(db)

	tests := []struct {
		name           string
		auth0ID        string
		email          string
		fullName       string
		role           string
		accessToken    string
		expectedStatus int
		expectedCode   string
		expectedRole   string
	}{
		{
			name:           "Create user profile successfully",
			auth0ID:        "auth0|123456",
			email:          "budi@example.com",
			fullName:       "Budi Santoso",
			role:           "user",
			accessToken:    "token-123456",
			expectedStatus: http.StatusCreated,
			expectedRole:   "user",
		},
		{
			name:           "Create admin profile from role claim",
			auth0ID:        "auth0|admin789",
			email:          "admin@example.com",
			fullName:       "Admin User",
			role:           "admin",
			accessToken:    "token-admin789",
			expectedStatus: http.StatusCreated,
			expectedRole:   "admin",
		},
		{
			name:           "Default to user role when claim is empty",
			auth0ID:        "auth0|norole",
			email:          "norole@example.com",
			fullName:       "No Role User",
			role:           "",
			accessToken:    "token-norole",
			expectedStatus: http.StatusCreated,
			expectedRole:   "user",
		},
		{
			name:           "Default to user role when claim is unknown",
			auth0ID:        "auth0|badrole",
			email:          "badrole@example.com",
			fullName:       "Bad Role User",
			role:           "superuser",
			accessToken:    "token-badrole",
			expectedStatus: http.StatusCreated,
			expectedRole:   "user",
		},
		{
			name:           "Fail with missing email",
			auth0ID:        "auth0|noemail",
			email:          "",
			fullName:       "No Email User",
			role:           "user",
			accessToken:    "token-noemail",
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "MISSING_EMAIL",
		},
		{
			name:           "Fail with missing name",
			auth0ID:        "auth0|noname",
			email:          "noname@example.com",
			fullName:       "",
			role:           "user",
			accessToken:    "token-noname",
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "MISSING_NAME",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Clear database before each test
			db.Exec("DELETE FROM profiles")

			// Setup mock Auth0 server
			userInfoMap := map[string]*services.Auth0UserInfo{
				tt.accessToken: {
					Sub:   tt.auth0ID,
					Email: tt.email,
					Name:  tt.fullName,
				},
			}
			mockServer := setupMockAuth0Server(userInfoMap)
			defer mockServer.Close()

			// The mock server URL carries the http:// scheme, which
			// Auth0Service passes through untouched
			testConfig := &config.Config{
				Auth0Domain: mockServer.URL,
			}
			originalConfig := config.GetConfig()
			defer func() {
				config.SetConfig(originalConfig)
			}()
			config.SetConfig(testConfig)

			// Setup route with mock auth middleware
			router := setupTestRouter()
			router.POST("/profiles", mockAuthMiddleware(tt.auth0ID, tt.role, tt.accessToken), CreateProfile)

			req := httptest.NewRequest(http.MethodPost, "/profiles", nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code, "Response body: %s", w.Body.String())

			var response map[string]interface{}
			err := json.Unmarshal(w.Body.Bytes(), &response)
			assert.NoError(t, err)

			if tt.expectedStatus == http.StatusCreated {
				assert.True(t, response["success"].(bool))
				data := response["data"].(map[string]interface{})
				assert.Equal(t, tt.email, data["email"])
				assert.Equal(t, tt.fullName, data["full_name"])
				assert.Equal(t, tt.auth0ID, data["auth0_id"])
				assert.Equal(t, tt.expectedRole, data["role"])
			} else {
				assert.False(t, response["success"].(bool))
				errorData := response["error"].(map[string]interface{})
				assert.Equal(t, tt.expectedCode, errorData["code"])
			}
		})
	}
}

func TestCreateProfile_DuplicateAuth0ID(t *testing.T) {
	// Setup
	db := setupTestDB(t)
	config.SetDB(db)

	seedProfile(t, db, "auth0|duplicate", "First User", "first@example.com", "user")

	// Setup mock Auth0 server
	accessToken := "token-duplicate"
	userInfoMap := map[string]*services.Auth0UserInfo{
		accessToken: {
			Sub:   "auth0|duplicate",
			Email: "second@example.com",
			Name:  "Second User",
		},
	}
	mockServer := setupMockAuth0Server(userInfoMap)
	defer mockServer.Close()

	testConfig := &config.Config{
		Auth0Domain: mockServer.URL,
	}
	originalConfig := config.GetConfig()
	defer func() {
		config.SetConfig(originalConfig)
	}()
	config.SetConfig(testConfig)

	// Try to create a profile with a duplicate Auth0ID
	router := setupTestRouter()
	router.POST("/profiles", mockAuthMiddleware("auth0|duplicate", "user", accessToken), CreateProfile)

	req := httptest.NewRequest(http.MethodPost, "/profiles", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.False(t, response["success"].(bool))
	errorData := response["error"].(map[string]interface{})
	assert.Equal(t, "PROFILE_EXISTS", errorData["code"])
}

func TestGetMyProfile_Success(t *testing.T) {
	// Setup
	db := setupTestDB(t)
	config.SetDB(db)
	router := setupTestRouter()

	router.GET("/profiles/me", mockAuthMiddleware("auth0|testuser", "user", "token"), GetMyProfile)

	seedProfile(t, db, "auth0|testuser", "Test User", "test@example.com", "user")

	req := httptest.NewRequest(http.MethodGet, "/profiles/me", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.True(t, response["success"].(bool))
	data := response["data"].(map[string]interface{})
	assert.Equal(t, "test@example.com", data["email"])
	assert.Equal(t, "Test User", data["full_name"])
	assert.Equal(t, "user", data["role"])
}

func TestGetMyProfile_NotFound(t *testing.T) {
	// Setup
	db := setupTestDB(t)
	config.SetDB(db)
	router := setupTestRouter()

	router.GET("/profiles/me", mockAuthMiddleware("auth0|nonexistent", "user", "token"), GetMyProfile)

	req := httptest.NewRequest(http.MethodGet, "/profiles/me", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.False(t, response["success"].(bool))
	errorData := response["error"].(map[string]interface{})
	assert.Equal(t, "PROFILE_NOT_FOUND", errorData["code"])
}

func TestUpdateMyProfile(t *testing.T) {
	tests := []struct {
		name           string
		payload        UpdateProfileRequest
		expectedStatus int
		expectedCode   string
	}{
		{
			name: "Update all fields successfully",
			payload: UpdateProfileRequest{
				FullName: "New Name",
				Phone:    "081234567890",
				Address:  "Jl. Sudirman No. 1, Jakarta",
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "Clear optional fields",
			payload: UpdateProfileRequest{
				FullName: "Keep Name",
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "Fail with too short full name",
			payload: UpdateProfileRequest{
				FullName: "A",
			},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "VALIDATION_ERROR",
		},
		{
			name: "Fail with non-digit phone",
			payload: UpdateProfileRequest{
				FullName: "Valid Name",
				Phone:    "not-a-phone",
			},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "VALIDATION_ERROR",
		},
		{
			name: "Fail with too short phone",
			payload: UpdateProfileRequest{
				FullName: "Valid Name",
				Phone:    "12345",
			},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "VALIDATION_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := setupTestDB(t)
			config.SetDB(db)
			router := setupTestRouter()

			router.PUT("/profiles/me", mockAuthMiddleware("auth0|testuser", "user", "token"), UpdateMyProfile)

			seedProfile(t, db, "auth0|testuser", "Old Name", "test@example.com", "user")

			body, _ := json.Marshal(tt.payload)
			req := httptest.NewRequest(http.MethodPut, "/profiles/me", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code, "Response body: %s", w.Body.String())

			var response map[string]interface{}
			json.Unmarshal(w.Body.Bytes(), &response)

			if tt.expectedStatus == http.StatusOK {
				assert.True(t, response["success"].(bool))
				data := response["data"].(map[string]interface{})
				assert.Equal(t, tt.payload.FullName, data["full_name"])
				if tt.payload.Phone == "" {
					assert.Nil(t, data["phone"])
				} else {
					assert.Equal(t, tt.payload.Phone, data["phone"])
				}
			} else {
				assert.False(t, response["success"].(bool))
				errorData := response["error"].(map[string]interface{})
				assert.Equal(t, tt.expectedCode, errorData["code"])
			}
		})
	}
}

func TestGetMyDashboard(t *testing.T) {
	// Setup
	db := setupTestDB(t)
	config.SetDB(db)
	router := setupTestRouter()

	router.GET("/profiles/me/dashboard", mockAuthMiddleware("auth0|dashuser", "user", "token"), GetMyDashboard)

	profile := seedProfile(t, db, "auth0|dashuser", "Dash User", "dash@example.com", "user")
	service := models.Service{Name: "Laptop Repair", Price: 150000}
	db.Create(&service)

	// One in-progress, one picked up, one cancelled booking
	active := models.Reservation{
		UserID: profile.ID, ServiceID: service.ID,
		BookingDate: "2026-10-01",
		Status:      models.StatusConfirmed, RepairStatus: models.RepairStatusRepairing,
	}
	done := models.Reservation{
		UserID: profile.ID, ServiceID: service.ID,
		BookingDate: "2026-09-01",
		Status:      models.StatusCompleted, RepairStatus: models.RepairStatusPickedUp,
	}
	cancelled := models.Reservation{
		UserID: profile.ID, ServiceID: service.ID,
		BookingDate: "2026-09-15",
		Status:      models.StatusCancelled, RepairStatus: models.RepairStatusCancelled,
	}
	db.Create(&active)
	db.Create(&done)
	db.Create(&cancelled)

	req := httptest.NewRequest(http.MethodGet, "/profiles/me/dashboard", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code, "Response body: %s", w.Body.String())

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.True(t, response["success"].(bool))
	data := response["data"].(map[string]interface{})

	profileData := data["profile"].(map[string]interface{})
	assert.Equal(t, "dash@example.com", profileData["email"])

	activeList := data["active_reservations"].([]interface{})
	assert.Len(t, activeList, 1)

	// picked_up plus status=cancelled
	historyList := data["history_reservations"].([]interface{})
	assert.Len(t, historyList, 2)
}
