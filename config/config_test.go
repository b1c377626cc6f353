package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name:    "valid production config",
			config:  Config{DatabaseURL: "postgresql://localhost/teknocare", GoEnv: "production"},
			wantErr: false,
		},
		{
			name:    "missing database URL outside tests",
			config:  Config{GoEnv: "development"},
			wantErr: true,
		},
		{
			name:    "test env runs without a database URL",
			config:  Config{GoEnv: "test"},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoad_Defaults(t *testing.T) {
	// GO_ENV=test is enforced by TestMain, so Load must succeed without
	// DATABASE_URL set
	originalURL := os.Getenv("DATABASE_URL")
	os.Unsetenv("DATABASE_URL")
	defer func() {
		if originalURL != "" {
			os.Setenv("DATABASE_URL", originalURL)
		}
	}()

	cfg, err := Load()

	assert.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "test", cfg.GoEnv)
	assert.Equal(t, "ap-southeast-1", cfg.AWSRegion)
	assert.Equal(t, "http://localhost:3000", cfg.AllowedOrigins)
	assert.True(t, cfg.IsTest())
	assert.False(t, cfg.IsProduction())
	assert.False(t, cfg.IsDevelopment())

	// Load stores the instance globally
	assert.Equal(t, cfg, GetConfig())
}

func TestSetConfig(t *testing.T) {
	original := GetConfig()
	defer SetConfig(original)

	custom := &Config{Port: "9090"}
	SetConfig(custom)

	assert.Equal(t, custom, GetConfig())
}
