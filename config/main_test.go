package config

import (
	"fmt"
	"os"
	"testing"
)

// TestMain refuses to run the config package tests outside the test
// environment. Some tests here call Load against DATABASE_URL, and a stray
// GO_ENV would point them at a real database.
func TestMain(m *testing.M) {
	if env := os.Getenv("GO_ENV"); env != "test" {
		fmt.Fprintf(os.Stderr, "config tests require GO_ENV=test (current: %q); run with GO_ENV=test go test ./...\n", env)
		os.Exit(1)
	}

	os.Exit(m.Run())
}
