package testutil

import (
	"os"
	"testing"
)

// MustSetTestEnvironment forces GO_ENV=test so config.Load picks the test
// defaults and nothing touches a real database. Call it from suite runners
// before suite.Run.
func MustSetTestEnvironment(t *testing.T) {
	t.Helper()

	if err := os.Setenv("GO_ENV", "test"); err != nil {
		t.Fatalf("Failed to set GO_ENV=test: %v", err)
	}
}

// RequireTestEnvironment fails the test immediately unless GO_ENV is "test".
// Use it in tests that connect to a real database URL.
func RequireTestEnvironment(t *testing.T) {
	t.Helper()

	if env := os.Getenv("GO_ENV"); env != "test" {
		t.Fatalf("Tests must run with GO_ENV=test (current: %q)", env)
	}
}

// SkipUnlessAuthConfigured skips tests that need a reachable Auth0 tenant.
// CI sets SKIP_AUTH_TESTS=true because the test tenant is not provisioned
// there.
func SkipUnlessAuthConfigured(t *testing.T) {
	t.Helper()

	if os.Getenv("SKIP_AUTH_TESTS") == "true" {
		t.Skip("Skipping tests that require Auth0 configuration")
	}
}
