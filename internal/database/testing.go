package database

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/yourusername/shootout-odds/internal/config"
)

// TestDSNEnv names the variable holding a config file for integration tests
const TestDSNEnv = "SHOOTOUT_TEST_CONFIG"

// SetupTestDB connects to the database described by SHOOTOUT_TEST_CONFIG,
// skipping the test when it is unset.
func SetupTestDB(t *testing.T) *DB {
	t.Helper()

	path := os.Getenv(TestDSNEnv)
	if path == "" {
		t.Skipf("integration test: set %s to a config file with database settings", TestDSNEnv)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("failed to load test config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	db, err := Initialize(ctx, cfg)
	if err != nil {
		t.Fatalf("failed to create test database connection: %v", err)
	}

	t.Cleanup(db.Close)
	return db
}
