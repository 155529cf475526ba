//go:build integration

package testdb

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/stretchr/testify/require"
	"github.com/travelinfo/travel-api/internal/platform/logger"
	"github.com/travelinfo/travel-api/internal/platform/postgres"
)

// TestTimeout bounds setup and cleanup statements.
const TestTimeout = 10 * time.Second

// urlEnvVars are checked in order.
var urlEnvVars = []string{"TRAVEL_TEST_DATABASE_URL", "DATABASE_URL"}

// tables are truncated between tests, children first.
var tables = []string{"reviews", "place_taxis", "taxis", "places", "users"}

// DatabaseURL returns the first configured test database URL, or "".
func DatabaseURL() string {
	for _, name := range urlEnvVars {
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			return v
		}
	}
	return ""
}

// Open connects to the test database, applies migrations and empties every
// table. The pool is closed when the test finishes.
func Open(t *testing.T) *sql.DB {
	t.Helper()

	dbURL := DatabaseURL()
	if dbURL == "" {
		t.Skipf("%s not set - skipping integration test", strings.Join(urlEnvVars, " or "))
	}

	db, err := sql.Open("pgx", dbURL)
	require.NoError(t, err, "failed to open database connection")
	t.Cleanup(func() { _ = db.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()
	require.NoError(t, db.PingContext(ctx), "database ping failed")

	_, l := logger.NewTestLogger(t)
	require.NoError(t, postgres.Migrate(ctx, db, postgres.MigrateUp, l), "failed to run migrations")

	Reset(t, db)
	return db
}

// Reset removes all rows and restarts identity sequences.
func Reset(t *testing.T, db *sql.DB) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()

	stmt := fmt.Sprintf("TRUNCATE %s RESTART IDENTITY CASCADE", strings.Join(tables, ", "))
	_, err := db.ExecContext(ctx, stmt)
	require.NoError(t, err, "failed to truncate tables")
}
