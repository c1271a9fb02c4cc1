// Package dbtest starts a throwaway PostgreSQL container with the schema
// migrated, for integration tests.
package dbtest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/stwalsh4118/room4rent/internal/database"
	"github.com/stwalsh4118/room4rent/internal/logger"
)

// TestDB is a migrated database backed by its own container.
type TestDB struct {
	*database.Database
	DSN string
}

// New starts a container, applies migrations and returns a connected pool.
// The container is terminated when the test finishes. Skipped under -short.
func New(t *testing.T) *TestDB {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("room4rent_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "Failed to start PostgreSQL container")

	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("Failed to terminate container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "Failed to get connection string")

	require.NoError(t, database.Migrate(dsn, logger.Nop()), "Failed to run migrations")

	db, err := database.Connect(ctx, dsn, 1, 10)
	require.NoError(t, err, "Failed to connect to test database")
	t.Cleanup(db.Close)

	return &TestDB{Database: db, DSN: dsn}
}

// Exec runs a statement and fails the test on error.
func (db *TestDB) Exec(t *testing.T, sql string, args ...any) {
	t.Helper()
	_, err := db.Pool.Exec(context.Background(), sql, args...)
	require.NoError(t, err)
}

// InsertID runs an INSERT … RETURNING id and returns the id.
func (db *TestDB) InsertID(t *testing.T, sql string, args ...any) int64 {
	t.Helper()
	var id int64
	require.NoError(t, db.Pool.QueryRow(context.Background(), sql, args...).Scan(&id))
	return id
}
