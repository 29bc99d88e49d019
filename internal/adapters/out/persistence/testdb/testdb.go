// Package testdb provides migrated databases for tests: a throwaway SQLite
// file per test and a PostgreSQL container for integration suites.
package testdb

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/casper4088/quiz-bot/internal/adapters/out/persistence"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
)

// SQLite opens a migrated database in the test's temp dir. It is closed when
// the test ends.
func SQLite(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := persistence.Open(persistence.Config{
		Driver: persistence.DriverSQLite,
		DSN:    filepath.Join(t.TempDir(), "test.db"),
	})
	require.NoError(t, err)
	require.NoError(t, persistence.Migrate(db))

	t.Cleanup(func() {
		_ = persistence.Close(db)
	})

	return db
}

// Postgres starts a PostgreSQL container and returns a migrated connection.
// The caller terminates the container.
func Postgres(ctx context.Context) (*postgres.PostgresContainer, *gorm.DB, error) {
	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, nil, err
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, nil, err
	}

	db, err := persistence.Open(persistence.Config{
		Driver:       persistence.DriverPostgres,
		DSN:          dsn,
		MaxOpenConns: 20,
	})
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, nil, err
	}

	if err = persistence.Migrate(db); err != nil {
		_ = container.Terminate(ctx)
		return nil, nil, err
	}

	return container, db, nil
}

// Truncate empties every table between integration tests.
func Truncate(db *gorm.DB) error {
	return db.Exec("TRUNCATE TABLE orders, submissions, broadcasts, conversations").Error
}
