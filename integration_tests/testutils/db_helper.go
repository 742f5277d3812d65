package testutils

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"github.com/riverqueue/river/rivermigrate"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"

	leaderboardmigrations "github.com/scorequest/scorequest-backend/app/modules/leaderboard/infrastructure/repositories/migrations"
	submissionmigrations "github.com/scorequest/scorequest-backend/app/modules/submission/infrastructure/repositories/migrations"
	"github.com/scorequest/scorequest-backend/integration_tests/containers"
)

// SetupTestDB starts a Postgres container, runs all migrations, and returns
// a connected bun.DB plus the connection string. Cleanup is registered on t.
func SetupTestDB(t *testing.T) (*bun.DB, string) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()

	pgContainer, connStr, err := containers.SetupPostgresContainer(ctx)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}
	t.Cleanup(func() {
		if err := pgContainer.Terminate(context.Background()); err != nil {
			log.Printf("failed to terminate postgres container: %v", err)
		}
	})

	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(connStr)))
	db := bun.NewDB(sqldb, pgdialect.New())
	t.Cleanup(func() { db.Close() })

	if err := runMigrations(ctx, db, connStr); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	return db, connStr
}

func runMigrations(ctx context.Context, db *bun.DB, connStr string) error {
	if err := runRiverMigrations(ctx, connStr); err != nil {
		return fmt.Errorf("failed to run river migrations: %w", err)
	}

	orderedModules := []struct {
		name       string
		migrations *migrate.Migrations
	}{
		{"submission", submissionmigrations.Migrations},
		{"leaderboard", leaderboardmigrations.Migrations},
	}

	for _, mod := range orderedModules {
		migrator := migrate.NewMigrator(db, mod.migrations)
		if err := migrator.Init(ctx); err != nil {
			return fmt.Errorf("failed to init %s migrations: %w", mod.name, err)
		}
		if _, err := migrator.Migrate(ctx); err != nil {
			return fmt.Errorf("failed to run %s migrations: %w", mod.name, err)
		}
	}
	return nil
}

// runRiverMigrations installs the queue schema.
func runRiverMigrations(ctx context.Context, connStr string) error {
	config, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		return fmt.Errorf("failed to parse DSN: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return fmt.Errorf("failed to create pgx pool: %w", err)
	}
	defer pool.Close()

	migrator, err := rivermigrate.New(riverpgxv5.New(pool), nil)
	if err != nil {
		return fmt.Errorf("failed to create river migrator: %w", err)
	}
	if _, err := migrator.Migrate(ctx, rivermigrate.DirectionUp, &rivermigrate.MigrateOpts{}); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}

// CleanupTables truncates the application tables between tests.
func CleanupTables(ctx context.Context, db *bun.DB) error {
	_, err := db.ExecContext(ctx, "TRUNCATE submissions, leaderboard_entries")
	return err
}
