// Package pgtest starts a throwaway PostgreSQL for integration tests and applies the schema.
package pgtest

import (
	"context"
	"fmt"
	"time"

	"yard/internal/adapters/out/postgres/migrations"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TruncateAll empties every table in dependency order.
const TruncateAll = `TRUNCATE TABLE act_weights, initial_weights, schedule_histories, schedules,
	employees, vehicles, workshop_schedule_templates, orders`

// Database is a migrated container together with its gorm handle.
type Database struct {
	Container *postgres.PostgresContainer
	DSN       string
	DB        *gorm.DB
}

// Start runs postgres:15-alpine, applies the migrations and connects gorm.
func Start(ctx context.Context) (*Database, error) {
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
		return nil, fmt.Errorf("start postgres container: %w", err)
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}

	if _, err = migrations.Up(dsn); err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}

	return &Database{Container: container, DSN: dsn, DB: db}, nil
}

func (d *Database) Truncate() error {
	return d.DB.Exec(TruncateAll).Error
}

func (d *Database) Terminate(ctx context.Context) error {
	if sqlDB, err := d.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
	return d.Container.Terminate(ctx)
}
