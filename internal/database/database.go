// Package database handles database connections and migrations.
package database

import (
	"context"
	"fmt"
	"time"

	"campushub/internal/config"
	"campushub/internal/middleware"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// DB is the global database connection instance.
var DB *gorm.DB

// Dialector returns the GORM dialector for the configured SQL driver.
func Dialector(cfg *config.Config) (gorm.Dialector, error) {
	switch cfg.DBDriver {
	case config.DriverPostgres, "":
		sslMode := cfg.DBSSLMode
		if sslMode == "" {
			sslMode = "disable"
		}
		dsn := fmt.Sprintf(
			"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			cfg.DBHost,
			cfg.DBPort,
			cfg.DBUser,
			cfg.DBPassword,
			cfg.DBName,
			sslMode,
		)
		return postgres.Open(dsn), nil
	case config.DriverSQLite:
		return sqlite.Open(cfg.DBSQLitePath), nil
	default:
		return nil, fmt.Errorf("driver %q is not a SQL driver", cfg.DBDriver)
	}
}

// Open opens a single connection attempt and verifies it with a ping.
func Open(ctx context.Context, dialector gorm.Dialector) (*gorm.DB, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         NewGormLogger(),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access database handle: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

// Connect opens the configured SQL database, retrying forever with a fixed delay until it is
// reachable or ctx is cancelled, then prepares the schema and the connection pool.
func Connect(ctx context.Context, cfg *config.Config) (*gorm.DB, error) {
	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}

	db, err := RetryForever(ctx, cfg.DBDriver, cfg.DBRetryDelay(), func(ctx context.Context) (*gorm.DB, error) {
		return Open(ctx, dialector)
	})
	if err != nil {
		return nil, err
	}
	middleware.Logger.Info("Database connected successfully")

	if err := PrepareSchema(ctx, db, cfg); err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err == nil {
		if cfg.DBDriver == config.DriverSQLite {
			// SQLite serializes writers; one connection avoids "database is locked".
			sqlDB.SetMaxOpenConns(1)
		} else {
			sqlDB.SetMaxOpenConns(25)
			sqlDB.SetMaxIdleConns(5)
		}
		sqlDB.SetConnMaxLifetime(5 * time.Minute)
	}

	DB = db
	return DB, nil
}

// PrepareSchema applies versioned migrations when DB_SCHEMA_MODE is "migrate", and AutoMigrate
// outside production otherwise. Production with "auto" expects cmd/migrate to have run.
func PrepareSchema(ctx context.Context, db *gorm.DB, cfg *config.Config) error {
	if cfg.DBSchemaMode == "migrate" {
		if err := Migrate(ctx, db, "up"); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
		middleware.Logger.Info("Database migrations applied")
		return nil
	}

	if cfg.IsProduction() {
		return nil
	}

	if err := db.WithContext(ctx).AutoMigrate(PersistentModels()...); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	middleware.Logger.Info("Database migration completed")
	return nil
}
