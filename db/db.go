package db

import (
	"fmt"
	"time"

	"gamerental/models"
	"gamerental/utils"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Options configures the connection pool.
type Options struct {
	DSN          string
	MaxOpenConns int
	MaxIdleConns int
	LogLevel     logger.LogLevel
}

// Open connects to postgres. Callers own the returned handle and pass it to
// the repositories; nothing in this package keeps it.
func Open(opts Options) (*gorm.DB, error) {
	return OpenDialector(postgres.Open(opts.DSN), opts)
}

// OpenDialector is Open for an arbitrary dialector (tests use it with a
// postgres dialector over go-sqlmock).
func OpenDialector(dialector gorm.Dialector, opts Options) (*gorm.DB, error) {
	logLevel := opts.LogLevel
	if logLevel == 0 {
		logLevel = logger.Warn
	}

	conn, err := gorm.Open(dialector, &gorm.Config{
		// Duplicate keys come back as gorm.ErrDuplicatedKey.
		TranslateError:         true,
		SkipDefaultTransaction: true,
		Logger: logger.New(utils.Log, logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logLevel,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to the database: %w", err)
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return nil, err
	}
	if opts.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
	}
	if opts.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(opts.MaxIdleConns)
	}
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	return conn, nil
}

// Migrate creates or updates every table, unique index and the partial index
// on open rentals.
func Migrate(conn *gorm.DB) error {
	if err := conn.AutoMigrate(&models.Category{}, &models.Game{}, &models.Customer{}, &models.Rental{}); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	utils.Log.Info("Database migrated")
	return nil
}

// Close releases the pool.
func Close(conn *gorm.DB) error {
	sqlDB, err := conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
