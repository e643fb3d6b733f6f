package persistence

import (
	"fmt"
	"time"

	"github.com/saurabhwebdev/tailtally-sub001/internal/infrastructure/config"
	"github.com/saurabhwebdev/tailtally-sub001/internal/infrastructure/logger"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Database wraps the GORM handle. It is created once at startup and
// handed to repositories explicitly.
type Database struct {
	DB *gorm.DB
}

// NewDatabase opens a PostgreSQL connection pool
func NewDatabase(cfg config.DatabaseConfig, zapLogger *zap.Logger) (*Database, error) {
	gormLevel := gormlogger.Warn
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: logger.NewGormLogger(zapLogger, gormLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Minute)

	return &Database{DB: db}, nil
}

// Close closes the underlying connection pool
func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ping verifies the database connection is alive
func (d *Database) Ping() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
