package database

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"myStoreCloud/domain"
	"myStoreCloud/pkg/config"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// InitPostgres connects to the control-plane database (store owners and
// store directory) and migrates its schema.
func InitPostgres(cfg *config.Config) (*gorm.DB, error) {
	dsn := controlPlaneDSN(cfg)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := db.AutoMigrate(&domain.User{}, &domain.Store{}); err != nil {
		return nil, fmt.Errorf("failed to migrate control-plane schema: %w", err)
	}

	return db, nil
}

func controlPlaneDSN(cfg *config.Config) string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Name,
		cfg.Database.SSLMode,
	)
}

func tenantDSN(cfg *config.Config, databaseName string) string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.User,
		cfg.Database.Password,
		databaseName,
		cfg.Database.SSLMode,
	)
}

var validDBName = regexp.MustCompile(`^[a-z][a-z0-9_]{0,62}$`)

// CreateTenantDatabase provisions the dedicated database for a new store.
// Runs against the control-plane connection; CREATE DATABASE cannot be
// parameterized, so the name is validated against a strict identifier
// pattern first.
func CreateTenantDatabase(ctx context.Context, controlDB *gorm.DB, databaseName string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if !validDBName.MatchString(databaseName) {
		return fmt.Errorf("invalid tenant database name: %q", databaseName)
	}

	err := controlDB.WithContext(ctx).Exec("CREATE DATABASE " + databaseName).Error
	if err != nil {
		return fmt.Errorf("failed to create tenant database: %w", err)
	}

	return nil
}
