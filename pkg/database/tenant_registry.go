package database

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"myStoreCloud/domain"
	"myStoreCloud/pkg/config"
	"myStoreCloud/pkg/logger"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// StoreDirectory looks up tenant records in the control-plane database.
type StoreDirectory interface {
	FindActiveBySubdomain(ctx context.Context, subdomain string) (domain.Store, error)
}

// OpenHandleFunc opens a tenant database handle for a DSN. Injectable so
// tests can count and fake handle creation.
type OpenHandleFunc func(dsn string) (*gorm.DB, error)

// TenantRegistry resolves tenant identifiers (store subdomains) to their
// isolated database handles. Handles are cached by DSN so repeated
// resolutions of the same store reuse one connection pool. Safe for
// concurrent use; concurrent first-resolution of the same tenant opens
// exactly one handle.
type TenantRegistry struct {
	cfg       *config.Config
	directory StoreDirectory
	open      OpenHandleFunc

	mu      sync.Mutex
	handles map[string]*gorm.DB // dsn -> handle
}

func NewTenantRegistry(cfg *config.Config, directory StoreDirectory, open OpenHandleFunc) *TenantRegistry {
	if open == nil {
		open = OpenTenantHandle
	}

	return &TenantRegistry{
		cfg:       cfg,
		directory: directory,
		open:      open,
		handles:   make(map[string]*gorm.DB),
	}
}

// Resolve returns the database handle for a tenant, opening and caching
// it on first use. Returns domain.ErrTenantNotFound when no active store
// matches the identifier.
func (r *TenantRegistry) Resolve(ctx context.Context, tenantID string) (*gorm.DB, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if tenantID == "" {
		return nil, domain.ErrTenantNotFound
	}

	store, err := r.directory.FindActiveBySubdomain(ctx, tenantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTenantNotFound
		}
		return nil, fmt.Errorf("failed to look up tenant %q: %w", tenantID, err)
	}

	dsn := tenantDSN(r.cfg, store.DatabaseName)

	r.mu.Lock()
	defer r.mu.Unlock()

	if handle, ok := r.handles[dsn]; ok {
		return handle, nil
	}

	handle, err := r.open(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open tenant database %q: %w", store.DatabaseName, err)
	}

	r.handles[dsn] = handle
	logger.Info("tenant handle opened", "tenant", tenantID, "database", store.DatabaseName)

	return handle, nil
}

// HealthCheck performs a trivial read per cached tenant handle and
// returns a result keyed by DSN. An empty map means no handle is open.
func (r *TenantRegistry) HealthCheck(ctx context.Context) map[string]error {
	r.mu.Lock()
	snapshot := make(map[string]*gorm.DB, len(r.handles))
	for dsn, handle := range r.handles {
		snapshot[dsn] = handle
	}
	r.mu.Unlock()

	results := make(map[string]error, len(snapshot))
	for dsn, handle := range snapshot {
		sqlDB, err := handle.DB()
		if err != nil {
			results[dsn] = err
			continue
		}
		results[dsn] = sqlDB.PingContext(ctx)
	}

	return results
}

// CloseAll closes every cached handle. Used on graceful shutdown.
func (r *TenantRegistry) CloseAll() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var firstErr error
	for dsn, handle := range r.handles {
		sqlDB, err := handle.DB()
		if err != nil {
			logger.Warn("failed to get sql.DB for tenant handle", "dsn", dsn, "error", err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		if err := sqlDB.Close(); err != nil {
			logger.Warn("failed to close tenant handle", "dsn", dsn, "error", err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	r.handles = make(map[string]*gorm.DB)

	return firstErr
}

// OpenTenantHandle opens a tenant database and migrates the per-tenant
// schema. The tenant tables are fully isolated from every other store.
func OpenTenantHandle(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(2)
	sqlDB.SetConnMaxLifetime(time.Hour)

	err = db.AutoMigrate(
		&domain.Customer{},
		&domain.Product{},
		&domain.Category{},
		&domain.ProductCategoryMapping{},
		&domain.Orders{},
		&domain.BehaviorEvent{},
		&domain.ProductView{},
		&domain.Recommendation{},
		&domain.CustomerPreference{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate tenant schema: %w", err)
	}

	return db, nil
}
