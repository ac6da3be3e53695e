package postgres

import (
	"context"
	"errors"
	"fmt"

	"myStoreCloud/domain"

	"gorm.io/gorm"
)

// StoreRepository lives on the control-plane database and is the source
// of truth for which subdomains map to which tenant databases.
type StoreRepository struct {
	DB *gorm.DB
}

func NewStoreRepository(db *gorm.DB) *StoreRepository {
	return &StoreRepository{
		DB: db,
	}
}

func (r *StoreRepository) Create(ctx context.Context, store *domain.Store) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(store).Error; err != nil {
		return fmt.Errorf("failed to create store: %w", err)
	}

	return nil
}

func (r *StoreRepository) FindByID(ctx context.Context, id uint64) (domain.Store, error) {
	if err := ctx.Err(); err != nil {
		return domain.Store{}, fmt.Errorf("context error: %w", err)
	}

	var store domain.Store

	err := r.DB.WithContext(ctx).First(&store, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Store{}, errors.New("store not found")
		}
		return domain.Store{}, fmt.Errorf("failed to find store: %w", err)
	}

	return store, nil
}

func (r *StoreRepository) FindBySubdomain(ctx context.Context, subdomain string) (domain.Store, error) {
	if err := ctx.Err(); err != nil {
		return domain.Store{}, fmt.Errorf("context error: %w", err)
	}

	var store domain.Store

	err := r.DB.WithContext(ctx).Where("subdomain = ?", subdomain).First(&store).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Store{}, errors.New("store not found")
		}
		return domain.Store{}, fmt.Errorf("failed to find store: %w", err)
	}

	return store, nil
}

// FindActiveBySubdomain resolves the store an incoming request belongs
// to. Inactive stores are invisible here, so suspending a store cuts
// tenant resolution immediately.
func (r *StoreRepository) FindActiveBySubdomain(ctx context.Context, subdomain string) (domain.Store, error) {
	if err := ctx.Err(); err != nil {
		return domain.Store{}, fmt.Errorf("context error: %w", err)
	}

	var store domain.Store

	err := r.DB.WithContext(ctx).
		Where("subdomain = ? AND is_active = ?", subdomain, true).
		First(&store).Error
	if err != nil {
		return domain.Store{}, err
	}

	return store, nil
}

func (r *StoreRepository) FindByOwner(ctx context.Context, ownerID uint) ([]domain.Store, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var stores []domain.Store
	err := r.DB.WithContext(ctx).Where("owner_id = ?", ownerID).Find(&stores).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find stores: %w", err)
	}

	return stores, nil
}

func (r *StoreRepository) Update(ctx context.Context, store *domain.Store) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	updateData := map[string]interface{}{
		"store_name": store.StoreName,
		"is_active":  store.IsActive,
	}

	result := r.DB.WithContext(ctx).Model(&domain.Store{}).Where("id = ?", store.ID).Updates(updateData)
	if result.Error != nil {
		return fmt.Errorf("failed to update store: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("store not found or already deleted")
	}

	return nil
}

func (r *StoreRepository) Delete(ctx context.Context, id uint64) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).Delete(&domain.Store{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete store: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("store not found or already deleted")
	}

	return nil
}
