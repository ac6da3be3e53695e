package postgres

import (
	"context"
	"fmt"
	"time"

	"myStoreCloud/domain"

	"gorm.io/gorm"
)

// BehaviorRepository owns the append-only behavior log of one tenant:
// tracking writes plus the aggregate reads the recommendation strategies
// score from.
type BehaviorRepository struct {
	DB *gorm.DB
}

func NewBehaviorRepository(db *gorm.DB) *BehaviorRepository {
	return &BehaviorRepository{
		DB: db,
	}
}

func (r *BehaviorRepository) SaveEvent(ctx context.Context, event *domain.BehaviorEvent) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(event).Error; err != nil {
		return fmt.Errorf("failed to save behavior event: %w", err)
	}

	return nil
}

func (r *BehaviorRepository) SaveView(ctx context.Context, view *domain.ProductView) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(view).Error; err != nil {
		return fmt.Errorf("failed to save product view: %w", err)
	}

	return nil
}

// PurchasedProductIDs returns the distinct products a customer has
// purchase events for.
func (r *BehaviorRepository) PurchasedProductIDs(ctx context.Context, customerID uint64) ([]uint64, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var ids []uint64
	err := r.DB.WithContext(ctx).
		Model(&domain.BehaviorEvent{}).
		Distinct("product_id").
		Where("customer_id = ? AND action = ? AND product_id IS NOT NULL", customerID, domain.ActionPurchase).
		Pluck("product_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load purchased products: %w", err)
	}

	return ids, nil
}

// PurchasersOf returns distinct (customer, product) purchase pairs of
// other customers over the given products.
func (r *BehaviorRepository) PurchasersOf(ctx context.Context, productIDs []uint64, excludeCustomerID uint64) ([]domain.PurchasePair, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if len(productIDs) == 0 {
		return []domain.PurchasePair{}, nil
	}

	var pairs []domain.PurchasePair
	err := r.DB.WithContext(ctx).
		Model(&domain.BehaviorEvent{}).
		Select("customer_id, product_id").
		Where("action = ? AND product_id IN ? AND customer_id IS NOT NULL AND customer_id <> ?",
			domain.ActionPurchase, productIDs, excludeCustomerID).
		Group("customer_id, product_id").
		Scan(&pairs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load purchasers: %w", err)
	}

	return pairs, nil
}

// PurchasesByCustomers returns distinct (customer, product) purchase
// pairs for the given customers.
func (r *BehaviorRepository) PurchasesByCustomers(ctx context.Context, customerIDs []uint64) ([]domain.PurchasePair, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if len(customerIDs) == 0 {
		return []domain.PurchasePair{}, nil
	}

	var pairs []domain.PurchasePair
	err := r.DB.WithContext(ctx).
		Model(&domain.BehaviorEvent{}).
		Select("customer_id, product_id").
		Where("action = ? AND product_id IS NOT NULL AND customer_id IN ?", domain.ActionPurchase, customerIDs).
		Group("customer_id, product_id").
		Scan(&pairs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load customer purchases: %w", err)
	}

	return pairs, nil
}

// ActionCountsByProduct aggregates events per (product, action) since
// the given time.
func (r *BehaviorRepository) ActionCountsByProduct(ctx context.Context, since time.Time) ([]domain.ProductActionCount, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var counts []domain.ProductActionCount
	err := r.DB.WithContext(ctx).
		Model(&domain.BehaviorEvent{}).
		Select("product_id, action, COUNT(*) AS count").
		Where("created_at >= ? AND product_id IS NOT NULL", since).
		Group("product_id, action").
		Scan(&counts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate behavior counts: %w", err)
	}

	return counts, nil
}

func (r *BehaviorRepository) EventsByCustomer(ctx context.Context, customerID uint64) ([]domain.BehaviorEvent, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var events []domain.BehaviorEvent
	err := r.DB.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load customer events: %w", err)
	}

	return events, nil
}
