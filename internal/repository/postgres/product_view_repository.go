package postgres

import (
	"context"
	"fmt"
	"time"

	"myStoreCloud/domain"

	"gorm.io/gorm"
)

type ProductViewRepository struct {
	DB *gorm.DB
}

func NewProductViewRepository(db *gorm.DB) *ProductViewRepository {
	return &ProductViewRepository{
		DB: db,
	}
}

// RecentViews returns raw views most recent first, scoped to the
// customer when identified, otherwise to the session. A zero since
// leaves the window unbounded.
func (r *ProductViewRepository) RecentViews(ctx context.Context, customerID *uint64, sessionID string, since time.Time, limit int) ([]domain.ProductView, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	q := r.DB.WithContext(ctx).Model(&domain.ProductView{})

	if customerID != nil {
		q = q.Where("customer_id = ?", *customerID)
	} else {
		q = q.Where("session_id = ?", sessionID)
	}

	if !since.IsZero() {
		q = q.Where("created_at >= ?", since)
	}

	var views []domain.ProductView
	err := q.Order("created_at DESC").Limit(limit).Find(&views).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load recent views: %w", err)
	}

	return views, nil
}
