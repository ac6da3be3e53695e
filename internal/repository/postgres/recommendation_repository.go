package postgres

import (
	"context"
	"fmt"
	"time"

	"myStoreCloud/domain"

	"gorm.io/gorm"
)

type RecommendationRepository struct {
	DB *gorm.DB
}

func NewRecommendationRepository(db *gorm.DB) *RecommendationRepository {
	return &RecommendationRepository{
		DB: db,
	}
}

func (r *RecommendationRepository) SaveBatch(ctx context.Context, recs []domain.Recommendation) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if len(recs) == 0 {
		return nil
	}

	if err := r.DB.WithContext(ctx).CreateInBatches(recs, 100).Error; err != nil {
		return fmt.Errorf("failed to save recommendations: %w", err)
	}

	return nil
}

// FindForFeedback returns the latest recommendation of the product for
// the customer when identified, otherwise for the session.
func (r *RecommendationRepository) FindForFeedback(ctx context.Context, customerID *uint64, sessionID string, productID uint64) (domain.Recommendation, error) {
	if err := ctx.Err(); err != nil {
		return domain.Recommendation{}, fmt.Errorf("context error: %w", err)
	}

	q := r.DB.WithContext(ctx).Where("product_id = ?", productID)

	if customerID != nil {
		q = q.Where("customer_id = ?", *customerID)
	} else {
		q = q.Where("session_id = ?", sessionID)
	}

	var rec domain.Recommendation
	err := q.Order("created_at DESC").First(&rec).Error
	if err != nil {
		return domain.Recommendation{}, err
	}

	return rec, nil
}

// MarkFeedback flips the flag for one feedback action and stamps when it
// happened.
func (r *RecommendationRepository) MarkFeedback(ctx context.Context, id uint64, action string, at time.Time) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	var updates map[string]any
	switch action {
	case "shown":
		updates = map[string]any{"shown": true, "shown_at": at}
	case "clicked":
		updates = map[string]any{"clicked": true, "clicked_at": at}
	case "purchased":
		updates = map[string]any{"purchased": true, "purchased_at": at}
	default:
		return fmt.Errorf("unknown feedback action %q", action)
	}

	err := r.DB.WithContext(ctx).
		Model(&domain.Recommendation{}).
		Where("id = ?", id).
		Updates(updates).Error
	if err != nil {
		return fmt.Errorf("failed to mark feedback: %w", err)
	}

	return nil
}

// ShownSince returns recommendations surfaced to shoppers in the window,
// the analytics aggregation input.
func (r *RecommendationRepository) ShownSince(ctx context.Context, since time.Time) ([]domain.Recommendation, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var recs []domain.Recommendation
	err := r.DB.WithContext(ctx).
		Where("shown = ? AND created_at >= ?", true, since).
		Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load shown recommendations: %w", err)
	}

	return recs, nil
}
