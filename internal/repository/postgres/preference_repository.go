package postgres

import (
	"context"
	"fmt"

	"myStoreCloud/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PreferenceRepository struct {
	DB *gorm.DB
}

func NewPreferenceRepository(db *gorm.DB) *PreferenceRepository {
	return &PreferenceRepository{
		DB: db,
	}
}

// Upsert inserts the preference or refreshes the strength of the
// existing (customer, type, value) row.
func (r *PreferenceRepository) Upsert(ctx context.Context, pref *domain.CustomerPreference) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	err := r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "customer_id"},
				{Name: "preference_type"},
				{Name: "preference_value"},
			},
			DoUpdates: clause.AssignmentColumns([]string{"strength", "updated_at"}),
		}).
		Create(pref).Error
	if err != nil {
		return fmt.Errorf("failed to upsert customer preference: %w", err)
	}

	return nil
}
