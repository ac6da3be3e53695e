package recommendation

import (
	"context"
	"errors"
	"fmt"

	"myStoreCloud/domain"
)

const preferenceTypeCategory = "category"

// UpdatePreferences recomputes the customer's category affinities from
// the full behavior log: per category, the fraction of the customer's
// events that touched a product in it. Re-running overwrites instead of
// accumulating, so the operation is idempotent.
func (s *Service) UpdatePreferences(ctx context.Context, tenantID string, customerID uint64) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if customerID == 0 {
		return errors.New("customer id is required")
	}

	repos, err := s.reposFor(ctx, tenantID)
	if err != nil {
		return err
	}

	events, err := repos.Behavior.EventsByCustomer(ctx, customerID)
	if err != nil {
		return fmt.Errorf("load customer behavior: %w", err)
	}
	if len(events) == 0 {
		return nil
	}

	productSet := make(map[uint64]struct{})
	for _, e := range events {
		if e.ProductID != nil {
			productSet[*e.ProductID] = struct{}{}
		}
	}
	if len(productSet) == 0 {
		return nil
	}

	productIDs := make([]uint64, 0, len(productSet))
	for pid := range productSet {
		productIDs = append(productIDs, pid)
	}

	mappings, err := repos.Catalog.CategoriesForProducts(ctx, productIDs)
	if err != nil {
		return fmt.Errorf("load product categories: %w", err)
	}

	productCategories := make(map[uint64][]uint64)
	for _, m := range mappings {
		productCategories[m.ProductID] = append(productCategories[m.ProductID], m.CategoryID)
	}

	// Events per category, counted over all events so the strengths are
	// fractions of the customer's total activity.
	categoryCounts := make(map[uint64]int)
	for _, e := range events {
		if e.ProductID == nil {
			continue
		}
		for _, cid := range productCategories[*e.ProductID] {
			categoryCounts[cid]++
		}
	}
	if len(categoryCounts) == 0 {
		return nil
	}

	categoryIDs := make([]uint64, 0, len(categoryCounts))
	for cid := range categoryCounts {
		categoryIDs = append(categoryIDs, cid)
	}

	categories, err := repos.Catalog.CategoriesByID(ctx, categoryIDs)
	if err != nil {
		return fmt.Errorf("load categories: %w", err)
	}

	names := make(map[uint64]string, len(categories))
	for _, c := range categories {
		names[c.CategoryID] = c.CategoryName
	}

	total := len(events)
	for cid, count := range categoryCounts {
		name, ok := names[cid]
		if !ok {
			// Orphaned mapping, category was deleted. Skip quietly.
			continue
		}

		pref := domain.CustomerPreference{
			CustomerID:      customerID,
			PreferenceType:  preferenceTypeCategory,
			PreferenceValue: name,
			Strength:        float64(count) / float64(total),
		}
		if err := repos.Prefs.Upsert(ctx, &pref); err != nil {
			return fmt.Errorf("upsert preference %q: %w", name, err)
		}
	}

	return nil
}
