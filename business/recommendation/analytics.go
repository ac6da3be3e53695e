package recommendation

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"myStoreCloud/domain"
)

const defaultAnalyticsDays = 30

// Analytics aggregates feedback over a rolling window into one row per
// recommendation type: shown/clicked/purchased totals plus click-through
// and conversion rates. Types with no shown recommendations in the
// window are omitted rather than zero-filled.
func (s *Service) Analytics(ctx context.Context, tenantID string, days int) ([]domain.RecommendationAnalytics, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if days <= 0 {
		days = defaultAnalyticsDays
	}

	repos, err := s.reposFor(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	since := time.Now().AddDate(0, 0, -days)

	rows, err := repos.Recs.ShownSince(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("load shown recommendations: %w", err)
	}

	byType := make(map[string]*domain.RecommendationAnalytics)
	for _, rec := range rows {
		agg, ok := byType[rec.RecommendationType]
		if !ok {
			agg = &domain.RecommendationAnalytics{RecommendationType: rec.RecommendationType}
			byType[rec.RecommendationType] = agg
		}

		agg.TotalShown++
		if rec.Clicked {
			agg.TotalClicked++
		}
		if rec.Purchased {
			agg.TotalPurchased++
		}
	}

	out := make([]domain.RecommendationAnalytics, 0, len(byType))
	for _, agg := range byType {
		agg.ClickThroughRate = roundRate(agg.TotalClicked, agg.TotalShown)
		agg.ConversionRate = roundRate(agg.TotalPurchased, agg.TotalShown)
		out = append(out, *agg)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].RecommendationType < out[j].RecommendationType
	})

	return out, nil
}

// roundRate returns part/total as a percentage rounded to 2 decimals.
func roundRate(part, total int64) float64 {
	if total == 0 {
		return 0
	}

	rate := float64(part) / float64(total) * 100

	return math.Round(rate*100) / 100
}
