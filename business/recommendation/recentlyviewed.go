package recommendation

import (
	"context"
	"fmt"
	"time"

	"myStoreCloud/domain"
)

const (
	recentlyViewedWindow     = 30 * 24 * time.Hour
	recentlyViewedFetchLimit = 200

	recentlyViewedTopScore = 0.9
	recentlyViewedStep     = 0.1
	recentlyViewedMinScore = 0.1
)

const reasonRecentlyViewed = "You viewed this recently"

// recentlyViewed surfaces the visitor's own latest viewed products. Score
// decays 0.1 per rank from 0.9, never below 0.1.
func (s *Service) recentlyViewed(
	ctx context.Context,
	repos Repositories,
	req Request,
	limit int,
	exclude map[uint64]struct{},
) ([]domain.RecommendationResult, error) {

	since := time.Now().Add(-recentlyViewedWindow)

	views, err := repos.Views.RecentViews(ctx, req.CustomerID, req.SessionID, since, recentlyViewedFetchLimit)
	if err != nil {
		return nil, fmt.Errorf("load recent views: %w", err)
	}

	// Views arrive most recent first, so the first occurrence of each
	// product is its latest view.
	seen := make(map[uint64]struct{})
	results := make([]domain.RecommendationResult, 0, limit)
	for _, v := range views {
		if len(results) >= limit {
			break
		}
		if _, dup := seen[v.ProductID]; dup {
			continue
		}
		seen[v.ProductID] = struct{}{}

		if _, skip := exclude[v.ProductID]; skip {
			continue
		}

		score := recentlyViewedTopScore - recentlyViewedStep*float64(len(results))
		if score < recentlyViewedMinScore {
			score = recentlyViewedMinScore
		}

		results = append(results, domain.RecommendationResult{
			ProductID: v.ProductID,
			Score:     score,
			Type:      domain.TypeRecentlyViewed,
			Reasons:   []string{reasonRecentlyViewed},
		})
	}

	return results, nil
}
