package recommendation

import (
	"context"
	"fmt"
	"sort"
	"time"

	"myStoreCloud/domain"
)

const (
	// How many of the visitor's latest distinct viewed products seed the
	// category profile.
	contentRecentProducts = 5

	// How many top categories from those views drive candidates.
	contentTopCategories = 3

	// Raw views fetched before deduplicating to distinct products.
	contentViewFetchLimit = 50
)

const reasonContentBased = "Similar to products you viewed recently"

// contentBased recommends products sharing categories with the visitor's
// recently viewed products.
func (s *Service) contentBased(
	ctx context.Context,
	repos Repositories,
	req Request,
	limit int,
	exclude map[uint64]struct{},
) ([]domain.RecommendationResult, error) {

	views, err := repos.Views.RecentViews(ctx, req.CustomerID, req.SessionID, time.Time{}, contentViewFetchLimit)
	if err != nil {
		return nil, fmt.Errorf("load recent views: %w", err)
	}
	if len(views) == 0 {
		return []domain.RecommendationResult{}, nil
	}

	// Latest distinct products, most recent first.
	viewed := make(map[uint64]struct{})
	recent := make([]uint64, 0, contentRecentProducts)
	for _, v := range views {
		if _, seen := viewed[v.ProductID]; seen {
			continue
		}
		viewed[v.ProductID] = struct{}{}
		if len(recent) < contentRecentProducts {
			recent = append(recent, v.ProductID)
		}
	}

	mappings, err := repos.Catalog.CategoriesForProducts(ctx, recent)
	if err != nil {
		return nil, fmt.Errorf("load categories for viewed products: %w", err)
	}
	if len(mappings) == 0 {
		return []domain.RecommendationResult{}, nil
	}

	categoryFreq := make(map[uint64]int)
	for _, m := range mappings {
		categoryFreq[m.CategoryID]++
	}

	type categoryCount struct {
		categoryID uint64
		count      int
	}

	ranked := make([]categoryCount, 0, len(categoryFreq))
	for cid, n := range categoryFreq {
		ranked = append(ranked, categoryCount{categoryID: cid, count: n})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}
		return ranked[i].categoryID < ranked[j].categoryID
	})
	if len(ranked) > contentTopCategories {
		ranked = ranked[:contentTopCategories]
	}

	topCategories := make([]uint64, 0, len(ranked))
	for _, c := range ranked {
		topCategories = append(topCategories, c.categoryID)
	}

	candidates, err := repos.Catalog.ProductsInCategories(ctx, topCategories)
	if err != nil {
		return nil, fmt.Errorf("load candidate products: %w", err)
	}

	// Count how many of the top categories each candidate hits. Already
	// viewed and excluded products are out.
	matches := make(map[uint64]int)
	for _, m := range candidates {
		if _, seen := viewed[m.ProductID]; seen {
			continue
		}
		if _, skip := exclude[m.ProductID]; skip {
			continue
		}
		matches[m.ProductID]++
	}

	type candidate struct {
		productID uint64
		matched   int
	}

	scored := make([]candidate, 0, len(matches))
	for pid, n := range matches {
		scored = append(scored, candidate{productID: pid, matched: n})
	}
	sort.Slice(scored, func(i, j int) bool {
		if scored[i].matched != scored[j].matched {
			return scored[i].matched > scored[j].matched
		}
		return scored[i].productID < scored[j].productID
	})

	if len(scored) > limit {
		scored = scored[:limit]
	}

	results := make([]domain.RecommendationResult, 0, len(scored))
	for _, c := range scored {
		score := float64(c.matched) / float64(contentTopCategories)
		if score > 1 {
			score = 1
		}
		results = append(results, domain.RecommendationResult{
			ProductID: c.productID,
			Score:     score,
			Type:      domain.TypeContentBased,
			Reasons:   []string{reasonContentBased},
		})
	}

	return results, nil
}
