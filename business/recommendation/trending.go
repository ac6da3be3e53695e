package recommendation

import (
	"context"
	"fmt"
	"sort"
	"time"

	"myStoreCloud/domain"
	"myStoreCloud/pkg/logger"
)

const (
	trendingWindow = 7 * 24 * time.Hour

	// Products need this many behavior events in the window before they
	// can trend at all. Noise filter, nothing more.
	trendingMinEvents = 3

	trendingViewWeight     = 1.0
	trendingPurchaseWeight = 3.0
)

const reasonTrending = "Trending this week"

// trending scores products by weighted view/purchase volume over the
// last seven days, normalized so the top product scores exactly 1.0.
// The full ranking is tenant-wide and cached; exclusions and the limit
// are applied after the cache.
func (s *Service) trending(
	ctx context.Context,
	repos Repositories,
	req Request,
	limit int,
	exclude map[uint64]struct{},
) ([]domain.RecommendationResult, error) {

	ranked, ok := s.cachedTrending(ctx, req.TenantID)
	if !ok {
		var err error
		ranked, err = s.computeTrending(ctx, repos)
		if err != nil {
			return nil, err
		}

		if s.trendCache != nil {
			if err := s.trendCache.Set(ctx, req.TenantID, ranked); err != nil {
				logger.Warn("failed to cache trending ranking", "tenant", req.TenantID, "error", err)
			}
		}
	}

	results := make([]domain.RecommendationResult, 0, limit)
	for _, r := range ranked {
		if len(results) >= limit {
			break
		}
		if _, skip := exclude[r.ProductID]; skip {
			continue
		}
		results = append(results, r)
	}

	return results, nil
}

func (s *Service) cachedTrending(ctx context.Context, tenantID string) ([]domain.RecommendationResult, bool) {
	if s.trendCache == nil {
		return nil, false
	}

	ranked, err := s.trendCache.Get(ctx, tenantID)
	if err != nil {
		logger.Warn("trending cache read failed", "tenant", tenantID, "error", err)
		return nil, false
	}
	if ranked == nil {
		return nil, false
	}

	return ranked, true
}

func (s *Service) computeTrending(ctx context.Context, repos Repositories) ([]domain.RecommendationResult, error) {
	since := time.Now().Add(-trendingWindow)

	counts, err := repos.Behavior.ActionCountsByProduct(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("load behavior counts: %w", err)
	}

	type trend struct {
		productID uint64
		events    int64
		score     float64
	}

	byProduct := make(map[uint64]*trend)
	for _, c := range counts {
		t, ok := byProduct[c.ProductID]
		if !ok {
			t = &trend{productID: c.ProductID}
			byProduct[c.ProductID] = t
		}

		t.events += c.Count
		switch c.Action {
		case domain.ActionView:
			t.score += trendingViewWeight * float64(c.Count)
		case domain.ActionPurchase:
			t.score += trendingPurchaseWeight * float64(c.Count)
		}
	}

	qualified := make([]*trend, 0, len(byProduct))
	maxScore := 0.0
	for _, t := range byProduct {
		if t.events < trendingMinEvents {
			continue
		}
		qualified = append(qualified, t)
		if t.score > maxScore {
			maxScore = t.score
		}
	}
	if len(qualified) == 0 {
		return []domain.RecommendationResult{}, nil
	}
	if maxScore <= 0 {
		maxScore = 1
	}

	sort.Slice(qualified, func(i, j int) bool {
		if qualified[i].score != qualified[j].score {
			return qualified[i].score > qualified[j].score
		}
		return qualified[i].productID < qualified[j].productID
	})

	ranked := make([]domain.RecommendationResult, 0, len(qualified))
	for _, t := range qualified {
		ranked = append(ranked, domain.RecommendationResult{
			ProductID: t.productID,
			Score:     t.score / maxScore,
			Type:      domain.TypeTrending,
			Reasons:   []string{reasonTrending},
		})
	}

	return ranked, nil
}
