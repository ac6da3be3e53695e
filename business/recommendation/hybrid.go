package recommendation

import (
	"context"
	"math"
	"sort"
	"sync"

	"myStoreCloud/domain"
)

var hybridStrategies = []string{
	domain.TypeCollaborative,
	domain.TypeContentBased,
	domain.TypeTrending,
	domain.TypeRecentlyViewed,
}

// hybrid fans out all strategies concurrently, weights their raw scores
// per the configured plan and merges by product. A slow or failing
// strategy contributes nothing; it never blocks or fails the others.
//
// Merged scores are sums of already-weighted per-strategy scores and are
// deliberately not renormalized: a product several strategies agree on
// can score above 1.0, which preserves its relative ranking.
func (s *Service) hybrid(
	ctx context.Context,
	repos Repositories,
	req Request,
	exclude map[uint64]struct{},
) []domain.RecommendationResult {

	perStrategy := make([][]domain.RecommendationResult, len(hybridStrategies))

	var wg sync.WaitGroup
	for i, strategyType := range hybridStrategies {
		share := s.cfg.plan(strategyType).Share
		shareLimit := int(math.Ceil(float64(req.Limit) * share))
		if shareLimit < 1 {
			shareLimit = 1
		}

		wg.Add(1)
		go func(i int, strategyType string, shareLimit int) {
			defer wg.Done()
			perStrategy[i] = s.runStrategy(ctx, strategyType, repos, req, shareLimit, exclude)
		}(i, strategyType, shareLimit)
	}
	wg.Wait()

	type merged struct {
		productID uint64
		score     float64
		types     int
		firstType string
		reasons   []string
		seen      map[string]struct{}
	}

	byProduct := make(map[uint64]*merged)
	order := make([]uint64, 0)

	for i, results := range perStrategy {
		weight := s.cfg.plan(hybridStrategies[i]).Weight
		for _, r := range results {
			m, ok := byProduct[r.ProductID]
			if !ok {
				m = &merged{
					productID: r.ProductID,
					firstType: r.Type,
					seen:      make(map[string]struct{}),
				}
				byProduct[r.ProductID] = m
				order = append(order, r.ProductID)
			}

			m.score += weight * r.Score
			m.types++
			for _, reason := range r.Reasons {
				if _, dup := m.seen[reason]; dup {
					continue
				}
				m.seen[reason] = struct{}{}
				m.reasons = append(m.reasons, reason)
			}
		}
	}

	combined := make([]domain.RecommendationResult, 0, len(order))
	for _, pid := range order {
		m := byProduct[pid]

		resultType := m.firstType
		if m.types > 1 {
			resultType = domain.TypeHybrid
		}

		combined = append(combined, domain.RecommendationResult{
			ProductID: m.productID,
			Score:     m.score,
			Type:      resultType,
			Reasons:   m.reasons,
		})
	}

	sort.SliceStable(combined, func(i, j int) bool {
		if combined[i].Score != combined[j].Score {
			return combined[i].Score > combined[j].Score
		}
		return combined[i].ProductID < combined[j].ProductID
	})

	if len(combined) > req.Limit {
		combined = combined[:req.Limit]
	}

	return combined
}
