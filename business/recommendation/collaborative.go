package recommendation

import (
	"context"
	"fmt"
	"sort"

	"myStoreCloud/domain"
)

const (
	// Customers must share more than one purchased product with the
	// target before they count as similar. Overlap of one is noise.
	collaborativeMinOverlap = 2

	// How many similar customers contribute candidates.
	collaborativeTopCustomers = 20

	// Purchase counts saturate the score at this many purchases.
	collaborativeSaturation = 10.0
)

const reasonCollaborative = "Customers like you also purchased this"

// collaborative recommends products bought by customers with overlapping
// purchase history. Needs an identified customer; anonymous sessions get
// an empty list, not an error.
func (s *Service) collaborative(
	ctx context.Context,
	repos Repositories,
	req Request,
	limit int,
	exclude map[uint64]struct{},
) ([]domain.RecommendationResult, error) {

	if req.CustomerID == nil {
		return []domain.RecommendationResult{}, nil
	}
	customerID := *req.CustomerID

	mine, err := repos.Behavior.PurchasedProductIDs(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("load own purchases: %w", err)
	}
	if len(mine) == 0 {
		return []domain.RecommendationResult{}, nil
	}

	mineSet := make(map[uint64]struct{}, len(mine))
	for _, id := range mine {
		mineSet[id] = struct{}{}
	}

	pairs, err := repos.Behavior.PurchasersOf(ctx, mine, customerID)
	if err != nil {
		return nil, fmt.Errorf("load overlapping purchasers: %w", err)
	}

	// Distinct overlapping products per candidate customer.
	overlap := make(map[uint64]map[uint64]struct{})
	for _, p := range pairs {
		set, ok := overlap[p.CustomerID]
		if !ok {
			set = make(map[uint64]struct{})
			overlap[p.CustomerID] = set
		}
		set[p.ProductID] = struct{}{}
	}

	type similar struct {
		customerID uint64
		count      int
	}

	similars := make([]similar, 0, len(overlap))
	for cid, products := range overlap {
		if len(products) >= collaborativeMinOverlap {
			similars = append(similars, similar{customerID: cid, count: len(products)})
		}
	}
	if len(similars) == 0 {
		return []domain.RecommendationResult{}, nil
	}

	sort.Slice(similars, func(i, j int) bool {
		if similars[i].count != similars[j].count {
			return similars[i].count > similars[j].count
		}
		return similars[i].customerID < similars[j].customerID
	})
	if len(similars) > collaborativeTopCustomers {
		similars = similars[:collaborativeTopCustomers]
	}

	customerIDs := make([]uint64, 0, len(similars))
	for _, sim := range similars {
		customerIDs = append(customerIDs, sim.customerID)
	}

	theirs, err := repos.Behavior.PurchasesByCustomers(ctx, customerIDs)
	if err != nil {
		return nil, fmt.Errorf("load similar customers' purchases: %w", err)
	}

	// Count how many similar customers purchased each candidate product,
	// skipping products the target already owns or the caller excluded.
	counts := make(map[uint64]int)
	for _, p := range theirs {
		if _, owned := mineSet[p.ProductID]; owned {
			continue
		}
		if _, skip := exclude[p.ProductID]; skip {
			continue
		}
		counts[p.ProductID]++
	}

	type candidate struct {
		productID uint64
		count     int
	}

	candidates := make([]candidate, 0, len(counts))
	for pid, n := range counts {
		candidates = append(candidates, candidate{productID: pid, count: n})
	}

	// Score saturates at 1.0, so raw purchase count breaks ties above
	// the saturation point.
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].count != candidates[j].count {
			return candidates[i].count > candidates[j].count
		}
		return candidates[i].productID < candidates[j].productID
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	results := make([]domain.RecommendationResult, 0, len(candidates))
	for _, c := range candidates {
		score := float64(c.count) / collaborativeSaturation
		if score > 1 {
			score = 1
		}
		results = append(results, domain.RecommendationResult{
			ProductID: c.productID,
			Score:     score,
			Type:      domain.TypeCollaborative,
			Reasons:   []string{reasonCollaborative},
		})
	}

	return results, nil
}
